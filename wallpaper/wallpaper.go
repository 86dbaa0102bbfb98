// Package wallpaper loads the background picture shown behind faces.
package wallpaper

import (
	"fmt"
	"image"
	"io"
	"os"
	"sync"

	"github.com/d2r2/go-logger"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

var lg = logger.NewPackageLogger("wallpaper", logger.InfoLevel)

// Load decodes the picture at path and applies its EXIF orientation.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wallpaper: %w", err)
	}
	defer f.Close()

	orient := exifOrient(f)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind wallpaper: %w", err)
	}
	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode wallpaper %s: %w", path, err)
	}
	return orientImage(orient, img), nil
}

// exifOrient returns the EXIF orientation tag, 1 when absent.
func exifOrient(r io.Reader) int {
	x, err := exif.Decode(r)
	if err == nil && x != nil {
		orient, err := x.Get(exif.Orientation)
		if err == nil && orient != nil && orient.Count != 0 {
			if i, err := orient.Int(0); err == nil {
				return i
			}
		}
	}
	return 1
}

func orientImage(orient int, img image.Image) image.Image {
	switch orient {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}

// Fit centre-crops img to exactly w x h.
func Fit(img image.Image, w, h int) image.Image {
	if img == nil || w <= 0 || h <= 0 {
		return nil
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// Cache holds the fitted wallpaper for one surface size. Reload is safe
// to call from input goroutines while the renderer reads Image.
type Cache struct {
	path string
	w, h int

	mu  sync.RWMutex
	img image.Image
}

func NewCache(path string, w, h int) *Cache {
	return &Cache{path: path, w: w, h: h}
}

// Reload re-reads the file. On failure the previous picture is dropped so
// the faces fall back to a plain background.
func (c *Cache) Reload() error {
	if c == nil {
		return nil
	}
	var fitted image.Image
	var err error
	if c.path != "" {
		var img image.Image
		img, err = Load(c.path)
		if err == nil {
			fitted = Fit(img, c.w, c.h)
		}
	}
	c.mu.Lock()
	c.img = fitted
	c.mu.Unlock()
	if err != nil {
		lg.Warningf("%v", err)
		return err
	}
	if fitted != nil {
		lg.Infof("wallpaper %s loaded", c.path)
	}
	return nil
}

// Image returns the current picture or nil.
func (c *Cache) Image() image.Image {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.img
}
