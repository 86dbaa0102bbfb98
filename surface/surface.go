// Package surface is where finished frames go: the OLED, a terminal
// preview, or nowhere.
package surface

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/sergeymakinen/go-bmp"
)

// Surface presents whole frames of a fixed size.
type Surface interface {
	Size() (w, h int)
	Present(img image.Image) error
	Close() error
}

// Recorder is a headless surface that keeps the last frame.
type Recorder struct {
	W, H int

	mu     sync.Mutex
	last   image.Image
	frames int
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Present(img image.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = img
	r.frames++
	return nil
}

func (r *Recorder) Close() error { return nil }

// Last returns the most recent frame and how many were presented.
func (r *Recorder) Last() (image.Image, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.frames
}

// WriteBMP stores img at path as a 24/32-bit BMP.
func WriteBMP(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("write %s: no image", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
