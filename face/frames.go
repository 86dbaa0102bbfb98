package face

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"watchlauncher/anim"

	"github.com/sergeymakinen/go-bmp"
)

// FrameSet is a looping character animation. Frames are decoded from
// <dir>/frame_NN.bmp on a background goroutine; readers never wait for it.
type FrameSet struct {
	mu     sync.RWMutex
	frames []image.Image
	done   chan struct{}
}

// LoadFrames starts decoding up to count frames from dir and returns
// immediately. Missing or undecodable frames are skipped.
func LoadFrames(dir string, count int) *FrameSet {
	fs := &FrameSet{done: make(chan struct{})}
	go fs.load(dir, count)
	return fs
}

func (fs *FrameSet) load(dir string, count int) {
	defer close(fs.done)
	loaded := 0
	for i := 0; i < count; i++ {
		name := filepath.Join(dir, fmt.Sprintf("frame_%02d.bmp", i))
		img, err := decodeBMP(name)
		if err != nil {
			lg.Debugf("skip frame %s: %v", name, err)
			continue
		}
		fs.mu.Lock()
		fs.frames = append(fs.frames, img)
		fs.mu.Unlock()
		loaded++
	}
	if loaded == 0 {
		lg.Warningf("no animation frames found in %s", dir)
		return
	}
	lg.Infof("loaded %d animation frames from %s", loaded, dir)
}

func decodeBMP(name string) (image.Image, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := bmp.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// Len reports how many frames have arrived so far.
func (fs *FrameSet) Len() int {
	if fs == nil {
		return 0
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.frames)
}

// At picks the frame for phase p across the frames loaded so far. It returns
// nil while nothing is loaded.
func (fs *FrameSet) At(p anim.Phase) image.Image {
	if fs == nil {
		return nil
	}
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	n := len(fs.frames)
	if n == 0 {
		return nil
	}
	i := int(float64(p) * float64(n))
	if i < 0 || i >= n {
		i = 0
	}
	return fs.frames[i]
}

// Wait blocks until loading has finished. Tests use it; the render path
// does not.
func (fs *FrameSet) Wait() {
	<-fs.done
}
