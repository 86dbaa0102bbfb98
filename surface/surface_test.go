package surface

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergeymakinen/go-bmp"
)

func TestRecorder(t *testing.T) {
	var s Surface = NewRecorder(10, 20)
	w, h := s.Size()
	if w != 10 || h != 20 {
		t.Fatalf("size = %dx%d", w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	s.Present(img)
	s.Present(img)
	last, n := s.(*Recorder).Last()
	if last != img || n != 2 {
		t.Errorf("last = %v, frames = %d", last, n)
	}
}

func TestWriteBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{0x10, 0x20, 0x30, 0xFF})
	path := filepath.Join(t.TempDir(), "frame.bmp")
	if err := WriteBMP(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := got.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	r, g, b, _ := got.At(1, 1).RGBA()
	if r>>8 != 0x10 || g>>8 != 0x20 || b>>8 != 0x30 {
		t.Errorf("pixel = %x %x %x", r>>8, g>>8, b>>8)
	}

	if err := WriteBMP(path, nil); err == nil {
		t.Error("nil image should fail")
	}
	if err := WriteBMP(filepath.Join(t.TempDir(), "no", "such", "dir.bmp"), img); err == nil {
		t.Error("bad path should fail")
	}
}
