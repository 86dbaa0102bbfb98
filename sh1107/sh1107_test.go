package sh1107

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeBus struct {
	writes [][]byte
	fail   error
	closed bool
}

func (f *fakeBus) WriteBytes(buf []byte) (int, error) {
	f.writes = append(f.writes, append([]byte(nil), buf...))
	if f.fail != nil {
		return 0, f.fail
	}
	return len(buf), nil
}

func (f *fakeBus) Close() error {
	f.closed = true
	return nil
}

func TestPack(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(3, 7, color.Gray{Y: 200})
	img.SetGray(5, 9, color.Gray{Y: 255})
	img.SetGray(6, 9, color.Gray{Y: 100}) // below threshold

	raw := Pack(img, 16, 16, 0.5)
	if len(raw) != 32 {
		t.Fatalf("len = %d", len(raw))
	}
	want := map[int]byte{
		0:      0x01,
		3:      0x80,
		16 + 5:  0x02,
	}
	for i, b := range raw {
		if b != want[i] {
			t.Errorf("raw[%d] = %#02x, want %#02x", i, b, want[i])
		}
	}
}

func TestPackSmallAndNil(t *testing.T) {
	if raw := Pack(nil, 8, 8, 0.5); len(raw) != 8 {
		t.Error("nil image should give a dark buffer")
	}
	small := image.NewGray(image.Rect(10, 10, 12, 12))
	for i := range small.Pix {
		small.Pix[i] = 255
	}
	raw := Pack(small, 8, 8, 0.5)
	if raw[0] != 0x03 || raw[1] != 0x03 || raw[2] != 0 {
		t.Errorf("raw = %v", raw[:3])
	}
}

func TestPresent(t *testing.T) {
	bus := &fakeBus{}
	d, err := New(bus, UpsideDown, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	bus.writes = nil

	img := image.NewGray(image.Rect(0, 0, 16, 16))
	if err := d.Present(img); err != nil {
		t.Fatal(err)
	}
	// two pages: address + data each, then display on
	if len(bus.writes) != 5 {
		t.Fatalf("writes = %d", len(bus.writes))
	}
	if bus.writes[0][1] != 0xB0 || bus.writes[2][1] != 0xB1 {
		t.Errorf("page addresses = %#x %#x", bus.writes[0][1], bus.writes[2][1])
	}
	if bus.writes[1][0] != 0x40 || len(bus.writes[1]) != 17 {
		t.Errorf("data write = %v", bus.writes[1])
	}
	if !d.IsOn {
		t.Error("panel should be on after first frame")
	}

	if err := d.Close(); err != nil || !bus.closed {
		t.Error("close failed")
	}
}

func TestBusErrors(t *testing.T) {
	if _, err := New(&fakeBus{fail: errors.New("nack")}, Normal, 16, 16); err == nil {
		t.Error("init should report bus errors")
	}
	if _, err := New(&fakeBus{}, Normal, 16, 12); err == nil {
		t.Error("height must be a multiple of 8")
	}

	bus := &fakeBus{}
	d, _ := New(bus, Normal, 8, 8)
	bus.fail = errors.New("nack")
	if err := d.Present(image.NewGray(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("Present should report bus errors")
	}
}

func TestFlipImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 255})
	tests := []struct {
		mode int
		x, y int
	}{
		{Normal, 0, 0},
		{Flipped, 1, 0},
		{UpsideDown, 0, 1},
		{FlippedUpsideDown, 1, 1},
	}
	for _, tt := range tests {
		if got := FlipImage(src, tt.mode).GrayAt(tt.x, tt.y).Y; got != 255 {
			t.Errorf("mode %d: lit pixel not at (%d,%d)", tt.mode, tt.x, tt.y)
		}
	}
}
