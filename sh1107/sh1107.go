// Package sh1107 drives a 128x128 SH1107 OLED over I2C as a watch surface.
package sh1107

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/d2r2/go-i2c"
	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("sh1107", logger.InfoLevel)

const (
	Normal            int = 0
	Flipped           int = 1
	UpsideDown        int = 2
	FlippedUpsideDown int = 3
)

// Bus is the part of *i2c.I2C the driver writes through.
type Bus interface {
	WriteBytes(buf []byte) (int, error)
	Close() error
}

type SH1107 struct {
	bus           Bus
	rot           int
	Width, Height int
	// Threshold is the grey level (0..1) above which a pixel is lit.
	Threshold float64
	IsOn      bool

	render_lock sync.Mutex
	cmd_lock    sync.Mutex
	data_lock   sync.Mutex
	err         error
}

// Open connects to the panel at address on /dev/i2c-<busDevice>.
func Open(address byte, busDevice int, rotation int, width, height int) (*SH1107, error) {
	logger.ChangePackageLogLevel("i2c", logger.PanicLevel)
	bus, err := i2c.NewI2C(address, busDevice)
	if err != nil {
		return nil, fmt.Errorf("open i2c %#x on bus %d: %w", address, busDevice, err)
	}
	d, err := New(bus, rotation, width, height)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return d, nil
}

// New initialises a panel on an already opened bus.
func New(bus Bus, rotation int, width, height int) (*SH1107, error) {
	if width <= 0 || height <= 0 || height%8 != 0 {
		return nil, fmt.Errorf("unsupported panel size %dx%d", width, height)
	}
	d := &SH1107{
		bus:       bus,
		rot:       rotation,
		Width:     width,
		Height:    height,
		Threshold: 0.5,
	}
	d.init()
	d.SetRotation(rotation)
	if d.err != nil {
		return nil, fmt.Errorf("init panel: %w", d.err)
	}
	return d, nil
}

// TODO: THIS CURRENTLY DOESN'T PROPERLY WORK FOR 90/270 DEGREES
func (d *SH1107) SetRotation(rot int) {
	d.rot = rot
	switch rot % 4 {
	case 0: // 0°
		d.writeCommand(0xA0) // Segment remap normal
		d.writeCommand(0xC0) // COM scan flipped
	case 1: // 90°
		d.writeCommand(0xA1) // Segment remap
		d.writeCommand(0xC0) // COM scan flipped
	case 2: // 180°
		d.writeCommand(0xA1) // Segment remap
		d.writeCommand(0xC8) // COM scan normal
	case 3: // 270°
		d.writeCommand(0xA0) // Segment remap normal
		d.writeCommand(0xC8) // COM scan normal
	}
}

func (d *SH1107) multiCommand(cmd ...byte) {
	d.cmd_lock.Lock()
	defer d.cmd_lock.Unlock()
	d.send(append([]byte{0x00}, cmd...))
}

func (d *SH1107) writeCommand(cmd ...byte) {
	d.cmd_lock.Lock()
	defer d.cmd_lock.Unlock()
	for _, c := range cmd {
		d.send([]byte{0x00, c})
	}
}

func (d *SH1107) writeData(data []byte) {
	d.data_lock.Lock()
	defer d.data_lock.Unlock()
	d.send(append([]byte{0x40}, data...))
}

// send keeps the first bus error; later writes are still attempted so a
// glitch on one page does not blank the rest.
func (d *SH1107) send(buf []byte) {
	if _, err := d.bus.WriteBytes(buf); err != nil && d.err == nil {
		d.err = err
	}
}

func (d *SH1107) init() {
	cmds := []byte{
		0xAE,       // display off
		0x00, 0x10, // set column addr low + high
		0xDC, 0x00, // display start line
		0x81, 0x7F, // contrast
		0x20,       // page addressing
		0xA4,       // disable entire display on
		0xA6,       // normal display
		0xA8, 0x7F, // multiplex ratio = 127
		0xD3, 0x00, // display offset
		0xD5, 0x41, // osc
		0xD9, 0x22, // precharge
		0xDB, 0x35, // vcomh
		0xAD, 0x8A, // charge pump enable
	}
	d.writeCommand(cmds...)
}

func (d *SH1107) Size() (int, int) { return d.Width, d.Height }

// Close blanks the panel and releases the bus.
func (d *SH1107) Close() error {
	d.Off()
	return d.bus.Close()
}

// Turns display on
func (d *SH1107) On() {
	d.writeCommand(0xAF)
	d.IsOn = true
}

// Turns display off
func (d *SH1107) Off() {
	d.writeCommand(0xAE)
	d.IsOn = false
}

// Set brightness from 0.0 to 1.0
func (d *SH1107) SetBrightness(level float64) {
	clamped := math.Max(0.0, math.Min(1.0, level))
	b := byte(clamped * 0xFF)
	d.writeCommand(0x81, b)
}

// Present packs img into pages and streams them to the panel, turning the
// panel on with the first frame.
func (d *SH1107) Present(img image.Image) error {
	d.render_lock.Lock()
	defer d.render_lock.Unlock()

	d.err = nil
	raw := Pack(img, d.Width, d.Height, d.Threshold)
	pages := d.Height / 8
	for page := range pages {

		// Combine multiple commands into a single transaction
		d.multiCommand(
			0xB0|byte(page), // page address
			0x00,            // low nibble
			0x10,            // high nibble
		)

		// Transmit data as a single transaction
		offset := page * d.Width
		d.writeData(raw[offset : offset+d.Width])
	}
	if !d.IsOn {
		d.On()
	}
	if d.err != nil {
		lg.Warningf("frame write: %v", d.err)
		return d.err
	}
	return nil
}

// Pack converts img to the panel's page layout: one byte per column per
// 8-row page, LSB at the top. Pixels brighter than threshold are lit.
// img is read from its top-left corner; missing pixels stay dark.
func Pack(img image.Image, width, height int, threshold float64) []byte {
	raw := make([]byte, width*(height/8))
	if img == nil {
		return raw
	}
	b := img.Bounds()
	cut := uint8(math.Max(0, math.Min(255, threshold*255)))

	for y := 0; y < height && y < b.Dy(); y++ {
		for x := 0; x < width && x < b.Dx(); x++ {
			gray := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if gray.Y > cut {
				raw[(y/8)*width+x] |= 1 << uint(y%8)
			}
		}
	}
	return raw
}

// FlipImage returns a flipped copy of src as *image.Gray, for panels
// mounted the other way round.
func FlipImage(src image.Image, mode int) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	w := bounds.Dx()
	h := bounds.Dy()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sx, sy int

			switch mode {
			case Flipped:
				sx, sy = w-1-x, y
			case UpsideDown:
				sx, sy = x, h-1-y
			case FlippedUpsideDown:
				sx, sy = w-1-x, h-1-y
			default:
				sx, sy = x, y
			}

			srcColor := color.GrayModel.Convert(src.At(bounds.Min.X+sx, bounds.Min.Y+sy)).(color.Gray)
			dst.SetGray(x, y, srcColor)
		}
	}

	return dst
}
