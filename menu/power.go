package menu

import (
	"context"
	"image/color"
	"sync"
	"time"

	"watchlauncher/face"
	"watchlauncher/gesture"
	"watchlauncher/misc"

	"github.com/fogleman/gg"
)

// PowerMenuName is the registered name of the power menu.
const PowerMenuName = "power"

type powerOption struct {
	label string
	mode  uint8
}

// PowerMenu offers restart, reboot and switch off. It is reached with a
// long press on the quick panel.
type PowerMenu struct {
	ctx        context.Context
	configured bool
	cancelFn   context.CancelFunc
	parent     *Menu
	wg         sync.WaitGroup
	selection  int
	options    []powerOption
}

func (m *Menu) NewPowerMenu() *PowerMenu {
	return &PowerMenu{
		parent:    m,
		selection: 0,
		options: []powerOption{
			{"Restart launcher", misc.ExitRestart},
			{"Reboot watch", misc.ExitReboot},
			{"Switch off!", misc.ExitShutdown},
		},
	}
}

func (instance *PowerMenu) render() {
	parent := instance.parent
	w, h := parent.Surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()

	fw, fh := float64(w), float64(h)
	size := fh * 0.085
	header := fh * 0.18
	face.Text(dc, "Power", fw*0.06, header*0.7, size, true, colorWhite, 0)
	face.Text(dc, parent.Status.Last().BatteryLabel(), fw*0.94, header*0.7, size, false, colorGrey, 1)
	dc.SetColor(colorGrey)
	dc.SetLineWidth(1)
	dc.DrawLine(0, header, fw, header)
	dc.Stroke()

	rowH := (fh - header) / float64(len(instance.options)+1)
	for i, opt := range instance.options {
		y := header + rowH*(float64(i)+0.5)
		fg := colorWhite
		if i == instance.selection {
			dc.SetColor(colorWhite)
			dc.DrawRoundedRectangle(2, y, fw-4, rowH-2, rowH*0.2)
			dc.Fill()
			fg = colorHighlight
		}
		face.Text(dc, opt.label, fw*0.08, y+rowH/2+size*0.36, size, i == instance.selection, fg, 0)
	}
	parent.present(dc.Image())
}

func (instance *PowerMenu) handle_selection() {
	opt := instance.options[instance.selection]
	lg.Infof("⏻ %s selected", opt.label)
	instance.parent.RenderAlert(opt.label, "Please wait...")
	if instance.parent.GlobalQuit != nil {
		go instance.parent.GlobalQuit(opt.mode)
		return
	}
	go instance.parent.Pop()
}

// handle reports true when the screen is leaving.
func (instance *PowerMenu) handle(evt gesture.Event) bool {
	parent := instance.parent
	parent.Touch()

	switch evt.Kind {
	case gesture.SwipeUp:
		instance.selection = (instance.selection + 1) % len(instance.options)
	case gesture.SwipeDown:
		instance.selection = (instance.selection - 1 + len(instance.options)) % len(instance.options)
	case gesture.Tap:
		parent.Click()
		instance.handle_selection()
		return true
	case gesture.SwipeRight, gesture.LongPress:
		parent.Click()
		go parent.Pop()
		return true
	default:
		return false
	}
	parent.Click()
	instance.render()
	return false
}

func (instance *PowerMenu) Configure() {
	// Reset context
	instance.configured = true
	instance.selection = 0
	instance.ctx, instance.cancelFn = context.WithCancel(instance.parent.GlobalContext)
}

func (instance *PowerMenu) ConfigureWithArgs(args ...any) {
	// Unused
	instance.Configure()
}

func (instance *PowerMenu) Run() {
	if !instance.configured {
		panic("Attempted to call (*PowerMenu).Run() before (*PowerMenu).Configure()!")
	}

	instance.render()
	instance.wg.Go(func() {
		defer instance.parent.recoverScreen()
		for {
			select {
			case <-instance.ctx.Done():
				return
			case evt, ok := <-instance.parent.Events:
				if !ok {
					return
				}
				if instance.handle(evt) {
					return
				}
			}
		}
	})
}

func (instance *PowerMenu) Pause() {
	instance.cancelFn()
	if ok := waitWithTimeout(&instance.wg, time.Second); !ok {
		lg.Warning("⚠️ Power menu pause timed out, goroutines may be stuck")
	}
}

func (instance *PowerMenu) Stop() {
	instance.Pause()
	instance.configured = false
}
