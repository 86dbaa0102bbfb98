package menu

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"
	"unicode"

	"watchlauncher/apps"
	"watchlauncher/face"
	"watchlauncher/gesture"
	"watchlauncher/timers"

	"github.com/fogleman/gg"
)

var (
	colorWhite     = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colorGrey      = color.NRGBA{0x88, 0x88, 0x88, 0xFF}
	colorHighlight = color.NRGBA{0x33, 0x33, 0x33, 0xFF}
	colorAccent    = color.NRGBA{0xFF, 0x3B, 0x2F, 0xFF}
)

const drawerRows = 4

// DrawerScreen lists the installed apps. Swipes scroll, left/right step
// through initial letters as a filter, tap launches.
type DrawerScreen struct {
	ctx        context.Context
	configured bool
	cancelFn   context.CancelFunc
	parent     *Menu
	wg         sync.WaitGroup

	query      string
	letters    []string
	letter     int // index into letters, -1 for no filter
	list       []apps.App
	selection  int
	viewOffset int
}

func (m *Menu) NewDrawerScreen() *DrawerScreen {
	instance := &DrawerScreen{parent: m, letter: -1}
	instance.letters = initials(instance.all())
	return instance
}

func (instance *DrawerScreen) all() []apps.App {
	if instance.parent.Catalog == nil {
		return nil
	}
	return instance.parent.Catalog.All()
}

// initials returns the distinct upper-cased first letters in list order.
func initials(list []apps.App) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range list {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		r := []rune(name)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		l := string(unicode.ToUpper(r))
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// Selected returns the highlighted app.
func (instance *DrawerScreen) Selected() (apps.App, bool) {
	if instance.selection < 0 || instance.selection >= len(instance.list) {
		return apps.App{}, false
	}
	return instance.list[instance.selection], true
}

// setQuery lists apps whose name contains q.
func (instance *DrawerScreen) setQuery(q string) {
	instance.filter(q, false)
}

// filter narrows the list by substring, or by first letter when initial
// is set.
func (instance *DrawerScreen) filter(q string, initial bool) {
	instance.query = q
	instance.list = nil
	if c := instance.parent.Catalog; c != nil {
		if initial {
			instance.list = c.WithInitial(q)
		} else {
			instance.list = c.Filter(q)
		}
	}
	instance.selection = 0
	instance.viewOffset = 0
}

func (instance *DrawerScreen) stepLetter(dir int) {
	n := len(instance.letters) + 1 // plus "no filter"
	pos := (instance.letter + 1 + dir + n) % n
	instance.letter = pos - 1
	if instance.letter < 0 {
		instance.setQuery("")
		return
	}
	instance.filter(instance.letters[instance.letter], true)
}

func (instance *DrawerScreen) move(dir int) {
	if len(instance.list) == 0 {
		return
	}
	instance.selection = (instance.selection + dir + len(instance.list)) % len(instance.list)
	if instance.selection < instance.viewOffset {
		instance.viewOffset = instance.selection
	}
	if instance.selection >= instance.viewOffset+drawerRows {
		instance.viewOffset = instance.selection - drawerRows + 1
	}
}

func (instance *DrawerScreen) render() {
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

	title := "Apps"
	if instance.query != "" {
		title = fmt.Sprintf("Apps: %s", instance.query)
	}
	face.Text(dc, title, fw*0.06, header*0.7, size, true, colorWhite, 0)
	face.Text(dc, fmt.Sprintf("%d", len(instance.list)), fw*0.94, header*0.7, size, false, colorGrey, 1)
	dc.SetColor(colorGrey)
	dc.SetLineWidth(1)
	dc.DrawLine(0, header, fw, header)
	dc.Stroke()

	if len(instance.list) == 0 {
		face.Text(dc, "No apps", fw/2, fh*0.6, size, false, colorGrey, 0.5)
		parent.present(dc.Image())
		return
	}

	rowH := (fh - header) / drawerRows
	icon := int(rowH * 0.7)
	for row := range drawerRows {
		i := instance.viewOffset + row
		if i >= len(instance.list) {
			break
		}
		a := instance.list[i]
		y := header + float64(row)*rowH
		if i == instance.selection {
			dc.SetColor(colorHighlight)
			dc.DrawRoundedRectangle(2, y+1, fw-4, rowH-2, rowH*0.2)
			dc.Fill()
		}
		x := fw * 0.06
		if img, ok := a.Icon(icon); ok {
			dc.DrawImageAnchored(img, int(x)+icon/2, int(y+rowH/2), 0.5, 0.5)
		} else {
			dc.SetColor(colorAccent)
			dc.DrawCircle(x+float64(icon)/2, y+rowH/2, float64(icon)*0.3)
			dc.Fill()
		}
		face.Text(dc, a.Name, x+float64(icon)+fw*0.05, y+rowH/2+size*0.36, size, i == instance.selection, colorWhite, 0)
	}

	// Scroll hint
	if len(instance.list) > drawerRows {
		track := fh - header
		thumb := track * drawerRows / float64(len(instance.list))
		top := header + track*float64(instance.viewOffset)/float64(len(instance.list))
		dc.SetColor(colorGrey)
		dc.DrawRectangle(fw-2, top, 2, thumb)
		dc.Fill()
	}
	parent.present(dc.Image())
}

// launch reports true when the app started and the drawer is closing.
func (instance *DrawerScreen) launch(a apps.App) bool {
	if !instance.parent.launchApp(a) {
		if timers.SleepWithContext(instance.ctx, time.Second) {
			instance.render()
		}
		return false
	}
	go instance.parent.Pop()
	return true
}

// handle reports true when the screen is leaving.
func (instance *DrawerScreen) handle(evt gesture.Event) bool {
	parent := instance.parent
	parent.Touch()

	switch evt.Kind {
	case gesture.SwipeUp:
		instance.move(+1)
	case gesture.SwipeDown:
		if instance.selection == 0 {
			parent.Click()
			go parent.Pop()
			return true
		}
		instance.move(-1)
	case gesture.SwipeLeft:
		instance.stepLetter(+1)
	case gesture.SwipeRight:
		instance.stepLetter(-1)
	case gesture.DoubleTap:
		instance.letter = -1
		instance.setQuery("")
	case gesture.LongPress:
		go parent.Pop()
		return true
	case gesture.Tap:
		a, ok := instance.Selected()
		if !ok {
			return false
		}
		parent.Click()
		return instance.launch(a)
	default:
		return false
	}
	parent.Click()
	instance.render()
	return false
}

func (instance *DrawerScreen) Configure() {
	// Reset context
	instance.configured = true
	instance.ctx, instance.cancelFn = context.WithCancel(instance.parent.GlobalContext)
	instance.letter = -1
	instance.setQuery("")
}

// ConfigureWithArgs opens the drawer pre-filtered by the first string argument.
func (instance *DrawerScreen) ConfigureWithArgs(args ...any) {
	instance.Configure()
	if len(args) > 0 {
		if q, ok := args[0].(string); ok {
			instance.setQuery(q)
		}
	}
}

func (instance *DrawerScreen) Run() {
	if !instance.configured {
		panic("Attempted to call (*DrawerScreen).Run() before (*DrawerScreen).Configure()!")
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

func (instance *DrawerScreen) Pause() {
	instance.cancelFn()
	if ok := waitWithTimeout(&instance.wg, time.Second); !ok {
		lg.Warning("⚠️ Drawer pause timed out, goroutines may be stuck")
	}
}

func (instance *DrawerScreen) Stop() {
	instance.Pause()
	instance.configured = false
}
