package menu

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"watchlauncher/apps"
	"watchlauncher/face"
	"watchlauncher/gesture"
	"watchlauncher/status"
	"watchlauncher/style"
	"watchlauncher/timers"

	"github.com/fogleman/gg"
)

// QuickPanel shows time, date, battery, Wi-Fi, the pinned app dock and the
// current face. Swipe left walks the dock, tap launches the highlighted app
// or cycles the face when none is, double tap refreshes the status, long
// press opens the power menu and swipe right goes back.
type QuickPanel struct {
	ctx        context.Context
	configured bool
	cancelFn   context.CancelFunc
	parent     *Menu
	wg         sync.WaitGroup
	ticker     *timers.Ticker
	renderLock sync.Mutex

	dock    []apps.App
	dockSel int // -1 when no dock app is highlighted
}

func (m *Menu) NewQuickPanel() *QuickPanel {
	instance := &QuickPanel{parent: m, dockSel: -1}
	instance.ticker = timers.NewTicker(time.Second, func(time.Time) { instance.render() })
	return instance
}

func (instance *QuickPanel) render() {
	instance.renderLock.Lock()
	defer instance.renderLock.Unlock()

	parent := instance.parent
	w, h := parent.Surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(color.Black)
	dc.Clear()
	drawQuickPanel(dc, parent.now(), parent.Status.Last(), parent.Selector.Style())
	drawDock(dc, instance.dock, instance.dockSel)
	parent.present(dc.Image())
}

// drawDock lays the pinned apps out in one centred row above the face name.
func drawDock(dc *gg.Context, dock []apps.App, selected int) {
	if len(dock) == 0 {
		return
	}
	fw, fh := float64(dc.Width()), float64(dc.Height())
	cell := min(fw/float64(apps.MaxPinned), fh*0.13)
	icon := int(cell * 0.8)
	x0 := (fw - cell*float64(len(dock))) / 2
	cy := fh * 0.8
	for i, a := range dock {
		cx := x0 + cell*(float64(i)+0.5)
		if i == selected {
			dc.SetColor(colorWhite)
			dc.SetLineWidth(1)
			dc.DrawRoundedRectangle(cx-cell/2+0.5, cy-cell/2+0.5, cell-1, cell-1, cell*0.2)
			dc.Stroke()
		}
		if img, ok := a.Icon(icon); ok {
			dc.DrawImageAnchored(img, int(cx), int(cy), 0.5, 0.5)
			continue
		}
		dc.SetColor(colorAccent)
		dc.DrawCircle(cx, cy, float64(icon)*0.3)
		dc.Fill()
	}
}

func drawQuickPanel(dc *gg.Context, now time.Time, snap status.Snapshot, s style.Style) {
	fw, fh := float64(dc.Width()), float64(dc.Height())
	small := fh * 0.075

	face.Text(dc, face.HHMM(now), fw/2, fh*0.26, fh*0.2, true, colorWhite, 0.5)
	date := fmt.Sprintf("%s %d %s", face.DayLabel(now), now.Day(), face.MonthLabel(now))
	face.Text(dc, date, fw/2, fh*0.37, small, false, colorGrey, 0.5)

	// Battery gauge
	x0, y0 := fw*0.1, fh*0.47
	bw, bh := fw*0.45, fh*0.09
	dc.SetColor(colorWhite)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0, y0, bw, bh)
	dc.Stroke()
	dc.DrawRectangle(x0+bw, y0+bh*0.3, bw*0.05, bh*0.4)
	dc.Fill()
	if snap.BatteryOK {
		fill := colorWhite
		if snap.Battery.Capacity <= 15 && !snap.Battery.Charging {
			fill = colorAccent
		}
		dc.SetColor(fill)
		dc.DrawRectangle(x0+2, y0+2, (bw-4)*float64(snap.Battery.Bars())/10, bh-4)
		dc.Fill()
	}
	label := snap.BatteryLabel()
	if snap.BatteryOK && snap.Battery.Charging {
		label += "+"
	}
	face.Text(dc, label, fw*0.9, y0+bh*0.5+small*0.36, small, true, colorWhite, 1)

	// Wi-Fi bars
	y1 := fh * 0.66
	bars := 0
	if snap.WiFiOK && snap.WiFi.Enabled {
		bars = snap.WiFi.Bars()
	}
	barW := fw * 0.025
	for i := range 7 {
		bhI := fh * 0.012 * float64(i+1)
		c := colorHighlight
		if i < bars {
			c = colorWhite
		}
		dc.SetColor(c)
		dc.DrawRectangle(x0+float64(i)*barW*1.5, y1-bhI, barW, bhI)
		dc.Fill()
	}
	face.Text(dc, snap.WiFiLabel(), fw*0.9, y1, small, false, colorWhite, 1)

	// Current face
	name := fmt.Sprintf("%s  %d/%d", s.DisplayName(), s.Index()+1, style.Count)
	face.Text(dc, name, fw/2, fh*0.95, small, false, colorGrey, 0.5)
}

// handle reports true when the screen is leaving.
func (instance *QuickPanel) handle(evt gesture.Event) bool {
	parent := instance.parent
	parent.Touch()

	switch evt.Kind {
	case gesture.SwipeLeft:
		if len(instance.dock) == 0 {
			return false
		}
		parent.Click()
		instance.renderLock.Lock()
		instance.dockSel++
		if instance.dockSel >= len(instance.dock) {
			instance.dockSel = -1
		}
		instance.renderLock.Unlock()
		instance.render()
	case gesture.Tap:
		parent.Click()
		if instance.dockSel >= 0 {
			if parent.launchApp(instance.dock[instance.dockSel]) {
				go parent.Pop()
				return true
			}
			if timers.SleepWithContext(instance.ctx, time.Second) {
				instance.render()
			}
			return false
		}
		parent.Selector.Cycle(+1)
		instance.render()
	case gesture.SwipeRight, gesture.SwipeUp:
		parent.Click()
		go parent.Pop()
		return true
	case gesture.DoubleTap:
		if parent.Status != nil {
			parent.Status.Poll()
		}
		instance.render()
	case gesture.LongPress:
		parent.Click()
		go parent.Push(PowerMenuName)
		return true
	}
	return false
}

func (instance *QuickPanel) Configure() {
	// Reset context
	instance.configured = true
	instance.ctx, instance.cancelFn = context.WithCancel(instance.parent.GlobalContext)
	instance.dockSel = -1
	instance.dock = nil
	if instance.parent.Catalog != nil {
		instance.dock = instance.parent.Catalog.Pinned(instance.parent.Config.Pinned)
	}
}

func (instance *QuickPanel) ConfigureWithArgs(args ...any) {
	// Unused
	instance.Configure()
}

func (instance *QuickPanel) Run() {
	if !instance.configured {
		panic("Attempted to call (*QuickPanel).Run() before (*QuickPanel).Configure()!")
	}

	instance.render()
	instance.ticker.Start(instance.ctx)
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

func (instance *QuickPanel) Pause() {
	instance.cancelFn()
	instance.ticker.Stop()
	if ok := waitWithTimeout(&instance.wg, time.Second); !ok {
		lg.Warning("⚠️ Quick panel pause timed out, goroutines may be stuck")
	}
}

func (instance *QuickPanel) Stop() {
	instance.Pause()
	instance.configured = false
}
