package menu

import (
	"context"
	"image"
	"sync"
	"time"

	"watchlauncher/anim"
	"watchlauncher/assistant"
	"watchlauncher/face"
	"watchlauncher/gesture"
	"watchlauncher/haptics"
	"watchlauncher/style"

	"github.com/fogleman/gg"
)

// FaceScreen is the home screen: the selected face animated by the tick
// clock, with the face name fading in on changes.
type FaceScreen struct {
	ctx        context.Context
	configured bool
	running    bool
	cancelFn   context.CancelFunc
	parent     *Menu
	wg         sync.WaitGroup

	clock *anim.TickClock
	label *LabelFade
	mouth *assistant.Mouth

	// Face to return to when the assistant face is toggled off.
	beforeAssistant style.Style
	renderLock      sync.Mutex
}

func (m *Menu) NewFaceScreen() *FaceScreen {
	instance := &FaceScreen{
		parent:          m,
		label:           NewLabelFade(m.Config.Label.Delay.Duration, m.Config.Label.Fade.Duration),
		mouth:           assistant.NewMouth(m.Assistant),
		beforeAssistant: style.NothingDot,
	}
	instance.clock = anim.NewTickClock(m.Config.Animation.Period.Duration, instance.step(m.Selector.Style()), instance.tick)
	m.Selector.OnChange(instance.changed)
	return instance
}

func (instance *FaceScreen) step(s style.Style) float64 {
	if override := instance.parent.Config.Animation.Step; override > 0 {
		return override
	}
	return face.Step(s)
}

func (instance *FaceScreen) tick(p anim.Phase) {
	defer instance.parent.recoverScreen()
	instance.render(p)
}

// Frame draws the face at phase p without presenting it.
func (instance *FaceScreen) Frame(p anim.Phase) image.Image {
	parent := instance.parent
	s := parent.Selector.Style()
	now := parent.now()
	w, h := parent.Surface.Size()

	c := face.Context{
		Width:     w,
		Height:    h,
		Now:       now,
		Phase:     p,
		MouthOpen: instance.mouth.Tick(now),
	}
	if s == style.MissMinutes {
		c.Frame = parent.Frames.At(p)
	}
	img := face.Compose(s, c, parent.Wallpaper.Image())
	if img == nil {
		return nil
	}

	if text, alpha := instance.label.Text(now); alpha > 0 {
		dc := gg.NewContextForImage(img)
		size := float64(min(w, h)) * 0.075
		face.Pill(dc, text, float64(w)/2, float64(h)*0.86, size, alpha)
		img = dc.Image()
	}
	return img
}

func (instance *FaceScreen) render(p anim.Phase) {
	instance.renderLock.Lock()
	defer instance.renderLock.Unlock()
	instance.parent.present(instance.Frame(p))
}

// changed applies a new selection from any screen: its preferred step and
// the name label. The frame is redrawn only while the face is showing.
func (instance *FaceScreen) changed(s style.Style) {
	instance.clock.SetStep(instance.step(s))
	instance.label.Show(s.DisplayName(), instance.parent.now())
	if instance.clock.Attached() {
		instance.render(instance.clock.Phase())
	}
}

func (instance *FaceScreen) toggleAssistant() style.Style {
	sel := instance.parent.Selector
	if cur := sel.Style(); cur != style.MissMinutes {
		instance.beforeAssistant = cur
		return sel.Set(style.MissMinutes.Index())
	}
	return sel.Set(instance.beforeAssistant.Index())
}

// handle routes one gesture. It reports true when the screen is leaving.
func (instance *FaceScreen) handle(evt gesture.Event) bool {
	parent := instance.parent
	lg.Debugf("face: %s", evt.Kind)

	switch evt.Kind {
	case gesture.SwipeLeft:
		parent.Click()
		parent.Selector.Cycle(+1)
	case gesture.SwipeRight:
		parent.Click()
		parent.Selector.Cycle(-1)
	case gesture.SwipeUp:
		parent.Click()
		go parent.Push(DrawerMenu)
		return true
	case gesture.SwipeDown:
		parent.Click()
		go parent.Push(QuickMenu)
		return true
	case gesture.DoubleTap:
		parent.Click()
		instance.toggleAssistant()
	case gesture.LongPress:
		parent.Haptics.Play(instance.ctx, haptics.Bump(parent.Config.Input.HapticDuration.Duration))
		if err := parent.Wallpaper.Reload(); err != nil {
			lg.Warningf("wallpaper reload: %v", err)
		}
		instance.render(instance.clock.Phase())
	case gesture.Tap:
		instance.label.Show(parent.Selector.Style().DisplayName(), parent.now())
	}
	return false
}

func (instance *FaceScreen) Configure() {
	// Reset context
	instance.configured = true
	instance.ctx, instance.cancelFn = context.WithCancel(instance.parent.GlobalContext)
}

func (instance *FaceScreen) ConfigureWithArgs(args ...any) {
	// Unused
	instance.Configure()
}

func (instance *FaceScreen) Run() {
	if !instance.configured {
		panic("Attempted to call (*FaceScreen).Run() before (*FaceScreen).Configure()!")
	}
	if instance.running {
		panic("Attempted to run multiple entries of (*FaceScreen).Run()")
	}
	instance.running = true

	s := instance.parent.Selector.Style()
	instance.clock.SetStep(instance.step(s))
	instance.label.Show(s.DisplayName(), instance.parent.now())
	instance.render(instance.clock.Phase())
	instance.clock.Attach(instance.ctx)

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

func (instance *FaceScreen) halt(what string) {
	if instance.cancelFn != nil {
		instance.cancelFn()
	}
	instance.clock.Detach()
	if ok := waitWithTimeout(&instance.wg, time.Second); !ok {
		lg.Warningf("⚠️ Face screen %s timed out, goroutines may be stuck", what)
	} else {
		instance.running = false
	}
}

func (instance *FaceScreen) Pause() {
	instance.halt("pause")
}

func (instance *FaceScreen) Stop() {
	instance.halt("stop")
	instance.label.Hide()
	instance.configured = false
}

// Phase exposes the animation phase, which survives Pause.
func (instance *FaceScreen) Phase() anim.Phase {
	return instance.clock.Phase()
}
