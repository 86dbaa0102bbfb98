package menu

import (
	"context"
	"image"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"watchlauncher/anim"
	"watchlauncher/apps"
	"watchlauncher/config"
	"watchlauncher/gesture"
	"watchlauncher/selector"
	"watchlauncher/style"
	"watchlauncher/surface"

	"github.com/fogleman/gg"
)

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	j.entries = append(j.entries, s)
	j.mu.Unlock()
}

func (j *journal) has(s string) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Contains(j.entries, s)
}

type fakeScreen struct {
	name  string
	log   *journal
	panic bool
}

func (f *fakeScreen) Run() {
	f.log.add(f.name + ":run")
	if f.panic {
		panic("boom")
	}
}
func (f *fakeScreen) Pause()     { f.log.add(f.name + ":pause") }
func (f *fakeScreen) Stop()      { f.log.add(f.name + ":stop") }
func (f *fakeScreen) Configure() { f.log.add(f.name + ":configure") }
func (f *fakeScreen) ConfigureWithArgs(args ...any) {
	f.log.add(f.name + ":args")
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Animation.Period = config.Duration{Duration: 10 * time.Millisecond}
	cfg.IdleTimeout = config.Duration{}
	cfg.Input.HapticDuration = config.Duration{Duration: time.Millisecond}
	return cfg
}

func newTestMenu(t *testing.T, cfg config.Config, events <-chan gesture.Event) (*Menu, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder(96, 96)
	sel := selector.New(nil)
	sel.Restore()
	m := Init(context.Background(), Deps{
		Surface:  rec,
		Selector: sel,
		Events:   events,
		Config:   cfg,
		Catalog: apps.NewCatalog([]apps.App{
			{Name: "Zed", ID: "zed", Command: []string{"true"}},
			{Name: "alpha", ID: "alpha"},
			{Name: "Beta", ID: "beta", Command: []string{"true"}},
			{Name: "Launcher", ID: "self"},
		}, "self"),
	}, nil)
	t.Cleanup(m.Shutdown)
	return m, rec
}

func TestStack(t *testing.T) {
	m, _ := newTestMenu(t, testConfig(), nil)
	var log journal
	var quit []uint8
	m.GlobalQuit = func(code uint8) { quit = append(quit, code) }
	m.Register("a", &fakeScreen{name: "a", log: &log})
	m.Register("b", &fakeScreen{name: "b", log: &log})

	m.Push("a")
	eventually(t, "a running", func() bool { return log.has("a:run") })
	m.Push("missing")
	if m.Top() != "a" {
		t.Fatalf("top = %q after unknown push", m.Top())
	}

	m.PushWithArgs("b", 1)
	eventually(t, "b running", func() bool { return log.has("b:run") })
	if !log.has("a:pause") || !log.has("b:args") || m.Top() != "b" {
		t.Fatalf("push b: %v", log.entries)
	}

	m.Pop()
	if !log.has("b:stop") || m.Top() != "a" {
		t.Fatalf("pop: %v", log.entries)
	}

	m.Mask()
	m.Push("b")
	if m.Top() != "a" {
		t.Error("masked stack accepted a push")
	}
	m.Unmask()

	m.Pop()
	if len(quit) != 1 || quit[0] != 3 {
		t.Errorf("empty stack should raise GlobalQuit(3), got %v", quit)
	}
}

func TestToStart(t *testing.T) {
	m, _ := newTestMenu(t, testConfig(), nil)
	var log journal
	m.Register("home", &fakeScreen{name: "home", log: &log})
	m.Register("x", &fakeScreen{name: "x", log: &log})
	m.Register("y", &fakeScreen{name: "y", log: &log})

	m.Push("home")
	m.Push("x")
	m.Push("y")
	m.ToStart()
	if m.Top() != "home" || len(m.Stack) != 1 {
		t.Fatalf("top = %q, depth %d", m.Top(), len(m.Stack))
	}
	if !log.has("x:stop") || !log.has("y:stop") {
		t.Errorf("screens above home not stopped: %v", log.entries)
	}
}

func TestPanicRendersAlert(t *testing.T) {
	m, rec := newTestMenu(t, testConfig(), nil)
	var log journal
	m.Register("bad", &fakeScreen{name: "bad", log: &log, panic: true})
	m.Push("bad")
	eventually(t, "alert frame", func() bool {
		_, n := rec.Last()
		return n > 0
	})
	if !m.crashed.Load() {
		t.Error("crash not recorded")
	}
}

func TestIdleReturnsToFace(t *testing.T) {
	cfg := testConfig()
	cfg.IdleTimeout = config.Duration{Duration: 50 * time.Millisecond}
	events := make(chan gesture.Event)
	m, _ := newTestMenu(t, cfg, events)
	m.Register(FaceMenu, m.NewFaceScreen())
	m.Register(QuickMenu, m.NewQuickPanel())

	m.Push(FaceMenu)
	m.Push(QuickMenu)
	if m.Top() != QuickMenu {
		t.Fatalf("top = %q", m.Top())
	}
	eventually(t, "idle return", func() bool { return m.Top() == FaceMenu })
}

func send(t *testing.T, events chan<- gesture.Event, k gesture.Kind) {
	t.Helper()
	select {
	case events <- gesture.Event{Kind: k, At: time.Now()}:
	case <-time.After(2 * time.Second):
		t.Fatalf("nobody took %s", k)
	}
}

func TestFaceScreenRouting(t *testing.T) {
	events := make(chan gesture.Event)
	m, rec := newTestMenu(t, testConfig(), events)
	m.Register(FaceMenu, m.NewFaceScreen())
	m.Register(DrawerMenu, m.NewDrawerScreen())
	m.Register(QuickMenu, m.NewQuickPanel())

	m.Push(FaceMenu)
	eventually(t, "ticking frames", func() bool {
		_, n := rec.Last()
		return n > 3
	})
	img, _ := rec.Last()
	if b := img.Bounds(); b.Dx() != 96 || b.Dy() != 96 {
		t.Fatalf("frame bounds %v", b)
	}

	send(t, events, gesture.SwipeLeft)
	eventually(t, "cycle forward", func() bool { return m.Selector.Index() == 1 })
	send(t, events, gesture.SwipeRight)
	send(t, events, gesture.SwipeRight)
	eventually(t, "cycle back wraps", func() bool { return m.Selector.Index() == style.Count-1 })
	send(t, events, gesture.SwipeLeft)
	eventually(t, "back to first", func() bool { return m.Selector.Index() == 0 })

	send(t, events, gesture.DoubleTap)
	eventually(t, "assistant face", func() bool { return m.Selector.Style() == style.MissMinutes })
	send(t, events, gesture.DoubleTap)
	eventually(t, "assistant off", func() bool { return m.Selector.Style() == style.NothingDot })

	send(t, events, gesture.SwipeUp)
	eventually(t, "drawer", func() bool { return m.Top() == DrawerMenu })
	send(t, events, gesture.SwipeDown)
	eventually(t, "drawer dismissed", func() bool { return m.Top() == FaceMenu })

	send(t, events, gesture.SwipeDown)
	eventually(t, "quick panel", func() bool { return m.Top() == QuickMenu })
	send(t, events, gesture.Tap)
	eventually(t, "quick tap cycles", func() bool { return m.Selector.Index() == 1 })
	send(t, events, gesture.SwipeRight)
	eventually(t, "quick dismissed", func() bool { return m.Top() == FaceMenu })
}

func TestFaceStepAndPhase(t *testing.T) {
	cfg := testConfig()
	m, _ := newTestMenu(t, cfg, nil)
	fs := m.NewFaceScreen()
	if got := fs.step(style.NeonMinimal); got != 0.02 {
		t.Errorf("neon step = %v", got)
	}
	if got := fs.step(style.NothingDot); got != anim.DefaultStep {
		t.Errorf("default step = %v", got)
	}

	cfg.Animation.Step = 0.1
	m2, _ := newTestMenu(t, cfg, nil)
	if got := m2.NewFaceScreen().step(style.NeonMinimal); got != 0.1 {
		t.Errorf("override step = %v", got)
	}

	// The phase survives a pause.
	fs.Configure()
	fs.Run()
	eventually(t, "phase moves", func() bool { return fs.Phase() > 0 })
	fs.Pause()
	p := fs.Phase()
	time.Sleep(30 * time.Millisecond)
	if fs.Phase() != p {
		t.Error("phase advanced while paused")
	}
	fs.Configure()
	fs.Run()
	eventually(t, "phase resumes", func() bool { return fs.Phase() != p })
	fs.Stop()
}

func TestFaceFollowsSelector(t *testing.T) {
	m, rec := newTestMenu(t, testConfig(), nil)
	fs := m.NewFaceScreen()

	// Another screen changes the face while this one is not showing.
	m.Selector.Set(style.NeonMinimal.Index())
	if got := fs.clock.Step(); got != 0.02 {
		t.Errorf("step after change = %v", got)
	}
	if text, alpha := fs.label.Text(m.now()); text != style.NeonMinimal.DisplayName() || alpha != 1 {
		t.Errorf("label = %q %v", text, alpha)
	}
	if _, n := rec.Last(); n != 0 {
		t.Errorf("a paused face drew %d frames", n)
	}
}

func TestFaceFrameWithLabel(t *testing.T) {
	m, _ := newTestMenu(t, testConfig(), nil)
	now := time.Date(2026, 3, 1, 10, 9, 0, 0, time.UTC)
	m.Now = func() time.Time { return now }
	fs := m.NewFaceScreen()

	plain := fs.Frame(0)
	fs.label.Show("Nothing Dot", now)
	labelled := fs.Frame(0)
	if plain == nil || labelled == nil {
		t.Fatal("nil frame")
	}
	if samePixels(plain, labelled) {
		t.Error("label overlay did not change the frame")
	}
}

func samePixels(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ar, ag, ab, aa := a.At(x, y).RGBA()
			br, bg, bb, ba := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb || aa != ba {
				return false
			}
		}
	}
	return true
}

func TestDrawer(t *testing.T) {
	m, _ := newTestMenu(t, testConfig(), nil)
	d := m.NewDrawerScreen()
	d.Configure()

	names := func() []string {
		var out []string
		for _, a := range d.list {
			out = append(out, a.Name)
		}
		return out
	}
	if got := names(); !slices.Equal(got, []string{"alpha", "Beta", "Zed"}) {
		t.Fatalf("list = %v", got)
	}
	if !slices.Equal(d.letters, []string{"A", "B", "Z"}) {
		t.Fatalf("letters = %v", d.letters)
	}

	d.move(-1)
	if a, _ := d.Selected(); a.ID != "zed" {
		t.Errorf("move up from the top should wrap, got %s", a.ID)
	}

	for _, want := range []struct {
		letter string
		names  []string
	}{
		{"A", []string{"alpha"}},
		{"B", []string{"Beta"}},
	} {
		d.stepLetter(+1)
		if d.query != want.letter || !slices.Equal(names(), want.names) {
			t.Errorf("letter %q lists %v, want %q %v", d.query, names(), want.letter, want.names)
		}
		for _, n := range names() {
			if !strings.HasPrefix(strings.ToUpper(n), d.query) {
				t.Errorf("letter %q lists %q", d.query, n)
			}
		}
	}
	d.stepLetter(+1)
	if d.query != "Z" {
		t.Errorf("query = %q", d.query)
	}
	d.stepLetter(+1)
	if d.query != "" || len(d.list) != 3 {
		t.Errorf("cycling past the last letter should clear, got %q", d.query)
	}
	d.stepLetter(-1)
	if d.query != "Z" {
		t.Errorf("stepping back = %q", d.query)
	}

	d.ConfigureWithArgs("be")
	if !slices.Equal(names(), []string{"Beta"}) {
		t.Errorf("pre-filtered = %v", names())
	}
	d.render()
}

func TestQuickPanelDraws(t *testing.T) {
	m, rec := newTestMenu(t, testConfig(), nil)
	q := m.NewQuickPanel()
	q.render()
	if _, n := rec.Last(); n != 1 {
		t.Fatalf("frames = %d", n)
	}

	// Nothing to read from: labels fall back to "--".
	dc := gg.NewContext(64, 64)
	drawQuickPanel(dc, time.Now(), m.Status.Last(), style.PipBoy)
	drawDock(dc, m.Catalog.All(), 1)
	drawDock(dc, nil, -1)
}

func TestQuickPanelDock(t *testing.T) {
	cfg := testConfig()
	cfg.Pinned = []string{"beta", "missing", "zed", "alpha"}
	events := make(chan gesture.Event)
	m, _ := newTestMenu(t, cfg, events)
	q := m.NewQuickPanel()
	m.Register(FaceMenu, m.NewFaceScreen())
	m.Register(QuickMenu, q)

	m.Push(FaceMenu)
	m.Push(QuickMenu)
	var dock []string
	for _, a := range q.dock {
		dock = append(dock, a.Name)
	}
	if !slices.Equal(dock, []string{"Beta", "Zed", "alpha"}) {
		t.Fatalf("dock = %v", dock)
	}

	// Highlight Beta and open it; the panel closes on success.
	send(t, events, gesture.SwipeLeft)
	send(t, events, gesture.Tap)
	eventually(t, "back on the face", func() bool { return m.Top() == FaceMenu })
	if m.Selector.Index() != 0 {
		t.Errorf("launching from the dock changed the face to %d", m.Selector.Index())
	}
}
