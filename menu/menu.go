package menu

import (
	"context"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"watchlauncher/apps"
	"watchlauncher/assistant"
	"watchlauncher/config"
	"watchlauncher/face"
	"watchlauncher/gesture"
	"watchlauncher/haptics"
	"watchlauncher/selector"
	"watchlauncher/status"
	"watchlauncher/surface"
	"watchlauncher/timers"
	"watchlauncher/wallpaper"

	"github.com/d2r2/go-logger"
	"github.com/fogleman/gg"
)

var lg = logger.NewPackageLogger("menu", logger.InfoLevel)

type MenuInstance interface {
	Run()                     // Starts the menu.
	Pause()                   // Exits the menu while retaining state, and can be resumed with Run().
	Stop()                    // Exits the menu and destroys any existing state.
	Configure()               // Required to be called before using Run(). Otherwise, a panic will occur.
	ConfigureWithArgs(...any) // Can be called anytime to passthrough arguments.
}

// Registered screen names.
const (
	FaceMenu   = "face"
	DrawerMenu = "drawer"
	QuickMenu  = "quick"
)

// Deps are the collaborators shared by every screen. Only Surface and
// Selector are required.
type Deps struct {
	Surface   surface.Surface
	Selector  *selector.Selector
	Events    <-chan gesture.Event
	Catalog   *apps.Catalog
	Wallpaper *wallpaper.Cache
	Frames    *face.FrameSet
	Assistant *assistant.Signal
	Status    *status.Monitor
	Haptics   *haptics.Motor
	Config    config.Config
	// Now defaults to time.Now.
	Now func() time.Time
}

type Menu struct {
	Stack         []MenuInstance
	Menus         map[string]MenuInstance
	CurrentMenu   MenuInstance
	GlobalContext context.Context
	GlobalCancel  context.CancelFunc

	Deps
	Timers map[string]*timers.ResettableTimer

	GlobalQuit func(uint8)

	lock        sync.RWMutex
	presentLock sync.Mutex
	masked      bool
	crashed     atomic.Bool
}

// Mask sets a flag that prevents any menus from being pushed or popped.
// This is useful when a menu wants to temporarily block all other menus from being accessed.
func (m *Menu) Mask() {
	m.lock.Lock()
	m.masked = true
	m.lock.Unlock()
}

func (m *Menu) Unmask() {
	m.lock.Lock()
	m.masked = false
	m.lock.Unlock()
}

// Top returns the name of the menu on top of the stack.
func (m *Menu) Top() string {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if len(m.Stack) == 0 {
		return ""
	}
	top := m.Stack[len(m.Stack)-1]
	for name, mi := range m.Menus {
		if mi == top {
			return name
		}
	}
	return ""
}

// Run the menu at the given index in the stack.
// If the menu is already running, do nothing.
// If the menu crashes with a panic, buzz, render an alert and return to the watch face.
func (m *Menu) run(index int) {
	if m.CurrentMenu == m.Stack[index] {
		return
	}
	m.CurrentMenu = m.Stack[index]

	go func() {
		defer m.recoverScreen()
		m.CurrentMenu.Run()
	}()
}

// recoverScreen must be deferred at the top of every screen goroutine.
func (m *Menu) recoverScreen() {
	if r := recover(); r != nil {
		lg.Errorf("💥 Recovering from panic crash in screen: %v", r)
		m.crashed.Store(true)
		m.Haptics.Play(m.GlobalContext, haptics.Bump(m.Config.Input.HapticDuration.Duration))
		m.RenderAlert("Crashed!", "Returning to", "the watch face.")
		go func() {
			if timers.SleepWithContext(m.GlobalContext, 3*time.Second) {
				m.ToStart()
			}
		}()
	}
}

// ToStart navigates to the watch face and stops all menus above it.
// This function is thread-safe and can be called from any goroutine.
func (m *Menu) ToStart() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.masked || len(m.Stack) == 0 {
		return
	}
	crashed := m.crashed.Swap(false)
	if len(m.Stack) == 1 && m.CurrentMenu == m.Stack[0] && !crashed {
		return
	}

	for len(m.Stack) > 1 {
		m.Stack[len(m.Stack)-1].Stop()
		m.Stack = m.Stack[:len(m.Stack)-1]
	}
	if m.CurrentMenu == m.Stack[0] {
		// The face crashed; restart it from scratch.
		m.Stack[0].Stop()
		m.CurrentMenu = nil
	}
	m.Stack[0].Configure()
	m.run(0)
}

// Pushes a menu onto the stack and runs it, pausing the current one.
// Unknown names are ignored.
func (m *Menu) Push(menu string) {
	m.PushWithArgs(menu)
}

// Pushes a menu onto the stack and runs it with the given arguments.
func (m *Menu) PushWithArgs(menu string, args ...any) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.masked {
		return
	}

	target := m.Menus[menu]
	if target == nil {
		lg.Warningf("no menu registered as %q", menu)
		return
	}
	if len(args) > 0 {
		target.ConfigureWithArgs(args...)
	} else {
		target.Configure()
	}
	if m.CurrentMenu != nil {
		m.CurrentMenu.Pause()
	}
	m.Stack = append(m.Stack, target)
	m.Touch()
	m.run(len(m.Stack) - 1)
}

// Pops the current menu off the stack and runs the previous menu.
// If the stack is empty, raises GlobalQuit.
func (m *Menu) Pop() {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.masked {
		return
	}

	if len(m.Stack) == 0 {
		return
	}

	// Pre-configure the next menu if it exists
	if len(m.Stack) > 1 {
		m.Stack[len(m.Stack)-2].Configure()
	}

	// Stop the current menu
	m.Stack[len(m.Stack)-1].Stop()

	// Pop the current menu
	m.Stack = m.Stack[:len(m.Stack)-1]

	if len(m.Stack) > 0 {
		m.run(len(m.Stack) - 1)
	} else {
		lg.Warning("⁉️ Stack is empty, raising GlobalQuit")
		m.CurrentMenu = nil
		if m.GlobalQuit != nil {
			m.GlobalQuit(3)
		}
	}
}

func (m *Menu) Register(name string, instance MenuInstance) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.Menus == nil {
		m.Menus = make(map[string]MenuInstance)
	}
	m.Menus[name] = instance
}

// Touch postpones the idle timeout.
func (m *Menu) Touch() {
	if t := m.Timers["idle"]; t != nil {
		t.Reset()
	}
}

// idle drops any secondary screen back to the watch face.
func (m *Menu) idle() {
	m.lock.RLock()
	depth := len(m.Stack)
	m.lock.RUnlock()
	if depth > 1 {
		lg.Info("⏾ Idle, returning to the watch face")
		m.ToStart()
	}
}

// launchApp starts a. A failure buzzes and leaves an alert on screen.
func (m *Menu) launchApp(a apps.App) bool {
	if m.Catalog == nil {
		return false
	}
	if err := m.Catalog.Launch(context.WithoutCancel(m.GlobalContext), a.ID); err != nil {
		lg.Errorf("❌ %v", err)
		m.Haptics.Play(m.GlobalContext, haptics.Bump(m.Config.Input.HapticDuration.Duration))
		m.RenderAlert("Can't open", a.Name)
		return false
	}
	lg.Infof("🚀 Opened %s", a.Name)
	return true
}

// Click plays the short acknowledgement pattern.
func (m *Menu) Click() {
	m.Haptics.Play(m.GlobalContext, haptics.Click(m.Config.Input.HapticDuration.Duration))
}

func (m *Menu) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// present sends one frame to the surface; screens may race on it.
func (m *Menu) present(img image.Image) {
	if img == nil {
		return
	}
	m.presentLock.Lock()
	defer m.presentLock.Unlock()
	if err := m.Surface.Present(img); err != nil {
		lg.Warningf("present: %v", err)
	}
}

// RenderAlert shows a few centred lines on black.
func (m *Menu) RenderAlert(lines ...string) {
	w, h := m.Surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	dc := gg.NewContext(w, h)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	size := float64(min(w, h)) * 0.1
	top := float64(h)/2 - float64(len(lines)-1)*size*0.7
	for i, line := range lines {
		face.Text(dc, line, float64(w)/2, top+float64(i)*size*1.4+size*0.36, size, i == 0, colorWhite, 0.5)
	}
	m.present(dc.Image())
}

func (m *Menu) Shutdown() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, menu := range m.Stack {
		menu.Stop()
	}
	m.Stack = nil
	m.CurrentMenu = nil
	for _, timer := range m.Timers {
		timer.Stop()
	}
	m.GlobalCancel()
}

func waitWithTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true // Completed successfully
	case <-time.After(timeout):
		return false // Timed out
	}
}

func Init(ctx context.Context, deps Deps, globalquit func(uint8)) *Menu {
	menu_ctx, menu_cancel := context.WithCancel(ctx)

	m := &Menu{
		GlobalContext: menu_ctx,
		GlobalCancel:  menu_cancel,
		Deps:          deps,
		Timers:        make(map[string]*timers.ResettableTimer),
		GlobalQuit:    globalquit,
	}
	if idle := deps.Config.IdleTimeout.Duration; idle > 0 {
		m.Timers["idle"] = timers.New(menu_ctx, idle, false, func() { go m.idle() })
	}
	return m
}
