package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchlauncher/anim"
	"watchlauncher/apps"
	"watchlauncher/assistant"
	"watchlauncher/config"
	"watchlauncher/db"
	"watchlauncher/face"
	"watchlauncher/gesture"
	"watchlauncher/haptics"
	"watchlauncher/keypad"
	"watchlauncher/menu"
	"watchlauncher/misc"
	"watchlauncher/selector"
	"watchlauncher/sh1107"
	"watchlauncher/status"
	"watchlauncher/style"
	"watchlauncher/surface"
	"watchlauncher/termview"
	"watchlauncher/wallpaper"

	"github.com/d2r2/go-logger"
)

// go build -ldflags "-X 'main.DEBUG_MODE=false'" .
var DEBUG_MODE string = "true"
var FW_VERSION string = "0.2.0 (16.10.2026)"
var EXIT_MODE uint8 = misc.ExitQuit // 0 - none, 1 - shutdown, 2 - reboot, 3 - restart launcher

var packages = []string{
	"anim", "apps", "config", "db", "face", "haptics", "keypad", "menu",
	"misc", "selector", "sh1107", "status", "termview", "wallpaper",
}

func exit(service string) {
	// DO NOT TOUCH
	if DEBUG_MODE == "true" {
		log.Println("👋 Goodbye")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := misc.PowerAction(ctx, EXIT_MODE, service, nil); err != nil {
		log.Printf("⚠️ %v", err)
	}
}

// parseAt accepts "15:04", "15:04:05" or RFC 3339.
func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	now := time.Now()
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}

// snapshot renders one frame of the current face to a BMP file.
func snapshot(cfg config.Config, sel *selector.Selector, at time.Time, path string) error {
	s := sel.Style()
	c := face.Context{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Now:    at,
		Phase:  anim.Phase(0),
	}
	if s == style.MissMinutes {
		frames := face.LoadFrames(cfg.Paths.Frames, cfg.FrameCount)
		frames.Wait()
		if frames.Len() == 0 {
			log.Printf("⚠️ No animation frames in %s", cfg.Paths.Frames)
		}
		c.Frame = frames.At(c.Phase)
	}
	wp := wallpaper.NewCache(cfg.Paths.Wallpaper, c.Width, c.Height)
	if err := wp.Reload(); err != nil {
		log.Printf("⚠️ Snapshot without wallpaper: %v", err)
	}
	img := face.Compose(s, c, wp.Image())
	if img == nil {
		return fmt.Errorf("nothing to draw at %dx%d", c.Width, c.Height)
	}
	return surface.WriteBMP(path, img)
}

func main() {
	configPath := flag.String("config", "watchlauncher.toml", "settings file")
	surfaceName := flag.String("surface", "", "override display.surface (sh1107, term, none)")
	snapshotPath := flag.String("snapshot", "", "render one frame to this BMP file and exit")
	styleIndex := flag.Int("style", -1, "start on this face index")
	at := flag.String("at", "", "clock time for -snapshot")
	service := flag.String("service", "watchlauncher", "systemd unit restarted by the power menu")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("⚠️ %v", err)
	}
	if *surfaceName != "" {
		cfg.Display.Surface = *surfaceName
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("⚠️ Bad settings in %s: %v", *configPath, err)
	}
	defer logger.FinalizeLogger()
	for _, pkg := range packages {
		logger.ChangePackageLogLevel(pkg, cfg.Level())
	}

	// Init db
	store, err := db.Open(cfg.Paths.Database)
	if err != nil {
		log.Printf("⚠️ Face choice will not persist: %v", err)
		store = nil
	}
	var sel *selector.Selector
	if store != nil {
		defer store.Close()
		sel = selector.New(store)
	} else {
		sel = selector.New(nil)
	}
	sel.Restore()
	if *styleIndex >= 0 {
		sel.Set(*styleIndex)
	}

	if *snapshotPath != "" {
		t, err := parseAt(*at)
		if err != nil {
			log.Fatalf("⚠️ %v", err)
		}
		if err := snapshot(cfg, sel, t, *snapshotPath); err != nil {
			log.Fatalf("⚠️ Snapshot failed: %v", err)
		}
		log.Printf("📸 %s written (%s)", *snapshotPath, sel.Style().DisplayName())
		return
	}

	// Create a global context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	global_quit := func(mode uint8) {
		log.Println("👋 Global quit raised")
		EXIT_MODE = mode
		cancel()
	}
	defer exit(*service)

	// Create signal handlers for interrupts or shutdown requests
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// Initialize the display and input
	var display surface.Surface
	var events <-chan gesture.Event
	var viewQuit <-chan struct{}
	w, h := cfg.Display.Width, cfg.Display.Height

	switch cfg.Display.Surface {
	case "sh1107":
		rot := sh1107.Normal
		if cfg.Display.UpsideDown {
			rot = sh1107.UpsideDown
		}
		oled, err := sh1107.Open(cfg.Display.Address, cfg.Display.Bus, rot, w, h)
		if err != nil {
			log.Fatalf("⚠️ Failed to open display: %v", err)
		}
		oled.Threshold = cfg.Display.Threshold
		oled.SetBrightness(cfg.Display.Brightness / 100)
		display = oled

		buttons, err := keypad.Open(cfg.Input.Buttons)
		if err != nil {
			log.Printf("⚠️ No buttons: %v", err)
		} else {
			events = keypad.Run(ctx, buttons, keypad.Options{
				LongPress: cfg.Input.LongPress.Duration,
				DoubleTap: cfg.Input.DoubleTap.Duration,
			})
		}

	case "term":
		view, err := termview.Open(w, h, termview.Options{
			Thresholds: cfg.Input.Gesture,
			LongPress:  cfg.Input.LongPress.Duration,
			DoubleTap:  cfg.Input.DoubleTap.Duration,
		})
		if err != nil {
			log.Fatalf("⚠️ %v", err)
		}
		display = view
		events = view.Run(ctx)
		viewQuit = view.Quit()

	default:
		display = surface.NewRecorder(w, h)
	}
	defer display.Close()

	var motor *haptics.Motor
	if cfg.Input.VibratorPin != "" {
		if motor, err = haptics.Open(cfg.Input.VibratorPin); err != nil {
			log.Printf("⚠️ No vibrator: %v", err)
			motor = nil
		}
	}
	defer motor.Stop()

	// Status sources. NetworkManager may be missing on a desktop.
	var network status.NetworkSource
	if nm, err := status.NewNM(); err == nil {
		network = nm
	} else {
		log.Printf("⚠️ Wi-Fi status unavailable: %v", err)
	}
	monitor := status.NewMonitor(cfg.Paths.Battery, network, 5*time.Second)
	go monitor.Run(ctx)

	wp := wallpaper.NewCache(cfg.Paths.Wallpaper, w, h)
	go wp.Reload()

	catalog := make([]apps.App, 0, len(cfg.Apps))
	for _, a := range cfg.Apps {
		catalog = append(catalog, apps.App{Name: a.Name, ID: a.ID, Command: a.Command})
	}

	launcher := apps.NewCatalog(catalog, cfg.SelfID)
	if pinned := launcher.Pinned(cfg.Pinned); len(pinned) < len(cfg.Pinned) {
		log.Printf("⚠️ %d of %d pinned apps made it into the dock", len(pinned), len(cfg.Pinned))
	}
	log.Printf("📱 %d apps in the drawer", launcher.Len())

	// Initialize menu system
	menus := menu.Init(ctx, menu.Deps{
		Surface:   display,
		Selector:  sel,
		Events:    events,
		Catalog:   launcher,
		Wallpaper: wp,
		Frames:    face.LoadFrames(cfg.Paths.Frames, cfg.FrameCount),
		Assistant: &assistant.Signal{},
		Status:    monitor,
		Haptics:   motor,
		Config:    cfg,
	}, global_quit)

	// Register menus
	menus.Register(menu.FaceMenu, menus.NewFaceScreen())
	menus.Register(menu.DrawerMenu, menus.NewDrawerScreen())
	menus.Register(menu.QuickMenu, menus.NewQuickPanel())
	menus.Register(menu.BatteryMenu, menus.NewBatteryAlert())
	menus.Register(menu.PowerMenuName, menus.NewPowerMenu())

	go menus.WatchBattery(ctx, 10*time.Second)

	log.Printf("⌚ watchlauncher v%s on %s (%dx%d), face %s", FW_VERSION, cfg.Display.Surface, w, h, sel.Style().DisplayName())

	// Run the watch face
	menus.Push(menu.FaceMenu)

	log.Println("Press CTRL+C to quit")
	select {
	case <-sigs:
		log.Println("Interrupt detected, exiting")
	case <-viewQuit:
		log.Println("Quit requested from the terminal")
	case <-ctx.Done():
	}

	// Wait for all contexts to close
	menus.Shutdown()
	log.Println("🛑 End of main() reached")
}
