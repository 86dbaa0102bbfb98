// Package config loads the launcher settings from a TOML file layered over
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"watchlauncher/gesture"

	"github.com/BurntSushi/toml"
	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("config", logger.InfoLevel)

// Duration decodes strings like "1200ms" or "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Display struct {
	// Surface is "sh1107", "term" or "none".
	Surface string `toml:"surface"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	// I2C bus settings for the OLED.
	Address    uint8   `toml:"address"`
	Bus        int     `toml:"bus"`
	UpsideDown bool    `toml:"upside_down"`
	Brightness float64 `toml:"brightness"`
	// Threshold is the luminance cut for 1-bit panels, 0..1.
	Threshold float64 `toml:"threshold"`
}

type Animation struct {
	Period Duration `toml:"period"`
	// Step overrides every style's own step when > 0.
	Step float64 `toml:"step"`
}

type Label struct {
	Delay Duration `toml:"delay"`
	Fade  Duration `toml:"fade"`
}

type Input struct {
	Gesture        gesture.Thresholds `toml:"gesture"`
	DoubleTap      Duration           `toml:"double_tap"`
	LongPress      Duration           `toml:"long_press"`
	Buttons        map[string]string  `toml:"buttons"` // gesture kind -> GPIO pin name
	VibratorPin    string             `toml:"vibrator_pin"`
	HapticDuration Duration           `toml:"haptic_duration"`
}

type Paths struct {
	Database  string `toml:"database"`
	Wallpaper string `toml:"wallpaper"`
	Frames    string `toml:"frames"`
	Battery   string `toml:"battery"`
}

type App struct {
	Name    string   `toml:"name"`
	ID      string   `toml:"id"`
	Command []string `toml:"command"`
}

type Config struct {
	LogLevel    string    `toml:"log_level"`
	Display     Display   `toml:"display"`
	Animation   Animation `toml:"animation"`
	Label       Label     `toml:"label"`
	Input       Input     `toml:"input"`
	Paths       Paths     `toml:"paths"`
	IdleTimeout Duration  `toml:"idle_timeout"`
	FrameCount  int       `toml:"frame_count"`
	SelfID      string    `toml:"self_id"`
	Apps        []App     `toml:"apps"`
	// Pinned app ids shown in the quick panel dock, at most five.
	Pinned      []string  `toml:"pinned"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Display: Display{
			Surface:    "sh1107",
			Width:      128,
			Height:     128,
			Address:    0x3c,
			Bus:        0,
			UpsideDown: true,
			Brightness: 100,
			Threshold:  0.5,
		},
		Animation: Animation{Period: Duration{50 * time.Millisecond}},
		Label: Label{
			Delay: Duration{1200 * time.Millisecond},
			Fade:  Duration{600 * time.Millisecond},
		},
		Input: Input{
			Gesture:   gesture.DefaultThresholds(),
			DoubleTap: Duration{gesture.DefaultDoubleTapWindow},
			LongPress: Duration{500 * time.Millisecond},
			Buttons: map[string]string{
				"swipe-left":  "GPIO5",
				"swipe-right": "GPIO6",
				"swipe-up":    "GPIO13",
				"swipe-down":  "GPIO19",
				"tap":         "GPIO26",
			},
			HapticDuration: Duration{30 * time.Millisecond},
		},
		Paths: Paths{
			Database:  "/var/lib/watchlauncher/kvstore.db",
			Frames:    "/usr/share/watchlauncher/mm_frames",
			Battery:   "/sys/class/power_supply/battery",
			Wallpaper: "",
		},
		IdleTimeout: Duration{10 * time.Second},
		FrameCount:  36,
		SelfID:      "com.watchlauncher",
	}
}

// Load decodes path over Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		lg.Infof("no config at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		lg.Warningf("unknown keys in %s: %v", path, keys)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings that would leave nothing to draw on.
func (c Config) Validate() error {
	switch c.Display.Surface {
	case "sh1107", "term", "none":
	default:
		return fmt.Errorf("unknown surface %q", c.Display.Surface)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Input.Gesture.MinDistance < 0 || c.Input.Gesture.MinVelocity < 0 {
		return errors.New("gesture thresholds must not be negative")
	}
	if c.Animation.Period.Duration < 0 {
		return errors.New("animation period must not be negative")
	}
	return nil
}

// Level maps LogLevel onto the go-logger levels.
func (c Config) Level() logger.LogLevel {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return logger.DebugLevel
	case "warn", "warning":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
