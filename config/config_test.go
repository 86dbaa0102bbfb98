package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/d2r2/go-logger"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Animation.Period.Duration != 50*time.Millisecond {
		t.Errorf("period = %v", cfg.Animation.Period)
	}
	if cfg.Input.Gesture.MinDistance != 80 || cfg.Input.Gesture.MinVelocity != 300 {
		t.Errorf("thresholds = %+v", cfg.Input.Gesture)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Width != 128 {
		t.Errorf("width = %d", cfg.Display.Width)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlauncher.toml")
	data := `
log_level = "debug"
idle_timeout = "30s"
pinned = ["org.term"]

[display]
surface = "term"
width = 240
height = 240

[label]
delay = "2s"

[input.gesture]
min_distance = 40.0
min_velocity = 0.0

[[apps]]
name = "Terminal"
id = "org.term"
command = ["xterm"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Display.Surface != "term" || cfg.Display.Width != 240 {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Display.Address != 0x3c {
		t.Errorf("untouched field lost its default: %#x", cfg.Display.Address)
	}
	if cfg.IdleTimeout.Duration != 30*time.Second || cfg.Label.Delay.Duration != 2*time.Second {
		t.Errorf("durations = %v %v", cfg.IdleTimeout, cfg.Label.Delay)
	}
	if cfg.Label.Fade.Duration != 600*time.Millisecond {
		t.Errorf("fade default lost: %v", cfg.Label.Fade)
	}
	if cfg.Input.Gesture.MinDistance != 40 || cfg.Input.Gesture.MinVelocity != 0 {
		t.Errorf("gesture = %+v", cfg.Input.Gesture)
	}
	if len(cfg.Apps) != 1 || cfg.Apps[0].Command[0] != "xterm" {
		t.Errorf("apps = %+v", cfg.Apps)
	}
	if len(cfg.Pinned) != 1 || cfg.Pinned[0] != "org.term" {
		t.Errorf("pinned = %v", cfg.Pinned)
	}
	if cfg.Level() != logger.DebugLevel {
		t.Errorf("level = %v", cfg.Level())
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "display = ["},
		{"surface", "[display]\nsurface = \"crt\""},
		{"size", "[display]\nwidth = 0"},
		{"duration", "idle_timeout = \"soon\""},
		{"negative threshold", "[input.gesture]\nmin_distance = -1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
