// Package status gathers the battery and Wi-Fi state shown on the quick
// panel.
package status

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("status", logger.InfoLevel)

// Battery is one reading of a power_supply node.
type Battery struct {
	Capacity int     // percent
	Voltage  float64 // volts
	Charging bool
}

// Bars scales the capacity to 0..10 for compact gauges.
func (b Battery) Bars() int {
	return int(math.Round(float64(b.Capacity) / 10.0))
}

// ReadBattery reads capacity, voltage_now and status from a sysfs
// power_supply directory such as /sys/class/power_supply/battery.
func ReadBattery(dir string) (Battery, error) {
	capacity, err := readInt(filepath.Join(dir, "capacity"))
	if err != nil {
		return Battery{}, fmt.Errorf("reading capacity failed: %w", err)
	}
	b := Battery{Capacity: max(0, min(100, capacity))}

	// voltage_now and status are optional on many gauges.
	if raw, err := readInt(filepath.Join(dir, "voltage_now")); err == nil {
		b.Voltage = float64(raw) / 1000000.0
	}
	if s, err := os.ReadFile(filepath.Join(dir, "status")); err == nil {
		b.Charging = strings.TrimSpace(string(s)) == "Charging"
	}
	return b, nil
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

// WiFi summarises the wireless link.
type WiFi struct {
	Enabled   bool
	Connected bool
	// Online is false for connected-but-no-internet states.
	Online   bool
	SSID     string
	Strength int // percent
	State    string
}

// Bars scales the signal strength to 0..7 like the status bar icons.
func (w WiFi) Bars() int {
	return max(0, min(7, w.Strength*8/100))
}

// NetworkSource reports the Wi-Fi state.
type NetworkSource interface {
	WiFi() (WiFi, error)
}

// Snapshot is the latest reading of everything. Zero-valued fields with
// their OK flag false mean the source was unavailable.
type Snapshot struct {
	Battery   Battery
	BatteryOK bool
	WiFi      WiFi
	WiFiOK    bool
	At        time.Time
}

// BatteryLabel is "87%" or "--".
func (s Snapshot) BatteryLabel() string {
	if !s.BatteryOK {
		return "--"
	}
	return fmt.Sprintf("%d%%", s.Battery.Capacity)
}

// WiFiLabel is the SSID, a state word, or "--".
func (s Snapshot) WiFiLabel() string {
	switch {
	case !s.WiFiOK:
		return "--"
	case !s.WiFi.Enabled:
		return "OFF"
	case s.WiFi.Connected && s.WiFi.SSID != "":
		return s.WiFi.SSID
	case s.WiFi.State != "":
		return s.WiFi.State
	}
	return "--"
}

// Monitor polls the sources in the background and keeps the last snapshot.
type Monitor struct {
	batteryDir string
	net        NetworkSource
	interval   time.Duration

	mu   sync.RWMutex
	last Snapshot
}

// NewMonitor builds a monitor; net may be nil when NetworkManager is not
// reachable.
func NewMonitor(batteryDir string, net NetworkSource, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Monitor{batteryDir: batteryDir, net: net, interval: interval}
}

// Poll takes one reading now and stores it.
func (m *Monitor) Poll() Snapshot {
	s := Snapshot{At: time.Now()}
	if m.batteryDir != "" {
		b, err := ReadBattery(m.batteryDir)
		if err != nil {
			lg.Debugf("battery: %v", err)
		} else {
			s.Battery, s.BatteryOK = b, true
		}
	}
	if m.net != nil {
		w, err := m.net.WiFi()
		if err != nil {
			lg.Debugf("wifi: %v", err)
		} else {
			s.WiFi, s.WiFiOK = w, true
		}
	}
	m.mu.Lock()
	m.last = s
	m.mu.Unlock()
	return s
}

// Run polls until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.Poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.interval):
			m.Poll()
		}
	}
}

func (m *Monitor) Last() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}
