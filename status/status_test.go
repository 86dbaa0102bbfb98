package status

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSysfs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, v := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(v), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestReadBattery(t *testing.T) {
	dir := writeSysfs(t, map[string]string{
		"capacity":    "87\n",
		"voltage_now": "4012000\n",
		"status":      "Charging\n",
	})
	b, err := ReadBattery(dir)
	if err != nil {
		t.Fatal(err)
	}
	if b.Capacity != 87 || b.Voltage != 4.012 || !b.Charging || b.Bars() != 9 {
		t.Errorf("battery = %+v bars %d", b, b.Bars())
	}
}

func TestReadBatteryPartial(t *testing.T) {
	b, err := ReadBattery(writeSysfs(t, map[string]string{"capacity": "140"}))
	if err != nil {
		t.Fatal(err)
	}
	if b.Capacity != 100 || b.Voltage != 0 || b.Charging {
		t.Errorf("battery = %+v", b)
	}
	if _, err := ReadBattery(writeSysfs(t, map[string]string{"capacity": "lots"})); err == nil {
		t.Error("bad capacity should fail")
	}
	if _, err := ReadBattery(t.TempDir()); err == nil {
		t.Error("missing capacity should fail")
	}
}

type fakeNet struct {
	w   WiFi
	err error
}

func (f fakeNet) WiFi() (WiFi, error) { return f.w, f.err }

func TestLabels(t *testing.T) {
	tests := []struct {
		name      string
		snap      Snapshot
		batt, net string
	}{
		{"unavailable", Snapshot{}, "--", "--"},
		{"connected", Snapshot{BatteryOK: true, Battery: Battery{Capacity: 42}, WiFiOK: true, WiFi: WiFi{Enabled: true, Connected: true, SSID: "home"}}, "42%", "home"},
		{"off", Snapshot{WiFiOK: true}, "--", "OFF"},
		{"connecting", Snapshot{WiFiOK: true, WiFi: WiFi{Enabled: true, State: "Connecting"}}, "--", "Connecting"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.snap.BatteryLabel(); got != tt.batt {
				t.Errorf("BatteryLabel = %q, want %q", got, tt.batt)
			}
			if got := tt.snap.WiFiLabel(); got != tt.net {
				t.Errorf("WiFiLabel = %q, want %q", got, tt.net)
			}
		})
	}
}

func TestWiFiBars(t *testing.T) {
	for strength, want := range map[int]int{0: 0, 50: 4, 99: 7, 100: 7} {
		if got := (WiFi{Strength: strength}).Bars(); got != want {
			t.Errorf("Bars(%d) = %d, want %d", strength, got, want)
		}
	}
}

func TestMonitor(t *testing.T) {
	dir := writeSysfs(t, map[string]string{"capacity": "55"})
	m := NewMonitor(dir, fakeNet{err: errors.New("no dbus")}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for !m.Last().BatteryOK && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	s := m.Last()
	if !s.BatteryOK || s.Battery.Capacity != 55 {
		t.Errorf("snapshot = %+v", s)
	}
	if s.WiFiOK || s.WiFiLabel() != "--" {
		t.Error("failing network source should read as unavailable")
	}

	var nilMon *Monitor
	if nilMon.Last().BatteryOK {
		t.Error("nil monitor should be empty")
	}
}
