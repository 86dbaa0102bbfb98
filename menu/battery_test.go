package menu

import (
	"testing"
	"time"

	"watchlauncher/status"
)

func TestLevelOf(t *testing.T) {
	tests := []struct {
		capacity int
		want     BatteryLevel
	}{
		{100, BatteryOK},
		{26, BatteryOK},
		{25, BatteryLow},
		{6, BatteryLow},
		{5, BatteryVeryLow},
		{2, BatteryVeryLow},
		{1, BatteryEmpty},
		{0, BatteryEmpty},
	}
	for _, tt := range tests {
		if got := LevelOf(tt.capacity); got != tt.want {
			t.Errorf("LevelOf(%d) = %s, want %s", tt.capacity, got, tt.want)
		}
	}
}

func TestBatteryWatch(t *testing.T) {
	snap := func(capacity int, charging bool) status.Snapshot {
		return status.Snapshot{
			Battery:   status.Battery{Capacity: capacity, Charging: charging},
			BatteryOK: true,
		}
	}
	w := BatteryWatch{Repeat: time.Minute}
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	if _, alert := w.Check(snap(80, false), t0); alert {
		t.Error("healthy battery alerted")
	}
	if _, alert := w.Check(status.Snapshot{}, t0); alert {
		t.Error("unreadable battery alerted")
	}
	if level, alert := w.Check(snap(20, false), t0); !alert || level != BatteryLow {
		t.Errorf("20%% = %s, %v", level, alert)
	}
	if _, alert := w.Check(snap(19, false), t0.Add(30*time.Second)); alert {
		t.Error("low alert repeated inside the window")
	}
	if level, alert := w.Check(snap(4, false), t0.Add(40*time.Second)); !alert || level != BatteryVeryLow {
		t.Errorf("a new level should alert at once, got %s, %v", level, alert)
	}
	if _, alert := w.Check(snap(19, false), t0.Add(2*time.Minute)); !alert {
		t.Error("low alert should repeat after the window")
	}
	if _, alert := w.Check(snap(3, true), t0.Add(time.Hour)); alert {
		t.Error("charging should silence alerts")
	}
}
