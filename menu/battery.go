package menu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"watchlauncher/gesture"
	"watchlauncher/haptics"
	"watchlauncher/status"
	"watchlauncher/timers"
)

// BatteryMenu is the registered name of the battery alert.
const BatteryMenu = "battery"

type BatteryLevel int

const (
	BatteryOK BatteryLevel = iota
	BatteryLow
	BatteryVeryLow
	BatteryEmpty
)

func (l BatteryLevel) String() string {
	switch l {
	case BatteryLow:
		return "low"
	case BatteryVeryLow:
		return "very low"
	case BatteryEmpty:
		return "empty"
	}
	return "ok"
}

// LevelOf buckets a capacity in percent.
func LevelOf(capacity int) BatteryLevel {
	switch {
	case capacity <= 1:
		return BatteryEmpty
	case capacity <= 5:
		return BatteryVeryLow
	case capacity <= 25:
		return BatteryLow
	}
	return BatteryOK
}

// BatteryWatch decides when a reading deserves an alert. Each level is
// repeated at most once per Repeat; charging silences everything.
type BatteryWatch struct {
	Repeat time.Duration
	last   map[BatteryLevel]time.Time
}

func (b *BatteryWatch) Check(snap status.Snapshot, now time.Time) (BatteryLevel, bool) {
	if !snap.BatteryOK || snap.Battery.Charging {
		return BatteryOK, false
	}
	level := LevelOf(snap.Battery.Capacity)
	if level == BatteryOK {
		return level, false
	}
	if b.last == nil {
		b.last = make(map[BatteryLevel]time.Time)
	}
	repeat := b.Repeat
	if repeat <= 0 {
		repeat = 10 * time.Minute
	}
	if t, ok := b.last[level]; ok && now.Sub(t) < repeat {
		return level, false
	}
	b.last[level] = now
	return level, true
}

// WatchBattery raises the battery alert from monitor readings until ctx
// is done.
func (m *Menu) WatchBattery(ctx context.Context, every time.Duration) {
	if m.Status == nil {
		return
	}
	var watch BatteryWatch
	for timers.SleepWithContext(ctx, every) {
		snap := m.Status.Last()
		level, alert := watch.Check(snap, m.now())
		if !alert || m.Top() == BatteryMenu {
			continue
		}
		lg.Warningf("🪫 Battery %s (%d%%)", level, snap.Battery.Capacity)
		go m.PushWithArgs(BatteryMenu, level, snap.Battery.Capacity)
	}
}

// BatteryAlert buzzes and shows the battery state for a few seconds. Any
// gesture dismisses it early.
type BatteryAlert struct {
	ctx        context.Context
	configured bool
	cancelFn   context.CancelFunc
	parent     *Menu
	wg         sync.WaitGroup

	level    BatteryLevel
	capacity int
}

func (m *Menu) NewBatteryAlert() *BatteryAlert {
	return &BatteryAlert{
		parent: m,
		level:  BatteryLow,
	}
}

func (instance *BatteryAlert) render() {
	pct := fmt.Sprintf("%d%%", instance.capacity)
	switch instance.level {
	case BatteryEmpty:
		instance.parent.RenderAlert("Battery empty", "Charge now", pct)
	case BatteryVeryLow:
		instance.parent.RenderAlert("Very low", "battery!", pct)
	default:
		instance.parent.RenderAlert("Low", "battery!", pct)
	}
}

func (instance *BatteryAlert) Configure() {
	// Reset context
	instance.configured = true
	instance.ctx, instance.cancelFn = context.WithCancel(instance.parent.GlobalContext)
}

// ConfigureWithArgs takes the BatteryLevel and capacity in percent.
func (instance *BatteryAlert) ConfigureWithArgs(args ...any) {
	instance.Configure()
	if len(args) > 0 {
		if l, ok := args[0].(BatteryLevel); ok {
			instance.level = l
		}
	}
	if len(args) > 1 {
		if c, ok := args[1].(int); ok {
			instance.capacity = c
		}
	}
}

func (instance *BatteryAlert) Run() {
	if !instance.configured {
		panic("Attempted to call (*BatteryAlert).Run() before (*BatteryAlert).Configure()!")
	}

	d := instance.parent.Config.Input.HapticDuration.Duration
	pattern := haptics.Bump(d)
	if instance.level >= BatteryVeryLow {
		pattern = append(pattern, haptics.Step{State: false, Duration: 4 * d})
		pattern = append(pattern, haptics.Bump(d)...)
	}
	instance.parent.Haptics.Play(instance.ctx, pattern)

	instance.render()
	instance.wg.Go(func() {
		defer instance.parent.recoverScreen()
		timeout := time.NewTimer(3 * time.Second)
		defer timeout.Stop()
		for {
			select {
			case <-instance.ctx.Done():
				return
			case <-timeout.C:
				go instance.parent.Pop()
				return
			case evt, ok := <-instance.parent.Events:
				if !ok {
					return
				}
				if evt.Kind != gesture.None {
					go instance.parent.Pop()
					return
				}
			}
		}
	})
}

func (instance *BatteryAlert) Pause() {
	instance.cancelFn()
	if ok := waitWithTimeout(&instance.wg, time.Second); !ok {
		lg.Warning("⚠️ Battery alert pause timed out, goroutines may be stuck")
	}
}

func (instance *BatteryAlert) Stop() {
	instance.Pause()
	instance.parent.Haptics.Stop()
	instance.configured = false
}
