package keypad

import (
	"context"
	"testing"
	"time"

	"watchlauncher/gesture"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func newButton(kind gesture.Kind) (*Button, *gpiotest.Pin) {
	pin := &gpiotest.Pin{N: kind.String(), L: gpio.High}
	return &Button{Label: pin.N, Kind: kind, PinIn: pin}, pin
}

func next(t *testing.T, events <-chan gesture.Event) gesture.Kind {
	t.Helper()
	select {
	case e := <-events:
		return e.Kind
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
		return gesture.None
	}
}

func press(pin *gpiotest.Pin, hold time.Duration) {
	pin.Out(gpio.Low)
	time.Sleep(hold)
	pin.Out(gpio.High)
}

var fastOpts = Options{
	Debounce:  2 * time.Millisecond,
	LongPress: 150 * time.Millisecond,
	DoubleTap: 200 * time.Millisecond,
}

func TestSwipeButtonFiresOnPress(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	left, pin := newButton(gesture.SwipeLeft)
	events := Run(ctx, []*Button{left}, fastOpts)

	pin.Out(gpio.Low)
	if got := next(t, events); got != gesture.SwipeLeft {
		t.Errorf("got %v", got)
	}
	pin.Out(gpio.High)
}

func TestTapButton(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tap, pin := newButton(gesture.Tap)
	events := Run(ctx, []*Button{tap}, fastOpts)

	press(pin, 20*time.Millisecond)
	if got := next(t, events); got != gesture.Tap {
		t.Fatalf("first press = %v", got)
	}
	press(pin, 20*time.Millisecond)
	if got := next(t, events); got != gesture.DoubleTap {
		t.Fatalf("second press = %v", got)
	}

	time.Sleep(250 * time.Millisecond)
	press(pin, 300*time.Millisecond)
	if got := next(t, events); got != gesture.LongPress {
		t.Fatalf("long press = %v", got)
	}
}

func TestRunClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b, _ := newButton(gesture.SwipeUp)
	events := Run(ctx, []*Button{b}, fastOpts)
	cancel()
	select {
	case _, ok := <-events:
		if ok {
			t.Error("unexpected event")
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after cancel")
	}
}
