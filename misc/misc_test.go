package misc

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		mode    uint8
		service string
		want    []string
	}{
		{ExitQuit, "watchlauncher", nil},
		{ExitShutdown, "", []string{"poweroff"}},
		{ExitReboot, "", []string{"reboot", "now"}},
		{ExitRestart, "watchlauncher", []string{"systemctl", "restart", "watchlauncher"}},
		{ExitRestart, "", nil},
		{42, "x", nil},
	}
	for _, tt := range tests {
		if got := Command(tt.mode, tt.service); !slices.Equal(got, tt.want) {
			t.Errorf("Command(%d, %q) = %v, want %v", tt.mode, tt.service, got, tt.want)
		}
	}
}

func TestPowerAction(t *testing.T) {
	var ran []string
	run := func(_ context.Context, name string, args ...string) error {
		ran = append([]string{name}, args...)
		return nil
	}
	if err := PowerAction(context.Background(), ExitReboot, "", run); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(ran, []string{"reboot", "now"}) {
		t.Errorf("ran %v", ran)
	}

	ran = nil
	if err := PowerAction(context.Background(), ExitQuit, "", run); err != nil || ran != nil {
		t.Errorf("quit should not run anything, ran %v err %v", ran, err)
	}

	boom := errors.New("boom")
	fail := func(context.Context, string, ...string) error { return boom }
	if err := PowerAction(context.Background(), ExitShutdown, "", fail); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
