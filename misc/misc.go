// Package misc holds the system power actions the launcher can raise on
// its way out.
package misc

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("misc", logger.InfoLevel)

// Exit modes passed to Menu.GlobalQuit.
const (
	ExitQuit     uint8 = 0
	ExitShutdown uint8 = 1
	ExitReboot   uint8 = 2
	ExitRestart  uint8 = 3
)

// Runner executes a system command. Tests swap it out.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Command returns the argv for mode; nil for a plain quit.
func Command(mode uint8, service string) []string {
	switch mode {
	case ExitShutdown:
		return []string{"poweroff"}
	case ExitReboot:
		return []string{"reboot", "now"}
	case ExitRestart:
		if service == "" {
			return nil
		}
		return []string{"systemctl", "restart", service}
	}
	return nil
}

// PowerAction performs mode using run, or the real system when run is nil.
func PowerAction(ctx context.Context, mode uint8, service string, run Runner) error {
	argv := Command(mode, service)
	if argv == nil {
		return nil
	}
	if run == nil {
		run = execRunner
	}
	if err := run(ctx, argv[0], argv[1:]...); err != nil {
		return fmt.Errorf("power action %v: %w", argv, err)
	}
	lg.Infof("%v command issued.", argv)
	return nil
}
