// Package apps is the launcher's view of the installed programs.
package apps

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"sort"
	"strings"

	"watchlauncher/glyph"

	"github.com/d2r2/go-logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var lg = logger.NewPackageLogger("apps", logger.InfoLevel)

// App is one launchable entry.
type App struct {
	Name    string
	ID      string
	Command []string
}

// Icon renders the retro pixel icon for the app, if it has one.
func (a App) Icon(size int) (image.Image, bool) {
	return glyph.RenderIcon(a.ID, size)
}

var ErrUnknownApp = errors.New("unknown app")

// Catalog is an immutable, sorted list of apps.
type Catalog struct {
	apps []App
	keys []string
}

// foldKey normalises a name for ordering and search: NFC, then Unicode
// case folding.
func foldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// NewCatalog sorts apps by folded name and drops the launcher itself.
func NewCatalog(all []App, selfID string) *Catalog {
	c := &Catalog{}
	for _, a := range all {
		if a.ID == selfID && selfID != "" {
			continue
		}
		c.apps = append(c.apps, a)
	}
	sort.SliceStable(c.apps, func(i, j int) bool {
		return foldKey(c.apps[i].Name) < foldKey(c.apps[j].Name)
	})
	c.keys = make([]string, len(c.apps))
	for i, a := range c.apps {
		c.keys[i] = foldKey(a.Name)
	}
	lg.Debugf("catalog has %d apps", len(c.apps))
	return c
}

func (c *Catalog) Len() int { return len(c.apps) }

// All returns a copy of the sorted list.
func (c *Catalog) All() []App {
	return append([]App(nil), c.apps...)
}

// Filter returns apps whose name contains query, ignoring case. An empty
// query returns everything.
func (c *Catalog) Filter(query string) []App {
	q := foldKey(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	var out []App
	for i, a := range c.apps {
		if strings.Contains(c.keys[i], q) {
			out = append(out, a)
		}
	}
	return out
}

// WithInitial returns apps whose name starts with letter, ignoring case.
func (c *Catalog) WithInitial(letter string) []App {
	l := foldKey(strings.TrimSpace(letter))
	if l == "" {
		return c.All()
	}
	var out []App
	for i, a := range c.apps {
		if strings.HasPrefix(c.keys[i], l) {
			out = append(out, a)
		}
	}
	return out
}

// MaxPinned is how many apps fit in the dock.
const MaxPinned = 5

// Pinned looks up ids in order and returns the first MaxPinned that are in
// the catalog. Unknown ids are skipped.
func (c *Catalog) Pinned(ids []string) []App {
	var out []App
	for _, id := range ids {
		if len(out) == MaxPinned {
			break
		}
		if a, ok := c.Find(id); ok {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) Find(id string) (App, bool) {
	for _, a := range c.apps {
		if a.ID == id {
			return a, true
		}
	}
	return App{}, false
}

// Launch starts the app's command detached from the launcher. It does not
// wait for the program to exit.
func (c *Catalog) Launch(ctx context.Context, id string) error {
	a, ok := c.Find(id)
	if !ok {
		return fmt.Errorf("launch %s: %w", id, ErrUnknownApp)
	}
	if len(a.Command) == 0 {
		return fmt.Errorf("launch %s: no command configured", id)
	}
	cmd := exec.CommandContext(ctx, a.Command[0], a.Command[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", id, err)
	}
	lg.Infof("launched %s (pid %d)", a.Name, cmd.Process.Pid)
	go func() {
		if err := cmd.Wait(); err != nil {
			lg.Debugf("%s exited: %v", a.Name, err)
		}
	}()
	return nil
}
