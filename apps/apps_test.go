package apps

import (
	"context"
	"errors"
	"testing"
)

var sample = []App{
	{Name: "zebra", ID: "org.zebra"},
	{Name: "Äpfel", ID: "de.apfel"},
	{Name: "Calculator", ID: "com.android.calculator2", Command: []string{"true"}},
	{Name: "camera", ID: "com.android.camera"},
	{Name: "Watch Launcher", ID: "com.watchlauncher"},
	{Name: "STRASSE", ID: "de.strasse"},
}

func names(list []App) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Name
	}
	return out
}

func TestCatalogSortedAndExcludesSelf(t *testing.T) {
	c := NewCatalog(sample, "com.watchlauncher")
	got := names(c.All())
	want := []string{"Calculator", "camera", "STRASSE", "zebra", "Äpfel"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	c := NewCatalog(sample, "com.watchlauncher")
	tests := []struct {
		query string
		want  int
	}{
		{"", 5},
		{"  ", 5},
		{"CA", 2},
		{"calc", 1},
		{"straße", 1},
		{"äpf", 1},
		{"nothing", 0},
	}
	for _, tt := range tests {
		if got := c.Filter(tt.query); len(got) != tt.want {
			t.Errorf("Filter(%q) = %v, want %d results", tt.query, names(got), tt.want)
		}
	}
}

func TestWithInitial(t *testing.T) {
	c := NewCatalog(sample, "com.watchlauncher")
	tests := []struct {
		letter string
		want   []string
	}{
		{"", []string{"Calculator", "camera", "STRASSE", "zebra", "Äpfel"}},
		{"c", []string{"Calculator", "camera"}},
		{"A", nil},
		{"Ä", []string{"Äpfel"}},
		{"Z", []string{"zebra"}},
	}
	for _, tt := range tests {
		got := names(c.WithInitial(tt.letter))
		if len(got) != len(tt.want) {
			t.Errorf("WithInitial(%q) = %v, want %v", tt.letter, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("WithInitial(%q) = %v, want %v", tt.letter, got, tt.want)
				break
			}
		}
	}
}

func TestPinned(t *testing.T) {
	c := NewCatalog(sample, "com.watchlauncher")
	got := names(c.Pinned([]string{"org.zebra", "missing", "com.watchlauncher", "de.apfel"}))
	if len(got) != 2 || got[0] != "zebra" || got[1] != "Äpfel" {
		t.Errorf("Pinned = %v", got)
	}

	var many []string
	for range MaxPinned + 2 {
		many = append(many, "org.zebra")
	}
	if n := len(c.Pinned(many)); n != MaxPinned {
		t.Errorf("dock holds %d apps, want %d", n, MaxPinned)
	}
	if len(c.Pinned(nil)) != 0 {
		t.Error("no pins should give an empty dock")
	}
}

func TestLaunch(t *testing.T) {
	c := NewCatalog(sample, "")
	if err := c.Launch(context.Background(), "missing"); !errors.Is(err, ErrUnknownApp) {
		t.Errorf("err = %v", err)
	}
	if err := c.Launch(context.Background(), "org.zebra"); err == nil {
		t.Error("app without command should fail")
	}
	if err := c.Launch(context.Background(), "com.android.calculator2"); err != nil {
		t.Errorf("launch: %v", err)
	}
}

func TestIcon(t *testing.T) {
	c := NewCatalog(sample, "")
	a, ok := c.Find("com.android.calculator2")
	if !ok {
		t.Fatal("calculator missing")
	}
	if _, ok := a.Icon(32); !ok {
		t.Error("calculator should have an icon")
	}
	if _, ok := (App{ID: "org.zebra"}).Icon(32); ok {
		t.Error("unknown package should have no icon")
	}
}
