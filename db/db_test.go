package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kvstore.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestMissingKey(t *testing.T) {
	s := openTemp(t)
	if _, err := s.GetInt("face_index"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestIntRoundTrip(t *testing.T) {
	s := openTemp(t)
	for _, v := range []int{0, 3, 9, -1, 42} {
		if err := s.SetInt("face_index", v); err != nil {
			t.Fatal(err)
		}
		got, err := s.GetInt("face_index")
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("GetInt = %d, want %d", got, v)
		}
	}
}

func TestWrongType(t *testing.T) {
	s := openTemp(t)
	if err := s.Set("face_index", "seven"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetInt("face_index"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want type error", err)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvstore.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetInt("face_index", 6); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if got, err := s.GetInt("face_index"); err != nil || got != 6 {
		t.Errorf("GetInt = %d, %v; want 6", got, err)
	}
}
