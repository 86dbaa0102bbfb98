// Package selector owns the active watch-face style and its persisted index.
package selector

import (
	"errors"
	"sync"

	"watchlauncher/db"
	"watchlauncher/style"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("selector", logger.InfoLevel)

// IndexKey is the store key holding the selected style.
const IndexKey = "face_index"

// Store is the slice of db.Store the selector needs.
type Store interface {
	GetInt(key string) (int, error)
	SetInt(key string, v int) error
}

// Selector holds the current style index. Store failures are logged and
// never change what the caller sees.
type Selector struct {
	mu        sync.Mutex
	store     Store
	index     int
	listeners []func(style.Style)
}

func New(store Store) *Selector {
	return &Selector{store: store}
}

// Restore reads the persisted index, defaulting to 0 and clamping values
// left over from a larger catalog.
func (s *Selector) Restore() style.Style {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := 0
	if s.store != nil {
		v, err := s.store.GetInt(IndexKey)
		switch {
		case errors.Is(err, db.ErrNotFound):
		case err != nil:
			lg.Warningf("restore %s: %v", IndexKey, err)
		default:
			i = v
		}
	}
	s.index = clamp(i)
	if s.index != i {
		lg.Infof("stored index %d out of range, using %d", i, s.index)
	}
	return s.current()
}

// Cycle moves dir steps through the catalog, wrapping at both ends.
func (s *Selector) Cycle(dir int) style.Style {
	s.mu.Lock()
	n := style.Count
	s.index = ((s.index+dir)%n + n) % n
	return s.commit()
}

// Set jumps to index i, clamped into range.
func (s *Selector) Set(i int) style.Style {
	s.mu.Lock()
	s.index = clamp(i)
	return s.commit()
}

// commit persists the index, releases the lock and notifies listeners.
func (s *Selector) commit() style.Style {
	cur := s.current()
	if s.store != nil {
		if err := s.store.SetInt(IndexKey, s.index); err != nil {
			lg.Errorf("persist %s: %v", IndexKey, err)
		}
	}
	listeners := append([]func(style.Style){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(cur)
	}
	return cur
}

func (s *Selector) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Selector) Style() style.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

// OnChange registers fn to run after every Cycle or Set, outside the lock.
func (s *Selector) OnChange(fn func(style.Style)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Selector) current() style.Style {
	st, _ := style.FromIndex(s.index)
	return st
}

func clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= style.Count {
		return style.Count - 1
	}
	return i
}
