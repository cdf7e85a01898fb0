// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stat

import (
	"fmt"
	"iter"
)

const (
	// StatSize is the number of bytes a single counter occupies in the
	// backing store.
	StatSize = 64

	// NameMax is the maximum length of a counter name in bytes.
	NameMax = 47
)

// Store is the fixed-capacity backing store for [Stat]s.
//
// The zero value is not usable until [Store.Init] has been called.
type Store struct {
	base  uint64
	size  uint64
	cells []Stat
	used  int
	index map[string]*Stat
}

// Init binds the store to the given physical range and allocates room for
// size / [StatSize] counters.
func (s *Store) Init(base, size uint64) error {
	if s.cells != nil {
		return ErrAlreadyInitialized
	}

	capacity := size / StatSize
	if capacity == 0 {
		return fmt.Errorf("%d bytes at 0x%x: %w", size, base, ErrCapacity)
	}

	s.base = base
	s.size = size
	s.cells = make([]Stat, capacity)
	s.index = make(map[string]*Stat, capacity)

	return nil
}

// Initialized returns true once [Store.Init] succeeded.
func (s *Store) Initialized() bool {
	return s.cells != nil
}

// Create allocates a new counter of the given kind and name.
//
// Creating a counter with the name of an existing one of the same kind
// returns the existing counter. If the kinds differ, [ErrKindMismatch] is
// returned.
func (s *Store) Create(kind Kind, name string) (*Stat, error) {
	if s.cells == nil {
		return nil, ErrNotInitialized
	}

	if name == "" || len(name) > NameMax {
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	if !kind.valid() {
		return nil, fmt.Errorf("%s for %q: %w", kind, name, ErrInvalidKind)
	}

	if existing, exists := s.index[name]; exists {
		if existing.kind != kind {
			return nil, fmt.Errorf("%q is %s, not %s: %w",
				name, existing.kind, kind, ErrKindMismatch)
		}

		return existing, nil
	}

	if s.used == len(s.cells) {
		return nil, fmt.Errorf("%q: %w", name, ErrCapacity)
	}

	cell := &s.cells[s.used]
	cell.kind = kind
	cell.name = name
	s.used++
	s.index[name] = cell

	return cell, nil
}

// Get returns the counter with the given name.
func (s *Store) Get(name string) (*Stat, error) {
	cell, exists := s.index[name]
	if !exists {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}

	return cell, nil
}

// All returns an iterator over all counters in creation order.
func (s *Store) All() iter.Seq[*Stat] {
	return func(yield func(*Stat) bool) {
		for idx := range s.used {
			if !yield(&s.cells[idx]) {
				return
			}
		}
	}
}

// Len returns the number of counters created.
func (s *Store) Len() int {
	return s.used
}

// Cap returns the maximum number of counters.
func (s *Store) Cap() int {
	return len(s.cells)
}

// Base returns the first address of the backing store.
func (s *Store) Base() uint64 {
	return s.base
}

// End returns the last address of the backing store.
func (s *Store) End() uint64 {
	return s.base + s.size - 1
}
