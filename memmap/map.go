// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memmap

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

// Map holds all assigned [Region]s ordered by start address.
//
// The zero value is an empty, writable map.
type Map struct {
	regions []Region
	frozen  bool
}

// AssignRange adds the given region.
//
// It fails with [InvalidRangeError] if the region ends before it starts and
// with [OverlapError] if it intersects any assigned region. The map is left
// unchanged on error.
func (m *Map) AssignRange(region Region) error {
	if m.frozen {
		return fmt.Errorf("assign %s: %w", region.Name, ErrFrozen)
	}

	if region.Start > region.End {
		return &InvalidRangeError{Region: region}
	}

	idx, _ := slices.BinarySearchFunc(m.regions, region.Start, cmpStart)

	// Regions are disjoint and sorted, so only the direct neighbours can
	// intersect.
	if idx > 0 && m.regions[idx-1].Overlaps(region) {
		return &OverlapError{Region: region, Existing: m.regions[idx-1]}
	}

	if idx < len(m.regions) && m.regions[idx].Overlaps(region) {
		return &OverlapError{Region: region, Existing: m.regions[idx]}
	}

	if _, exists := m.Lookup(region.Name); exists {
		return fmt.Errorf("assign %s: %w", region.Name, ErrNameTaken)
	}

	m.regions = slices.Insert(m.regions, idx, region)

	return nil
}

// All returns an iterator over all regions in ascending start address order.
func (m *Map) All() iter.Seq[Region] {
	return func(yield func(Region) bool) {
		for _, region := range m.regions {
			if !yield(region) {
				return
			}
		}
	}
}

// Lookup returns the region with the given name.
func (m *Map) Lookup(name string) (Region, bool) {
	for _, region := range m.regions {
		if region.Name == name {
			return region, true
		}
	}

	return Region{}, false
}

// At returns the region containing the given address.
func (m *Map) At(addr uint64) (Region, bool) {
	idx, found := slices.BinarySearchFunc(m.regions, addr, cmpStart)
	if found {
		return m.regions[idx], true
	}

	if idx > 0 && m.regions[idx-1].Contains(addr) {
		return m.regions[idx-1], true
	}

	return Region{}, false
}

// Usage returns the bytes in use of the named region.
func (m *Map) Usage(name string) (uint64, error) {
	region, exists := m.Lookup(name)
	if !exists {
		return 0, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	return region.InUse(), nil
}

// Len returns the number of assigned regions.
func (m *Map) Len() int {
	return len(m.regions)
}

// Freeze makes the map read-only. Further [Map.AssignRange] calls fail with
// [ErrFrozen].
func (m *Map) Freeze() {
	m.frozen = true
}

// Fprint writes one line per region into the given writer.
func (m *Map) Fprint(w io.Writer) error {
	for region := range m.All() {
		if _, err := fmt.Fprintf(w, "* %s\n", region); err != nil {
			return fmt.Errorf("print memory map: %w", err)
		}
	}

	return nil
}

func cmpStart(region Region, addr uint64) int {
	switch {
	case region.Start < addr:
		return -1
	case region.Start > addr:
		return 1
	default:
		return 0
	}
}
