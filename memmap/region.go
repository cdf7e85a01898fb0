// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memmap

import "fmt"

// UsageFunc reports the number of bytes of a region currently in use.
type UsageFunc func() uint64

// Region is a named physical address range. Start and End are both
// inclusive.
type Region struct {
	Start       uint64
	End         uint64
	Name        string
	Description string

	// Usage is optional. Without it, the whole range is considered in use.
	Usage UsageFunc
}

// Size returns the number of bytes in the range.
func (r Region) Size() uint64 {
	return r.End - r.Start + 1
}

// InUse returns the bytes in use as reported by [Region.Usage], or the full
// size if no callback is set.
func (r Region) InUse() uint64 {
	if r.Usage == nil {
		return r.Size()
	}

	return r.Usage()
}

// Contains returns true if addr is inside the range.
func (r Region) Contains(addr uint64) bool {
	return addr >= r.Start && addr <= r.End
}

// Overlaps returns true if both ranges share at least one address.
func (r Region) Overlaps(other Region) bool {
	return r.Start <= other.End && other.Start <= r.End
}

func (r Region) String() string {
	size := r.Size()
	inUse := r.InUse()

	var percent float64
	if size != 0 {
		percent = float64(inUse) / float64(size) * 100 //nolint:mnd
	}

	return fmt.Sprintf("0x%08x - 0x%08x, in use: %d B (%.2f%% of %d B) %s - %s",
		r.Start, r.End, inUse, percent, size, r.Name, r.Description)
}
