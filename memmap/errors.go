// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memmap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned if no region with the given name is assigned.
	ErrNotFound = errors.New("region not found")

	// ErrNameTaken is returned if a region with the same name is assigned
	// already.
	ErrNameTaken = errors.New("region name taken")

	// ErrFrozen is returned if a region is assigned after [Map.Freeze].
	ErrFrozen = errors.New("memory map is frozen")
)

// OverlapError is returned if a region intersects an assigned one.
type OverlapError struct {
	Region   Region
	Existing Region
}

// Error implements the [error] interface.
func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s [0x%x-0x%x] overlaps %s [0x%x-0x%x]",
		e.Region.Name, e.Region.Start, e.Region.End,
		e.Existing.Name, e.Existing.Start, e.Existing.End)
}

// Is implements the [errors.Is] interface.
func (*OverlapError) Is(other error) bool {
	_, ok := other.(*OverlapError)
	return ok
}

// InvalidRangeError is returned if a region ends before it starts.
type InvalidRangeError struct {
	Region Region
}

// Error implements the [error] interface.
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: start 0x%x > end 0x%x",
		e.Region.Name, e.Region.Start, e.Region.End)
}

// Is implements the [errors.Is] interface.
func (*InvalidRangeError) Is(other error) bool {
	_, ok := other.(*InvalidRangeError)
	return ok
}
