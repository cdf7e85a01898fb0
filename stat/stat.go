// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stat

import (
	"math"
	"strconv"
	"sync/atomic"
)

// Stat is a single named counter cell.
//
// Its value is kept in an [atomic.Uint64]. For [Float] counters it holds the
// IEEE 754 bits of the value.
type Stat struct {
	kind  Kind
	name  string
	value atomic.Uint64
}

// Kind returns the numeric type of the counter.
func (s *Stat) Kind() Kind {
	return s.kind
}

// Name returns the name the counter was created with.
func (s *Stat) Name() string {
	return s.name
}

// Uint64 returns the current value of an integer counter.
func (s *Stat) Uint64() uint64 {
	return s.value.Load()
}

// Uint32 returns the current value truncated to 32 bits.
func (s *Stat) Uint32() uint32 {
	return uint32(s.value.Load()) //nolint:gosec
}

// Float returns the current value of a [Float] counter.
func (s *Stat) Float() float64 {
	return math.Float64frombits(s.value.Load())
}

// Set stores the given value.
//
// [Uint32] counters wrap around like a 32 bit register.
func (s *Stat) Set(value uint64) {
	if s.kind == Uint32 {
		value = uint64(uint32(value)) //nolint:gosec
	}

	s.value.Store(value)
}

// Add adds delta to an integer counter and returns the new value.
func (s *Stat) Add(delta uint64) uint64 {
	if s.kind != Uint32 {
		return s.value.Add(delta)
	}

	for {
		old := s.value.Load()
		updated := uint64(uint32(old + delta)) //nolint:gosec

		if s.value.CompareAndSwap(old, updated) {
			return updated
		}
	}
}

// Inc increments an integer counter by one.
func (s *Stat) Inc() uint64 {
	return s.Add(1)
}

// SetFloat stores the given value in a [Float] counter.
func (s *Stat) SetFloat(value float64) {
	s.value.Store(math.Float64bits(value))
}

// AddFloat adds delta to a [Float] counter and returns the new value.
func (s *Stat) AddFloat(delta float64) float64 {
	for {
		old := s.value.Load()
		updated := math.Float64frombits(old) + delta

		if s.value.CompareAndSwap(old, math.Float64bits(updated)) {
			return updated
		}
	}
}

func (s *Stat) String() string {
	var value string

	switch s.kind {
	case Float:
		value = strconv.FormatFloat(s.Float(), 'f', -1, 64)
	default:
		value = strconv.FormatUint(s.Uint64(), 10)
	}

	return s.name + ": " + value
}
