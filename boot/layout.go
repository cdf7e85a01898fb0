// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import "math"

// Fixed physical addresses of the boot memory layout.
const (
	// HighMemoryBase is where high memory starts.
	HighMemoryBase = 0x100000

	// HeapAlign is the boundary the end of the heap is rounded down to.
	HeapAlign = 0x10000

	statsStart = 0x6000
	statsEnd   = 0x8fff
	stackStart = 0xa000
	stackEnd   = 0x9fbff
)

// Range is an inclusive physical address range.
type Range struct {
	Start uint64
	End   uint64
}

// Size returns the number of bytes in the range.
func (r Range) Size() uint64 {
	return r.End - r.Start + 1
}

// Layout describes where the platform bootstrap placed the kernel. The
// addresses usually come from link time symbols.
type Layout struct {
	// Stats is the backing store of the stat registry.
	Stats Range

	// Stack is the kernel and service main stack.
	Stack Range

	// ImageStart and ImageEnd delimit the loaded service image including the
	// kernel.
	ImageStart uint64
	ImageEnd   uint64

	// HeapStart is the first heap address. The gap between the image end and
	// the heap start is the heap randomization area.
	HeapStart uint64

	// SpanMax is the largest address the platform can address.
	SpanMax uint64
}

// DefaultLayout returns the layout with the fixed stats and stack ranges of
// the PC platform and the given image and heap addresses.
func DefaultLayout(imageStart, imageEnd, heapStart uint64) Layout {
	return Layout{
		Stats:      Range{Start: statsStart, End: statsEnd},
		Stack:      Range{Start: stackStart, End: stackEnd},
		ImageStart: imageStart,
		ImageEnd:   imageEnd,
		HeapStart:  heapStart,
		SpanMax:    math.MaxInt64,
	}
}

// HeapEnd returns the last heap address for the given high memory size.
//
// The heap extends to the top of physical memory rounded down to a 64 KiB
// boundary, but never beyond [Layout.SpanMax].
func (l Layout) HeapEnd(highMemory uint64) uint64 {
	heapMax := ((HighMemoryBase + highMemory) &^ (HeapAlign - 1)) - 1

	return min(l.SpanMax, heapMax)
}
