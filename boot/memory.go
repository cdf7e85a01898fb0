// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import (
	"fmt"
	"log/slog"

	"github.com/aibor/libkernel/memmap"
)

// Names of the regions claimed during boot.
const (
	RegionStats   = "Statman"
	RegionStack   = "Stack"
	RegionImage   = "ELF"
	RegionPreHeap = "Pre-heap"
	RegionHeap    = "Heap"
)

// buildMemoryMap claims the fixed kernel ranges. The order matters: later
// ranges are computed relative to earlier ones.
func (k *Kernel) buildMemoryMap() error {
	layout := k.platform.Layout()

	if layout.HeapStart == 0 {
		return ErrNoHeapStart
	}

	regions := []memmap.Region{
		{
			Start:       layout.Stats.Start,
			End:         layout.Stats.End,
			Name:        RegionStats,
			Description: "Statistics",
		},
		{
			Start:       layout.Stack.Start,
			End:         layout.Stack.End,
			Name:        RegionStack,
			Description: "Kernel / service main stack",
		},
		{
			Start:       layout.ImageStart,
			End:         layout.ImageEnd,
			Name:        RegionImage,
			Description: "Your service binary including OS",
		},
	}

	// The randomization area only exists if the platform moved the heap
	// away from the image.
	if layout.HeapStart > layout.ImageEnd+1 {
		regions = append(regions, memmap.Region{
			Start:       layout.ImageEnd + 1,
			End:         layout.HeapStart - 1,
			Name:        RegionPreHeap,
			Description: "Heap randomization area",
		})
	}

	regions = append(regions, memmap.Region{
		Start:       layout.HeapStart,
		End:         layout.HeapEnd(k.ctx.HighMemory),
		Name:        RegionHeap,
		Description: "Dynamic memory",
		Usage:       k.platform.HeapUsage,
	})

	k.logger.Info("Assigning fixed memory ranges")

	for _, region := range regions {
		if err := k.memMap.AssignRange(region); err != nil {
			return fmt.Errorf("assign %s: %w", region.Name, err)
		}
	}

	if err := k.memMap.Fprint(k.console); err != nil {
		k.logger.Warn("Printing memory map failed", slog.Any("error", err))
	}

	return nil
}
