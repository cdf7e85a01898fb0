// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package memmap_test

import (
	"testing"

	"github.com/aibor/libkernel/memmap"
	"github.com/stretchr/testify/assert"
)

func TestRegion_Overlaps(t *testing.T) {
	region := memmap.Region{Start: 10, End: 20}

	tests := []struct {
		name   string
		other  memmap.Region
		assert assert.BoolAssertionFunc
	}{
		{name: "before", other: memmap.Region{Start: 0, End: 9}, assert: assert.False},
		{name: "after", other: memmap.Region{Start: 21, End: 30}, assert: assert.False},
		{name: "start", other: memmap.Region{Start: 0, End: 10}, assert: assert.True},
		{name: "end", other: memmap.Region{Start: 20, End: 30}, assert: assert.True},
		{name: "inside", other: memmap.Region{Start: 15, End: 15}, assert: assert.True},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.assert(t, region.Overlaps(tt.other))
			tt.assert(t, tt.other.Overlaps(region))
		})
	}
}

func TestRegion_InUse(t *testing.T) {
	region := memmap.Region{Start: 0x1000, End: 0x1fff}
	assert.Equal(t, uint64(0x1000), region.InUse())

	region.Usage = func() uint64 { return 7 }
	assert.Equal(t, uint64(7), region.InUse())
}
