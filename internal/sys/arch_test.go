// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"testing"

	"github.com/aibor/libkernel/internal/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArch_IdleInstruction(t *testing.T) {
	tests := []struct {
		arch        sys.Arch
		instruction string
		bits        int
	}{
		{arch: sys.I386, instruction: "hlt", bits: 32},
		{arch: sys.AMD64, instruction: "hlt", bits: 64},
		{arch: sys.ARM64, instruction: "wfi", bits: 64},
		{arch: sys.RISCV64, instruction: "wfi", bits: 64},
		{arch: "mips64", bits: 64},
	}

	for _, tt := range tests {
		t.Run(tt.arch.String(), func(t *testing.T) {
			instruction, found := tt.arch.IdleInstruction()

			assert.Equal(t, tt.instruction, instruction)
			assert.Equal(t, tt.instruction != "", found)
			assert.Equal(t, found, tt.arch.CanHalt())
			assert.Equal(t, tt.bits, tt.arch.Bits())
		})
	}
}

func TestArch_Set(t *testing.T) {
	var arch sys.Arch

	require.NoError(t, arch.Set("arm64"))
	assert.Equal(t, sys.ARM64, arch)

	err := arch.Set("s390x")
	require.ErrorIs(t, err, sys.ErrArchNotSupported)
	assert.Equal(t, sys.ARM64, arch)
}
