// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"testing"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/platform/hosted"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootMode_Handoff(t *testing.T) {
	tests := []struct {
		mode          BootMode
		expectedMagic uint32
		expectedAddr  uint32
		expectedErr   error
	}{
		{
			mode:          BootMultiboot,
			expectedMagic: boot.MultibootMagic,
			expectedAddr:  hosted.MultibootInfoAddr,
		},
		{
			mode:          BootSoftReset,
			expectedMagic: boot.SoftResetMagic,
			expectedAddr:  hosted.SoftResetRecordAddr,
		},
		{
			mode: BootLegacy,
		},
		{
			mode:        "pxe",
			expectedErr: ErrInvalidBootMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			platform := hosted.New(hosted.Config{HighMemory: 64 << 20})

			magic, addr, err := tt.mode.handoff(platform, "")
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expectedMagic, magic)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestBootMode_Set(t *testing.T) {
	var mode BootMode

	require.NoError(t, mode.Set("softreset"))
	assert.Equal(t, BootSoftReset, mode)

	require.ErrorIs(t, mode.Set("pxe"), ErrInvalidBootMode)
	assert.Equal(t, BootSoftReset, mode)
}
