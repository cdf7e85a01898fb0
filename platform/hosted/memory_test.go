// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted_test

import (
	"io"
	"testing"

	"github.com/aibor/libkernel/platform/hosted"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_ReadAt(t *testing.T) {
	mem := hosted.NewMemory(3 * 4096)

	_, err := mem.WriteAt([]byte("across"), 4093)
	require.NoError(t, err)

	tests := []struct {
		name        string
		off         int64
		length      int
		expected    []byte
		expectedErr error
	}{
		{
			name:     "untouched page",
			off:      0,
			length:   4,
			expected: []byte{0, 0, 0, 0},
		},
		{
			name:     "page boundary",
			off:      4092,
			length:   8,
			expected: []byte("\x00across\x00"),
		},
		{
			name:        "short at end",
			off:         3*4096 - 2,
			length:      4,
			expected:    []byte{0, 0},
			expectedErr: io.EOF,
		},
		{
			name:        "beyond end",
			off:         3 * 4096,
			length:      4,
			expected:    []byte{},
			expectedErr: io.EOF,
		},
		{
			name:        "negative",
			off:         -1,
			length:      4,
			expected:    []byte{},
			expectedErr: hosted.ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.length)
			for i := range buf {
				buf[i] = 0xff
			}

			n, err := mem.ReadAt(buf, tt.off)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expected, buf[:n])
		})
	}
}

func TestMemory_WriteAt(t *testing.T) {
	mem := hosted.NewMemory(4096)

	_, err := mem.WriteAt([]byte("x"), 4096)
	require.ErrorIs(t, err, hosted.ErrOutOfRange)

	_, err = mem.WriteAt([]byte("xy"), 4095)
	require.ErrorIs(t, err, hosted.ErrOutOfRange)

	n, err := mem.WriteAt([]byte("xy"), 4094)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	buf := make([]byte, 2)
	_, err = mem.ReadAt(buf, 4094)
	require.NoError(t, err)
	assert.Equal(t, []byte("xy"), buf)
	assert.EqualValues(t, 4096, mem.Size())
}
