// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package irq_test

import (
	"sync"
	"testing"

	"github.com/aibor/libkernel/irq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Subscribe(t *testing.T) {
	manager := irq.NewManager(newStore(t))

	require.NoError(t, manager.Subscribe(0, func() {}))

	err := manager.Subscribe(0, func() {})
	require.ErrorIs(t, err, irq.ErrLineTaken)

	err = manager.Subscribe(irq.Lines, func() {})
	require.ErrorIs(t, err, irq.ErrInvalidLine)
}

func TestManager_ProcessInterrupts(t *testing.T) {
	store := newStore(t)
	manager := irq.NewManager(store)

	var calls []uint8

	for _, line := range []uint8{9, 1, 4} {
		require.NoError(t, manager.Subscribe(line, func() {
			calls = append(calls, line)
		}))
	}

	require.NoError(t, manager.Raise(9))
	require.NoError(t, manager.Raise(4))
	require.NoError(t, manager.Raise(1))
	require.NoError(t, manager.Raise(4))
	require.NoError(t, manager.Raise(33))
	assert.True(t, manager.Pending())

	manager.ProcessInterrupts()

	assert.Equal(t, []uint8{1, 4, 9}, calls)
	assert.False(t, manager.Pending())

	count, err := store.Get("cpu0.irq4")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count.Uint64())
}

func TestManager_ProcessInterrupts_RaisedByHandler(t *testing.T) {
	manager := irq.NewManager(newStore(t))

	var calls []uint8

	require.NoError(t, manager.Subscribe(5, func() {
		calls = append(calls, 5)
		_ = manager.Raise(2)
	}))
	require.NoError(t, manager.Subscribe(2, func() {
		calls = append(calls, 2)
	}))

	require.NoError(t, manager.Raise(5))
	manager.ProcessInterrupts()

	assert.Equal(t, []uint8{5, 2}, calls)
}

func TestManager_Raise(t *testing.T) {
	manager := irq.NewManager(newStore(t))

	err := manager.Raise(irq.Lines)
	require.ErrorIs(t, err, irq.ErrInvalidLine)

	var wg sync.WaitGroup

	for line := range uint8(8) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = manager.Raise(line)
		}()
	}

	wg.Wait()

	select {
	case <-manager.Wake():
	default:
		t.Fatal("no wake up signal")
	}

	assert.True(t, manager.Pending())
}
