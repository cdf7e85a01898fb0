// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package irq_test

import (
	"testing"

	"github.com/aibor/libkernel/irq"
	"github.com/aibor/libkernel/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoop(t *testing.T) {
	t.Run("store not initialized", func(t *testing.T) {
		_, err := irq.NewLoop(&fakeCPU{}, irq.NewManager(nil), new(stat.Store))
		require.ErrorIs(t, err, stat.ErrNotInitialized)
	})

	t.Run("counters", func(t *testing.T) {
		store := newStore(t)

		loop, err := irq.NewLoop(&fakeCPU{}, irq.NewManager(store), store)
		require.NoError(t, err)

		assert.True(t, loop.Powered())
		assert.Equal(t, irq.Running, loop.State())

		_, err = store.Get(irq.StatCyclesHalt)
		require.NoError(t, err)
		_, err = store.Get(irq.StatCyclesTotal)
		require.NoError(t, err)
	})
}

func TestLoop_Run(t *testing.T) {
	tests := []struct {
		name          string
		powerOffAfter int
		expectedHalts int
	}{
		{
			name:          "cleared before loop",
			powerOffAfter: 0,
			expectedHalts: 0,
		},
		{
			name:          "cleared by first interrupt",
			powerOffAfter: 1,
			expectedHalts: 1,
		},
		{
			name:          "cleared by fifth interrupt",
			powerOffAfter: 5,
			expectedHalts: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			manager := irq.NewManager(store)
			cpu := &fakeCPU{busy: 3, idle: 100}

			loop, err := irq.NewLoop(cpu, manager, store)
			require.NoError(t, err)

			ticks := 0

			require.NoError(t, manager.Subscribe(0, func() {
				ticks++
				if ticks == tt.powerOffAfter {
					loop.PowerOff()
				}
			}))

			cpu.onHalt = func(int) {
				assert.Equal(t, irq.Idle, loop.State())
				require.NoError(t, manager.Raise(0))
			}

			if tt.powerOffAfter == 0 {
				loop.PowerOff()
			}

			stops := 0

			err = loop.Run(func() error {
				stops++
				assert.Equal(t, irq.ShuttingDown, loop.State())

				return nil
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expectedHalts, cpu.halts)
			assert.Equal(t, 1, stops)
			assert.Equal(t, irq.ShuttingDown, loop.State())
			assert.False(t, loop.Powered())
		})
	}
}

func TestLoop_Run_StopOnce(t *testing.T) {
	store := newStore(t)

	loop, err := irq.NewLoop(&fakeCPU{}, irq.NewManager(store), store)
	require.NoError(t, err)

	loop.PowerOff()

	stops := 0
	stop := func() error {
		stops++
		return assert.AnError
	}

	require.ErrorIs(t, loop.Run(stop), assert.AnError)
	require.ErrorIs(t, loop.Run(stop), irq.ErrLoopRunning)
	assert.Equal(t, 1, stops)
}

func TestLoop_Run_HaltUnsupported(t *testing.T) {
	store := newStore(t)
	cpu := &fakeCPU{err: irq.ErrHaltUnsupported}

	loop, err := irq.NewLoop(cpu, irq.NewManager(store), store)
	require.NoError(t, err)

	stopped := false

	err = loop.Run(func() error {
		stopped = true
		return nil
	})
	require.ErrorIs(t, err, irq.ErrHaltUnsupported)
	assert.False(t, stopped)
	assert.Equal(t, irq.Idle, loop.State())
	assert.True(t, loop.Powered())
}

func TestLoop_CycleAccounting(t *testing.T) {
	store := newStore(t)
	manager := irq.NewManager(store)
	cpu := &fakeCPU{busy: 7}

	loop, err := irq.NewLoop(cpu, manager, store)
	require.NoError(t, err)

	require.NoError(t, manager.Subscribe(1, func() {}))

	idles := []uint64{0, 50, 1, 1000, 0, 3}

	var lastHalt, lastTotal uint64

	cpu.onHalt = func(halts int) {
		if halts < len(idles) {
			cpu.cycles += idles[halts]
			require.NoError(t, manager.Raise(1))
		} else {
			loop.PowerOff()
		}
	}

	for range len(idles) + 1 {
		if !loop.Powered() {
			break
		}

		require.NoError(t, loop.Halt())

		halt := loop.CyclesHalt()
		total := loop.CyclesTotal()

		assert.GreaterOrEqual(t, halt, lastHalt, "halt cycles decreased")
		assert.GreaterOrEqual(t, total, lastTotal, "total cycles decreased")
		assert.LessOrEqual(t, halt, total, "halt cycles exceed total")

		lastHalt, lastTotal = halt, total

		manager.ProcessInterrupts()
	}

	// Every halt also accounts the busy cycles of the wake up measurement.
	assert.Equal(t, uint64(50+1+1000+0+3+6*7), loop.CyclesHalt())
}
