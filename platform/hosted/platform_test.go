// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/internal/multiboot"
	"github.com/aibor/libkernel/internal/softreset"
	"github.com/aibor/libkernel/internal/sys"
	"github.com/aibor/libkernel/irq"
	"github.com/aibor/libkernel/platform/hosted"
	"github.com/aibor/libkernel/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const highMemory = 128 << 20

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newManager(t *testing.T) *irq.Manager {
	t.Helper()

	stats := new(stat.Store)
	require.NoError(t, stats.Init(0x6000, 0x3000))

	return irq.NewManager(stats)
}

func TestNew_Defaults(t *testing.T) {
	p := hosted.New(hosted.Config{HighMemory: highMemory})

	assert.Equal(t, sys.Native, p.Arch())
	assert.Equal(t,
		boot.DefaultLayout(hosted.DefaultImageStart, hosted.DefaultImageEnd, hosted.DefaultHeapStart),
		p.Layout(),
	)
	assert.EqualValues(t, boot.HighMemoryBase+highMemory, p.PhysicalMemory().Size())
	assert.NotNil(t, p.Entropy())
	assert.WithinDuration(t, time.Now(), p.Now(), time.Minute)

	legacy, err := p.LegacyMemory()
	require.NoError(t, err)
	assert.EqualValues(t, highMemory, legacy)
}

func TestPlatform_MultibootHandoff(t *testing.T) {
	p := hosted.New(hosted.Config{HighMemory: highMemory})

	magic, addr, err := p.MultibootHandoff("console=ttyS0")
	require.NoError(t, err)
	assert.Equal(t, boot.MultibootMagic, magic)
	assert.EqualValues(t, hosted.MultibootInfoAddr, addr)

	info, err := multiboot.Read(p.Memory(), addr)
	require.NoError(t, err)
	assert.EqualValues(t, highMemory, info.HighMemory())
	assert.Equal(t, "console=ttyS0", info.Cmdline)
	require.Len(t, info.MemMap, 2)
	assert.EqualValues(t, boot.HighMemoryBase, info.MemMap[1].Addr)
}

func TestPlatform_SoftResetHandoff(t *testing.T) {
	p := hosted.New(hosted.Config{HighMemory: highMemory})

	magic, addr, err := p.SoftResetHandoff(0x400000, 2)
	require.NoError(t, err)
	assert.Equal(t, boot.SoftResetMagic, magic)

	record, err := softreset.Read(p.Memory(), addr)
	require.NoError(t, err)
	assert.Equal(t, &softreset.Record{
		LiveUpdateLocation: 0x400000,
		HighMemory:         highMemory,
		Resets:             2,
	}, record)
}

func TestPlatform_Raise(t *testing.T) {
	p := hosted.New(hosted.Config{HighMemory: highMemory})

	require.ErrorIs(t, p.Raise(1), hosted.ErrNotInitialized)

	irqs := newManager(t)
	require.NoError(t, p.Init(irqs))

	var called int
	require.NoError(t, irqs.Subscribe(1, func() { called++ }))

	require.NoError(t, p.Raise(1))
	require.ErrorIs(t, p.Raise(irq.Lines), irq.ErrInvalidLine)

	// The pending interrupt wakes the halted CPU immediately.
	require.NoError(t, p.CPU().Halt())

	irqs.ProcessInterrupts()
	assert.Equal(t, 1, called)
}

func TestCPU_Halt(t *testing.T) {
	t.Run("not initialized", func(t *testing.T) {
		p := hosted.New(hosted.Config{Arch: sys.AMD64})
		require.ErrorIs(t, p.CPU().Halt(), hosted.ErrNotInitialized)
	})

	t.Run("unsupported arch", func(t *testing.T) {
		p := hosted.New(hosted.Config{Arch: "mips"})
		require.ErrorIs(t, p.CPU().Halt(), irq.ErrHaltUnsupported)
	})

	t.Run("wakes on interrupt", func(t *testing.T) {
		p := hosted.New(hosted.Config{Arch: sys.AMD64})
		require.NoError(t, p.Init(newManager(t)))

		done := make(chan error)

		go func() {
			done <- p.CPU().Halt()
		}()

		require.NoError(t, p.Raise(3))

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("halt did not return")
		}
	})

	t.Run("cycles monotonic", func(t *testing.T) {
		cpu := hosted.New(hosted.Config{}).CPU()

		first := cpu.Cycles()
		second := cpu.Cycles()
		assert.LessOrEqual(t, first, second)
	})
}

func TestPlatform_RunTimer(t *testing.T) {
	p := hosted.New(hosted.Config{Arch: sys.AMD64})
	irqs := newManager(t)
	require.NoError(t, p.Init(irqs))

	ticks := make(chan struct{}, 16)
	require.NoError(t, irqs.Subscribe(0, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)

	go func() {
		done <- p.RunTimer(ctx, 0, time.Millisecond)
	}()

	require.NoError(t, p.CPU().Halt())
	irqs.ProcessInterrupts()

	cancel()
	require.NoError(t, <-done)
	assert.NotEmpty(t, ticks)
}

func TestPlatform_Poweroff(t *testing.T) {
	p := hosted.New(hosted.Config{})

	assert.False(t, p.PoweredOff())
	require.NoError(t, p.Poweroff())
	assert.True(t, p.PoweredOff())
}

func TestPlatform_Entropy(t *testing.T) {
	p := hosted.New(hosted.Config{Entropy: bytes.NewReader([]byte("seed"))})

	buf := make([]byte, 4)
	_, err := p.Entropy().Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("seed"), buf)
}

func TestPlatform_HeapUsage(t *testing.T) {
	p := hosted.New(hosted.Config{})
	assert.Positive(t, p.HeapUsage())
}
