// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/internal/multiboot"
	"github.com/aibor/libkernel/internal/softreset"
	"github.com/aibor/libkernel/internal/sys"
	"github.com/aibor/libkernel/irq"
)

// Addresses the bootloader hand-off structures are written to. Both are in
// the gap between the stats and the stack.
const (
	MultibootInfoAddr   = 0x9000
	SoftResetRecordAddr = 0x9800
)

// Default image placement of the emulated service binary. The heap starts
// one [boot.HeapAlign] above the image, leaving room for the heap
// randomization area.
const (
	DefaultImageStart = 0x200000
	DefaultImageEnd   = 0x2fffff
	DefaultHeapStart  = DefaultImageEnd + 1 + boot.HeapAlign
)

// lowMemoryKiB is the conventional memory below 640 KiB.
const lowMemoryKiB = 639

// Config configures the [Platform]. Zero values are replaced with defaults.
type Config struct {
	// Arch is the emulated architecture. Defaults to [sys.Native].
	Arch sys.Arch

	// HighMemory is the number of bytes of memory above 1 MiB. It is what
	// the legacy probe and the multiboot hand-off report.
	HighMemory uint64

	// Layout defaults to [boot.DefaultLayout] with the default image
	// placement.
	Layout *boot.Layout

	// Entropy defaults to the getrandom syscall.
	Entropy io.Reader

	// Clock defaults to [time.Now].
	Clock func() time.Time

	// Reboot the machine on power off if running as PID 1.
	Reboot bool
}

// Platform implements [boot.Platform] for a hosted process.
type Platform struct {
	arch       sys.Arch
	highMemory uint64
	layout     boot.Layout
	entropy    io.Reader
	clock      func() time.Time
	reboot     bool

	memory     *Memory
	cpu        *CPU
	irqs       atomic.Pointer[irq.Manager]
	poweredOff atomic.Bool
}

var _ boot.Platform = (*Platform)(nil)

// New creates a platform from the given config.
func New(cfg Config) *Platform {
	p := &Platform{
		arch:       cfg.Arch,
		highMemory: cfg.HighMemory,
		entropy:    cfg.Entropy,
		clock:      cfg.Clock,
		reboot:     cfg.Reboot,
	}

	if p.arch == "" {
		p.arch = sys.Native
	}

	if cfg.Layout != nil {
		p.layout = *cfg.Layout
	} else {
		p.layout = boot.DefaultLayout(DefaultImageStart, DefaultImageEnd, DefaultHeapStart)
	}

	if p.entropy == nil {
		p.entropy = defaultEntropy()
	}

	if p.clock == nil {
		p.clock = time.Now
	}

	p.memory = NewMemory(boot.HighMemoryBase + p.highMemory)
	p.cpu = newCPU(p.arch)

	return p
}

// Arch implements [boot.Platform].
func (p *Platform) Arch() sys.Arch {
	return p.arch
}

// Layout implements [boot.Platform].
func (p *Platform) Layout() boot.Layout {
	return p.layout
}

// Memory implements [boot.Platform].
func (p *Platform) Memory() io.ReaderAt {
	return p.memory
}

// PhysicalMemory returns the emulated physical memory for direct access.
func (p *Platform) PhysicalMemory() *Memory {
	return p.memory
}

// LegacyMemory implements [boot.Platform]. It reports the configured high
// memory size, like the CMOS of a PC would.
func (p *Platform) LegacyMemory() (uint64, error) {
	return p.highMemory, nil
}

// HeapUsage implements [boot.Platform]. It reports the bytes in use by the
// Go heap of the process.
func (p *Platform) HeapUsage() uint64 {
	var stats runtime.MemStats

	runtime.ReadMemStats(&stats)

	return stats.HeapInuse
}

// Init implements [boot.Platform]. It connects the CPU to the interrupt
// manager, so halting waits for interrupts.
func (p *Platform) Init(irqs *irq.Manager) error {
	if irqs == nil {
		return fmt.Errorf("interrupt manager: %w", ErrNotInitialized)
	}

	p.irqs.Store(irqs)
	p.cpu.connect(irqs.Wake())

	return nil
}

// CPU implements [boot.Platform].
func (p *Platform) CPU() irq.CPU {
	return p.cpu
}

// Now implements [boot.Platform].
func (p *Platform) Now() time.Time {
	return p.clock()
}

// Entropy implements [boot.Platform].
func (p *Platform) Entropy() io.Reader {
	return p.entropy
}

// Poweroff implements [boot.Platform]. When running as PID 1 with reboot
// enabled, the machine is reset and Poweroff does not return on success.
func (p *Platform) Poweroff() error {
	p.poweredOff.Store(true)

	if p.reboot && sys.IsPidOne() {
		return reboot()
	}

	return nil
}

// PoweredOff returns true once [Platform.Poweroff] was called.
func (p *Platform) PoweredOff() bool {
	return p.poweredOff.Load()
}

// Raise raises the given interrupt line. It can be called from any
// goroutine once the kernel initialized the platform.
func (p *Platform) Raise(line uint8) error {
	irqs := p.irqs.Load()
	if irqs == nil {
		return ErrNotInitialized
	}

	if err := irqs.Raise(line); err != nil {
		return fmt.Errorf("raise: %w", err)
	}

	return nil
}

// RunTimer raises the given line every interval until the context is
// canceled. Ticks before the kernel initialized the platform are dropped.
func (p *Platform) RunTimer(ctx context.Context, line uint8, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if p.irqs.Load() == nil {
				continue
			}

			if err := p.Raise(line); err != nil {
				return err
			}
		}
	}
}

// MultibootHandoff writes a multiboot info structure describing the
// configured memory and the given command line, like a bootloader would. It
// returns the magic and address to pass to [boot.Kernel.Run].
func (p *Platform) MultibootHandoff(cmdline string) (uint32, uint32, error) {
	info := multiboot.Info{
		MemLower: lowMemoryKiB,
		MemUpper: uint32(p.highMemory / 1024), //nolint:gosec
		Cmdline:  cmdline,
		MemMap: []multiboot.MemoryEntry{
			{
				Addr:   0,
				Length: lowMemoryKiB * 1024,
				Type:   multiboot.MemoryAvailable,
			},
			{
				Addr:   boot.HighMemoryBase,
				Length: p.highMemory,
				Type:   multiboot.MemoryAvailable,
			},
		},
	}

	if err := info.Write(p.memory, MultibootInfoAddr); err != nil {
		return 0, 0, fmt.Errorf("multiboot handoff: %w", err)
	}

	return boot.MultibootMagic, MultibootInfoAddr, nil
}

// SoftResetHandoff writes a soft-reset record as a previous boot would leave
// it before resetting. It returns the magic and address to pass to
// [boot.Kernel.Run].
func (p *Platform) SoftResetHandoff(liveUpdate uint64, resets uint32) (uint32, uint32, error) {
	record := softreset.Record{
		LiveUpdateLocation: liveUpdate,
		HighMemory:         p.highMemory,
		Resets:             resets,
	}

	if err := record.Write(p.memory, SoftResetRecordAddr); err != nil {
		return 0, 0, fmt.Errorf("soft reset handoff: %w", err)
	}

	return boot.SoftResetMagic, SoftResetRecordAddr, nil
}
