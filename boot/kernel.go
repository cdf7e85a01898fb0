// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"sync/atomic"
	"time"

	"github.com/aibor/libkernel/internal/exitcode"
	"github.com/aibor/libkernel/irq"
	"github.com/aibor/libkernel/memmap"
	"github.com/aibor/libkernel/plugin"
	"github.com/aibor/libkernel/stat"
)

// Version is the kernel version shown in the banner and checked against
// service constraints.
const Version = "0.1.0"

const seedSize = 32

// Config holds what the composition root passes to the kernel.
type Config struct {
	// Plugins are run in order during boot. May be nil.
	Plugins *plugin.Registry

	// Console receives the banner, the memory map and the exit code line.
	// Defaults to [os.Stdout].
	Console io.Writer

	// Logger defaults to [slog.Default]. Kernel attributes are grouped under
	// "kernel".
	Logger *slog.Logger

	// Version overrides [Version].
	Version string
}

// Kernel owns all boot time state. It is created with [New] and booted with
// [Kernel.Run].
type Kernel struct {
	platform Platform
	plugins  *plugin.Registry
	console  io.Writer
	logger   *slog.Logger
	version  string

	ctx      Context
	memMap   memmap.Map
	stats    stat.Store
	irqs     *irq.Manager
	loop     *irq.Loop
	bootTime time.Time
	rand     *rand.Rand

	phase      atomic.Int32
	bootPassed atomic.Bool
}

// New creates a kernel for the given platform.
func New(platform Platform, cfg Config) *Kernel {
	k := &Kernel{
		platform: platform,
		plugins:  cfg.Plugins,
		console:  cfg.Console,
		logger:   cfg.Logger,
		version:  cfg.Version,
	}

	if k.plugins == nil {
		k.plugins = plugin.New()
	}

	if k.console == nil {
		k.console = os.Stdout
	}

	if k.logger == nil {
		k.logger = slog.Default()
	}

	k.logger = k.logger.WithGroup("kernel")

	if k.version == "" {
		k.version = Version
	}

	k.irqs = irq.NewManager(&k.stats)

	return k
}

// Run boots the kernel with the boot magic and address handed over by the
// bootloader, starts the given service and runs the event loop until the
// power flag is cleared. Then the service is stopped and the platform is
// powered off.
//
// A failure before the service started or a failing CPU halt returns a
// [FatalError]. Otherwise the error returned by [Service.Stop] is returned,
// joined with a power off error if any. Run only returns if the platform
// power off returns.
func (k *Kernel) Run(magic, addr uint32, svc Service) error {
	if !k.phase.CompareAndSwap(int32(Created), int32(DetectEnvironment)) {
		return ErrAlreadyBooted
	}

	k.logger.Info("Booting",
		slog.String("magic", fmt.Sprintf("0x%x", magic)),
		slog.String("addr", fmt.Sprintf("0x%x", addr)),
	)

	phases := []struct {
		phase Phase
		fn    func() error
	}{
		{DetectEnvironment, func() error { return k.detectEnvironment(magic, addr) }},
		{BuildMemoryMap, k.buildMemoryMap},
		{InitStats, k.initStats},
		{PlatformInit, k.initPlatform},
		{ClockInit, k.initClock},
		{RandomInit, k.initRandom},
		{RunPlugins, k.runPlugins},
		{ApplicationStart, func() error { return k.startService(svc) }},
	}

	for _, p := range phases {
		k.setPhase(p.phase)

		if err := p.fn(); err != nil {
			return k.fatal(p.phase, err)
		}
	}

	k.setPhase(EventLoop)

	stopErr := k.loop.Run(func() error {
		k.setPhase(ApplicationStop)
		k.logger.Info("Stopping service", slog.String("service", svc.Name()))

		return svc.Stop()
	})

	if k.Phase() == EventLoop {
		return k.fatal(EventLoop, stopErr)
	}

	k.setPhase(PowerOff)

	return k.powerOff(stopErr)
}

func (k *Kernel) fatal(phase Phase, err error) error {
	fatalErr := &FatalError{Phase: phase, Err: err}

	k.logger.Error("Boot aborted",
		slog.String("phase", phase.String()),
		slog.Any("error", err),
	)

	return fatalErr
}

func (k *Kernel) initStats() error {
	layout := k.platform.Layout()

	if err := k.stats.Init(layout.Stats.Start, layout.Stats.Size()); err != nil {
		return fmt.Errorf("stat store: %w", err)
	}

	loop, err := irq.NewLoop(k.platform.CPU(), k.irqs, &k.stats)
	if err != nil {
		return fmt.Errorf("event loop: %w", err)
	}

	k.loop = loop

	return nil
}

func (k *Kernel) initPlatform() error {
	if err := k.platform.Init(k.irqs); err != nil {
		return fmt.Errorf("platform: %w", err)
	}

	return nil
}

func (k *Kernel) initClock() error {
	k.bootTime = k.platform.Now()

	k.logger.Debug("Clock initialized",
		slog.Time("boot_timestamp", k.bootTime))

	return nil
}

func (k *Kernel) initRandom() error {
	var seed [seedSize]byte

	if _, err := io.ReadFull(k.platform.Entropy(), seed[:]); err != nil {
		return fmt.Errorf("read entropy: %w", err)
	}

	k.rand = rand.New(rand.NewChaCha8(seed)) //nolint:gosec

	return nil
}

// runPlugins marks the end of the boot sequence and runs all plugins.
// Plugin failures do not abort the boot. The memory map is frozen after
// plugins had the chance to claim their ranges.
func (k *Kernel) runPlugins() error {
	k.bootPassed.Store(true)

	k.logger.Info("Initializing plugins", slog.Int("count", k.plugins.Len()))

	failed := k.plugins.RunAll(k.logger)
	if len(failed) > 0 {
		k.logger.Warn("Some plugins failed", slog.Int("failed", len(failed)))
	}

	k.memMap.Freeze()

	return nil
}

func (k *Kernel) powerOff(stopErr error) error {
	exitCode, isExitErr := exitcode.FromStop(stopErr)
	if stopErr != nil && !isExitErr {
		k.logger.Error("Service stop failed", slog.Any("error", stopErr))
	}

	k.logger.Info("Powering off", slog.Int("exit_code", exitCode))

	_, _ = exitcode.Fprint(k.console, exitCode)

	if err := k.platform.Poweroff(); err != nil {
		return errors.Join(stopErr, fmt.Errorf("power off: %w", err))
	}

	return stopErr
}

// PowerOff clears the power flag. The event loop shuts down after the
// current iteration. It is safe to call from interrupt handlers and the
// service start hook.
func (k *Kernel) PowerOff() {
	if k.loop != nil {
		k.loop.PowerOff()
	}
}

// Phase returns the current boot phase.
func (k *Kernel) Phase() Phase {
	return Phase(k.phase.Load())
}

func (k *Kernel) setPhase(phase Phase) {
	k.logger.Debug("Entering phase", slog.String("phase", phase.String()))
	k.phase.Store(int32(phase))
}

// BootSequencePassed returns true once the kernel's own initialization is
// done and plugins are run.
func (k *Kernel) BootSequencePassed() bool {
	return k.bootPassed.Load()
}

// Context returns the detected boot environment.
func (k *Kernel) Context() Context {
	return k.ctx
}

// MemoryMap returns the memory map. It is read-only once plugins ran.
func (k *Kernel) MemoryMap() *memmap.Map {
	return &k.memMap
}

// Stats returns the stat store.
func (k *Kernel) Stats() *stat.Store {
	return &k.stats
}

// IRQ returns the interrupt manager.
func (k *Kernel) IRQ() *irq.Manager {
	return k.irqs
}

// Loop returns the event loop. It is nil before [InitStats].
func (k *Kernel) Loop() *irq.Loop {
	return k.loop
}

// BootTimestamp returns the wall clock time of the clock init phase.
func (k *Kernel) BootTimestamp() time.Time {
	return k.bootTime
}

// Uptime returns the time since [Kernel.BootTimestamp].
func (k *Kernel) Uptime() time.Duration {
	return k.platform.Now().Sub(k.bootTime)
}

// Rand returns the kernel random number generator. It is nil before
// [RandomInit].
func (k *Kernel) Rand() *rand.Rand {
	return k.rand
}
