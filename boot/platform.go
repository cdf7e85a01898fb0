// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import (
	"io"
	"time"

	"github.com/aibor/libkernel/internal/sys"
	"github.com/aibor/libkernel/irq"
)

// Platform is the platform specific bootstrap layer the kernel runs on.
type Platform interface {
	// Arch is the CPU architecture. It must have an idle instruction.
	Arch() sys.Arch

	// Layout returns the physical placement of the loaded image.
	Layout() Layout

	// Memory gives read access to physical memory. It is used for reading
	// bootloader hand-off structures.
	Memory() io.ReaderAt

	// LegacyMemory probes the high memory size without bootloader help.
	LegacyMemory() (uint64, error)

	// HeapUsage returns the bytes of heap currently in use.
	HeapUsage() uint64

	// Init sets up platform devices and routes interrupts to the given
	// manager.
	Init(irqs *irq.Manager) error

	// CPU returns the processor the event loop idles on.
	CPU() irq.CPU

	// Now returns the current wall clock time.
	Now() time.Time

	// Entropy is the source for seeding the kernel random number generator.
	Entropy() io.Reader

	// Poweroff turns the machine off. On real hardware it does not return.
	Poweroff() error
}

// Service is the single application hosted by the kernel.
type Service interface {
	// Name and Version are shown in the boot banner.
	Name() string
	Version() string

	// Start is called once the boot sequence is done. It typically
	// subscribes interrupt handlers and returns. The event loop runs after
	// it returned.
	Start() error

	// Stop is called once after the power flag was cleared. An
	// [ExitCode] returned sets the exit code.
	Stop() error
}

// KernelConstrainer may be implemented by a [Service] that requires specific
// kernel versions.
type KernelConstrainer interface {
	// KernelConstraint returns a semantic version constraint, like
	// ">= 0.1, < 1".
	KernelConstraint() string
}
