// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted

import (
	"sync/atomic"

	"github.com/aibor/libkernel/internal/sys"
	"github.com/aibor/libkernel/irq"
)

// CPU implements [irq.CPU]. Cycles are nanoseconds of the monotonic clock
// since the CPU was created.
type CPU struct {
	arch  sys.Arch
	start uint64
	wake  atomic.Pointer[<-chan struct{}]
}

func newCPU(arch sys.Arch) *CPU {
	return &CPU{
		arch:  arch,
		start: monotonicNanos(),
	}
}

func (c *CPU) connect(wake <-chan struct{}) {
	c.wake.Store(&wake)
}

// Cycles implements [irq.CPU].
func (c *CPU) Cycles() uint64 {
	return monotonicNanos() - c.start
}

// Halt implements [irq.CPU]. It blocks until an interrupt is raised.
func (c *CPU) Halt() error {
	if !c.arch.CanHalt() {
		return irq.ErrHaltUnsupported
	}

	wake := c.wake.Load()
	if wake == nil {
		return ErrNotInitialized
	}

	<-*wake

	return nil
}
