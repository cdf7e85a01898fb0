// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package irq

import (
	"fmt"
	"sync/atomic"

	"github.com/aibor/libkernel/stat"
)

// Names of the cycle counters in the stat store.
const (
	StatCyclesHalt  = "cpu0.cycles_hlt"
	StatCyclesTotal = "cpu0.cycles_total"
)

// CPU is the processor the loop idles on.
type CPU interface {
	// Cycles returns a monotonic cycle count since boot.
	Cycles() uint64

	// Halt idles until an interrupt arrives. It returns
	// [ErrHaltUnsupported] if the architecture has no idle instruction.
	Halt() error
}

// Loop is the steady state kernel loop.
//
// It alternates between processing interrupts and halting the CPU while the
// power flag is set. Halted and total cycles are published as counters in
// the stat store.
type Loop struct {
	cpu         CPU
	irqs        *Manager
	cyclesHalt  *stat.Stat
	cyclesTotal *stat.Stat
	power       atomic.Bool
	state       atomic.Int32
	ran         atomic.Bool
}

// NewLoop creates a loop with the power flag set. It creates the cycle
// counters in the given store, which must be initialized already.
func NewLoop(cpu CPU, irqs *Manager, stats *stat.Store) (*Loop, error) {
	cyclesHalt, err := stats.Create(stat.Uint64, StatCyclesHalt)
	if err != nil {
		return nil, fmt.Errorf("halt cycles counter: %w", err)
	}

	cyclesTotal, err := stats.Create(stat.Uint64, StatCyclesTotal)
	if err != nil {
		return nil, fmt.Errorf("total cycles counter: %w", err)
	}

	loop := &Loop{
		cpu:         cpu,
		irqs:        irqs,
		cyclesHalt:  cyclesHalt,
		cyclesTotal: cyclesTotal,
	}
	loop.power.Store(true)

	return loop, nil
}

// Halt idles the CPU until the next interrupt and accounts the cycles.
func (l *Loop) Halt() error {
	before := l.cpu.Cycles()
	l.cyclesTotal.Set(before)

	err := l.cpu.Halt()

	after := l.cpu.Cycles()
	if after > before {
		l.cyclesHalt.Add(after - before)
	}

	l.cyclesTotal.Set(after)

	if err != nil {
		return fmt.Errorf("halt: %w", err)
	}

	return nil
}

// Run processes interrupts and idles until the power flag is cleared. Then it
// runs the given stop function and returns its error. It returns early with
// the error of a failed [CPU.Halt], leaving the loop [Idle] with the power
// flag set.
//
// The flag is checked before each halt, so the loop never idles once the
// flag is cleared by the service start hook or an interrupt handler.
func (l *Loop) Run(stop func() error) error {
	if !l.ran.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}

	l.setState(ProcessingInterrupts)
	l.irqs.ProcessInterrupts()

	for l.power.Load() {
		l.setState(Idle)

		if err := l.Halt(); err != nil {
			return err
		}

		l.setState(ProcessingInterrupts)
		l.irqs.ProcessInterrupts()
	}

	l.setState(ShuttingDown)

	if stop == nil {
		return nil
	}

	return stop()
}

// PowerOff clears the power flag. The loop shuts down once the current
// iteration is done.
func (l *Loop) PowerOff() {
	l.power.Store(false)
}

// Powered returns true while the power flag is set.
func (l *Loop) Powered() bool {
	return l.power.Load()
}

// State returns the current loop state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// CyclesHalt returns the cumulative cycles spent halted.
func (l *Loop) CyclesHalt() uint64 {
	return l.cyclesHalt.Uint64()
}

// CyclesTotal returns the cycles since boot at the last measurement point.
func (l *Loop) CyclesTotal() uint64 {
	return l.cyclesTotal.Uint64()
}

func (l *Loop) setState(state State) {
	l.state.Store(int32(state))
}
