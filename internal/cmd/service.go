// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/stat"
)

const statTicks = "ticker.ticks"

// tickerService counts timer interrupts and powers off after a limit.
type tickerService struct {
	kernel  *boot.Kernel
	limit   uint64
	output  io.Writer
	counter *stat.Stat
}

func newTickerService(kernel *boot.Kernel, limit uint64, output io.Writer) *tickerService {
	return &tickerService{
		kernel: kernel,
		limit:  limit,
		output: output,
	}
}

func (*tickerService) Name() string {
	return "ticker"
}

func (*tickerService) Version() string {
	return version
}

func (*tickerService) KernelConstraint() string {
	return "^0.1"
}

func (s *tickerService) Start() error {
	counter, err := s.kernel.Stats().Create(stat.Uint64, statTicks)
	if err != nil {
		return fmt.Errorf("tick counter: %w", err)
	}

	s.counter = counter

	if err := s.kernel.IRQ().Subscribe(timerLine, s.tick); err != nil {
		return fmt.Errorf("timer: %w", err)
	}

	return nil
}

func (s *tickerService) tick() {
	s.counter.Inc()

	if s.limit > 0 && s.counter.Uint64() >= s.limit {
		slog.Info("Tick limit reached", slog.Uint64("ticks", s.limit))
		s.kernel.PowerOff()
	}
}

// Stop prints the counters gathered while running.
func (s *tickerService) Stop() error {
	loop := s.kernel.Loop()

	fmt.Fprintf(s.output, "Ticks: %d, uptime: %s\n",
		s.counter.Uint64(), s.kernel.Uptime())

	total := loop.CyclesTotal()
	if total > 0 {
		fmt.Fprintf(s.output, "Halted: %d of %d cycles (%.2f%%)\n",
			loop.CyclesHalt(), total,
			float64(loop.CyclesHalt())*100/float64(total)) //nolint:mnd
	}

	fmt.Fprintln(s.output, "Memory map:")

	if err := s.kernel.MemoryMap().Fprint(s.output); err != nil {
		return fmt.Errorf("print memory map: %w", err)
	}

	return nil
}
