// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package irq

import (
	"fmt"
	"math/bits"
	"strconv"
	"sync/atomic"

	"github.com/aibor/libkernel/stat"
)

// Lines is the number of interrupt lines a [Manager] dispatches.
const Lines = 64

// Handler is run for each delivery of its interrupt line.
type Handler func()

type subscription struct {
	handler Handler
	count   *stat.Stat
}

// Manager dispatches raised interrupt lines to subscribed handlers.
type Manager struct {
	stats    *stat.Store
	handlers [Lines]subscription
	pending  atomic.Uint64
	wake     chan struct{}
}

// NewManager creates a manager publishing per line delivery counts in the
// given store.
func NewManager(stats *stat.Store) *Manager {
	return &Manager{
		stats: stats,
		wake:  make(chan struct{}, 1),
	}
}

// Subscribe sets the handler for the given line.
//
// Subscribing is not synchronized with [Manager.ProcessInterrupts]. It must
// be done during boot, by the service start hook or by a handler.
func (m *Manager) Subscribe(line uint8, handler Handler) error {
	if line >= Lines {
		return fmt.Errorf("subscribe %d: %w", line, ErrInvalidLine)
	}

	if m.handlers[line].handler != nil {
		return fmt.Errorf("subscribe %d: %w", line, ErrLineTaken)
	}

	count, err := m.stats.Create(stat.Uint64, "cpu0.irq"+strconv.Itoa(int(line)))
	if err != nil {
		return fmt.Errorf("subscribe %d: %w", line, err)
	}

	m.handlers[line] = subscription{handler: handler, count: count}

	return nil
}

// Raise marks the given line pending and wakes a halted CPU.
//
// It is safe to call from any goroutine.
func (m *Manager) Raise(line uint8) error {
	if line >= Lines {
		return fmt.Errorf("raise %d: %w", line, ErrInvalidLine)
	}

	m.pending.Or(1 << line)

	select {
	case m.wake <- struct{}{}:
	default:
	}

	return nil
}

// Wake returns the channel that receives a value after an interrupt was
// raised. A [CPU] waits on it while halted.
func (m *Manager) Wake() <-chan struct{} {
	return m.wake
}

// Pending returns true if any line is raised but not processed yet.
func (m *Manager) Pending() bool {
	return m.pending.Load() != 0
}

// ProcessInterrupts runs the handlers of all pending lines in ascending line
// order until no line is pending anymore. Lines without handler are dropped.
func (m *Manager) ProcessInterrupts() {
	for {
		pending := m.pending.Swap(0)
		if pending == 0 {
			return
		}

		for pending != 0 {
			line := bits.TrailingZeros64(pending)
			pending &^= 1 << line

			sub := m.handlers[line]
			if sub.handler == nil {
				continue
			}

			sub.count.Inc()
			sub.handler()
		}
	}
}
