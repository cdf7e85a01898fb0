// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package irq

import "strconv"

// State is the state of the [Loop].
type State int32

// Loop states.
const (
	// Running is application level work outside of the loop, like the
	// service start hook.
	Running State = iota
	// ProcessingInterrupts is draining pending interrupt handlers.
	ProcessingInterrupts
	// Idle is waiting for the next interrupt in [CPU.Halt].
	Idle
	// ShuttingDown is terminal. It is entered once the power flag is
	// cleared.
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ProcessingInterrupts:
		return "processing-interrupts"
	case Idle:
		return "idle"
	case ShuttingDown:
		return "shutting-down"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}
