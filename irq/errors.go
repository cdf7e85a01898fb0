// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package irq

import "errors"

var (
	// ErrInvalidLine is returned for interrupt lines >= [Lines].
	ErrInvalidLine = errors.New("invalid interrupt line")

	// ErrLineTaken is returned if a handler is already subscribed to the
	// line.
	ErrLineTaken = errors.New("interrupt line taken")

	// ErrHaltUnsupported is returned by [CPU.Halt] on architectures without
	// an idle instruction.
	ErrHaltUnsupported = errors.New("halt not supported on this architecture")

	// ErrLoopRunning is returned if [Loop.Run] is called more than once.
	ErrLoopRunning = errors.New("event loop already ran")
)
