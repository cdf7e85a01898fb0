// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted

import "errors"

var (
	// ErrNotInitialized is returned if interrupts are raised before the
	// kernel initialized the platform.
	ErrNotInitialized = errors.New("platform not initialized")

	// ErrOutOfRange is returned for memory accesses beyond the end of
	// physical memory.
	ErrOutOfRange = errors.New("address out of range")
)
