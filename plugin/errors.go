// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"errors"
)

var (
	// ErrInvalidPlugin is returned if a plugin has no name or no init
	// function.
	ErrInvalidPlugin = errors.New("invalid plugin")

	// ErrSealed is returned if a plugin is registered after the plugins ran.
	ErrSealed = errors.New("plugin registry sealed")

	// ErrPanic is returned if a plugin init function panicked.
	ErrPanic = errors.New("plugin panicked")
)

// InitError wraps the error of a failed plugin init function.
type InitError struct {
	Name string
	Err  error
}

// Error implements the [error] interface.
func (e *InitError) Error() string {
	return "plugin " + e.Name + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*InitError) Is(other error) bool {
	_, ok := other.(*InitError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *InitError) Unwrap() error {
	return e.Err
}
