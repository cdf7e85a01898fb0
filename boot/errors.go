// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import (
	"errors"

	"github.com/aibor/libkernel/internal/exitcode"
)

var (
	// ErrNoHighMemory is returned if the size of high memory could not be
	// detected.
	ErrNoHighMemory = errors.New("high memory size unknown")

	// ErrNoHeapStart is returned if the platform layout has no heap start.
	ErrNoHeapStart = errors.New("heap start unknown")

	// ErrKernelConstraint is returned if the service requires another kernel
	// version.
	ErrKernelConstraint = errors.New("kernel version not supported by service")

	// ErrAlreadyBooted is returned if [Kernel.Run] is called more than once.
	ErrAlreadyBooted = errors.New("kernel already booted")
)

// FatalError is returned if a boot phase failed. Nothing after the failed
// phase has been run.
type FatalError struct {
	Phase Phase
	Err   error
}

// Error implements the [error] interface.
func (e *FatalError) Error() string {
	return "fatal in " + e.Phase.String() + ": " + e.Err.Error()
}

// Is implements the [errors.Is] interface.
func (*FatalError) Is(other error) bool {
	_, ok := other.(*FatalError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *FatalError) Unwrap() error {
	return e.Err
}

// ExitCode is returned by [Service.Stop] to set the exit code printed on the
// console before power off.
type ExitCode = exitcode.Error
