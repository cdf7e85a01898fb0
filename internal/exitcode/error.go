// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package exitcode

import (
	"errors"
	"fmt"
)

// StopFailed is the exit code printed if the service stop hook failed
// without setting an exit code.
const StopFailed = -1

// Error is returned by a service stop hook to set the exit code printed on
// power off. Error(0) is a clean stop that still counts as set by the
// service.
type Error int

func (e Error) Error() string {
	return fmt.Sprintf("service exit code: %d", e)
}

func (Error) Is(other error) bool {
	_, ok := other.(Error)
	return ok
}

// Code returns the exit code as basic int type.
func (e Error) Code() int {
	return int(e)
}

// FromStop maps the result of a service stop hook to the exit code printed
// on power off. It reports whether the service set the exit code itself.
//
// A nil error is a clean stop with exit code 0. Any other error that does
// not carry an [Error] is a failed stop with [StopFailed]. Errors joined to
// the stop error later, like a failed power off, do not change the code.
func FromStop(err error) (int, bool) {
	if err == nil {
		return 0, false
	}

	var exitErr Error
	if errors.As(err, &exitErr) {
		return exitErr.Code(), true
	}

	return StopFailed, false
}
