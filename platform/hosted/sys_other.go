// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

//go:build !linux

package hosted

import (
	"crypto/rand"
	"errors"
	"io"
	"time"
)

var processStart = time.Now()

func monotonicNanos() uint64 {
	return uint64(time.Since(processStart).Nanoseconds()) //nolint:gosec
}

func reboot() error {
	return errors.ErrUnsupported
}

func defaultEntropy() io.Reader {
	return rand.Reader
}
