// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted

import (
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

func monotonicNanos() uint64 {
	var ts unix.Timespec

	// CLOCK_MONOTONIC is always available on Linux.
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)

	return uint64(ts.Nano()) //nolint:gosec
}

func reboot() error {
	// Use restart instead of poweroff for shutting down the system since it
	// does not require ACPI. The guest system should be started with
	// noreboot.
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}

	return nil
}

type getrandomReader struct{}

func (getrandomReader) Read(p []byte) (int, error) {
	n, err := unix.Getrandom(p, 0)
	if err != nil {
		return n, fmt.Errorf("getrandom: %w", err)
	}

	return n, nil
}

func defaultEntropy() io.Reader {
	return getrandomReader{}
}
