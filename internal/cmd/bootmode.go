// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/aibor/libkernel/platform/hosted"
)

// BootMode selects how the emulated bootloader hands over to the kernel.
type BootMode string

// Supported boot modes.
const (
	BootMultiboot BootMode = "multiboot"
	BootLegacy    BootMode = "legacy"
	BootSoftReset BootMode = "softreset"
)

func (m BootMode) String() string {
	return string(m)
}

// Set implements [flag.Value].
func (m *BootMode) Set(s string) error {
	switch mode := BootMode(s); mode {
	case BootMultiboot, BootLegacy, BootSoftReset:
		*m = mode
		return nil
	default:
		return fmt.Errorf("%s: %w", s, ErrInvalidBootMode)
	}
}

// handoff prepares the platform memory for the boot mode and returns the
// magic and address the kernel is booted with.
func (m BootMode) handoff(platform *hosted.Platform, cmdline string) (uint32, uint32, error) {
	switch m {
	case BootMultiboot:
		return platform.MultibootHandoff(cmdline) //nolint:wrapcheck
	case BootSoftReset:
		return platform.SoftResetHandoff(0, 0) //nolint:wrapcheck
	case BootLegacy:
		return 0, 0, nil
	default:
		return 0, 0, fmt.Errorf("%s: %w", m, ErrInvalidBootMode)
	}
}
