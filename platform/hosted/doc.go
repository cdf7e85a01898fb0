// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hosted provides a [boot.Platform] that runs the kernel inside an
// ordinary process, or as PID 1 of a virtual machine.
//
// Physical memory is emulated sparsely, so bootloader hand-off structures can
// be placed at their usual addresses. Interrupts are raised by goroutines,
// like [Platform.RunTimer], and the CPU halts by waiting for them. When
// running as PID 1 with [Config.Reboot] set, power off ends the virtual
// machine.
package hosted
