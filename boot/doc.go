// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package boot provides the kernel boot orchestrator.
//
// [Kernel.Run] takes the boot magic and address handed over by the
// bootloader and runs the boot phases in a fixed order:
//
//	DetectEnvironment -> BuildMemoryMap -> InitStats -> PlatformInit ->
//	ClockInit -> RandomInit -> RunPlugins -> ApplicationStart ->
//	EventLoop -> ApplicationStop -> PowerOff
//
// Everything that fails before the service is started is fatal and aborts the
// boot with a [FatalError]. Plugin failures are the exception: they are logged
// and the boot continues.
//
// Platform specifics, like the physical layout of the loaded image or how the
// CPU idles, are supplied by a [Platform] implementation.
package boot
