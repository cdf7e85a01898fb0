// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package multiboot decodes the multiboot (version 1) information structure a
// compliant bootloader leaves in memory.
//
// Only the fields the kernel consumes are decoded: memory limits, the
// command line and the memory map.
package multiboot
