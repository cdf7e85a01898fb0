// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package memmap provides the registry of claimed physical address ranges.
//
// Without virtual memory, two subsystems writing to the same physical bytes
// corrupt each other silently. Every claim therefore goes through
// [Map.AssignRange], which refuses any [Region] that intersects one already
// assigned. Regions are append-only while booting and read-only once the map
// is frozen.
package memmap
