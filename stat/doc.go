// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package stat provides a fixed-capacity store of named counters.
//
// The store is bound to a fixed physical range once with [Store.Init]. Its
// capacity is derived from the size of that range and never changes. Counter
// cells are never moved, so the [Stat] pointers handed out by [Store.Create]
// stay valid for the lifetime of the process.
//
// Values are read and written atomically. Interrupt handlers running on
// another goroutine may update a counter while the main flow reads it.
package stat
