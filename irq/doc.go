// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package irq provides interrupt dispatching and the kernel event loop.
//
// Interrupt delivery may happen on any goroutine, modelling hardware that
// raises lines asynchronously. [Manager.Raise] only marks a line pending and
// wakes a halted [CPU]. Handlers always run on the goroutine executing
// [Loop.Run], one at a time and to completion.
package irq
