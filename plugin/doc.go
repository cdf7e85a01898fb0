// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package plugin provides the ordered registry of subsystem init functions
// run once during boot.
//
// Plugins are contributed by optional, independently built subsystems. One
// failing plugin must not keep the others from initializing, so
// [Registry.RunAll] logs and collects failures and carries on.
package plugin
