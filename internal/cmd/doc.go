// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for running libkernel on
// the hosted platform. It handles flags and the config file, sets up logging,
// composes the kernel with the demo ticker service and its plugins, and maps
// the result to an exit code.
package cmd
