// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "errors"

// ErrArchNotSupported is returned for architectures without supported idle
// instruction.
var ErrArchNotSupported = errors.New("architecture not supported")
