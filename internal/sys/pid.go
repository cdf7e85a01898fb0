// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import "os"

// IsPidOne returns true if the running process has PID 1, so it is the init
// process of a virtual machine.
func IsPidOne() bool {
	return os.Getpid() == 1
}
