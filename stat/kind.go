// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stat

import "strconv"

// Kind is the numeric type of a [Stat].
type Kind uint8

// Supported kinds.
const (
	Uint32 Kind = iota + 1
	Uint64
	Float
)

func (k Kind) String() string {
	switch k {
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float:
		return "float"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) valid() bool {
	return k >= Uint32 && k <= Float
}
