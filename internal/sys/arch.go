// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"runtime"
)

// Arch is a CPU architecture name as used by GOARCH.
type Arch string

// Architectures with an idle instruction the kernel can halt on.
const (
	I386    Arch = "386"
	AMD64   Arch = "amd64"
	ARM64   Arch = "arm64"
	RISCV64 Arch = "riscv64"
)

// Native is the architecture the kernel is built for.
const Native Arch = Arch(runtime.GOARCH)

var idleInstructions = map[Arch]string{
	I386:    "hlt",
	AMD64:   "hlt",
	ARM64:   "wfi",
	RISCV64: "wfi",
}

func (a Arch) String() string {
	return string(a)
}

// IdleInstruction returns the instruction used for halting the CPU until the
// next interrupt. It returns false if the architecture has none supported.
func (a Arch) IdleInstruction() (string, bool) {
	instruction, exists := idleInstructions[a]
	return instruction, exists
}

// CanHalt returns true if the architecture has a supported idle instruction.
func (a Arch) CanHalt() bool {
	_, exists := idleInstructions[a]
	return exists
}

// Bits returns the word size of the architecture.
func (a Arch) Bits() int {
	if a == I386 {
		return 32 //nolint:mnd
	}

	return 64 //nolint:mnd
}

// Set implements [flag.Value].
func (a *Arch) Set(s string) error {
	arch := Arch(s)
	if !arch.CanHalt() {
		return ErrArchNotSupported
	}

	*a = arch

	return nil
}
