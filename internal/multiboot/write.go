// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package multiboot

import (
	"fmt"
	"io"
)

// Write encodes the info structure at addr the way a bootloader would. The
// command line and memory map are placed directly behind the fixed part.
//
// It is used by platforms that emulate a multiboot hand-off.
func (i *Info) Write(mem io.WriterAt, addr uint32) error {
	raw := make([]byte, InfoSize)
	flags := i.Flags | FlagMemory

	byteOrder.PutUint32(raw[offMemLower:], i.MemLower)
	byteOrder.PutUint32(raw[offMemUpper:], i.MemUpper)

	next := addr + InfoSize

	if i.Cmdline != "" {
		flags |= FlagCmdline
		byteOrder.PutUint32(raw[offCmdline:], next)

		cmdline := append([]byte(i.Cmdline), 0)
		if _, err := mem.WriteAt(cmdline, int64(next)); err != nil {
			return fmt.Errorf("write cmdline: %w", err)
		}

		next += uint32(len(cmdline)) //nolint:gosec
	}

	if len(i.MemMap) > 0 {
		flags |= FlagMemMap

		entries := make([]byte, 0, len(i.MemMap)*(entrySizeField+entryMinSize))
		for _, entry := range i.MemMap {
			entries = byteOrder.AppendUint32(entries, entryMinSize)
			entries = byteOrder.AppendUint64(entries, entry.Addr)
			entries = byteOrder.AppendUint64(entries, entry.Length)
			entries = byteOrder.AppendUint32(entries, uint32(entry.Type))
		}

		byteOrder.PutUint32(raw[offMmapAddr:], next)
		byteOrder.PutUint32(raw[offMmapLength:], uint32(len(entries))) //nolint:gosec

		if _, err := mem.WriteAt(entries, int64(next)); err != nil {
			return fmt.Errorf("write memory map: %w", err)
		}
	}

	byteOrder.PutUint32(raw[offFlags:], flags)

	if _, err := mem.WriteAt(raw, int64(addr)); err != nil {
		return fmt.Errorf("write info: %w", err)
	}

	return nil
}
