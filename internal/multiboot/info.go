// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package multiboot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// BootloaderMagic is the value a multiboot compliant bootloader passes in
// EAX.
const BootloaderMagic uint32 = 0x2BADB002

// Info flags.
const (
	FlagMemory  uint32 = 1 << 0
	FlagCmdline uint32 = 1 << 2
	FlagMemMap  uint32 = 1 << 6
)

// Field offsets in the info structure.
const (
	offFlags      = 0
	offMemLower   = 4
	offMemUpper   = 8
	offCmdline    = 16
	offMmapLength = 44
	offMmapAddr   = 48

	// InfoSize is the size of the fixed part of the info structure.
	InfoSize = 116

	cmdlineMax = 4096
	memMapMax  = 4096
	kib        = 1024
)

var (
	// ErrNoMemoryInfo is returned if the memory fields are not flagged
	// valid.
	ErrNoMemoryInfo = errors.New("no memory information")

	// ErrInvalidMemMap is returned if a memory map entry is malformed or the
	// memory map exceeds its maximum length.
	ErrInvalidMemMap = errors.New("invalid memory map")
)

var byteOrder = binary.LittleEndian

// MemoryType is the type of a [MemoryEntry].
type MemoryType uint32

// Memory types.
const (
	MemoryAvailable MemoryType = 1
	MemoryReserved  MemoryType = 2
	MemoryACPI      MemoryType = 3
	MemoryNVS       MemoryType = 4
	MemoryBad       MemoryType = 5
)

func (t MemoryType) String() string {
	switch t {
	case MemoryAvailable:
		return "available"
	case MemoryACPI:
		return "acpi"
	case MemoryNVS:
		return "nvs"
	case MemoryBad:
		return "bad"
	default:
		return "reserved"
	}
}

// MemoryEntry is a single entry of the bootloader memory map.
type MemoryEntry struct {
	Addr   uint64
	Length uint64
	Type   MemoryType
}

// Info is the decoded information structure.
type Info struct {
	Flags uint32

	// MemLower and MemUpper are in KiB. MemUpper starts at 1 MiB.
	MemLower uint32
	MemUpper uint32

	Cmdline string
	MemMap  []MemoryEntry
}

// HighMemory returns the bytes of memory above 1 MiB.
func (i *Info) HighMemory() uint64 {
	return uint64(i.MemUpper) * kib
}

// Read decodes the info structure located at addr.
func Read(mem io.ReaderAt, addr uint32) (*Info, error) {
	raw := make([]byte, InfoSize)
	if _, err := mem.ReadAt(raw, int64(addr)); err != nil {
		return nil, fmt.Errorf("read info at 0x%x: %w", addr, err)
	}

	info := &Info{
		Flags: byteOrder.Uint32(raw[offFlags:]),
	}

	if info.Flags&FlagMemory == 0 {
		return nil, ErrNoMemoryInfo
	}

	info.MemLower = byteOrder.Uint32(raw[offMemLower:])
	info.MemUpper = byteOrder.Uint32(raw[offMemUpper:])

	if info.Flags&FlagCmdline != 0 {
		cmdline, err := readCString(mem, byteOrder.Uint32(raw[offCmdline:]))
		if err != nil {
			return nil, fmt.Errorf("cmdline: %w", err)
		}

		info.Cmdline = cmdline
	}

	if info.Flags&FlagMemMap != 0 {
		memMap, err := readMemMap(
			mem,
			byteOrder.Uint32(raw[offMmapAddr:]),
			byteOrder.Uint32(raw[offMmapLength:]),
		)
		if err != nil {
			return nil, fmt.Errorf("memory map: %w", err)
		}

		info.MemMap = memMap
	}

	return info, nil
}

func readCString(mem io.ReaderAt, addr uint32) (string, error) {
	buf := make([]byte, cmdlineMax)

	n, err := mem.ReadAt(buf, int64(addr))
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read at 0x%x: %w", addr, err)
	}

	str, _, _ := bytes.Cut(buf[:n], []byte{0})

	return string(str), nil
}

// Each entry is prefixed with its size, not counting the size field itself.
const (
	entrySizeField = 4
	entryMinSize   = 20
)

func readMemMap(mem io.ReaderAt, addr, length uint32) ([]MemoryEntry, error) {
	if length > memMapMax {
		return nil, fmt.Errorf("length %d: %w", length, ErrInvalidMemMap)
	}

	raw := make([]byte, length)
	if _, err := mem.ReadAt(raw, int64(addr)); err != nil {
		return nil, fmt.Errorf("read at 0x%x: %w", addr, err)
	}

	var entries []MemoryEntry

	for offset := 0; offset < len(raw); {
		if len(raw)-offset < entrySizeField+entryMinSize {
			return nil, fmt.Errorf("truncated entry at %d: %w", offset, ErrInvalidMemMap)
		}

		size := int(byteOrder.Uint32(raw[offset:]))
		if size < entryMinSize {
			return nil, fmt.Errorf("entry size %d: %w", size, ErrInvalidMemMap)
		}

		entry := raw[offset+entrySizeField:]
		entries = append(entries, MemoryEntry{
			Addr:   byteOrder.Uint64(entry[0:]),
			Length: byteOrder.Uint64(entry[8:]),
			Type:   MemoryType(byteOrder.Uint32(entry[16:])),
		})

		offset += entrySizeField + size
	}

	return entries, nil
}
