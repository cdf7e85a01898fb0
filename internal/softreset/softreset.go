// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package softreset decodes the record a kernel leaves in memory before
// jumping back to its own entry point instead of rebooting the machine.
//
// The record carries the state needed to resume without probing the hardware
// again and is protected by a CRC32 checksum.
package softreset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// Magic is the boot magic passed to the entry point on a soft reset.
const Magic uint32 = 0xFEE1DEAD

// RecordSize is the encoded size of a [Record].
const RecordSize = 24

// ErrChecksum is returned if the record checksum does not match.
var ErrChecksum = errors.New("soft reset checksum mismatch")

var byteOrder = binary.LittleEndian

// Record is the soft-reset hand-off state.
type Record struct {
	// LiveUpdateLocation is the address of preserved service state, zero if
	// none.
	LiveUpdateLocation uint64

	// HighMemory is the high memory size detected by the previous boot.
	HighMemory uint64

	// Resets counts soft resets since the last cold boot.
	Resets uint32
}

// Layout: checksum u32 | live update location u64 | high memory u64 |
// resets u32. The checksum covers everything after itself.
func (r *Record) encode() []byte {
	raw := make([]byte, RecordSize)

	byteOrder.PutUint64(raw[4:], r.LiveUpdateLocation)
	byteOrder.PutUint64(raw[12:], r.HighMemory)
	byteOrder.PutUint32(raw[20:], r.Resets)
	byteOrder.PutUint32(raw[0:], crc32.ChecksumIEEE(raw[4:]))

	return raw
}

// Write stores the record at addr.
func (r *Record) Write(mem io.WriterAt, addr uint32) error {
	if _, err := mem.WriteAt(r.encode(), int64(addr)); err != nil {
		return fmt.Errorf("write soft reset record: %w", err)
	}

	return nil
}

// Read decodes and verifies the record at addr.
func Read(mem io.ReaderAt, addr uint32) (*Record, error) {
	raw := make([]byte, RecordSize)
	if _, err := mem.ReadAt(raw, int64(addr)); err != nil {
		return nil, fmt.Errorf("read soft reset record at 0x%x: %w", addr, err)
	}

	if byteOrder.Uint32(raw[0:]) != crc32.ChecksumIEEE(raw[4:]) {
		return nil, fmt.Errorf("record at 0x%x: %w", addr, ErrChecksum)
	}

	return &Record{
		LiveUpdateLocation: byteOrder.Uint64(raw[4:]),
		HighMemory:         byteOrder.Uint64(raw[12:]),
		Resets:             byteOrder.Uint32(raw[20:]),
	}, nil
}
