// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package hosted

import (
	"fmt"
	"io"
	"sync"
)

const pageSize = 4096

// Memory is sparse physical memory. Pages are allocated on first write.
// Reading pages never written returns zeros.
type Memory struct {
	size  uint64
	mu    sync.Mutex
	pages map[uint64]*[pageSize]byte
}

// NewMemory creates memory with the given size in bytes.
func NewMemory(size uint64) *Memory {
	return &Memory{
		size:  size,
		pages: make(map[uint64]*[pageSize]byte),
	}
}

// Size returns the size of the memory in bytes.
func (m *Memory) Size() uint64 {
	return m.size
}

// ReadAt implements [io.ReaderAt]. Reads crossing the end of memory are
// short and return [io.EOF].
func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("read at %d: %w", off, ErrOutOfRange)
	}

	addr := uint64(off)
	if addr >= m.size {
		return 0, io.EOF
	}

	length := min(uint64(len(p)), m.size-addr)

	m.mu.Lock()
	defer m.mu.Unlock()

	for done := uint64(0); done < length; {
		page, inPage := (addr+done)/pageSize, (addr+done)%pageSize
		chunk := min(pageSize-inPage, length-done)

		if data, exists := m.pages[page]; exists {
			copy(p[done:done+chunk], data[inPage:])
		} else {
			clear(p[done : done+chunk])
		}

		done += chunk
	}

	if length < uint64(len(p)) {
		return int(length), io.EOF //nolint:gosec
	}

	return len(p), nil
}

// WriteAt implements [io.WriterAt]. Writes crossing the end of memory fail
// without writing anything.
func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || uint64(off)+uint64(len(p)) > m.size {
		return 0, fmt.Errorf("write %d bytes at %d: %w", len(p), off, ErrOutOfRange)
	}

	addr := uint64(off)
	length := uint64(len(p))

	m.mu.Lock()
	defer m.mu.Unlock()

	for done := uint64(0); done < length; {
		page, inPage := (addr+done)/pageSize, (addr+done)%pageSize
		chunk := min(pageSize-inPage, length-done)

		data, exists := m.pages[page]
		if !exists {
			data = new([pageSize]byte)
			m.pages[page] = data
		}

		copy(data[inPage:], p[done:done+chunk])

		done += chunk
	}

	return len(p), nil
}
