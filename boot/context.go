// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aibor/libkernel/internal/multiboot"
	"github.com/aibor/libkernel/internal/softreset"
	"github.com/aibor/libkernel/internal/sys"
)

// Boot magic values passed by the bootloader.
const (
	MultibootMagic = multiboot.BootloaderMagic
	SoftResetMagic = softreset.Magic
)

// Kind is the kind of boot detected from the boot magic.
type Kind int

// Boot kinds.
const (
	Legacy Kind = iota
	Multiboot
	SoftReset
)

func (k Kind) String() string {
	switch k {
	case Legacy:
		return "legacy"
	case Multiboot:
		return "multiboot"
	case SoftReset:
		return "soft-reset"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MemoryEntry is an entry of the memory map passed by the bootloader.
type MemoryEntry struct {
	Addr      uint64
	Length    uint64
	Type      string
	Available bool
}

// Context is what the kernel learned about its boot environment.
type Context struct {
	Magic uint32
	Addr  uint32
	Kind  Kind

	// HighMemory is the number of bytes of memory above 1 MiB.
	HighMemory uint64

	// Cmdline is the kernel command line passed by a multiboot bootloader.
	Cmdline string

	// MemMap is the memory map passed by a multiboot bootloader.
	MemMap []MemoryEntry

	// LiveUpdateLocation and Resets are restored from the soft-reset record.
	LiveUpdateLocation uint64
	Resets             uint32
}

func (k *Kernel) detectEnvironment(magic, addr uint32) error {
	arch := k.platform.Arch()
	if !arch.CanHalt() {
		return fmt.Errorf("%s: %w", arch, sys.ErrArchNotSupported)
	}

	k.ctx = Context{Magic: magic, Addr: addr}

	if magic == MultibootMagic {
		if err := k.multiboot(addr); err != nil {
			return err
		}
	} else {
		if magic == SoftResetMagic && addr != 0 {
			k.resumeSoftReset(addr)
		}

		if err := k.legacyBoot(); err != nil {
			return err
		}
	}

	if k.ctx.HighMemory == 0 {
		return ErrNoHighMemory
	}

	k.logger.Info("Boot environment detected",
		slog.String("kind", k.ctx.Kind.String()),
		slog.Uint64("high_memory", k.ctx.HighMemory),
		slog.String("cmdline", k.ctx.Cmdline),
	)

	return nil
}

func (k *Kernel) multiboot(addr uint32) error {
	info, err := multiboot.Read(k.platform.Memory(), addr)
	if err != nil {
		return fmt.Errorf("multiboot: %w", err)
	}

	k.ctx.Kind = Multiboot
	k.ctx.HighMemory = info.HighMemory()
	k.ctx.Cmdline = info.Cmdline

	for _, entry := range info.MemMap {
		k.ctx.MemMap = append(k.ctx.MemMap, MemoryEntry{
			Addr:      entry.Addr,
			Length:    entry.Length,
			Type:      entry.Type.String(),
			Available: entry.Type == multiboot.MemoryAvailable,
		})

		k.logger.Debug("Multiboot memory map entry",
			slog.String("addr", fmt.Sprintf("0x%x", entry.Addr)),
			slog.Uint64("length", entry.Length),
			slog.String("type", entry.Type.String()),
		)
	}

	return nil
}

// resumeSoftReset restores the state of the previous boot. A broken record
// is not fatal, the legacy boot continues as a cold boot.
func (k *Kernel) resumeSoftReset(addr uint32) {
	record, err := softreset.Read(k.platform.Memory(), addr)
	if err != nil {
		k.logger.Warn("Soft reset resume failed, booting cold",
			slog.Any("error", err))

		return
	}

	k.ctx.Kind = SoftReset
	k.ctx.HighMemory = record.HighMemory
	k.ctx.LiveUpdateLocation = record.LiveUpdateLocation
	k.ctx.Resets = record.Resets + 1

	k.logger.Info("Resuming from soft reset",
		slog.Uint64("resets", uint64(k.ctx.Resets)),
		slog.String("live_update", fmt.Sprintf("0x%x", record.LiveUpdateLocation)),
	)
}

// legacyBoot probes the memory size unless it is known already.
func (k *Kernel) legacyBoot() error {
	if k.ctx.HighMemory != 0 {
		return nil
	}

	highMemory, err := k.platform.LegacyMemory()
	if err != nil {
		return fmt.Errorf("legacy memory probe: %w", err)
	}

	k.ctx.HighMemory = highMemory

	return nil
}
