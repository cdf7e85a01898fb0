// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/memmap"
	"github.com/aibor/libkernel/plugin"
)

// Interrupt lines of the emulated devices.
const (
	timerLine uint8 = 0
	powerLine uint8 = 1
)

// IOAPIC MMIO window of the PC platform.
const (
	ioapicStart = 0xfec00000
	ioapicEnd   = 0xfec003ff
)

// kernelPlugins returns the plugins shipped with the hosted runner.
func kernelPlugins(kernel *boot.Kernel) []plugin.Plugin {
	return []plugin.Plugin{
		{
			Name: "ioapic",
			Init: func() error {
				return kernel.MemoryMap().AssignRange(memmap.Region{
					Start:       ioapicStart,
					End:         ioapicEnd,
					Name:        "IOAPIC",
					Description: "I/O APIC registers",
				})
			},
		},
		{
			Name: "power-button",
			Init: func() error {
				err := kernel.IRQ().Subscribe(powerLine, func() {
					slog.Info("Power button pressed")
					kernel.PowerOff()
				})
				if err != nil {
					return fmt.Errorf("power button: %w", err)
				}

				return nil
			},
		},
		{
			Name: "cmdline",
			Init: func() error {
				bootCtx := kernel.Context()
				slog.Info("Kernel command line",
					slog.String("cmdline", bootCtx.Cmdline),
					slog.String("boot", bootCtx.Kind.String()),
				)

				return nil
			},
		},
	}
}

// newPluginRegistry registers all enabled plugins.
func newPluginRegistry(kernel *boot.Kernel, registry *plugin.Registry, cfg *Config) error {
	for _, p := range kernelPlugins(kernel) {
		if !cfg.PluginEnabled(p.Name) {
			slog.Debug("Plugin disabled", slog.String("plugin", p.Name))
			continue
		}

		if err := registry.Register(p.Name, p.Init); err != nil {
			return fmt.Errorf("register plugin: %w", err)
		}
	}

	return nil
}
