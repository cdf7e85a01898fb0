// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aibor/libkernel/internal/sys"
)

const (
	memDefault = 128
	memMin     = 4
	memMax     = 16384

	tickIntervalDefault = 100 * time.Millisecond
	ticksDefault        = 10
)

// Config is the runtime configuration of the hosted kernel.
type Config struct {
	Arch           sys.Arch
	MemoryMiB      uint64
	BootMode       BootMode
	Cmdline        string
	TickInterval   time.Duration
	Ticks          uint64
	LogLevel       slog.Level
	DisablePlugins []string
	Reboot         bool
}

// DefaultConfig returns the configuration used if neither flags nor config
// file set a value.
func DefaultConfig() Config {
	return Config{
		Arch:         sys.AMD64,
		MemoryMiB:    memDefault,
		BootMode:     BootMultiboot,
		TickInterval: tickIntervalDefault,
		Ticks:        ticksDefault,
		LogLevel:     slog.LevelWarn,
	}
}

// PluginEnabled returns false if the plugin with the given name is disabled.
func (c *Config) PluginEnabled(name string) bool {
	for _, disabled := range c.DisablePlugins {
		if disabled == name {
			return false
		}
	}

	return true
}

// fileConfig maps the keys of the TOML config file.
type fileConfig struct {
	Arch           string   `toml:"arch"`
	MemoryMiB      uint64   `toml:"memory_mib"`
	BootMode       string   `toml:"boot_mode"`
	Cmdline        string   `toml:"cmdline"`
	TickInterval   string   `toml:"tick_interval"`
	Ticks          uint64   `toml:"ticks"`
	LogLevel       string   `toml:"log_level"`
	DisablePlugins []string `toml:"disable_plugins"`
	Reboot         bool     `toml:"reboot"`
}

// loadConfig reads the TOML file at path and overlays the keys defined in it
// on the given config.
func loadConfig(path string, cfg Config) (Config, error) {
	var raw fileConfig

	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		slog.Warn("Unknown config keys", slog.Any("keys", undecoded))
	}

	if meta.IsDefined("arch") {
		if err := cfg.Arch.Set(strings.TrimSpace(raw.Arch)); err != nil {
			return Config{}, fmt.Errorf("config arch: %w", err)
		}
	}

	if meta.IsDefined("memory_mib") {
		limit := LimitedUintValue{Lower: memMin, Upper: memMax}
		if err := limit.check(raw.MemoryMiB); err != nil {
			return Config{}, fmt.Errorf("config memory_mib: %w", err)
		}

		cfg.MemoryMiB = raw.MemoryMiB
	}

	if meta.IsDefined("boot_mode") {
		if err := cfg.BootMode.Set(strings.TrimSpace(raw.BootMode)); err != nil {
			return Config{}, fmt.Errorf("config boot_mode: %w", err)
		}
	}

	if meta.IsDefined("cmdline") {
		cfg.Cmdline = strings.TrimSpace(raw.Cmdline)
	}

	if meta.IsDefined("tick_interval") {
		interval, err := parseTickInterval(raw.TickInterval)
		if err != nil {
			return Config{}, fmt.Errorf("config tick_interval: %w", err)
		}

		cfg.TickInterval = interval
	}

	if meta.IsDefined("ticks") {
		cfg.Ticks = raw.Ticks
	}

	if meta.IsDefined("log_level") {
		level, err := parseLogLevel(strings.TrimSpace(raw.LogLevel))
		if err != nil {
			return Config{}, fmt.Errorf("config log_level: %w", err)
		}

		cfg.LogLevel = level
	}

	if meta.IsDefined("disable_plugins") {
		cfg.DisablePlugins = raw.DisablePlugins
	}

	if meta.IsDefined("reboot") {
		cfg.Reboot = raw.Reboot
	}

	return cfg, nil
}

func parseTickInterval(s string) (time.Duration, error) {
	interval, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse: %w", err)
	}

	if interval <= 0 {
		return 0, fmt.Errorf("%s: %w", interval, ErrValueOutOfRange)
	}

	return interval, nil
}
