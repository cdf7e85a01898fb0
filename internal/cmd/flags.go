// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	name = "libkernel"

	usageMessage = `Usage of 'libkernel':
    libkernel [flags...]

Boots the kernel in this process and runs the ticker service until the
configured number of timer ticks passed or the process is interrupted.

All flags can also be provided via TOML file given with -config. Flags take
precedence over the file.
`
)

type stringsValue []string

func (s *stringsValue) String() string {
	return strings.Join(*s, ",")
}

func (s *stringsValue) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type flags struct {
	cfg     Config
	flagSet *flag.FlagSet

	configPath string
	version    bool
	debug      bool
}

func newFlags(cfg Config, output io.Writer) *flags {
	flags := &flags{cfg: cfg}

	flags.initFlagset(output)

	return flags
}

func (f *flags) initFlagset(output io.Writer) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageMessage)
		fmt.Fprintln(fs.Output(), "\nFlags:")
		fs.PrintDefaults()
	}

	fs.StringVar(
		&f.configPath,
		"config",
		f.configPath,
		"path to TOML config file",
	)

	fs.Var(
		&f.cfg.Arch,
		"arch",
		"architecture to emulate: 386, amd64, arm64, riscv64",
	)

	fs.Var(
		&LimitedUintValue{
			Value: &f.cfg.MemoryMiB,
			Lower: memMin,
			Upper: memMax,
		},
		"memory",
		"high memory (in MiB) of the emulated machine",
	)

	fs.Var(
		&f.cfg.BootMode,
		"boot",
		"boot mode: multiboot, legacy, softreset",
	)

	fs.StringVar(
		&f.cfg.Cmdline,
		"cmdline",
		f.cfg.Cmdline,
		"kernel command line passed with multiboot",
	)

	fs.DurationVar(
		&f.cfg.TickInterval,
		"tick",
		f.cfg.TickInterval,
		"timer interrupt interval",
	)

	fs.Uint64Var(
		&f.cfg.Ticks,
		"ticks",
		f.cfg.Ticks,
		"power off after this many timer ticks, 0 runs until interrupted",
	)

	fs.TextVar(
		&f.cfg.LogLevel,
		"log-level",
		f.cfg.LogLevel,
		"log level: debug, info, warn, error",
	)

	fs.Var(
		(*stringsValue)(&f.cfg.DisablePlugins),
		"disable-plugin",
		"name of a plugin not to run. Flag may be used more than once.",
	)

	fs.BoolVar(
		&f.cfg.Reboot,
		"reboot",
		f.cfg.Reboot,
		"reset the machine on power off if running as PID 1",
	)

	fs.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	fs.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = fs
}

func (f *flags) parse(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	if f.flagSet.NArg() > 0 {
		return f.fail("unexpected arguments: "+strings.Join(f.flagSet.Args(), " "), nil)
	}

	if f.cfg.TickInterval <= 0 {
		return f.fail("tick interval must be positive", ErrValueOutOfRange)
	}

	if f.debug {
		f.cfg.LogLevel = slog.LevelDebug
	}

	return nil
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

// parseArgs parses the flags on top of the config file, if one is given. The
// flags are parsed twice: once to find the config file and once more to
// override the values read from it.
func parseArgs(args []string, output io.Writer) (*flags, error) {
	flags := newFlags(DefaultConfig(), output)
	if err := flags.parse(args); err != nil {
		return nil, err
	}

	if flags.configPath == "" || flags.version {
		return flags, nil
	}

	cfg, err := loadConfig(flags.configPath, DefaultConfig())
	if err != nil {
		return nil, flags.fail("config file", err)
	}

	flags = newFlags(cfg, output)
	if err := flags.parse(args); err != nil {
		return nil, err
	}

	return flags, nil
}
