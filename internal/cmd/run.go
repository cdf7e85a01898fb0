// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/internal/exitcode"
	"github.com/aibor/libkernel/platform/hosted"
	"github.com/aibor/libkernel/plugin"
	"golang.org/x/sync/errgroup"
)

// Set on build.
var version = "0.1.0"

// powerRetryInterval is the pause between attempts to raise the power
// interrupt while the kernel is still booting.
const powerRetryInterval = 10 * time.Millisecond

// IO provides input and output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

func run(ctx context.Context, cfg Config, output io.Writer) error {
	platform := hosted.New(hosted.Config{
		Arch:       cfg.Arch,
		HighMemory: cfg.MemoryMiB << 20,
		Reboot:     cfg.Reboot,
	})

	magic, addr, err := cfg.BootMode.handoff(platform, cfg.Cmdline)
	if err != nil {
		return err
	}

	plugins := plugin.New()
	kernel := boot.New(platform, boot.Config{
		Plugins: plugins,
		Console: output,
		Logger:  slog.Default(),
	})

	if err := newPluginRegistry(kernel, plugins, &cfg); err != nil {
		return err
	}

	svc := newTickerService(kernel, cfg.Ticks, output)

	group, groupCtx := errgroup.WithContext(context.Background())
	kernelCtx, kernelDone := context.WithCancel(groupCtx)

	group.Go(func() error {
		defer kernelDone()
		return kernel.Run(magic, addr, svc)
	})

	group.Go(func() error {
		return platform.RunTimer(kernelCtx, timerLine, cfg.TickInterval)
	})

	group.Go(func() error {
		return forwardPowerOff(ctx, kernelCtx, kernel, platform)
	})

	return group.Wait() //nolint:wrapcheck
}

// forwardPowerOff powers the kernel off once ctx is done. It waits for the
// platform to accept interrupts, so the event loop exists, then clears the
// power flag and raises the power interrupt to wake up a halted CPU. This
// works with the power button plugin disabled. It returns early if the kernel
// is done before.
func forwardPowerOff(ctx, kernelCtx context.Context, kernel *boot.Kernel, platform *hosted.Platform) error {
	select {
	case <-kernelCtx.Done():
		return nil
	case <-ctx.Done():
	}

	slog.Info("Interrupted, requesting power off")

	ticker := time.NewTicker(powerRetryInterval)
	defer ticker.Stop()

	for {
		err := platform.Raise(powerLine)
		if err == nil {
			kernel.PowerOff()

			// The CPU may have consumed the first wake up before the flag
			// was cleared.
			if err := platform.Raise(powerLine); err != nil {
				return fmt.Errorf("power off: %w", err)
			}

			return nil
		}

		if !errors.Is(err, hosted.ErrNotInitialized) {
			return fmt.Errorf("power off: %w", err)
		}

		select {
		case <-kernelCtx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	exitCode, isExitErr := exitcode.FromStop(err)

	// The service communicated its exit code, there is nothing more to say.
	if !isExitErr {
		slog.Error(err.Error())
	}

	return exitCode
}

// Run is the main entry point for the CLI command. Canceling the context
// powers the kernel off.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.cfg.LogLevel)

	if flags.version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			slog.Error(err.Error())
			return -1
		}

		fmt.Fprintf(cfg.Stdout, "%s: %s\nKernel: %s\nModule: %s\n",
			name, version, boot.Version, buildInfo.Main.Path)

		return 0
	}

	if err := run(ctx, flags.cfg, cfg.Stdout); err != nil {
		return handleRunError(err)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
