// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"testing"
	"time"

	"github.com/aibor/libkernel/boot"
	"github.com/aibor/libkernel/internal/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestHandleRunError(t *testing.T) {
	tests := []struct {
		name             string
		err              error
		expectedExitCode int
	}{
		{
			name:             "service exit code",
			err:              exitcode.Error(3),
			expectedExitCode: 3,
		},
		{
			name:             "wrapped service exit code",
			err:              fmt.Errorf("stop: %w", exitcode.Error(4)),
			expectedExitCode: 4,
		},
		{
			name: "fatal boot error",
			err: &boot.FatalError{
				Phase: boot.DetectEnvironment,
				Err:   boot.ErrNoHighMemory,
			},
			expectedExitCode: -1,
		},
		{
			name:             "any error",
			err:              assert.AnError,
			expectedExitCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedExitCode, handleRunError(tt.err))
		})
	}
}

func TestHandleParseArgsError(t *testing.T) {
	assert.Equal(t, 0, handleParseArgsError(flag.ErrHelp))
	assert.Equal(t, 0, handleParseArgsError(&ParseArgsError{err: flag.ErrHelp}))
	assert.Equal(t, -1, handleParseArgsError(&ParseArgsError{msg: "bad"}))
	assert.Equal(t, -1, handleParseArgsError(assert.AnError))
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TickInterval = time.Millisecond
	cfg.Ticks = 3

	return cfg
}

func TestRun_TickLimit(t *testing.T) {
	for _, mode := range []BootMode{BootMultiboot, BootLegacy, BootSoftReset} {
		t.Run(mode.String(), func(t *testing.T) {
			cfg := testConfig()
			cfg.BootMode = mode
			cfg.Cmdline = "console=ttyS0"

			var output bytes.Buffer

			require.NoError(t, run(context.Background(), cfg, &output))

			assert.Contains(t, output.String(), "Ticks: 3,")
			assert.Contains(t, output.String(), "+--> Running [ ticker "+version+" ]")
			assert.Contains(t, output.String(), "IOAPIC")

			code, found := exitcode.Parse(output.String())
			require.True(t, found)
			assert.Zero(t, code)
		})
	}
}

func TestRun_Interrupted(t *testing.T) {
	cfg := testConfig()
	cfg.Ticks = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var output bytes.Buffer

	require.NoError(t, run(ctx, cfg, &output))

	code, found := exitcode.Parse(output.String())
	require.True(t, found)
	assert.Zero(t, code)
}

func TestRun_InterruptedWithoutPowerButton(t *testing.T) {
	cfg := testConfig()
	cfg.Ticks = 0
	cfg.DisablePlugins = []string{"power-button"}

	ctx, cancel := context.WithCancel(context.Background())

	var output bytes.Buffer

	done := make(chan error, 1)

	go func() {
		done <- run(ctx, cfg, &output)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after interrupt")
	}

	code, found := exitcode.Parse(output.String())
	require.True(t, found)
	assert.Zero(t, code)
}

func TestRun_DisabledPlugin(t *testing.T) {
	cfg := testConfig()
	cfg.DisablePlugins = []string{"ioapic"}

	var output bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, &output))
	assert.NotContains(t, output.String(), "IOAPIC")
}

func TestRun_Fatal(t *testing.T) {
	cfg := testConfig()
	cfg.Arch = "mips"

	var output bytes.Buffer

	err := run(context.Background(), cfg, &output)
	require.ErrorIs(t, err, &boot.FatalError{})

	_, found := exitcode.Parse(output.String())
	assert.False(t, found)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name             string
		args             []string
		expectedExitCode int
		expectedStdout   string
	}{
		{
			name:             "ticks",
			args:             []string{"-tick", "1ms", "-ticks", "2", "-boot", "legacy"},
			expectedExitCode: 0,
			expectedStdout:   "Ticks: 2,",
		},
		{
			name:             "version",
			args:             []string{"-version"},
			expectedExitCode: 0,
			expectedStdout:   "Kernel: " + boot.Version,
		},
		{
			name:             "help",
			args:             []string{"-help"},
			expectedExitCode: 0,
		},
		{
			name:             "invalid memory",
			args:             []string{"-memory", "1"},
			expectedExitCode: -1,
		},
		{
			name:             "invalid boot mode",
			args:             []string{"-boot", "pxe"},
			expectedExitCode: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			exitCode := Run(context.Background(), tt.args, IO{
				Stdout: &stdout,
				Stderr: &stderr,
			})

			assert.Equal(t, tt.expectedExitCode, exitCode, stderr.String())
			assert.Contains(t, stdout.String(), tt.expectedStdout)
		})
	}
}
