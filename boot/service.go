// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const bannerWidth = 64

func (k *Kernel) startService(svc Service) error {
	if err := k.checkKernelConstraint(svc); err != nil {
		return err
	}

	k.printBanner(svc)

	if err := svc.Start(); err != nil {
		return fmt.Errorf("start %s: %w", svc.Name(), err)
	}

	return nil
}

// checkKernelConstraint verifies the kernel version satisfies the service's
// constraint, if it has one.
func (k *Kernel) checkKernelConstraint(svc Service) error {
	constrainer, ok := svc.(KernelConstrainer)
	if !ok || constrainer.KernelConstraint() == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(constrainer.KernelConstraint())
	if err != nil {
		return fmt.Errorf("kernel constraint of %s: %w", svc.Name(), err)
	}

	version, err := semver.NewVersion(k.version)
	if err != nil {
		return fmt.Errorf("kernel version: %w", err)
	}

	if !constraint.Check(version) {
		return fmt.Errorf("%s requires %s, have %s: %w",
			svc.Name(), constraint, version, ErrKernelConstraint)
	}

	k.logger.Debug("Kernel constraint satisfied",
		slog.String("service", svc.Name()),
		slog.String("constraint", constraint.String()),
	)

	return nil
}

func (k *Kernel) printBanner(svc Service) {
	arch := k.platform.Arch()

	fmt.Fprintln(k.console, strings.Repeat("=", bannerWidth))
	fmt.Fprintf(k.console, " libkernel v%s (%s / %d-bit)\n",
		k.version, arch, arch.Bits())
	fmt.Fprintf(k.console, " +--> Running [ %s %s ]\n", svc.Name(), svc.Version())
	fmt.Fprintln(k.console, strings.Repeat("~", bannerWidth))
}
