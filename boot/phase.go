// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package boot

import "strconv"

// Phase is a step of the boot sequence.
type Phase int32

// Boot phases in the order they run.
const (
	Created Phase = iota
	DetectEnvironment
	BuildMemoryMap
	InitStats
	PlatformInit
	ClockInit
	RandomInit
	RunPlugins
	ApplicationStart
	EventLoop
	ApplicationStop
	PowerOff
)

var phaseNames = [...]string{
	Created:           "created",
	DetectEnvironment: "detect-environment",
	BuildMemoryMap:    "build-memory-map",
	InitStats:         "init-stats",
	PlatformInit:      "platform-init",
	ClockInit:         "clock-init",
	RandomInit:        "random-init",
	RunPlugins:        "run-plugins",
	ApplicationStart:  "application-start",
	EventLoop:         "event-loop",
	ApplicationStop:   "application-stop",
	PowerOff:          "power-off",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}

	return phaseNames[p]
}
