// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package plugin

import (
	"fmt"
	"iter"
	"log/slog"
)

// Func is a plugin init function.
type Func func() error

// Plugin is a named init function.
type Plugin struct {
	Name string
	Init Func
}

// Registry is an append-only ordered list of [Plugin]s.
type Registry struct {
	plugins []Plugin
	sealed  bool
}

// New creates a registry with the given plugins in the given order.
//
// Plugins without name or init function are dropped. Use [Registry.Register]
// to get an error for them instead.
func New(plugins ...Plugin) *Registry {
	registry := &Registry{}

	for _, p := range plugins {
		_ = registry.Register(p.Name, p.Init)
	}

	return registry
}

// Register appends a plugin. It must be called before [Registry.RunAll].
func (r *Registry) Register(name string, fn Func) error {
	if r.sealed {
		return fmt.Errorf("register %s: %w", name, ErrSealed)
	}

	if name == "" || fn == nil {
		return fmt.Errorf("register %q: %w", name, ErrInvalidPlugin)
	}

	r.plugins = append(r.plugins, Plugin{Name: name, Init: fn})

	return nil
}

// All returns an iterator over the plugins in registration order.
func (r *Registry) All() iter.Seq[Plugin] {
	return func(yield func(Plugin) bool) {
		for _, p := range r.plugins {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	return len(r.plugins)
}

// RunAll runs all plugin init functions in registration order and seals the
// registry.
//
// A plugin returning an error or panicking is logged with its name and
// collected as [InitError]. The remaining plugins run regardless.
func (r *Registry) RunAll(logger *slog.Logger) []*InitError {
	if logger == nil {
		logger = slog.Default()
	}

	r.sealed = true

	var failed []*InitError

	for _, p := range r.plugins {
		logger.Info("Initializing plugin", slog.String("plugin", p.Name))

		err := runInit(p.Init)
		if err == nil {
			continue
		}

		initErr := &InitError{Name: p.Name, Err: err}
		failed = append(failed, initErr)

		logger.Error("Plugin init failed",
			slog.String("plugin", p.Name),
			slog.Any("error", err),
		)
	}

	return failed
}

func runInit(fn Func) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}

		if recoveredErr, ok := rec.(error); ok {
			err = fmt.Errorf("%w: %w", ErrPanic, recoveredErr)
		} else {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()

	return fn()
}
