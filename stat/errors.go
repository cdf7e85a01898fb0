// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package stat

import "errors"

var (
	// ErrNotInitialized is returned if the [Store] is used before
	// [Store.Init].
	ErrNotInitialized = errors.New("stat store not initialized")

	// ErrAlreadyInitialized is returned if [Store.Init] is called more than
	// once.
	ErrAlreadyInitialized = errors.New("stat store already initialized")

	// ErrCapacity is returned if no more counters fit into the store.
	ErrCapacity = errors.New("stat store capacity exhausted")

	// ErrInvalidName is returned for empty names and names longer than
	// [NameMax].
	ErrInvalidName = errors.New("invalid stat name")

	// ErrInvalidKind is returned for counters of an unknown [Kind].
	ErrInvalidKind = errors.New("invalid stat kind")

	// ErrKindMismatch is returned if a counter is created with the name of an
	// existing counter of another kind.
	ErrKindMismatch = errors.New("stat exists with different kind")

	// ErrNotFound is returned if no counter with the given name exists.
	ErrNotFound = errors.New("stat not found")
)
