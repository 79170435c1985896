// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import "errors"

var (
	// ErrNotFound covers a note that does not exist and a note owned by a
	// different tenant. The two must stay indistinguishable.
	ErrNotFound = errors.New("note not found")
	// ErrQuotaExceeded means the tenant is at its note limit.
	ErrQuotaExceeded = errors.New("note limit reached")
)
