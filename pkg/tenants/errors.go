// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import "errors"

var (
	ErrNotFound = errors.New("tenant not found")
	// ErrForbidden means the slug named in the request is not the
	// principal's own tenant. Unlike notes, the tenant is named
	// explicitly in the path, so this is a 403 rather than a 404.
	ErrForbidden = errors.New("access denied")
)
