// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

// Principal is the resolved identity of a request: the authenticated user
// and its owning tenant, fetched together. It is attached to the request
// context by the authentication middleware and must not be refetched by
// downstream components.
type Principal struct {
	User   *types.User
	Tenant *types.Tenant
}

// Define a private custom type to avoid collisions
type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context with the given principal derived from the parent context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext retrieves the principal from the context.
// Returns nil and false if no principal is present.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok
}
