// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

type TokenCodecInterface interface {
	// IssueToken mints a signed token binding the user ID with an expiry a
	// fixed duration from now
	IssueToken(ctx context.Context, userID string) (string, error)
	// VerifyToken verifies a raw token string
	// Returns the bound user ID if the token is valid, otherwise ErrInvalidToken
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

// UserStorageInterface is the subset of the storage layer the
// authentication package needs.
type UserStorageInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserWithTenant(ctx context.Context, userID string) (*types.User, *types.Tenant, error)
}

type ServiceInterface interface {
	Login(ctx context.Context, email, password string) (string, *types.User, *types.Tenant, error)
}
