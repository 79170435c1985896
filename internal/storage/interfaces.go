// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error)
	SetTenantTier(ctx context.Context, slug string, tier types.Tier) (*types.Tenant, error)

	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserWithTenant(ctx context.Context, userID string) (*types.User, *types.Tenant, error)

	CreateNote(ctx context.Context, n *types.Note) (*types.Note, error)
	GetNote(ctx context.Context, tenantID, noteID string) (*types.Note, error)
	ListNotes(ctx context.Context, tenantID string) ([]*types.Note, error)
	UpdateNote(ctx context.Context, tenantID, noteID, title, content string) (*types.Note, error)
	DeleteNote(ctx context.Context, tenantID, noteID string) error
}
