// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"context"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

type ServiceInterface interface {
	GetTenant(ctx context.Context, p *identity.Principal, slug string) (*types.Tenant, error)
	Upgrade(ctx context.Context, p *identity.Principal, slug string) (*types.Tenant, error)
}

// StorageInterface is the subset of the storage layer the tenants package needs.
type StorageInterface interface {
	GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error)
	SetTenantTier(ctx context.Context, slug string, tier types.Tier) (*types.Tenant, error)
}
