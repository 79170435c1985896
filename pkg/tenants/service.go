// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"context"
	"errors"
	"fmt"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetTenant returns the tenant named by slug, provided it is the
// principal's own tenant.
func (s *Service) GetTenant(ctx context.Context, p *identity.Principal, slug string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.GetTenant")
	defer span.End()

	if err := s.requireOwnTenant(p, slug); err != nil {
		return nil, err
	}

	tenant, err := s.storage.GetTenantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return tenant, nil
}

// Upgrade flips the tenant to the pro tier. The note limit follows from
// the tier, nothing else changes. Upgrading a tenant that is already pro
// is a no-op success.
func (s *Service) Upgrade(ctx context.Context, p *identity.Principal, slug string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.Upgrade")
	defer span.End()

	if err := s.requireOwnTenant(p, slug); err != nil {
		return nil, err
	}

	tenant, err := s.storage.SetTenantTier(ctx, slug, types.TierPro)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to upgrade tenant: %w", err)
	}

	s.logger.Infof("tenant %s upgraded to %s", tenant.Slug, tenant.Tier)
	return tenant, nil
}

// requireOwnTenant is the tenant-level scope check: the slug named in the
// request must be the principal's own tenant.
func (s *Service) requireOwnTenant(p *identity.Principal, slug string) error {
	if p.Tenant.Slug != slug {
		s.logger.Security().AuthzFailure(p.User.ID, "tenant_scope")
		return ErrForbidden
	}
	return nil
}
