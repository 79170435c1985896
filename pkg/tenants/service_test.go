// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package tenants -destination ./mock_tenants.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenants -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenants -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package tenants -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func acmePrincipal(role types.Role) *identity.Principal {
	return &identity.Principal{
		User:   &types.User{ID: "user-1", Email: "admin@acme.test", Role: role, TenantID: "tenant-1"},
		Tenant: &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierFree},
	}
}

func TestService_GetTenant(t *testing.T) {
	acme := &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierFree}

	tests := []struct {
		name        string
		slug        string
		setupMocks  func(*MockStorageInterface, *MockLoggerInterface)
		expectedErr error
	}{
		{
			name: "own tenant",
			slug: "acme",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetTenantBySlug(gomock.Any(), "acme").Return(acme, nil)
			},
		},
		{
			name: "foreign tenant - forbidden without existence disclosure",
			slug: "globex",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedErr: ErrForbidden,
		},
		{
			name: "own slug vanished - not found",
			slug: "acme",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetTenantBySlug(gomock.Any(), "acme").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "tenants.Service.GetTenant").Return(ctx, trace.SpanFromContext(ctx))
			tt.setupMocks(mockStorage, mockLogger)

			s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			tenant, err := s.GetTenant(ctx, acmePrincipal(types.RoleMember), tt.slug)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tenant.Slug != "acme" {
				t.Errorf("unexpected tenant: %+v", tenant)
			}
		})
	}
}

func TestService_Upgrade(t *testing.T) {
	pro := &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierPro}

	tests := []struct {
		name        string
		slug        string
		setupMocks  func(*MockStorageInterface, *MockLoggerInterface)
		expectedErr error
	}{
		{
			name: "upgrade own tenant",
			slug: "acme",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().SetTenantTier(gomock.Any(), "acme", types.TierPro).Return(pro, nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name: "repeat upgrade is a no-op success",
			slug: "acme",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().SetTenantTier(gomock.Any(), "acme", types.TierPro).Return(pro, nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name: "foreign tenant - forbidden",
			slug: "globex",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedErr: ErrForbidden,
		},
		{
			name: "own slug vanished - not found",
			slug: "acme",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().SetTenantTier(gomock.Any(), "acme", types.TierPro).Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "tenants.Service.Upgrade").Return(ctx, trace.SpanFromContext(ctx))
			tt.setupMocks(mockStorage, mockLogger)

			s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			tenant, err := s.Upgrade(ctx, acmePrincipal(types.RoleAdmin), tt.slug)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tenant.Tier != types.TierPro {
				t.Errorf("expected pro tier, got %q", tenant.Tier)
			}
		})
	}
}
