// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestCapability_SatisfiedBy(t *testing.T) {
	tests := []struct {
		name       string
		capability Capability
		role       types.Role
		expected   bool
	}{
		{"member capability - member role", CapabilityMember, types.RoleMember, true},
		{"member capability - admin role", CapabilityMember, types.RoleAdmin, true},
		{"admin capability - member role", CapabilityAdmin, types.RoleMember, false},
		{"admin capability - admin role", CapabilityAdmin, types.RoleAdmin, true},
		{"member capability - unknown role", CapabilityMember, types.Role("owner"), false},
		{"admin capability - unknown role", CapabilityAdmin, types.Role("owner"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.capability.SatisfiedBy(tt.role); got != tt.expected {
				t.Errorf("SatisfiedBy(%q) = %v, want %v", tt.role, got, tt.expected)
			}
		})
	}
}

func TestCapability_String(t *testing.T) {
	if CapabilityMember.String() != "member" {
		t.Errorf("expected member, got %q", CapabilityMember.String())
	}
	if CapabilityAdmin.String() != "admin" {
		t.Errorf("expected admin, got %q", CapabilityAdmin.String())
	}
}

func TestMiddleware_RequireCapability(t *testing.T) {
	tests := []struct {
		name               string
		capability         Capability
		principal          *identity.Principal
		setupMocks         func(*MockLoggerInterface)
		expectedStatusCode int
	}{
		{
			name:               "missing principal - rejects as unauthenticated",
			capability:         CapabilityMember,
			principal:          nil,
			setupMocks:         func(mockLogger *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "member role on admin route - forbidden",
			capability: CapabilityAdmin,
			principal: &identity.Principal{
				User:   &types.User{ID: "user-1", Role: types.RoleMember},
				Tenant: &types.Tenant{ID: "tenant-1", Slug: "acme"},
			},
			setupMocks: func(mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:       "admin role on admin route - allowed",
			capability: CapabilityAdmin,
			principal: &identity.Principal{
				User:   &types.User{ID: "user-1", Role: types.RoleAdmin},
				Tenant: &types.Tenant{ID: "tenant-1", Slug: "acme"},
			},
			setupMocks:         func(mockLogger *MockLoggerInterface) {},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:       "member role on member route - allowed",
			capability: CapabilityMember,
			principal: &identity.Principal{
				User:   &types.User{ID: "user-1", Role: types.RoleMember},
				Tenant: &types.Tenant{ID: "tenant-1", Slug: "acme"},
			},
			setupMocks:         func(mockLogger *MockLoggerInterface) {},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:       "admin role on member route - allowed",
			capability: CapabilityMember,
			principal: &identity.Principal{
				User:   &types.User{ID: "user-1", Role: types.RoleAdmin},
				Tenant: &types.Tenant{ID: "tenant-1", Slug: "acme"},
			},
			setupMocks:         func(mockLogger *MockLoggerInterface) {},
			expectedStatusCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			if tt.principal != nil {
				ctx = identity.WithPrincipal(ctx, tt.principal)
			}
			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Middleware.RequireCapability").Return(ctx, trace.SpanFromContext(ctx))
			tt.setupMocks(mockLogger)

			middleware := NewMiddleware(mockTracer, mockMonitor, mockLogger)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
			rr := httptest.NewRecorder()

			middleware.RequireCapability(tt.capability)(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}
		})
	}
}
