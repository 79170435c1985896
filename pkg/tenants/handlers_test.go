// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/authorization"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

// newTenantsRouter mounts the API behind a principal-injecting middleware,
// mirroring the real router's authentication step.
func newTenantsRouter(api *API, principal *identity.Principal) *chi.Mux {
	mux := chi.NewMux()
	mux.Route("/api/v0/tenants", func(r chi.Router) {
		if principal != nil {
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(identity.WithPrincipal(req.Context(), principal)))
				})
			})
		}
		api.RegisterEndpoints(r)
	})
	return mux
}

func passthroughStart(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func TestAPI_GetTenant(t *testing.T) {
	acme := &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierFree}

	tests := []struct {
		name               string
		principal          *identity.Principal
		setupMocks         func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatusCode int
	}{
		{
			name:      "own tenant",
			principal: acmePrincipal(types.RoleMember),
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().GetTenant(gomock.Any(), gomock.Any(), "acme").Return(acme, nil)
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "no principal - unauthenticated",
			principal:          nil,
			setupMocks:         func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:      "scope violation - forbidden",
			principal: acmePrincipal(types.RoleMember),
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().GetTenant(gomock.Any(), gomock.Any(), "acme").Return(nil, ErrForbidden)
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:      "tenant gone - not found",
			principal: acmePrincipal(types.RoleMember),
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().GetTenant(gomock.Any(), gomock.Any(), "acme").Return(nil, ErrNotFound)
			},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(passthroughStart).AnyTimes()
			tt.setupMocks(mockService, mockLogger)

			authz := authorization.NewMiddleware(mockTracer, mockMonitor, mockLogger)
			mux := newTenantsRouter(NewAPI(mockService, authz, mockTracer, mockMonitor, mockLogger), tt.principal)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/tenants/acme", nil)
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatusCode, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAPI_UpgradeTenant(t *testing.T) {
	pro := &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierPro}

	tests := []struct {
		name               string
		principal          *identity.Principal
		setupMocks         func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatusCode int
		expectProTier      bool
	}{
		{
			name:      "admin upgrades own tenant",
			principal: acmePrincipal(types.RoleAdmin),
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().Upgrade(gomock.Any(), gomock.Any(), "acme").Return(pro, nil)
			},
			expectedStatusCode: http.StatusOK,
			expectProTier:      true,
		},
		{
			name:      "member blocked by capability gate",
			principal: acmePrincipal(types.RoleMember),
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "no principal - unauthenticated",
			principal:          nil,
			setupMocks:         func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(passthroughStart).AnyTimes()
			tt.setupMocks(mockService, mockLogger)

			authz := authorization.NewMiddleware(mockTracer, mockMonitor, mockLogger)
			mux := newTenantsRouter(NewAPI(mockService, authz, mockTracer, mockMonitor, mockLogger), tt.principal)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/tenants/acme/upgrade", nil)
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatusCode, rr.Code, rr.Body.String())
			}

			if tt.expectProTier {
				var got types.Tenant
				if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if got.Tier != types.TierPro {
					t.Errorf("expected pro subscription in response, got %q", got.Tier)
				}
			}
		})
	}
}
