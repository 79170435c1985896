// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

func TestAPI_Login(t *testing.T) {
	user := &types.User{ID: "user-123", Email: "admin@acme.test", Role: types.RoleAdmin, TenantID: "tenant-1"}
	tenant := &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierFree}

	tests := []struct {
		name               string
		body               string
		setupMocks         func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatusCode int
		validateBody       func(*testing.T, []byte)
	}{
		{
			name: "success",
			body: `{"email":"admin@acme.test","password":"password"}`,
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().Login(gomock.Any(), "admin@acme.test", "password").Return("signed-token", user, tenant, nil)
			},
			expectedStatusCode: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var resp loginResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Token != "signed-token" {
					t.Errorf("expected token in response, got %q", resp.Token)
				}
				if resp.User.Tenant.Slug != "acme" {
					t.Errorf("expected tenant slug acme, got %q", resp.User.Tenant.Slug)
				}
				if resp.User.Tenant.Tier != types.TierFree {
					t.Errorf("expected free subscription, got %q", resp.User.Tenant.Tier)
				}
			},
		},
		{
			name:               "malformed json",
			body:               `{"email":`,
			setupMocks:         func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "missing password",
			body:               `{"email":"admin@acme.test"}`,
			setupMocks:         func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "invalid email format",
			body:               `{"email":"not-an-email","password":"password"}`,
			setupMocks:         func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name: "invalid credentials",
			body: `{"email":"admin@acme.test","password":"wrong"}`,
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().Login(gomock.Any(), "admin@acme.test", "wrong").Return("", nil, nil, ErrInvalidCredentials)
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name: "service failure",
			body: `{"email":"admin@acme.test","password":"password"}`,
			setupMocks: func(mockService *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockService.EXPECT().Login(gomock.Any(), "admin@acme.test", "password").Return("", nil, nil, errors.New("connection refused"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatusCode: http.StatusInternalServerError,
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

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.API.login").Return(ctx, trace.SpanFromContext(ctx))
			tt.setupMocks(mockService, mockLogger)

			mux := chi.NewMux()
			NewAPI(mockService, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatusCode, rr.Code, rr.Body.String())
			}
			if tt.validateBody != nil {
				tt.validateBody(t, rr.Body.Bytes())
			}
		})
	}
}
