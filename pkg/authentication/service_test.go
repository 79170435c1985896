// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &types.User{
		ID:           "user-123",
		Email:        "admin@acme.test",
		PasswordHash: string(hash),
		Role:         types.RoleAdmin,
		TenantID:     "tenant-1",
	}
	tenant := &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierFree}

	tests := []struct {
		name        string
		email       string
		password    string
		setupMocks  func(*MockUserStorageInterface, *MockTokenCodecInterface, *MockLoggerInterface)
		expectedErr error
		expectToken string
	}{
		{
			name:     "success",
			email:    "admin@acme.test",
			password: "password",
			setupMocks: func(mockStorage *MockUserStorageInterface, mockCodec *MockTokenCodecInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "admin@acme.test").Return(user, nil)
				mockStorage.EXPECT().GetUserWithTenant(gomock.Any(), "user-123").Return(user, tenant, nil)
				mockCodec.EXPECT().IssueToken(gomock.Any(), "user-123").Return("signed-token", nil)
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectToken: "signed-token",
		},
		{
			name:     "unknown email - invalid credentials",
			email:    "nobody@acme.test",
			password: "password",
			setupMocks: func(mockStorage *MockUserStorageInterface, mockCodec *MockTokenCodecInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "nobody@acme.test").Return(nil, storage.ErrNotFound)
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:     "wrong password - invalid credentials",
			email:    "admin@acme.test",
			password: "wrong",
			setupMocks: func(mockStorage *MockUserStorageInterface, mockCodec *MockTokenCodecInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "admin@acme.test").Return(user, nil)
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:     "storage failure - opaque error",
			email:    "admin@acme.test",
			password: "password",
			setupMocks: func(mockStorage *MockUserStorageInterface, mockCodec *MockTokenCodecInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "admin@acme.test").Return(nil, errors.New("connection refused"))
			},
		},
		{
			name:     "tenant resolution failure - opaque error",
			email:    "admin@acme.test",
			password: "password",
			setupMocks: func(mockStorage *MockUserStorageInterface, mockCodec *MockTokenCodecInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "admin@acme.test").Return(user, nil)
				mockStorage.EXPECT().GetUserWithTenant(gomock.Any(), "user-123").Return(nil, nil, errors.New("connection refused"))
			},
		},
		{
			name:     "token issuance failure - opaque error",
			email:    "admin@acme.test",
			password: "password",
			setupMocks: func(mockStorage *MockUserStorageInterface, mockCodec *MockTokenCodecInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), "admin@acme.test").Return(user, nil)
				mockStorage.EXPECT().GetUserWithTenant(gomock.Any(), "user-123").Return(user, tenant, nil)
				mockCodec.EXPECT().IssueToken(gomock.Any(), "user-123").Return("", errors.New("signing failed"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockUserStorageInterface(ctrl)
			mockCodec := NewMockTokenCodecInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Service.Login").Return(ctx, trace.SpanFromContext(ctx))
			tt.setupMocks(mockStorage, mockCodec, mockLogger)

			s := NewService(mockStorage, mockCodec, mockTracer, mockMonitor, mockLogger)

			token, gotUser, gotTenant, err := s.Login(ctx, tt.email, tt.password)

			if tt.expectToken != "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if token != tt.expectToken {
					t.Errorf("expected token %q, got %q", tt.expectToken, token)
				}
				if gotUser.ID != user.ID {
					t.Errorf("expected user %q, got %q", user.ID, gotUser.ID)
				}
				if gotTenant.Slug != tenant.Slug {
					t.Errorf("expected tenant %q, got %q", tenant.Slug, gotTenant.Slug)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error but got none")
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
			if tt.expectedErr == nil && errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("infrastructure failure must not map to invalid credentials: %v", err)
			}
		})
	}
}
