// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func newTestCodec(t *testing.T, ctrl *gomock.Controller, secret string) *JWTCodec {
	t.Helper()

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(ctx, trace.SpanFromContext(ctx)).AnyTimes()
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

	codec, err := NewJWTCodec(secret, time.Hour, mockTracer, mockMonitor, mockLogger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return codec
}

func TestNewJWTCodec_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	if _, err := NewJWTCodec("", time.Hour, mockTracer, mockMonitor, mockLogger); err == nil {
		t.Error("expected error for empty secret")
	}

	if _, err := NewJWTCodec("secret", 0, mockTracer, mockMonitor, mockLogger); err == nil {
		t.Error("expected error for zero lifetime")
	}

	if _, err := NewJWTCodec("secret", -time.Minute, mockTracer, mockMonitor, mockLogger); err == nil {
		t.Error("expected error for negative lifetime")
	}
}

func TestJWTCodec_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t, ctrl, "test-secret")
	ctx := context.Background()

	token, err := codec.IssueToken(ctx, "user-123")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	userID, err := codec.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestJWTCodec_VerifyToken_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t, ctrl, "test-secret")
	other := newTestCodec(t, ctrl, "other-secret")
	ctx := context.Background()

	validToken, err := codec.IssueToken(ctx, "user-123")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	expired := signedToken(t, "test-secret", jwt.RegisteredClaims{
		Subject:   "user-123",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	noExpiry := signedToken(t, "test-secret", jwt.RegisteredClaims{
		Subject:  "user-123",
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	noSubject := signedToken(t, "test-secret", jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong key", mustIssue(t, other, "user-123")},
		{"expired", expired},
		{"missing expiry claim", noExpiry},
		{"missing subject", noSubject},
		{"tampered", validToken + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := codec.VerifyToken(ctx, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func signedToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func mustIssue(t *testing.T, codec *JWTCodec, userID string) string {
	t.Helper()

	token, err := codec.IssueToken(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}
