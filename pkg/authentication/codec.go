// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
)

var _ TokenCodecInterface = (*JWTCodec)(nil)

// JWTCodec issues and verifies HS256-signed tokens carrying a user ID and
// an expiry. Tokens are stateless: validity is purely cryptographic and
// time based, nothing is persisted server side.
type JWTCodec struct {
	secret   []byte
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// NewJWTCodec fails when the secret is empty: there is no fallback value,
// the process is expected to refuse to start instead.
func NewJWTCodec(
	secret string,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*JWTCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret is required")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %v", lifetime)
	}

	return &JWTCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}, nil
}

func (c *JWTCodec) IssueToken(ctx context.Context, userID string) (string, error) {
	_, span := c.tracer.Start(ctx, "authentication.JWTCodec.IssueToken")
	defer span.End()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (c *JWTCodec) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	_, span := c.tracer.Start(ctx, "authentication.JWTCodec.VerifyToken")
	defer span.End()

	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		c.logger.Debugf("token verification failed: %v", err)
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
