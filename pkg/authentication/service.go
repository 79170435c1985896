// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage UserStorageInterface
	codec   TokenCodecInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage UserStorageInterface,
	codec TokenCodecInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		codec:   codec,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Login authenticates the credentials and mints a session token. An
// unknown email and a wrong password both come back as
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *types.User, *types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Login")
	defer span.End()

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthnFailure(email)
			return "", nil, nil, ErrInvalidCredentials
		}
		return "", nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Security().AuthnFailure(email)
		return "", nil, nil, ErrInvalidCredentials
	}

	_, tenant, err := s.storage.GetUserWithTenant(ctx, user.ID)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	token, err := s.codec.IssueToken(ctx, user.ID)
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Security().AuthnSuccess(user.ID)
	return token, user, tenant, nil
}
