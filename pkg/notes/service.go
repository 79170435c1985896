// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

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

// Service confines every note operation to the principal's own tenant.
// Reads and writes address the store with id and tenant together, so a
// cross-tenant reference surfaces as ErrNotFound.
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

// CreateNote creates a note owned by the principal's tenant. Quota
// admission happens inside the store's atomic create, on the tenant's
// current state, not on anything resolved earlier in the request.
func (s *Service) CreateNote(ctx context.Context, p *identity.Principal, title, content string) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.CreateNote")
	defer span.End()

	note := &types.Note{
		TenantID:    p.Tenant.ID,
		AuthorID:    p.User.ID,
		AuthorEmail: p.User.Email,
		Title:       title,
		Content:     content,
	}

	created, err := s.storage.CreateNote(ctx, note)
	if err != nil {
		if errors.Is(err, storage.ErrNoteLimitReached) {
			s.logger.Security().QuotaDenied(p.Tenant.Slug)
			return nil, ErrQuotaExceeded
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return created, nil
}

func (s *Service) ListNotes(ctx context.Context, p *identity.Principal) ([]*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.ListNotes")
	defer span.End()

	notes, err := s.storage.ListNotes(ctx, p.Tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

func (s *Service) GetNote(ctx context.Context, p *identity.Principal, noteID string) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.GetNote")
	defer span.End()

	note, err := s.storage.GetNote(ctx, p.Tenant.ID, noteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

func (s *Service) UpdateNote(ctx context.Context, p *identity.Principal, noteID, title, content string) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "notes.Service.UpdateNote")
	defer span.End()

	note, err := s.storage.UpdateNote(ctx, p.Tenant.ID, noteID, title, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, p *identity.Principal, noteID string) error {
	ctx, span := s.tracer.Start(ctx, "notes.Service.DeleteNote")
	defer span.End()

	if err := s.storage.DeleteNote(ctx, p.Tenant.ID, noteID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
