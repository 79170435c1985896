// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import (
	"context"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

type ServiceInterface interface {
	CreateNote(ctx context.Context, p *identity.Principal, title, content string) (*types.Note, error)
	ListNotes(ctx context.Context, p *identity.Principal) ([]*types.Note, error)
	GetNote(ctx context.Context, p *identity.Principal, noteID string) (*types.Note, error)
	UpdateNote(ctx context.Context, p *identity.Principal, noteID, title, content string) (*types.Note, error)
	DeleteNote(ctx context.Context, p *identity.Principal, noteID string) error
}

// StorageInterface is the subset of the storage layer the notes package
// needs. Every operation is scoped by tenant ID as part of the query
// itself.
type StorageInterface interface {
	CreateNote(ctx context.Context, n *types.Note) (*types.Note, error)
	GetNote(ctx context.Context, tenantID, noteID string) (*types.Note, error)
	ListNotes(ctx context.Context, tenantID string) ([]*types.Note, error)
	UpdateNote(ctx context.Context, tenantID, noteID, title, content string) (*types.Note, error)
	DeleteNote(ctx context.Context, tenantID, noteID string) error
}
