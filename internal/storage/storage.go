// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/db"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	var newTenant types.Tenant
	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "slug", "name", "tier").
		Values(id.String(), t.Slug, t.Name, t.Tier).
		Suffix("RETURNING id, slug, name, tier, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&newTenant.ID, &newTenant.Slug, &newTenant.Name, &newTenant.Tier, &newTenant.CreatedAt, &newTenant.UpdatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("tenant slug %q: %w", t.Slug, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return &newTenant, nil
}

func (s *Storage) GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantBySlug")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("id", "slug", "name", "tier", "created_at", "updated_at").
		From("tenants").
		Where(sq.Eq{"slug": slug}).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Slug, &t.Name, &t.Tier, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

// SetTenantTier updates the subscription tier of the tenant named by slug
// and returns the updated row. Setting the tier a tenant already has is a
// no-op success.
func (s *Storage) SetTenantTier(ctx context.Context, slug string, tier types.Tier) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.SetTenantTier")
	defer span.End()

	var t types.Tenant
	err := s.db.Statement(ctx).
		Update("tenants").
		Set("tier", tier).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"slug": slug}).
		Suffix("RETURNING id, slug, name, tier, created_at, updated_at").
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Slug, &t.Name, &t.Tier, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update tenant tier: %w", err)
	}

	return &t, nil
}

func (s *Storage) CreateUser(ctx context.Context, u *types.User) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateUser")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	var newUser types.User
	err = s.db.Statement(ctx).
		Insert("users").
		Columns("id", "email", "password_hash", "role", "tenant_id").
		Values(id.String(), u.Email, u.PasswordHash, u.Role, u.TenantID).
		Suffix("RETURNING id, email, password_hash, role, tenant_id, created_at").
		QueryRowContext(ctx).
		Scan(&newUser.ID, &newUser.Email, &newUser.PasswordHash, &newUser.Role, &newUser.TenantID, &newUser.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user email %q: %w", u.Email, ErrDuplicateKey)
		}
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("tenant %q: %w", u.TenantID, ErrForeignKeyViolation)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &newUser, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByEmail")
	defer span.End()

	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "email", "password_hash", "role", "tenant_id", "created_at").
		From("users").
		Where(sq.Eq{"email": email}).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// GetUserWithTenant fetches a user and its owning tenant in one query so
// the pair is always consistent: the tenant returned is the one on file at
// the moment of the fetch, never a separately resolved row.
func (s *Storage) GetUserWithTenant(ctx context.Context, userID string) (*types.User, *types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserWithTenant")
	defer span.End()

	var u types.User
	var t types.Tenant
	err := s.db.Statement(ctx).
		Select(
			"u.id", "u.email", "u.password_hash", "u.role", "u.tenant_id", "u.created_at",
			"t.id", "t.slug", "t.name", "t.tier", "t.created_at", "t.updated_at",
		).
		From("users u").
		Join("tenants t ON t.id = u.tenant_id").
		Where(sq.Eq{"u.id": userID}).
		QueryRowContext(ctx).
		Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.TenantID, &u.CreatedAt,
			&t.ID, &t.Slug, &t.Name, &t.Tier, &t.CreatedAt, &t.UpdatedAt,
		)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get user with tenant: %w", err)
	}

	return &u, &t, nil
}

// CreateNote inserts a note, admitting it against the tenant's quota first.
// Admission and insert run in one transaction holding a row lock on the
// tenant, so two concurrent creates from the same tenant serialize and the
// second sees the first one's insert. A separate count-then-insert would
// admit both.
func (s *Storage) CreateNote(ctx context.Context, n *types.Note) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateNote")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate note ID: %w", err)
	}

	var newNote types.Note
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		var tierValue string
		err := s.db.Statement(ctx).
			Select("tier").
			From("tenants").
			Where(sq.Eq{"id": n.TenantID}).
			Suffix("FOR UPDATE").
			QueryRowContext(ctx).
			Scan(&tierValue)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock tenant row: %w", err)
		}

		tier, err := types.ParseTier(tierValue)
		if err != nil {
			return err
		}

		if limit, limited := tier.NoteLimit(); limited {
			var count int64
			err := s.db.Statement(ctx).
				Select("COUNT(*)").
				From("notes").
				Where(sq.Eq{"tenant_id": n.TenantID}).
				QueryRowContext(ctx).
				Scan(&count)
			if err != nil {
				return fmt.Errorf("failed to count notes: %w", err)
			}

			if count >= limit {
				return ErrNoteLimitReached
			}
		}

		err = s.db.Statement(ctx).
			Insert("notes").
			Columns("id", "tenant_id", "author_id", "title", "content").
			Values(id.String(), n.TenantID, n.AuthorID, n.Title, n.Content).
			Suffix("RETURNING id, tenant_id, author_id, title, content, created_at, updated_at").
			QueryRowContext(ctx).
			Scan(&newNote.ID, &newNote.TenantID, &newNote.AuthorID, &newNote.Title, &newNote.Content, &newNote.CreatedAt, &newNote.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	newNote.AuthorEmail = n.AuthorEmail
	return &newNote, nil
}

// GetNote fetches a note by id scoped to the given tenant in a single
// filtered query. A note owned by another tenant is indistinguishable from
// a missing one: both return ErrNotFound.
func (s *Storage) GetNote(ctx context.Context, tenantID, noteID string) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetNote")
	defer span.End()

	var n types.Note
	err := s.db.Statement(ctx).
		Select("n.id", "n.tenant_id", "n.author_id", "u.email", "n.title", "n.content", "n.created_at", "n.updated_at").
		From("notes n").
		Join("users u ON u.id = n.author_id").
		Where(sq.Eq{"n.id": noteID, "n.tenant_id": tenantID}).
		QueryRowContext(ctx).
		Scan(&n.ID, &n.TenantID, &n.AuthorID, &n.AuthorEmail, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &n, nil
}

func (s *Storage) ListNotes(ctx context.Context, tenantID string) ([]*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListNotes")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("n.id", "n.tenant_id", "n.author_id", "u.email", "n.title", "n.content", "n.created_at", "n.updated_at").
		From("notes n").
		Join("users u ON u.id = n.author_id").
		Where(sq.Eq{"n.tenant_id": tenantID}).
		OrderBy("n.created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*types.Note
	for rows.Next() {
		var n types.Note
		if err := rows.Scan(&n.ID, &n.TenantID, &n.AuthorID, &n.AuthorEmail, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return notes, nil
}

func (s *Storage) UpdateNote(ctx context.Context, tenantID, noteID, title, content string) (*types.Note, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateNote")
	defer span.End()

	var n types.Note
	err := s.db.Statement(ctx).
		Update("notes").
		Set("title", title).
		Set("content", content).
		Set("updated_at", sq.Expr("now()")).
		From("users").
		Where("users.id = notes.author_id").
		Where(sq.Eq{"notes.id": noteID, "notes.tenant_id": tenantID}).
		Suffix("RETURNING notes.id, notes.tenant_id, notes.author_id, users.email, notes.title, notes.content, notes.created_at, notes.updated_at").
		QueryRowContext(ctx).
		Scan(&n.ID, &n.TenantID, &n.AuthorID, &n.AuthorEmail, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return &n, nil
}

func (s *Storage) DeleteNote(ctx context.Context, tenantID, noteID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteNote")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("notes").
		Where(sq.Eq{"id": noteID, "tenant_id": tenantID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
