// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package notes -destination ./mock_notes.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package notes -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package notes -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package notes -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func testPrincipal() *identity.Principal {
	return &identity.Principal{
		User:   &types.User{ID: "user-1", Email: "user@acme.test", Role: types.RoleMember, TenantID: "tenant-1"},
		Tenant: &types.Tenant{ID: "tenant-1", Slug: "acme", Name: "Acme", Tier: types.TierFree},
	}
}

func TestService_CreateNote(t *testing.T) {
	principal := testPrincipal()

	tests := []struct {
		name         string
		setupMocks   func(*MockStorageInterface, *MockLoggerInterface)
		expectedErr  error
		expectOpaque bool
	}{
		{
			name: "success - note carries tenant and author from principal",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().CreateNote(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, n *types.Note) (*types.Note, error) {
						if n.TenantID != "tenant-1" {
							return nil, errors.New("wrong tenant id")
						}
						if n.AuthorID != "user-1" {
							return nil, errors.New("wrong author id")
						}
						if n.Title != "title" || n.Content != "content" {
							return nil, errors.New("payload not carried through")
						}
						created := *n
						created.ID = "note-1"
						return &created, nil
					})
			},
		},
		{
			name: "limit reached - quota exceeded",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().CreateNote(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNoteLimitReached)
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedErr: ErrQuotaExceeded,
		},
		{
			name: "storage failure - opaque error",
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface) {
				mockStorage.EXPECT().CreateNote(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))
			},
			expectOpaque: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "notes.Service.CreateNote").Return(ctx, trace.SpanFromContext(ctx))
			tt.setupMocks(mockStorage, mockLogger)

			s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			note, err := s.CreateNote(ctx, principal, "title", "content")

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if tt.expectOpaque {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if errors.Is(err, ErrQuotaExceeded) {
					t.Errorf("infrastructure failure must not map to quota exceeded: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if note.ID != "note-1" {
				t.Errorf("expected created note, got %+v", note)
			}
		})
	}
}

func TestService_NotFoundMapping(t *testing.T) {
	principal := testPrincipal()

	tests := []struct {
		name     string
		spanName string
		call     func(context.Context, *Service) error
		setup    func(*MockStorageInterface)
	}{
		{
			name:     "get note",
			spanName: "notes.Service.GetNote",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.GetNote(ctx, principal, "note-404")
				return err
			},
			setup: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().GetNote(gomock.Any(), "tenant-1", "note-404").Return(nil, storage.ErrNotFound)
			},
		},
		{
			name:     "update note",
			spanName: "notes.Service.UpdateNote",
			call: func(ctx context.Context, s *Service) error {
				_, err := s.UpdateNote(ctx, principal, "note-404", "t", "c")
				return err
			},
			setup: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().UpdateNote(gomock.Any(), "tenant-1", "note-404", "t", "c").Return(nil, storage.ErrNotFound)
			},
		},
		{
			name:     "delete note",
			spanName: "notes.Service.DeleteNote",
			call: func(ctx context.Context, s *Service) error {
				return s.DeleteNote(ctx, principal, "note-404")
			},
			setup: func(mockStorage *MockStorageInterface) {
				mockStorage.EXPECT().DeleteNote(gomock.Any(), "tenant-1", "note-404").Return(storage.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), tt.spanName).Return(ctx, trace.SpanFromContext(ctx))
			tt.setup(mockStorage)

			s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			if err := tt.call(ctx, s); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestService_ListNotes_ScopedToTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	ctx := context.Background()
	mockTracer.EXPECT().Start(gomock.Any(), "notes.Service.ListNotes").Return(ctx, trace.SpanFromContext(ctx))

	stored := []*types.Note{{ID: "note-1", TenantID: "tenant-1"}}
	mockStorage.EXPECT().ListNotes(gomock.Any(), "tenant-1").Return(stored, nil)

	s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

	notes, err := s.ListNotes(ctx, testPrincipal())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 || notes[0].ID != "note-1" {
		t.Errorf("unexpected notes: %+v", notes)
	}
}

// quotaStorage is a thread-safe in-memory store that admits creates the
// same way the real store does: check and insert under one lock.
type quotaStorage struct {
	mu    sync.Mutex
	limit int
	count int
}

func (q *quotaStorage) CreateNote(_ context.Context, n *types.Note) (*types.Note, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count >= q.limit {
		return nil, storage.ErrNoteLimitReached
	}
	q.count++

	created := *n
	created.ID = fmt.Sprintf("note-%d", q.count)
	return &created, nil
}

func (q *quotaStorage) GetNote(context.Context, string, string) (*types.Note, error) {
	return nil, storage.ErrNotFound
}

func (q *quotaStorage) ListNotes(context.Context, string) ([]*types.Note, error) {
	return nil, nil
}

func (q *quotaStorage) UpdateNote(context.Context, string, string, string, string) (*types.Note, error) {
	return nil, storage.ErrNotFound
}

func (q *quotaStorage) DeleteNote(context.Context, string, string) error {
	return storage.ErrNotFound
}

func TestService_CreateNote_ConcurrentQuota(t *testing.T) {
	const attempts = 10
	const limit = 3

	store := &quotaStorage{limit: limit}
	tracer := NewMockTracingInterface(gomock.NewController(t))
	ctx := context.Background()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(ctx, trace.SpanFromContext(ctx)).AnyTimes()

	s := NewService(store, tracer, nil, logging.NewNoopLogger())

	principal := testPrincipal()

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateNote(ctx, principal, fmt.Sprintf("note %d", i), "content")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var created, denied int
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrQuotaExceeded):
			denied++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if created != limit {
		t.Errorf("expected exactly %d creates to succeed, got %d", limit, created)
	}
	if denied != attempts-limit {
		t.Errorf("expected %d quota denials, got %d", attempts-limit, denied)
	}
}
