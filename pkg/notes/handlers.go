// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/http/types"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// RegisterEndpoints mounts the note routes. Authentication and the member
// capability gate are applied by the router before these handlers run.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/", a.createNote)
	r.Get("/", a.listNotes)
	r.Get("/{id}", a.getNote)
	r.Put("/{id}", a.updateNote)
	r.Delete("/{id}", a.deleteNote)
}

type notePayload struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (a *API) decodePayload(w http.ResponseWriter, r *http.Request) (*notePayload, bool) {
	var p notePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)

	if err := a.validate.Struct(p); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "validation failed: title and content are required")
		return nil, false
	}

	return &p, true
}

func (a *API) createNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notes.API.createNote")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	payload, ok := a.decodePayload(w, r)
	if !ok {
		return
	}

	note, err := a.service.CreateNote(ctx, principal, payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			_ = httptypes.WriteQuotaError(w, "Note limit reached. Upgrade to Pro for unlimited notes.")
			return
		}
		a.logger.Errorf("failed to create note: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusCreated, note)
}

func (a *API) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notes.API.listNotes")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	notes, err := a.service.ListNotes(ctx, principal)
	if err != nil {
		a.logger.Errorf("failed to list notes: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if notes == nil {
		notes = []*types.Note{}
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, notes)
}

func (a *API) getNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notes.API.getNote")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	note, err := a.service.GetNote(ctx, principal, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = httptypes.WriteError(w, http.StatusNotFound, "note not found")
			return
		}
		a.logger.Errorf("failed to get note: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, note)
}

func (a *API) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notes.API.updateNote")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	payload, ok := a.decodePayload(w, r)
	if !ok {
		return
	}

	note, err := a.service.UpdateNote(ctx, principal, chi.URLParam(r, "id"), payload.Title, payload.Content)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = httptypes.WriteError(w, http.StatusNotFound, "note not found")
			return
		}
		a.logger.Errorf("failed to update note: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, note)
}

func (a *API) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notes.API.deleteNote")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	if err := a.service.DeleteNote(ctx, principal, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = httptypes.WriteError(w, http.StatusNotFound, "note not found")
			return
		}
		a.logger.Errorf("failed to delete note: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}
