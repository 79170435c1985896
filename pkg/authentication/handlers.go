// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/http/types"
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

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/auth/login", a.login)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID     string      `json:"id"`
	Email  string      `json:"email"`
	Role   types.Role  `json:"role"`
	Tenant loginTenant `json:"tenant"`
}

type loginTenant struct {
	Slug string     `json:"slug"`
	Name string     `json:"name"`
	Tier types.Tier `json:"subscription"`
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.login")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := a.validate.Struct(req); err != nil {
		_ = httptypes.WriteError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	token, user, tenant, err := a.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			_ = httptypes.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		a.logger.Errorf("login failed: %v", err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
			Tenant: loginTenant{
				Slug: tenant.Slug,
				Name: tenant.Name,
				Tier: tenant.Tier,
			},
		},
	})
}
