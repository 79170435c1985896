// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"errors"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/authorization"
	httptypes "github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/http/types"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
)

type API struct {
	service ServiceInterface
	authz   *authorization.Middleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	authz *authorization.Middleware,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service: service,
		authz:   authz,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// RegisterEndpoints mounts the tenant routes. Authentication is applied by
// the router; the upgrade route additionally requires the admin
// capability.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/{slug}", a.getTenant)
	r.With(a.authz.RequireCapability(authorization.CapabilityAdmin)).
		Post("/{slug}/upgrade", a.upgradeTenant)
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.getTenant")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	tenant, err := a.service.GetTenant(ctx, principal, chi.URLParam(r, "slug"))
	if err != nil {
		a.writeServiceError(w, err, "failed to get tenant")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, tenant)
}

func (a *API) upgradeTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.upgradeTenant")
	defer span.End()

	principal, ok := identity.PrincipalFromContext(ctx)
	if !ok {
		_ = httptypes.WriteError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	tenant, err := a.service.Upgrade(ctx, principal, chi.URLParam(r, "slug"))
	if err != nil {
		a.writeServiceError(w, err, "failed to upgrade tenant")
		return
	}

	_ = httptypes.WriteJSON(w, http.StatusOK, tenant)
}

func (a *API) writeServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrForbidden):
		_ = httptypes.WriteError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, ErrNotFound):
		_ = httptypes.WriteError(w, http.StatusNotFound, "tenant not found")
	default:
		a.logger.Errorf("%s: %v", logMsg, err)
		_ = httptypes.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
