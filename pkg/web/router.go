// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/authorization"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/authentication"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/metrics"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/notes"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/status"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/pkg/tenants"
)

// NewRouter wires the check pipeline in front of the protected APIs:
// authentication (token verify + identity resolution) runs on every
// protected route, the member capability gate on the note routes, and the
// admin gate on the upgrade route inside the tenants API.
func NewRouter(
	authAPI *authentication.API,
	authMiddleware *authentication.Middleware,
	authzMiddleware *authorization.Middleware,
	notesAPI *notes.API,
	tenantsAPI *tenants.API,
	allowedOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(allowedOrigins),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	authAPI.RegisterEndpoints(router)

	router.Route("/api/v0/notes", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate())
		r.Use(authzMiddleware.RequireCapability(authorization.CapabilityMember))
		notesAPI.RegisterEndpoints(r)
	})

	router.Route("/api/v0/tenants", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate())
		tenantsAPI.RegisterEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
