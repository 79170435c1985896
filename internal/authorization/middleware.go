// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"
	"net/http"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
)

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// RequireCapability gates a route on the principal's role satisfying the
// given capability. Runs after authentication, so a missing principal is a
// programming error and is rejected as unauthenticated rather than
// forbidden.
func (m *Middleware) RequireCapability(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authorization.Middleware.RequireCapability")
			defer span.End()

			p, ok := identity.PrincipalFromContext(ctx)
			if !ok {
				m.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			if !c.SatisfiedBy(p.User.Role) {
				m.logger.Security().AuthzFailure(p.User.ID, c.String()+"_capability")
				m.errorResponse(w, http.StatusForbidden, c.String()+" access required")
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		m.logger.Errorf("failed to encode error response: %v", err)
	}
}
