// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/identity"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
)

type Middleware struct {
	codec   TokenCodecInterface
	storage UserStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(
	codec TokenCodecInterface,
	storage UserStorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Middleware {
	return &Middleware{
		codec:   codec,
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Authenticate verifies the bearer token and resolves the identity behind
// it: user and owning tenant, fetched consistently in one query. The
// resolved principal is attached to the request context; downstream
// handlers and middlewares must not refetch it.
//
// A missing, malformed or expired token is rejected with 403. A token that
// verifies but whose user is gone is rejected with 401.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r.Header)
			if !found {
				m.errorResponse(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			userID, err := m.codec.VerifyToken(ctx, token)
			if err != nil {
				m.logger.Debugf("token verification failed: %v", err)
				m.errorResponse(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			user, tenant, err := m.storage.GetUserWithTenant(ctx, userID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					// Valid token, user deleted since issuance.
					m.logger.Security().AuthnFailure(userID)
					m.errorResponse(w, http.StatusUnauthorized, "unknown identity")
					return
				}
				m.logger.Errorf("failed to resolve identity: %v", err)
				m.errorResponse(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx = identity.WithPrincipal(ctx, &identity.Principal{User: user, Tenant: tenant})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	return strings.TrimPrefix(bearer, "Bearer "), true
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
