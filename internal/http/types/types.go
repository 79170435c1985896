// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the standard json error body. LimitReached is the
// machine-readable quota flag: clients use it to render an upgrade prompt
// instead of a generic failure.
type ErrorResponse struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	LimitReached bool   `json:"limit_reached,omitempty"`
}

// WriteJSON writes v as a json response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error body.
func WriteError(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{Status: status, Message: message})
}

// WriteQuotaError writes a 403 carrying the limit_reached flag.
func WriteQuotaError(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusForbidden, ErrorResponse{
		Status:       http.StatusForbidden,
		Message:      message,
		LimitReached: true,
	})
}
