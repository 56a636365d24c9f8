// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the catalog repository as a JSON API: public
// read endpoints for the storefront pages and a passphrase-gated admin
// surface for the dashboard.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"byteclave/internal/catalog"
	"byteclave/internal/store"
)

// maxBodyBytes bounds admin request bodies. Uploaded files are inline
// data URLs, so the limit is generous.
const maxBodyBytes = 16 << 20

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes: validation
// failures become 400, missing records 404, everything else 500 with the
// detail kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Msg})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// marshalForCache serializes a response body for the listing cache,
// matching what writeJSON would emit.
func marshalForCache(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}

// readJSON decodes the request body into v with the body size bounded.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return false
	}
	return true
}
