// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dagcategory/internal/hierarchy"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMessage writes {"error": msg} with the given status.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps hierarchy errors onto HTTP status codes. Anything it does
// not recognise is logged and reported as a 500 without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, hierarchy.ErrCategoryNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hierarchy.ErrCircularParentage),
		errors.Is(err, hierarchy.ErrHasChildren),
		errors.Is(err, hierarchy.ErrDuplicatePath):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, hierarchy.ErrParentNotFound),
		errors.Is(err, hierarchy.ErrInvalidSlug):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// decodeJSON reads a size-limited JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// idParam parses the {id} URL parameter.
func idParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}
