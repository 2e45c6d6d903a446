// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON HTTP API for the site backend: public
// content reads and the authenticated admin CRUD surface.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/automindlabs/site-go/internal/authgate"
	"github.com/automindlabs/site-go/internal/cache"
	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/service"
	"github.com/automindlabs/site-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db           *sql.DB
	queries      *store.Queries
	cache        *cache.Manager
	sessions     *scs.SessionManager
	auth         authgate.Service
	media        *service.MediaService
	events       *service.EventService
	loginProtect *middleware.LoginProtection
}

// Config wires a Handler's dependencies.
type Config struct {
	DB              *sql.DB
	Cache           *cache.Manager
	Sessions        *scs.SessionManager
	Auth            authgate.Service
	Media           *service.MediaService
	Events          *service.EventService
	LoginProtection *middleware.LoginProtection
}

// NewHandler creates the API handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		db:           cfg.DB,
		queries:      store.New(cfg.DB),
		cache:        cfg.Cache,
		sessions:     cfg.Sessions,
		auth:         cfg.Auth,
		media:        cfg.Media,
		events:       cfg.Events,
		loginProtect: cfg.LoginProtection,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a 200 response with the data envelope.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 400 response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// ParseIDParam parses the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parsePagination reads page/per_page query parameters with clamping.
func parsePagination(r *http.Request, defaultPerPage, maxPerPage int) (page, perPage int) {
	page = parseIntParam(r, "page", 1, 1, 0)
	perPage = parseIntParam(r, "per_page", defaultPerPage, 1, maxPerPage)
	return page, perPage
}

func parseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// requireEntityByID parses {id} and fetches the entity, writing the
// error response itself on failure.
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch func(id int64) (T, error)) (T, bool) {
	var zero T

	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, entityName+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}
	return entity, true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status reports API liveness.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{Status: "ok", Version: "v1"}, nil)
}
