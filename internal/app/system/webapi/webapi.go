// internal/app/system/webapi/webapi.go

// Package webapi renders the JSON response envelope shared by every
// endpoint: {success, data?, message?, errors?}, with list endpoints adding
// count/total/totalPages/currentPage.
package webapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the response body for non-list endpoints.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ListEnvelope is the response body for list endpoints. Data is always
// present (an empty list rather than null) so clients can iterate without
// nil checks.
type ListEnvelope struct {
	Success     bool   `json:"success"`
	Count       int    `json:"count"`
	Total       int64  `json:"total"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Data        any    `json:"data"`
	Message     string `json:"message,omitempty"`
}

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a 200 envelope with the given data.
func OK(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 envelope with data and a human-readable message.
func OKMessage(w http.ResponseWriter, data any, msg string) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Message: msg})
}

// Created writes a 201 envelope with the given data.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// List writes a 200 list envelope. count is derived from the page contents;
// total and page come from the query.
func List(w http.ResponseWriter, data any, count int, total int64, totalPages, currentPage int) {
	write(w, http.StatusOK, ListEnvelope{
		Success:     true,
		Count:       count,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Data:        data,
	})
}

// BadRequest writes a 400 envelope. Use for validation failures and for
// uniqueness conflicts (the conflict taxonomy maps to 400 with a specific
// message).
func BadRequest(w http.ResponseWriter, msg string, fieldErrors ...string) {
	write(w, http.StatusBadRequest, Envelope{Success: false, Message: msg, Errors: fieldErrors})
}

// Conflict writes the uniqueness-violation error. Same status as BadRequest
// but kept distinct at call sites so the taxonomy stays visible.
func Conflict(w http.ResponseWriter, msg string) {
	write(w, http.StatusBadRequest, Envelope{Success: false, Message: msg})
}

// Unauthorized writes a 401 envelope.
func Unauthorized(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Authentication required."
	}
	write(w, http.StatusUnauthorized, Envelope{Success: false, Message: msg})
}

// Forbidden writes a 403 envelope.
func Forbidden(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "You do not have permission to perform this action."
	}
	write(w, http.StatusForbidden, Envelope{Success: false, Message: msg})
}

// NotFound writes a 404 envelope.
func NotFound(w http.ResponseWriter, msg string) {
	if msg == "" {
		msg = "Resource not found."
	}
	write(w, http.StatusNotFound, Envelope{Success: false, Message: msg})
}

// ServerError logs the underlying error and writes a generic 500 envelope.
// The concrete error never reaches the client.
func ServerError(w http.ResponseWriter, log *zap.Logger, context string, err error) {
	if log != nil {
		log.Error(context, zap.Error(err))
	}
	write(w, http.StatusInternalServerError, Envelope{Success: false, Message: "Internal server error."})
}

// DecodeBody decodes a JSON request body into dst. Unknown fields are
// ignored so clients may send supersets of an input shape; only malformed
// JSON is an error.
func DecodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
