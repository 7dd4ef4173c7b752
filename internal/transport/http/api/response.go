package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"hradmin/internal/domain/shared"
)

type Meta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// Envelope is the body of every JSON response. Data is kept when it holds an
// empty list, so index responses always carry an array.
type Envelope struct {
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Meta    *Meta               `json:"meta,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func MetaOf[T any](p shared.Page[T]) Meta {
	return Meta{CurrentPage: p.CurrentPage, LastPage: p.LastPage, PerPage: p.PerPage, Total: p.Total}
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("write json failed", zap.Error(err))
	}
}

func Success(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}

// PageEnvelope maps one page of records to {data, meta}.
func PageEnvelope[T, R any](page shared.Page[T], toResource func(T) R) Envelope {
	mapped := shared.MapPage(page, toResource)
	meta := MetaOf(mapped)
	return Envelope{Data: mapped.Items, Meta: &meta}
}

func Paginated[T, R any](w http.ResponseWriter, page shared.Page[T], toResource func(T) R) {
	WriteJSON(w, http.StatusOK, PageEnvelope(page, toResource))
}

// Collection maps records to resources, always yielding a list.
func Collection[T, R any](items []T, toResource func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, toResource(item))
	}
	return out
}

func Created(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Message: message, Data: data})
}

func Updated(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Message: message, Data: data})
}

func Message(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Message: message})
}

func Fail(w http.ResponseWriter, status int, message string) {
	Message(w, status, message)
}

func FailValidation(w http.ResponseWriter, err *shared.ValidationError) {
	WriteJSON(w, http.StatusUnprocessableEntity, Envelope{Message: err.Error(), Errors: err.Fields})
}
