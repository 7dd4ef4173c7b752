package shared

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// PathID reads a positive integer route parameter.
func PathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryID returns 0 when the parameter is missing or not a positive integer.
func QueryID(r *http.Request, key string) int64 {
	id, err := strconv.ParseInt(QueryString(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func QueryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(QueryString(r, key))
	if err != nil {
		return fallback
	}
	return v
}

func QueryFloat(r *http.Request, key string) (float64, bool) {
	v, err := strconv.ParseFloat(QueryString(r, key), 64)
	return v, err == nil
}

// QueryDate returns nil for a missing or malformed date.
func QueryDate(r *http.Request, key string) *time.Time {
	raw := QueryString(r, key)
	if raw == "" {
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// QueryDateOr returns the parsed date or fallback.
func QueryDateOr(r *http.Request, key string, fallback time.Time) time.Time {
	if d := QueryDate(r, key); d != nil {
		return *d
	}
	return fallback
}

// Filters echoes the recognised, non-empty query parameters back to pages.
func Filters(r *http.Request, keys ...string) map[string]string {
	out := map[string]string{}
	for _, key := range keys {
		if v := QueryString(r, key); v != "" {
			out[key] = v
		}
	}
	return out
}
