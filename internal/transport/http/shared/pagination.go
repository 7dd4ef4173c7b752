package shared

import (
	"net/http"
	"strconv"

	domain "hradmin/internal/domain/shared"
)

// ParsePage reads page and per_page. Invalid values fall back to the defaults
// and per_page is capped by PageRequest.Normalize.
func ParsePage(r *http.Request, defaultPerPage int) domain.PageRequest {
	page := domain.PageRequest{Page: 1, PerPage: defaultPerPage}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.Page = v
		}
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page.PerPage = v
		}
	}
	return page.Normalize()
}
