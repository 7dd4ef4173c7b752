package shared

import (
	"strings"
	"time"

	domain "hradmin/internal/domain/shared"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD and keeps only the calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return domain.DateOnly(parsed), nil
	}
	return time.Parse(domain.DateLayout, value)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}

func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

func FormatDatePtr(t *time.Time) *string {
	return domain.FormatDate(t)
}
