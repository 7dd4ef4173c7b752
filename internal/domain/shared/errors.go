package shared

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("record not found")

type ConflictError struct {
	Message string
}

func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ValidationError carries one or more messages per field.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{Fields: map[string][]string{}}
	e.Add(field, message)
	return e
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return SummarizeFields(e.Fields)
}

// SummarizeFields renders the first message of the alphabetically first field,
// plus a count of the rest.
func SummarizeFields(fields map[string][]string) string {
	if len(fields) == 0 {
		return "The given data was invalid."
	}
	keys := make([]string, 0, len(fields))
	total := 0
	for k, msgs := range fields {
		keys = append(keys, k)
		total += len(msgs)
	}
	sort.Strings(keys)
	first := "The given data was invalid."
	if msgs := fields[keys[0]]; len(msgs) > 0 {
		first = msgs[0]
	}
	if total <= 1 {
		return first
	}
	suffix := " (and 1 more error)"
	if total > 2 {
		suffix = " (and " + strconv.Itoa(total-1) + " more errors)"
	}
	return strings.TrimSpace(first) + suffix
}

// Constraint describes how a named database constraint surfaces to clients.
type Constraint struct {
	Field   string
	Message string
}

// TranslateError maps constraint violations raised by Postgres onto the
// domain error taxonomy. Unique violations become conflicts; foreign key,
// check and not-null violations become field validation errors.
func TranslateError(err error, constraints map[string]Constraint) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	c, known := constraints[pgErr.ConstraintName]
	switch pgErr.Code {
	case "23505":
		if known {
			return Conflict(c.Message)
		}
		return Conflict("A record with the same unique value already exists.")
	case "23503":
		if known {
			return NewValidationError(c.Field, c.Message)
		}
		return NewValidationError("id", "A referenced record does not exist.")
	case "23514":
		if known {
			return NewValidationError(c.Field, c.Message)
		}
		return NewValidationError("id", "A value is outside the allowed range.")
	case "23502":
		if pgErr.ColumnName == "" {
			return NewValidationError("id", "A required value is missing.")
		}
		return NewValidationError(pgErr.ColumnName, "The "+strings.ReplaceAll(pgErr.ColumnName, "_", " ")+" field is required.")
	}
	return err
}
