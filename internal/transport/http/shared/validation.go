package shared

import (
	"context"
	"encoding/json"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	domain "hradmin/internal/domain/shared"
)

// Messages overrides generic validation messages, keyed "field.rule".
type Messages map[string]string

// ExistsFunc reports whether a referenced row exists.
type ExistsFunc func(ctx context.Context, id int64) (bool, error)

// TakenFunc reports whether a unique value is used by a row other than ignoreID.
type TakenFunc func(ctx context.Context, value string, ignoreID int64) (bool, error)

// Validator turns an Input into typed fields and collects one message per
// violated rule. In partial mode fields missing from the input are skipped,
// which gives update requests their patch semantics.
type Validator struct {
	ctx      context.Context
	input    Input
	messages Messages
	partial  bool
	issues   *domain.ValidationError
	err      error
}

func NewValidator(ctx context.Context, input Input, messages Messages) *Validator {
	return &Validator{ctx: ctx, input: input, messages: messages, issues: &domain.ValidationError{}}
}

func NewPartialValidator(ctx context.Context, input Input, messages Messages) *Validator {
	v := NewValidator(ctx, input, messages)
	v.partial = true
	return v
}

// ValidatorFor builds the validator for a store request, or for an update of
// updateID when it is positive.
func ValidatorFor(ctx context.Context, input Input, messages Messages, updateID int64) *Validator {
	if updateID > 0 {
		return NewPartialValidator(ctx, input, messages)
	}
	return NewValidator(ctx, input, messages)
}

func (v *Validator) Partial() bool {
	return v.partial
}

// Fail records a violation, preferring the custom message for field.rule.
func (v *Validator) Fail(field, rule, fallback string) {
	if msg, ok := v.messages[field+"."+rule]; ok {
		fallback = msg
	}
	v.issues.Add(field, fallback)
}

func (v *Validator) Failed(field string) bool {
	_, ok := v.issues.Fields[field]
	return ok
}

// Err returns a lookup failure first, then the collected validation error.
func (v *Validator) Err() error {
	if v.err != nil {
		return v.err
	}
	if len(v.issues.Fields) > 0 {
		return v.issues
	}
	return nil
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// raw returns the value and whether the field must be looked at. A missing
// field is skipped in partial mode, or when it is optional.
func (v *Validator) raw(field string, required bool) (any, bool) {
	value, present := v.input[field]
	if !present {
		if required && !v.partial {
			v.Fail(field, "required", "The "+label(field)+" field is required.")
		}
		return nil, false
	}
	return value, true
}

func blank(value any) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// emptyField handles an explicit null or blank value: an error when the field
// is required, a Null field otherwise.
func emptyField[T any](v *Validator, field string, required bool) domain.Field[T] {
	if required {
		v.Fail(field, "required", "The "+label(field)+" field is required.")
		return domain.Field[T]{}
	}
	return domain.Null[T]()
}

// Raw exposes a present value for fields with bespoke parsing.
func (v *Validator) Raw(field string, required bool) (any, bool) {
	value, ok := v.raw(field, required)
	if !ok {
		return nil, false
	}
	if blank(value) {
		if required {
			v.Fail(field, "required", "The "+label(field)+" field is required.")
		}
		return nil, true
	}
	return value, true
}

func (v *Validator) String(field string, maxLen int, required bool) domain.Field[string] {
	value, ok := v.raw(field, required)
	if !ok {
		return domain.Field[string]{}
	}
	if blank(value) {
		return emptyField[string](v, field, required)
	}
	s, isString := value.(string)
	if !isString {
		v.Fail(field, "string", "The "+label(field)+" must be a string.")
		return domain.Field[string]{}
	}
	s = strings.TrimSpace(s)
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		v.Fail(field, "max", "The "+label(field)+" may not be greater than "+strconv.Itoa(maxLen)+" characters.")
		return domain.Field[string]{}
	}
	return domain.Set(s)
}

func (v *Validator) Email(field string, maxLen int, required bool) domain.Field[string] {
	f := v.String(field, maxLen, required)
	if s, ok := f.Get(); ok {
		addr, err := mail.ParseAddress(s)
		if err != nil || addr.Address != s {
			v.Fail(field, "email", "The "+label(field)+" must be a valid email address.")
			return domain.Field[string]{}
		}
		return domain.Set(strings.ToLower(s))
	}
	return f
}

func (v *Validator) Enum(field string, allowed []string, required bool) domain.Field[string] {
	f := v.String(field, 0, required)
	if s, ok := f.Get(); ok {
		s = strings.ToLower(s)
		if !slices.Contains(allowed, s) {
			v.Fail(field, "in", "The selected "+label(field)+" is invalid.")
			return domain.Field[string]{}
		}
		return domain.Set(s)
	}
	return f
}

func toFloat(value any) (float64, bool) {
	switch t := value.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(value any) (int64, bool) {
	switch t := value.(type) {
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case float64:
		n := int64(t)
		return n, float64(n) == t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Number parses a decimal with an inclusive lower bound.
func (v *Validator) Number(field string, min float64, required bool) domain.Field[float64] {
	value, ok := v.raw(field, required)
	if !ok {
		return domain.Field[float64]{}
	}
	if blank(value) {
		return emptyField[float64](v, field, required)
	}
	f, isNumber := toFloat(value)
	if !isNumber {
		v.Fail(field, "numeric", "The "+label(field)+" must be a number.")
		return domain.Field[float64]{}
	}
	if f < min {
		v.Fail(field, "min", "The "+label(field)+" must be at least "+strconv.FormatFloat(min, 'f', -1, 64)+".")
		return domain.Field[float64]{}
	}
	return domain.Set(f)
}

// Int parses an integer within [min, max].
func (v *Validator) Int(field string, min, max int, required bool) domain.Field[int] {
	value, ok := v.raw(field, required)
	if !ok {
		return domain.Field[int]{}
	}
	if blank(value) {
		return emptyField[int](v, field, required)
	}
	n, isInt := toInt(value)
	if !isInt {
		v.Fail(field, "integer", "The "+label(field)+" must be an integer.")
		return domain.Field[int]{}
	}
	if n < int64(min) || n > int64(max) {
		v.Fail(field, "between", "The "+label(field)+" must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max)+".")
		return domain.Field[int]{}
	}
	return domain.Set(int(n))
}

// ID parses a reference and, when exists is given, checks the row is there.
func (v *Validator) ID(field string, required bool, exists ExistsFunc) domain.Field[int64] {
	value, ok := v.raw(field, required)
	if !ok {
		return domain.Field[int64]{}
	}
	if blank(value) {
		return emptyField[int64](v, field, required)
	}
	id, isInt := toInt(value)
	if !isInt || id <= 0 {
		v.Fail(field, "integer", "The "+label(field)+" must be an integer.")
		return domain.Field[int64]{}
	}
	if exists != nil && v.err == nil {
		found, err := exists(v.ctx, id)
		if err != nil {
			v.err = err
			return domain.Field[int64]{}
		}
		if !found {
			v.Fail(field, "exists", "The selected "+label(field)+" is invalid.")
			return domain.Field[int64]{}
		}
	}
	return domain.Set(id)
}

func (v *Validator) Date(field string, required bool) domain.Field[time.Time] {
	value, ok := v.raw(field, required)
	if !ok {
		return domain.Field[time.Time]{}
	}
	if blank(value) {
		return emptyField[time.Time](v, field, required)
	}
	s, isString := value.(string)
	parsed, err := ParseDate(s)
	if !isString || err != nil {
		v.Fail(field, "date", "The "+label(field)+" is not a valid date.")
		return domain.Field[time.Time]{}
	}
	return domain.Set(parsed)
}

func (v *Validator) Bool(field string) domain.Field[bool] {
	value, ok := v.raw(field, false)
	if !ok {
		return domain.Field[bool]{}
	}
	switch t := value.(type) {
	case nil:
		return domain.Null[bool]()
	case bool:
		return domain.Set(t)
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return domain.Set(b)
		}
	case json.Number:
		switch t.String() {
		case "0":
			return domain.Set(false)
		case "1":
			return domain.Set(true)
		}
	}
	v.Fail(field, "boolean", "The "+label(field)+" field must be true or false.")
	return domain.Field[bool]{}
}

// StringList accepts a JSON array of strings. Blank items are dropped.
func (v *Validator) StringList(field string, maxLen int) domain.Field[[]string] {
	value, ok := v.raw(field, false)
	if !ok {
		return domain.Field[[]string]{}
	}
	if value == nil {
		return domain.Null[[]string]()
	}
	items, isList := value.([]any)
	if !isList {
		v.Fail(field, "array", "The "+label(field)+" must be a list of strings.")
		return domain.Field[[]string]{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, isString := item.(string)
		if !isString {
			v.Fail(field, "array", "The "+label(field)+" must be a list of strings.")
			return domain.Field[[]string]{}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
			v.Fail(field, "max", "Each "+label(field)+" item may not be greater than "+strconv.Itoa(maxLen)+" characters.")
			return domain.Field[[]string]{}
		}
		out = append(out, s)
	}
	return domain.Set(out)
}

// NotNull rejects an explicit null or blank value for optional fields whose
// columns fall back to a default but never hold NULL.
func (v *Validator) NotNull(fields ...string) {
	for _, field := range fields {
		value, present := v.input[field]
		if present && blank(value) && !v.Failed(field) {
			v.Fail(field, "filled", "The "+label(field)+" field must have a value.")
		}
	}
}

// Unique checks a provided value against persisted rows, ignoring ignoreID.
func (v *Validator) Unique(field string, value domain.Field[string], ignoreID int64, taken TakenFunc) {
	s, ok := value.Get()
	if !ok || v.err != nil {
		return
	}
	used, err := taken(v.ctx, s, ignoreID)
	if err != nil {
		v.err = err
		return
	}
	if used {
		v.Fail(field, "unique", "The "+label(field)+" has already been taken.")
	}
}

// NotBefore requires later to be on or after earlier when both are provided.
func (v *Validator) NotBefore(field string, later, earlier domain.Field[time.Time], otherField string) {
	l, okL := later.Get()
	e, okE := earlier.Get()
	if okL && okE && l.Before(e) {
		v.Fail(field, "after_or_equal", "The "+label(field)+" must be a date after or equal to "+label(otherField)+".")
	}
}

// AtLeast requires value to be greater than or equal to floor when both are
// provided.
func (v *Validator) AtLeast(field string, value, floor domain.Field[float64], otherField string) {
	val, okV := value.Get()
	min, okF := floor.Get()
	if okV && okF && val < min {
		v.Fail(field, "gte", "The "+label(field)+" must be greater than or equal to "+label(otherField)+".")
	}
}
