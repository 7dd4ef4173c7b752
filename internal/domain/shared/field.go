package shared

import "hradmin/internal/platform/querier"

// Field is an optional input value. The zero value is "absent"; Null marks an
// explicit null that clears the column.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

func Set[T any](value T) Field[T] {
	return Field[T]{value: value, set: true}
}

func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// FromPtr maps nil to Null and anything else to Set.
func FromPtr[T any](value *T) Field[T] {
	if value == nil {
		return Null[T]()
	}
	return Set(*value)
}

func (f Field[T]) IsSet() bool {
	return f.set
}

func (f Field[T]) IsNull() bool {
	return f.set && f.null
}

// Get returns the value and whether a non-null value is present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

func (f Field[T]) Or(fallback T) T {
	if v, ok := f.Get(); ok {
		return v
	}
	return fallback
}

// Ptr returns nil for absent or null fields.
func (f Field[T]) Ptr() *T {
	if v, ok := f.Get(); ok {
		return &v
	}
	return nil
}

// Put appends the column when the field was provided. Null becomes SQL NULL.
func Put[T any](cols []querier.Column, name string, f Field[T]) []querier.Column {
	return PutWith(cols, name, f, func(v T) any { return v })
}

// PutWith is Put with a conversion applied to non-null values.
func PutWith[T any](cols []querier.Column, name string, f Field[T], conv func(T) any) []querier.Column {
	if !f.set {
		return cols
	}
	if f.null {
		return append(cols, querier.Column{Name: name, Value: nil})
	}
	return append(cols, querier.Column{Name: name, Value: conv(f.value)})
}
