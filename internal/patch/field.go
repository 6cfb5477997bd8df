// Package patch models the three states an optional field of a partial
// update can be in: absent from the request body, explicitly null, or
// carrying a value. Merge rules that differ between "not sent" and "sent
// empty" are decided against these states instead of ad hoc nil checks.
package patch

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a JSON-aware optional value. The zero Field is absent.
type Field[T any] struct {
	set  bool
	null bool
	val  T
}

// Some returns a Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{set: true, val: v}
}

// Null returns a Field that was explicitly set to JSON null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// Absent reports whether the field never appeared in the request.
func (f Field[T]) Absent() bool {
	return !f.set
}

// Present reports whether the field carries a value (set and not null).
func (f Field[T]) Present() bool {
	return f.set && !f.null
}

// IsNull reports whether the field was explicitly null.
func (f Field[T]) IsNull() bool {
	return f.set && f.null
}

// Value returns the carried value, or T's zero value when absent or null.
func (f Field[T]) Value() T {
	return f.val
}

// UnmarshalJSON records that the field appeared and whether it was null.
// Decoding only runs for non-null input, so a Field inside a request
// struct distinguishes {"x":null} from a body without "x" at all.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(data, []byte("null")) {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.val)
}

// MarshalJSON emits null for absent or null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(f.val)
}

// Text returns the trimmed string carried by f and whether it is a real
// change. Absent, null, and whitespace-only values all report false,
// matching the merge rule that treats empty text as "no change".
func Text(f Field[string]) (string, bool) {
	if !f.Present() {
		return "", false
	}
	s := strings.TrimSpace(f.Value())
	return s, s != ""
}
