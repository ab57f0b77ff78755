// Package optional provides the three-state field model used by
// patch documents: a field is either absent from the document, an
// explicit null, or an explicit value. A plain pointer can only
// express two of those states.
package optional

import "encoding/json"

// Value is the sum type {Unset, Null, Value(T)}. The zero value is
// Unset, so a patch struct whose fields were never mentioned by the
// decoder is all-unset by construction.
type Value[T any] struct {
	set  bool
	null bool
	val  T
}

// Unset returns the "field not mentioned" state.
func Unset[T any]() Value[T] { return Value[T]{} }

// Null returns the "field explicitly cleared" state.
func Null[T any]() Value[T] { return Value[T]{set: true, null: true} }

// Of returns the "field set to v" state.
func Of[T any](v T) Value[T] { return Value[T]{set: true, val: v} }

// IsUnset reports whether the field was not mentioned at all.
func (v Value[T]) IsUnset() bool { return !v.set }

// IsNull reports whether the field was an explicit null.
func (v Value[T]) IsNull() bool { return v.set && v.null }

// Get returns the value and whether one is present. It returns
// (zero, false) for both Unset and Null.
func (v Value[T]) Get() (T, bool) {
	if !v.set || v.null {
		var zero T
		return zero, false
	}
	return v.val, true
}

// Or returns the contained value, or fallback for Unset/Null.
func (v Value[T]) Or(fallback T) T {
	if out, ok := v.Get(); ok {
		return out
	}
	return fallback
}

// UnmarshalJSON is only invoked for keys present in the document, so
// absence never reaches it: present null becomes Null, anything else
// becomes Of(decoded value).
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null[T]()
		return nil
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*v = Of(decoded)
	return nil
}

// MarshalJSON renders Unset and Null as null. The unset token never
// leaks into persisted storage or full representations; read paths
// serialize models, not patch documents.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if out, ok := v.Get(); ok {
		return json.Marshal(out)
	}
	return []byte("null"), nil
}
