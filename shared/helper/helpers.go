package helper

import (
	"fmt"
)

// As safely asserts v to the expected type T.
// Returns an error if type assertion fails.
func As[T any](v any) (T, error) {
	val, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected type: %T", v)
	}
	return val, nil
}

// MustAs is the panic-on-failure variant of As.
// Use when failure should be fatal (e.g., when the value's type is guaranteed
// by the declaration that produced it).
func MustAs[T any](v any) T {
	val, err := As[T](v)
	if err != nil {
		panic(err)
	}
	return val
}
