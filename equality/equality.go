// Package equality provides the three comparison strategies the selector
// cache decides reuse with: identity, one-level structural, and serialized
// structural comparison.
//
// Every strategy is total. Values that cannot be compared (unserializable
// graphs, non-comparable dynamic types, panics inside reflection) degrade to
// "not equal" so that a cache read can never fail, only recompute.
package equality

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Same reports whether a and b are the same value in identity terms: equal
// comparable values, or the same backing data for slices and maps. Distinct
// allocations with equal contents are not Same. Functions have no usable
// identity, two non-nil functions are never Same.
func Same(a, b any) (same bool) {
	defer func() {
		if r := recover(); r != nil {
			same = false
		}
	}()
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return sameBacking(reflect.ValueOf(a), reflect.ValueOf(b))
}

// sameBacking resolves identity for the non-comparable kinds. Values of
// non-comparable struct or array types are copied into the interface, so no
// identity survives and the answer is false.
func sameBacking(va, vb reflect.Value) bool {
	switch va.Kind() {
	case reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Func:
		// Code pointers collide across closures of one literal, so pointer
		// identity over-reports. Only nil functions compare equal.
		return va.IsNil() && vb.IsNil()
	default:
		return false
	}
}

// Shallow reports whether a and b are Same, or are maps, slices, or arrays
// of the same type whose key sets match and whose corresponding elements are
// pairwise Same. It looks exactly one level deep; nested structures are
// compared by identity only.
func Shallow(a, b any) (equal bool) {
	defer func() {
		if r := recover(); r != nil {
			equal = false
		}
	}()
	if Same(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice, reflect.Array:
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !Same(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true
	case reflect.Map:
		if va.Len() != vb.Len() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key())
			if !other.IsValid() {
				return false
			}
			if !Same(iter.Value().Interface(), other.Interface()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Deep reports whether a and b serialize to the same JSON bytes. Values that
// do not serialize (functions, channels, cycles, NaN) are not equal to
// anything, including themselves.
func Deep(a, b any) (equal bool) {
	defer func() {
		if r := recover(); r != nil {
			equal = false
		}
	}()
	if Same(a, b) {
		return true
	}
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}
