// Package params models the call-time parameter sets that parameterized
// selectors are bound with.
//
// A parameter set is an unordered mapping from string keys to scalar values
// drawn from a closed sum type (String, Int, Float, Bool, None). Two sets are
// equal iff their canonical encodings are equal; the encoding sorts keys
// bytewise before serializing, so the order in which callers add entries can
// never split one logical parameter set into two cache keys.
//
// Dynamic values enter through From, which fails fast on anything outside the
// closed set. Inside the package every value is encodable by construction.
package params

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnsupportedKind is returned by From when a raw value cannot be
// represented as a parameter Value.
var ErrUnsupportedKind = errors.New("unsupported parameter kind")

// Entry is one key/value pair for building a parameter set.
type Entry struct {
	Key   string
	Value Value
}

// Params is an immutable parameter set. The zero value is the empty set.
type Params struct {
	entries []Entry // key-sorted, unique keys, no None values
	canon   string
}

// Empty returns the empty parameter set.
func Empty() Params {
	return Params{}
}

// New builds a parameter set from entries. Later entries overwrite earlier
// ones with the same key; None entries are dropped, since an explicitly
// absent parameter and a missing one are the same thing.
func New(entries ...Entry) Params {
	if len(entries) == 0 {
		return Params{}
	}
	byKey := make(map[string]Value, len(entries))
	for _, e := range entries {
		if e.Value == nil || IsNone(e.Value) {
			delete(byKey, e.Key)
			continue
		}
		byKey[e.Key] = e.Value
	}
	normalized := make([]Entry, 0, len(byKey))
	for k, v := range byKey {
		normalized = append(normalized, Entry{Key: k, Value: v})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Key < normalized[j].Key
	})
	return Params{
		entries: normalized,
		canon:   canonicalEncode(normalized),
	}
}

// From converts a raw map into a parameter set. Supported raw kinds: nil
// (treated as absent), string, bool, every Go integer width that fits int64,
// float32/float64, and Value itself. Anything else fails fast with
// ErrUnsupportedKind so that two distinct sets can never silently collapse
// onto one cache key.
func From(raw map[string]any) (Params, error) {
	entries := make([]Entry, 0, len(raw))
	for k, v := range raw {
		val, err := valueOf(v)
		if err != nil {
			return Params{}, fmt.Errorf("params: key %q: %w", k, err)
		}
		entries = append(entries, Entry{Key: k, Value: val})
	}
	return New(entries...), nil
}

// MustFrom is the panic-on-failure variant of From. Use when the raw map is
// statically known to hold supported kinds.
func MustFrom(raw map[string]any) Params {
	p, err := From(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func valueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return None{}, nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: uint %d overflows int64", ErrUnsupportedKind, v)
		}
		return Int(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%w: uint64 %d overflows int64", ErrUnsupportedKind, v)
		}
		return Int(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKind, raw)
	}
}

// Get returns the value stored under key, or None if the key is absent.
// Absence is not an error at this layer; the caller decides whether a
// missing parameter is tolerable.
func (p Params) Get(key string) Value {
	idx := sort.Search(len(p.entries), func(i int) bool {
		return p.entries[i].Key >= key
	})
	if idx < len(p.entries) && p.entries[idx].Key == key {
		return p.entries[idx].Value
	}
	return None{}
}

// Has reports whether key is present in the set.
func (p Params) Has(key string) bool {
	return !IsNone(p.Get(key))
}

// Len returns the number of present parameters.
func (p Params) Len() int {
	return len(p.entries)
}

// Keys returns the parameter keys in canonical (sorted) order.
func (p Params) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	return keys
}

// CanonicalKey returns the deterministic, order-independent encoding of the
// set. Equal sets share the key; distinct sets never do. The bytes are not
// printable; use it as a map key, not for display.
func (p Params) CanonicalKey() string {
	return p.canon
}
