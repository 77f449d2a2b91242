package params

// Value is one call-time parameter value. Concrete types:
//
//   - String
//   - Int
//   - Float
//   - Bool
//   - None (the absent parameter)
//
// The set is closed: only types in this package implement Value, so every
// parameter set has a total canonical encoding and the cache key can never
// fail to build.
type Value interface {
	value() // sealed, only types in this package implement Value
}

// String is a string parameter value.
type String string

// Int is a signed 64-bit integer parameter value.
type Int int64

// Float is a 64-bit floating point parameter value.
type Float float64

// Bool is a boolean parameter value.
type Bool bool

// None marks a parameter that is absent from the set. Looking up a missing
// key yields None; storing None under a key is the same as not storing the
// key at all.
type None struct{}

func (String) value() {}
func (Int) value()    {}
func (Float) value()  {}
func (Bool) value()   {}
func (None) value()   {}

// IsNone reports whether v is the absent value.
func IsNone(v Value) bool {
	_, none := v.(None)
	return none
}
