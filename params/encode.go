package params

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Value kind tags for the canonical encoding. One byte per value, followed
// by a fixed- or length-prefixed payload, so the encoding is injective.
const (
	tagString = 's'
	tagInt    = 'i'
	tagFloat  = 'f'
	tagBool   = 'b'
)

// canonicalEncode encodes a key-sorted, duplicate-free entry slice into the
// canonical key. Keys are length-prefixed and each value is tag-prefixed, so
// two parameter sets share a key iff they hold the same entries. Insertion
// order never leaks into the encoding because entries are sorted bytewise
// before this runs.
func canonicalEncode(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	var buf bytes.Buffer
	for _, e := range entries {
		writeU32BE(&buf, uint32(len(e.Key)))
		buf.WriteString(e.Key)
		writeValue(&buf, e.Value)
	}
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v Value) {
	switch val := v.(type) {
	case String:
		buf.WriteByte(tagString)
		writeU32BE(buf, uint32(len(val)))
		buf.WriteString(string(val))
	case Int:
		buf.WriteByte(tagInt)
		// The cast preserves the two's complement bit pattern.
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(val))
		buf.Write(b[:])
	case Float:
		buf.WriteByte(tagFloat)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(float64(val)))
		buf.Write(b[:])
	case Bool:
		buf.WriteByte(tagBool)
		if val {
			buf.WriteByte(0x01)
		} else {
			buf.WriteByte(0x00)
		}
	default:
		// None entries are dropped during normalization and Value is sealed,
		// so this is unreachable unless the package itself grows a kind
		// without teaching the encoder about it.
		panic(fmt.Sprintf("params: unencodable value type %T", v))
	}
}

func writeU32BE(buf *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	buf.Write(b[:])
}
