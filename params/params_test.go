package params_test

import (
	"testing"

	"github.com/on-the-ground/select_ive_go/params"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalKey_OrderIndependent(t *testing.T) {
	a := params.New(
		params.Entry{Key: "limit", Value: params.Int(10)},
		params.Entry{Key: "query", Value: params.String("x")},
	)
	b := params.New(
		params.Entry{Key: "query", Value: params.String("x")},
		params.Entry{Key: "limit", Value: params.Int(10)},
	)

	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
	assert.Equal(t, []string{"limit", "query"}, a.Keys())
	assert.Equal(t, a.Keys(), b.Keys())
}

func TestCanonicalKey_DistinctSetsDistinctKeys(t *testing.T) {
	cases := []params.Params{
		params.Empty(),
		params.New(params.Entry{Key: "a", Value: params.String("1")}),
		params.New(params.Entry{Key: "a", Value: params.Int(1)}),
		params.New(params.Entry{Key: "a", Value: params.Float(1)}),
		params.New(params.Entry{Key: "a", Value: params.Bool(true)}),
		params.New(params.Entry{Key: "a", Value: params.Bool(false)}),
		params.New(params.Entry{Key: "b", Value: params.Int(1)}),
		params.New(
			params.Entry{Key: "a", Value: params.Int(1)},
			params.Entry{Key: "b", Value: params.Int(2)},
		),
	}

	seen := make(map[string]int)
	for i, p := range cases {
		key := p.CanonicalKey()
		if prev, dup := seen[key]; dup {
			t.Fatalf("cases %d and %d collided on canonical key %q", prev, i, key)
		}
		seen[key] = i
	}
}

// The key boundary must be length-prefixed, not delimiter-based. Two sets
// whose concatenated keys read the same must still encode differently.
func TestCanonicalKey_NoKeyBoundaryCollision(t *testing.T) {
	a := params.New(
		params.Entry{Key: "ab", Value: params.String("c")},
	)
	b := params.New(
		params.Entry{Key: "a", Value: params.String("bc")},
	)

	assert.NotEqual(t, a.CanonicalKey(), b.CanonicalKey())
}

func TestNew_LastEntryWins(t *testing.T) {
	p := params.New(
		params.Entry{Key: "a", Value: params.Int(1)},
		params.Entry{Key: "a", Value: params.Int(2)},
	)

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, params.Int(2), p.Get("a"))
}

func TestNew_DropsNone(t *testing.T) {
	p := params.New(
		params.Entry{Key: "a", Value: params.Int(1)},
		params.Entry{Key: "b", Value: params.None{}},
		params.Entry{Key: "c", Value: nil},
	)

	assert.Equal(t, 1, p.Len())
	assert.Equal(t, []string{"a"}, p.Keys())
	assert.Equal(t, p.CanonicalKey(), params.New(
		params.Entry{Key: "a", Value: params.Int(1)},
	).CanonicalKey())
}

func TestNew_NoneOverwriteRemovesKey(t *testing.T) {
	p := params.New(
		params.Entry{Key: "a", Value: params.Int(1)},
		params.Entry{Key: "a", Value: params.None{}},
	)

	assert.Equal(t, 0, p.Len())
	assert.True(t, params.IsNone(p.Get("a")))
	assert.Equal(t, params.Empty().CanonicalKey(), p.CanonicalKey())
}

func TestGet_MissingKeyIsNone(t *testing.T) {
	p := params.New(params.Entry{Key: "present", Value: params.Bool(true)})

	assert.Equal(t, params.Bool(true), p.Get("present"))
	assert.True(t, p.Has("present"))
	assert.True(t, params.IsNone(p.Get("absent")))
	assert.False(t, p.Has("absent"))
}

func TestFrom_ConvertsSupportedKinds(t *testing.T) {
	p, err := params.From(map[string]any{
		"s":   "hello",
		"i":   42,
		"i8":  int8(-3),
		"u32": uint32(7),
		"f":   3.5,
		"f32": float32(0.5),
		"b":   true,
		"nil": nil,
		"v":   params.String("already"),
	})
	require.NoError(t, err)

	assert.Equal(t, params.String("hello"), p.Get("s"))
	assert.Equal(t, params.Int(42), p.Get("i"))
	assert.Equal(t, params.Int(-3), p.Get("i8"))
	assert.Equal(t, params.Int(7), p.Get("u32"))
	assert.Equal(t, params.Float(3.5), p.Get("f"))
	assert.Equal(t, params.Float(0.5), p.Get("f32"))
	assert.Equal(t, params.Bool(true), p.Get("b"))
	assert.Equal(t, params.String("already"), p.Get("v"))
	assert.True(t, params.IsNone(p.Get("nil")))
	assert.Equal(t, 8, p.Len())
}

func TestFrom_RejectsUnsupportedKind(t *testing.T) {
	_, err := params.From(map[string]any{
		"bad": []int{1, 2, 3},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, params.ErrUnsupportedKind)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestFrom_RejectsUint64Overflow(t *testing.T) {
	_, err := params.From(map[string]any{
		"huge": uint64(1 << 63),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, params.ErrUnsupportedKind)
}

func TestMustFrom_PanicsOnUnsupportedKind(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for unsupported parameter kind")
		}
	}()
	params.MustFrom(map[string]any{"bad": struct{}{}})
}

func TestEmpty(t *testing.T) {
	p := params.Empty()

	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Keys())
	assert.Equal(t, "", p.CanonicalKey())
	assert.True(t, params.IsNone(p.Get("anything")))
}
