// Package jsonstate provides leaf selectors over a JSON document used as the
// state tree. State is the raw document text; projections address it with
// gjson path syntax.
//
// Raw is the projection to prefer as a combinator input: it yields the
// addressed subtree's text, a plain string, so the dependency comparison one
// layer up sees an unchanged subtree as unchanged even when the enclosing
// document was rebuilt.
package jsonstate

import (
	"github.com/tidwall/gjson"

	"github.com/on-the-ground/select_ive_go/params"
	"github.com/on-the-ground/select_ive_go/selectors"
)

// Raw projects the raw JSON text of the subtree at path. Missing paths
// project as the empty string.
func Raw(path string) selectors.Selector[string, string] {
	return selectors.Func("jsonstate.raw("+path+")", func(doc string) string {
		return gjson.Get(doc, path).Raw
	})
}

// Value projects the decoded value at path: a string, float64, bool, nil,
// or a freshly decoded map or slice. Decoded collections are new
// allocations on every read, so composite results built from them want a
// structural equality option on the combinator above.
func Value(path string) selectors.Selector[string, any] {
	return selectors.Func("jsonstate.value("+path+")", func(doc string) any {
		return gjson.Get(doc, path).Value()
	})
}

// Exists projects whether path addresses anything in the document.
func Exists(path string) selectors.Selector[string, bool] {
	return selectors.Func("jsonstate.exists("+path+")", func(doc string) bool {
		return gjson.Get(doc, path).Exists()
	})
}

// ValueAt is Value with the path supplied at bind time under pathKey in the
// argument set. Binding without a string value at pathKey yields nil for
// every state.
func ValueAt(pathKey string) selectors.Selector[string, any] {
	return selectors.New("jsonstate.valueAt("+pathKey+")", func(args params.Params) selectors.StateSelector[string, any] {
		p, ok := args.Get(pathKey).(params.String)
		if !ok {
			return func(string) any { return nil }
		}
		path := string(p)
		return func(doc string) any {
			return gjson.Get(doc, path).Value()
		}
	})
}

// Strings derives the array of strings at path with referential stability:
// reads keep returning the same slice until the subtree's text changes, and
// a changed subtree that still holds the same strings keeps the previous
// slice as well. Non-array subtrees follow gjson semantics, projecting as a
// single-element slice.
func Strings(path string, opts ...selectors.Option) selectors.Selector[string, []string] {
	return selectors.Combine1(
		Raw(path),
		func(raw string) []string {
			results := gjson.Parse(raw).Array()
			out := make([]string, 0, len(results))
			for _, r := range results {
				out = append(out, r.String())
			}
			return out
		},
		append([]selectors.Option{
			selectors.WithShallowEquality(),
			selectors.WithName("jsonstate.strings(" + path + ")"),
		}, opts...)...,
	)
}
