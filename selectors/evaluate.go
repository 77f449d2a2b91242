package selectors

import (
	"github.com/on-the-ground/select_ive_go/equality"
	"github.com/on-the-ground/select_ive_go/params"
)

// evaluate applies each input to (args, state) in declared order and returns
// the results as an ordered sequence. It never caches; deciding whether the
// results warrant recomputation is the instance's job, one layer up.
func evaluate[S any](inputs []Input[S], args params.Params, state S) []any {
	deps := make([]any, len(inputs))
	for i, in := range inputs {
		deps[i] = in.evalAny(args, state)
	}
	return deps
}

// sameDeps reports whether two dependency sequences are pairwise identical.
func sameDeps(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equality.Same(a[i], b[i]) {
			return false
		}
	}
	return true
}
