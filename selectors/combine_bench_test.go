package selectors_test

import (
	"testing"

	"github.com/on-the-ground/select_ive_go/params"
	"github.com/on-the-ground/select_ive_go/selectors"
)

func sumOf(s []int) int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

func benchState() []int {
	state := make([]int, 1024)
	for i := range state {
		state[i] = i
	}
	return state
}

func BenchmarkUncachedSum(b *testing.B) {
	sel := selectors.Combine1(selectors.Root[[]int](), sumOf)
	read := sel.Bind(params.Empty())
	state := benchState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = read(state)
	}
}

func BenchmarkMemoizedSum(b *testing.B) {
	sel := selectors.Combine1(selectors.Root[[]int](), sumOf, selectors.Cached())
	read := sel.Bind(params.Empty())
	state := benchState()
	read(state) // prime the instance

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = read(state)
	}
}

func BenchmarkBindExistingInstance(b *testing.B) {
	sel := selectors.Combine1(
		selectors.Argument[[]int]("k"),
		func(v params.Value) params.Value { return v },
		selectors.Cached(),
	)
	args := params.MustFrom(map[string]any{"k": "hot"})
	sel.Bind(args)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sel.Bind(args)
	}
}
