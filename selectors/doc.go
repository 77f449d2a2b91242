// Package selectors provides parameterized, memoizing derivations over an
// application state tree.
//
// Select-ive Go models a derivation as a two-stage function: binding an
// argument set yields a state selector, and applying a state value yields a
// result. Results are cached so that repeated reads against unchanged inputs
// return the exact same value, identity included, which lets consumers detect
// change with a single comparison.
//
// # What is a selector?
//
// A selector is any derivation that:
//   - reads from a single externally owned state value,
//   - may be specialized by a set of named call-time parameters,
//   - and is pure given those two inputs.
//
// # The three caching layers
//
// Reads pass through three independent layers, cheapest first:
//   - Bound-instance reuse: binding equal parameter sets returns the same
//     stateful instance, so memoization survives across handles.
//   - Dependency memoization: a read whose dependency results are pairwise
//     identical to the previous read returns the previous result without
//     invoking the combiner.
//   - Result collapsing: a recomputed result that the configured equality
//     strategy judges equal to the previous one is discarded in favor of the
//     previous value, preserving its identity.
//
// # How does it work?
//
// Selectors are composed from two leaves, Root and Argument, with Combine
// and its typed arity wrappers. Caching is opt-in per combinator through
// options such as Cached, WithShallowEquality, and WithCapacity; a
// combinator built with no caching options stays a plain function call.
//
// This package exports:
//   - Leaf constructors (Root, Argument)
//   - Combinators (Combine, Combine1 through Combine4)
//   - Instance stores (NewMapStore, NewLRUStore, NewShardedStore)
//   - Read instrumentation (ReadEvent, WithEventSink, WithLogger)
//
// Example:
//
//	todos := selectors.Root[AppState]()
//	messages := selectors.Combine1(todos, func(s AppState) []string {
//	    return incompleteMessages(s)
//	}, selectors.WithShallowEquality())
//
//	read := messages.Bind(params.Empty())
//	first := read(state)
//	second := read(state) // same slice, identity included
package selectors
