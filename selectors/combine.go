package selectors

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/select_ive_go/params"
	"github.com/on-the-ground/select_ive_go/shared/helper"
)

// Combine wires input selectors, a combining function, and caching options
// into a new parameterized selector. The combiner receives the input results
// in declared order.
//
// With no caching options the returned selector is the deliberate fast path:
// every bind yields a fresh state selector that evaluates the inputs and
// the combiner uncached, with no instance and no argument cache. Any of
// Cached, WithShallowEquality, WithDeepEquality, WithCapacity, WithShards,
// or WithStore switches on the memoized path of Bind.
func Combine[S, R any](inputs []Input[S], combiner func(deps []any) R, opts ...Option) Selector[S, R] {
	if combiner == nil {
		panic("combiner cannot be nil")
	}
	cfg := newConfig(opts...)
	id := uuid.New().String()
	name := cfg.name
	if name == "" {
		name = "selector-" + id[:8]
	}
	fixed := make([]Input[S], len(inputs))
	copy(fixed, inputs)

	if !cfg.cached {
		return Selector[S, R]{
			id:   id,
			name: name,
			bind: func(args params.Params) StateSelector[S, R] {
				return func(state S) R {
					return combiner(evaluate(fixed, args, state))
				}
			},
		}
	}

	m := &memoized[S, R]{
		id:     id,
		name:   name,
		inputs: fixed,
		fn:     combiner,
		cfg:    cfg,
	}
	m.store = newStoreFor(cfg, func(key string) {
		recordEviction(name)
		cfg.logger.Debug("selector instance evicted",
			zap.String("selector", name),
			zap.String("params", fingerprint(key)),
		)
	})
	return Selector[S, R]{
		id:   id,
		name: name,
		bind: m.bind,
		size: m.store.Len,
		drop: m.store.Purge,
	}
}

func newStoreFor(cfg config, onEvict func(key string)) InstanceStore {
	if cfg.store != nil {
		return cfg.store
	}
	newShard := func() InstanceStore {
		if cfg.capacity > 0 {
			return NewLRUStore(cfg.capacity, onEvict)
		}
		return NewMapStore()
	}
	if cfg.shards > 1 {
		return NewShardedStore(cfg.shards, newShard)
	}
	return newShard()
}

// depAs converts one evaluated dependency back to its declared type. A nil
// dependency becomes the zero value, mirroring how an absent argument flows
// through as params.None rather than failing the read.
func depAs[D any](dep any) D {
	if dep == nil {
		var zero D
		return zero
	}
	return helper.MustAs[D](dep)
}

// Combine1 is Combine for one typed input.
func Combine1[S, D1, R any](
	in1 Selector[S, D1],
	combiner func(D1) R,
	opts ...Option,
) Selector[S, R] {
	return Combine(
		[]Input[S]{in1},
		func(deps []any) R {
			return combiner(depAs[D1](deps[0]))
		},
		opts...,
	)
}

// Combine2 is Combine for two typed inputs.
func Combine2[S, D1, D2, R any](
	in1 Selector[S, D1],
	in2 Selector[S, D2],
	combiner func(D1, D2) R,
	opts ...Option,
) Selector[S, R] {
	return Combine(
		[]Input[S]{in1, in2},
		func(deps []any) R {
			return combiner(depAs[D1](deps[0]), depAs[D2](deps[1]))
		},
		opts...,
	)
}

// Combine3 is Combine for three typed inputs.
func Combine3[S, D1, D2, D3, R any](
	in1 Selector[S, D1],
	in2 Selector[S, D2],
	in3 Selector[S, D3],
	combiner func(D1, D2, D3) R,
	opts ...Option,
) Selector[S, R] {
	return Combine(
		[]Input[S]{in1, in2, in3},
		func(deps []any) R {
			return combiner(depAs[D1](deps[0]), depAs[D2](deps[1]), depAs[D3](deps[2]))
		},
		opts...,
	)
}

// Combine4 is Combine for four typed inputs.
func Combine4[S, D1, D2, D3, D4, R any](
	in1 Selector[S, D1],
	in2 Selector[S, D2],
	in3 Selector[S, D3],
	in4 Selector[S, D4],
	combiner func(D1, D2, D3, D4) R,
	opts ...Option,
) Selector[S, R] {
	return Combine(
		[]Input[S]{in1, in2, in3, in4},
		func(deps []any) R {
			return combiner(depAs[D1](deps[0]), depAs[D2](deps[1]), depAs[D3](deps[2]), depAs[D4](deps[3]))
		},
		opts...,
	)
}
