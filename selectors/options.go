package selectors

import (
	"go.uber.org/zap"

	"github.com/on-the-ground/select_ive_go/equality"
)

// Option configures a combinator built by Combine.
type Option func(*config)

type config struct {
	cached   bool
	shallow  bool
	deep     bool
	name     string
	capacity int
	shards   int
	store    InstanceStore
	logger   *zap.Logger
	sink     chan<- ReadEvent
}

func newConfig(opts ...Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}

// resultEqual decides whether a recomputed result may be collapsed onto the
// previous one. Identity is always checked first; the shallow strategy, when
// configured, settles the question before deep is ever consulted.
func (c config) resultEqual(next, prev any) bool {
	if equality.Same(next, prev) {
		return true
	}
	if c.shallow {
		return equality.Shallow(next, prev)
	}
	if c.deep {
		return equality.Deep(next, prev)
	}
	return false
}

// Cached enables memoization with identity comparison only: reads with
// unchanged dependencies reuse the previous result, recomputed results are
// kept unless identical to the previous one.
func Cached() Option {
	return func(c *config) {
		c.cached = true
	}
}

// WithShallowEquality enables memoization and additionally collapses a
// recomputed result onto the previous one when the two are one-level
// structurally equal. Use for combiners that allocate a fresh collection of
// unchanged elements on every call. Takes precedence over WithDeepEquality
// when both are set.
func WithShallowEquality() Option {
	return func(c *config) {
		c.cached = true
		c.shallow = true
	}
}

// WithDeepEquality enables memoization and additionally collapses a
// recomputed result onto the previous one when the two serialize
// identically. The comparison cost is proportional to the result size;
// prefer WithShallowEquality unless results nest.
func WithDeepEquality() Option {
	return func(c *config) {
		c.cached = true
		c.deep = true
	}
}

// WithName names the combinator for logs, metrics, and read events. Unnamed
// combinators report a short form of their generated identity.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithCapacity bounds the instance cache to n entries with least-recently
// bound eviction, and implies Cached. An evicted argument set loses its
// memoization history; rebinding it starts fresh, so results that were
// referentially stable across binds may be reallocated once per eviction.
// Without this option the cache grows without bound for the combinator's
// lifetime, which preserves stability indefinitely but leaks instances when
// distinct argument sets are unbounded.
func WithCapacity(n int) Option {
	if n <= 0 {
		panic("capacity should be greater than 0")
	}
	return func(c *config) {
		c.cached = true
		c.capacity = n
	}
}

// WithShards splits the instance cache into n independently locked shards,
// routed by argument-set hash, and implies Cached. With WithCapacity the
// configured capacity applies per shard.
func WithShards(n int) Option {
	if n <= 0 {
		panic("number of shards cannot be 0")
	}
	return func(c *config) {
		c.cached = true
		c.shards = n
	}
}

// WithStore supplies the instance cache implementation directly, and implies
// Cached. The store decides retention; WithCapacity and WithShards are
// ignored in its favor. Stores that drop or duplicate entries weaken the
// bound-instance reuse guarantee accordingly.
func WithStore(store InstanceStore) Option {
	if store == nil {
		panic("store cannot be nil")
	}
	return func(c *config) {
		c.cached = true
		c.store = store
	}
}

// WithLogger routes the combinator's instance lifecycle logs to logger
// instead of discarding them.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithEventSink emits one ReadEvent per memoized read to sink. Sends never
// block: when the sink is full the event is dropped, so a slow consumer
// observes a sample, not backpressure.
func WithEventSink(sink chan<- ReadEvent) Option {
	return func(c *config) {
		c.sink = sink
	}
}
