package selectors

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// InstanceStore maps canonical argument encodings to memoized selector
// instances. A combinator owns exactly one store and is its only writer.
//
// Load and LoadOrStore must be safe for concurrent use. LoadOrStore must be
// atomic: when two binders race on one key, exactly one value wins and both
// receive it, otherwise the bound-instance reuse guarantee breaks.
type InstanceStore interface {
	Load(key string) (value any, ok bool)
	LoadOrStore(key string, value any) (actual any, loaded bool)
	Len() int
	Purge()
}

var (
	_ InstanceStore = &mapStore{}
	_ InstanceStore = &lruStore{}
	_ InstanceStore = &shardedStore{}
)

// mapStore retains every instance for the lifetime of the combinator. This
// is the default: it never weakens referential stability, at the price of
// unbounded growth when distinct argument sets are unbounded.
type mapStore struct {
	m    sync.Map
	size atomic.Int64
}

// NewMapStore returns an unbounded store backed by a sync.Map.
func NewMapStore() InstanceStore {
	return &mapStore{}
}

func (s *mapStore) Load(key string) (any, bool) {
	return s.m.Load(key)
}

func (s *mapStore) LoadOrStore(key string, value any) (any, bool) {
	actual, loaded := s.m.LoadOrStore(key, value)
	if !loaded {
		s.size.Add(1)
	}
	return actual, loaded
}

func (s *mapStore) Len() int {
	return int(s.size.Load())
}

func (s *mapStore) Purge() {
	s.m.Range(func(k, _ any) bool {
		s.m.Delete(k)
		return true
	})
	s.size.Store(0)
}

// lruStore bounds retention to a fixed number of instances, evicting the
// least recently bound. onEvict, when set, runs synchronously under the
// store lock and must not call back into the store.
type lruStore struct {
	mu  sync.Mutex
	lru *simplelru.LRU[string, any]
}

// NewLRUStore returns a bounded store evicting least-recently-bound entries
// beyond capacity.
func NewLRUStore(capacity int, onEvict func(key string)) InstanceStore {
	if capacity <= 0 {
		panic("capacity should be greater than 0")
	}
	var cb simplelru.EvictCallback[string, any]
	if onEvict != nil {
		cb = func(key string, _ any) { onEvict(key) }
	}
	lru, err := simplelru.NewLRU[string, any](capacity, cb)
	if err != nil {
		panic(err)
	}
	return &lruStore{lru: lru}
}

func (s *lruStore) Load(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Get(key)
}

func (s *lruStore) LoadOrStore(key string, value any) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.lru.Get(key); ok {
		return prev, true
	}
	s.lru.Add(key, value)
	return value, false
}

func (s *lruStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

func (s *lruStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Purge()
}

// shardedStore routes keys across independent child stores by hash,
// spreading lock contention under concurrent binding.
type shardedStore struct {
	shards []InstanceStore
}

// NewShardedStore returns a store of numShards children built by newShard,
// with keys routed by xxhash.
func NewShardedStore(numShards int, newShard func() InstanceStore) InstanceStore {
	if numShards <= 0 {
		panic("number of shards cannot be 0")
	}
	shards := make([]InstanceStore, numShards)
	for i := range shards {
		shards[i] = newShard()
	}
	return &shardedStore{shards: shards}
}

func (s *shardedStore) shard(key string) InstanceStore {
	if len(s.shards) == 1 {
		return s.shards[0]
	}
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

func (s *shardedStore) Load(key string) (any, bool) {
	return s.shard(key).Load(key)
}

func (s *shardedStore) LoadOrStore(key string, value any) (any, bool) {
	return s.shard(key).LoadOrStore(key, value)
}

func (s *shardedStore) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

func (s *shardedStore) Purge() {
	for _, shard := range s.shards {
		shard.Purge()
	}
}
