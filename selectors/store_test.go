package selectors_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/on-the-ground/select_ive_go/selectors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStore_LoadOrStoreIsFirstWriterWins(t *testing.T) {
	store := selectors.NewMapStore()

	actual, loaded := store.LoadOrStore("k", "first")
	require.False(t, loaded)
	require.Equal(t, "first", actual)

	actual, loaded = store.LoadOrStore("k", "second")
	assert.True(t, loaded)
	assert.Equal(t, "first", actual)

	v, ok := store.Load("k")
	assert.True(t, ok)
	assert.Equal(t, "first", v)
	assert.Equal(t, 1, store.Len())
}

func TestMapStore_PurgeEmpties(t *testing.T) {
	store := selectors.NewMapStore()
	store.LoadOrStore("a", 1)
	store.LoadOrStore("b", 2)
	require.Equal(t, 2, store.Len())

	store.Purge()

	assert.Equal(t, 0, store.Len())
	_, ok := store.Load("a")
	assert.False(t, ok)
}

func TestMapStore_ConcurrentLoadOrStoreAgreesOnOneValue(t *testing.T) {
	store := selectors.NewMapStore()

	var wg sync.WaitGroup
	winners := make([]any, 16)
	wg.Add(16)
	for i := 0; i < 16; i++ {
		go func(i int) {
			defer wg.Done()
			actual, _ := store.LoadOrStore("k", i)
			winners[i] = actual
		}(i)
	}
	wg.Wait()

	first := winners[0]
	for i, w := range winners {
		assert.Equal(t, first, w, "goroutine %d received a different value", i)
	}
	assert.Equal(t, 1, store.Len())
}

func TestLRUStore_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	store := selectors.NewLRUStore(2, func(key string) {
		evicted = append(evicted, key)
	})

	store.LoadOrStore("a", 1)
	store.LoadOrStore("b", 2)

	// Touch a so that b becomes the eviction candidate.
	_, ok := store.Load("a")
	require.True(t, ok)

	store.LoadOrStore("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, store.Len())
	_, ok = store.Load("b")
	assert.False(t, ok)
	_, ok = store.Load("a")
	assert.True(t, ok)
}

func TestLRUStore_PurgeRunsEvictionCallback(t *testing.T) {
	var evicted []string
	store := selectors.NewLRUStore(4, func(key string) {
		evicted = append(evicted, key)
	})
	store.LoadOrStore("a", 1)
	store.LoadOrStore("b", 2)

	store.Purge()

	assert.Equal(t, 0, store.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, evicted)
}

func TestLRUStore_RejectsNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { selectors.NewLRUStore(0, nil) })
}

func TestShardedStore_SpreadsAndSums(t *testing.T) {
	store := selectors.NewShardedStore(4, selectors.NewMapStore)

	for i := 0; i < 32; i++ {
		key := fmt.Sprintf("key%d", i)
		store.LoadOrStore(key, i)
	}
	assert.Equal(t, 32, store.Len())

	for i := 0; i < 32; i++ {
		key := fmt.Sprintf("key%d", i)
		v, ok := store.Load(key)
		require.True(t, ok, "key %s was lost in routing", key)
		assert.Equal(t, i, v)
	}

	store.Purge()
	assert.Equal(t, 0, store.Len())
}

func TestShardedStore_RejectsZeroShards(t *testing.T) {
	assert.Panics(t, func() { selectors.NewShardedStore(0, selectors.NewMapStore) })
}
