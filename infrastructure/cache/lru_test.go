package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceLRU_SetGet(t *testing.T) {
	// Arrange
	lru := NewNamespaceLRU(10)

	// Act
	lru.Set("NS", "key", "value")
	got, found := lru.Get("NS", "key")

	// Assert
	assert.True(t, found)
	assert.Equal(t, "value", got)
}

func TestNamespaceLRU_NamespacesAreIsolated(t *testing.T) {
	// Arrange
	lru := NewNamespaceLRU(10)
	lru.Set("A", "key", "from-a")
	lru.Set("B", "key", "from-b")

	// Act
	a, foundA := lru.Get("A", "key")
	b, foundB := lru.Get("B", "key")

	// Assert
	assert.True(t, foundA)
	assert.True(t, foundB)
	assert.Equal(t, "from-a", a)
	assert.Equal(t, "from-b", b)
}

func TestNamespaceLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	// Arrange
	lru := NewNamespaceLRU(2)
	lru.Set("NS", "first", 1)
	lru.Set("NS", "second", 2)

	// Reading promotes "first", so "second" is now the eviction candidate
	_, found := lru.Get("NS", "first")
	assert.True(t, found)

	// Act
	lru.Set("NS", "third", 3)

	// Assert
	_, found = lru.Get("NS", "second")
	assert.False(t, found)
	_, found = lru.Get("NS", "first")
	assert.True(t, found)
	assert.Equal(t, 2, lru.Size())
}

func TestNamespaceLRU_ConcurrentReaders(t *testing.T) {
	// Arrange: Get promotes entries, so concurrent reads exercise the queue
	// mutation under the race detector
	lru := NewNamespaceLRU(100)
	for i := 0; i < 50; i++ {
		lru.Set("NS", fmt.Sprintf("key-%d", i), i)
	}

	// Act
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10000; i++ {
				lru.Get("NS", fmt.Sprintf("key-%d", i%50))
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, 50, lru.Size())
}

func TestNamespaceLRU_ConcurrentReadWrite(t *testing.T) {
	// Arrange
	lru := NewNamespaceLRU(50)

	// Act: writers churn the queue while readers promote entries
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				lru.Set("NS", fmt.Sprintf("key-%d", i%100), g)
			}
		}(g)
		go func() {
			defer wg.Done()
			for i := 0; i < 5000; i++ {
				lru.Get("NS", fmt.Sprintf("key-%d", i%100))
			}
		}()
	}
	wg.Wait()

	// Assert: the queue is intact and bounded
	assert.LessOrEqual(t, lru.Size(), 50)
	assert.Greater(t, lru.Size(), 0)
}
