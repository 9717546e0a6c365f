package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	r := New[string, int]()
	assert.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
}

func TestRegisterAndGet(t *testing.T) {
	r := New[string, int]()

	r.Register("one", 1)
	r.Register("two", 2)

	v, ok := r.Get("one")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = r.Get("three")
	assert.False(t, ok)
	assert.Equal(t, 0, v) // zero value
}

func TestRegisterOverwrite(t *testing.T) {
	r := New[string, string]()

	r.Register("key", "old")
	r.Register("key", "new")

	v, ok := r.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, r.Len())
}

func TestHasAndDelete(t *testing.T) {
	r := New[string, int]()

	r.Register("key", 42)
	assert.True(t, r.Has("key"))

	r.Delete("key")
	assert.False(t, r.Has("key"))

	// Deleting a missing key is a no-op.
	r.Delete("key")
	assert.Equal(t, 0, r.Len())
}

func TestKeys(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	assert.ElementsMatch(t, []string{"a", "b", "c"}, r.Keys())
}

func TestRangeSnapshot(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)

	visited := 0
	r.Range(func(k string, v int) bool {
		visited++
		// Mutation during iteration must not affect this pass.
		r.Delete("a")
		r.Delete("b")
		return true
	})

	assert.Equal(t, 2, visited)
	assert.Equal(t, 0, r.Len())
}

func TestRangeEarlyStop(t *testing.T) {
	r := New[string, int]()
	r.Register("a", 1)
	r.Register("b", 2)
	r.Register("c", 3)

	visited := 0
	r.Range(func(k string, v int) bool {
		visited++
		return false
	})

	assert.Equal(t, 1, visited)
}

func TestConcurrentRegisterAndGet(t *testing.T) {
	r := New[int, int]()

	var wg sync.WaitGroup
	n := 500

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			r.Register(val, val*2)
		}(i)
	}

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			// May or may not exist yet; must never block or corrupt.
			if v, ok := r.Get(val); ok {
				assert.Equal(t, val*2, v)
			}
		}(i)
	}

	wg.Wait()
	assert.Equal(t, n, r.Len())
}
