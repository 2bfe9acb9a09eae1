package cache

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3c/specfacts/pkg/types"
)

func extract(spec string) *types.SpecExtract {
	return &types.SpecExtract{Spec: spec}
}

func TestKey(t *testing.T) {
	a := Key([]byte("interface A { };"))
	b := Key([]byte("interface B { };"))

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Key([]byte("interface A { };")))
}

func TestExtractCache_Basic(t *testing.T) {
	c := New(Options{MaxSize: 3})

	c.Set("a", extract("spec_a"))
	c.Set("b", extract("spec_b"))
	c.Set("c", extract("spec_c"))

	assert.Equal(t, 3, c.Len())

	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "spec_a", got.Spec)

	got, found = c.Get("b")
	require.True(t, found)
	assert.Equal(t, "spec_b", got.Spec)
}

func TestExtractCache_LRU_Eviction(t *testing.T) {
	c := New(Options{MaxSize: 3})

	c.Set("a", extract("spec_a"))
	c.Set("b", extract("spec_b"))
	c.Set("c", extract("spec_c"))

	// Access 'a' to make it most recently used
	c.Get("a")

	// Add new item - should evict 'b' (least recently used)
	c.Set("d", extract("spec_d"))

	assert.Equal(t, 3, c.Len())

	_, found := c.Get("b")
	assert.False(t, found, "b should have been evicted")

	_, found = c.Get("a")
	assert.True(t, found, "a should still be present")

	_, found = c.Get("c")
	assert.True(t, found, "c should still be present")

	_, found = c.Get("d")
	assert.True(t, found, "d should be present")
}

func TestExtractCache_Delete(t *testing.T) {
	c := New(Options{MaxSize: 10})

	c.Set("a", extract("spec_a"))
	c.Set("b", extract("spec_b"))

	c.Delete("a")

	assert.Equal(t, 1, c.Len())

	_, found := c.Get("a")
	assert.False(t, found)

	got, found := c.Get("b")
	require.True(t, found)
	assert.Equal(t, "spec_b", got.Spec)
}

func TestExtractCache_Clear(t *testing.T) {
	c := New(Options{MaxSize: 10})

	c.Set("a", extract("spec_a"))
	c.Set("b", extract("spec_b"))

	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestExtractCache_SaveLoad(t *testing.T) {
	c := New(Options{MaxSize: 10})
	c.Set("key1", &types.SpecExtract{
		Spec:     "dom.html",
		Obsolete: true,
		Errors:   []types.ExtractError{{Source: "css", Message: "bad grammar"}},
	})
	c.Set("key2", extract("fetch.html"))

	var buf bytes.Buffer
	err := c.Save(&buf)
	require.NoError(t, err)

	c2 := New(Options{MaxSize: 10})
	err = c2.Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, 2, c2.Len())

	got, found := c2.Get("key1")
	require.True(t, found)
	assert.Equal(t, "dom.html", got.Spec)
	assert.True(t, got.Obsolete)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "bad grammar", got.Errors[0].Message)
}

func TestExtractCache_PersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extracts.msgpack")

	c := New(Options{MaxSize: 10})
	c.Set("k", extract("spec"))
	require.NoError(t, PersistToFile(c, path))

	c2 := New(Options{MaxSize: 10})
	require.NoError(t, LoadFromFile(c2, path))
	assert.Equal(t, 1, c2.Len())

	// a missing cache file is not an error
	c3 := New(Options{MaxSize: 10})
	require.NoError(t, LoadFromFile(c3, filepath.Join(t.TempDir(), "missing")))
	assert.Equal(t, 0, c3.Len())
}

func TestExtractCache_MaxBytes(t *testing.T) {
	c := New(Options{MaxBytes: 100})

	c.Set("a", extract("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
	c.Set("b", extract("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"))
	c.Set("c", extract("cccccccccccccccccccccccccccccc"))

	// Should have evicted at least one
	assert.Less(t, c.Len(), 3)
}

func TestExtractCache_Update(t *testing.T) {
	c := New(Options{MaxSize: 10})

	c.Set("a", extract("old"))
	c.Set("a", extract("new"))

	assert.Equal(t, 1, c.Len())
	got, found := c.Get("a")
	require.True(t, found)
	assert.Equal(t, "new", got.Spec)
}

func TestExtractCache_OnEvict(t *testing.T) {
	var evicted []string
	c := New(Options{
		MaxSize: 1,
		OnEvict: func(key string, _ *types.SpecExtract) {
			evicted = append(evicted, key)
		},
	})

	c.Set("a", extract("spec_a"))
	c.Set("b", extract("spec_b"))

	assert.Equal(t, []string{"a"}, evicted)
}
