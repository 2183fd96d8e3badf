package countmap

import (
	"maps"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Basic(t *testing.T) {
	m, err := New[string](16)
	require.NoError(t, err)

	// Put and Get
	m.Put("foo", 42)

	v, ok := m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, m.Size())
	assert.False(t, m.IsEmpty())

	// Update existing key
	m.Put("foo", 100)

	v, ok = m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 100, v)
	assert.Equal(t, 1, m.Size())

	// Get non-existent key
	_, ok = m.Get("bar")
	assert.False(t, ok)
	assert.False(t, m.ContainsKey("bar"))
	assert.True(t, m.ContainsKey("foo"))

	// Remove returns the held value
	v, ok = m.Remove("foo")
	require.True(t, ok)
	assert.Equal(t, 100, v)
	assert.Equal(t, 0, m.Size())

	_, ok = m.Get("foo")
	assert.False(t, ok)

	// Remove non-existent key
	_, ok = m.Remove("foo")
	assert.False(t, ok)
}

func TestMap_New_Validation(t *testing.T) {
	_, err := New[int](-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New(16, WithLoadFactor[int](0))
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)

	_, err = New(16, WithLoadFactor[int](-0.5))
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)

	_, err = New(16, WithLoadFactor[int](math.NaN()))
	assert.ErrorIs(t, err, ErrInvalidLoadFactor)
}

func TestMap_New_Defaults(t *testing.T) {
	m, err := New[string](0)
	require.NoError(t, err)

	assert.Equal(t, DefaultCapacity, m.Capacity())
	assert.Equal(t, DefaultLoadFactor, m.LoadFactor())
	assert.Equal(t, int(DefaultCapacity*DefaultLoadFactor), m.Stats().Threshold)
}

func TestMap_New_RoundsCapacity(t *testing.T) {
	m, err := New[int](100)
	require.NoError(t, err)

	assert.Equal(t, 128, m.Capacity())
}

func TestMap_WithHashFunc(t *testing.T) {
	customHash := func(k int) uint64 {
		return uint64(k * 31)
	}

	m, err := New(16, WithHashFunc[int](customHash))
	require.NoError(t, err)

	m.Put(1, 100)
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 100, v)
}

func TestMap_ContainsValue(t *testing.T) {
	m, err := New[string](16)
	require.NoError(t, err)

	m.Put("a", 1)
	m.Put("b", 2)

	assert.True(t, m.ContainsValue(1))
	assert.True(t, m.ContainsValue(2))
	assert.False(t, m.ContainsValue(3))
}

func TestMap_PutAll(t *testing.T) {
	a, err := New[string](16)
	require.NoError(t, err)
	a.Put("x", 1)
	a.Put("y", 2)

	b, err := New[string](16)
	require.NoError(t, err)
	b.Put("y", 9)
	b.Put("z", 3)

	a.PutAll(b)

	assert.Equal(t, 3, a.Size())
	for key, want := range map[string]int{"x": 1, "y": 9, "z": 3} {
		v, ok := a.Get(key)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	// b is untouched
	assert.Equal(t, 2, b.Size())
	v, ok := b.Get("y")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestMap_Clear(t *testing.T) {
	m, err := New[int](16)
	require.NoError(t, err)

	for i := range 10 {
		m.Put(i, i)
	}

	capacity := m.Capacity()
	m.Clear()

	assert.Equal(t, 0, m.Size())
	assert.True(t, m.IsEmpty())
	assert.Equal(t, capacity, m.Capacity())

	for i := range 10 {
		assert.False(t, m.ContainsKey(i))
	}

	// Still usable after clearing
	m.Put(1, 1)
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMap_NewFrom(t *testing.T) {
	src, err := New[string](16)
	require.NoError(t, err)
	src.Put("a", 1)
	src.Put("b", 2)

	dst := NewFrom(src)

	assert.Equal(t, 2, dst.Size())
	for key, want := range map[string]int{"a": 1, "b": 2} {
		v, ok := dst.Get(key)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	// The copies are independent
	dst.Put("c", 3)
	assert.False(t, src.ContainsKey("c"))

	src.Put("a", 100)
	v, ok := dst.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMap_FromEntries(t *testing.T) {
	m, err := FromEntries(16, maps.All(map[string]int{"a": 1, "b": 2, "c": 3}))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		v, ok := m.Get(key)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	_, err = FromEntries(-1, maps.All(map[string]int{}))
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestMap_String(t *testing.T) {
	m, err := New[string](16)
	require.NoError(t, err)

	assert.Equal(t, "{}", m.String())

	m.Put("a", 1)
	assert.Equal(t, "{a=1}", m.String())
}
