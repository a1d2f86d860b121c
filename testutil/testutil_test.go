package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(4711).Bytes(64)
	b := NewRNG(4711).Bytes(64)
	assert.Equal(t, a, b)

	rng := NewRNG(4711)
	first := rng.Bytes(16)
	rng.Reset()
	assert.Equal(t, first, rng.Bytes(16))
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestRNG_BytesFrom(t *testing.T) {
	rng := NewRNG(1)
	for _, c := range rng.BytesFrom(256, []byte("ab")) {
		assert.Contains(t, []byte("ab"), c)
	}
	n := rng.Intn(10)
	assert.GreaterOrEqual(t, n, 0)
	assert.Less(t, n, 10)
}

func TestReferenceModel(t *testing.T) {
	data := Sequence(6)

	assert.Equal(t, []byte{1, 2, 9, 9, 3, 4, 5, 6}, Insert(data, 2, []byte{9, 9}))
	assert.Equal(t, []byte{1, 2, 5, 6}, Cut(data, 2, 2))
	assert.Equal(t, []byte{1, 2, 3, 4}, Cut(data, 4, 100))
	assert.Equal(t, []byte{1, 0, 0, 2, 3, 4, 5, 6}, Move(data, 1, 2))
	assert.Equal(t, []byte{3, 4, 1, 2, 5, 6}, MoveTo(data, 2, 0, 2))
	assert.Equal(t, []byte{1, 4, 5, 2, 3, 6}, MoveTo(data, 1, 3, 2))

	// Inputs are never modified.
	assert.Equal(t, Sequence(6), data)
}

func TestFindAll(t *testing.T) {
	assert.Equal(t, []int64{0, 2}, FindAll([]byte("aaaaa"), []byte("aa")))
	assert.Equal(t, []int64{1}, FindAll([]byte("xab"), []byte("ab")))
	assert.Nil(t, FindAll([]byte("aab"), []byte("ab")))
	assert.Nil(t, FindAll([]byte("11112"), []byte("112")))
	assert.Equal(t, []int64{3}, FindAll([]byte("abxabc"), []byte("abc")))
	assert.Nil(t, FindAll([]byte("abc"), nil))
	assert.Nil(t, FindAll([]byte("abc"), []byte("abcd")))
}
