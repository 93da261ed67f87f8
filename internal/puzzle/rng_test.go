package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGSameSeedSameSequence(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000), "draw %d", i)
	}
}

func TestRNGDifferentSeedsDiverge(t *testing.T) {
	a := NewRNG(1)
	b := NewRNG(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.Intn(1_000_000) != b.Intn(1_000_000) {
			same = false
			break
		}
	}
	assert.False(t, same, "distinct seeds should not replay each other")
}

func TestRNGIntnBounds(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := r.Intn(13)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 13)
	}
}

func TestRNGFloat64Range(t *testing.T) {
	r := NewRNG(99)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRNGShuffleDeterministic(t *testing.T) {
	shuffled := func(seed int64) []int {
		vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		r := NewRNG(seed)
		r.Shuffle(len(vals), func(i, j int) {
			vals[i], vals[j] = vals[j], vals[i]
		})
		return vals
	}

	assert.Equal(t, shuffled(5), shuffled(5))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, shuffled(5))
}
