package position

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name   string
		before *float64
		after  *float64
		want   float64
	}{
		{name: "empty container", want: Baseline},
		{name: "head insert halves first key", after: Ptr(1000), want: 500},
		{name: "tail insert extends by baseline", before: Ptr(2000), want: 3000},
		{name: "midpoint", before: Ptr(1000), after: Ptr(2000), want: 1500},
		{name: "negative bounds", before: Ptr(-10), after: Ptr(-2), want: -6},
		{name: "head insert before negative key", after: Ptr(-10), want: -1010},
		{name: "head insert before zero", after: Ptr(0), want: -1000},
		{name: "bounds whose gap overflows", before: Ptr(-math.MaxFloat64), after: Ptr(math.MaxFloat64), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allocate(tt.before, tt.after))
		})
	}
}

func TestAllocate_StrictlyBetween(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		a := rng.Float64()*1e6 - 5e5
		b := a + rng.Float64()*1e3 + 1e-6
		got := Allocate(&a, &b)
		require.Greater(t, got, a)
		require.Less(t, got, b)
	}

	extremes := [][2]float64{
		{-math.MaxFloat64, math.MaxFloat64},
		{-math.MaxFloat64, 1},
		{-1, math.MaxFloat64},
		{math.MaxFloat64 / 2, math.MaxFloat64},
		{-math.MaxFloat64, -math.MaxFloat64 / 2},
	}
	for _, e := range extremes {
		got := Allocate(&e[0], &e[1])
		assert.Greater(t, got, e[0], "between %g and %g", e[0], e[1])
		assert.Less(t, got, e[1], "between %g and %g", e[0], e[1])
		assert.False(t, Exhausted(e[0], e[1]))
	}
}

func TestAllocate_ScenarioABC(t *testing.T) {
	a := Allocate(nil, nil)
	b := Allocate(&a, nil)
	c := Allocate(&a, &b)

	assert.Equal(t, 1000.0, a)
	assert.Equal(t, 2000.0, b)
	assert.Equal(t, 1500.0, c)

	keys := []float64{b, c, a}
	sort.Float64s(keys)
	assert.Equal(t, []float64{1000, 1500, 2000}, keys)
}

// Inserting at random indices must keep keys in the intended index order.
func TestBetween_RandomInsertsPreserveOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	type entry struct {
		label int
		key   float64
	}
	var seq []entry

	for label := 0; label < 500; label++ {
		index := rng.Intn(len(seq) + 1)
		keys := make([]float64, len(seq))
		for i, e := range seq {
			keys[i] = e.key
		}

		key := Between(keys, index)
		seq = append(seq, entry{})
		copy(seq[index+1:], seq[index:])
		seq[index] = entry{label: label, key: key}
	}

	for i := 1; i < len(seq); i++ {
		require.Less(t, seq[i-1].key, seq[i].key, "keys out of order at index %d", i)
	}
}

func TestBetween_ClampsIndex(t *testing.T) {
	keys := []float64{1000, 2000}
	assert.Equal(t, 500.0, Between(keys, -3))
	assert.Equal(t, 3000.0, Between(keys, 10))
	assert.Equal(t, Baseline, Between(nil, 0))
}

func TestExhausted(t *testing.T) {
	assert.False(t, Exhausted(1000, 2000))
	assert.True(t, Exhausted(2000, 1000))
	assert.True(t, Exhausted(1, 1))

	before, after := 1000.0, 2000.0
	steps := 0
	for !Exhausted(before, after) {
		after = Allocate(&before, &after)
		steps++
	}
	// float64 carries 52 mantissa bits; the gap cannot be halved forever.
	assert.Greater(t, steps, 30)
	assert.Less(t, steps, 80)
}

func TestResequence(t *testing.T) {
	assert.Equal(t, []float64{1000, 2000, 3000}, Resequence(3, DefaultGap))
	assert.Equal(t, []float64{16384, 32768}, Resequence(2, 16384))
	assert.Equal(t, []float64{1000}, Resequence(1, -1))
	assert.Empty(t, Resequence(0, DefaultGap))
}
