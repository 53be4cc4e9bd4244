package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script is a Source returning scripted offsets, in order.
type script struct {
	vals []int
	next int
}

func (s *script) Intn(n int) int {
	if s.next >= len(s.vals) {
		panic(fmt.Sprintf("script exhausted after %d draws", s.next))
	}
	v := s.vals[s.next]
	s.next++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted draw #%d: %d not in [0, %d)", s.next, v, n))
	}
	return v
}

// scripted returns a stream replaying vals; a reset replays them from the start.
func scripted(vals ...int) *Rand {
	return NewRandFrom(0, func(int64) Source { return &script{vals: vals} })
}

func TestPickRange(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Pick(-1, 1)
		if v < -1 || v > 1 {
			t.Fatalf("invalid pick: expected value in [-1, 1], got %d", v)
		}
	}
	assert.Equal(t, 1000, r.Draws())
}

func TestPickSingletonConsumesDraw(t *testing.T) {
	r := scripted(0, 1)
	assert.Equal(t, 4, r.Pick(4, 4))
	assert.Equal(t, 1, r.Draws())
	assert.Equal(t, 6, r.Pick(5, 6))
}

func TestPickInvalidRange(t *testing.T) {
	assert.Panics(t, func() { NewRand(1).Pick(3, 2) })
}

func TestSign(t *testing.T) {
	r := scripted(0, 1)
	assert.Equal(t, 1, r.Sign())
	assert.Equal(t, -1, r.Sign())
}

func TestReset(t *testing.T) {
	r := NewRand(42)
	first := make([]int, 50)
	for i := range first {
		first[i] = r.Pick(0, 1000)
	}
	r.Reset()
	assert.Equal(t, 0, r.Draws())
	for i, want := range first {
		require.Equal(t, want, r.Pick(0, 1000), "draw #%d after reset", i)
	}
	assert.Equal(t, int64(42), r.Seed())
}

func TestMarks(t *testing.T) {
	m := NewMarks(5)
	assert.True(t, m.Add(3))
	assert.False(t, m.Add(3))
	assert.True(t, m.Add(5))
	assert.True(t, m.Has(5))
	m.Clear()
	assert.False(t, m.Has(3))
	assert.False(t, m.Has(5))
	assert.True(t, m.Add(3))
}
