package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

func iv(startHour, endHour int) Interval {
	return Interval{Start: at(startHour), End: at(endHour)}
}

func TestNewInterval(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r, err := NewInterval(at(0), at(2))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, r.Duration())
	})

	t.Run("End equals start", func(t *testing.T) {
		_, err := NewInterval(at(1), at(1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := NewInterval(at(2), at(1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("Normalizes to UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		r, err := NewInterval(at(0).In(loc), at(1).In(loc))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, r.Start.Location())
		assert.True(t, r.Start.Equal(at(0)))
	})
}

func TestInterval_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		overlaps bool
		adjacent bool
		aCoversB bool
	}{
		{"disjoint", iv(0, 2), iv(3, 5), false, false, false},
		{"touching", iv(0, 2), iv(2, 4), false, true, false},
		{"partial overlap", iv(0, 3), iv(2, 5), true, true, false},
		{"contains", iv(0, 10), iv(2, 5), true, true, true},
		{"equal", iv(2, 5), iv(2, 5), true, true, true},
		{"shared start", iv(2, 5), iv(2, 4), true, true, true},
		{"shared end", iv(2, 5), iv(3, 5), true, true, true},
		{"inside", iv(3, 4), iv(2, 5), true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a), "overlap is symmetric")
			assert.Equal(t, tt.adjacent, tt.a.AdjacentOrOverlapping(tt.b))
			assert.Equal(t, tt.adjacent, tt.b.AdjacentOrOverlapping(tt.a), "adjacency is symmetric")
			assert.Equal(t, tt.aCoversB, tt.a.Covers(tt.b))
		})
	}
}

func TestInterval_CoversImpliesOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := randomInterval(rng)
		b := randomInterval(rng)
		if a.Covers(b) {
			assert.True(t, a.Overlaps(b), "%s covers %s", a, b)
		}
		assert.True(t, a.Covers(a))
	}
}

func TestInterval_Union(t *testing.T) {
	assert.True(t, iv(0, 5).Equal(iv(0, 2).Union(iv(3, 5))))
	assert.True(t, iv(0, 5).Equal(iv(3, 5).Union(iv(0, 2))))
	assert.True(t, iv(1, 4).Equal(iv(1, 4).Union(iv(2, 3))))
}

func randomInterval(rng *rand.Rand) Interval {
	start := rng.Intn(48)
	length := rng.Intn(12) + 1
	return iv(start, start+length)
}
