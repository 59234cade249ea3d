package levenshtein

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		s, t string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"gmail.com", "gmail.com", 0},
		{"gmai.com", "gmail.com", 1},
		{"gmial.com", "gmail.com", 2},
		{"yaho.com", "yahoo.com", 1},
		{"hotmial.com", "hotmail.com", 2},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.s, tt.t), "Distance(%q, %q)", tt.s, tt.t)
	}
}

func TestDistanceWithin(t *testing.T) {
	d, ok := DistanceWithin("gmai.com", "gmail.com", 2)
	assert.True(t, ok)
	assert.Equal(t, 1, d)

	// Length difference alone exceeds the bound
	_, ok = DistanceWithin("a.io", "protonmail.com", 2)
	assert.False(t, ok)

	// Distance 3 with bound 2
	_, ok = DistanceWithin("kitten", "sitting", 2)
	assert.False(t, ok)

	_, ok = DistanceWithin("x", "y", -1)
	assert.False(t, ok)
}
