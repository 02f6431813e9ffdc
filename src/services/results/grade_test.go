package results

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGrade(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{80, "A"},
		{79.5, "B"},
		{70, "B"},
		{60, "C"},
		{59.99, "D"},
		{50, "D"},
		{49.99, "F"},
		{0, "F"},
		{150, "A+"},
		{-10, "F"},
		{math.NaN(), "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateGrade(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestCalculateGradeMonotonic(t *testing.T) {
	rank := map[string]int{"A+": 5, "A": 4, "B": 3, "C": 2, "D": 1, "F": 0}

	prev := rank[CalculateGrade(100)]
	for p := 100.0; p >= 0; p -= 0.25 {
		grade := CalculateGrade(p)
		r, ok := rank[grade]
		assert.True(t, ok, "unexpected grade %q", grade)
		assert.LessOrEqual(t, r, prev, "grade went up at %v", p)
		prev = r
	}
}
