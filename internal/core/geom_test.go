package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(11, 1, 58, 12)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 40, 6, true},
		{"top-left cell", 11, 1, true},
		{"last cell", 68, 12, true},
		{"right edge is exclusive", 69, 6, false},
		{"bottom edge is exclusive", 40, 13, false},
		{"border column", 10, 6, false},
		{"border row", 40, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if r.Right() != 69 || r.Bottom() != 13 {
		t.Errorf("edges = (%d, %d), expected (69, 13)", r.Right(), r.Bottom())
	}
}

func TestRectEmpty(t *testing.T) {
	if NewRect(0, 0, 1, 1).Empty() {
		t.Error("1x1 rect reported empty")
	}
	if !NewRect(5, 5, 0, 3).Empty() || !NewRect(5, 5, 3, -1).Empty() {
		t.Error("zero or negative size should be empty")
	}
}

func TestRectFContainsIsStrict(t *testing.T) {
	brick := RectF{X: 33, Y: 75, W: 42, H: 20}

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"center", 54, 85, true},
		{"left edge", 33, 85, false},
		{"right edge", 75, 85, false},
		{"top edge", 54, 75, false},
		{"bottom edge", 54, 95, false},
		{"just inside corner", 33.001, 75.001, true},
		{"below", 54, 120, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := brick.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	ints := []struct {
		v, lo, hi, expected int
	}{
		{5, 0, 6, 5},
		{-1, 0, 6, 0},
		{9, 0, 6, 6},
		{3, 0, -1, 0}, // empty menu: lo wins
	}
	for _, tc := range ints {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.v, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := Clamp(230.5, 0, 225.0); got != 225 {
		t.Errorf("Clamp(230.5, 0, 225) = %v, expected 225", got)
	}
	if got := Clamp(-0.5, 0, 225.0); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 225) = %v, expected 0", got)
	}
}
