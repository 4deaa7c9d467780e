package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"unit x", V(5, 0), V(1, 0)},
		{"unit y negative", V(0, -3), V(0, -1)},
		{"3-4-5", V(3, 4), V(0.6, 0.8)},
		{"zero stays zero", V(0, 0), V(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if !near(got.X, tc.expected.X) || !near(got.Y, tc.expected.Y) {
				t.Errorf("Normalize(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestDistancePointToSegment(t *testing.T) {
	tests := []struct {
		name     string
		p, a, b  Vec2
		expected float64
	}{
		{"perpendicular to middle", V(5, 3), V(0, 0), V(10, 0), 3},
		{"beyond end b", V(13, 4), V(0, 0), V(10, 0), 5},
		{"before start a", V(-3, -4), V(0, 0), V(10, 0), 5},
		{"on segment", V(4, 0), V(0, 0), V(10, 0), 0},
		{"degenerate segment", V(3, 4), V(0, 0), V(0, 0), 5},
		{"diagonal", V(0, 2), V(0, 0), V(2, 2), math.Sqrt2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DistancePointToSegment(tc.p, tc.a, tc.b)
			if !near(got, tc.expected) {
				t.Errorf("DistancePointToSegment() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClosestScalarOnSegment(t *testing.T) {
	tests := []struct {
		p, a, b, expected float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{5, 10, 0, 5},   // reversed interval
		{15, 10, 0, 10}, // reversed, clamps to a
		{7, 3, 3, 3},    // degenerate
	}

	for _, tc := range tests {
		got := ClosestScalarOnSegment(tc.p, tc.a, tc.b)
		if !near(got, tc.expected) {
			t.Errorf("ClosestScalarOnSegment(%v, %v, %v) = %v, expected %v", tc.p, tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestClosestAxisPoint(t *testing.T) {
	got := ClosestAxisPoint(V(50, -10), V(0, 0), V(20, 40))
	if !near(got.X, 20) || !near(got.Y, 0) {
		t.Errorf("ClosestAxisPoint() = %v, expected (20, 0)", got)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		c1       Vec2
		r1       float64
		c2       Vec2
		r2       float64
		expected bool
	}{
		{"overlapping", V(0, 0), 5, V(8, 0), 5, true},
		{"touching is not overlap", V(0, 0), 5, V(10, 0), 5, false},
		{"apart", V(0, 0), 5, V(20, 0), 5, false},
		{"concentric", V(1, 1), 1, V(1, 1), 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(tc.c1, tc.r1, tc.c2, tc.r2); got != tc.expected {
				t.Errorf("CirclesOverlap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleBoxOverlap(t *testing.T) {
	box := Box{X: 10, Y: 10, W: 20, H: 10}

	tests := []struct {
		name     string
		c        Vec2
		r        float64
		expected bool
	}{
		{"center inside", V(15, 15), 1, true},
		{"near left edge", V(7, 15), 4, true},
		{"touching left edge", V(6, 15), 4, false},
		{"near corner", V(8, 8), 3, true},
		{"beyond corner", V(6, 6), 5, false},
		{"far away", V(100, 100), 6, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleBoxOverlap(tc.c, tc.r, box); got != tc.expected {
				t.Errorf("CircleBoxOverlap(%v, %v) = %v, expected %v", tc.c, tc.r, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
