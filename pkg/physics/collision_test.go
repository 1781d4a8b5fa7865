// pkg/physics/collision_test.go
package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPointInBox(t *testing.T) {
	boxMin := mgl64.Vec3{-1, 0, -1}
	boxMax := mgl64.Vec3{1, 2, 1}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{name: "center", point: mgl64.Vec3{0, 1, 0}, expected: true},
		{name: "on_face", point: mgl64.Vec3{1, 1, 0}, expected: true},
		{name: "on_corner", point: mgl64.Vec3{-1, 0, -1}, expected: true},
		{name: "outside_x", point: mgl64.Vec3{1.001, 1, 0}, expected: false},
		{name: "below", point: mgl64.Vec3{0, -0.1, 0}, expected: false},
		{name: "above", point: mgl64.Vec3{0, 2.1, 0}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInBox(tt.point, boxMin, boxMax); got != tt.expected {
				t.Errorf("PointInBox(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestPointInBox_DegenerateBox(t *testing.T) {
	p := mgl64.Vec3{2, 3, 4}
	if !PointInBox(p, p, p) {
		t.Error("expected a zero-size box to contain its own point")
	}
	if PointInBox(mgl64.Vec3{2, 3, 4.01}, p, p) {
		t.Error("expected a zero-size box to reject any other point")
	}
}

func TestBoxesOverlap(t *testing.T) {
	unit := BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5})

	tests := []struct {
		name     string
		other    Box
		expected bool
	}{
		{
			name:     "identical",
			other:    unit,
			expected: true,
		},
		{
			name:     "partial_overlap",
			other:    BoxAround(mgl64.Vec3{0.5, 0.5, 0}, mgl64.Vec3{0.5, 0.5, 0.5}),
			expected: true,
		},
		{
			name:     "touching_faces_count",
			other:    BoxAround(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0.5, 0.5, 0.5}),
			expected: true,
		},
		{
			name:     "separated_on_one_axis",
			other:    BoxAround(mgl64.Vec3{0, 0, 1.01}, mgl64.Vec3{0.5, 0.5, 0.5}),
			expected: false,
		},
		{
			name:     "contained",
			other:    BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.1, 0.1, 0.1}),
			expected: true,
		},
		{
			name:     "degenerate_point_inside",
			other:    Box{Min: mgl64.Vec3{0.2, 0.2, 0.2}, Max: mgl64.Vec3{0.2, 0.2, 0.2}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.expected)
			}
			// Overlap is symmetric
			if got := tt.other.Overlaps(unit); got != tt.expected {
				t.Errorf("reverse Overlaps() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestWithinRadius(t *testing.T) {
	origin := mgl64.Vec3{0, 0, 0}
	if !WithinRadius(origin, mgl64.Vec3{3, 0, 4}, 5) {
		t.Error("expected point at exactly the radius to count")
	}
	if WithinRadius(origin, mgl64.Vec3{3, 0, 4.01}, 5) {
		t.Error("expected point beyond the radius to be rejected")
	}
}

func TestHorizontalOverlapStrict(t *testing.T) {
	a := BoxAround(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0.5, 1, 0.5})
	touching := BoxAround(mgl64.Vec3{1, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5})
	overlapping := BoxAround(mgl64.Vec3{0.9, 5, 0}, mgl64.Vec3{0.5, 0.5, 0.5})

	if HorizontalOverlapStrict(a, touching) {
		t.Error("expected touching footprints not to count as strict overlap")
	}
	if !HorizontalOverlapStrict(a, overlapping) {
		t.Error("expected overlapping footprints to count regardless of height")
	}
}

func TestBoxCenter(t *testing.T) {
	b := BoxAround(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0.5, 1, 2})
	if b.Center() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Center() = %v, expected (1,2,3)", b.Center())
	}
}
