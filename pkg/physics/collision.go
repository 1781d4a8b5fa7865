// pkg/physics/collision.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Box is an axis-aligned bounding box
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAround creates a box centered on a point with the given half extents
func BoxAround(center, halfExtents mgl64.Vec3) Box {
	return Box{
		Min: center.Sub(halfExtents),
		Max: center.Add(halfExtents),
	}
}

// Center returns the midpoint of the box
func (b Box) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains checks if a point lies inside the box, faces included
func (b Box) Contains(point mgl64.Vec3) bool {
	return PointInBox(point, b.Min, b.Max)
}

// Overlaps checks if two boxes intersect, touching faces included
func (b Box) Overlaps(other Box) bool {
	return BoxesOverlap(b.Min, b.Max, other.Min, other.Max)
}

// PointInBox reports whether point lies within [boxMin, boxMax] on every axis
func PointInBox(point, boxMin, boxMax mgl64.Vec3) bool {
	return point[0] >= boxMin[0] && point[0] <= boxMax[0] &&
		point[1] >= boxMin[1] && point[1] <= boxMax[1] &&
		point[2] >= boxMin[2] && point[2] <= boxMax[2]
}

// BoxesOverlap reports whether two boxes intersect. Touching counts as overlap.
func BoxesOverlap(min1, max1, min2, max2 mgl64.Vec3) bool {
	return min1[0] <= max2[0] && max1[0] >= min2[0] &&
		min1[1] <= max2[1] && max1[1] >= min2[1] &&
		min1[2] <= max2[2] && max1[2] >= min2[2]
}

// WithinRadius checks if b lies within radius r of a
func WithinRadius(a, b mgl64.Vec3, r float64) bool {
	return a.Sub(b).LenSqr() <= r*r
}

// HorizontalOverlapStrict checks for strict overlap of two footprints on the XZ plane.
// Used for landing tests where grazing edges must not count as support.
func HorizontalOverlapStrict(a, b Box) bool {
	return a.Min[0] < b.Max[0] && a.Max[0] > b.Min[0] &&
		a.Min[2] < b.Max[2] && a.Max[2] > b.Min[2]
}
