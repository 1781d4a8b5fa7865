// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world's vertical axis
var Up = mgl64.Vec3{0, 1, 0}

// Normalize returns a unit vector in the same direction.
// Unlike mgl64.Vec3.Normalize, a zero vector stays zero instead of becoming NaN.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / length)
}

// Distance returns the Euclidean distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// Horizontal drops the vertical component
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// Lerp blends from a toward b by fraction t
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Direction returns the unit vector pointing from one point to another
func Direction(from, to mgl64.Vec3) mgl64.Vec3 {
	return Normalize(to.Sub(from))
}

// Yaw returns the heading of a direction about the vertical axis, measured from +Z toward +X
func Yaw(dir mgl64.Vec3) float64 {
	return math.Atan2(dir.X(), dir.Z())
}

// FromYawPitch creates a unit look vector. Yaw 0 and pitch 0 look down +Z.
func FromYawPitch(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{
		math.Sin(yaw) * cp,
		math.Sin(pitch),
		math.Cos(yaw) * cp,
	}
}

// RightOf returns the horizontal right-hand vector for a look direction
func RightOf(forward mgl64.Vec3) mgl64.Vec3 {
	return Normalize(Horizontal(forward.Cross(Up)))
}
