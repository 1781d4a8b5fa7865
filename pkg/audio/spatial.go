package audio

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Listener is where cues are heard from
type Listener struct {
	Position mgl64.Vec3
	Right    mgl64.Vec3
}

// Attenuation falls off linearly with distance and reaches zero at maxDistance
func Attenuation(listener, source mgl64.Vec3, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 1
	}
	return math.Max(0, 1-physics.Distance(listener, source)/maxDistance)
}

// Pan places a source between the left (-1) and right (+1) channels by its
// offset along the listener's right vector
func Pan(listener Listener, source mgl64.Vec3, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 0
	}
	offset := source.Sub(listener.Position).Dot(listener.Right)
	return math.Max(-1, math.Min(1, offset/maxDistance))
}
