// pkg/entity/jet.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

// headingLookahead is the orbit angle used to sample the jet's heading
const headingLookahead = 0.01

// Jet is the friendly bomber orbiting the arena
type Jet struct {
	Angle    float64
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	BombBay  FireGate
	Launcher FireGate
	Lock     pool.Ref
}

// Orbit describes the jet's flight circle
type Orbit struct {
	Center       mgl64.Vec3
	Radius       float64
	Height       float64
	AngularSpeed float64
}

// PointAt returns the orbit position at the given angle
func (o Orbit) PointAt(angle float64) mgl64.Vec3 {
	return mgl64.Vec3{
		o.Center.X() + o.Radius*math.Cos(angle),
		o.Height,
		o.Center.Z() + o.Radius*math.Sin(angle),
	}
}

// NewJet places a jet at the start of its orbit
func NewJet(orbit Orbit) Jet {
	j := Jet{Lock: pool.NoRef}
	j.Fly(orbit, 0)
	return j
}

// Fly advances the jet along its orbit
func (j *Jet) Fly(orbit Orbit, deltaTime float64) {
	j.Angle += orbit.AngularSpeed * deltaTime
	if j.Angle > 2*math.Pi {
		j.Angle -= 2 * math.Pi
	}
	j.Position = orbit.PointAt(j.Angle)
	j.Forward = physics.Direction(j.Position, orbit.PointAt(j.Angle+headingLookahead))
}

// Yaw returns the jet's heading for presenters
func (j *Jet) Yaw() float64 {
	return physics.Yaw(j.Forward)
}
