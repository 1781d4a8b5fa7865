// pkg/entity/crate.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
)

// CrateCategory is the paint color a crate is drawn with
type CrateCategory int

const (
	CrateGreen CrateCategory = iota
	CrateYellow
	CrateBlue
)

// String returns the category name
func (c CrateCategory) String() string {
	switch c {
	case CrateGreen:
		return "green"
	case CrateYellow:
		return "yellow"
	case CrateBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// MotionState is the crate physics state machine.
// Frozen -> Dynamic on any disturbance; Dynamic never returns to Frozen.
type MotionState int

const (
	Frozen MotionState = iota
	Dynamic
)

// String returns the state name
func (m MotionState) String() string {
	if m == Dynamic {
		return "dynamic"
	}
	return "frozen"
}

// CrateHalfSize is half the edge length of a crate
const CrateHalfSize = 0.5

// Angular impulse scale applied when a bullet strikes a crate
const crateTorqueScale = 0.1

// Crate is a physics-reactive box
type Crate struct {
	physics.RigidBody
	Mass     float64
	Category CrateCategory
	Motion   MotionState
}

// NewCrate creates an upright crate at rest
func NewCrate(category CrateCategory, position mgl64.Vec3, mass float64, motion MotionState) Crate {
	return Crate{
		RigidBody: physics.RigidBody{
			Position:    position,
			Orientation: mgl64.QuatIdent(),
		},
		Mass:     mass,
		Category: category,
		Motion:   motion,
	}
}

// Box returns the crate's hit volume. Rotation is not reflected in the box.
func (c *Crate) Box() physics.Box {
	return physics.BoxAround(c.Position, mgl64.Vec3{CrateHalfSize, CrateHalfSize, CrateHalfSize})
}

// Top returns the altitude of the crate's upper face
func (c *Crate) Top() float64 {
	return c.Position.Y() + CrateHalfSize
}

// Activate switches the crate to dynamic physics
func (c *Crate) Activate() {
	c.Motion = Dynamic
}

// IsDynamic reports whether the crate is simulating
func (c *Crate) IsDynamic() bool {
	return c.Motion == Dynamic
}

// Update steps a dynamic crate, or pins a frozen one in place
func (c *Crate) Update(gravity, deltaTime float64) {
	if c.Motion == Frozen {
		c.Velocity = mgl64.Vec3{}
		c.AngularVelocity = mgl64.Vec3{}
		c.Orientation = mgl64.QuatIdent()
		return
	}
	physics.StepCrate(&c.RigidBody, CrateHalfSize, gravity, deltaTime)
}

// Push adds a velocity change and wakes the crate
func (c *Crate) Push(deltaV mgl64.Vec3) {
	c.Velocity = c.Velocity.Add(deltaV)
	c.Activate()
}

// ApplyImpact transfers a projectile's momentum into the crate. The torque is the
// cross product of the impact offset from the center and the momentum vector.
func (c *Crate) ApplyImpact(impact, projectileVelocity mgl64.Vec3, projectileMass float64) {
	dir := physics.Normalize(projectileVelocity)
	impulse := projectileMass * projectileVelocity.Len()
	mass := c.Mass
	if mass <= 0 {
		mass = 1
	}

	c.Velocity = c.Velocity.Add(dir.Mul(impulse / mass))

	offset := impact.Sub(c.Position)
	torque := offset.Cross(dir.Mul(impulse))
	c.AngularVelocity = c.AngularVelocity.Add(torque.Mul(crateTorqueScale / mass))

	c.Activate()
}
