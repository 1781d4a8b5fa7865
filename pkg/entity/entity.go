// pkg/entity/entity.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Collider is implemented by anything with an axis-aligned hit volume
type Collider interface {
	Box() physics.Box
}

// Body contains the linear state shared by every simulated object
type Body struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Update moves the body along its velocity
func (b *Body) Update(deltaTime float64) {
	b.Position = physics.Advance(b.Position, b.Velocity, deltaTime)
}

// Fall applies gravity then moves the body
func (b *Body) Fall(gravity, deltaTime float64) {
	b.Velocity = physics.ApplyGravity(b.Velocity, gravity, deltaTime)
	b.Update(deltaTime)
}

// Vitals tracks health for anything that can be eliminated
type Vitals struct {
	Health float64
}

// TakeDamage subtracts damage and reports whether this call eliminated the owner.
// Only the hit that crosses zero reports true, so counters are decremented once.
func (v *Vitals) TakeDamage(amount float64) bool {
	if v.Health <= 0 {
		return false
	}
	v.Health -= amount
	if v.Health <= 0 {
		v.Health = 0
		return true
	}
	return false
}

// Kill forces health to zero and reports whether the owner was still alive
func (v *Vitals) Kill() bool {
	return v.TakeDamage(v.Health)
}

// Alive reports whether health is above zero
func (v *Vitals) Alive() bool {
	return v.Health > 0
}

// Overlaps checks whether two colliders intersect
func Overlaps(a, b Collider) bool {
	return a.Box().Overlaps(b.Box())
}
