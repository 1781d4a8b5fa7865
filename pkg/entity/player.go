// pkg/entity/player.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Pitch is kept just short of straight up or down so the look vector never degenerates
const maxPitch = math.Pi/2 - 0.01

// Player is the single first-person combatant. Position is the eye point,
// which sits at the middle of the player's body.
type Player struct {
	Vitals
	Position     mgl64.Vec3
	Yaw          float64
	Pitch        float64
	OnGround     bool
	JumpVelocity float64
	Height       float64
	Radius       float64
	Trigger      FireGate
}

// NewPlayer creates a grounded player looking down +Z
func NewPlayer(position mgl64.Vec3, health, height, radius float64) Player {
	return Player{
		Vitals:   Vitals{Health: health},
		Position: position,
		OnGround: true,
		Height:   height,
		Radius:   radius,
	}
}

// Forward returns the look direction
func (p *Player) Forward() mgl64.Vec3 {
	return physics.FromYawPitch(p.Yaw, p.Pitch)
}

// Right returns the horizontal strafe direction
func (p *Player) Right() mgl64.Vec3 {
	return physics.RightOf(p.Forward())
}

// Look turns the view by the given deltas
func (p *Player) Look(deltaYaw, deltaPitch float64) {
	p.Yaw = math.Remainder(p.Yaw+deltaYaw, 2*math.Pi)
	p.Pitch = math.Max(-maxPitch, math.Min(maxPitch, p.Pitch+deltaPitch))
}

// Feet returns the altitude of the soles for a given eye height
func (p *Player) Feet(eyeY float64) float64 {
	return eyeY - p.Height/2
}

// Box returns the player's body volume
func (p *Player) Box() physics.Box {
	return physics.BoxAround(p.Position, mgl64.Vec3{p.Radius, p.Height / 2, p.Radius})
}
