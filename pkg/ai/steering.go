package ai

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Patrol drift is resampled once a tank is nearly stopped
const patrolRestSpeedSq = 0.1

// Chase accelerates an actor toward a point. The force is divided by the actor's mass.
func Chase(actor *entity.CombatActor, target mgl64.Vec3, force, deltaTime float64) {
	actor.Steer(physics.Direction(actor.Position, target).Mul(force), deltaTime)
}

// Idle bleeds off an actor's speed by a fixed fraction each frame
func Idle(actor *entity.CombatActor, decay float64) {
	actor.Velocity = physics.Damp(actor.Velocity, decay)
}

// Pursue turns a tank to face a point and accelerates it that way
func Pursue(vehicle *entity.Vehicle, target mgl64.Vec3, force, deltaTime float64) {
	dir := physics.Direction(vehicle.Position, target)
	vehicle.Yaw = physics.Yaw(dir)
	vehicle.Velocity = vehicle.Velocity.Add(dir.Mul(force * deltaTime))
}

// Patrol keeps an idle tank wandering. A nearly stopped tank picks a fresh
// random heading, then speed is damped and the hull turns to face its motion.
func Patrol(vehicle *entity.Vehicle, rng *rand.Rand, speed, damping float64) {
	if vehicle.Velocity.LenSqr() < patrolRestSpeedSq {
		heading := mgl64.Vec3{float64(rng.IntN(20) - 10), 0, float64(rng.IntN(20) - 10)}
		vehicle.Velocity = physics.Normalize(heading).Mul(speed)
	}
	vehicle.Velocity = physics.Damp(vehicle.Velocity, damping)
	vehicle.Yaw = physics.Yaw(vehicle.Velocity)
}
