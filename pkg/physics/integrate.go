// pkg/physics/integrate.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Angular velocities below this squared magnitude leave orientation untouched
const minAngularSpeedSq = 0.0001

// Crate motion constants
const (
	CrateAngularDamping = 0.95
	CrateLinearDamping  = 0.9
	CrateRestitution    = 0.5
	CrateSpinLoss       = 0.5
)

// RigidBody tracks linear and angular state for bodies that tumble
type RigidBody struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Orientation     mgl64.Quat
	AngularVelocity mgl64.Vec3
}

// ApplyGravity pulls a velocity down by gravity over the time step
func ApplyGravity(velocity mgl64.Vec3, gravity, deltaTime float64) mgl64.Vec3 {
	velocity[1] -= gravity * deltaTime
	return velocity
}

// Advance moves a position along a velocity over the time step
func Advance(position, velocity mgl64.Vec3, deltaTime float64) mgl64.Vec3 {
	return position.Add(velocity.Mul(deltaTime))
}

// Damp scales a velocity by a per-frame retention factor
func Damp(velocity mgl64.Vec3, factor float64) mgl64.Vec3 {
	return velocity.Mul(factor)
}

// ClampToGround keeps a body at or above its resting height.
// Returns true when the body was clamped; vertical velocity is zeroed in that case.
func ClampToGround(position, velocity *mgl64.Vec3, restHeight float64) bool {
	if position[1] >= restHeight {
		return false
	}
	position[1] = restHeight
	velocity[1] = 0
	return true
}

// IntegrateOrientation rotates q by the angular velocity over the time step
// and renormalizes the result.
func IntegrateOrientation(q mgl64.Quat, angularVelocity mgl64.Vec3, deltaTime float64) mgl64.Quat {
	speedSq := angularVelocity.LenSqr()
	if speedSq <= minAngularSpeedSq || deltaTime == 0 {
		return q
	}
	speed := angularVelocity.Len()
	step := mgl64.QuatRotate(speed*deltaTime, angularVelocity.Mul(1/speed))
	return q.Mul(step).Normalize()
}

// StepCrate advances a tumbling box of the given half size that rests on the ground plane.
// A predicted position that penetrates the ground bounces when the body was airborne
// and stops when it was already resting.
func StepCrate(body *RigidBody, halfSize, gravity, deltaTime float64) {
	body.Velocity = ApplyGravity(body.Velocity, gravity, deltaTime)
	body.AngularVelocity = Damp(body.AngularVelocity, CrateAngularDamping)
	body.Orientation = IntegrateOrientation(body.Orientation, body.AngularVelocity, deltaTime)

	predicted := Advance(body.Position, body.Velocity, deltaTime)
	if predicted[1]-halfSize <= 0 {
		if body.Position[1]-halfSize > 0 {
			body.Velocity[1] *= -CrateRestitution
		} else {
			body.Velocity[1] = 0
		}
		body.AngularVelocity = Damp(body.AngularVelocity, CrateSpinLoss)
		predicted[1] = halfSize
	}
	body.Position = predicted
	body.Velocity = Damp(body.Velocity, CrateLinearDamping)
}
