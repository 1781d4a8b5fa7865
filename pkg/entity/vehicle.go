// pkg/entity/vehicle.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Vehicle footprint before scaling
const (
	VehicleHalfWidth  = 1.5
	VehicleHeight     = 1.5
	VehicleHalfLength = 2.5
	VehicleRestHeight = 1.0
	// VehicleGroundFriction damps horizontal speed while the hull is clamped to the ground
	VehicleGroundFriction = 0.9
)

// Vehicle is an armored tank. Tanks are hostile to the player and to both ground factions.
type Vehicle struct {
	Body
	Vitals
	Yaw     float64
	Scale   float64
	Gun     FireGate
	BombBay FireGate
}

// NewVehicle creates a parked tank
func NewVehicle(position mgl64.Vec3, health, scale float64) Vehicle {
	return Vehicle{
		Body:   Body{Position: position},
		Vitals: Vitals{Health: health},
		Scale:  scale,
	}
}

// Box returns the scaled hull. The hull sits on its position rather than around it.
func (v *Vehicle) Box() physics.Box {
	s := v.Scale
	return physics.Box{
		Min: mgl64.Vec3{v.Position.X() - VehicleHalfWidth*s, v.Position.Y(), v.Position.Z() - VehicleHalfLength*s},
		Max: mgl64.Vec3{v.Position.X() + VehicleHalfWidth*s, v.Position.Y() + VehicleHeight*s, v.Position.Z() + VehicleHalfLength*s},
	}
}

// Update applies gravity, moves the hull and brakes it against the ground
func (v *Vehicle) Update(gravity, deltaTime float64) {
	v.Fall(gravity, deltaTime)
	if physics.ClampToGround(&v.Position, &v.Velocity, VehicleRestHeight) {
		v.Velocity[0] *= VehicleGroundFriction
		v.Velocity[2] *= VehicleGroundFriction
	}
}

// Muzzle returns the point shells leave the turret from
func (v *Vehicle) Muzzle(height float64) mgl64.Vec3 {
	return v.Position.Add(mgl64.Vec3{0, height, 0})
}
