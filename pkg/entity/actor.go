// pkg/entity/actor.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Faction decides which side a ground actor fights for
type Faction int

const (
	Hostile Faction = iota
	Friendly
)

// String returns the faction name
func (f Faction) String() string {
	switch f {
	case Hostile:
		return "hostile"
	case Friendly:
		return "friendly"
	default:
		return "unknown"
	}
}

// Opposes reports whether two factions are enemies
func (f Faction) Opposes(other Faction) bool {
	return f != other
}

// ActorHalfExtents is the hit volume of a ground actor
var ActorHalfExtents = mgl64.Vec3{0.5, 1, 0.5}

// ActorRestHeight is the altitude of a standing actor's center
const ActorRestHeight = 1.0

// CombatActor is an AI-driven ground trooper
type CombatActor struct {
	Body
	Vitals
	Mass    float64
	Faction Faction
	Gun     FireGate
}

// NewCombatActor creates a standing actor with full health and a cold gun
func NewCombatActor(faction Faction, position mgl64.Vec3, health, mass float64) CombatActor {
	return CombatActor{
		Body:    Body{Position: position},
		Vitals:  Vitals{Health: health},
		Mass:    mass,
		Faction: faction,
	}
}

// Box returns the actor's hit volume
func (a *CombatActor) Box() physics.Box {
	return physics.BoxAround(a.Position, ActorHalfExtents)
}

// Steer accumulates a force into velocity, scaled by inverse mass
func (a *CombatActor) Steer(force mgl64.Vec3, deltaTime float64) {
	mass := a.Mass
	if mass <= 0 {
		mass = 1
	}
	a.Velocity = a.Velocity.Add(force.Mul(deltaTime / mass))
}

// Update moves the actor and keeps it on its feet. Ground actors ignore gravity.
func (a *CombatActor) Update(deltaTime float64) {
	a.Body.Update(deltaTime)
	physics.ClampToGround(&a.Position, &a.Velocity, ActorRestHeight)
}
