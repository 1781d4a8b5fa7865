// Package ai decides what each computer-controlled combatant is chasing and how it moves.
//
// Actor and vehicle selection is first-match: candidates are scanned in a fixed
// priority order and ascending slot order, and the first one inside detection
// range wins even when a closer candidate exists further down the scan. The
// jet's missile lock is the exception and picks the nearest tank.
package ai

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/physics"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

// PlayerAimOffset raises shots aimed at the player from the eye toward the head
const PlayerAimOffset = 0.5

// TargetKind says what sort of body a target is
type TargetKind int

const (
	NoTarget TargetKind = iota
	PlayerTarget
	ActorTarget
	VehicleTarget
)

// String returns the kind name
func (k TargetKind) String() string {
	switch k {
	case PlayerTarget:
		return "player"
	case ActorTarget:
		return "actor"
	case VehicleTarget:
		return "vehicle"
	default:
		return "none"
	}
}

// Target is the outcome of one frame's selection. Nothing persists between frames.
type Target struct {
	Kind     TargetKind
	Slot     int
	Position mgl64.Vec3
}

// None is the empty selection
var None = Target{Kind: NoTarget, Slot: -1}

// Found reports whether a target was acquired
func (t Target) Found() bool {
	return t.Kind != NoTarget
}

// AimPoint returns where shots should be directed
func (t Target) AimPoint() mgl64.Vec3 {
	if t.Kind == PlayerTarget {
		return t.Position.Add(mgl64.Vec3{0, PlayerAimOffset, 0})
	}
	return t.Position
}

// Candidates groups the bodies a selector may consider
type Candidates struct {
	Player   *entity.Player
	Actors   *pool.Pool[entity.CombatActor]
	Vehicles *pool.Pool[entity.Vehicle]
}

func inRange(from, to mgl64.Vec3, detection float64) bool {
	return physics.Distance(from, to) < detection
}

func (c Candidates) player(from mgl64.Vec3, detection float64) Target {
	if c.Player == nil || !c.Player.Alive() || !inRange(from, c.Player.Position, detection) {
		return None
	}
	return Target{Kind: PlayerTarget, Slot: -1, Position: c.Player.Position}
}

func (c Candidates) firstActor(from mgl64.Vec3, faction entity.Faction, detection float64) Target {
	found := None
	if c.Actors == nil {
		return found
	}
	c.Actors.ForEachActive(func(i int, a *entity.CombatActor) bool {
		if a.Faction != faction || !inRange(from, a.Position, detection) {
			return true
		}
		found = Target{Kind: ActorTarget, Slot: i, Position: a.Position}
		return false
	})
	return found
}

func (c Candidates) firstVehicle(from mgl64.Vec3, detection float64) Target {
	found := None
	if c.Vehicles == nil {
		return found
	}
	c.Vehicles.ForEachActive(func(i int, v *entity.Vehicle) bool {
		if !inRange(from, v.Position, detection) {
			return true
		}
		found = Target{Kind: VehicleTarget, Slot: i, Position: v.Position}
		return false
	})
	return found
}

// SelectActorTarget picks a ground actor's target.
// Hostiles try the player, then Friendly actors, then vehicles.
// Friendlies try Hostile actors, then vehicles.
func SelectActorTarget(actor *entity.CombatActor, c Candidates, detection float64) Target {
	from := actor.Position
	if actor.Faction == entity.Hostile {
		if t := c.player(from, detection); t.Found() {
			return t
		}
	}
	if t := c.firstActor(from, opponentOf(actor.Faction), detection); t.Found() {
		return t
	}
	return c.firstVehicle(from, detection)
}

// SelectVehicleTarget picks a tank's target: the player, then Friendly actors.
// Hostile actors are never targeted by tanks.
func SelectVehicleTarget(vehicle *entity.Vehicle, c Candidates, detection float64) Target {
	if t := c.player(vehicle.Position, detection); t.Found() {
		return t
	}
	return c.firstActor(vehicle.Position, entity.Friendly, detection)
}

// NearestVehicle returns the slot of the closest active vehicle within lockRange
// of from, or -1. Ties go to the lower slot.
func NearestVehicle(from mgl64.Vec3, vehicles *pool.Pool[entity.Vehicle], lockRange float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range vehicles.All() {
		d := physics.Distance(from, v.Position)
		if d < bestDist && d <= lockRange {
			best = i
			bestDist = d
		}
	}
	return best
}

func opponentOf(f entity.Faction) entity.Faction {
	if f == entity.Hostile {
		return entity.Friendly
	}
	return entity.Hostile
}
