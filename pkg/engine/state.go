package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/entity"
)

// Presenter draws a snapshot. Implementations must not retain the pointer
// beyond the call.
type Presenter interface {
	Present(state *GameState)
}

// GameState is a copy of everything a presenter may show
type GameState struct {
	Tick               uint64
	Status             GameStatus
	Counts             Counts
	PlacementFallbacks int
	Player             PlayerState
	Jet                JetState
	Actors             []ActorState
	Vehicles           []VehicleState
	Crates             []CrateState
	Bullets            []BulletState
	Bombs              []BombState
	Missiles           []MissileState
}

// GameOver reports whether the round has ended
func (s *GameState) GameOver() bool {
	return s.Status == GameStatusOver
}

// PlayerState is a snapshot of the player
type PlayerState struct {
	Position mgl64.Vec3
	Forward  mgl64.Vec3
	Right    mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Health   float64
	OnGround bool
}

// JetState is a snapshot of the bomber. LockedTarget is the slot of the
// locked tank, or -1.
type JetState struct {
	Position     mgl64.Vec3
	Forward      mgl64.Vec3
	Yaw          float64
	LockedTarget int
}

// ActorState is a snapshot of a ground actor
type ActorState struct {
	Slot     int
	Faction  entity.Faction
	Position mgl64.Vec3
	Health   float64
}

// VehicleState is a snapshot of a tank
type VehicleState struct {
	Slot     int
	Position mgl64.Vec3
	Yaw      float64
	Scale    float64
	Health   float64
}

// CrateState is a snapshot of a crate
type CrateState struct {
	Slot        int
	Category    entity.CrateCategory
	Motion      entity.MotionState
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// BulletState is a snapshot of a bullet
type BulletState struct {
	Slot     int
	Kind     entity.BulletKind
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// BombState is a snapshot of a bomb
type BombState struct {
	Slot        int
	Kind        entity.BombKind
	Phase       entity.BombPhase
	Position    mgl64.Vec3
	BlastRadius float64
}

// MissileState is a snapshot of a missile
type MissileState struct {
	Slot     int
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Guided   bool
}

// Snapshot returns a copy of the current game state
func (g *Game) Snapshot() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	return g.createGameStateSnapshot()
}

// createGameStateSnapshot builds and returns the complete game state.
func (g *Game) createGameStateSnapshot() *GameState {
	return &GameState{
		Tick:               g.CurrentTick,
		Status:             g.Status,
		Counts:             g.Counts,
		PlacementFallbacks: g.PlacementFallbacks,
		Player:             g.getPlayerState(),
		Jet:                g.getJetState(),
		Actors:             g.getActorStates(),
		Vehicles:           g.getVehicleStates(),
		Crates:             g.getCrateStates(),
		Bullets:            g.getBulletStates(),
		Bombs:              g.getBombStates(),
		Missiles:           g.getMissileStates(),
	}
}

func (g *Game) getPlayerState() PlayerState {
	p := &g.Player
	return PlayerState{
		Position: p.Position,
		Forward:  p.Forward(),
		Right:    p.Right(),
		Yaw:      p.Yaw,
		Pitch:    p.Pitch,
		Health:   p.Health,
		OnGround: p.OnGround,
	}
}

func (g *Game) getJetState() JetState {
	locked := -1
	if _, ok := g.Vehicles.Resolve(g.Jet.Lock); ok {
		locked = g.Jet.Lock.Index
	}
	return JetState{
		Position:     g.Jet.Position,
		Forward:      g.Jet.Forward,
		Yaw:          g.Jet.Yaw(),
		LockedTarget: locked,
	}
}

func (g *Game) getActorStates() []ActorState {
	states := make([]ActorState, 0, g.Actors.ActiveCount())
	for i, a := range g.Actors.All() {
		states = append(states, ActorState{
			Slot:     i,
			Faction:  a.Faction,
			Position: a.Position,
			Health:   a.Health,
		})
	}
	return states
}

func (g *Game) getVehicleStates() []VehicleState {
	states := make([]VehicleState, 0, g.Vehicles.ActiveCount())
	for i, v := range g.Vehicles.All() {
		states = append(states, VehicleState{
			Slot:     i,
			Position: v.Position,
			Yaw:      v.Yaw,
			Scale:    v.Scale,
			Health:   v.Health,
		})
	}
	return states
}

func (g *Game) getCrateStates() []CrateState {
	states := make([]CrateState, 0, g.Crates.ActiveCount())
	for i, c := range g.Crates.All() {
		states = append(states, CrateState{
			Slot:        i,
			Category:    c.Category,
			Motion:      c.Motion,
			Position:    c.Position,
			Orientation: c.Orientation,
		})
	}
	return states
}

func (g *Game) getBulletStates() []BulletState {
	var states []BulletState
	for _, bullets := range g.bulletPools() {
		for i, b := range bullets.All() {
			states = append(states, BulletState{
				Slot:     i,
				Kind:     b.Kind,
				Position: b.Position,
				Velocity: b.Velocity,
			})
		}
	}
	return states
}

func (g *Game) getBombStates() []BombState {
	var states []BombState
	for _, bombs := range g.bombPools() {
		for i, b := range bombs.All() {
			states = append(states, BombState{
				Slot:        i,
				Kind:        b.Kind,
				Phase:       b.Phase,
				Position:    b.Position,
				BlastRadius: b.BlastRadius,
			})
		}
	}
	return states
}

func (g *Game) getMissileStates() []MissileState {
	states := make([]MissileState, 0, g.Missiles.ActiveCount())
	for i, m := range g.Missiles.All() {
		states = append(states, MissileState{
			Slot:     i,
			Position: m.Position,
			Velocity: m.Velocity,
			Guided:   m.Target.Valid(),
		})
	}
	return states
}
