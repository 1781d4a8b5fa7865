// pkg/entity/weapon.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/physics"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

// FireGate is a cooperative cooldown timer shared by every weapon owner
type FireGate struct {
	Timer float64
}

// Tick advances the cooldown
func (g *FireGate) Tick(deltaTime float64) {
	g.Timer += deltaTime
}

// Ready reports whether at least period seconds have accumulated
func (g *FireGate) Ready(period float64) bool {
	return g.Timer >= period
}

// Reset starts a new cooldown. Call only after a projectile actually spawned.
func (g *FireGate) Reset() {
	g.Timer = 0
}

// BulletKind identifies who fired a bullet
type BulletKind int

const (
	PlayerBullet BulletKind = iota
	ActorBullet
	VehicleBullet
)

// String returns the kind name
func (k BulletKind) String() string {
	switch k {
	case PlayerBullet:
		return "player"
	case ActorBullet:
		return "actor"
	case VehicleBullet:
		return "vehicle"
	default:
		return "unknown"
	}
}

// Bullet is a straight ballistic round
type Bullet struct {
	Body
	Mass    float64
	Kind    BulletKind
	Shooter pool.Ref
}

// HalfSize returns the bullet's hit half extent. Player rounds are point tests.
func (b *Bullet) HalfSize() float64 {
	switch b.Kind {
	case ActorBullet:
		return 0.1
	case VehicleBullet:
		return 0.2
	default:
		return 0
	}
}

// Box returns the bullet's hit volume
func (b *Bullet) Box() physics.Box {
	h := b.HalfSize()
	return physics.BoxAround(b.Position, mgl64.Vec3{h, h, h})
}

// Expired reports whether the bullet left the arena or fell through its floor
func (b *Bullet) Expired(maxRange, floor float64) bool {
	return b.Position.Len() > maxRange || b.Position.Y() < floor
}

// BombKind identifies the dropper
type BombKind int

const (
	JetBomb BombKind = iota
	VehicleBomb
)

// String returns the kind name
func (k BombKind) String() string {
	if k == VehicleBomb {
		return "vehicle"
	}
	return "jet"
}

// BombPhase is the bomb state machine: Falling -> Exploded -> released from its pool
type BombPhase int

const (
	Falling BombPhase = iota
	Exploded
)

// String returns the phase name
func (p BombPhase) String() string {
	if p == Exploded {
		return "exploded"
	}
	return "falling"
}

// Bomb is a dropped explosive with a timed blast window
type Bomb struct {
	Body
	Kind          BombKind
	Phase         BombPhase
	Timer         float64
	Radius        float64
	BlastRadius   float64
	BlastDuration float64
}

// Touchdown reports whether a falling bomb has reached the ground
func (b *Bomb) Touchdown() bool {
	return b.Phase == Falling && b.Position.Y()-b.Radius <= 0
}

// Detonate moves a falling bomb into the exploded phase. It rests on the ground
// with zero velocity. Returns false if the bomb had already exploded.
func (b *Bomb) Detonate() bool {
	if b.Phase != Falling {
		return false
	}
	b.Phase = Exploded
	b.Velocity = mgl64.Vec3{}
	b.Position[1] = b.Radius
	b.Timer = 0
	return true
}

// Age advances the blast window and reports whether it has closed
func (b *Bomb) Age(deltaTime float64) bool {
	if b.Phase != Exploded {
		return false
	}
	b.Timer += deltaTime
	return b.Timer >= b.BlastDuration
}

// Missile is a homing projectile bound to a vehicle by weak reference
type Missile struct {
	Body
	Speed  float64
	Damage float64
	Target pool.Ref
}

// Guide blends velocity toward the ideal intercept at the given turn rate.
// The blend never snaps in one step for turnRate*deltaTime below one.
func (m *Missile) Guide(targetPos mgl64.Vec3, turnRate, deltaTime float64) {
	desired := physics.Direction(m.Position, targetPos).Mul(m.Speed)
	m.Velocity = physics.Lerp(m.Velocity, desired, turnRate*deltaTime)
}

// ClearTarget drops the reference. Missiles never re-acquire.
func (m *Missile) ClearTarget() {
	m.Target = pool.NoRef
}

// Expired reports whether the missile flew out of range or into the ground
func (m *Missile) Expired(maxRange float64) bool {
	return m.Position.Len() > maxRange || m.Position.Y() < 0
}
