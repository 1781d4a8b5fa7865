package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Contact response constants
const (
	actorBounce         = -0.5
	crateSeparation     = 0.5
	vehicleCratePush    = 0.5
	vehicleCrateNudge   = 0.1
	vehicleCrateBrake   = 0.5
	vehicleActorPush    = 1.0
	vehicleActorNudge   = 0.05
	vehicleActorBrake   = 0.8
	vehicleVehiclePush  = 0.2
	vehicleVehicleNudge = 0.05
)

// Crate contact thresholds
const (
	// Feet within this distance of a crate top count as standing on it
	standingTolerance = 0.1
	// Contact normals steeper than this are a stack and get no sideways push
	stackedNormalY = 0.9
	minNormalSq    = 0.001
)

// resolveCollisions runs every contact check in its fixed order
// Note: Called from within locked context in Update()
func (g *Game) resolveCollisions(dt float64) {
	g.supportPlayer()
	g.separateActors()
	g.stepCrates(dt)
	g.resolveLiveFire()
	g.resolveMelee(dt)
	g.resolveVehicleContacts(dt)
	g.detonateBombs()
}

// separateActors bounces overlapping actors off each other. No damage is dealt.
func (g *Game) separateActors() {
	for i, a := range g.Actors.All() {
		for j, b := range g.Actors.All() {
			if j <= i || !entity.Overlaps(a, b) {
				continue
			}
			a.Velocity = a.Velocity.Mul(actorBounce)
			b.Velocity = b.Velocity.Mul(actorBounce)
		}
	}
}

// stepCrates integrates crate physics, then applies player contacts and
// crate-on-crate separation. Touching a crate wakes it and walking into it
// pushes it, unless the player stands on it. Two frozen crates never disturb
// each other.
func (g *Game) stepCrates(dt float64) {
	gravity := g.Config.World.Gravity
	moving := g.frame.move.LenSqr() > 0

	for _, crate := range g.Crates.All() {
		crate.Update(gravity, dt)

		if g.standingOn(crate) || !entity.Overlaps(&g.Player, crate) {
			continue
		}
		crate.Activate()
		if moving {
			crate.Push(physics.Normalize(g.frame.move).Mul(g.frame.speed / crate.Mass))
		}
	}

	for i, a := range g.Crates.All() {
		for j, b := range g.Crates.All() {
			if j <= i || !entity.Overlaps(a, b) {
				continue
			}
			if !a.IsDynamic() && !b.IsDynamic() {
				continue
			}
			separateCrates(a, b)
		}
	}
}

// standingOn reports whether the grounded player's feet rest on the crate top
func (g *Game) standingOn(crate *entity.Crate) bool {
	p := &g.Player
	return p.OnGround && math.Abs(p.Feet(p.Position.Y())-crate.Top()) < standingTolerance
}

// separateCrates wakes two touching crates and pushes them apart on the ground
// plane. A pair that is mostly stacked gets no sideways push. A falling upper
// crate is lifted out of the lower one with a bounce that also bleeds its spin.
func separateCrates(a, b *entity.Crate) {
	a.Activate()
	b.Activate()

	normal := physics.Normalize(a.Position.Sub(b.Position))
	if math.Abs(normal.Y()) < stackedNormalY && normal.LenSqr() > minNormalSq {
		side := physics.Normalize(physics.Horizontal(normal))
		a.Push(side.Mul(crateSeparation))
		b.Push(side.Mul(-crateSeparation))
	}

	upper, lower := a, b
	if b.Position.Y() > a.Position.Y() {
		upper, lower = b, a
	}
	if upper.Velocity.Y() < 0 && upper.Position.Y()-entity.CrateHalfSize < lower.Top() {
		upper.Position[1] = lower.Top() + entity.CrateHalfSize
		upper.Velocity[1] *= -physics.CrateRestitution
		upper.AngularVelocity = physics.Damp(upper.AngularVelocity, physics.CrateSpinLoss)
	}
}

// resolveLiveFire applies bullet and missile hits. A projectile is released by
// its first hit and never damages whoever fired it.
func (g *Game) resolveLiveFire() {
	for i, bullet := range g.PlayerBullets.All() {
		if g.playerBulletHit(bullet) {
			g.PlayerBullets.Release(i)
		}
	}
	for i, bullet := range g.ActorBullets.All() {
		if g.actorBulletHit(bullet) {
			g.ActorBullets.Release(i)
		}
	}
	for i, bullet := range g.VehicleBullets.All() {
		if g.vehicleBulletHit(bullet) {
			g.VehicleBullets.Release(i)
		}
	}
	for i, missile := range g.Missiles.All() {
		if g.missileHit(missile) {
			g.Missiles.Release(i)
		}
	}
}

func (g *Game) playerBulletHit(bullet *entity.Bullet) bool {
	damage := g.Config.Damage

	for i, actor := range g.Actors.All() {
		if entity.Overlaps(bullet, actor) {
			g.damageActor(i, actor, damage.PlayerBulletVsActor)
			return true
		}
	}
	for i, vehicle := range g.Vehicles.All() {
		if entity.Overlaps(bullet, vehicle) {
			g.damageVehicle(i, vehicle, damage.PlayerBulletVsVehicle)
			return true
		}
	}
	for _, crate := range g.Crates.All() {
		if entity.Overlaps(bullet, crate) {
			crate.ApplyImpact(bullet.Position, bullet.Velocity, bullet.Mass)
			g.publishSound(event.CrateHit, crate.Position)
			return true
		}
	}
	return false
}

func (g *Game) actorBulletHit(bullet *entity.Bullet) bool {
	damage := g.Config.Damage

	if g.Player.Alive() && entity.Overlaps(bullet, &g.Player) {
		g.Player.TakeDamage(damage.ActorBulletVsPlayer)
		return true
	}
	for i, actor := range g.Actors.All() {
		if g.Actors.Ref(i) == bullet.Shooter || !entity.Overlaps(bullet, actor) {
			continue
		}
		g.damageActor(i, actor, damage.ActorBulletVsActor)
		return true
	}
	for i, vehicle := range g.Vehicles.All() {
		if entity.Overlaps(bullet, vehicle) {
			g.damageVehicle(i, vehicle, damage.ActorBulletVsVehicle)
			return true
		}
	}
	return false
}

func (g *Game) vehicleBulletHit(bullet *entity.Bullet) bool {
	damage := g.Config.Damage

	if g.Player.Alive() && entity.Overlaps(bullet, &g.Player) {
		g.Player.TakeDamage(damage.VehicleBulletVsPlayer)
		return true
	}
	for i, actor := range g.Actors.All() {
		if entity.Overlaps(bullet, actor) {
			g.damageActor(i, actor, damage.VehicleBulletVsActor)
			return true
		}
	}
	return false
}

// missileHit tests the missile point against its own target only
func (g *Game) missileHit(missile *entity.Missile) bool {
	target, ok := g.Vehicles.Resolve(missile.Target)
	if !ok || !target.Box().Contains(missile.Position) {
		return false
	}
	g.damageVehicle(missile.Target.Index, target, missile.Damage)
	g.publishSound(event.MissileImpact, missile.Position)
	return true
}

// resolveMelee lets hostile actors wear the player down on contact
func (g *Game) resolveMelee(dt float64) {
	if !g.Player.Alive() {
		return
	}
	perSecond := g.Config.Damage.MeleePerSecond
	for _, actor := range g.Actors.All() {
		if actor.Faction == entity.Hostile && entity.Overlaps(actor, &g.Player) {
			g.Player.TakeDamage(perSecond * dt)
		}
	}
}

// resolveVehicleContacts shoves crates, rams actors and keeps tanks apart
func (g *Game) resolveVehicleContacts(dt float64) {
	ram := g.Config.Damage.RamPerSecond * dt

	for i, vehicle := range g.Vehicles.All() {
		for _, crate := range g.Crates.All() {
			if !entity.Overlaps(vehicle, crate) {
				continue
			}
			dir := awayFrom(vehicle.Position, crate.Position)
			crate.Push(dir.Mul(vehicleCratePush))
			vehicle.Position = vehicle.Position.Sub(dir.Mul(vehicleCrateNudge))
			vehicle.Velocity = vehicle.Velocity.Mul(vehicleCrateBrake)
		}

		for j, actor := range g.Actors.All() {
			if !entity.Overlaps(vehicle, actor) {
				continue
			}
			dir := awayFrom(vehicle.Position, actor.Position)
			actor.Velocity = actor.Velocity.Add(dir.Mul(vehicleActorPush))
			g.damageActor(j, actor, ram)
			vehicle.Position = vehicle.Position.Sub(dir.Mul(vehicleActorNudge))
			vehicle.Velocity = vehicle.Velocity.Mul(vehicleActorBrake)
		}

		for j, other := range g.Vehicles.All() {
			if j <= i || !entity.Overlaps(vehicle, other) {
				continue
			}
			dir := awayFrom(vehicle.Position, other.Position)
			vehicle.Velocity = vehicle.Velocity.Sub(dir.Mul(vehicleVehiclePush))
			other.Velocity = other.Velocity.Add(dir.Mul(vehicleVehiclePush))
			vehicle.Position = vehicle.Position.Sub(dir.Mul(vehicleVehicleNudge))
			other.Position = other.Position.Add(dir.Mul(vehicleVehicleNudge))
		}
	}
}

// awayFrom returns the flattened unit direction from a toward b
func awayFrom(a, b mgl64.Vec3) mgl64.Vec3 {
	return physics.Normalize(physics.Horizontal(b.Sub(a)))
}

// damageActor applies damage and eliminates the actor on the hit that crosses zero
func (g *Game) damageActor(slot int, actor *entity.CombatActor, amount float64) {
	if actor.TakeDamage(amount) {
		g.eliminateActor(slot, actor)
	}
}

// damageVehicle applies damage and eliminates the tank on the hit that crosses zero
func (g *Game) damageVehicle(slot int, vehicle *entity.Vehicle, amount float64) {
	if vehicle.TakeDamage(amount) {
		g.eliminateVehicle(slot, vehicle)
	}
}

// eliminateActor releases the slot and decrements the faction counter once
func (g *Game) eliminateActor(slot int, actor *entity.CombatActor) {
	g.Actors.Release(slot)
	if actor.Faction == entity.Hostile {
		g.Counts.Hostile--
	} else {
		g.Counts.Friendly--
	}

	g.logger.Debug(g.session, "actor eliminated", "slot", slot, "faction", actor.Faction.String(), "tick", g.CurrentTick)
	g.EventBus.Publish(event.NewEliminationEvent(event.ActorEliminated, g, slot, actor.Faction.String(), actor.Position))
}

// eliminateVehicle releases the slot and decrements the tank counter once
func (g *Game) eliminateVehicle(slot int, vehicle *entity.Vehicle) {
	g.Vehicles.Release(slot)
	g.Counts.Vehicles--

	g.logger.Debug(g.session, "vehicle eliminated", "slot", slot, "tick", g.CurrentTick)
	g.EventBus.Publish(event.NewEliminationEvent(event.VehicleEliminated, g, slot, "vehicle", vehicle.Position))
}
