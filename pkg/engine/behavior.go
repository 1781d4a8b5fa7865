package engine

import (
	"github.com/IndieDev99/battleforce/pkg/ai"
	"github.com/IndieDev99/battleforce/pkg/physics"
)

// updateBehavior runs targeting and steering for every AI combatant and the jet.
// Fire decisions are queued and spawned after collisions.
// Note: Called from within locked context in Update()
func (g *Game) updateBehavior(dt float64) {
	candidates := ai.Candidates{
		Player:   &g.Player,
		Actors:   g.Actors,
		Vehicles: g.Vehicles,
	}

	g.updateActors(candidates, dt)
	g.updateVehicles(candidates, dt)
	g.updateJet(dt)
}

// updateActors chases and shoots. An actor's gun only warms up while it holds a target.
func (g *Game) updateActors(candidates ai.Candidates, dt float64) {
	cfg := g.Config.Actors

	for i, actor := range g.Actors.All() {
		target := ai.SelectActorTarget(actor, candidates, cfg.DetectionRange)
		if !target.Found() {
			ai.Idle(actor, cfg.IdleDecay)
			continue
		}

		ai.Chase(actor, target.Position, cfg.ChaseForce, dt)
		actor.Gun.Tick(dt)

		if physics.Distance(actor.Position, target.Position) <= cfg.FireRange && actor.Gun.Ready(cfg.FirePeriod) {
			g.queue(fireOrder{
				kind:      orderActorBullet,
				origin:    actor.Position,
				direction: physics.Direction(actor.Position, target.AimPoint()),
				shooter:   g.Actors.Ref(i),
				gate:      &actor.Gun,
			})
		}
	}
}

// updateVehicles pursues, patrols, shoots and bombs. Tank gun and bomb bay
// cooldowns run whether or not a target is held.
func (g *Game) updateVehicles(candidates ai.Candidates, dt float64) {
	cfg := g.Config.Vehicles

	for i, vehicle := range g.Vehicles.All() {
		vehicle.Gun.Tick(dt)
		vehicle.BombBay.Tick(dt)

		target := ai.SelectVehicleTarget(vehicle, candidates, cfg.DetectionRange*vehicle.Scale)
		if !target.Found() {
			ai.Patrol(vehicle, g.rng, cfg.PatrolSpeed, cfg.PatrolDamping)
			continue
		}

		ai.Pursue(vehicle, target.Position, cfg.ChaseForce, dt)
		ref := g.Vehicles.Ref(i)

		if physics.Distance(vehicle.Position, target.Position) < cfg.FireRange*vehicle.Scale && vehicle.Gun.Ready(cfg.FirePeriod) {
			muzzle := vehicle.Muzzle(cfg.MuzzleHeight * vehicle.Scale)
			g.queue(fireOrder{
				kind:      orderVehicleBullet,
				origin:    muzzle,
				direction: physics.Direction(muzzle, target.AimPoint()),
				shooter:   ref,
				gate:      &vehicle.Gun,
			})
		}

		if vehicle.BombBay.Ready(cfg.BombPeriod) {
			g.queue(fireOrder{
				kind:    orderVehicleBomb,
				origin:  vehicle.Muzzle(cfg.BombHeight * vehicle.Scale),
				shooter: ref,
				gate:    &vehicle.BombBay,
			})
		}
	}
}

// updateJet flies the orbit, bombs while hostiles remain and fires missiles at
// the nearest tank in range.
func (g *Game) updateJet(dt float64) {
	cfg := g.Config.Jet
	jet := &g.Jet

	jet.Fly(g.orbit(), dt)

	jet.BombBay.Tick(dt)
	if g.Counts.Hostile > 0 && jet.BombBay.Ready(cfg.BombPeriod) {
		g.queue(fireOrder{
			kind:   orderJetBomb,
			origin: jet.Position,
			gate:   &jet.BombBay,
		})
	}

	jet.Lock = g.Vehicles.Ref(ai.NearestVehicle(jet.Position, g.Vehicles, cfg.LockOnRange))

	jet.Launcher.Tick(dt)
	if jet.Lock.Valid() && jet.Launcher.Ready(cfg.MissilePeriod) {
		g.queue(fireOrder{
			kind:      orderMissile,
			origin:    jet.Position,
			direction: jet.Forward,
			target:    jet.Lock,
			gate:      &jet.Launcher,
		})
	}
}
