package engine

import (
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/physics"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

// integrate advances every active body in the projectile, actor and vehicle
// pools. Crates are stepped in the collision stage. A zero time step leaves
// every position unchanged.
// Note: Called from within locked context in Update()
func (g *Game) integrate(dt float64) {
	gravity := g.Config.World.Gravity

	for _, actor := range g.Actors.All() {
		actor.Update(dt)
	}
	for _, vehicle := range g.Vehicles.All() {
		vehicle.Update(gravity, dt)
	}

	for _, bullets := range g.bulletPools() {
		for _, bullet := range bullets.All() {
			bullet.Fall(gravity, dt)
		}
	}

	for _, bombs := range g.bombPools() {
		for _, bomb := range bombs.All() {
			if bomb.Phase == entity.Falling {
				bomb.Fall(gravity, dt)
			}
		}
	}

	g.integrateMissiles(gravity, dt)
}

// integrateMissiles applies gravity, steers toward a live target and moves.
// A target that no longer resolves is dropped for good.
func (g *Game) integrateMissiles(gravity, dt float64) {
	turnRate := g.Config.Jet.MissileTurnRate

	for _, missile := range g.Missiles.All() {
		missile.Velocity = physics.ApplyGravity(missile.Velocity, gravity, dt)

		if target, ok := g.Vehicles.Resolve(missile.Target); ok {
			missile.Guide(target.Position, turnRate, dt)
		} else {
			missile.ClearTarget()
		}

		missile.Update(dt)
	}
}

func (g *Game) bulletPools() []*pool.Pool[entity.Bullet] {
	return []*pool.Pool[entity.Bullet]{g.PlayerBullets, g.ActorBullets, g.VehicleBullets}
}

func (g *Game) bombPools() []*pool.Pool[entity.Bomb] {
	return []*pool.Pool[entity.Bomb]{g.Bombs, g.VehicleBombs}
}
