package engine

import (
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/physics"
)

// detonateBombs explodes every falling bomb that reached the ground and applies
// its area effect. Each bomb detonates at most once.
// Note: Called from within locked context in Update()
func (g *Game) detonateBombs() {
	for _, bombs := range g.bombPools() {
		for _, bomb := range bombs.All() {
			if !bomb.Touchdown() || !bomb.Detonate() {
				continue
			}
			g.blast(bomb)
			g.publishSound(event.Explosion, bomb.Position)
		}
	}
}

// blast applies one detonation. Jet bombs spare crates; tank bombs flatten them.
func (g *Game) blast(bomb *entity.Bomb) {
	center := bomb.Position
	radius := bomb.BlastRadius

	for i, actor := range g.Actors.All() {
		if physics.WithinRadius(actor.Position, center, radius) && actor.Kill() {
			g.eliminateActor(i, actor)
		}
	}

	for i, vehicle := range g.Vehicles.All() {
		if physics.WithinRadius(vehicle.Position, center, radius) {
			g.damageVehicle(i, vehicle, g.Config.Damage.BlastVsVehicle)
		}
	}

	if physics.WithinRadius(g.Player.Position, center, radius) {
		g.Player.Kill()
	}

	if bomb.Kind == entity.VehicleBomb {
		for i, crate := range g.Crates.All() {
			if physics.WithinRadius(crate.Position, center, radius) {
				g.Crates.Release(i)
			}
		}
	}

	g.logger.Debug(g.session, "bomb detonated",
		"kind", bomb.Kind.String(),
		"x", center.X(),
		"z", center.Z(),
		"tick", g.CurrentTick,
	)
}
