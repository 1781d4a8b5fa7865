package engine

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/logging"
	"github.com/IndieDev99/battleforce/pkg/physics"
)

// Reset reinitializes every pool, the player and the jet, and repopulates the
// arena. Capacities are unchanged. Calling it twice in a row yields the same counts.
func (g *Game) Reset() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	g.resetInternal()
}

// resetInternal rebuilds the arena (must be called with lock held)
func (g *Game) resetInternal() {
	cfg := g.Config

	g.Actors.Reset()
	g.Vehicles.Reset()
	g.Crates.Reset()
	g.PlayerBullets.Reset()
	g.ActorBullets.Reset()
	g.VehicleBullets.Reset()
	g.Bombs.Reset()
	g.VehicleBombs.Reset()
	g.Missiles.Reset()

	g.session = logging.WithSessionID(context.Background(), "")
	g.Counts = Counts{}
	g.PlacementFallbacks = 0
	g.Status = GameStatusActive
	g.CurrentTick = 0
	g.orders = g.orders[:0]

	g.Player = entity.NewPlayer(cfg.Player.Start.Vec(), cfg.Player.Health, cfg.Player.Height, cfg.Player.Radius)
	g.Jet = entity.NewJet(g.orbit())
	g.frame = frameState{prevEyeY: g.Player.Position.Y()}

	g.spawnActors(entity.Hostile, cfg.Actors.Hostile, cfg.Actors.HostileZone)
	g.spawnActors(entity.Friendly, cfg.Actors.Friendly, cfg.Actors.FriendlyZone)
	g.spawnScatteredCrates(entity.CrateGreen, cfg.Crates.Green)
	g.spawnScatteredCrates(entity.CrateYellow, cfg.Crates.Yellow)
	g.spawnCrateStack()
	g.spawnVehicles()
	g.Counts.Crates = g.Crates.ActiveCount()

	g.logger.Info(g.session, "arena reset",
		"hostiles", g.Counts.Hostile,
		"friendlies", g.Counts.Friendly,
		"vehicles", g.Counts.Vehicles,
		"crates", g.Counts.Crates,
		"placement_fallbacks", g.PlacementFallbacks,
	)
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameReset,
		Source:    g,
	})
}

// orbit returns the jet's flight circle from config
func (g *Game) orbit() entity.Orbit {
	return entity.Orbit{
		Center:       g.Config.Jet.Center.Vec(),
		Radius:       g.Config.Jet.OrbitRadius,
		Height:       g.Config.Jet.Height,
		AngularSpeed: g.Config.Jet.AngularSpeed,
	}
}

// uniformSampler draws a position uniformly from a zone
func (g *Game) uniformSampler(zone config.Zone, y float64) mgl64.Vec3 {
	return mgl64.Vec3{
		zone.MinX + g.rng.Float64()*(zone.MaxX-zone.MinX),
		y,
		zone.MinZ + g.rng.Float64()*(zone.MaxZ-zone.MinZ),
	}
}

// place samples up to attempts candidates and returns the first one for which
// isFree reports no overlap. When every attempt overlaps, the last candidate is
// accepted and the fallback is logged.
func (g *Game) place(what string, zone config.Zone, y float64, attempts int, isFree func(physics.Box) bool, halfExtents mgl64.Vec3) mgl64.Vec3 {
	var candidate mgl64.Vec3
	for attempt := 0; attempt < attempts; attempt++ {
		candidate = g.sampler(zone, y)
		if isFree(physics.BoxAround(candidate, halfExtents)) {
			return candidate
		}
	}

	g.PlacementFallbacks++
	g.logger.Warn(g.session, "placement fell back to an overlapping position",
		"entity", what,
		"attempts", attempts,
		"x", candidate.X(),
		"z", candidate.Z(),
	)
	return candidate
}

// spawnActors places count actors of one faction, avoiding other actors and the player
func (g *Game) spawnActors(faction entity.Faction, count int, zone config.Zone) {
	cfg := g.Config.Actors
	player := g.Player.Box()

	isFree := func(box physics.Box) bool {
		if box.Overlaps(player) {
			return false
		}
		for _, other := range g.Actors.All() {
			if box.Overlaps(other.Box()) {
				return false
			}
		}
		return true
	}

	for range count {
		pos := g.place(faction.String()+" actor", zone, entity.ActorRestHeight, cfg.PlacementAttempts, isFree, entity.ActorHalfExtents)

		_, actor, err := g.Actors.Acquire()
		if err != nil {
			g.logger.Warn(g.session, "actor pool full during reset", "faction", faction.String(), "error", err.Error())
			return
		}
		*actor = entity.NewCombatActor(faction, pos, cfg.Health, cfg.Mass)

		if faction == entity.Hostile {
			g.Counts.Hostile++
		} else {
			g.Counts.Friendly++
		}
	}
}

// spawnScatteredCrates places dynamic crates, avoiding other crates and the player
func (g *Game) spawnScatteredCrates(category entity.CrateCategory, count int) {
	cfg := g.Config.Crates
	player := g.Player.Box()
	half := mgl64.Vec3{entity.CrateHalfSize, entity.CrateHalfSize, entity.CrateHalfSize}

	isFree := func(box physics.Box) bool {
		if box.Overlaps(player) {
			return false
		}
		for _, other := range g.Crates.All() {
			if box.Overlaps(other.Box()) {
				return false
			}
		}
		return true
	}

	for range count {
		pos := g.place(category.String()+" crate", cfg.ScatterZone, entity.CrateHalfSize, cfg.PlacementAttempts, isFree, half)

		_, crate, err := g.Crates.Acquire()
		if err != nil {
			g.logger.Warn(g.session, "crate pool full during reset", "category", category.String(), "error", err.Error())
			return
		}
		*crate = entity.NewCrate(category, pos, cfg.Mass, entity.Dynamic)
	}
}

// spawnCrateStack builds the frozen blue tower
func (g *Game) spawnCrateStack() {
	cfg := g.Config.Crates
	base := cfg.StackBase.Vec()

	for i := range cfg.Blue {
		_, crate, err := g.Crates.Acquire()
		if err != nil {
			g.logger.Warn(g.session, "crate pool full during reset", "category", entity.CrateBlue.String(), "error", err.Error())
			return
		}
		pos := base.Add(mgl64.Vec3{0, float64(i), 0})
		*crate = entity.NewCrate(entity.CrateBlue, pos, cfg.Mass, entity.Frozen)
	}
}

// spawnVehicles parks a tank at every configured spawn point
func (g *Game) spawnVehicles() {
	cfg := g.Config.Vehicles

	for _, spawn := range cfg.Spawns {
		_, vehicle, err := g.Vehicles.Acquire()
		if err != nil {
			g.logger.Warn(g.session, "vehicle pool full during reset", "error", err.Error())
			return
		}
		*vehicle = entity.NewVehicle(spawn.Vec(), cfg.Health, cfg.Scale)
		g.Counts.Vehicles++
	}
}
