package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/logging"
)

// emptyConfig returns the default tuning with nothing spawned at reset
func emptyConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Actors.Hostile = 0
	cfg.Actors.Friendly = 0
	cfg.Crates.Green = 0
	cfg.Crates.Yellow = 0
	cfg.Crates.Blue = 0
	cfg.Vehicles.Spawns = nil
	return cfg
}

func newTestGame(t *testing.T, cfg *config.GameConfig, opts ...Option) *Game {
	t.Helper()
	base := []Option{WithLogger(logging.Discard()), WithSeed(1)}
	return NewGame(cfg, append(base, opts...)...)
}

func addActor(t *testing.T, g *Game, faction entity.Faction, pos mgl64.Vec3) int {
	t.Helper()
	slot, actor, err := g.Actors.Acquire()
	require.NoError(t, err)
	*actor = entity.NewCombatActor(faction, pos, g.Config.Actors.Health, g.Config.Actors.Mass)
	if faction == entity.Hostile {
		g.Counts.Hostile++
	} else {
		g.Counts.Friendly++
	}
	return slot
}

func addVehicle(t *testing.T, g *Game, pos mgl64.Vec3) int {
	t.Helper()
	slot, vehicle, err := g.Vehicles.Acquire()
	require.NoError(t, err)
	*vehicle = entity.NewVehicle(pos, g.Config.Vehicles.Health, g.Config.Vehicles.Scale)
	g.Counts.Vehicles++
	return slot
}

func addCrate(t *testing.T, g *Game, category entity.CrateCategory, pos mgl64.Vec3, motion entity.MotionState) int {
	t.Helper()
	slot, crate, err := g.Crates.Acquire()
	require.NoError(t, err)
	*crate = entity.NewCrate(category, pos, g.Config.Crates.Mass, motion)
	return slot
}

// scriptedSampler returns the given points in order, then repeats the last one
func scriptedSampler(points ...mgl64.Vec3) (Sampler, *int) {
	calls := 0
	return func(_ config.Zone, y float64) mgl64.Vec3 {
		p := points[min(calls, len(points)-1)]
		calls++
		return mgl64.Vec3{p.X(), y, p.Z()}
	}, &calls
}
