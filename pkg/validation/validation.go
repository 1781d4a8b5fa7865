// Package validation checks configuration and per-frame input before they reach the simulation.
package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/IndieDev99/battleforce/pkg/config"
)

// MaxFrameTime caps a single simulation step. Longer stalls (debugger pauses,
// window drags) are replayed as one capped step instead of a tunnelling leap.
const MaxFrameTime = 0.1

// MaxLookDelta bounds the view rotation a single frame may request, in radians
const MaxLookDelta = math.Pi

// ErrInvalidConfig is wrapped by every ValidateConfig failure
var ErrInvalidConfig = errors.New("invalid config")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// ValidateConfig rejects configurations the simulation cannot run with
func ValidateConfig(cfg *config.GameConfig) error {
	if cfg == nil {
		return invalid("config is nil")
	}

	pools := map[string]int{
		"actors":         cfg.Pools.Actors,
		"vehicles":       cfg.Pools.Vehicles,
		"crates":         cfg.Pools.Crates,
		"playerBullets":  cfg.Pools.PlayerBullets,
		"actorBullets":   cfg.Pools.ActorBullets,
		"vehicleBullets": cfg.Pools.VehicleBullets,
		"bombs":          cfg.Pools.Bombs,
		"vehicleBombs":   cfg.Pools.VehicleBombs,
		"missiles":       cfg.Pools.Missiles,
	}
	for name, capacity := range pools {
		if capacity <= 0 {
			return invalid("pool %s must have positive capacity, got %d", name, capacity)
		}
	}

	if cfg.Actors.Hostile < 0 || cfg.Actors.Friendly < 0 {
		return invalid("actor counts cannot be negative")
	}
	if n := cfg.Actors.Hostile + cfg.Actors.Friendly; n > cfg.Pools.Actors {
		return invalid("%d actors do not fit a pool of %d", n, cfg.Pools.Actors)
	}
	if cfg.Crates.Green < 0 || cfg.Crates.Yellow < 0 || cfg.Crates.Blue < 0 {
		return invalid("crate counts cannot be negative")
	}
	if n := cfg.Crates.Green + cfg.Crates.Yellow + cfg.Crates.Blue; n > cfg.Pools.Crates {
		return invalid("%d crates do not fit a pool of %d", n, cfg.Pools.Crates)
	}
	if len(cfg.Vehicles.Spawns) > cfg.Pools.Vehicles {
		return invalid("%d vehicle spawns do not fit a pool of %d", len(cfg.Vehicles.Spawns), cfg.Pools.Vehicles)
	}

	periods := map[string]float64{
		"player.firePeriod":   cfg.Player.FirePeriod,
		"actors.firePeriod":   cfg.Actors.FirePeriod,
		"vehicles.firePeriod": cfg.Vehicles.FirePeriod,
		"vehicles.bombPeriod": cfg.Vehicles.BombPeriod,
		"jet.bombPeriod":      cfg.Jet.BombPeriod,
		"jet.missilePeriod":   cfg.Jet.MissilePeriod,
	}
	for name, period := range periods {
		if !(period > 0) {
			return invalid("%s must be positive, got %v", name, period)
		}
	}

	if cfg.Actors.Mass <= 0 || cfg.Crates.Mass <= 0 {
		return invalid("masses must be positive")
	}
	if cfg.Vehicles.Scale <= 0 {
		return invalid("vehicles.scale must be positive, got %v", cfg.Vehicles.Scale)
	}
	if cfg.World.Gravity < 0 || math.IsNaN(cfg.World.Gravity) {
		return invalid("world.gravity must be non-negative, got %v", cfg.World.Gravity)
	}
	if cfg.Actors.PlacementAttempts <= 0 || cfg.Crates.PlacementAttempts <= 0 {
		return invalid("placement attempts must be positive")
	}
	for _, bomb := range []config.BombSpec{cfg.Weapons.JetBomb, cfg.Weapons.VehicleBomb} {
		if bomb.Radius <= 0 || bomb.BlastDuration <= 0 || bomb.BlastRadius < 0 {
			return invalid("bomb radius and blast duration must be positive")
		}
	}
	if cfg.Audio.MaxDistance <= 0 {
		return invalid("audio.maxDistance must be positive, got %v", cfg.Audio.MaxDistance)
	}
	if cfg.Display.TerminalScale <= 0 || cfg.Display.PixelsPerUnit <= 0 {
		return invalid("display scales must be positive")
	}

	return nil
}

// SanitizeFrameTime turns a measured frame time into a safe simulation step.
// NaN and negative values become zero. Anything above MaxFrameTime is capped.
func SanitizeFrameTime(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	if dt > MaxFrameTime {
		return MaxFrameTime
	}
	return dt
}

// SanitizeAxis clamps a movement axis to [-1, 1]. NaN becomes zero.
func SanitizeAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// SanitizeLook clamps a view rotation delta. NaN becomes zero.
func SanitizeLook(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-MaxLookDelta, math.Min(MaxLookDelta, v))
}
