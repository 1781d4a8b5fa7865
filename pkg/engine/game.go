// pkg/engine/game.go
package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/logging"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

// GameStatus is the round state machine: Active -> Over -> (Restart) Active
type GameStatus int

const (
	GameStatusActive GameStatus = iota
	GameStatusOver
)

// String returns the status name
func (s GameStatus) String() string {
	if s == GameStatusOver {
		return "over"
	}
	return "active"
}

// Counts holds the live population the HUD shows
type Counts struct {
	Hostile  int
	Friendly int
	Vehicles int
	Crates   int
}

// Sampler draws a random ground position inside a zone at the given altitude.
// Reset uses it for every randomized placement.
type Sampler func(zone config.Zone, y float64) mgl64.Vec3

// Game owns the entire arena. Every field is mutated only by Update and Reset,
// both under EntityLock. Event handlers run inside Update with the lock held
// and must not call back into the Game.
type Game struct {
	Config *config.GameConfig

	Player entity.Player
	Jet    entity.Jet

	Actors         *pool.Pool[entity.CombatActor]
	Vehicles       *pool.Pool[entity.Vehicle]
	Crates         *pool.Pool[entity.Crate]
	PlayerBullets  *pool.Pool[entity.Bullet]
	ActorBullets   *pool.Pool[entity.Bullet]
	VehicleBullets *pool.Pool[entity.Bullet]
	Bombs          *pool.Pool[entity.Bomb]
	VehicleBombs   *pool.Pool[entity.Bomb]
	Missiles       *pool.Pool[entity.Missile]

	Counts             Counts
	Status             GameStatus
	CurrentTick        uint64
	PlacementFallbacks int

	EventBus   *event.Bus
	EntityLock sync.RWMutex

	logger  *logging.Logger
	rng     *rand.Rand
	sampler Sampler
	session context.Context

	frame  frameState
	orders []fireOrder
}

// frameState carries values from the player stage to the collision stage
type frameState struct {
	move     mgl64.Vec3
	speed    float64
	prevEyeY float64
}

// Option customizes a Game at construction
type Option func(*Game)

// WithEventBus publishes sound and lifecycle events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(g *Game) { g.EventBus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithRand sets the random source used for placement and patrol drift
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithSeed seeds a deterministic random source
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithSampler replaces the placement sampler
func WithSampler(sampler Sampler) Option {
	return func(g *Game) { g.sampler = sampler }
}

// NewGame sizes every pool from config and resets the arena.
// Pool capacities never change afterwards.
func NewGame(cfg *config.GameConfig, opts ...Option) *Game {
	game := &Game{
		Config:         cfg,
		Actors:         pool.New[entity.CombatActor](cfg.Pools.Actors),
		Vehicles:       pool.New[entity.Vehicle](cfg.Pools.Vehicles),
		Crates:         pool.New[entity.Crate](cfg.Pools.Crates),
		PlayerBullets:  pool.New[entity.Bullet](cfg.Pools.PlayerBullets),
		ActorBullets:   pool.New[entity.Bullet](cfg.Pools.ActorBullets),
		VehicleBullets: pool.New[entity.Bullet](cfg.Pools.VehicleBullets),
		Bombs:          pool.New[entity.Bomb](cfg.Pools.Bombs),
		VehicleBombs:   pool.New[entity.Bomb](cfg.Pools.VehicleBombs),
		Missiles:       pool.New[entity.Missile](cfg.Pools.Missiles),
		session:        context.Background(),
	}

	for _, opt := range opts {
		opt(game)
	}
	if game.EventBus == nil {
		game.EventBus = event.NewEventBus()
	}
	if game.logger == nil {
		game.logger = logging.NewLogger()
	}
	if game.rng == nil {
		seed := uint64(time.Now().UnixNano())
		game.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if game.sampler == nil {
		game.sampler = game.uniformSampler
	}

	game.resetInternal()
	return game
}

// Update advances the arena by one frame. While the round is over only the
// restart request is honored.
func (g *Game) Update(in Input) {
	in = sanitizeInput(in)

	// Lock the entire update so snapshots never observe a half-finished frame
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status == GameStatusOver {
		if in.Restart {
			g.resetInternal()
		}
		return
	}

	g.updateGameState(in)
}

// updateGameState runs the fixed per-frame pipeline.
// Note: Called from within locked context in Update()
func (g *Game) updateGameState(in Input) {
	dt := in.Dt
	g.orders = g.orders[:0]

	g.updatePlayer(in, dt)
	g.updateBehavior(dt)
	g.integrate(dt)
	g.resolveCollisions(dt)
	g.spawnOrdered()
	g.expireProjectiles(dt)
	g.updateCounts()

	g.CurrentTick++
}

// updateCounts refreshes derived counts and ends the round when the player is down
func (g *Game) updateCounts() {
	g.Counts.Crates = g.Crates.ActiveCount()
	if !g.Player.Alive() {
		g.endGameInternal("player eliminated")
	}
}

// endGameInternal ends the round (must be called with lock held)
func (g *Game) endGameInternal(reason string) {
	if g.Status == GameStatusOver {
		return
	}
	g.Status = GameStatusOver
	g.logger.Info(g.session, "game over",
		"reason", reason,
		"tick", g.CurrentTick,
		"hostiles", g.Counts.Hostile,
		"friendlies", g.Counts.Friendly,
		"vehicles", g.Counts.Vehicles,
	)
	g.EventBus.Publish(&event.BaseEvent{
		EventType: event.GameOver,
		Source:    g,
	})
}

// IsOver reports whether the round has ended
func (g *Game) IsOver() bool {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	return g.Status == GameStatusOver
}

// publishSound sends a positioned sound cue
func (g *Game) publishSound(kind event.Type, position mgl64.Vec3) {
	g.EventBus.Publish(event.NewSoundEvent(kind, g, position))
}

// publishAmbientSound sends a cue heard the same everywhere
func (g *Game) publishAmbientSound(kind event.Type) {
	g.EventBus.Publish(event.NewAmbientSoundEvent(kind, g))
}
