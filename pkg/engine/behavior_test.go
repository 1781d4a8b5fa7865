package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/event"
)

func TestIntegrate_ZeroStepIsIdentity(t *testing.T) {
	game := newTestGame(t, config.DefaultConfig())
	for range 30 {
		game.Update(Input{Dt: 1.0 / 60, Fire: true, Move: Move{Forward: 1}, LookYaw: 0.01})
	}

	before := game.Snapshot()
	game.integrate(0)
	for _, crate := range game.Crates.All() {
		crate.Update(game.Config.World.Gravity, 0)
	}
	after := game.Snapshot()

	for i := range before.Actors {
		assert.Equal(t, before.Actors[i].Position, after.Actors[i].Position)
	}
	for i := range before.Vehicles {
		assert.Equal(t, before.Vehicles[i].Position, after.Vehicles[i].Position)
	}
	for i := range before.Crates {
		assert.Equal(t, before.Crates[i].Position, after.Crates[i].Position)
		assert.Equal(t, before.Crates[i].Orientation, after.Crates[i].Orientation)
	}
	for i := range before.Bullets {
		assert.Equal(t, before.Bullets[i].Position, after.Bullets[i].Position)
	}
	for i := range before.Bombs {
		assert.Equal(t, before.Bombs[i].Position, after.Bombs[i].Position)
	}
	for i := range before.Missiles {
		assert.Equal(t, before.Missiles[i].Position, after.Missiles[i].Position)
	}
}

func TestPlayer_LandsOnBlueCrate(t *testing.T) {
	cfg := emptyConfig()
	cfg.Crates.Blue = 1
	cfg.Crates.StackBase = config.Point{X: 0, Y: 0.5, Z: 0}
	game := newTestGame(t, cfg)

	game.Player.Position = mgl64.Vec3{0, 3, 0}
	game.Player.OnGround = false

	for frames := 0; !game.Player.OnGround && frames < 120; frames++ {
		game.Update(Input{Dt: 1.0 / 60})
	}

	require.True(t, game.Player.OnGround)
	assert.Equal(t, 2.0, game.Player.Position.Y(), "eye rests one half height above the crate top")
	crate, _ := game.Crates.Get(0)
	assert.True(t, crate.IsDynamic(), "landing on a blue crate wakes it")
}

func TestPlayer_JumpAndFallBack(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	start := game.Player.Position.Y()

	game.Update(Input{Dt: 1.0 / 60, Jump: true})
	assert.False(t, game.Player.OnGround)
	assert.Greater(t, game.Player.Position.Y(), start)

	for frames := 0; !game.Player.OnGround && frames < 120; frames++ {
		game.Update(Input{Dt: 1.0 / 60})
	}
	assert.True(t, game.Player.OnGround)
	assert.Equal(t, start, game.Player.Position.Y())
}

func TestCrates_FrozenStackStaysPut(t *testing.T) {
	cfg := emptyConfig()
	cfg.Crates.Blue = 3
	game := newTestGame(t, cfg)

	for range 60 {
		game.Update(Input{Dt: 1.0 / 60})
	}
	for i, crate := range game.Crates.All() {
		assert.Equal(t, entity.Frozen, crate.Motion)
		assert.Equal(t, mgl64.Vec3{-40, 0.5 + float64(i), -40}, crate.Position)
		assert.Equal(t, mgl64.QuatIdent(), crate.Orientation)
	}
}

func TestCrates_PlayerPush(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	slot := addCrate(t, game, entity.CrateGreen, mgl64.Vec3{0, 0.5, -44.2}, entity.Frozen)

	game.Update(Input{Dt: 1.0 / 60, Move: Move{Forward: 1}})

	crate, _ := game.Crates.Get(slot)
	assert.True(t, crate.IsDynamic())
	assert.Greater(t, crate.Velocity.Z(), 0.0)
}

func TestCrates_StandingDoesNotPushNeighbour(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	under := addCrate(t, game, entity.CrateGreen, mgl64.Vec3{0, 0.5, 0}, entity.Frozen)
	beside := addCrate(t, game, entity.CrateGreen, mgl64.Vec3{1, 0.5, 0}, entity.Frozen)

	game.Player.Position = mgl64.Vec3{0.45, 2, 0}
	game.Player.OnGround = true
	game.frame.prevEyeY = 2

	for range 5 {
		game.Update(Input{Dt: 1.0 / 60, Move: Move{Forward: 1}})
	}

	require.True(t, game.Player.OnGround)
	assert.InDelta(t, 2.0, game.Player.Position.Y(), 1e-9)
	for _, slot := range []int{under, beside} {
		crate, _ := game.Crates.Get(slot)
		assert.Equal(t, entity.Frozen, crate.Motion)
		assert.Equal(t, mgl64.Vec3{}, crate.Velocity)
	}
	crate, _ := game.Crates.Get(beside)
	assert.Equal(t, mgl64.Vec3{1, 0.5, 0}, crate.Position)
}

func TestCrates_TouchWakesWithoutPush(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	slot := addCrate(t, game, entity.CrateGreen, mgl64.Vec3{0, 0.5, -44.2}, entity.Frozen)

	game.Update(Input{Dt: 1.0 / 60})

	crate, _ := game.Crates.Get(slot)
	assert.True(t, crate.IsDynamic())
	assert.Equal(t, mgl64.Vec3{}, crate.Velocity)
}

func TestSeparateCrates(t *testing.T) {
	tests := []struct {
		name      string
		lower     mgl64.Vec3
		upper     mgl64.Vec3
		fallSpeed float64
		wantLower mgl64.Vec3
		wantUpper mgl64.Vec3
		wantUpY   float64
	}{
		{
			name:      "nearly stacked pair gets no sideways push",
			lower:     mgl64.Vec3{0, 0.5, 0},
			upper:     mgl64.Vec3{0.05, 1.45, 0},
			fallSpeed: -0.1,
			wantLower: mgl64.Vec3{0, 0, 0},
			wantUpper: mgl64.Vec3{0, 0.05, 0},
			wantUpY:   1.5,
		},
		{
			name:      "side by side pair is pushed apart",
			lower:     mgl64.Vec3{0, 0.5, 0},
			upper:     mgl64.Vec3{0.8, 0.5, 0},
			wantLower: mgl64.Vec3{-0.5, 0, 0},
			wantUpper: mgl64.Vec3{0.5, 0, 0},
			wantUpY:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lower := entity.NewCrate(entity.CrateBlue, tt.lower, 2, entity.Frozen)
			upper := entity.NewCrate(entity.CrateBlue, tt.upper, 2, entity.Dynamic)
			upper.Velocity = mgl64.Vec3{0, tt.fallSpeed, 0}

			separateCrates(&lower, &upper)

			assert.True(t, lower.IsDynamic())
			assert.True(t, upper.IsDynamic())
			for i := range 3 {
				assert.InDelta(t, tt.wantLower[i], lower.Velocity[i], 1e-9)
				assert.InDelta(t, tt.wantUpper[i], upper.Velocity[i], 1e-9)
			}
			assert.InDelta(t, tt.wantUpY, upper.Position.Y(), 1e-9)
		})
	}
}

func TestSeparateCrates_BounceBleedsSpin(t *testing.T) {
	lower := entity.NewCrate(entity.CrateBlue, mgl64.Vec3{0, 0.5, 0}, 2, entity.Dynamic)
	upper := entity.NewCrate(entity.CrateBlue, mgl64.Vec3{0, 1.4, 0}, 2, entity.Dynamic)
	upper.Velocity = mgl64.Vec3{0, -2, 0}
	upper.AngularVelocity = mgl64.Vec3{4, 0, 2}

	separateCrates(&lower, &upper)

	assert.InDelta(t, 1.0, upper.Velocity.Y(), 1e-9)
	assert.Equal(t, mgl64.Vec3{2, 0, 1}, upper.AngularVelocity)
	assert.Equal(t, mgl64.Vec3{}, lower.AngularVelocity)
}

func TestActors_FireWhenInRange(t *testing.T) {
	bus := event.NewEventBus()
	var shots []*event.SoundEvent
	bus.Subscribe(event.ActorShot, func(e event.Event) { shots = append(shots, e.(*event.SoundEvent)) })

	cfg := emptyConfig()
	game := newTestGame(t, cfg, WithEventBus(bus))
	slot := addActor(t, game, entity.Hostile, mgl64.Vec3{0, 1, -37})
	actor, _ := game.Actors.Get(slot)
	actor.Gun.Timer = cfg.Actors.FirePeriod - 0.05

	game.Update(Input{Dt: 0.1})

	require.Equal(t, 1, game.ActorBullets.ActiveCount())
	bullet, _ := game.ActorBullets.Get(0)
	assert.InDelta(t, cfg.Weapons.ActorBullet.Speed, bullet.Velocity.Len(), 1e-9)
	assert.Less(t, bullet.Velocity.Z(), 0.0, "aimed at the player")
	assert.Greater(t, bullet.Velocity.Y(), 0.0, "aimed above the eye")
	assert.Equal(t, game.Actors.Ref(slot), bullet.Shooter)
	assert.Equal(t, 0.0, actor.Gun.Timer)
	require.Len(t, shots, 1)
}

func TestActors_GunIdleWithoutTarget(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	slot := addActor(t, game, entity.Friendly, mgl64.Vec3{30, 1, 30})
	actor, _ := game.Actors.Get(slot)
	actor.Velocity = mgl64.Vec3{1, 0, 0}

	game.Update(Input{Dt: 0.1})

	assert.Equal(t, 0.0, actor.Gun.Timer)
	assert.InDelta(t, 0.95, actor.Velocity.X(), 1e-12)
}

func TestVehicles_FireAndBomb(t *testing.T) {
	cfg := emptyConfig()
	game := newTestGame(t, cfg)
	slot := addVehicle(t, game, mgl64.Vec3{0, 1, -20})
	tank, _ := game.Vehicles.Get(slot)
	tank.Gun.Timer = cfg.Vehicles.FirePeriod
	tank.BombBay.Timer = cfg.Vehicles.BombPeriod

	game.Update(Input{Dt: 0.05})

	require.Equal(t, 1, game.VehicleBullets.ActiveCount())
	require.Equal(t, 1, game.VehicleBombs.ActiveCount())
	bullet, _ := game.VehicleBullets.Get(0)
	bomb, _ := game.VehicleBombs.Get(0)
	assert.InDelta(t, 1+cfg.Vehicles.MuzzleHeight*cfg.Vehicles.Scale, bullet.Position.Y(), 1e-9)
	assert.InDelta(t, 1+cfg.Vehicles.BombHeight*cfg.Vehicles.Scale, bomb.Position.Y(), 0.1)
	assert.Equal(t, entity.VehicleBomb, bomb.Kind)
	assert.Equal(t, 0.0, tank.Gun.Timer)
	assert.Equal(t, 0.0, tank.BombBay.Timer)
}

func TestJet_BombsOnlyWhileHostilesRemain(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	game.Jet.BombBay.Timer = 10

	game.Update(Input{Dt: 0.05})
	assert.Equal(t, 0, game.Bombs.ActiveCount())

	addActor(t, game, entity.Hostile, mgl64.Vec3{40, 1, 40})
	game.Update(Input{Dt: 0.05})
	require.Equal(t, 1, game.Bombs.ActiveCount())
	bomb, _ := game.Bombs.Get(0)
	assert.Equal(t, game.Jet.Position, bomb.Position)
	assert.Equal(t, 0.0, game.Jet.BombBay.Timer)
}

func TestJet_LocksAndLaunches(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	slot := addVehicle(t, game, mgl64.Vec3{55, 1, 10})
	game.Jet.Launcher.Timer = 10

	game.Update(Input{Dt: 0.05})

	assert.Equal(t, game.Vehicles.Ref(slot), game.Jet.Lock)
	require.Equal(t, 1, game.Missiles.ActiveCount())
	assert.Equal(t, slot, game.Snapshot().Jet.LockedTarget)
	assert.True(t, game.Snapshot().Missiles[0].Guided)
}

type scriptedController struct{ inputs int }

func (c *scriptedController) NextInput(float64) Input {
	c.inputs++
	return Input{Move: Move{Forward: 1}}
}

type recordingPresenter struct{ ticks []uint64 }

func (p *recordingPresenter) Present(state *GameState) {
	p.ticks = append(p.ticks, state.Tick)
}

func TestLoop_Run(t *testing.T) {
	game := newTestGame(t, emptyConfig())
	controller := &scriptedController{}
	presenter := &recordingPresenter{}
	frames := 0

	loop := &Loop{
		Game:       game,
		Controller: controller,
		Presenter:  presenter,
		Rate:       time.Millisecond,
		MaxFrames:  3,
		OnFrame:    func(*GameState) { frames++ },
	}
	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, []uint64{1, 2, 3}, presenter.ticks)
	assert.Equal(t, 3, controller.inputs)
	assert.Equal(t, 3, frames)
}

func TestLoop_RunCancelled(t *testing.T) {
	loop := &Loop{
		Game:       newTestGame(t, emptyConfig()),
		Controller: &scriptedController{},
		Presenter:  &recordingPresenter{},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
