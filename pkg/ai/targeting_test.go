package ai

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

func spawnActors(t *testing.T, actors ...entity.CombatActor) *pool.Pool[entity.CombatActor] {
	t.Helper()
	p := pool.New[entity.CombatActor](len(actors) + 2)
	for _, a := range actors {
		_, slot, err := p.Acquire()
		require.NoError(t, err)
		*slot = a
	}
	return p
}

func spawnVehicles(t *testing.T, positions ...mgl64.Vec3) *pool.Pool[entity.Vehicle] {
	t.Helper()
	p := pool.New[entity.Vehicle](len(positions) + 1)
	for _, pos := range positions {
		_, slot, err := p.Acquire()
		require.NoError(t, err)
		*slot = entity.NewVehicle(pos, 200, 3)
	}
	return p
}

func actorAt(f entity.Faction, x, z float64) entity.CombatActor {
	return entity.NewCombatActor(f, mgl64.Vec3{x, 1, z}, 100, 1)
}

func TestSelectActorTarget_HostilePriority(t *testing.T) {
	hostile := actorAt(entity.Hostile, 0, 0)
	player := entity.NewPlayer(mgl64.Vec3{0, 1, 20}, 100, 2, 0.5)

	tests := []struct {
		name     string
		player   *entity.Player
		actors   []entity.CombatActor
		vehicles []mgl64.Vec3
		kind     TargetKind
		slot     int
	}{
		{
			name:   "player in range wins over a closer friendly",
			player: &player,
			actors: []entity.CombatActor{hostile, actorAt(entity.Friendly, 2, 0)},
			kind:   PlayerTarget,
			slot:   -1,
		},
		{
			name:     "friendly before vehicle",
			actors:   []entity.CombatActor{hostile, actorAt(entity.Friendly, 10, 0)},
			vehicles: []mgl64.Vec3{{3, 1, 0}},
			kind:     ActorTarget,
			slot:     1,
		},
		{
			name:     "vehicle when no friendly is near",
			actors:   []entity.CombatActor{hostile, actorAt(entity.Friendly, 40, 0)},
			vehicles: []mgl64.Vec3{{3, 1, 0}},
			kind:     VehicleTarget,
			slot:     0,
		},
		{
			name:   "other hostiles are ignored",
			actors: []entity.CombatActor{hostile, actorAt(entity.Hostile, 1, 0)},
			kind:   NoTarget,
			slot:   -1,
		},
		{
			name:   "detection range is exclusive",
			actors: []entity.CombatActor{hostile, actorAt(entity.Friendly, 25, 0)},
			kind:   NoTarget,
			slot:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actors := spawnActors(t, tt.actors...)
			self, _ := actors.Get(0)
			got := SelectActorTarget(self, Candidates{
				Player:   tt.player,
				Actors:   actors,
				Vehicles: spawnVehicles(t, tt.vehicles...),
			}, 25)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.slot, got.Slot)
		})
	}
}

func TestSelectActorTarget_FriendlyIgnoresPlayer(t *testing.T) {
	player := entity.NewPlayer(mgl64.Vec3{1, 1, 0}, 100, 2, 0.5)
	actors := spawnActors(t, actorAt(entity.Friendly, 0, 0), actorAt(entity.Hostile, 20, 0))
	self, _ := actors.Get(0)

	got := SelectActorTarget(self, Candidates{Player: &player, Actors: actors, Vehicles: spawnVehicles(t)}, 25)
	assert.Equal(t, ActorTarget, got.Kind)
	assert.Equal(t, 1, got.Slot)
}

// Selection is first-match in slot order, not nearest. A far candidate in a
// lower slot beats a near one in a higher slot. This mirrors how the arena has
// always behaved; switching to nearest-match would change tactics visibly.
func TestSelectActorTarget_FirstMatchNotNearest(t *testing.T) {
	actors := spawnActors(t,
		actorAt(entity.Friendly, 0, 0),
		actorAt(entity.Hostile, 24, 0), // far, lower slot
		actorAt(entity.Hostile, 1, 0),  // near, higher slot
	)
	self, _ := actors.Get(0)

	got := SelectActorTarget(self, Candidates{Actors: actors, Vehicles: spawnVehicles(t)}, 25)
	assert.Equal(t, 1, got.Slot, "the lower slot wins even though slot 2 is closer")
	assert.Equal(t, mgl64.Vec3{24, 1, 0}, got.Position)
}

func TestSelectActorTarget_SkipsReleasedSlots(t *testing.T) {
	actors := spawnActors(t,
		actorAt(entity.Friendly, 0, 0),
		actorAt(entity.Hostile, 5, 0),
		actorAt(entity.Hostile, 6, 0),
	)
	actors.Release(1)
	self, _ := actors.Get(0)

	got := SelectActorTarget(self, Candidates{Actors: actors, Vehicles: spawnVehicles(t)}, 25)
	assert.Equal(t, 2, got.Slot)
}

func TestSelectVehicleTarget(t *testing.T) {
	vehicles := spawnVehicles(t, mgl64.Vec3{0, 1, 0})
	tank, _ := vehicles.Get(0)
	detection := 35.0 * 3

	t.Run("player first", func(t *testing.T) {
		player := entity.NewPlayer(mgl64.Vec3{0, 1, 100}, 100, 2, 0.5)
		actors := spawnActors(t, actorAt(entity.Friendly, 1, 0))
		got := SelectVehicleTarget(tank, Candidates{Player: &player, Actors: actors}, detection)
		assert.Equal(t, PlayerTarget, got.Kind)
	})

	t.Run("friendly actors only", func(t *testing.T) {
		actors := spawnActors(t, actorAt(entity.Hostile, 1, 0), actorAt(entity.Friendly, 50, 0))
		got := SelectVehicleTarget(tank, Candidates{Actors: actors}, detection)
		assert.Equal(t, ActorTarget, got.Kind)
		assert.Equal(t, 1, got.Slot)
	})

	t.Run("dead player is not a target", func(t *testing.T) {
		player := entity.NewPlayer(mgl64.Vec3{0, 1, 5}, 100, 2, 0.5)
		player.Kill()
		got := SelectVehicleTarget(tank, Candidates{Player: &player, Actors: spawnActors(t)}, detection)
		assert.False(t, got.Found())
	})
}

func TestNearestVehicle(t *testing.T) {
	vehicles := spawnVehicles(t,
		mgl64.Vec3{60, 1, 0},
		mgl64.Vec3{30, 1, 0},
		mgl64.Vec3{-30, 1, 0},
	)

	assert.Equal(t, 1, NearestVehicle(mgl64.Vec3{}, vehicles, 70), "nearest, ties to the lower slot")
	assert.Equal(t, -1, NearestVehicle(mgl64.Vec3{}, vehicles, 20))

	vehicles.Release(1)
	assert.Equal(t, 2, NearestVehicle(mgl64.Vec3{}, vehicles, 70))
}

func TestTarget_AimPoint(t *testing.T) {
	p := mgl64.Vec3{1, 1, 1}
	assert.Equal(t, mgl64.Vec3{1, 1.5, 1}, Target{Kind: PlayerTarget, Position: p}.AimPoint())
	assert.Equal(t, p, Target{Kind: ActorTarget, Position: p}.AimPoint())
	assert.False(t, None.Found())
	assert.Equal(t, "vehicle", VehicleTarget.String())
}
