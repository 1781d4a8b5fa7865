// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BATTLEFORCE_WORLD_GRAVITY
const EnvPrefix = "BATTLEFORCE"

// GameConfig contains every tunable of the arena simulation
type GameConfig struct {
	World    WorldConfig   `json:"world" mapstructure:"world"`
	Pools    PoolConfig    `json:"pools" mapstructure:"pools"`
	Player   PlayerConfig  `json:"player" mapstructure:"player"`
	Actors   ActorConfig   `json:"actors" mapstructure:"actors"`
	Crates   CrateConfig   `json:"crates" mapstructure:"crates"`
	Vehicles VehicleConfig `json:"vehicles" mapstructure:"vehicles"`
	Jet      JetConfig     `json:"jet" mapstructure:"jet"`
	Weapons  WeaponConfig  `json:"weapons" mapstructure:"weapons"`
	Damage   DamageConfig  `json:"damage" mapstructure:"damage"`
	Audio    AudioConfig   `json:"audio" mapstructure:"audio"`
	Display  DisplayConfig `json:"display" mapstructure:"display"`
}

// Point is a position in world units
type Point struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
	Z float64 `json:"z" mapstructure:"z"`
}

// Vec converts the point to a vector
func (p Point) Vec() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Zone is a rectangular spawn area on the ground plane. Bounds are inclusive.
type Zone struct {
	MinX float64 `json:"minX" mapstructure:"minX"`
	MaxX float64 `json:"maxX" mapstructure:"maxX"`
	MinZ float64 `json:"minZ" mapstructure:"minZ"`
	MaxZ float64 `json:"maxZ" mapstructure:"maxZ"`
}

// WorldConfig contains arena-wide physics settings
type WorldConfig struct {
	Gravity         float64 `json:"gravity" mapstructure:"gravity"`
	GroundSize      float64 `json:"groundSize" mapstructure:"groundSize"`
	ProjectileRange float64 `json:"projectileRange" mapstructure:"projectileRange"`
	MissileRange    float64 `json:"missileRange" mapstructure:"missileRange"`
}

// PoolConfig fixes the capacity of each species pool
type PoolConfig struct {
	Actors         int `json:"actors" mapstructure:"actors"`
	Vehicles       int `json:"vehicles" mapstructure:"vehicles"`
	Crates         int `json:"crates" mapstructure:"crates"`
	PlayerBullets  int `json:"playerBullets" mapstructure:"playerBullets"`
	ActorBullets   int `json:"actorBullets" mapstructure:"actorBullets"`
	VehicleBullets int `json:"vehicleBullets" mapstructure:"vehicleBullets"`
	Bombs          int `json:"bombs" mapstructure:"bombs"`
	VehicleBombs   int `json:"vehicleBombs" mapstructure:"vehicleBombs"`
	Missiles       int `json:"missiles" mapstructure:"missiles"`
}

// PlayerConfig contains the first-person controls and rifle
type PlayerConfig struct {
	Start        Point   `json:"start" mapstructure:"start"`
	Health       float64 `json:"health" mapstructure:"health"`
	WalkSpeed    float64 `json:"walkSpeed" mapstructure:"walkSpeed"`
	RunSpeed     float64 `json:"runSpeed" mapstructure:"runSpeed"`
	JumpStrength float64 `json:"jumpStrength" mapstructure:"jumpStrength"`
	Height       float64 `json:"height" mapstructure:"height"`
	Radius       float64 `json:"radius" mapstructure:"radius"`
	FirePeriod   float64 `json:"firePeriod" mapstructure:"firePeriod"`
}

// ActorConfig contains the ground trooper population and behavior
type ActorConfig struct {
	Hostile           int     `json:"hostile" mapstructure:"hostile"`
	Friendly          int     `json:"friendly" mapstructure:"friendly"`
	Health            float64 `json:"health" mapstructure:"health"`
	Mass              float64 `json:"mass" mapstructure:"mass"`
	DetectionRange    float64 `json:"detectionRange" mapstructure:"detectionRange"`
	ChaseForce        float64 `json:"chaseForce" mapstructure:"chaseForce"`
	IdleDecay         float64 `json:"idleDecay" mapstructure:"idleDecay"`
	FireRange         float64 `json:"fireRange" mapstructure:"fireRange"`
	FirePeriod        float64 `json:"firePeriod" mapstructure:"firePeriod"`
	HostileZone       Zone    `json:"hostileZone" mapstructure:"hostileZone"`
	FriendlyZone      Zone    `json:"friendlyZone" mapstructure:"friendlyZone"`
	PlacementAttempts int     `json:"placementAttempts" mapstructure:"placementAttempts"`
}

// CrateConfig contains the crate layout
type CrateConfig struct {
	Green             int     `json:"green" mapstructure:"green"`
	Yellow            int     `json:"yellow" mapstructure:"yellow"`
	Blue              int     `json:"blue" mapstructure:"blue"`
	Mass              float64 `json:"mass" mapstructure:"mass"`
	StackBase         Point   `json:"stackBase" mapstructure:"stackBase"`
	ScatterZone       Zone    `json:"scatterZone" mapstructure:"scatterZone"`
	PlacementAttempts int     `json:"placementAttempts" mapstructure:"placementAttempts"`
}

// VehicleConfig contains tank settings. Ranges and offsets are multiplied by Scale.
type VehicleConfig struct {
	Spawns         []Point `json:"spawns" mapstructure:"spawns"`
	Health         float64 `json:"health" mapstructure:"health"`
	Scale          float64 `json:"scale" mapstructure:"scale"`
	DetectionRange float64 `json:"detectionRange" mapstructure:"detectionRange"`
	FireRange      float64 `json:"fireRange" mapstructure:"fireRange"`
	FirePeriod     float64 `json:"firePeriod" mapstructure:"firePeriod"`
	BombPeriod     float64 `json:"bombPeriod" mapstructure:"bombPeriod"`
	MuzzleHeight   float64 `json:"muzzleHeight" mapstructure:"muzzleHeight"`
	BombHeight     float64 `json:"bombHeight" mapstructure:"bombHeight"`
	ChaseForce     float64 `json:"chaseForce" mapstructure:"chaseForce"`
	PatrolSpeed    float64 `json:"patrolSpeed" mapstructure:"patrolSpeed"`
	PatrolDamping  float64 `json:"patrolDamping" mapstructure:"patrolDamping"`
}

// JetConfig contains the bomber's orbit and armament
type JetConfig struct {
	Center          Point   `json:"center" mapstructure:"center"`
	OrbitRadius     float64 `json:"orbitRadius" mapstructure:"orbitRadius"`
	Height          float64 `json:"height" mapstructure:"height"`
	AngularSpeed    float64 `json:"angularSpeed" mapstructure:"angularSpeed"`
	BombPeriod      float64 `json:"bombPeriod" mapstructure:"bombPeriod"`
	MissilePeriod   float64 `json:"missilePeriod" mapstructure:"missilePeriod"`
	LockOnRange     float64 `json:"lockOnRange" mapstructure:"lockOnRange"`
	MissileSpeed    float64 `json:"missileSpeed" mapstructure:"missileSpeed"`
	MissileDamage   float64 `json:"missileDamage" mapstructure:"missileDamage"`
	MissileTurnRate float64 `json:"missileTurnRate" mapstructure:"missileTurnRate"`
}

// BulletSpec describes one bullet species
type BulletSpec struct {
	Speed float64 `json:"speed" mapstructure:"speed"`
	Mass  float64 `json:"mass" mapstructure:"mass"`
	Floor float64 `json:"floor" mapstructure:"floor"`
}

// BombSpec describes one bomb species
type BombSpec struct {
	Radius        float64 `json:"radius" mapstructure:"radius"`
	FallSpeed     float64 `json:"fallSpeed" mapstructure:"fallSpeed"`
	BlastRadius   float64 `json:"blastRadius" mapstructure:"blastRadius"`
	BlastDuration float64 `json:"blastDuration" mapstructure:"blastDuration"`
}

// WeaponConfig contains projectile species
type WeaponConfig struct {
	PlayerBullet  BulletSpec `json:"playerBullet" mapstructure:"playerBullet"`
	ActorBullet   BulletSpec `json:"actorBullet" mapstructure:"actorBullet"`
	VehicleBullet BulletSpec `json:"vehicleBullet" mapstructure:"vehicleBullet"`
	JetBomb       BombSpec   `json:"jetBomb" mapstructure:"jetBomb"`
	VehicleBomb   BombSpec   `json:"vehicleBomb" mapstructure:"vehicleBomb"`
}

// DamageConfig contains the damage table
type DamageConfig struct {
	PlayerBulletVsActor   float64 `json:"playerBulletVsActor" mapstructure:"playerBulletVsActor"`
	PlayerBulletVsVehicle float64 `json:"playerBulletVsVehicle" mapstructure:"playerBulletVsVehicle"`
	ActorBulletVsPlayer   float64 `json:"actorBulletVsPlayer" mapstructure:"actorBulletVsPlayer"`
	ActorBulletVsActor    float64 `json:"actorBulletVsActor" mapstructure:"actorBulletVsActor"`
	ActorBulletVsVehicle  float64 `json:"actorBulletVsVehicle" mapstructure:"actorBulletVsVehicle"`
	VehicleBulletVsPlayer float64 `json:"vehicleBulletVsPlayer" mapstructure:"vehicleBulletVsPlayer"`
	VehicleBulletVsActor  float64 `json:"vehicleBulletVsActor" mapstructure:"vehicleBulletVsActor"`
	MeleePerSecond        float64 `json:"meleePerSecond" mapstructure:"meleePerSecond"`
	RamPerSecond          float64 `json:"ramPerSecond" mapstructure:"ramPerSecond"`
	BlastVsVehicle        float64 `json:"blastVsVehicle" mapstructure:"blastVsVehicle"`
}

// AudioConfig contains sound output settings
type AudioConfig struct {
	Enabled      bool    `json:"enabled" mapstructure:"enabled"`
	MasterVolume float64 `json:"masterVolume" mapstructure:"masterVolume"`
	MaxDistance  float64 `json:"maxDistance" mapstructure:"maxDistance"`
	SampleRate   int     `json:"sampleRate" mapstructure:"sampleRate"`
	CuesPerType  int     `json:"cuesPerType" mapstructure:"cuesPerType"`
}

// DisplayConfig contains presenter settings
type DisplayConfig struct {
	// TerminalScale is world units per terminal cell
	TerminalScale float64 `json:"terminalScale" mapstructure:"terminalScale"`
	WindowWidth   int     `json:"windowWidth" mapstructure:"windowWidth"`
	WindowHeight  int     `json:"windowHeight" mapstructure:"windowHeight"`
	Fullscreen    bool    `json:"fullscreen" mapstructure:"fullscreen"`
	// PixelsPerUnit is the window zoom at 1x
	PixelsPerUnit float64 `json:"pixelsPerUnit" mapstructure:"pixelsPerUnit"`
}

// LoadConfig builds a configuration from defaults, an optional JSON file and
// BATTLEFORCE_* environment variables, in increasing order of precedence.
// An empty path skips the file.
func LoadConfig(path string) (*GameConfig, error) {
	v := viper.New()
	if err := setDefaults(v, DefaultConfig()); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg GameConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every leaf of cfg as a viper default, so that
// environment overrides resolve even when no file mentions the key.
func setDefaults(v *viper.Viper, cfg *GameConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode defaults: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to decode defaults: %w", err)
	}
	for key, value := range flatten("", tree) {
		v.SetDefault(key, value)
	}
	return nil
}

func flatten(prefix string, tree map[string]any) map[string]any {
	out := make(map[string]any)
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			for sk, sv := range flatten(key, sub) {
				out[sk] = sv
			}
			continue
		}
		out[key] = val
	}
	return out
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the stock arena
func DefaultConfig() *GameConfig {
	return &GameConfig{
		World: WorldConfig{
			Gravity:         20,
			GroundSize:      100,
			ProjectileRange: 100,
			MissileRange:    150,
		},
		Pools: PoolConfig{
			Actors:         20,
			Vehicles:       6,
			Crates:         20,
			PlayerBullets:  80,
			ActorBullets:   40,
			VehicleBullets: 20,
			Bombs:          10,
			VehicleBombs:   5,
			Missiles:       5,
		},
		Player: PlayerConfig{
			Start:        Point{X: 0, Y: 1, Z: -45},
			Health:       100,
			WalkSpeed:    5,
			RunSpeed:     12.5,
			JumpStrength: 10,
			Height:       2,
			Radius:       0.5,
			FirePeriod:   0.05,
		},
		Actors: ActorConfig{
			Hostile:           12,
			Friendly:          8,
			Health:            100,
			Mass:              1,
			DetectionRange:    25,
			ChaseForce:        3,
			IdleDecay:         0.95,
			FireRange:         10,
			FirePeriod:        2,
			HostileZone:       Zone{MinX: -45, MaxX: 44, MinZ: 10, MaxZ: 49},
			FriendlyZone:      Zone{MinX: -45, MaxX: 44, MinZ: -50, MaxZ: -11},
			PlacementAttempts: 50,
		},
		Crates: CrateConfig{
			Green:             5,
			Yellow:            5,
			Blue:              10,
			Mass:              2,
			StackBase:         Point{X: -40, Y: 0.5, Z: -40},
			ScatterZone:       Zone{MinX: -45, MaxX: 44, MinZ: -45, MaxZ: 44},
			PlacementAttempts: 50,
		},
		Vehicles: VehicleConfig{
			Spawns: []Point{
				{X: 40, Y: 1, Z: 40},
				{X: -40, Y: 1, Z: 40},
				{X: 0, Y: 1, Z: 45},
				{X: 30, Y: 1, Z: 35},
				{X: -30, Y: 1, Z: 35},
				{X: 15, Y: 1, Z: 42},
			},
			Health:         200,
			Scale:          3,
			DetectionRange: 35,
			FireRange:      30,
			FirePeriod:     1,
			BombPeriod:     7,
			MuzzleHeight:   1,
			BombHeight:     2,
			ChaseForce:     2.0 / 3.0,
			PatrolSpeed:    1.0 / 3.0,
			PatrolDamping:  0.98,
		},
		Jet: JetConfig{
			OrbitRadius:     50,
			Height:          30,
			AngularSpeed:    0.5,
			BombPeriod:      5,
			MissilePeriod:   3,
			LockOnRange:     70,
			MissileSpeed:    40,
			MissileDamage:   100,
			MissileTurnRate: 2,
		},
		Weapons: WeaponConfig{
			PlayerBullet:  BulletSpec{Speed: 20, Mass: 0.2, Floor: -5},
			ActorBullet:   BulletSpec{Speed: 15, Mass: 0.2, Floor: 0},
			VehicleBullet: BulletSpec{Speed: 25, Mass: 1.0, Floor: 0},
			JetBomb:       BombSpec{Radius: 1, FallSpeed: 20, BlastRadius: 20, BlastDuration: 1},
			VehicleBomb:   BombSpec{Radius: 1.5, FallSpeed: 15, BlastRadius: 25, BlastDuration: 1.5},
		},
		Damage: DamageConfig{
			PlayerBulletVsActor:   25,
			PlayerBulletVsVehicle: 15,
			ActorBulletVsPlayer:   10,
			ActorBulletVsActor:    10,
			ActorBulletVsVehicle:  5,
			VehicleBulletVsPlayer: 20,
			VehicleBulletVsActor:  20,
			MeleePerSecond:        10,
			RamPerSecond:          5,
			BlastVsVehicle:        50,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 1,
			MaxDistance:  30,
			SampleRate:   48000,
			CuesPerType:  8,
		},
		Display: DisplayConfig{
			TerminalScale: 1,
			WindowWidth:   1024,
			WindowHeight:  768,
			PixelsPerUnit: 6,
		},
	}
}
