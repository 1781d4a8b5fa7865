package engine

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/pool"
)

type orderKind int

const (
	orderPlayerBullet orderKind = iota
	orderActorBullet
	orderVehicleBullet
	orderJetBomb
	orderVehicleBomb
	orderMissile
)

func (k orderKind) String() string {
	switch k {
	case orderPlayerBullet:
		return "player bullet"
	case orderActorBullet:
		return "actor bullet"
	case orderVehicleBullet:
		return "vehicle bullet"
	case orderJetBomb:
		return "jet bomb"
	case orderVehicleBomb:
		return "vehicle bomb"
	case orderMissile:
		return "missile"
	default:
		return "unknown"
	}
}

// fireOrder is a shot decided during behavior and spawned after collisions.
// The gate is only reset once the projectile is in its pool.
type fireOrder struct {
	kind      orderKind
	origin    mgl64.Vec3
	direction mgl64.Vec3
	shooter   pool.Ref
	target    pool.Ref
	gate      *entity.FireGate
}

func (g *Game) queue(order fireOrder) {
	g.orders = append(g.orders, order)
}

// spawnOrdered turns this frame's fire orders into projectiles.
// Orders whose shooter was eliminated earlier in the frame are dropped.
// Note: Called from within locked context in Update()
func (g *Game) spawnOrdered() {
	for _, order := range g.orders {
		if !g.shooterAlive(order) {
			continue
		}

		sound, err := g.spawn(order)
		if err != nil {
			if errors.Is(err, pool.ErrPoolExhausted) {
				g.logger.Debug(g.session, "spawn dropped", "projectile", order.kind.String(), "tick", g.CurrentTick)
				continue
			}
			g.logger.Error(g.session, "spawn failed", err, "projectile", order.kind.String())
			continue
		}

		order.gate.Reset()
		// The player's own rifle sits on the listener
		if order.kind == orderPlayerBullet {
			g.publishAmbientSound(sound)
		} else {
			g.publishSound(sound, order.origin)
		}
	}
	g.orders = g.orders[:0]
}

func (g *Game) shooterAlive(order fireOrder) bool {
	switch order.kind {
	case orderActorBullet:
		_, ok := g.Actors.Resolve(order.shooter)
		return ok
	case orderVehicleBullet, orderVehicleBomb:
		_, ok := g.Vehicles.Resolve(order.shooter)
		return ok
	default:
		return true
	}
}

// spawn acquires a slot for the order and returns the sound it makes
func (g *Game) spawn(order fireOrder) (event.Type, error) {
	weapons := g.Config.Weapons

	switch order.kind {
	case orderPlayerBullet:
		return event.PlayerShot, spawnBullet(g.PlayerBullets, entity.PlayerBullet, weapons.PlayerBullet, order)
	case orderActorBullet:
		return event.ActorShot, spawnBullet(g.ActorBullets, entity.ActorBullet, weapons.ActorBullet, order)
	case orderVehicleBullet:
		return event.VehicleShot, spawnBullet(g.VehicleBullets, entity.VehicleBullet, weapons.VehicleBullet, order)
	case orderJetBomb:
		return event.BombDropped, spawnBomb(g.Bombs, entity.JetBomb, weapons.JetBomb, order.origin)
	case orderVehicleBomb:
		return event.VehicleBombDropped, spawnBomb(g.VehicleBombs, entity.VehicleBomb, weapons.VehicleBomb, order.origin)
	case orderMissile:
		return event.MissileLaunched, g.spawnMissile(order)
	default:
		return "", errors.New("unknown fire order")
	}
}

func spawnBullet(bullets *pool.Pool[entity.Bullet], kind entity.BulletKind, spec config.BulletSpec, order fireOrder) error {
	_, bullet, err := bullets.Acquire()
	if err != nil {
		return err
	}
	*bullet = entity.Bullet{
		Body: entity.Body{
			Position: order.origin,
			Velocity: order.direction.Mul(spec.Speed),
		},
		Mass:    spec.Mass,
		Kind:    kind,
		Shooter: order.shooter,
	}
	return nil
}

func spawnBomb(bombs *pool.Pool[entity.Bomb], kind entity.BombKind, spec config.BombSpec, origin mgl64.Vec3) error {
	_, bomb, err := bombs.Acquire()
	if err != nil {
		return err
	}
	*bomb = entity.Bomb{
		Body: entity.Body{
			Position: origin,
			Velocity: mgl64.Vec3{0, -spec.FallSpeed, 0},
		},
		Kind:          kind,
		Phase:         entity.Falling,
		Radius:        spec.Radius,
		BlastRadius:   spec.BlastRadius,
		BlastDuration: spec.BlastDuration,
	}
	return nil
}

func (g *Game) spawnMissile(order fireOrder) error {
	_, missile, err := g.Missiles.Acquire()
	if err != nil {
		return err
	}
	cfg := g.Config.Jet
	*missile = entity.Missile{
		Body: entity.Body{
			Position: order.origin,
			Velocity: order.direction.Mul(cfg.MissileSpeed),
		},
		Speed:  cfg.MissileSpeed,
		Damage: cfg.MissileDamage,
		Target: order.target,
	}
	return nil
}

// expireProjectiles retires bullets and missiles that left the arena and
// closes blast windows that have run their course.
// Note: Called from within locked context in Update()
func (g *Game) expireProjectiles(dt float64) {
	cfg := g.Config
	floors := []float64{
		cfg.Weapons.PlayerBullet.Floor,
		cfg.Weapons.ActorBullet.Floor,
		cfg.Weapons.VehicleBullet.Floor,
	}

	for k, bullets := range g.bulletPools() {
		for i, bullet := range bullets.All() {
			if bullet.Expired(cfg.World.ProjectileRange, floors[k]) {
				bullets.Release(i)
			}
		}
	}

	for i, missile := range g.Missiles.All() {
		if missile.Expired(cfg.World.MissileRange) {
			g.Missiles.Release(i)
		}
	}

	for _, bombs := range g.bombPools() {
		for i, bomb := range bombs.All() {
			if bomb.Age(dt) {
				bombs.Release(i)
			}
		}
	}
}
