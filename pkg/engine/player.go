package engine

import (
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/physics"
)

// updatePlayer applies look, walk, jump and trigger input.
// Support from crates and the ground is resolved later, in the collision stage.
// Note: Called from within locked context in Update()
func (g *Game) updatePlayer(in Input, dt float64) {
	cfg := g.Config.Player
	p := &g.Player

	p.Look(in.LookYaw, in.LookPitch)

	// Walking is always horizontal, wherever the player looks
	forward := physics.Normalize(physics.Horizontal(p.Forward()))
	move := forward.Mul(in.Move.Forward).Add(p.Right().Mul(in.Move.Strafe))

	speed := cfg.WalkSpeed
	if in.Run {
		speed = cfg.RunSpeed
	}
	p.Position = physics.Advance(p.Position, move, speed*dt)

	if in.Jump && p.OnGround {
		p.JumpVelocity = cfg.JumpStrength
	}

	g.frame.move = move
	g.frame.speed = speed
	g.frame.prevEyeY = p.Position.Y()

	p.JumpVelocity -= g.Config.World.Gravity * dt
	p.Position[1] += p.JumpVelocity * dt
	p.OnGround = false

	p.Trigger.Tick(dt)
	if in.Fire && p.Trigger.Ready(cfg.FirePeriod) {
		g.queue(fireOrder{
			kind:      orderPlayerBullet,
			origin:    p.Position,
			direction: p.Forward(),
			gate:      &p.Trigger,
		})
	}
}

// supportPlayer lands the player on a crate top or the ground.
// A landing needs a strict footprint overlap, a non-rising jump and feet that
// crossed the top during this frame. Landing on a blue crate wakes it.
func (g *Game) supportPlayer() {
	p := &g.Player

	if p.JumpVelocity <= 0 {
		feet := p.Feet(p.Position.Y())
		prevFeet := p.Feet(g.frame.prevEyeY)
		body := p.Box()

		for _, crate := range g.Crates.All() {
			top := crate.Top()
			if !physics.HorizontalOverlapStrict(body, crate.Box()) || feet > top || prevFeet < top {
				continue
			}
			p.Position[1] = top + p.Height/2
			p.JumpVelocity = 0
			p.OnGround = true
			if crate.Category == entity.CrateBlue {
				crate.Activate()
			}
			break
		}
	}

	if rest := p.Height / 2; p.Position.Y() <= rest && p.JumpVelocity <= 0 {
		p.Position[1] = rest
		p.JumpVelocity = 0
		p.OnGround = true
	}
}
