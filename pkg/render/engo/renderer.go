// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/entity"
)

// spriteSink is the part of common.RenderSystem the presenter draws through
type spriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// sprite is one drawable pool slot
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

type spriteKey struct {
	kind spriteKind
	slot int
}

// Sprite footprints in world units
const (
	actorSize   = 1.0
	crateSize   = 2 * entity.CrateHalfSize
	bulletSize  = 0.4
	bombSize    = 1.2
	missileSize = 0.6
	jetSize     = 4.0
)

var spriteColors = map[spriteKind]color.Color{
	spritePlayer:   color.RGBA{255, 255, 255, 255},
	spriteHostile:  color.RGBA{230, 40, 40, 255},
	spriteFriendly: color.RGBA{40, 200, 60, 255},
	spriteVehicle:  color.RGBA{200, 80, 220, 255},
	spriteBullet:   color.RGBA{255, 255, 160, 255},
	spriteBomb:     color.RGBA{255, 160, 0, 255},
	spriteBlast:    color.RGBA{255, 90, 0, 160},
	spriteMissile:  color.RGBA{0, 230, 255, 255},
	spriteJet:      color.RGBA{0, 200, 255, 200},
}

var crateColors = map[entity.CrateCategory]color.Color{
	entity.CrateGreen:  color.RGBA{60, 160, 60, 255},
	entity.CrateYellow: color.RGBA{220, 200, 40, 255},
	entity.CrateBlue:   color.RGBA{60, 90, 220, 255},
}

// Draw order, low to high
var spriteLayers = map[spriteKind]float32{
	spriteBlast:    1,
	spriteCrate:    2,
	spriteHostile:  3,
	spriteFriendly: 3,
	spriteVehicle:  4,
	spriteBomb:     5,
	spriteBullet:   6,
	spriteMissile:  7,
	spritePlayer:   8,
	spriteJet:      9,
}

// Presenter implements engine.Presenter on top of engo's render system.
// Present keeps the snapshot; Update lays the sprites out once the camera has
// moved for the frame.
type Presenter struct {
	sink   spriteSink
	assets *AssetManager
	camera *CameraSystem
	hud    *HUDSystem

	sprites map[spriteKey]*sprite
	state   *engine.GameState
}

// NewPresenter creates a presenter drawing through sink
func NewPresenter(sink spriteSink, assets *AssetManager, camera *CameraSystem, hud *HUDSystem) *Presenter {
	return &Presenter{
		sink:    sink,
		assets:  assets,
		camera:  camera,
		hud:     hud,
		sprites: make(map[spriteKey]*sprite),
	}
}

// Present implements engine.Presenter
func (p *Presenter) Present(state *engine.GameState) {
	if state == nil {
		return
	}
	p.state = state
	p.camera.SetTarget(state.Player.Position)
	p.hud.UpdateGameState(state)
}

// Priority places sprites after the camera moved
func (p *Presenter) Priority() int { return 10 }

// Remove satisfies the ecs.System interface
func (p *Presenter) Remove(basic ecs.BasicEntity) {}

// Update places a sprite for everything in the last snapshot and hides the rest
func (p *Presenter) Update(dt float32) {
	state := p.state
	if state == nil {
		return
	}

	for _, s := range p.sprites {
		s.RenderComponent.Hidden = true
	}

	for _, c := range state.Crates {
		s := p.place(spriteKey{spriteCrate, c.Slot}, c.Position, crateSize, 0)
		s.RenderComponent.Color = crateColors[c.Category]
	}
	for _, b := range state.Bombs {
		if b.Phase == entity.Exploded {
			p.place(spriteKey{spriteBlast, b.Slot}, b.Position, 2*b.BlastRadius, 0)
		} else {
			p.place(spriteKey{spriteBomb, b.Slot}, b.Position, bombSize, 0)
		}
	}
	for _, a := range state.Actors {
		kind := spriteFriendly
		if a.Faction == entity.Hostile {
			kind = spriteHostile
		}
		p.place(spriteKey{kind, a.Slot}, a.Position, actorSize, 0)
	}
	for _, v := range state.Vehicles {
		p.place(spriteKey{spriteVehicle, v.Slot}, v.Position, 2*v.Scale, v.Yaw)
	}
	for _, b := range state.Bullets {
		p.place(spriteKey{spriteBullet, b.Slot}, b.Position, bulletSize, 0)
	}
	for _, m := range state.Missiles {
		p.place(spriteKey{spriteMissile, m.Slot}, m.Position, missileSize, 0)
	}
	p.place(spriteKey{spriteJet, 0}, state.Jet.Position, jetSize, state.Jet.Yaw)
	p.place(spriteKey{spritePlayer, 0}, state.Player.Position, actorSize, state.Player.Yaw)
}

// place centers a sprite on a world position with a world-unit footprint
func (p *Presenter) place(key spriteKey, pos mgl64.Vec3, size, yaw float64) *sprite {
	s := p.getOrCreateSprite(key)

	px := float32(size * p.camera.Scale())
	center := p.camera.WorldToScreen(pos)
	s.SpaceComponent.Width = px
	s.SpaceComponent.Height = px
	s.SpaceComponent.Position = engo.Point{X: center.X - px/2, Y: center.Y - px/2}
	// Positive yaw turns towards screen left, engo rotates clockwise
	s.SpaceComponent.Rotation = float32(-yaw * 180 / math.Pi)
	s.RenderComponent.Hidden = false
	if d := p.assets.GetSprite(key.kind); d != nil {
		s.RenderComponent.Drawable = d
		s.RenderComponent.Scale = engo.Point{X: px / textureSize, Y: px / textureSize}
	}
	return s
}

// getOrCreateSprite returns the sprite for a slot, creating it on first use
func (p *Presenter) getOrCreateSprite(key spriteKey) *sprite {
	if s, exists := p.sprites[key]; exists {
		return s
	}

	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent.Drawable = p.assets.GetSprite(key.kind)
	s.RenderComponent.Color = spriteColors[key.kind]
	s.RenderComponent.SetZIndex(spriteLayers[key.kind])
	p.sprites[key] = s
	p.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// Visible reports how many sprites are drawn this frame
func (p *Presenter) Visible() int {
	n := 0
	for _, s := range p.sprites {
		if !s.RenderComponent.Hidden {
			n++
		}
	}
	return n
}
