// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/render"
)

const (
	hudMargin     = 10
	hudLineHeight = 22
	// Status lines plus the two game over lines
	hudSlots = 7
)

// hudText is one line of screen-fixed text
type hudText struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem shows the status lines and the game over banner
type HUDSystem struct {
	lines  []string
	banner []string

	font     *common.Font
	texts    []*hudText
	viewport engo.Point

	hudColor    color.Color
	bannerColor color.Color
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{
		hudColor:    color.RGBA{255, 255, 255, 255},
		bannerColor: color.RGBA{255, 64, 64, 255},
	}
}

// Priority draws the HUD after every sprite was placed
func (hud *HUDSystem) Priority() int { return 0 }

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// SetFont sets the font used for HUD text rendering
func (hud *HUDSystem) SetFont(font *common.Font) {
	hud.font = font
}

// SetViewport sets the window size in pixels, used to center the banner
func (hud *HUDSystem) SetViewport(width, height float32) {
	hud.viewport = engo.Point{X: width, Y: height}
}

// attach creates the text entities. Without a font the HUD keeps its lines
// but draws nothing.
func (hud *HUDSystem) attach(sink spriteSink) {
	if hud.font == nil {
		return
	}
	for i := 0; i < hudSlots; i++ {
		text := &hudText{BasicEntity: ecs.NewBasic()}
		text.RenderComponent.SetShader(common.TextHUDShader)
		text.RenderComponent.SetZIndex(1000)
		text.RenderComponent.Hidden = true
		sink.Add(&text.BasicEntity, &text.RenderComponent, &text.SpaceComponent)
		hud.texts = append(hud.texts, text)
	}
}

// UpdateGameState takes the values shown on the next frame
func (hud *HUDSystem) UpdateGameState(state *engine.GameState) {
	hud.lines = render.HUDLines(state)
	hud.banner = nil
	if state.GameOver() {
		hud.banner = render.GameOverLines()
	}
}

// Lines returns the status lines currently shown
func (hud *HUDSystem) Lines() []string {
	return hud.lines
}

// Banner returns the game over lines, or nil while the round is on
func (hud *HUDSystem) Banner() []string {
	return hud.banner
}

// Update writes the current lines into the text entities
func (hud *HUDSystem) Update(dt float32) {
	if len(hud.texts) == 0 {
		return
	}

	slot := 0
	for i, line := range hud.lines {
		hud.setText(slot, line, hudMargin, hudMargin+float32(i*hudLineHeight), hud.hudColor)
		slot++
	}

	top := hud.viewport.Y/2 - float32(len(hud.banner)*hudLineHeight)/2
	for i, line := range hud.banner {
		width := float32(len(line)) * float32(hud.font.Size) * 0.6
		hud.setText(slot, line, (hud.viewport.X-width)/2, top+float32(i*hudLineHeight), hud.bannerColor)
		slot++
	}

	for ; slot < len(hud.texts); slot++ {
		hud.texts[slot].RenderComponent.Hidden = true
	}
}

func (hud *HUDSystem) setText(slot int, line string, x, y float32, textColor color.Color) {
	if slot >= len(hud.texts) {
		return
	}
	text := hud.texts[slot]
	text.RenderComponent.Drawable = common.Text{Font: hud.font, Text: line}
	text.RenderComponent.Color = textColor
	text.RenderComponent.Hidden = false
	text.SpaceComponent.Position = engo.Point{X: x, Y: y}
	text.SpaceComponent.Width = float32(len(line)) * float32(hud.font.Size) * 0.6
	text.SpaceComponent.Height = float32(hud.font.Size)
}
