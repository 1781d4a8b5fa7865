package render

import (
	"math"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/entity"
	"github.com/IndieDev99/battleforce/pkg/logging"
)

// Terminal cells are roughly twice as tall as they are wide
const cellAspect = 2

// Rows reserved for the HUD at the top of the screen
const hudRows = 1

var (
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHostile  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleFriendly = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleVehicle  = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleJet      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleMissile  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleBomb     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleBlast    = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleBanner   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

var crateStyles = map[entity.CrateCategory]tcell.Style{
	entity.CrateGreen:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	entity.CrateYellow: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	entity.CrateBlue:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

var bulletStyles = map[entity.BulletKind]tcell.Style{
	entity.PlayerBullet:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
	entity.ActorBullet:   tcell.StyleDefault.Foreground(tcell.ColorRed),
	entity.VehicleBullet: tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
}

// TerminalPresenter draws a top-down map of the arena centered on the player
type TerminalPresenter struct {
	screen tcell.Screen
	scale  float64
	mu     sync.Mutex
}

// NewTerminalPresenter opens the terminal and takes it over until Close.
// scale is world units per cell.
func NewTerminalPresenter(scale float64) (*TerminalPresenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, logging.WrapError(err, "failed to create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return nil, logging.WrapError(err, "failed to initialize terminal screen")
	}
	return NewTerminalPresenterWithScreen(screen, scale), nil
}

// NewTerminalPresenterWithScreen draws onto an already initialized screen
func NewTerminalPresenterWithScreen(screen tcell.Screen, scale float64) *TerminalPresenter {
	if scale <= 0 {
		scale = 1
	}
	screen.HideCursor()
	return &TerminalPresenter{screen: screen, scale: scale}
}

// Screen returns the underlying screen, for reading keyboard events
func (p *TerminalPresenter) Screen() tcell.Screen {
	return p.screen
}

// Close restores the terminal
func (p *TerminalPresenter) Close() {
	p.screen.Fini()
}

// Present implements engine.Presenter
func (p *TerminalPresenter) Present(state *engine.GameState) {
	if state == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.screen.Clear()
	view := View{Center: state.Player.Position, Scale: p.scale}

	for _, c := range state.Crates {
		p.plot(view, c.Position, '#', crateStyles[c.Category])
	}
	for _, b := range state.Bombs {
		if b.Phase == entity.Exploded {
			p.plot(view, b.Position, '*', styleBlast)
		} else {
			p.plot(view, b.Position, 'o', styleBomb)
		}
	}
	for _, a := range state.Actors {
		if a.Faction == entity.Hostile {
			p.plot(view, a.Position, 'H', styleHostile)
		} else {
			p.plot(view, a.Position, 'F', styleFriendly)
		}
	}
	for _, v := range state.Vehicles {
		p.plot(view, v.Position, 'T', styleVehicle)
	}
	for _, b := range state.Bullets {
		p.plot(view, b.Position, '.', bulletStyles[b.Kind])
	}
	for _, m := range state.Missiles {
		p.plot(view, m.Position, '!', styleMissile)
	}
	p.plot(view, state.Jet.Position, 'J', styleJet)
	p.plot(view, state.Player.Position, '@', stylePlayer)

	p.drawHUD(state)
	p.screen.Show()
}

// plot puts a glyph at a world position when it lands on the map area
func (p *TerminalPresenter) plot(view View, pos mgl64.Vec3, r rune, style tcell.Style) {
	w, h := p.screen.Size()
	x, y := view.Project(pos)
	col := w/2 + int(math.Round(x*cellAspect))
	row := (h+hudRows)/2 + int(math.Round(y))
	if col < 0 || col >= w || row < hudRows || row >= h {
		return
	}
	p.screen.SetContent(col, row, r, nil, style)
}

func (p *TerminalPresenter) drawHUD(state *engine.GameState) {
	w, h := p.screen.Size()

	line := " " + strings.Join(HUDLines(state), "   ")
	p.drawText(0, 0, line+strings.Repeat(" ", max(0, w-len(line))), styleHUD)

	if !state.GameOver() {
		return
	}
	banner := GameOverLines()
	top := (h+hudRows)/2 - len(banner)/2
	for i, text := range banner {
		p.drawText((w-len(text))/2, top+i, text, styleBanner)
	}
}

func (p *TerminalPresenter) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		p.screen.SetContent(x+i, y, r, nil, style)
	}
}
