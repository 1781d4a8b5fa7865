// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/engo"

	"github.com/IndieDev99/battleforce/pkg/engine"
	"github.com/IndieDev99/battleforce/pkg/render"
)

// buttons reports the state of named key bindings
type buttons interface {
	Down(name string) bool
	JustPressed(name string) bool
	Scroll() float32
}

// engoButtons reads the live engo input manager
type engoButtons struct{}

func (engoButtons) Down(name string) bool        { return engo.Input.Button(name).Down() }
func (engoButtons) JustPressed(name string) bool { return engo.Input.Button(name).JustPressed() }
func (engoButtons) Scroll() float32              { return engo.Input.Mouse.ScrollY }

// InputSystem maps window keys to engine input. It implements engine.Controller.
type InputSystem struct {
	buttons  buttons
	turnRate float64
}

// NewInputSystem creates an input system reading engo's key bindings
func NewInputSystem() *InputSystem {
	return &InputSystem{
		buttons:  engoButtons{},
		turnRate: render.DefaultTurnRate,
	}
}

// NextInput implements engine.Controller
func (is *InputSystem) NextInput(dt float64) engine.Input {
	axis := func(plus, minus string) float64 {
		v := 0.0
		if is.buttons.Down(plus) {
			v++
		}
		if is.buttons.Down(minus) {
			v--
		}
		return v
	}

	turn := is.turnRate * dt
	return engine.Input{
		Move: engine.Move{
			Forward: axis("forward", "back"),
			Strafe:  axis("strafeRight", "strafeLeft"),
		},
		Run:       is.buttons.Down("run"),
		Jump:      is.buttons.JustPressed("jump"),
		LookYaw:   axis("turnLeft", "turnRight") * turn,
		LookPitch: axis("lookUp", "lookDown") * turn,
		Fire:      is.buttons.Down("fire"),
		Restart:   is.buttons.JustPressed("restart"),
	}
}

// QuitRequested reports whether the quit key went down this frame
func (is *InputSystem) QuitRequested() bool {
	return is.buttons.JustPressed("quit")
}

// SetupInputBindings sets up the key bindings for the game
func SetupInputBindings() {
	// Movement keys
	engo.Input.RegisterButton("forward", engo.KeyW)
	engo.Input.RegisterButton("back", engo.KeyS)
	engo.Input.RegisterButton("strafeLeft", engo.KeyA)
	engo.Input.RegisterButton("strafeRight", engo.KeyD)
	engo.Input.RegisterButton("run", engo.KeyLeftShift)
	engo.Input.RegisterButton("jump", engo.KeySpace)

	// Look
	engo.Input.RegisterButton("turnLeft", engo.KeyArrowLeft)
	engo.Input.RegisterButton("turnRight", engo.KeyArrowRight)
	engo.Input.RegisterButton("lookUp", engo.KeyArrowUp)
	engo.Input.RegisterButton("lookDown", engo.KeyArrowDown)

	// Actions
	engo.Input.RegisterButton("fire", engo.KeyF)
	engo.Input.RegisterButton("restart", engo.KeyEnter)
	engo.Input.RegisterButton("quit", engo.KeyEscape)

	// Camera
	engo.Input.RegisterButton("zoomIn", engo.KeyZ)
	engo.Input.RegisterButton("zoomOut", engo.KeyX)
	engo.Input.RegisterButton("resetZoom", engo.KeyR)
}
