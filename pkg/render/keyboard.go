package render

import (
	"context"
	"sync"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/IndieDev99/battleforce/pkg/engine"
)

// Terminals report key presses and auto-repeats but never releases, so a key
// counts as held for this long after its last press
const holdWindow = 150 * time.Millisecond

// DefaultTurnRate is how fast the arrow keys turn the view, in radians per second
const DefaultTurnRate = 2.5

type action int

const (
	actForward action = iota
	actBack
	actStrafeLeft
	actStrafeRight
	actTurnLeft
	actTurnRight
	actLookUp
	actLookDown
	actRun
	actFire
)

// Keyboard turns tcell key events into engine input. It implements
// engine.Controller.
type Keyboard struct {
	TurnRate float64

	held    map[action]time.Time
	jump    bool
	restart bool
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// NewKeyboard creates a keyboard controller
func NewKeyboard() *Keyboard {
	return &Keyboard{
		TurnRate: DefaultTurnRate,
		held:     make(map[action]time.Time),
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Done is closed once the user asks to quit
func (k *Keyboard) Done() <-chan struct{} {
	return k.done
}

// Listen reads events from screen until ctx is cancelled, the user quits or
// the screen is finalized
func (k *Keyboard) Listen(ctx context.Context, screen tcell.Screen) {
	for ctx.Err() == nil {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if !k.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent records a key press. It returns false when the user quits.
func (k *Keyboard) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.once.Do(func() { close(k.done) })
		return false
	case tcell.KeyEnter:
		k.restart = true
	case tcell.KeyLeft:
		k.held[actTurnLeft] = now
	case tcell.KeyRight:
		k.held[actTurnRight] = now
	case tcell.KeyUp:
		k.held[actLookUp] = now
	case tcell.KeyDown:
		k.held[actLookDown] = now
	case tcell.KeyRune:
		r := key.Rune()
		if unicode.IsUpper(r) {
			k.held[actRun] = now
		}
		switch unicode.ToLower(r) {
		case 'q':
			k.once.Do(func() { close(k.done) })
			return false
		case 'w':
			k.held[actForward] = now
		case 's':
			k.held[actBack] = now
		case 'a':
			k.held[actStrafeLeft] = now
		case 'd':
			k.held[actStrafeRight] = now
		case 'f':
			k.held[actFire] = now
		case ' ':
			k.jump = true
		}
	}
	return true
}

// NextInput implements engine.Controller
func (k *Keyboard) NextInput(dt float64) engine.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	axis := func(plus, minus action) float64 {
		v := 0.0
		if k.isHeld(plus, now) {
			v++
		}
		if k.isHeld(minus, now) {
			v--
		}
		return v
	}

	turn := k.TurnRate * dt
	in := engine.Input{
		Move: engine.Move{
			Forward: axis(actForward, actBack),
			Strafe:  axis(actStrafeRight, actStrafeLeft),
		},
		Run: k.isHeld(actRun, now),
		// Positive yaw turns towards +X, which is the player's left
		LookYaw:   axis(actTurnLeft, actTurnRight) * turn,
		LookPitch: axis(actLookUp, actLookDown) * turn,
		Fire:      k.isHeld(actFire, now),
		Jump:      k.jump,
		Restart:   k.restart,
	}
	k.jump = false
	k.restart = false
	return in
}

func (k *Keyboard) isHeld(a action, now time.Time) bool {
	at, ok := k.held[a]
	return ok && now.Sub(at) < holdWindow
}
