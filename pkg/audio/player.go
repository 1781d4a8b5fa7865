// Package audio turns sound events from the simulation into synthesized cues.
// Cues are built with beep, attenuated and panned relative to the listener,
// and mixed into a single speaker stream.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/logging"
)

// Speaker buffer length
const bufferLength = 100 * time.Millisecond

// Cue types heard relative to the listener. Everything else plays centered at
// full volume.
var spatialCues = map[event.Type]bool{
	event.CrateHit: true,
}

// Sink receives finished cue streamers
type Sink func(beep.Streamer)

// Player subscribes to sound events and plays them
type Player struct {
	cfg      config.AudioConfig
	rate     beep.SampleRate
	logger   *logging.Logger
	limiter  *CueLimiter
	mixer    *beep.Mixer
	sink     Sink
	subs     []*event.Subscription
	listener Listener
	mu       sync.Mutex
}

// PlayerOption customizes a Player
type PlayerOption func(*Player)

// WithSink replaces the speaker output. Used for headless runs and tests.
func WithSink(sink Sink) PlayerOption {
	return func(p *Player) { p.sink = sink }
}

// WithPlayerLogger sets the logger
func WithPlayerLogger(logger *logging.Logger) PlayerOption {
	return func(p *Player) { p.logger = logger }
}

// NewPlayer creates a player from audio settings
func NewPlayer(cfg config.AudioConfig, opts ...PlayerOption) *Player {
	p := &Player{
		cfg:      cfg,
		rate:     beep.SampleRate(cfg.SampleRate),
		limiter:  NewCueLimiter(cfg.CuesPerType, time.Second),
		mixer:    &beep.Mixer{},
		listener: Listener{Right: mgl64.Vec3{1, 0, 0}},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewLogger()
	}
	if p.sink == nil {
		p.sink = p.playOnSpeaker
	}
	return p
}

// Init opens the sound device and starts the mixer
func (p *Player) Init() error {
	if err := speaker.Init(p.rate, p.rate.N(bufferLength)); err != nil {
		return logging.WrapError(err, "failed to initialize speaker")
	}
	speaker.Play(p.mixer)
	p.logger.Info(context.Background(), "audio initialized", "sample_rate", int(p.rate))
	return nil
}

func (p *Player) playOnSpeaker(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Attach subscribes the player to every sound cue on bus
func (p *Player) Attach(bus *event.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, kind := range event.SoundTypes() {
		p.subs = append(p.subs, bus.Subscribe(kind, p.handle))
	}
}

// SetListener moves the ear. Call it between frames, never from an event handler.
func (p *Player) SetListener(position, right mgl64.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listener = Listener{Position: position, Right: right}
}

// Close unsubscribes and silences the mixer
func (p *Player) Close() {
	p.mu.Lock()
	subs := p.subs
	p.subs = nil
	p.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Mix returns the gain and pan a cue would play with
func (p *Player) Mix(e *event.SoundEvent) (gain, pan float64) {
	gain = CueVolume(e.GetType()) * p.cfg.MasterVolume
	if !e.HasPosition || !spatialCues[e.GetType()] {
		return gain, 0
	}

	p.mu.Lock()
	listener := p.listener
	p.mu.Unlock()

	gain *= Attenuation(listener.Position, e.Position, p.cfg.MaxDistance)
	return gain, Pan(listener, e.Position, p.cfg.MaxDistance)
}

// handle runs inside the simulation update and must only enqueue
func (p *Player) handle(e event.Event) {
	sound, ok := e.(*event.SoundEvent)
	if !ok || !p.cfg.Enabled {
		return
	}
	if !p.limiter.Allow(sound.GetType()) {
		return
	}

	gain, pan := p.Mix(sound)
	if gain <= 0 {
		return
	}
	streamer := Synthesize(sound.GetType(), p.rate)
	if streamer == nil {
		return
	}

	p.sink(&effects.Pan{Streamer: withVolume(streamer, gain), Pan: pan})
}
