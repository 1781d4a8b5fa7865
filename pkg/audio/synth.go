package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/IndieDev99/battleforce/pkg/event"
)

// Wave selects an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator
type tone struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone creates an oscillator that stops after duration
func NewTone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{
		freq:   freq,
		length: rate.N(duration),
		wave:   wave,
		rate:   rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2*t.phase - 1
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// decay shapes a stream with a linear attack and an exponential tail
type decay struct {
	streamer beep.Streamer
	position int
	attack   int
	rate     float64
}

// NewDecay fades s in over attack and then lets it die away at the given
// rate per second
func NewDecay(s beep.Streamer, attack time.Duration, perSecond float64, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		rate:     perSecond / float64(rate),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if d.position < d.attack {
			gain = float64(d.position) / float64(d.attack)
		} else {
			gain = math.Exp(-float64(d.position-d.attack) * d.rate)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales a stream by a linear gain. Zero gain is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// voice is one layer of a cue
type voice struct {
	wave     Wave
	freq     float64
	duration time.Duration
	decay    float64
	mix      float64
}

// cue describes how an event sounds and how loud it is
type cue struct {
	volume float64
	voices []voice
}

var cues = map[event.Type]cue{
	event.PlayerShot: {volume: 0.5, voices: []voice{
		{WaveSquare, 880, 60 * time.Millisecond, 40, 0.6},
		{WaveNoise, 0, 40 * time.Millisecond, 60, 0.4},
	}},
	event.ActorShot: {volume: 0.3, voices: []voice{
		{WaveSquare, 620, 80 * time.Millisecond, 30, 1},
	}},
	event.VehicleShot: {volume: 0.6, voices: []voice{
		{WaveSaw, 110, 200 * time.Millisecond, 15, 0.6},
		{WaveNoise, 0, 120 * time.Millisecond, 25, 0.4},
	}},
	event.BombDropped: {volume: 0.8, voices: []voice{
		{WaveSine, 520, 350 * time.Millisecond, 4, 1},
	}},
	event.VehicleBombDropped: {volume: 0.9, voices: []voice{
		{WaveSine, 390, 350 * time.Millisecond, 4, 1},
	}},
	event.Explosion: {volume: 1.0, voices: []voice{
		{WaveNoise, 0, 900 * time.Millisecond, 5, 0.7},
		{WaveSine, 55, 900 * time.Millisecond, 3, 0.3},
	}},
	event.CrateHit: {volume: 0.7, voices: []voice{
		{WaveNoise, 0, 70 * time.Millisecond, 50, 0.5},
		{WaveSine, 180, 70 * time.Millisecond, 40, 0.5},
	}},
	event.MissileLaunched: {volume: 0.7, voices: []voice{
		{WaveSaw, 260, 450 * time.Millisecond, 6, 0.5},
		{WaveNoise, 0, 450 * time.Millisecond, 6, 0.5},
	}},
	event.MissileImpact: {volume: 1.0, voices: []voice{
		{WaveNoise, 0, 600 * time.Millisecond, 7, 0.8},
		{WaveSine, 70, 600 * time.Millisecond, 5, 0.2},
	}},
}

// CueVolume returns the base volume of a cue type, or zero for unknown types
func CueVolume(kind event.Type) float64 {
	return cues[kind].volume
}

// Synthesize builds the streamer for a cue at unit gain. Returns nil for
// types without a sound.
func Synthesize(kind event.Type, rate beep.SampleRate) beep.Streamer {
	c, ok := cues[kind]
	if !ok {
		return nil
	}

	layers := make([]beep.Streamer, 0, len(c.voices))
	for _, v := range c.voices {
		src := NewTone(v.freq, v.duration, v.wave, rate)
		shaped := NewDecay(src, 5*time.Millisecond, v.decay, rate)
		layers = append(layers, withVolume(shaped, v.mix))
	}
	return beep.Mix(layers...)
}
