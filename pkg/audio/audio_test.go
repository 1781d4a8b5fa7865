package audio

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IndieDev99/battleforce/pkg/config"
	"github.com/IndieDev99/battleforce/pkg/event"
	"github.com/IndieDev99/battleforce/pkg/logging"
)

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name   string
		source mgl64.Vec3
		want   float64
	}{
		{"at the listener", mgl64.Vec3{}, 1},
		{"half way", mgl64.Vec3{15, 0, 0}, 0.5},
		{"at the edge", mgl64.Vec3{0, 0, 30}, 0},
		{"beyond the edge", mgl64.Vec3{0, 0, 90}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Attenuation(mgl64.Vec3{}, tt.source, 30), 1e-12)
		})
	}
	assert.Equal(t, 1.0, Attenuation(mgl64.Vec3{}, mgl64.Vec3{100, 0, 0}, 0))
}

func TestPan(t *testing.T) {
	listener := Listener{Right: mgl64.Vec3{-1, 0, 0}}

	assert.InDelta(t, 0.5, Pan(listener, mgl64.Vec3{-15, 0, 0}, 30), 1e-12)
	assert.InDelta(t, -0.5, Pan(listener, mgl64.Vec3{15, 0, 0}, 30), 1e-12)
	assert.InDelta(t, 0.0, Pan(listener, mgl64.Vec3{0, 0, 20}, 30), 1e-12, "straight ahead is centered")
	assert.Equal(t, 1.0, Pan(listener, mgl64.Vec3{-100, 0, 0}, 30), "clamped")
}

func TestCueLimiter(t *testing.T) {
	clock := time.Unix(0, 0)
	limiter := NewCueLimiter(2, time.Second)
	limiter.now = func() time.Time { return clock }

	assert.True(t, limiter.Allow(event.PlayerShot))
	assert.True(t, limiter.Allow(event.PlayerShot))
	assert.False(t, limiter.Allow(event.PlayerShot), "bucket drained")
	assert.True(t, limiter.Allow(event.Explosion), "buckets are per type")

	clock = clock.Add(500 * time.Millisecond)
	assert.True(t, limiter.Allow(event.PlayerShot), "half a window refills one cue")
	assert.False(t, limiter.Allow(event.PlayerShot))

	unlimited := NewCueLimiter(0, time.Second)
	for range 100 {
		require.True(t, unlimited.Allow(event.PlayerShot))
	}
}

func TestSynthesize(t *testing.T) {
	rate := beep.SampleRate(8000)

	for _, kind := range event.SoundTypes() {
		t.Run(string(kind), func(t *testing.T) {
			s := Synthesize(kind, rate)
			require.NotNil(t, s)
			assert.Greater(t, CueVolume(kind), 0.0)

			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				total += n
				for i := 0; i < n; i++ {
					assert.InDelta(t, 0, buf[i][0], 1+1e-9)
				}
				if !ok || total > rate.N(2*time.Second) {
					break
				}
			}
			assert.Greater(t, total, 0)
			assert.LessOrEqual(t, total, rate.N(time.Second), "cues are short one-shots")
		})
	}

	assert.Nil(t, Synthesize(event.GameOver, rate))
}

func TestTone_Square(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewTone(100, 50*time.Millisecond, WaveSquare, rate)

	buf := make([][2]float64, 100)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 50, n)
	for i := 0; i < n; i++ {
		assert.Contains(t, []float64{-1, 1}, buf[i][0])
	}

	n, ok = s.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func testPlayer(t *testing.T, cfg config.AudioConfig) (*Player, *[]beep.Streamer) {
	t.Helper()
	var played []beep.Streamer
	p := NewPlayer(cfg,
		WithPlayerLogger(logging.Discard()),
		WithSink(func(s beep.Streamer) { played = append(played, s) }),
	)
	return p, &played
}

func TestPlayer_HandlesBusEvents(t *testing.T) {
	cfg := config.DefaultConfig().Audio
	p, played := testPlayer(t, cfg)
	bus := event.NewEventBus()
	p.Attach(bus)

	bus.Publish(event.NewSoundEvent(event.PlayerShot, nil, mgl64.Vec3{}))
	bus.Publish(event.NewAmbientSoundEvent(event.Explosion, nil))
	bus.Publish(&event.BaseEvent{EventType: event.GameOver})
	assert.Len(t, *played, 2)

	// Crate hits beyond hearing range are dropped
	p.SetListener(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})
	bus.Publish(event.NewSoundEvent(event.CrateHit, nil, mgl64.Vec3{100, 0, 0}))
	assert.Len(t, *played, 2)

	bus.Publish(event.NewSoundEvent(event.CrateHit, nil, mgl64.Vec3{3, 0, 0}))
	assert.Len(t, *played, 3)

	p.Close()
	bus.Publish(event.NewSoundEvent(event.PlayerShot, nil, mgl64.Vec3{}))
	assert.Len(t, *played, 3, "no cues after unsubscribing")
}

func TestPlayer_Mix(t *testing.T) {
	cfg := config.DefaultConfig().Audio
	cfg.MasterVolume = 0.5
	p, _ := testPlayer(t, cfg)
	p.SetListener(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0})

	gain, pan := p.Mix(event.NewSoundEvent(event.Explosion, nil, mgl64.Vec3{20, 0, 0}))
	assert.InDelta(t, 0.5, gain, 1e-12, "explosions are not spatialized")
	assert.Equal(t, 0.0, pan)

	gain, pan = p.Mix(event.NewSoundEvent(event.CrateHit, nil, mgl64.Vec3{15, 0, 0}))
	assert.InDelta(t, 0.7*0.5*0.5, gain, 1e-12)
	assert.InDelta(t, 0.5, pan, 1e-12)
}

func TestPlayer_DisabledAndLimited(t *testing.T) {
	cfg := config.DefaultConfig().Audio
	cfg.Enabled = false
	p, played := testPlayer(t, cfg)
	bus := event.NewEventBus()
	p.Attach(bus)
	bus.Publish(event.NewSoundEvent(event.PlayerShot, nil, mgl64.Vec3{}))
	assert.Empty(t, *played)

	cfg.Enabled = true
	cfg.CuesPerType = 3
	p, played = testPlayer(t, cfg)
	p.Attach(bus)
	for range 10 {
		bus.Publish(event.NewSoundEvent(event.PlayerShot, nil, mgl64.Vec3{}))
	}
	assert.Len(t, *played, 3)
}
