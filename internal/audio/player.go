package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/tetris/engine"
)

// SampleRate is the output rate of every generated sound.
const SampleRate = beep.SampleRate(44100)

// Options are the initial player settings.
type Options struct {
	Volume float64 // master volume, 0..1
	Muted  bool
	Music  bool // play the background loop while a game runs
}

// Player turns game events into sound. It implements the engine listener
// interfaces and is safe for concurrent use. Until Start succeeds it stays
// silent and every method is a no-op apart from settings bookkeeping.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	volume  float64
	muted   bool
	musicOn bool
	music   *beep.Ctrl
	musicV  *effects.Volume
	enabled bool // accepting sounds
	live    bool // speaker is pulling from the mixer
	logger  *log.Logger
}

// NewPlayer returns a silent player with the given settings.
func NewPlayer(opts Options, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		rate:    SampleRate,
		mixer:   &beep.Mixer{},
		volume:  core.ClampF(opts.Volume, 0, 1),
		muted:   opts.Muted,
		musicOn: opts.Music,
		logger:  logger,
	}
}

// Start opens the audio device. On failure the player stays silent and the
// error is returned for logging; the game runs without sound.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.live {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing silently", "err", err)
		return err
	}
	speaker.Play(p.mixer)
	p.live = true
	p.enabled = true
	p.logger.Debug("audio started", "rate", int(p.rate), "volume", p.volume, "muted", p.muted)
	return nil
}

// Close stops every sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.withMixer(func() { p.mixer.Clear() })
	p.music = nil
	p.musicV = nil
	p.enabled = false
}

// withMixer runs fn while the speaker cannot read the mixer.
func (p *Player) withMixer(fn func()) {
	if p.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func (p *Player) effective() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.muted || p.volume <= 0 {
		return
	}
	v := newVolume(s, p.volume)
	p.withMixer(func() { p.mixer.Add(v) })
}

// Volume returns the master volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// SetVolume sets the master volume, clamped to 0..1.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = core.ClampF(v, 0, 1)
	p.applyMusicVolume()
}

// AdjustVolume changes the master volume by delta and returns the result.
func (p *Player) AdjustVolume(delta float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = core.ClampF(p.volume+delta, 0, 1)
	p.applyMusicVolume()
	return p.volume
}

// ToggleMute flips the mute flag and returns the new value.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.applyMusicVolume()
	return p.muted
}

func (p *Player) applyMusicVolume() {
	if p.musicV == nil {
		return
	}
	p.withMixer(func() { setVolume(p.musicV, p.effective()) })
}

// StartMusic begins or resumes the background loop.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || !p.musicOn {
		return
	}
	p.withMixer(func() {
		if p.music == nil {
			p.musicV = newVolume(NewMusic(p.rate), p.effective())
			p.music = &beep.Ctrl{Streamer: p.musicV}
			p.mixer.Add(p.music)
		}
		p.music.Paused = false
	})
}

// StopMusic pauses the background loop.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	p.withMixer(func() { p.music.Paused = true })
}

// MusicPlaying reports whether the loop is audible.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil && !p.music.Paused
}

// OnLock implements engine.Listener.
func (p *Player) OnLock() { p.play(Drop(p.rate)) }

// OnLineClear implements engine.Listener.
func (p *Player) OnLineClear(n int) { p.play(LineClear(n, p.rate)) }

// OnLevelUp implements engine.Listener.
func (p *Player) OnLevelUp(int) { p.play(LevelUp(p.rate)) }

// OnGravity implements engine.GravityListener.
func (p *Player) OnGravity() { p.play(Tick(p.rate)) }

// OnStateChange implements engine.StateListener: music follows the run.
func (p *Player) OnStateChange(_, to engine.State) {
	if to == engine.StateRunning {
		p.StartMusic()
		return
	}
	p.StopMusic()
}

var (
	_ engine.Listener        = (*Player)(nil)
	_ engine.GravityListener = (*Player)(nil)
	_ engine.StateListener   = (*Player)(nil)
	_ core.EventSink         = (*Player)(nil)
)
