// Package sound owns the audio output: the master volume shared by the quick
// menu and the music screen, and the UI click.
package sound

import (
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/user-none/duoscreen/ui/storage"
)

const (
	sampleRate     = 48000
	clickDuration  = 0.03 // Seconds
	clickFrequency = 1200.0
)

// Mixer is the volume collaborator of the quick menu and the music screen.
// It owns the ebiten audio context and plays the UI click. A Mixer without
// a context keeps the level but plays nothing.
type Mixer struct {
	ctx *audio.Context

	mu      sync.Mutex
	volume  int
	muted   bool
	effects bool
	click   []byte
	players []*audio.Player
}

// NewMixer creates a mixer from the audio settings. ctx may be nil.
func NewMixer(ctx *audio.Context, cfg storage.AudioConfig) *Mixer {
	return &Mixer{
		ctx:     ctx,
		volume:  clampPercent(cfg.Volume),
		muted:   cfg.Muted,
		effects: cfg.SoundEffects,
		click:   clickSound(sampleRate),
	}
}

// NewContext creates the process-wide ebiten audio context.
func NewContext() *audio.Context {
	return audio.NewContext(sampleRate)
}

// Volume returns the master volume in percent.
func (m *Mixer) Volume() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume sets the master volume in percent and applies it to playing
// sounds.
func (m *Mixer) SetVolume(percent int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampPercent(percent)
	for _, p := range m.players {
		p.SetVolume(m.gain())
	}
}

// SetMuted silences all output without changing the volume.
func (m *Mixer) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	for _, p := range m.players {
		p.SetVolume(m.gain())
	}
}

// Gain returns the linear output level in [0,1].
func (m *Mixer) Gain() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gain()
}

func (m *Mixer) gain() float64 {
	if m.muted {
		return 0
	}
	return float64(m.volume) / 100
}

// Click plays the UI click when sound effects are enabled.
func (m *Mixer) Click() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx == nil || !m.effects || m.gain() == 0 {
		return
	}

	// Finished players are reused; the list only grows under rapid taps.
	var p *audio.Player
	for _, existing := range m.players {
		if !existing.IsPlaying() {
			p = existing
			break
		}
	}
	if p == nil {
		p = m.ctx.NewPlayerFromBytes(m.click)
		m.players = append(m.players, p)
	}
	if err := p.Rewind(); err != nil {
		log.Printf("Warning: failed to rewind click: %v", err)
		return
	}
	p.SetVolume(m.gain())
	p.Play()
}

// Close stops and releases every player.
func (m *Mixer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if err := p.Close(); err != nil {
			log.Printf("Warning: failed to close audio player: %v", err)
		}
	}
	m.players = nil
}

// clickSound renders a short decaying sine as signed 16-bit little endian
// stereo, the format ebiten players read.
func clickSound(sampleRate int) []byte {
	n := int(float64(sampleRate) * clickDuration)
	buf := make([]byte, 0, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*clickFrequency*t) * env * 0.4 * math.MaxInt16)
		buf = append(buf, byte(v), byte(v>>8), byte(v), byte(v>>8))
	}
	return buf
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}
