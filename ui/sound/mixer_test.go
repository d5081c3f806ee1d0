package sound

import (
	"testing"

	"github.com/user-none/duoscreen/ui/storage"
)

func TestMixer(t *testing.T) {
	m := NewMixer(nil, storage.AudioConfig{Volume: 150, SoundEffects: true})
	if m.Volume() != 100 {
		t.Errorf("initial volume = %d, want clamped 100", m.Volume())
	}

	tests := []struct {
		set  int
		want int
	}{
		{40, 40},
		{-10, 0},
		{101, 100},
	}
	for _, tt := range tests {
		m.SetVolume(tt.set)
		if m.Volume() != tt.want {
			t.Errorf("SetVolume(%d) = %d, want %d", tt.set, m.Volume(), tt.want)
		}
	}

	m.SetVolume(50)
	if m.Gain() != 0.5 {
		t.Errorf("gain = %v, want 0.5", m.Gain())
	}
	m.SetMuted(true)
	if m.Gain() != 0 {
		t.Errorf("muted gain = %v", m.Gain())
	}
	if m.Volume() != 50 {
		t.Errorf("mute changed volume to %d", m.Volume())
	}
	m.SetMuted(false)
	m.Click()
	if len(m.players) != 0 {
		t.Errorf("click without a context created %d players", len(m.players))
	}
	m.Close()
}

func TestClickSound(t *testing.T) {
	buf := clickSound(sampleRate)
	frames := int(float64(sampleRate) * clickDuration)
	if len(buf) != frames*4 {
		t.Fatalf("len = %d, want %d", len(buf), frames*4)
	}

	sample := func(i int) int {
		v := int16(uint16(buf[i*4]) | uint16(buf[i*4+1])<<8)
		if v < 0 {
			return -int(v)
		}
		return int(v)
	}
	peak := func(from, to int) int {
		m := 0
		for i := from; i < to; i++ {
			m = max(m, sample(i))
		}
		return m
	}
	if head, tail := peak(0, frames/4), peak(frames*3/4, frames); tail >= head {
		t.Errorf("click does not decay: head peak %d, tail peak %d", head, tail)
	}
	for i := 0; i < frames; i++ {
		if buf[i*4] != buf[i*4+2] || buf[i*4+1] != buf[i*4+3] {
			t.Fatalf("frame %d channels differ", i)
		}
	}
}
