package audio

import (
	"encoding/binary"
	"sync"
	"sync/atomic"
)

const (
	// SampleRate is the output sample rate for every audio sink.
	SampleRate = 44100
	// ToneFrequency is the pitch of the buzzer in Hz.
	ToneFrequency = 440
	// Amplitude is the peak value of the square wave.
	Amplitude = 8000
	// BytesPerSample is the size of a mono signed 16 bit sample.
	BytesPerSample = 2
)

// Provider supplies mono 16 bit samples at SampleRate.
type Provider interface {
	// GetSamples retrieves audio samples for playback
	GetSamples(count int) []int16
}

var _ Provider = (*Beeper)(nil)

// Beeper generates the CHIP-8 buzzer, a square wave that is audible while
// the sound timer is non-zero. SetActive is meant to be registered as a tone listener.
type Beeper struct {
	active atomic.Bool

	mu    sync.Mutex
	phase int
	// half period in samples
	half int
}

func NewBeeper() *Beeper {
	return &Beeper{half: SampleRate / ToneFrequency / 2}
}

// SetActive turns the tone on or off.
func (b *Beeper) SetActive(active bool) {
	b.active.Store(active)
}

// Active reports whether the tone is currently on.
func (b *Beeper) Active() bool {
	return b.active.Load()
}

// GetSamples returns count samples, silence while inactive.
func (b *Beeper) GetSamples(count int) []int16 {
	samples := make([]int16, count)
	b.fill(samples)
	return samples
}

func (b *Beeper) fill(samples []int16) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active.Load() {
		clear(samples)
		// restart the wave on the next tone for a clean attack
		b.phase = 0
		return
	}

	for i := range samples {
		if b.phase < b.half {
			samples[i] = Amplitude
		} else {
			samples[i] = -Amplitude
		}
		b.phase++
		if b.phase >= 2*b.half {
			b.phase = 0
		}
	}
}

// Read implements io.Reader producing signed 16 bit little-endian mono PCM,
// the format expected by audio device players. It never blocks and never ends.
func (b *Beeper) Read(p []byte) (int, error) {
	count := len(p) / BytesPerSample
	samples := b.GetSamples(count)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(p[i*BytesPerSample:], uint16(s))
	}
	n := count * BytesPerSample
	clear(p[n:])
	return len(p), nil
}
