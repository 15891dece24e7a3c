//go:build oto

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Speaker plays a Provider on the default audio device.
type Speaker struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewSpeaker opens the audio device and starts streaming from beeper.
func NewSpeaker(beeper *Beeper) (*Speaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	s := &Speaker{ctx: ctx, player: ctx.NewPlayer(beeper)}
	s.player.Play()
	return s, nil
}

func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	return err
}
