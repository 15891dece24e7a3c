//go:build !oto

package audio

import "errors"

// ErrNoAudioDevice is returned when the binary was built without audio device support.
var ErrNoAudioDevice = errors.New("audio device support not compiled in (build with -tags oto)")

// Speaker is a placeholder when building without the oto tag.
type Speaker struct{}

func NewSpeaker(_ *Beeper) (*Speaker, error) {
	return nil, ErrNoAudioDevice
}

func (s *Speaker) Close() error { return nil }
