package audio

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth = 16
	// pcmFormat is the WAV format tag for uncompressed PCM
	pcmFormat = 1
)

// Recorder writes the tone signal to a WAV file, one emulated frame of samples
// at a time, independent of wall clock.
type Recorder struct {
	source          Provider
	encoder         *wav.Encoder
	closer          io.Closer
	samplesPerFrame int
	buf             *goaudio.IntBuffer
	frames          int
}

// NewRecorder encodes samples pulled from source into w.
// framesPerSecond sets how many samples each RecordFrame call captures.
func NewRecorder(w io.WriteSeeker, source Provider, framesPerSecond int) *Recorder {
	samplesPerFrame := SampleRate / framesPerSecond
	return &Recorder{
		source:          source,
		encoder:         wav.NewEncoder(w, SampleRate, bitDepth, 1, pcmFormat),
		samplesPerFrame: samplesPerFrame,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
			Data:           make([]int, samplesPerFrame),
			SourceBitDepth: bitDepth,
		},
	}
}

// CreateRecorder creates path and records into it. Close flushes and closes the file.
func CreateRecorder(path string, source Provider, framesPerSecond int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating wav file: %w", err)
	}
	r := NewRecorder(f, source, framesPerSecond)
	r.closer = f
	slog.Info("Recording audio", "path", path, "sample_rate", SampleRate)
	return r, nil
}

// RecordFrame appends one frame worth of samples.
func (r *Recorder) RecordFrame() error {
	samples := r.source.GetSamples(r.samplesPerFrame)
	for i, s := range samples {
		r.buf.Data[i] = int(s)
	}
	if err := r.encoder.Write(r.buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close writes the WAV header sizes and closes the underlying file, if any.
func (r *Recorder) Close() error {
	if err := r.encoder.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
