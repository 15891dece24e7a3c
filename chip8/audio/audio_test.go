package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeeper_silentWhenInactive(t *testing.T) {
	b := NewBeeper()

	samples := b.GetSamples(256)

	assert.Len(t, samples, 256)
	for _, s := range samples {
		assert.Zero(t, s)
	}
}

func TestBeeper_squareWave(t *testing.T) {
	b := NewBeeper()
	b.SetActive(true)
	half := SampleRate / ToneFrequency / 2

	samples := b.GetSamples(4 * half)

	assert.Equal(t, int16(Amplitude), samples[0])
	assert.Equal(t, int16(Amplitude), samples[half-1])
	assert.Equal(t, int16(-Amplitude), samples[half])
	assert.Equal(t, int16(-Amplitude), samples[2*half-1])
	assert.Equal(t, int16(Amplitude), samples[2*half])
}

func TestBeeper_restartsPhase(t *testing.T) {
	b := NewBeeper()
	b.SetActive(true)
	b.GetSamples(7)
	b.SetActive(false)
	b.GetSamples(1)
	b.SetActive(true)

	first := b.GetSamples(1)

	assert.Equal(t, int16(Amplitude), first[0])
	assert.True(t, b.Active())
}

func TestBeeper_Read(t *testing.T) {
	b := NewBeeper()
	b.SetActive(true)
	p := make([]byte, 9)

	n, err := b.Read(p)

	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, int16(Amplitude), int16(binary.LittleEndian.Uint16(p)))
	assert.Zero(t, p[8], "odd trailing byte is zeroed")
}

func TestRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	b := NewBeeper()
	r, err := CreateRecorder(path, b, 60)
	require.NoError(t, err)

	require.NoError(t, r.RecordFrame())
	b.SetActive(true)
	require.NoError(t, r.RecordFrame())
	require.NoError(t, r.Close())
	assert.Equal(t, 2, r.Frames())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(SampleRate), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)
	require.Len(t, buf.Data, 2*SampleRate/60)
	assert.Zero(t, buf.Data[0])
	assert.Equal(t, Amplitude, buf.Data[SampleRate/60])
}

func TestCreateRecorder_badPath(t *testing.T) {
	_, err := CreateRecorder(filepath.Join(t.TempDir(), "missing", "x.wav"), NewBeeper(), 60)
	assert.Error(t, err)
}
