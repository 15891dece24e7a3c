package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/timing"
)

func TestCreateBackend(t *testing.T) {
	b, err := createBackend("terminal", 0, 0, "", "")
	require.NoError(t, err)
	assert.IsType(t, &terminal.Backend{}, b)

	b, err = createBackend("sdl2", 0, 0, "", "")
	require.NoError(t, err)
	assert.IsType(t, &sdl2.Backend{}, b)

	b, err = createBackend("headless", 5, 0, "", "roms/pong.ch8")
	require.NoError(t, err)
	assert.IsType(t, &headless.Backend{}, b)

	_, err = createBackend("headless", 0, 0, "", "")
	assert.Error(t, err)

	_, err = createBackend("vulkan", 0, 0, "", "")
	assert.ErrorContains(t, err, "unknown backend")
}

func TestCreateLimiter(t *testing.T) {
	l, err := createLimiter("headless", "adaptive", 0)
	require.NoError(t, err)
	assert.Equal(t, timing.NewNoOpLimiter(), l)

	l, err = createLimiter("terminal", "ticker", 120)
	require.NoError(t, err)
	assert.IsType(t, &timing.TickerLimiter{}, l)
	l.(*timing.TickerLimiter).Stop()

	l, err = createLimiter("sdl2", "adaptive", 240)
	require.NoError(t, err)
	assert.Equal(t, 240, l.(*timing.AdaptiveLimiter).Rate())

	_, err = createLimiter("terminal", "sleepy", 60)
	assert.Error(t, err)
}

func TestRomLabel(t *testing.T) {
	assert.Equal(t, "test_pattern", romLabel(""))
	assert.Equal(t, "pong", romLabel("/tmp/roms/pong.ch8"))
}
