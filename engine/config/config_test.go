package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "My engine", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.False(t, cfg.Window.Resizable)
	assert.True(t, cfg.Window.CaptureCursor)
	assert.Equal(t, "assets/shaders/vert.wgsl", cfg.Shaders.Vertex)
	assert.Equal(t, "assets/shaders/frag.wgsl", cfg.Shaders.Fragment)
	assert.InDelta(t, 0.1, cfg.Camera.MoveSpeed, 1e-6)
	assert.InDelta(t, 0.01, cfg.Camera.LookSensitivity, 1e-6)
	assert.False(t, cfg.Camera.TimeScaled)
	assert.InDelta(t, 45, cfg.Compositor.FovY, 1e-6)
	assert.InDelta(t, 0.1, cfg.Compositor.Near, 1e-6)
	assert.InDelta(t, 10, cfg.Compositor.Far, 1e-6)
	assert.InDelta(t, -2, cfg.Compositor.ModelOffset, 1e-6)
	assert.InDelta(t, 0.5, cfg.Compositor.ModelScale, 1e-6)
	assert.InDelta(t, 0.1, cfg.Compositor.RotationStep, 1e-6)
	assert.False(t, cfg.Compositor.TimeScaled)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	src := `
[window]
title = "viewer"
width = 1024

[camera]
move_speed = 2.5
time_scaled = true

[renderer]
msaa = 4
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "viewer", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.InDelta(t, 2.5, cfg.Camera.MoveSpeed, 1e-6)
	assert.True(t, cfg.Camera.TimeScaled)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
	assert.Equal(t, Default().Shaders, cfg.Shaders)
	assert.Equal(t, Default().Compositor, cfg.Compositor)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\ntitel = \"typo\"\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("[window\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"no vertex shader", func(c *Config) { c.Shaders.Vertex = "" }},
		{"no fragment shader", func(c *Config) { c.Shaders.Fragment = "" }},
		{"no workers", func(c *Config) { c.Shaders.Workers = 0 }},
		{"negative move speed", func(c *Config) { c.Camera.MoveSpeed = -0.1 }},
		{"negative sensitivity", func(c *Config) { c.Camera.LookSensitivity = -1 }},
		{"fov too wide", func(c *Config) { c.Compositor.FovY = 180 }},
		{"zero near", func(c *Config) { c.Compositor.Near = 0 }},
		{"far before near", func(c *Config) { c.Compositor.Far = 0.05 }},
		{"zero scale", func(c *Config) { c.Compositor.ModelScale = 0 }},
		{"msaa 8", func(c *Config) { c.Renderer.MSAA = 8 }},
		{"clear color out of range", func(c *Config) { c.Renderer.ClearColor[2] = 1.5 }},
		{"negative frame limit", func(c *Config) { c.Engine.FrameLimit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}

	zeroSpeed := Default()
	zeroSpeed.Camera.MoveSpeed = 0
	assert.NoError(t, zeroSpeed.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nprofiling = true\nframe_limit = 60.0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.Profiling)
	assert.InDelta(t, 60.0, cfg.Engine.FrameLimit, 1e-9)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[window]\nwidth = 0\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
