// Package config holds the viewer's startup settings and reads them from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "viewer.toml"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full viewer configuration.
type Config struct {
	Window     Window     `toml:"window"`
	Shaders    Shaders    `toml:"shaders"`
	Camera     Camera     `toml:"camera"`
	Compositor Compositor `toml:"compositor"`
	Renderer   Renderer   `toml:"renderer"`
	Engine     Engine     `toml:"engine"`
}

// Window configures the OS window.
type Window struct {
	Title         string `toml:"title"`
	Width         int    `toml:"width"`
	Height        int    `toml:"height"`
	Resizable     bool   `toml:"resizable"`
	CaptureCursor bool   `toml:"capture_cursor"`
}

// Shaders names the WGSL sources of the viewer pipeline.
type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Workers  int    `toml:"workers"`
}

// Camera configures the free-fly camera and its controller.
type Camera struct {
	// MoveSpeed is the distance moved per frame per held key, or per second when TimeScaled.
	MoveSpeed float32 `toml:"move_speed"`
	// LookSensitivity is degrees of rotation per pixel of pointer motion.
	LookSensitivity float32 `toml:"look_sensitivity"`
	TimeScaled      bool    `toml:"time_scaled"`
}

// Compositor configures the model animation and projection.
type Compositor struct {
	FovY         float32 `toml:"fov_y"`
	Near         float32 `toml:"near"`
	Far          float32 `toml:"far"`
	ModelOffset  float32 `toml:"model_offset"`
	ModelScale   float32 `toml:"model_scale"`
	RotationStep float32 `toml:"rotation_step"`
	// RotationSpeed is degrees per second, used only when TimeScaled.
	RotationSpeed float32 `toml:"rotation_speed"`
	TimeScaled    bool    `toml:"time_scaled"`
}

// Renderer configures the GPU backend.
type Renderer struct {
	VSync         bool       `toml:"vsync"`
	MSAA          int        `toml:"msaa"`
	ClearColor    [4]float64 `toml:"clear_color"`
	ForceSoftware bool       `toml:"force_software"`
}

// Engine configures the frame loop.
type Engine struct {
	FrameLimit float64 `toml:"frame_limit"`
	Profiling  bool    `toml:"profiling"`
}

// Default returns the configuration the viewer runs with when no file is present.
func Default() Config {
	return Config{
		Window: Window{
			Title:         "My engine",
			Width:         640,
			Height:        480,
			CaptureCursor: true,
		},
		Shaders: Shaders{
			Vertex:   "assets/shaders/vert.wgsl",
			Fragment: "assets/shaders/frag.wgsl",
			Workers:  2,
		},
		Camera: Camera{
			MoveSpeed:       0.1,
			LookSensitivity: 0.01,
		},
		Compositor: Compositor{
			FovY:          45,
			Near:          0.1,
			Far:           10,
			ModelOffset:   -2,
			ModelScale:    0.5,
			RotationStep:  0.1,
			RotationSpeed: 6,
		},
		Renderer: Renderer{
			VSync:      true,
			MSAA:       1,
			ClearColor: [4]float64{0.49412, 0.50588, 0.45490, 1},
		},
	}
}

// Load reads the TOML file at path over the defaults and validates the result.
// A missing file at DefaultPath yields the defaults; a missing file elsewhere is an error.
//
// Parameters:
//   - path: the file to read, or "" for DefaultPath
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read, has unknown keys, or fails validation
func Load(path string) (Config, error) {
	explicit := path != ""
	path = common.Coalesce(path, DefaultPath)

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the source is malformed, has unknown keys, or fails validation
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the values the viewer cannot start with.
//
// Returns:
//   - error: an error wrapping ErrInvalid that lists every problem, or nil
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Shaders.Vertex != "", "shaders.vertex is empty")
	check(c.Shaders.Fragment != "", "shaders.fragment is empty")
	check(c.Shaders.Workers > 0, "shaders.workers %d", c.Shaders.Workers)
	check(c.Camera.MoveSpeed >= 0, "camera.move_speed %g", c.Camera.MoveSpeed)
	check(c.Camera.LookSensitivity >= 0, "camera.look_sensitivity %g", c.Camera.LookSensitivity)
	check(c.Compositor.FovY > 0 && c.Compositor.FovY < 180, "compositor.fov_y %g", c.Compositor.FovY)
	check(c.Compositor.Near > 0 && c.Compositor.Far > c.Compositor.Near,
		"compositor clip planes near=%g far=%g", c.Compositor.Near, c.Compositor.Far)
	check(c.Compositor.ModelScale > 0, "compositor.model_scale %g", c.Compositor.ModelScale)
	check(c.Renderer.MSAA == 1 || c.Renderer.MSAA == 4, "renderer.msaa %d", c.Renderer.MSAA)
	for i, v := range c.Renderer.ClearColor {
		check(v >= 0 && v <= 1, "renderer.clear_color[%d] %g", i, v)
	}
	check(c.Engine.FrameLimit >= 0, "engine.frame_limit %g", c.Engine.FrameLimit)

	return errors.Join(errs...)
}
