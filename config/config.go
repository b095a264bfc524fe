// Package config loads the runtime configuration of hewn games from YAML.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/logging"
	"gopkg.in/yaml.v3"
)

// Backends accepted in Config.Backend.
const (
	BackendTerminal = "terminal"
	BackendWindow   = "window"
	BackendHeadless = "headless"
)

// Config is the runtime configuration of a game.
type Config struct {
	// Width and Height are the view size in cells.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// FrameRate is the number of frames per second.
	FrameRate int `yaml:"frame_rate"`
	// MaxDelta bounds the delta time of one frame.
	MaxDelta time.Duration `yaml:"max_delta"`
	// Seed feeds the game's random number generator.
	Seed uint64 `yaml:"seed"`

	Backend  string `yaml:"backend"`
	Camera   string `yaml:"camera"`
	CellSize int    `yaml:"cell_size"`
	DebugUI  bool   `yaml:"debug_ui"`
	// AutoPlay lets games that support it play themselves.
	AutoPlay bool `yaml:"auto_play"`

	// Broadphase is "allpairs" or "grid"; GridCell is the grid's cell size.
	Broadphase string  `yaml:"broadphase"`
	GridCell   float64 `yaml:"grid_cell"`

	Log logging.Options `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Width:      80,
		Height:     24,
		FrameRate:  30,
		MaxDelta:   100 * time.Millisecond,
		Seed:       1,
		Backend:    BackendTerminal,
		Camera:     "static",
		CellSize:   12,
		Broadphase: "allpairs",
		GridCell:   4,
	}
}

// Load decodes YAML from r over the defaults. Unknown keys are errors.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	if err := c.Decode(r); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile is Load for the file at path.
func LoadFile(path string) (*Config, error) {
	c := Default()
	if err := c.DecodeFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode overwrites the fields of c present in the YAML read from r and
// validates the result.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return c.Validate()
}

// DecodeFile is Decode for the file at path.
func (c *Config) DecodeFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return c.Decode(f)
}

// Validate checks every field and reports the first invalid one.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fieldError("width", c.Width, "must be positive")
	case c.Height <= 0:
		return fieldError("height", c.Height, "must be positive")
	case c.FrameRate <= 0 || c.FrameRate > 1000:
		return fieldError("frame_rate", c.FrameRate, "must be between 1 and 1000")
	case c.MaxDelta <= 0:
		return fieldError("max_delta", c.MaxDelta, "must be positive")
	case c.CellSize <= 0:
		return fieldError("cell_size", c.CellSize, "must be positive")
	case c.Backend != BackendTerminal && c.Backend != BackendWindow && c.Backend != BackendHeadless:
		return fieldError("backend", c.Backend, "must be terminal, window or headless")
	case c.Broadphase != "allpairs" && c.Broadphase != "grid":
		return fieldError("broadphase", c.Broadphase, "must be allpairs or grid")
	case c.Broadphase == "grid" && !(c.GridCell > 0):
		return fieldError("grid_cell", c.GridCell, "must be positive")
	}
	if _, err := camera.Named(c.Camera); err != nil {
		return fieldError("camera", c.Camera, "must be static, x, y or xy")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fieldError("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	return nil
}

func fieldError(field string, value any, reason string) error {
	return fmt.Errorf("config: %s %v %s", field, value, reason)
}

// FrameInterval is the time between two frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// CameraStrategy returns the configured camera strategy.
func (c *Config) CameraStrategy() camera.Strategy {
	s, err := camera.Named(c.Camera)
	if err != nil {
		return camera.Static{}
	}
	return s
}

// NewBroadphase returns the configured collision broad phase.
func (c *Config) NewBroadphase() ecs.Broadphase {
	if c.Broadphase == "grid" {
		return ecs.NewGrid(c.GridCell)
	}
	return ecs.AllPairs{}
}

// RegisterFlags binds command line flags to c. Flags parsed after a config
// file is loaded override its values.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "view width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "view height in cells")
	fs.IntVar(&c.FrameRate, "fps", c.FrameRate, "frames per second")
	fs.DurationVar(&c.MaxDelta, "max-delta", c.MaxDelta, "largest frame delta")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.StringVar(&c.Backend, "backend", c.Backend, "terminal, window or headless")
	fs.StringVar(&c.Camera, "camera", c.Camera, "camera strategy: static, x, y or xy")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "window cell size in pixels")
	fs.BoolVar(&c.DebugUI, "debug-ui", c.DebugUI, "show the scene inspector (window backend)")
	fs.BoolVar(&c.AutoPlay, "auto-play", c.AutoPlay, "let the game play itself where supported")
	fs.StringVar(&c.Broadphase, "broadphase", c.Broadphase, "collision broad phase: allpairs or grid")
	fs.Float64Var(&c.GridCell, "grid-cell", c.GridCell, "grid broad phase cell size")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level")
	fs.StringVar(&c.Log.Output, "log-output", c.Log.Output, "log file, stderr or stdout; empty disables logging")
}

// Parse builds a Config from command line arguments, starting from base
// or from Default when base is nil. When -config names a file it is
// decoded first and the remaining flags override its values.
func Parse(name string, base *Config, args []string) (*Config, error) {
	if base == nil {
		base = Default()
	}
	c := *base

	path, err := configPath(name, args)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := c.DecodeFile(path); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "YAML config file")
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func configPath(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", "", "")
	Default().RegisterFlags(fs)
	if err := fs.Parse(args); err != nil && !errors.Is(err, flag.ErrHelp) {
		return "", err
	}
	return *path, nil
}
