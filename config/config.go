// Package config layers a TOML file over compiled defaults
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/tickloop/constants"
	"github.com/lixenwraith/tickloop/terminal"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Duration decodes TOML strings such as "250ms" or "1s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full run configuration
type Config struct {
	Loop     LoopConfig     `toml:"loop"`
	Spinner  SpinnerConfig  `toml:"spinner"`
	Terminal TerminalConfig `toml:"terminal"`
	Audio    AudioConfig    `toml:"audio"`
	Debug    DebugConfig    `toml:"debug"`
	Log      LogConfig      `toml:"log"`
}

type LoopConfig struct {
	TargetUPS    int      `toml:"target_ups"`
	MaxFrameTime Duration `toml:"max_frame_time"` // 0 disables the clamp
	MaxFPS       int      `toml:"max_fps"`        // 0 is uncapped
}

type SpinnerConfig struct {
	DegreesPerSecond float64 `toml:"degrees_per_second"`
}

type TerminalConfig struct {
	Color string `toml:"color"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// DebugConfig enables the status endpoint when Addr is set
type DebugConfig struct {
	Addr string `toml:"addr"`
}

type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Defaults returns the compiled-in configuration
func Defaults() Config {
	return Config{
		Loop: LoopConfig{
			TargetUPS:    constants.DefaultTargetUPS,
			MaxFrameTime: Duration{constants.DefaultMaxFrameTime},
			MaxFPS:       constants.DefaultMaxFPS,
		},
		Spinner: SpinnerConfig{
			DegreesPerSecond: constants.DefaultSpinRate,
		},
		Terminal: TerminalConfig{
			Color: string(terminal.ColorAuto),
		},
		Audio: AudioConfig{
			Volume: constants.DefaultAudioVolume,
		},
		Log: LogConfig{
			Dir: constants.LogDir,
		},
	}
}

// Load decodes path over the defaults; an empty path yields the defaults
// Unknown keys are rejected so typos do not pass silently
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load %s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, cfg.Validate()
}

// FixedStep returns the simulation step implied by loop.target_ups
func (c Config) FixedStep() time.Duration {
	if c.Loop.TargetUPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Loop.TargetUPS)
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	switch {
	case c.Loop.TargetUPS <= 0:
		return fmt.Errorf("%w: loop.target_ups must be positive, got %d", ErrInvalid, c.Loop.TargetUPS)
	case c.Loop.TargetUPS > int(time.Second):
		return fmt.Errorf("%w: loop.target_ups %d exceeds clock resolution", ErrInvalid, c.Loop.TargetUPS)
	case c.Loop.MaxFrameTime.Duration < 0:
		return fmt.Errorf("%w: loop.max_frame_time must not be negative", ErrInvalid)
	case c.Loop.MaxFrameTime.Duration > 0 && c.Loop.MaxFrameTime.Duration < c.FixedStep():
		// A cap below one step would slow the simulation below real time
		return fmt.Errorf("%w: loop.max_frame_time %v is shorter than the %v update step",
			ErrInvalid, c.Loop.MaxFrameTime.Duration, c.FixedStep())
	case c.Loop.MaxFPS < 0:
		return fmt.Errorf("%w: loop.max_fps must not be negative", ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %g", ErrInvalid, c.Audio.Volume)
	}

	if _, err := terminal.ParseColorMode(c.Terminal.Color); err != nil {
		return fmt.Errorf("%w: terminal.color: %w", ErrInvalid, err)
	}
	return nil
}
