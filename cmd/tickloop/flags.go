package main

import (
	"flag"
	"io"

	"github.com/lixenwraith/tickloop/config"
)

// cliOptions holds parsed command-line flags
type cliOptions struct {
	configPath string
	ups        int
	fps        int
	color      string
	audio      bool
	debug      bool
	debugAddr  string

	set map[string]bool // Flags given explicitly
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("tickloop", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	fs.IntVar(&opts.ups, "ups", 0, "Fixed simulation rate in updates per second")
	fs.IntVar(&opts.fps, "fps", 0, "Frame cap, 0 renders as fast as the terminal accepts")
	fs.StringVar(&opts.color, "color", "", "Color mode: auto, truecolor, 256")
	fs.BoolVar(&opts.audio, "audio", false, "Click once per rate report")
	fs.BoolVar(&opts.debug, "debug", false, "Write the run log to the log directory")
	fs.StringVar(&opts.debugAddr, "debug-addr", "", "Serve /healthz and /status on this address")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// apply overrides config values with explicitly given flags
func (o cliOptions) apply(cfg *config.Config) {
	if o.set["ups"] {
		cfg.Loop.TargetUPS = o.ups
	}
	if o.set["fps"] {
		cfg.Loop.MaxFPS = o.fps
	}
	if o.set["color"] {
		cfg.Terminal.Color = o.color
	}
	if o.set["audio"] {
		cfg.Audio.Enabled = o.audio
	}
	if o.set["debug"] {
		cfg.Log.Enabled = o.debug
	}
	if o.set["debug-addr"] {
		cfg.Debug.Addr = o.debugAddr
	}
}
