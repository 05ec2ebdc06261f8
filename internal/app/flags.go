package app

import "flag"

// Options represents the command-line parameters for the viewer.
type Options struct {
	ConfigPath string
	TPS        int
	Seed       int64
	Width      int
	Height     int
}

// NewOptions returns Options populated with sensible defaults.
func NewOptions() *Options {
	return &Options{TPS: 10, Seed: 1337, Width: 1280, Height: 800}
}

// Bind attaches the options to the provided FlagSet.
func (o *Options) Bind(fs *flag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "optional YAML config file")
	fs.IntVar(&o.TPS, "tps", o.TPS, "simulation ticks per second")
	fs.Int64Var(&o.Seed, "seed", o.Seed, "seed for attractor spawning")
	fs.IntVar(&o.Width, "width", o.Width, "window width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "window height in pixels")
}
