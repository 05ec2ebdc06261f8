//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"spacecol/internal/app"
	"spacecol/internal/sim"
)

func main() {
	opts := app.NewOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	cfg := sim.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := sim.LoadConfig(opts.ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	cfg.Seed = opts.Seed

	engine := sim.NewEngine(cfg)
	game := app.New(engine, opts)
	game.ResetWorld()

	ebiten.SetWindowTitle("spacecol")
	ebiten.SetWindowSize(opts.Width, opts.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
