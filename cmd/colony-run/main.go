package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"spacecol/internal/geom"
	"spacecol/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	seed := flag.Int64("seed", 0, "override the config seed when nonzero")
	shapeName := flag.String("shape", "oval", "attractor cloud shape: rect, oval or ring")
	centerX := flag.Float64("center-x", 0, "cloud center x")
	centerY := flag.Float64("center-y", 120, "cloud center y")
	rootX := flag.Float64("root-x", 0, "seed root x")
	rootY := flag.Float64("root-y", 0, "seed root y")
	ticks := flag.Int("ticks", 2000, "hard tick cap for this run")
	verbose := flag.Bool("v", false, "print a summary line for every tick")

	overrides := map[string]string{}
	flag.Func("set", "config override as key=value (repeatable)", func(s string) error {
		key, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		overrides[key] = value
		return nil
	})
	flag.Parse()

	cfg := sim.FromMap(overrides)
	if *configPath != "" {
		loaded, err := sim.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
		for key, value := range overrides {
			applyOverride(&cfg, key, value)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	shape, err := parseShape(*shapeName)
	if err != nil {
		log.Fatal(err)
	}

	engine := sim.NewEngine(cfg)
	engine.Reset([]geom.Vec2{geom.V(*rootX, *rootY)}, &sim.SpawnRequest{
		Shape:       shape,
		Center:      geom.V(*centerX, *centerY),
		HalfExtents: cfg.SpawnRectHalfExtents,
		Radii:       cfg.SpawnOvalRadii,
		Inner:       cfg.SpawnRingInner,
		Outer:       cfg.SpawnRingOuter,
		Count:       cfg.SpawnCount,
	})

	totalGrown := 0
	totalKilled := 0
	for tick := 1; tick <= *ticks; tick++ {
		summary := engine.RunTick()
		totalGrown += len(summary.NodesAdded)
		totalKilled += summary.AttractorsKilled
		if *verbose {
			stats := engine.Stats()
			fmt.Printf("tick %4d: grown=%3d killed=%3d nodes=%5d alive=%5d\n",
				tick, len(summary.NodesAdded), summary.AttractorsKilled, stats.Nodes, stats.AttractorsAlive)
		}
		if summary.Terminal != sim.TerminalNone {
			break
		}
	}

	stats := engine.Stats()
	reason := stats.Terminal.String()
	if stats.Terminal == sim.TerminalNone {
		reason = "tick cap reached"
	}
	fmt.Printf("finished after %d ticks: %s\n", stats.Ticks, reason)
	fmt.Printf("nodes=%d grown=%d attractors=%d alive=%d killed=%d\n",
		stats.Nodes, totalGrown, stats.Attractors, stats.AttractorsAlive, totalKilled)
}

func parseShape(name string) (sim.SpawnShape, error) {
	switch name {
	case "rect":
		return sim.ShapeRect, nil
	case "oval":
		return sim.ShapeOval, nil
	case "ring":
		return sim.ShapeRing, nil
	}
	return 0, fmt.Errorf("unknown shape %q (want rect, oval or ring)", name)
}

// applyOverride layers one -set pair on top of a file-loaded config by
// round-tripping through the map parser with the current value as default.
func applyOverride(cfg *sim.Config, key, value string) {
	patched := sim.FromMapInto(*cfg, map[string]string{key: value})
	*cfg = patched
}
