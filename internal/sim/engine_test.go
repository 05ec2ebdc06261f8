package sim

import (
	"errors"
	"math"
	"testing"

	"spacecol/internal/geom"
)

func chainConfig() Config {
	cfg := DefaultConfig()
	cfg.AttractFromKN = 1
	cfg.KillFromKN = 1
	cfg.InfluenceRadius = 20
	cfg.KillRadius = 1
	cfg.StepLen = 1
	cfg.Tropism = geom.Vec2{}
	cfg.CyclesPerTick = 1
	cfg.MaxTicks = 0
	cfg.StallWindow = 0
	return cfg
}

// Single seed at the origin, one attractor at (10,0): after exactly ten
// ticks a straight ten-node chain reaches the attractor and consumes it.
func TestStraightChainScenario(t *testing.T) {
	engine := NewEngine(chainConfig())
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(10, 0)})

	for tick := 1; tick <= 10; tick++ {
		summary := engine.RunTick()
		if len(summary.NodesAdded) != 1 {
			t.Fatalf("tick %d: expected exactly one new node, got %v", tick, summary.NodesAdded)
		}
		if tick < 10 && summary.Terminal != TerminalNone {
			t.Fatalf("tick %d: premature terminal condition %v", tick, summary.Terminal)
		}
		if tick == 10 {
			if summary.AttractorsKilled != 1 {
				t.Fatalf("tick 10 should kill the attractor, killed=%d", summary.AttractorsKilled)
			}
			if summary.Terminal != TerminalNoAttractors {
				t.Fatalf("tick 10 should report no attractors alive, got %v", summary.Terminal)
			}
		}
	}

	snap := engine.Snapshot()
	if len(snap.Nodes) != 11 {
		t.Fatalf("expected root plus 10 chain nodes, got %d", len(snap.Nodes))
	}
	for i, n := range snap.Nodes {
		wantParent := i - 1
		if i == 0 {
			wantParent = NoParent
		}
		if n.Parent != wantParent {
			t.Fatalf("node %d: parent %d, want %d", i, n.Parent, wantParent)
		}
		if math.Abs(n.Pos.X-float64(i)) > 1e-9 || math.Abs(n.Pos.Y) > 1e-9 {
			t.Fatalf("node %d should sit at (%d,0) on the x-axis, got %v", i, i, n.Pos)
		}
	}
	if snap.Attractors[0].Alive {
		t.Fatal("attractor should be dead after the chain reaches it")
	}
}

// Two attractors mirrored across the seed cancel each other out: the growth
// direction averages to zero, nothing grows, and the run stalls.
func TestSymmetricCancellationStalls(t *testing.T) {
	cfg := chainConfig()
	cfg.StallWindow = 5
	engine := NewEngine(cfg)
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(0, 2), geom.V(0, -2)})

	var last TickSummary
	for tick := 1; tick <= 5; tick++ {
		last = engine.RunTick()
		if len(last.NodesAdded) != 0 {
			t.Fatalf("tick %d: symmetric cancellation must not grow nodes, got %v", tick, last.NodesAdded)
		}
	}
	if last.Terminal != TerminalStalled {
		t.Fatalf("expected stall after 5 zero-kill cycles, got %v", last.Terminal)
	}

	snap := engine.Snapshot()
	if len(snap.Nodes) != 1 {
		t.Fatalf("only the seed should exist, got %d nodes", len(snap.Nodes))
	}
	if !snap.Attractors[0].Alive || !snap.Attractors[1].Alive {
		t.Fatal("both attractors must remain alive")
	}
}

// The same mirrored setup with tropism (1,0) grows along +x, and the seed
// sits strictly inside the kill radius of both attractors, so they die in
// the same cycle the growth happens.
func TestTropismBreaksSymmetricCancellation(t *testing.T) {
	cfg := chainConfig()
	cfg.Tropism = geom.V(1, 0)
	engine := NewEngine(cfg)
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(0, 0.5), geom.V(0, -0.5)})

	summary := engine.RunTick()
	if len(summary.NodesAdded) != 1 {
		t.Fatalf("tropism should produce growth, got %v", summary.NodesAdded)
	}
	if pos := engine.Snapshot().Nodes[1].Pos; pos != geom.V(1, 0) {
		t.Fatalf("growth should proceed along +x, got %v", pos)
	}
	if summary.AttractorsKilled != 2 {
		t.Fatalf("both attractors sit inside the kill radius of the seed, killed=%d", summary.AttractorsKilled)
	}
	if summary.Terminal != TerminalNoAttractors {
		t.Fatalf("expected no-attractors terminal, got %v", summary.Terminal)
	}
}

func TestResetSnapshotRoundTrip(t *testing.T) {
	engine := NewEngine(chainConfig())
	seeds := []geom.Vec2{geom.V(0, 0), geom.V(5, 5)}
	engine.Reset(seeds, &SpawnRequest{
		Shape:       ShapeRect,
		Center:      geom.V(0, 100),
		HalfExtents: geom.V(50, 20),
		Count:       25,
	})

	snap := engine.Snapshot()
	if len(snap.Nodes) != len(seeds) {
		t.Fatalf("snapshot should hold exactly the requested seeds, got %d nodes", len(snap.Nodes))
	}
	for i, n := range snap.Nodes {
		if n.Pos != seeds[i] {
			t.Fatalf("seed %d at %v, want %v", i, n.Pos, seeds[i])
		}
		if n.Parent != NoParent {
			t.Fatalf("seed %d should be a root, parent=%d", i, n.Parent)
		}
	}
	if len(snap.Attractors) != 25 {
		t.Fatalf("expected 25 spawned attractors, got %d", len(snap.Attractors))
	}
	for i, a := range snap.Attractors {
		if !a.Alive {
			t.Fatalf("attractor %d should spawn alive", i)
		}
		if math.Abs(a.Pos.X-0) > 50 || math.Abs(a.Pos.Y-100) > 20 {
			t.Fatalf("attractor %d at %v outside the requested rectangle", i, a.Pos)
		}
	}
}

func TestResetIsDeterministic(t *testing.T) {
	spawn := &SpawnRequest{Shape: ShapeOval, Center: geom.V(0, 120), Radii: geom.V(100, 100), Count: 50}
	engine := NewEngine(chainConfig())

	engine.Reset([]geom.Vec2{geom.V(0, 0)}, spawn)
	first := engine.Snapshot()
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, spawn)
	second := engine.Snapshot()

	if len(first.Attractors) != len(second.Attractors) {
		t.Fatalf("attractor counts differ: %d vs %d", len(first.Attractors), len(second.Attractors))
	}
	for i := range first.Attractors {
		if first.Attractors[i].Pos != second.Attractors[i].Pos {
			t.Fatalf("attractor %d differs between identical resets: %v vs %v",
				i, first.Attractors[i].Pos, second.Attractors[i].Pos)
		}
	}
}

func TestClearEmptiesEverything(t *testing.T) {
	engine := NewEngine(chainConfig())
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, &SpawnRequest{
		Shape: ShapeOval, Center: geom.V(0, 120), Radii: geom.V(100, 100), Count: 10,
	})
	engine.RunTick()

	engine.Clear()

	snap := engine.Snapshot()
	if len(snap.Nodes) != 0 || len(snap.Attractors) != 0 {
		t.Fatalf("clear should empty everything, got %d nodes and %d attractors",
			len(snap.Nodes), len(snap.Attractors))
	}
	if engine.Ticks() != 0 {
		t.Fatalf("tick counter should reset, got %d", engine.Ticks())
	}
}

func TestConfigureRejectsInvalidAndKeepsPrevious(t *testing.T) {
	engine := NewEngine(chainConfig())
	previous := engine.Config()

	bad := previous
	bad.KillRadius = -3
	if err := engine.Configure(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if engine.Config() != previous {
		t.Fatal("a rejected config must leave the previous one active")
	}

	bad = previous
	bad.AttractFromKN = 0
	if err := engine.Configure(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for k=0, got %v", err)
	}
}

func TestStopRequestObservedAfterTick(t *testing.T) {
	engine := NewEngine(chainConfig())
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(500, 0)}) // too far to interact

	engine.RequestStop()
	summary := engine.RunTick()
	if summary.Terminal != TerminalStopRequested {
		t.Fatalf("expected stop-requested terminal, got %v", summary.Terminal)
	}

	// Latched: further ticks do no work and keep reporting.
	before := engine.Ticks()
	again := engine.RunTick()
	if again.Terminal != TerminalStopRequested {
		t.Fatalf("latched condition should be re-reported, got %v", again.Terminal)
	}
	if engine.Ticks() != before {
		t.Fatal("a latched engine must not advance")
	}
}

func TestMaxTicksFires(t *testing.T) {
	cfg := chainConfig()
	cfg.MaxTicks = 3
	engine := NewEngine(cfg)
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(500, 0)})

	var summary TickSummary
	for i := 0; i < 3; i++ {
		summary = engine.RunTick()
	}
	if summary.Terminal != TerminalMaxTicks {
		t.Fatalf("expected max-ticks terminal after 3 ticks, got %v", summary.Terminal)
	}
}

func TestClearTerminalAllowsContinuing(t *testing.T) {
	cfg := chainConfig()
	cfg.StallWindow = 2
	engine := NewEngine(cfg)
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(0, 2), geom.V(0, -2)})

	engine.RunTick()
	summary := engine.RunTick()
	if summary.Terminal != TerminalStalled {
		t.Fatalf("expected stall, got %v", summary.Terminal)
	}

	engine.ClearTerminal()
	ticksBefore := engine.Ticks()
	summary = engine.RunTick()
	if engine.Ticks() != ticksBefore+1 {
		t.Fatal("clearing the terminal condition must let the engine run again")
	}
	// Stall bookkeeping restarts: one quiet tick is below the window.
	if summary.Terminal != TerminalNone {
		t.Fatalf("stall window should restart from zero, got %v", summary.Terminal)
	}
}

func TestClearTerminalAfterStopAllowsContinuing(t *testing.T) {
	engine := NewEngine(chainConfig())
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(500, 0)})

	engine.RequestStop()
	if summary := engine.RunTick(); summary.Terminal != TerminalStopRequested {
		t.Fatalf("expected stop-requested terminal, got %v", summary.Terminal)
	}

	// The request is consumed when it fires; clearing the condition must
	// let the run resume instead of re-firing on a stale flag.
	engine.ClearTerminal()
	summary := engine.RunTick()
	if summary.Terminal != TerminalNone {
		t.Fatalf("stale stop request re-fired after clearing, got %v", summary.Terminal)
	}
	if engine.Ticks() != 2 {
		t.Fatalf("engine should have run a second tick, ticks=%d", engine.Ticks())
	}
}

func TestDeadAttractorsStayDead(t *testing.T) {
	engine := NewEngine(chainConfig())
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(0.5, 0), geom.V(300, 0)})

	engine.RunTick() // the near attractor dies inside the kill radius
	if engine.Snapshot().Attractors[0].Alive {
		t.Fatal("near attractor should be dead")
	}

	for i := 0; i < 5; i++ {
		engine.RunTick()
		if engine.Snapshot().Attractors[0].Alive {
			t.Fatalf("dead attractor revived on tick %d", i+1)
		}
	}
}

func TestSpawnRootBetweenTicks(t *testing.T) {
	engine := NewEngine(chainConfig())
	engine.Reset(nil, nil)

	id := engine.SpawnRoot(geom.V(3, 4))
	if id != 0 {
		t.Fatalf("first spawned root should get index 0, got %d", id)
	}
	snap := engine.Snapshot()
	if len(snap.Nodes) != 1 || snap.Nodes[0].Pos != geom.V(3, 4) {
		t.Fatalf("unexpected snapshot after spawning a root: %+v", snap.Nodes)
	}
}

func TestCyclesPerTickRunsAllCycles(t *testing.T) {
	cfg := chainConfig()
	cfg.CyclesPerTick = 10
	engine := NewEngine(cfg)
	engine.Reset([]geom.Vec2{geom.V(0, 0)}, nil)
	engine.SpawnAttractorsAt([]geom.Vec2{geom.V(10, 0)})

	summary := engine.RunTick()
	if len(summary.NodesAdded) != 10 {
		t.Fatalf("10 cycles should grow the full chain in one tick, got %d nodes", len(summary.NodesAdded))
	}
	if summary.AttractorsKilled != 1 || summary.Terminal != TerminalNoAttractors {
		t.Fatalf("chain should consume the attractor within the tick, killed=%d terminal=%v",
			summary.AttractorsKilled, summary.Terminal)
	}
}
