package sim

import (
	"math/rand"

	"spacecol/internal/geom"
)

// TerminalCondition identifies why a run can make no further progress.
type TerminalCondition int

const (
	// TerminalNone means the run may continue.
	TerminalNone TerminalCondition = iota
	// TerminalNoAttractors fires when no attractor remains alive.
	TerminalNoAttractors
	// TerminalMaxTicks fires when the configured tick budget is exhausted.
	TerminalMaxTicks
	// TerminalStopRequested fires on the tick after RequestStop.
	TerminalStopRequested
	// TerminalStalled fires after StallWindow consecutive zero-kill cycles.
	TerminalStalled
)

// String names the condition for logs and HUD display.
func (c TerminalCondition) String() string {
	switch c {
	case TerminalNone:
		return "running"
	case TerminalNoAttractors:
		return "no attractors alive"
	case TerminalMaxTicks:
		return "max ticks reached"
	case TerminalStopRequested:
		return "stop requested"
	case TerminalStalled:
		return "stalled"
	}
	return "unknown"
}

// TickSummary reports what one RunTick did.
type TickSummary struct {
	// NodesAdded holds the indices of nodes created this tick, in commit
	// order across all phase-cycles.
	NodesAdded []int
	// AttractorsKilled counts attractors that died this tick.
	AttractorsKilled int
	// Terminal is TerminalNone while the run may continue.
	Terminal TerminalCondition
}

// SpawnShape selects the footprint of an attractor cloud.
type SpawnShape int

const (
	ShapeRect SpawnShape = iota
	ShapeOval
	ShapeRing
)

// SpawnRequest describes one attractor cloud. HalfExtents applies to
// ShapeRect, Radii to ShapeOval, Inner/Outer to ShapeRing.
type SpawnRequest struct {
	Shape       SpawnShape
	Center      geom.Vec2
	HalfExtents geom.Vec2
	Radii       geom.Vec2
	Inner       float64
	Outer       float64
	Count       int
}

// Stats is a cheap counters view for status displays.
type Stats struct {
	Nodes           int
	Attractors      int
	AttractorsAlive int
	Ticks           int
	Terminal        TerminalCondition
}

// Engine owns one simulation: the tree, the attractor set, the active
// config, and the tick bookkeeping. It is not a singleton; independent
// engines can coexist. All methods are single-threaded: the engine owns its
// state exclusively for the duration of a call, and a stop request is only
// observed between ticks, never mid-tick.
type Engine struct {
	cfg        Config
	tree       *Tree
	attractors *AttractorSet
	acc        *InfluenceBuffer
	rng        *rand.Rand

	ticks       int
	quietCycles int
	stop        bool
	terminal    TerminalCondition
}

// NewEngine builds an empty engine with the given config. Invalid configs
// fall back to defaults so a fresh engine is always runnable; use Configure
// to find out why a config was rejected.
func NewEngine(cfg Config) *Engine {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg:        cfg,
		tree:       NewTree(),
		attractors: NewAttractorSet(),
		acc:        NewInfluenceBuffer(0),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Configure validates and replaces the active parameter set. On error the
// previous config stays active. A successful call clears any latched
// terminal condition, since new parameters may unstick a stalled run.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	e.clearTerminal()
	return nil
}

// Reset discards the current tree and attractor set and rebuilds them from
// the given seed positions and optional spawn request. The RNG is re-seeded
// so identical resets reproduce identical runs.
func (e *Engine) Reset(seeds []geom.Vec2, spawn *SpawnRequest) {
	e.tree = NewTree()
	e.attractors = NewAttractorSet()
	e.acc = NewInfluenceBuffer(0)
	e.rng = rand.New(rand.NewSource(e.cfg.Seed))
	e.ticks = 0
	e.stop = false
	e.terminal = TerminalNone
	e.quietCycles = 0

	for _, pos := range seeds {
		e.tree.AddRoot(pos, 1)
	}
	if spawn != nil {
		e.spawn(*spawn)
	}
}

// Clear empties the tree and attractor set to zero nodes and attractors.
func (e *Engine) Clear() {
	e.Reset(nil, nil)
}

// SpawnRoot appends a parentless node between ticks and returns its index.
func (e *Engine) SpawnRoot(pos geom.Vec2) int {
	e.clearTerminal()
	return e.tree.AddRoot(pos, 1)
}

// SpawnAttractors appends one attractor cloud between ticks.
func (e *Engine) SpawnAttractors(req SpawnRequest) {
	e.clearTerminal()
	e.spawn(req)
}

// SpawnAttractorsAt appends attractors at explicit positions between ticks.
func (e *Engine) SpawnAttractorsAt(positions []geom.Vec2) {
	e.clearTerminal()
	for _, pos := range positions {
		e.attractors.Append(pos)
	}
}

func (e *Engine) spawn(req SpawnRequest) {
	if req.Count <= 0 {
		return
	}
	switch req.Shape {
	case ShapeRect:
		e.attractors.SpawnRect(req.Center, req.HalfExtents, req.Count, e.rng)
	case ShapeOval:
		e.attractors.SpawnOval(req.Center, req.Radii, req.Count, e.rng)
	case ShapeRing:
		e.attractors.SpawnRing(req.Center, req.Inner, req.Outer, req.Count, e.rng)
	}
}

// RequestStop asks the engine to stop. The request is observed at the end
// of the next RunTick, never mid-tick, and is consumed when it fires.
func (e *Engine) RequestStop() { e.stop = true }

// Terminal returns the latched terminal condition, if any.
func (e *Engine) Terminal() TerminalCondition { return e.terminal }

// ClearTerminal unlatches a fired terminal condition so the caller can
// deliberately continue past it (the stall case). Stall bookkeeping starts
// over from zero.
func (e *Engine) ClearTerminal() { e.clearTerminal() }

func (e *Engine) clearTerminal() {
	e.terminal = TerminalNone
	e.quietCycles = 0
}

// RunTick executes one tick of CyclesPerTick phase-cycles and evaluates the
// termination policy. Once a terminal condition has fired, further calls do
// no work and keep reporting it until the caller clears or rebuilds state;
// the engine never silently continues past a fired condition.
func (e *Engine) RunTick() TickSummary {
	if e.terminal != TerminalNone {
		return TickSummary{Terminal: e.terminal}
	}

	var sum TickSummary
	for cycle := 0; cycle < e.cfg.CyclesPerTick; cycle++ {
		AttractionPhase(e.tree, e.attractors, &e.cfg, e.acc)
		added := GrowthPhase(e.tree, e.acc, &e.cfg)
		killed := KillPhase(e.tree, e.attractors, &e.cfg)

		sum.NodesAdded = append(sum.NodesAdded, added...)
		sum.AttractorsKilled += killed
		if killed == 0 {
			e.quietCycles++
		} else {
			e.quietCycles = 0
		}
	}
	e.ticks++

	switch {
	case !e.attractors.AnyAlive():
		e.terminal = TerminalNoAttractors
	case e.cfg.MaxTicks > 0 && e.ticks >= e.cfg.MaxTicks:
		e.terminal = TerminalMaxTicks
	case e.stop:
		// Consume the request so clearing the condition can resume the run.
		e.stop = false
		e.terminal = TerminalStopRequested
	case e.cfg.StallWindow > 0 && e.quietCycles >= e.cfg.StallWindow:
		e.terminal = TerminalStalled
	}
	sum.Terminal = e.terminal
	return sum
}

// Ticks reports how many ticks have run since the last Reset.
func (e *Engine) Ticks() int { return e.ticks }

// Stats returns current counters for status displays.
func (e *Engine) Stats() Stats {
	return Stats{
		Nodes:           e.tree.Len(),
		Attractors:      e.attractors.Len(),
		AttractorsAlive: e.attractors.AliveCount(),
		Ticks:           e.ticks,
		Terminal:        e.terminal,
	}
}

// NodeView is one node in a snapshot. Parent is NoParent for roots.
type NodeView struct {
	Pos    geom.Vec2
	Radius float64
	Parent int
}

// AttractorView is one attractor in a snapshot.
type AttractorView struct {
	Pos   geom.Vec2
	Alive bool
}

// Snapshot is a read-only copy of the visible simulation state, intended
// for rendering. Mutating it has no effect on the engine.
type Snapshot struct {
	Nodes      []NodeView
	Attractors []AttractorView
}

// Snapshot copies the current node and attractor state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Nodes:      make([]NodeView, e.tree.Len()),
		Attractors: make([]AttractorView, e.attractors.Len()),
	}
	for i := range snap.Nodes {
		n := e.tree.At(i)
		snap.Nodes[i] = NodeView{Pos: n.Pos, Radius: n.Radius, Parent: n.Parent}
	}
	for i := range snap.Attractors {
		a := e.attractors.At(i)
		snap.Attractors[i] = AttractorView{Pos: a.Pos, Alive: a.Alive}
	}
	return snap
}
