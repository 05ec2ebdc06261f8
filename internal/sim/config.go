package sim

import (
	"errors"
	"fmt"
	"strconv"

	"spacecol/internal/geom"
)

// ErrInvalidConfig marks configuration values the engine refuses to run with.
var ErrInvalidConfig = errors.New("invalid config")

// Config bundles every tunable the engine reads during a tick. A Config is
// treated as immutable while a tick is in flight; Engine.Configure swaps the
// whole bundle between ticks.
type Config struct {
	// AttractFromKN and KillFromKN select the k used by the k-th-nearest
	// queries (1 = strict nearest).
	AttractFromKN int `yaml:"attract_from_kn"`
	KillFromKN    int `yaml:"kill_from_kn"`

	InfluenceRadius float64 `yaml:"influence_radius"`
	KillRadius      float64 `yaml:"kill_radius"`

	// StepLen is the distance between a parent and a freshly grown child.
	StepLen float64   `yaml:"step_len"`
	Tropism geom.Vec2 `yaml:"tropism"`

	// MinSpacing suppresses a growth candidate when the parent already has
	// a child within this distance of the candidate position.
	MinSpacing float64 `yaml:"min_spacing"`

	// LocalInfluence switches the attraction query to rank only nodes
	// inside the influence radius. Off by default; global ranking is the
	// reference behavior.
	LocalInfluence bool `yaml:"local_influence"`

	// CyclesPerTick is how many attraction→growth→kill cycles one RunTick
	// executes. MaxTicks caps the total ticks (0 = unlimited). StallWindow
	// is the number of consecutive zero-kill cycles after which the run is
	// reported as stalled (0 disables stall detection).
	CyclesPerTick int `yaml:"cycles_per_tick"`
	MaxTicks      int `yaml:"max_ticks"`
	StallWindow   int `yaml:"stall_window"`

	// Spawn defaults consumed by the spawn tools, not by the phases.
	SpawnCount           int       `yaml:"spawn_count"`
	SpawnRectHalfExtents geom.Vec2 `yaml:"spawn_rect_half_extents"`
	SpawnOvalRadii       geom.Vec2 `yaml:"spawn_oval_radii"`
	SpawnRingInner       float64   `yaml:"spawn_ring_inner"`
	SpawnRingOuter       float64   `yaml:"spawn_ring_outer"`

	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		AttractFromKN:        1,
		KillFromKN:           1,
		InfluenceRadius:      60,
		KillRadius:           30,
		StepLen:              5,
		Tropism:              geom.V(0, 0.7),
		MinSpacing:           0.1,
		CyclesPerTick:        1,
		MaxTicks:             0,
		StallWindow:          25,
		SpawnCount:           1000,
		SpawnRectHalfExtents: geom.V(200, 200),
		SpawnOvalRadii:       geom.V(100, 100),
		SpawnRingInner:       60,
		SpawnRingOuter:       100,
		Seed:                 1337,
	}
}

// Validate reports whether the configuration is usable by the engine.
func (c Config) Validate() error {
	if c.AttractFromKN < 1 {
		return fmt.Errorf("%w: attract_from_kn must be >= 1, got %d", ErrInvalidConfig, c.AttractFromKN)
	}
	if c.KillFromKN < 1 {
		return fmt.Errorf("%w: kill_from_kn must be >= 1, got %d", ErrInvalidConfig, c.KillFromKN)
	}
	if c.InfluenceRadius <= 0 {
		return fmt.Errorf("%w: influence_radius must be positive, got %g", ErrInvalidConfig, c.InfluenceRadius)
	}
	if c.KillRadius <= 0 {
		return fmt.Errorf("%w: kill_radius must be positive, got %g", ErrInvalidConfig, c.KillRadius)
	}
	if c.StepLen <= 0 {
		return fmt.Errorf("%w: step_len must be positive, got %g", ErrInvalidConfig, c.StepLen)
	}
	if c.MinSpacing < 0 {
		return fmt.Errorf("%w: min_spacing must not be negative, got %g", ErrInvalidConfig, c.MinSpacing)
	}
	if c.CyclesPerTick < 1 {
		return fmt.Errorf("%w: cycles_per_tick must be >= 1, got %d", ErrInvalidConfig, c.CyclesPerTick)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: max_ticks must not be negative, got %d", ErrInvalidConfig, c.MaxTicks)
	}
	if c.StallWindow < 0 {
		return fmt.Errorf("%w: stall_window must not be negative, got %d", ErrInvalidConfig, c.StallWindow)
	}
	if c.SpawnCount < 0 {
		return fmt.Errorf("%w: spawn_count must not be negative, got %d", ErrInvalidConfig, c.SpawnCount)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys are ignored; malformed values leave the default in place.
func FromMap(cfg map[string]string) Config {
	return FromMapInto(DefaultConfig(), cfg)
}

// FromMapInto layers string key/value pairs on top of an existing config.
func FromMapInto(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	intKeys := map[string]*int{
		"attract_from_kn": &c.AttractFromKN,
		"kill_from_kn":    &c.KillFromKN,
		"cycles_per_tick": &c.CyclesPerTick,
		"max_ticks":       &c.MaxTicks,
		"stall_window":    &c.StallWindow,
		"spawn_count":     &c.SpawnCount,
	}
	for key, dst := range intKeys {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	floatKeys := map[string]*float64{
		"influence_radius": &c.InfluenceRadius,
		"kill_radius":      &c.KillRadius,
		"step_len":         &c.StepLen,
		"min_spacing":      &c.MinSpacing,
		"tropism_x":        &c.Tropism.X,
		"tropism_y":        &c.Tropism.Y,
		"spawn_rect_hx":    &c.SpawnRectHalfExtents.X,
		"spawn_rect_hy":    &c.SpawnRectHalfExtents.Y,
		"spawn_oval_rx":    &c.SpawnOvalRadii.X,
		"spawn_oval_ry":    &c.SpawnOvalRadii.Y,
		"spawn_ring_inner": &c.SpawnRingInner,
		"spawn_ring_outer": &c.SpawnRingOuter,
	}
	for key, dst := range floatKeys {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["local_influence"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.LocalInfluence = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
