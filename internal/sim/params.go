package sim

import (
	"strconv"

	"spacecol/internal/core"
)

// Parameters exposes the active configuration as a display snapshot.
func (e *Engine) Parameters() core.ParameterSnapshot {
	cfg := e.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Nearest neighbor",
			Params: []core.Parameter{
				intParam("attract_from_kn", "Attract from k-th nearest", cfg.AttractFromKN),
				intParam("kill_from_kn", "Kill from k-th nearest", cfg.KillFromKN),
				boolParam("local_influence", "Local influence ranking", cfg.LocalInfluence),
			},
		},
		{
			Name: "Radii",
			Params: []core.Parameter{
				floatParam("influence_radius", "Influence radius", cfg.InfluenceRadius),
				floatParam("kill_radius", "Kill radius", cfg.KillRadius),
			},
		},
		{
			Name: "Growth",
			Params: []core.Parameter{
				floatParam("step_len", "Step length", cfg.StepLen),
				floatParam("tropism_x", "Tropism X", cfg.Tropism.X),
				floatParam("tropism_y", "Tropism Y", cfg.Tropism.Y),
				floatParam("min_spacing", "Child min spacing", cfg.MinSpacing),
			},
		},
		{
			Name: "Driver",
			Params: []core.Parameter{
				intParam("cycles_per_tick", "Cycles per tick", cfg.CyclesPerTick),
				intParam("max_ticks", "Max ticks", cfg.MaxTicks),
				intParam("stall_window", "Stall window", cfg.StallWindow),
			},
		},
		{
			Name: "Spawning",
			Params: []core.Parameter{
				intParam("spawn_count", "Attractors per spawn", cfg.SpawnCount),
				floatParam("spawn_rect_hx", "Rect half extent X", cfg.SpawnRectHalfExtents.X),
				floatParam("spawn_rect_hy", "Rect half extent Y", cfg.SpawnRectHalfExtents.Y),
				floatParam("spawn_oval_rx", "Oval radius X", cfg.SpawnOvalRadii.X),
				floatParam("spawn_oval_ry", "Oval radius Y", cfg.SpawnOvalRadii.Y),
				floatParam("spawn_ring_inner", "Ring inner radius", cfg.SpawnRingInner),
				floatParam("spawn_ring_outer", "Ring outer radius", cfg.SpawnRingOuter),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables the HUD may adjust live.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "attract_from_kn", Label: "attract k", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 10, HasMax: true},
		{Key: "kill_from_kn", Label: "kill k", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 10, HasMax: true},
		{Key: "influence_radius", Label: "influence r", Type: core.ParamTypeFloat, Step: 1, Min: 0.5, HasMin: true, Max: 500, HasMax: true},
		{Key: "kill_radius", Label: "kill r", Type: core.ParamTypeFloat, Step: 1, Min: 0.5, HasMin: true, Max: 500, HasMax: true},
		{Key: "step_len", Label: "step", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, HasMin: true, Max: 50, HasMax: true},
		{Key: "tropism_x", Label: "tropism x", Type: core.ParamTypeFloat, Step: 0.05, Min: -2, HasMin: true, Max: 2, HasMax: true},
		{Key: "tropism_y", Label: "tropism y", Type: core.ParamTypeFloat, Step: 0.05, Min: -2, HasMin: true, Max: 2, HasMax: true},
		{Key: "cycles_per_tick", Label: "cycles/tick", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 50, HasMax: true},
		{Key: "spawn_count", Label: "spawn count", Type: core.ParamTypeInt, Step: 50, Min: 0, HasMin: true, Max: 10000, HasMax: true},
	}
}

// SetIntParameter adjusts one integer tunable, clamping to its valid range.
// It reports whether the key was recognized.
func (e *Engine) SetIntParameter(key string, value int) bool {
	cfg := e.cfg
	switch key {
	case "attract_from_kn":
		cfg.AttractFromKN = clampInt(value, 1, 10)
	case "kill_from_kn":
		cfg.KillFromKN = clampInt(value, 1, 10)
	case "cycles_per_tick":
		cfg.CyclesPerTick = clampInt(value, 1, 50)
	case "max_ticks":
		cfg.MaxTicks = clampInt(value, 0, 1<<30)
	case "stall_window":
		cfg.StallWindow = clampInt(value, 0, 1<<30)
	case "spawn_count":
		cfg.SpawnCount = clampInt(value, 0, 10000)
	default:
		return false
	}
	return e.Configure(cfg) == nil
}

// SetFloatParameter adjusts one float tunable, clamping to its valid range.
// It reports whether the key was recognized.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	cfg := e.cfg
	switch key {
	case "influence_radius":
		cfg.InfluenceRadius = clampFloat(value, 0.5, 500)
	case "kill_radius":
		cfg.KillRadius = clampFloat(value, 0.5, 500)
	case "step_len":
		cfg.StepLen = clampFloat(value, 0.5, 50)
	case "tropism_x":
		cfg.Tropism.X = clampFloat(value, -2, 2)
	case "tropism_y":
		cfg.Tropism.Y = clampFloat(value, -2, 2)
	case "min_spacing":
		cfg.MinSpacing = clampFloat(value, 0, 50)
	default:
		return false
	}
	return e.Configure(cfg) == nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}
