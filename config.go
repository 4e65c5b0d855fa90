package mercurana

import "github.com/phil-mansfield/mercurana/eos"

// CollisionMode mirrors the reference integrator's collision-search
// modes; mercurana only ever computes gravity directly, so it accepts
// (and warns on) the same set of modes the reference does without
// implementing collision detection itself.
type CollisionMode int

const (
	CollisionNone CollisionMode = iota
	CollisionDirect
)

// Config holds an Integrator's recognized options. Build one with
// DefaultConfig and override only the fields that need to differ from
// the reference's own defaults.
type Config struct {
	// PhiOuter drives shell 0; PhiInner drives every shell below it.
	PhiOuter, PhiInner eos.Name

	// N is the number of inner sub-steps each drift recurses into its
	// promoted sub-shell with.
	N int

	// WHSplitting exempts the star (body index 0) from shell 0's
	// force evaluation, deferring star-planet interactions to shell
	// 1, à la Wisdom-Holman. Requires the star to be Sim.Bodies[0];
	// Part1 warns once (via Sim.Logger) if WHSplitting is set and
	// that does not hold.
	WHSplitting bool

	// SafeMode forces a Synchronize after every Part2 call, keeping
	// Sim.Bodies continuously valid at the cost of the extra
	// half-step postprocessor work. Disable only when every Part2
	// call is immediately followed by another, deferring the
	// postprocessor to a single explicit Synchronize at the end.
	SafeMode bool

	// DtFrac sets the fraction of a local dynamical timescale a
	// shell's dcrit is sized to.
	DtFrac float64

	// SMax bounds shell recursion depth; a shell that would promote
	// bodies past SMax instead keeps them at its own depth.
	SMax int

	// RecalcDcritThisTimestep forces a one-time dcrit recomputation
	// on the next Part1 call (e.g. after bodies are added or masses
	// change) and clears it again; Part1 also recomputes dcrit
	// automatically whenever N grows.
	RecalcDcritThisTimestep bool
}

// DefaultConfig mirrors the reference's reb_integrator_mercurana_reset
// defaults: LF/LF everywhere, n=10 inner sub-steps, WH splitting and
// safe mode both on, dt_frac=0.1, up to 10 shells.
func DefaultConfig() Config {
	return Config{
		PhiOuter:    eos.LF,
		PhiInner:    eos.LF,
		N:           10,
		WHSplitting: true,
		SafeMode:    true,
		DtFrac:      0.1,
		SMax:        10,
	}
}
