package mercurana

import (
	"github.com/phil-mansfield/mercurana/eos"
	"github.com/phil-mansfield/mercurana/gravity"
	"github.com/phil-mansfield/mercurana/shell"
	"github.com/phil-mansfield/mercurana/switching"
)

// Integrator is the outer driver: it owns the shell resolver and the
// working copy of particle state the gravity package operates on, and
// dispatches Part1/Part2/Synchronize/Reset exactly as the reference's
// four lifecycle entry points do.
//
// Config's fields are promoted onto Integrator directly (ig.WHSplitting,
// ig.SMax, ...), matching how the reference keeps every tunable as a
// flat field on ri_mercurana rather than behind a nested options struct.
type Integrator struct {
	Config

	resolver shell.Resolver
	sw       switching.Func

	schedOuter, schedInner *eos.Schedule

	particles []gravity.Particle
	jerkBuf   []Vec3
	states    []shell.State

	maxShellUsed int
	synchronized bool
	recalcPending bool
	warnedWH      bool
}

// NewIntegrator builds an Integrator from cfg, ready for its first
// Part1/Part2 call. Sim.Bodies may be empty or nonempty at this point;
// Part1 (re)allocates to match whatever size it sees.
func NewIntegrator(cfg Config) *Integrator {
	ig := &Integrator{
		Config:       cfg,
		sw:           switching.Default,
		synchronized: true,
		maxShellUsed: 1,
	}
	ig.resolver.SMax = cfg.SMax
	ig.schedOuter = eos.New(cfg.PhiOuter)
	ig.schedInner = eos.New(cfg.PhiInner)
	return ig
}

// MaxShellUsed reports how many shells have been used so far: one more
// than the deepest depth any drift step has actually recursed into (1
// while only shell 0 has run) — a direct measure of how close the
// simulation has come to exhausting SMax.
func (ig *Integrator) MaxShellUsed() int { return ig.maxShellUsed }

// Part1 mirrors reb_integrator_mercurana_part1: it grows the resolver's
// buffers if N has increased (forcing a dcrit recalculation), recomputes
// dcrit when requested, and validates the handful of Sim fields the
// reference also only warns about rather than rejecting outright.
func (ig *Integrator) Part1(sim *Sim, dt float64) {
	if sim.VariationalEquations {
		sim.warn("mercurana: variational equations are not supported")
	}

	n := len(sim.Bodies)
	ig.resolver.SMax = ig.SMax
	if ig.resolver.Grow(n) {
		ig.particles = make([]gravity.Particle, n)
		ig.jerkBuf = make([]Vec3, n)
		ig.states = make([]shell.State, n)
		ig.recalcPending = true
	}

	ig.schedOuter = eos.New(ig.PhiOuter)
	ig.schedInner = eos.New(ig.PhiInner)

	if ig.RecalcDcritThisTimestep {
		ig.RecalcDcritThisTimestep = false
		ig.recalcPending = true
	}
	if ig.recalcPending {
		ig.recalcPending = false
		if !ig.synchronized {
			ig.Synchronize(sim, dt)
			sim.warn("mercurana: recalculating dcrit but positions were not synchronized first")
		}
		masses := make([]float64, n)
		for i, b := range sim.Bodies {
			masses[i] = b.Mass
		}
		ig.resolver.ComputeDcrit(sim.G, masses, dt, ig.DtFrac, ig.longestDrift, ig.N)
		ig.resolver.ResetIdentity(n)
	}

	if sim.CollisionMode != CollisionNone && sim.CollisionMode != CollisionDirect {
		sim.warn("mercurana: only a direct collision search is supported")
	}
	if sim.ExternalGravityRoutineActive {
		sim.warn("mercurana: has its own gravity routine; caller-supplied gravity is ignored")
	}

	if ig.WHSplitting && !ig.warnedWH && n > 1 {
		star := sim.Bodies[0].Mass
		for i := 1; i < sim.nActive(); i++ {
			if sim.Bodies[i].Mass > star {
				sim.warn("mercurana: WHSplitting assumes Bodies[0] is the dominant central mass")
				ig.warnedWH = true
				break
			}
		}
	}
}

// longestDrift is passed to Resolver.ComputeDcrit so each depth's
// dcrit is sized to the actual longest drift sub-step its own
// schedule produces, rather than the reference's hardcoded 0.5 (see
// DESIGN.md's note on this Open Question).
func (ig *Integrator) longestDrift(depth int) float64 {
	if depth == 0 {
		return ig.schedOuter.LongestDrift()
	}
	return ig.schedInner.LongestDrift()
}

// Part2 mirrors reb_integrator_mercurana_part2: it resets shell 0 to
// the full body set, runs the outer schedule once over dt, and leaves
// the simulation desynchronized unless SafeMode forces an immediate
// Synchronize.
func (ig *Integrator) Part2(sim *Sim, dt float64) {
	n := len(sim.Bodies)
	ig.resolver.ShellN[0] = n
	ig.resolver.ShellNActive[0] = sim.nActive()

	runner := shellRunner{ig, sim, 0}
	if ig.synchronized {
		ig.schedOuter.Preprocess(runner, dt)
	}
	ig.schedOuter.Step(runner, dt)

	ig.synchronized = false
	if ig.SafeMode {
		ig.Synchronize(sim, dt)
	}

	sim.Time += dt
	sim.DtLast = dt
}

// Synchronize runs the outer schedule's postprocessor, bringing
// Sim.Bodies to a physically meaningful state in between Part2 calls.
// It is idempotent: a second call before the next Part2 is a no-op.
func (ig *Integrator) Synchronize(sim *Sim, dt float64) {
	if ig.synchronized {
		return
	}
	runner := shellRunner{ig, sim, 0}
	ig.schedOuter.Postprocess(runner, dt)
	ig.synchronized = true
}

// Reset restores the integrator to DefaultConfig and drops every
// allocated buffer, matching reb_integrator_mercurana_reset.
func (ig *Integrator) Reset() {
	ig.resolver.Reset()
	ig.particles = nil
	ig.jerkBuf = nil
	ig.states = nil
	ig.Config = DefaultConfig()
	ig.resolver.SMax = ig.SMax
	ig.sw = switching.Default
	ig.schedOuter = eos.New(ig.PhiOuter)
	ig.schedInner = eos.New(ig.PhiInner)
	ig.maxShellUsed = 1
	ig.synchronized = true
	ig.recalcPending = false
	ig.warnedWH = false
}

// shellRunner binds a depth to the Integrator's drift/interaction
// steps so that eos.Schedule.Step's Runner callback stays free of any
// knowledge of shell depth or Sim/Body types.
type shellRunner struct {
	ig    *Integrator
	sim   *Sim
	depth int
}

func (r shellRunner) Drift(a float64) { r.ig.driftStep(r.sim, a, r.depth) }
func (r shellRunner) Kick(y, v float64) { r.ig.interactionStep(r.sim, y, v, r.depth) }

// driftStep predicts which bodies at this depth must be promoted to
// the next shell, advances every body still resolved at this depth by
// a*velocity, then recurses N times into the promoted sub-shell at a/N.
func (ig *Integrator) driftStep(sim *Sim, a float64, depth int) {
	for i := range sim.Bodies {
		ig.states[i].Pos = sim.Bodies[i].Pos
		ig.states[i].Vel = sim.Bodies[i].Vel
	}
	ig.resolver.Resolve(depth, a, ig.states, ig.WHSplitting && depth == 0)

	m := ig.resolver.Map[depth]
	n := ig.resolver.ShellN[depth]
	for i := 0; i < n; i++ {
		mi := m[i]
		if ig.resolver.InShell[mi] != 0 {
			sim.Bodies[mi].Pos = sim.Bodies[mi].Pos.Add(sim.Bodies[mi].Vel.Scale(a))
		}
	}

	if depth+1 >= ig.SMax {
		return
	}
	if ig.resolver.ShellN[depth+1] == 0 {
		return
	}
	if depth+2 > ig.maxShellUsed {
		ig.maxShellUsed = depth + 2
	}
	as := a / float64(ig.N)
	runner := shellRunner{ig, sim, depth + 1}
	ig.schedInner.Preprocess(runner, as)
	for i := 0; i < ig.N; i++ {
		ig.schedInner.Step(runner, as)
	}
	ig.schedInner.Postprocess(runner, as)
}

// interactionStep implements kick: evaluate gravity (and,
// when v != 0, jerk) among the bodies currently resolved at depth, then
// advance their velocities by y*acc (+ v*jerk).
func (ig *Integrator) interactionStep(sim *Sim, y, v float64, depth int) {
	m := ig.resolver.Map[depth]
	n := ig.resolver.ShellN[depth]
	nActive := ig.resolver.ShellNActive[depth]

	var dcritOuter []float64
	if depth > 0 {
		dcritOuter = ig.resolver.Dcrit[depth-1]
	}
	var dcritInner []float64
	if depth+1 < ig.SMax {
		dcritInner = ig.resolver.Dcrit[depth+1]
	}

	for i := 0; i < n; i++ {
		mi := m[i]
		ig.particles[mi].Pos = sim.Bodies[mi].Pos
		ig.particles[mi].Vel = sim.Bodies[mi].Vel
		ig.particles[mi].Mass = sim.Bodies[mi].Mass
	}

	sh := gravity.Shell{
		Map:                  m[:n],
		NActive:              nActive,
		DcritOuter:           dcritOuter,
		DcritCurr:            ig.resolver.Dcrit[depth],
		DcritInner:           dcritInner,
		WHExcludeStarAtOuter: ig.WHSplitting && depth == 0,
		WHStarExemptRow:      ig.WHSplitting && depth == 1,
	}
	opts := gravity.Options{G: sim.G, Sw: ig.sw, TestParticleType: sim.TestParticleType, Interrupt: sim.Interrupt}
	var jerk []Vec3
	if v != 0 {
		jerk = ig.jerkBuf[:n]
		opts.Jerk = jerk
	}

	gravity.Evaluate(ig.particles, sh, opts)
	gravity.ApplyKick(ig.particles, m[:n], y, v, jerk)

	for i := 0; i < n; i++ {
		mi := m[i]
		sim.Bodies[mi].Vel = ig.particles[mi].Vel
		sim.Bodies[mi].Acc = ig.particles[mi].Acc
	}
}
