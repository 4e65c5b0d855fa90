// Package eos implements the operator-splitting schedules (equations
// of symplectic structure) that drive one shell's drift/kick
// sequence: plain leapfrog, the Yoshida-family higher-order
// compositions, and the force-gradient (jerk-using) variants built on
// top of them.
//
// A Schedule is a fixed table of drift and kick stages, each carrying
// a coefficient that scales the shell's sub-step dt. Runner is
// supplied by the caller (the root package's shell-recursion driver)
// and is invoked once per stage; Schedule itself holds no simulation
// state.
package eos

import "fmt"

// Runner receives the drift and kick calls a Schedule's Step method
// issues, in order. a, y and v are all already scaled by the shell's
// dt (and, for v, dt^3) by Step — Runner multiplies by nothing further.
type Runner interface {
	// Drift advances every body's position by velocity*a.
	Drift(a float64)
	// Kick advances every body's velocity using the shell's current
	// acceleration (scaled by y) and, when v != 0, its jerk (scaled
	// by v).
	Kick(y, v float64)
}

// Name identifies one of the nine supported operator-splitting
// families.
type Name int

const (
	LF Name = iota
	LF4
	LF6
	LF8
	LF4_2
	LF8_6_4
	PMLF4
	PMLF6
	PLF7_6_4
)

func (n Name) String() string {
	switch n {
	case LF:
		return "LF"
	case LF4:
		return "LF4"
	case LF6:
		return "LF6"
	case LF8:
		return "LF8"
	case LF4_2:
		return "LF4_2"
	case LF8_6_4:
		return "LF8_6_4"
	case PMLF4:
		return "PMLF4"
	case PMLF6:
		return "PMLF6"
	case PLF7_6_4:
		return "PLF7_6_4"
	default:
		return fmt.Sprintf("eos.Name(%d)", int(n))
	}
}

// ParseName maps a schedule's String() form back to its Name, for
// config-file and CLI-flag parsing.
func ParseName(s string) (Name, error) {
	for _, n := range []Name{LF, LF4, LF6, LF8, LF4_2, LF8_6_4, PMLF4, PMLF6, PLF7_6_4} {
		if n.String() == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("eos: unknown schedule name %q", s)
}

// stageKind distinguishes a drift stage from a kick stage in a
// schedule's precomputed table.
type stageKind int

const (
	driftStage stageKind = iota
	kickStage
)

type stage struct {
	kind stageKind
	a    float64 // drift coefficient
	y    float64 // kick coefficient
	v    float64 // force-gradient (jerk) coefficient; 0 for non-force-gradient stages
}

// Schedule is an immutable, precomputed drift/kick stage table for one
// named operator-splitting method. Build one with New and reuse it
// across every call to Step — Schedule carries no per-step state.
type Schedule struct {
	name       Name
	stages     []stage
	needsJerk  bool
	longestDt  float64 // fraction of the shell dt the longest single drift stage covers
	usesProc   bool
}

// UsesJerk reports whether this schedule's Step ever calls Kick with a
// nonzero v, meaning the caller must supply a jerk buffer to the
// interaction evaluator.
func (s *Schedule) UsesJerk() bool { return s.needsJerk }

// LongestDrift returns the largest single drift-stage coefficient in
// the schedule, as a fraction of the outer dt passed to Step. The
// shell resolver's ComputeDcrit uses it, together with the inner
// subdivision factor, to derive the next depth's dt for dcrit sizing.
func (s *Schedule) LongestDrift() float64 { return s.longestDt }

// Step runs the schedule's full stage sequence against dt, issuing
// Drift/Kick calls to r. A negative dt runs the same stage sequence in
// the same order with every scaled coefficient's sign flipped (v
// scales with dt^3, so it flips too); there is no separate backward
// table.
func (s *Schedule) Step(r Runner, dt float64) {
	for _, st := range s.stages {
		switch st.kind {
		case driftStage:
			r.Drift(st.a * dt)
		case kickStage:
			r.Kick(st.y*dt, st.v*dt*dt*dt)
		}
	}
}

// Preprocess and Postprocess bracket a run of Step calls for
// "processed" methods (PLF7_6_4 is the only one here), which trade a
// one-time coordinate transform at the start and its inverse at the
// end for a cheaper per-step stage count at a given order. For every
// other schedule these are no-ops.
func (s *Schedule) Preprocess(r Runner, dt float64) {
	if !s.usesProc {
		return
	}
	runProcessor(r, dt, false)
}

func (s *Schedule) Postprocess(r Runner, dt float64) {
	if !s.usesProc {
		return
	}
	runProcessor(r, dt, true)
}
