// Package shell implements the encounter-prediction machinery that
// partitions bodies into nested recursion levels: the per-body
// critical-distance calculator, the pairwise closest-approach
// predictor, and the shell membership resolver that walks a drift
// interval and decides which bodies must be promoted to a finer
// shell before it proceeds.
package shell

import "math"

// Resolver owns the per-depth shell state: for each depth s, the ordered body-index map, counts of active/passive
// bodies assigned to it, and the per-body critical radius. It also
// owns the scratch inshell flags used during a drift at the
// shallowest of the shells it spans.
//
// Resolver is indexed by body index, not by pointer, so growing N is
// always safe: buffers are simply reallocated and the caller is
// expected to repopulate Map[0] as the identity permutation.
type Resolver struct {
	SMax int

	Map           [][]int
	ShellN        []int
	ShellNActive  []int
	Dcrit         [][]float64
	InShell       []int

	allocatedN int
}

// Grow (re)allocates every buffer Resolver owns to the given body
// count N, if it is larger than what is currently allocated. It is a
// no-op when N has not grown, matching the reference's
// allocatedN < N guard in reb_integrator_mercurana_part1.
func (rs *Resolver) Grow(n int) (grew bool) {
	if rs.allocatedN >= n && rs.Map != nil {
		return false
	}
	if rs.SMax <= 0 {
		panic("shell: SMax must be positive")
	}
	rs.Map = make([][]int, rs.SMax)
	rs.Dcrit = make([][]float64, rs.SMax)
	for s := 0; s < rs.SMax; s++ {
		rs.Map[s] = make([]int, n)
		rs.Dcrit[s] = make([]float64, n)
	}
	rs.ShellN = make([]int, rs.SMax)
	rs.ShellNActive = make([]int, rs.SMax)
	rs.InShell = make([]int, n)
	rs.allocatedN = n
	return true
}

// Reset frees every buffer Resolver owns, restoring it to its
// zero-value state. Re-running Grow afterwards reallocates everything.
func (rs *Resolver) Reset() {
	rs.Map = nil
	rs.Dcrit = nil
	rs.ShellN = nil
	rs.ShellNActive = nil
	rs.InShell = nil
	rs.allocatedN = 0
}

// ResetIdentity sets Map[0] to the identity permutation over [0, n),
// which must happen at the start of every macro-step.
func (rs *Resolver) ResetIdentity(n int) {
	for i := 0; i < n; i++ {
		rs.Map[0][i] = i
	}
}

// ComputeDcrit recomputes the per-depth critical radii for all N
// bodies. dtOuter is the user's outer dt; longestDrift(s) returns the
// longest drift sub-step coefficient used at depth s; n is the inner
// subdivision factor.
func (rs *Resolver) ComputeDcrit(g float64, masses []float64, dtOuter, dtFrac float64, longestDrift func(depth int) float64, n int) {
	dtShell := dtOuter
	for s := 0; s < rs.SMax; s++ {
		for i, m := range masses {
			rs.Dcrit[s][i] = Dcrit(g, m, dtShell, dtFrac)
		}
		dtShell *= longestDrift(s)
		dtShell /= float64(n)
		rs.ShellN[s] = 0
		rs.ShellNActive[s] = 0
	}
}

// Resolve implements the shell membership resolver.
// Given the current depth s and the signed drift length dt, it marks
// every body currently in Map[s] as inshell, then (unless s+1 is
// beyond SMax) builds Map[s+1]/ShellN[s+1]/ShellNActive[s+1] from the
// pairs whose predicted closest approach falls under their summed
// dcrit at depth s+1, clearing InShell for any body promoted inward.
//
// whSplitting, when true and s==0, bypasses the O(N²) scan entirely:
// every body in Map[0] is copied unconditionally into Map[1] so that
// the dominant central-body Keplerian drift is handled entirely by the
// inner schedule.
func (rs *Resolver) Resolve(s int, dt float64, states []State, whSplitting bool) {
	n := rs.ShellN[s]
	nActive := rs.ShellNActive[s]
	m := rs.Map[s]

	if s == 0 && whSplitting {
		for i := 0; i < n; i++ {
			mi := m[i]
			rs.InShell[mi] = 0
			rs.Map[s+1][i] = mi
		}
		rs.ShellN[s+1] = n
		rs.ShellNActive[s+1] = nActive
		return
	}

	for i := 0; i < n; i++ {
		rs.InShell[m[i]] = 1
	}

	if s+1 >= rs.SMax {
		return
	}

	rs.ShellN[s+1] = 0
	rs.ShellNActive[s+1] = 0
	dcritNext := rs.Dcrit[s+1]

	// Active x all: each active body is promoted if it is in
	// encounter with any other body in the shell (active or passive).
	for i := 0; i < nActive; i++ {
		mi := m[i]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			mj := m[j]
			if inEncounter(states[mi], states[mj], dt, dcritNext[mi]+dcritNext[mj]) {
				rs.InShell[mi] = 0
				rs.Map[s+1][rs.ShellN[s+1]] = mi
				rs.ShellN[s+1]++
				break
			}
		}
	}
	rs.ShellNActive[s+1] = rs.ShellN[s+1]

	// Passive x active: a passive body is promoted if it is in
	// encounter with any active body (passive-passive pairs exert no
	// force on each other, so they cannot trigger a promotion here).
	for i := nActive; i < n; i++ {
		mi := m[i]
		for j := 0; j < nActive; j++ {
			mj := m[j]
			if inEncounter(states[mi], states[mj], dt, dcritNext[mi]+dcritNext[mj]) {
				rs.InShell[mi] = 0
				rs.Map[s+1][rs.ShellN[s+1]] = mi
				rs.ShellN[s+1]++
				break
			}
		}
	}
}

func inEncounter(a, b State, dt, dcritSum float64) bool {
	_, rmin2abc := PredictRmin2(a, b, dt)
	return rmin2abc < dcritSum*dcritSum
}

// MaxDcrit returns the largest dcrit value recorded at depth s, used
// only for diagnostics/tests.
func (rs *Resolver) MaxDcrit(s int) float64 {
	max := 0.0
	for _, d := range rs.Dcrit[s] {
		max = math.Max(max, d)
	}
	return max
}
