// Package gravity implements the interaction evaluator: the force
// (and, for force-gradient schedules, jerk) calculation shared by
// every shell of the integrator, weighted by the switching function so
// that each shell only ever contributes the band of pair separations
// it owns.
package gravity

import (
	"math"
	"sync/atomic"

	"github.com/phil-mansfield/mercurana/switching"
	"github.com/phil-mansfield/mercurana/vec"
)

// Particle is the minimal per-body state the evaluator reads and
// writes. Pos/Mass are read-only here; Acc (and, when jerk is
// requested, the caller's jerk buffer) are overwritten.
type Particle struct {
	Pos, Vel, Acc vec.Vec3
	Mass          float64
}

// Shell bundles everything Evaluate needs to know about one
// recursion level's membership and the dcrit tables bracketing it.
// DcritOuter and DcritInner are nil where the corresponding L term is
// undefined (shell 0 has no outer band; the innermost shell has no
// inner band and instead contributes Lsum += 1).
type Shell struct {
	Map        []int
	NActive    int
	DcritOuter []float64 // nil at shell 0
	DcritCurr  []float64
	DcritInner []float64 // nil at the innermost shell

	// WHExcludeStarAtOuter is true iff this is shell 0 under WH
	// splitting: the star (map[0]) is excluded from shell 0's force
	// loop entirely, since its interaction with every other body is
	// instead handled, at full resolution, in shell 1.
	WHExcludeStarAtOuter bool

	// WHStarExemptRow is true iff this is shell 1 under WH splitting:
	// the star's Lsum outer-subtraction is suppressed for its pairs
	// so they contribute at full strength rather than being blended
	// away as if they belonged to shell 0 as well.
	WHStarExemptRow bool
}

// Options controls force-evaluation behavior that doesn't vary with
// shell depth.
type Options struct {
	G                  float64
	Sw                 switching.Func
	TestParticleType   bool // symmetric force treatment for passive bodies
	Jerk               []vec.Vec3 // non-nil to also accumulate jerk; len == len(Map)
	Interrupt          *int32     // cooperative cancellation, polled between body loops
}

// Evaluate computes and accumulates gravitational acceleration (and
// optionally jerk) among the bodies of one shell.
// Particles' Acc fields are zeroed and filled in; Acc is not carried
// over from a previous call. If opts.Interrupt is set and becomes
// non-zero mid-evaluation, Evaluate returns early, leaving whatever
// partial accumulation has already happened — the caller is
// responsible for reconciling before resuming.
func Evaluate(particles []Particle, sh Shell, opts Options) {
	m := sh.Map
	n := len(m)
	nActive := sh.NActive

	for i := 0; i < n; i++ {
		particles[m[i]].Acc = vec.Vec3{}
	}

	starti := 0
	if sh.WHExcludeStarAtOuter {
		// The star's interactions are deferred entirely to shell 1
		// under WH splitting; the star is always map[0].
		starti = 1
	}

	interrupted := func() bool {
		return opts.Interrupt != nil && atomic.LoadInt32(opts.Interrupt) != 0
	}

	for i := starti; i < nActive; i++ {
		if interrupted() {
			return
		}
		mi := m[i]
		for j := i + 1; j < nActive; j++ {
			mj := m[j]
			dx := particles[mi].Pos.Sub(particles[mj].Pos)
			dr := math.Sqrt(dx.Norm2())
			l := lsum(sh, mi, mj, dr, opts.Sw, sh.WHStarExemptRow && i == 0)

			prefact := opts.G * l / (dr * dr * dr)
			prefactj := -prefact * particles[mj].Mass
			prefacti := prefact * particles[mi].Mass
			particles[mi].Acc = particles[mi].Acc.Add(dx.Scale(prefactj))
			particles[mj].Acc = particles[mj].Acc.Add(dx.Scale(prefacti))
		}
	}

	for i := nActive; i < n; i++ {
		if interrupted() {
			return
		}
		mi := m[i]
		for j := starti; j < nActive; j++ {
			mj := m[j]
			dx := particles[mi].Pos.Sub(particles[mj].Pos)
			dr := math.Sqrt(dx.Norm2())
			l := lsum(sh, mi, mj, dr, opts.Sw, sh.WHStarExemptRow && j == 0)

			prefact := opts.G * l / (dr * dr * dr)
			prefactj := -prefact * particles[mj].Mass
			particles[mi].Acc = particles[mi].Acc.Add(dx.Scale(prefactj))
			if opts.TestParticleType {
				prefacti := prefact * particles[mi].Mass
				particles[mj].Acc = particles[mj].Acc.Add(dx.Scale(prefacti))
			}
		}
	}

	if opts.Jerk != nil {
		evaluateJerk(particles, sh, opts, starti, interrupted)
	}
}

// lsum computes the Lsum weight for a pair (body indices mi,mj).
// whExempt suppresses the outer subtraction for the
// (s=1, i=0) star-planet pair under WH splitting, which is handled
// entirely at this layer.
func lsum(sh Shell, mi, mj int, dr float64, sw switching.Func, whExempt bool) float64 {
	var l float64
	if sh.DcritOuter != nil && !whExempt {
		dcCurr := sh.DcritCurr[mi] + sh.DcritCurr[mj]
		dcOuter := sh.DcritOuter[mi] + sh.DcritOuter[mj]
		l -= sw.L(dr, dcCurr, dcOuter)
	}
	if sh.DcritInner != nil {
		dcCurr := sh.DcritCurr[mi] + sh.DcritCurr[mj]
		dcInner := sh.DcritInner[mi] + sh.DcritInner[mj]
		l += sw.L(dr, dcInner, dcCurr)
	} else {
		l += 1
	}
	return l
}

func evaluateJerk(particles []Particle, sh Shell, opts Options, starti int, interrupted func() bool) {
	m := sh.Map
	n := len(m)
	nActive := sh.NActive
	jerk := opts.Jerk
	for i := range jerk[:n] {
		jerk[i] = vec.Vec3{}
	}

	for i := starti; i < nActive; i++ {
		if interrupted() {
			return
		}
		mi := m[i]
		for j := i + 1; j < nActive; j++ {
			mj := m[j]
			dx := particles[mj].Pos.Sub(particles[mi].Pos)
			da := particles[mj].Acc.Sub(particles[mi].Acc)
			dr := math.Sqrt(dx.Norm2())

			l, dl := lsumAndDL(sh, mi, mj, dr, opts.Sw, sh.WHStarExemptRow && i == 0)

			alpha := da.Dot(dx)
			prefact2 := 2 * opts.G / (dr * dr * dr)
			prefact2i := l * prefact2 * particles[mi].Mass
			prefact2j := l * prefact2 * particles[mj].Mass
			jerk[j] = jerk[j].Sub(da.Scale(prefact2i))
			jerk[i] = jerk[i].Add(da.Scale(prefact2j))

			prefact1 := alpha * prefact2 / dr * (3*l/dr - dl)
			prefact1i := prefact1 * particles[mi].Mass
			prefact1j := prefact1 * particles[mj].Mass
			jerk[j] = jerk[j].Add(dx.Scale(prefact1i))
			jerk[i] = jerk[i].Sub(dx.Scale(prefact1j))
		}
	}

	for i := nActive; i < n; i++ {
		if interrupted() {
			return
		}
		mi := m[i]
		for j := starti; j < nActive; j++ {
			mj := m[j]
			dx := particles[mj].Pos.Sub(particles[mi].Pos)
			da := particles[mj].Acc.Sub(particles[mi].Acc)
			dr := math.Sqrt(dx.Norm2())

			l, dl := lsumAndDL(sh, mi, mj, dr, opts.Sw, sh.WHStarExemptRow && j == 0)

			alpha := da.Dot(dx)
			prefact2 := 2 * opts.G / (dr * dr * dr)
			prefact2j := l * prefact2 * particles[mj].Mass
			prefact1 := alpha * prefact2 / dr * (3*l/dr - dl)
			prefact1j := prefact1 * particles[mj].Mass

			jerk[i] = jerk[i].Add(da.Scale(prefact2j))
			jerk[i] = jerk[i].Sub(dx.Scale(prefact1j))

			if opts.TestParticleType {
				prefact1i := prefact1 * particles[mi].Mass
				prefact2i := l * prefact2 * particles[mi].Mass
				jerk[j] = jerk[j].Add(dx.Scale(prefact1i))
				jerk[j] = jerk[j].Sub(da.Scale(prefact2i))
			}
		}
	}
}

func lsumAndDL(sh Shell, mi, mj int, dr float64, sw switching.Func, whExempt bool) (l, dl float64) {
	if sh.DcritOuter != nil && !whExempt {
		dcCurr := sh.DcritCurr[mi] + sh.DcritCurr[mj]
		dcOuter := sh.DcritOuter[mi] + sh.DcritOuter[mj]
		l -= sw.L(dr, dcCurr, dcOuter)
		dl -= sw.DL(dr, dcCurr, dcOuter)
	}
	if sh.DcritInner != nil {
		dcCurr := sh.DcritCurr[mi] + sh.DcritCurr[mj]
		dcInner := sh.DcritInner[mi] + sh.DcritInner[mj]
		l += sw.L(dr, dcInner, dcCurr)
		dl += sw.DL(dr, dcInner, dcCurr)
	} else {
		l += 1
	}
	return l, dl
}

// ApplyKick applies the velocity update v += y*a + v_coef*j for every
// body in the shell. When no jerk is requested (jerk == nil or
// vCoef == 0), the jerk term is simply skipped.
func ApplyKick(particles []Particle, m []int, y, vCoef float64, jerk []vec.Vec3) {
	for i, mi := range m {
		acc := particles[mi].Acc.Scale(y)
		particles[mi].Vel = particles[mi].Vel.Add(acc)
		if jerk != nil && vCoef != 0 {
			particles[mi].Vel = particles[mi].Vel.Add(jerk[i].Scale(vCoef))
		}
	}
}
