package shell

import (
	"math"

	"github.com/phil-mansfield/mercurana/vec"
)

// State is the phase-space state of one body at the start of a drift:
// its position and velocity. It is the minimal slice of Body that the
// closest-approach predictor needs.
type State struct {
	Pos, Vel vec.Vec3
}

// PredictRmin2 returns the squared minimum separation two bodies will
// attain over the signed interval dt, assuming straight-line motion at
// their current velocities. rmin2ab is the minimum of
// the squared separation at the endpoints; rmin2abc additionally folds
// in the squared separation at the time of closest approach, if that
// time falls within [0, dt].
//
// Sign handling (via dts = sign(dt)) keeps the prediction correct for
// the negative sub-steps that arise in postprocessors, matching the
// reference reb_mercurana_predict_rmin2.
func PredictRmin2(p1, p2 State, dt float64) (rmin2ab, rmin2abc float64) {
	dts := 1.0
	if dt < 0 {
		dts = -1.0
	}
	adt := math.Abs(dt)

	dr := p1.Pos.Sub(p2.Pos)
	r1 := dr.Norm2()

	dv := p1.Vel.Sub(p2.Vel).Scale(dts)
	dr2 := dr.Add(dv.Scale(adt))
	r2 := dr2.Norm2()

	tClosest := dr.Dot(dv) / dv.Norm2()
	dr3 := dr.Add(dv.Scale(tClosest))
	r3 := dr3.Norm2()

	rmin2ab = math.Min(r1, r2)
	frac := tClosest / adt
	if frac >= 0 && frac <= 1 {
		rmin2abc = math.Min(rmin2ab, r3)
	} else {
		rmin2abc = rmin2ab
	}
	return rmin2ab, rmin2abc
}
