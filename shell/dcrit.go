package shell

import "math"

// Dcrit computes the critical radius below which a pair involving a
// body of the given mass counts as "in encounter" at a shell whose
// longest drift sub-step covers dtShell of simulation time:
//
//	T = dtShell / (dtFrac * 2π)
//	dcrit = cbrt(T² * G * mass)
//
// A massless body (mass == 0, e.g. a test particle) has dcrit == 0: it
// can never pull another body into a finer shell, though it can still
// be pulled in by a massive partner.
func Dcrit(g, mass, dtShell, dtFrac float64) float64 {
	t := dtShell / (dtFrac * 2 * math.Pi)
	return cbrt(t * t * g * mass)
}
