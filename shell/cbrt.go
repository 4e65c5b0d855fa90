package shell

// cbrt computes a^(1/3) via Newton's method rather than math.Pow, so
// the critical-distance calculation is bit-reproducible across
// platforms that implement math.Pow differently. Ported from the
// reference integrator's sqrt3 helper.
func cbrt(a float64) float64 {
	if a == 0 {
		return 0
	}
	x := 1.0
	for k := 0; k < 200; k++ {
		x2 := x * x
		x += (a/x2 - x) / 3
	}
	return x
}
