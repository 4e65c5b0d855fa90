// Package switching implements the smooth bump functions used to hand
// a pair's gravitational interaction from one integration shell to the
// next. A Func is infinitely differentiable, monotone non-decreasing,
// and pinned to exactly 0 and 1 outside its transition band so that
// callers never have to special-case the boundary.
package switching

import "math"

// Func evaluates a switching function L(d; ri, ro) and its derivative
// with respect to d. Implementations must return exactly 0 for d <= ri
// and exactly 1 for d >= ro.
type Func interface {
	L(d, ri, ro float64) float64
	DL(d, ri, ro float64) float64
}

// Infinity is the default C^∞ switching function described by
//
//	y = (d-ri)/(ro-ri)
//	L(d) = f(y) / (f(y) + f(1-y)),  f(y) = exp(-1/y) for y>0, else 0.
//
// L is monotone non-decreasing and its derivative vanishes at both y=0
// and y=1, so composing it across nested shells never introduces a
// kink in the force.
type Infinity struct{}

// f is the one-sided bump exp(-1/y), zero for y<=0.
func f(y float64) float64 {
	if y <= 0 {
		return 0
	}
	return math.Exp(-1 / y)
}

// dfdy is the derivative of f.
func dfdy(y float64) float64 {
	if y <= 0 {
		return 0
	}
	return math.Exp(-1/y) / (y * y)
}

// L implements Func.
func (Infinity) L(d, ri, ro float64) float64 {
	y := (d - ri) / (ro - ri)
	switch {
	case y <= 0:
		return 0
	case y >= 1:
		return 1
	default:
		return f(y) / (f(y) + f(1-y))
	}
}

// DL implements Func. Outside (0,1) the switching function is constant,
// so the derivative is zero there too.
func (Infinity) DL(d, ri, ro float64) float64 {
	y := (d - ri) / (ro - ri)
	if y <= 0 || y >= 1 {
		return 0
	}
	dydr := 1 / (ro - ri)
	fy, f1y := f(y), f(1-y)
	denom := fy + f1y
	return dydr * (dfdy(y)/denom - fy/(denom*denom)*(dfdy(y)-dfdy(1-y)))
}

var _ Func = Infinity{}

// Default is the switching function every Integrator installs, the
// same C^∞ bump the reference integrator falls back to whenever its
// switching-function pointer is nil.
var Default Func = Infinity{}
