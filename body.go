// Package mercurana implements a hierarchical multi-shell symplectic
// N-body integrator: bodies are resolved into nested shells by
// predicted closest approach, and each shell advances under its own
// operator-splitting schedule with progressively finer sub-steps
// around close encounters.
package mercurana

import "github.com/phil-mansfield/mercurana/vec"

// Vec3 is a 3-vector of double-precision components, used throughout
// for position, velocity and acceleration.
type Vec3 = vec.Vec3

// Body is one point mass in a simulation. Index is implicit: a body's
// position in Sim.Bodies is also its shell-map slot at shell 0.
type Body struct {
	Mass     float64
	Pos, Vel Vec3

	// Acc is scratch space the integrator overwrites every
	// interaction-step call; callers should not rely on its value
	// between steps. Jerk is not written by the integrator, which keeps
	// force-gradient terms in its own buffer.
	Acc, Jerk Vec3

	// ID is an opaque identifier carried through for the caller's own
	// bookkeeping (e.g. matching bodies across snapshots); the
	// integrator never reads it.
	ID int64
}
