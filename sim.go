package mercurana

import "log"

// Sim holds the N-body state and the handful of collaborator contracts
// an integrator needs. It is the caller's to mutate between Part1/
// Part2 calls; Integrator reads and writes Bodies, advances Time and
// DtLast in Part2, and otherwise only reads Sim's fields.
type Sim struct {
	Bodies []Body
	// NActive is the number of bodies at the front of Bodies that
	// exert gravity; the rest are passive test particles. -1 means
	// every body is active, matching the reference's N_active==-1
	// convention.
	NActive int
	G       float64

	// TestParticleType mirrors r->testparticle_type: when true, each
	// passive-active pair acts symmetrically, so passive bodies also
	// pull on active bodies instead of only feeling their pull.
	// Passive bodies never interact with each other.
	TestParticleType bool

	// Interrupt, when non-nil, is polled cooperatively inside the
	// interaction step; setting it to a nonzero value mid-Part2 stops
	// the in-progress force evaluation early.
	Interrupt *int32

	// Logger receives configuration warnings. A nil Logger means
	// warnings are dropped silently, matching a caller who never
	// wanted the ambient noise.
	Logger *log.Logger

	// VariationalEquations and ExternalGravityRoutineActive are
	// collaborator-contract stubs: mercurana does not implement
	// either, but Part1 still warns if a caller sets them, exactly as
	// the reference does for its own unimplemented collaborators.
	VariationalEquations         bool
	ExternalGravityRoutineActive bool
	CollisionMode                CollisionMode

	Time, DtLast float64
}

func (s *Sim) nActive() int {
	if s.NActive < 0 {
		return len(s.Bodies)
	}
	return s.NActive
}

func (s *Sim) warn(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
