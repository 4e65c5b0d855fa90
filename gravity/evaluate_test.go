package gravity

import (
	"testing"

	"github.com/phil-mansfield/mercurana/switching"
	"github.com/phil-mansfield/mercurana/vec"
	"github.com/stretchr/testify/assert"
)

// fullShell builds a single-shell configuration where every body
// interacts with every other body at full strength: DcritInner is nil
// (innermost shell, Lsum=1) and DcritOuter is nil (shell 0, no outer
// band), matching a system that has only one shell.
func fullShell(n int) Shell {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return Shell{Map: m, NActive: n}
}

func TestEvaluateTwoBodyNewtonThirdLaw(t *testing.T) {
	particles := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 2},
		{Pos: vec.Vec3{1, 0, 0}, Mass: 3},
	}
	Evaluate(particles, fullShell(2), Options{G: 1, Sw: switching.Default})

	assert.InDelta(t, 3.0, particles[0].Acc[0], 1e-12)
	assert.InDelta(t, -2.0, particles[1].Acc[0], 1e-12)
	assert.InDelta(t, 0.0, particles[0].Acc[1], 1e-12)
}

func TestEvaluateAccelerationInverseSquare(t *testing.T) {
	near := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 1},
		{Pos: vec.Vec3{1, 0, 0}, Mass: 1},
	}
	Evaluate(near, fullShell(2), Options{G: 1, Sw: switching.Default})

	far := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 1},
		{Pos: vec.Vec3{2, 0, 0}, Mass: 1},
	}
	Evaluate(far, fullShell(2), Options{G: 1, Sw: switching.Default})

	assert.InDelta(t, near[0].Acc[0]/4, far[0].Acc[0], 1e-12)
}

func TestEvaluateThreeBodySumsPairwise(t *testing.T) {
	particles := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 1},
		{Pos: vec.Vec3{1, 0, 0}, Mass: 1},
		{Pos: vec.Vec3{-1, 0, 0}, Mass: 1},
	}
	Evaluate(particles, fullShell(3), Options{G: 1, Sw: switching.Default})

	// Symmetric placement: pulls on body 0 from body 1 and body 2
	// cancel exactly along x.
	assert.InDelta(t, 0.0, particles[0].Acc[0], 1e-12)
}

func TestEvaluateResetsAccEachCall(t *testing.T) {
	particles := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 1, Acc: vec.Vec3{99, 99, 99}},
		{Pos: vec.Vec3{1, 0, 0}, Mass: 1},
	}
	Evaluate(particles, fullShell(2), Options{G: 1, Sw: switching.Default})
	assert.NotEqual(t, 99.0, particles[0].Acc[0])
}

func TestEvaluatePassiveBodiesDoNotPerturbActive(t *testing.T) {
	particles := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 1},   // active
		{Pos: vec.Vec3{1, 0, 0}, Mass: 0.1}, // passive test particle
	}
	sh := Shell{Map: []int{0, 1}, NActive: 1}
	Evaluate(particles, sh, Options{G: 1, Sw: switching.Default, TestParticleType: false})

	assert.Equal(t, 0.0, particles[0].Acc[0])
	assert.NotEqual(t, 0.0, particles[1].Acc[0])
}

func TestEvaluateInterruptStopsEarly(t *testing.T) {
	particles := []Particle{
		{Pos: vec.Vec3{0, 0, 0}, Mass: 1},
		{Pos: vec.Vec3{1, 0, 0}, Mass: 1},
	}
	flag := int32(1)
	Evaluate(particles, fullShell(2), Options{G: 1, Sw: switching.Default, Interrupt: &flag})

	assert.Equal(t, 0.0, particles[0].Acc[0])
}

func TestApplyKickAddsScaledAcceleration(t *testing.T) {
	particles := []Particle{
		{Vel: vec.Vec3{0, 0, 0}, Acc: vec.Vec3{2, 0, 0}},
	}
	ApplyKick(particles, []int{0}, 0.5, 0, nil)
	assert.InDelta(t, 1.0, particles[0].Vel[0], 1e-12)
}
