package shell

import (
	"testing"

	"github.com/phil-mansfield/mercurana/vec"
)

func uniformLongestDrift(int) float64 { return 0.5 }

func TestResolverGrowAndIdentity(t *testing.T) {
	rs := &Resolver{SMax: 3}
	rs.Grow(4)
	rs.ShellN[0] = 4
	rs.ShellNActive[0] = 4
	rs.ResetIdentity(4)
	for i := 0; i < 4; i++ {
		if rs.Map[0][i] != i {
			t.Fatalf("map[0][%d] = %d, want %d", i, rs.Map[0][i], i)
		}
	}
}

func TestResolverNestingInvariant(t *testing.T) {
	// Star at the origin, two close planets that will pass near each
	// other, plus one far-away planet that should never be promoted.
	rs := &Resolver{SMax: 3}
	rs.Grow(4)
	masses := []float64{1, 1e-4, 1e-4, 1e-4}
	rs.ComputeDcrit(1, masses, 2 * 3.14159265, 0.1, uniformLongestDrift, 10)

	states := []State{
		{Pos: vec.Vec3{0, 0, 0}, Vel: vec.Vec3{0, 0, 0}},
		{Pos: vec.Vec3{1, 0, 0}, Vel: vec.Vec3{0, 1, 0}},
		{Pos: vec.Vec3{1 + 1e-6, 0, 0}, Vel: vec.Vec3{0, -1, 0}},
		{Pos: vec.Vec3{50, 0, 0}, Vel: vec.Vec3{0, 0.01, 0}},
	}

	rs.ShellN[0] = 4
	rs.ShellNActive[0] = 4
	rs.ResetIdentity(4)

	rs.Resolve(0, 0.01, states, false)

	// map[1] must be a subset of map[0] (trivially true here since
	// map[0] is everything), and active bodies must precede passive
	// ones. All four bodies are active in this scenario, so we simply
	// check that any promoted indices are valid and that promoted
	// bodies are no longer marked inshell at depth 0.
	seen := map[int]bool{}
	for i := 0; i < rs.ShellN[1]; i++ {
		mi := rs.Map[1][i]
		if seen[mi] {
			t.Fatalf("body %d appears twice in map[1]", mi)
		}
		seen[mi] = true
		if rs.InShell[mi] != 0 {
			t.Fatalf("promoted body %d still marked inshell at depth 0", mi)
		}
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("expected close planets 1 and 2 to be promoted into shell 1, map[1]=%v (n=%d)",
			rs.Map[1][:rs.ShellN[1]], rs.ShellN[1])
	}
	if seen[3] {
		t.Fatalf("far-away planet 3 should not have been promoted")
	}
}

func TestResolverWHSplittingBypassesScan(t *testing.T) {
	rs := &Resolver{SMax: 3}
	rs.Grow(3)
	rs.ShellN[0] = 3
	rs.ShellNActive[0] = 3
	rs.ResetIdentity(3)

	states := []State{
		{Pos: vec.Vec3{0, 0, 0}},
		{Pos: vec.Vec3{1000, 0, 0}},
		{Pos: vec.Vec3{-1000, 0, 0}},
	}

	rs.Resolve(0, 0.01, states, true)

	if rs.ShellN[1] != 3 {
		t.Fatalf("WH splitting should copy all %d bodies into shell 1, got %d", 3, rs.ShellN[1])
	}
	for i := 0; i < 3; i++ {
		if rs.InShell[i] != 0 {
			t.Fatalf("WH splitting should clear inshell for every body at depth 0, body %d still set", i)
		}
	}
}

func TestResolverStopsAtSMax(t *testing.T) {
	rs := &Resolver{SMax: 1}
	rs.Grow(2)
	rs.ShellN[0] = 2
	rs.ShellNActive[0] = 2
	rs.ResetIdentity(2)

	states := []State{
		{Pos: vec.Vec3{0, 0, 0}},
		{Pos: vec.Vec3{0, 0, 0}}, // on top of each other: would always encounter
	}

	// s+1 == SMax here, so Resolve must return having only set inshell,
	// without touching Map[1] (which doesn't exist).
	rs.Resolve(0, 0.01, states, false)
	for i := 0; i < 2; i++ {
		if rs.InShell[i] != 1 {
			t.Fatalf("body %d should remain inshell when SMax is exhausted", i)
		}
	}
}
