package shell

import "testing"

func TestDcritZeroMass(t *testing.T) {
	if d := Dcrit(1, 0, 0.1, 0.1); d != 0 {
		t.Fatalf("Dcrit with zero mass = %v, want 0", d)
	}
}

func TestDcritScalesWithMass(t *testing.T) {
	d1 := Dcrit(1, 1e-3, 0.1, 0.1)
	d2 := Dcrit(1, 1, 0.1, 0.1)
	if d2 <= d1 {
		t.Fatalf("expected dcrit to grow with mass: d1=%v d2=%v", d1, d2)
	}
}
