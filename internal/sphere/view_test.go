package sphere

import (
	"errors"
	"math"
	"testing"

	"poincare-mapper/internal/mathutil"
)

const eps = 1e-12

func near(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s: got %g, want %g", what, got, want)
	}
}

func TestProjectIdentityView(t *testing.T) {
	v := NewView(0, 0, false)

	// Looking straight down the S1 axis: S2 maps to screen x, S3 to
	// screen y, S1 collapses onto the origin.
	cases := []struct {
		s        mathutil.Vec3
		px, py   float64
	}{
		{mathutil.Vec3{1, 0, 0}, 0, 0},
		{mathutil.Vec3{0, 1, 0}, 1, 0},
		{mathutil.Vec3{0, 0, 1}, 0, 1},
		{mathutil.Vec3{0, -1, 0}, -1, 0},
	}
	for _, c := range cases {
		p, err := v.Project(c.s)
		if err != nil {
			t.Fatalf("Project(%v): %v", c.s, err)
		}
		near(t, p.X, c.px, "x")
		near(t, p.Y, c.py, "y")
	}
}

func TestProjectGeneralAngles(t *testing.T) {
	psi := mathutil.Deg2Rad(-40)
	phi := mathutil.Deg2Rad(15)
	v := NewView(psi, phi, false)

	s := mathutil.Vec3{0.3, -0.7, 0.2}
	p, err := v.Project(s)
	if err != nil {
		t.Fatal(err)
	}

	sp, cp := math.Sin(psi), math.Cos(psi)
	sf, cf := math.Sin(phi), math.Cos(phi)
	wantX := s[0]*sp + s[1]*cp
	wantY := -s[0]*cp*sf + s[1]*sp*sf + s[2]*cf
	wantD := s[0]*cp*cf - s[1]*sp*cf + s[2]*sf

	near(t, p.X, wantX, "x")
	near(t, p.Y, wantY, "y")
	near(t, v.Depth(s), wantD, "depth")
}

func TestVisibleTerminatorTie(t *testing.T) {
	v := NewView(0, 0, false)

	if !v.Visible(mathutil.Vec3{1, 0, 0}) {
		t.Error("front pole should be visible")
	}
	if v.Visible(mathutil.Vec3{-1, 0, 0}) {
		t.Error("back pole should be hidden")
	}
	// Exactly on the terminator: ties count as visible.
	if !v.Visible(mathutil.Vec3{0, 1, 0}) {
		t.Error("terminator point should be visible")
	}
	if !v.Visible(mathutil.Vec3{0, 0, -1}) {
		t.Error("terminator point should be visible")
	}
}

func TestProjectNormalize(t *testing.T) {
	v := NewView(0, 0, true)

	p, err := v.Project(mathutil.Vec3{0, 2, 0})
	if err != nil {
		t.Fatal(err)
	}
	near(t, p.X, 1, "normalized x")
	near(t, p.Y, 0, "normalized y")

	_, err = v.Project(mathutil.Vec3{})
	var degenerate *DegenerateInputError
	if !errors.As(err, &degenerate) {
		t.Fatalf("got %v, want DegenerateInputError", err)
	}
}

func TestRawDisablesNormalize(t *testing.T) {
	v := NewView(0.3, 0.2, true)
	if !v.Normalize {
		t.Fatal("precondition: normalize on")
	}
	r := v.Raw()
	if r.Normalize {
		t.Error("Raw should disable normalization")
	}
	if v2 := v; !v2.Normalize {
		t.Error("Raw must not mutate the receiver")
	}

	p, err := r.Project(mathutil.Vec3{0, 0.5, 0})
	if err != nil {
		t.Fatal(err)
	}
	near(t, p.X, 0.5*math.Cos(0.3), "raw keeps sub-unit magnitudes")
}

func TestRotatedComposesAngles(t *testing.T) {
	v := NewView(0.5, -0.2, true)
	r := v.Rotated(0.1, 0.3)

	want := NewView(0.6, 0.1, true)
	s := mathutil.Vec3{0.2, 0.3, 0.9}
	pr, err := r.Project(s)
	if err != nil {
		t.Fatal(err)
	}
	pw, err := want.Project(s)
	if err != nil {
		t.Fatal(err)
	}
	near(t, pr.X, pw.X, "x")
	near(t, pr.Y, pw.Y, "y")
	if !r.Normalize {
		t.Error("Rotated should keep the normalize setting")
	}
}
