package sphere

import (
	"math"
	"testing"

	"poincare-mapper/internal/mathutil"
)

func TestAxisPoints(t *testing.T) {
	a := Axis{Dir: mathutil.AxisS2, NegLen: 0.3, PosLen: 1.5}

	if d := a.Tail().Sub(mathutil.Vec3{0, -0.3, 0}).Len(); d > eps {
		t.Errorf("tail off by %g", d)
	}
	if d := a.Intersect().Sub(mathutil.Vec3{0, 1, 0}).Len(); d > eps {
		t.Errorf("sphere intersection off by %g", d)
	}
	if d := a.Tip().Sub(mathutil.Vec3{0, 1.5, 0}).Len(); d > eps {
		t.Errorf("tip off by %g", d)
	}
}

func TestEquatorPointsClosedUnitCircle(t *testing.T) {
	pts := EquatorPoints(mathutil.AxisS1, mathutil.AxisS2, 16)
	if len(pts) != 17 {
		t.Fatalf("got %d points, want 17", len(pts))
	}
	if d := pts[0].Sub(pts[len(pts)-1]).Len(); d > eps {
		t.Errorf("circle not closed, gap %g", d)
	}
	for i, p := range pts {
		if math.Abs(p.Len()-1) > eps {
			t.Errorf("point %d has magnitude %g", i, p.Len())
		}
		if math.Abs(p[2]) > eps {
			t.Errorf("point %d leaves the S1-S2 plane: %v", i, p)
		}
	}
}

func TestEquatorsLieInCoordinatePlanes(t *testing.T) {
	circles := Equators(32)
	// Circle k is the great circle with S_{k+1} = 0.
	for k, circle := range circles {
		if len(circle) == 0 {
			t.Fatalf("equator %d is empty", k)
		}
		for _, p := range circle {
			if math.Abs(p[k]) > eps {
				t.Errorf("equator %d point %v has nonzero component %d", k, p, k)
			}
		}
	}
}
