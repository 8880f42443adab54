package stokes

import (
	"fmt"

	"poincare-mapper/internal/sphere"
)

// tickOffset is the half-length of a tick mark in Stokes space, in units of
// the sphere radius. The value is fixed; pen thickness is the only
// user-visible tick style knob.
const tickOffset = 0.028213

// DegeneracyError reports a zero-length vector encountered while
// constructing tick geometry at a trajectory sample.
type DegeneracyError struct {
	Index  int
	Reason string
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("stokes: degenerate tick geometry at sample %d: %s", e.Index, e.Reason)
}

// TickSegment returns the two projected endpoints of the tick mark crossing
// the trajectory at sample k. The tick lies transverse to the local tangent:
// a central-difference tangent q (one-sided at the first and last sample) is
// crossed with the unit Stokes vector s to give the in-plane normal
// p = normalize(s × q), and the endpoints are s ± offset·p, rescaled by the
// original magnitude |s| so the tick sits on the sampled trajectory rather
// than the idealized sphere.
func (t *Trajectory) TickSegment(k int, v sphere.View) (a, b sphere.Point2, err error) {
	n := len(t.Points)
	if k < 0 || k >= n {
		return a, b, fmt.Errorf("stokes: tick index %d out of range (%d samples)", k, n)
	}
	if n < 2 {
		return a, b, &DegeneracyError{Index: k, Reason: "trajectory has no tangent direction"}
	}

	qv := t.Points[min(k+1, n-1)].Sub(t.Points[max(k-1, 0)])
	if qv.IsZero() {
		return a, b, &DegeneracyError{Index: k, Reason: "zero-length tangent"}
	}
	tangent := qv.Normalize()

	s := t.Points[k]
	mag := s.Len()
	if s.IsZero() {
		return a, b, &DegeneracyError{Index: k, Reason: "zero-magnitude Stokes vector"}
	}
	unit := s.Normalize()

	normal := unit.Cross(tangent)
	if normal.IsZero() {
		return a, b, &DegeneracyError{Index: k, Reason: "tangent parallel to radius"}
	}
	normal = normal.Normalize()

	// Endpoints in Stokes space, rescaled to the sampled magnitude.
	pa := unit.Add(normal.Scale(tickOffset)).Scale(mag)
	pb := unit.Sub(normal.Scale(tickOffset)).Scale(mag)

	if a, err = v.Project(pa); err != nil {
		return a, b, err
	}
	if b, err = v.Project(pb); err != nil {
		return a, b, err
	}
	return a, b, nil
}
