// Package sphere implements the rotated orthographic view of the Poincaré
// sphere: projection of Stokes vectors onto the 2D drawing plane, the
// front/back hemisphere classification, and the companion geometry for
// coordinate axes, equators and great-circle arrows.
package sphere

import (
	"fmt"

	"poincare-mapper/internal/mathutil"
)

// Point2 is a projected point in the drawing plane, in units of the
// sphere radius.
type Point2 struct {
	X, Y float64
}

// View is the orientation of the sphere: first a rotation by psi around the
// z-axis (S3), then by phi around the y-axis (S2), followed by an
// orthographic projection. Construct with NewView; immutable afterwards.
type View struct {
	Psi, Phi  float64 // radians
	Normalize bool

	// m maps a Stokes vector to view coordinates (depth, x, y).
	// Row 0 is the outward normal toward the viewer.
	m mathutil.Mat3
}

// NewView returns the view for the given Euler angles in radians.
// With normalize set, projected points are divided by |s| so that fully
// polarized states land exactly on the unit sphere.
func NewView(psi, phi float64, normalize bool) View {
	return View{
		Psi:       psi,
		Phi:       phi,
		Normalize: normalize,
		m:         mathutil.Mat3Mul(mathutil.RotY(phi), mathutil.RotZ(psi)),
	}
}

// Raw returns the same orientation with normalization disabled. Geometry
// constructed directly in sphere-radius units (axes, equators, shading)
// projects through this, regardless of how trajectories are scaled.
func (v View) Raw() View {
	v.Normalize = false
	return v
}

// Rotated returns the view of a coordinate frame rotated by the additional
// Euler angles (dpsi, dphi) relative to this one. Used for the overlay
// coordinate system sharing the same sphere.
func (v View) Rotated(dpsi, dphi float64) View {
	return NewView(v.Psi+dpsi, v.Phi+dphi, v.Normalize)
}

// DegenerateInputError reports a zero-magnitude Stokes vector where a
// direction was required.
type DegenerateInputError struct {
	Point mathutil.Vec3
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("sphere: zero-magnitude Stokes vector %v has no direction", e.Point)
}

// Project maps a Stokes vector to drawing-plane coordinates:
//
//	x =  s1·sin(psi) + s2·cos(psi)
//	y = -s1·cos(psi)·sin(phi) + s2·sin(psi)·sin(phi) + s3·cos(phi)
//
// Every client of the view (trajectories, tick marks, labels, arrows, axes,
// equators) goes through this single definition.
func (v View) Project(s mathutil.Vec3) (Point2, error) {
	r := v.m.MulVec3(s)
	p := Point2{X: r[1], Y: r[2]}
	if v.Normalize {
		l := s.Len()
		if l == 0 {
			return Point2{}, &DegenerateInputError{Point: s}
		}
		p.X /= l
		p.Y /= l
	}
	return p, nil
}

// Depth is the signed projection of s onto the outward normal toward the
// viewer. Positive values face the viewer.
func (v View) Depth(s mathutil.Vec3) float64 {
	return v.m.MulVec3(s)[0]
}

// Visible reports whether s lies on the hemisphere facing the viewer.
// Points exactly on the terminator count as visible; this tie-break keeps
// run segmentation deterministic.
func (v View) Visible(s mathutil.Vec3) bool {
	return v.Depth(s) >= 0
}
