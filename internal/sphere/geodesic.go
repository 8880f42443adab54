package sphere

import "poincare-mapper/internal/mathutil"

// DefaultArcSteps is the number of interpolation steps per arc half,
// matching a parameter step of 0.02 over [0, 0.5].
const DefaultArcSteps = 25

// GeodesicArc approximates the shortest great-circle arc between the
// sphere-normalized images of a and b: linear interpolation followed by
// renormalization onto the unit sphere. The arc is returned in two halves
// split at t = 0.5, sharing the midpoint sample, so that an arrowhead can
// be drawn at the true midpoint of the first half.
//
// Zero-magnitude endpoints and antipodal pairs (whose midpoint has no
// direction) are rejected with DegenerateInputError.
func GeodesicArc(a, b mathutil.Vec3, steps int) (first, second []mathutil.Vec3, err error) {
	if steps < 1 {
		steps = DefaultArcSteps
	}
	if a.IsZero() {
		return nil, nil, &DegenerateInputError{Point: a}
	}
	if b.IsZero() {
		return nil, nil, &DegenerateInputError{Point: b}
	}
	an := a.Normalize()
	bn := b.Normalize()

	half := func(t0, t1 float64) ([]mathutil.Vec3, error) {
		pts := make([]mathutil.Vec3, 0, steps+1)
		for i := 0; i <= steps; i++ {
			t := t0 + (t1-t0)*float64(i)/float64(steps)
			p := an.Lerp(bn, t)
			if p.IsZero() {
				return nil, &DegenerateInputError{Point: p}
			}
			pts = append(pts, p.Normalize())
		}
		return pts, nil
	}

	if first, err = half(0, 0.5); err != nil {
		return nil, nil, err
	}
	if second, err = half(0.5, 1); err != nil {
		return nil, nil, err
	}
	return first, second, nil
}
