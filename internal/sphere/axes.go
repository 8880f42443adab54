package sphere

import (
	"math"

	"poincare-mapper/internal/mathutil"
)

// Axis describes one coordinate axis of a frame drawn through the sphere.
// Lengths are relative to the sphere radius: the axis runs from -NegLen·Dir
// through the sphere surface at 1·Dir out to PosLen·Dir, where the arrowhead
// and label sit.
type Axis struct {
	Dir    mathutil.Vec3
	NegLen float64
	PosLen float64
}

// Tail returns the start point of the axis behind the origin.
func (a Axis) Tail() mathutil.Vec3 {
	return a.Dir.Scale(-a.NegLen)
}

// Intersect returns the point where the axis pierces the unit sphere.
func (a Axis) Intersect() mathutil.Vec3 {
	return a.Dir
}

// Tip returns the arrowhead end of the axis outside the sphere.
func (a Axis) Tip() mathutil.Vec3 {
	return a.Dir.Scale(a.PosLen)
}

// EquatorPoints samples the great circle spanned by the orthonormal pair
// (u, w) with n points, closing back onto the first point. The standard
// equators S1=0, S2=0 and S3=0 use the canonical basis pairs.
func EquatorPoints(u, w mathutil.Vec3, n int) []mathutil.Vec3 {
	if n < 3 {
		n = 3
	}
	pts := make([]mathutil.Vec3, 0, n+1)
	for i := 0; i <= n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, u.Scale(math.Cos(t)).Add(w.Scale(math.Sin(t))))
	}
	return pts
}

// Equators returns the three standard equators of the sphere, in the order
// S1=0, S2=0, S3=0, each sampled with n points.
func Equators(n int) [3][]mathutil.Vec3 {
	return [3][]mathutil.Vec3{
		EquatorPoints(mathutil.AxisS2, mathutil.AxisS3, n), // S1 = 0
		EquatorPoints(mathutil.AxisS1, mathutil.AxisS3, n), // S2 = 0
		EquatorPoints(mathutil.AxisS1, mathutil.AxisS2, n), // S3 = 0
	}
}
