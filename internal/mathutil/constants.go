package mathutil

// Canonical basis directions of Stokes-parameter space. The Poincaré sphere
// carries its S1, S2 and S3 coordinate axes along these.
var (
	AxisS1 = Vec3{1, 0, 0}
	AxisS2 = Vec3{0, 1, 0}
	AxisS3 = Vec3{0, 0, 1}
)
