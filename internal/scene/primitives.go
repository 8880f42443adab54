// Package scene assembles the complete Poincaré map as an ordered stream of
// drawing primitives, back to front: the shaded sphere, equators, hidden
// trajectory runs, visible trajectory runs, user arrows and coordinate axes.
// Emitters (MetaPost, raster preview) consume the stream without knowing how
// it was produced.
package scene

import (
	"poincare-mapper/internal/sphere"
	"poincare-mapper/internal/stokes"
)

// Style carries the presentation attributes of a stroked path.
type Style struct {
	Thickness float64 // pen diameter in PostScript points
	Whiteness float64 // 0 = black, 1 = white
	Dashed    bool
	Smooth    bool // smooth (Bezier) joins instead of straight lines
	Arrow     bool // arrowhead at the final point
	Reverse   bool // traverse the path backwards (affects the arrowhead end)
}

// Primitive is one drawing operation. Coordinates are in units of the
// sphere radius, origin at the sphere centre, y up.
type Primitive interface{ prim() }

// Fill is a filled polygon (one shading cell).
type Fill struct {
	Pts       []sphere.Point2
	Whiteness float64
}

// Path is a stroked polyline or smooth curve.
type Path struct {
	Pts   []sphere.Point2
	Style Style
}

// Text is an anchored text label.
type Text struct {
	At     sphere.Point2
	Anchor stokes.Anchor
	Text   string
}

func (Fill) prim() {}
func (Path) prim() {}
func (Text) prim() {}
