// Package shading computes the Phong-shaded background of the projected
// Poincaré sphere as a grid of filled quadrilaterals over the unit disk.
package shading

import (
	"math"

	"poincare-mapper/internal/mathutil"
	"poincare-mapper/internal/sphere"
)

// Params configures the shading field. Angles are in radians; whiteness
// runs from 0 (black) to 1 (white).
type Params struct {
	RhoSteps int // radial subdivisions of the disk
	PhiSteps int // tangential subdivisions
	PhiSource, ThetaSource float64
	Lower, Upper float64 // whiteness bounds (deep shadow, highlight)
}

// LightDir returns the unit vector from the sphere centre toward the
// point light, in view coordinates.
func (p Params) LightDir() mathutil.Vec3 {
	st, ct := math.Sin(p.ThetaSource), math.Cos(p.ThetaSource)
	return mathutil.Vec3{st * math.Cos(p.PhiSource), st * math.Sin(p.PhiSource), ct}
}

// Shade returns the whiteness for the disk position (rho, phi), rho in
// units of the sphere radius. The surface normal at that position is dotted
// with the light direction; cells facing away clamp to the lower bound, the
// rest follow lower + (upper-lower)·dot².
func (p Params) Shade(rho, phi float64) float64 {
	nz := 1 - rho*rho
	if nz < 0 {
		nz = 0
	}
	n := mathutil.Vec3{rho * math.Cos(phi), rho * math.Sin(phi), math.Sqrt(nz)}
	dot := n.Dot(p.LightDir())
	if dot < 0 {
		return p.Lower
	}
	return p.Lower + (p.Upper-p.Lower)*dot*dot
}

// Cell is one filled quadrilateral of the shading grid. Corner order is
// counter-clockwise starting at the inner-radius, lower-angle corner.
type Cell struct {
	Quad      [4]sphere.Point2
	Whiteness float64
}

// Field tiles the unit disk with RhoSteps × PhiSteps cells and shades each
// one at its centre. The outermost ring stops half a step short of the rim,
// so every cell centre stays on the sphere.
func (p Params) Field() []Cell {
	dRho := 1.0 / float64(p.RhoSteps)
	dPhi := 2 * math.Pi / float64(p.PhiSteps)
	light := p.LightDir()

	cells := make([]Cell, 0, p.RhoSteps*p.PhiSteps)
	for i := 0; i < p.RhoSteps; i++ {
		rho := float64(i) * dRho
		if rho > 1-dRho/2 {
			break
		}
		for j := 0; j < p.PhiSteps; j++ {
			phi := float64(j) * dPhi

			corner := func(r, a float64) sphere.Point2 {
				return sphere.Point2{X: r * math.Cos(a), Y: r * math.Sin(a)}
			}
			cell := Cell{Quad: [4]sphere.Point2{
				corner(rho, phi),
				corner(rho+dRho, phi),
				corner(rho+dRho, phi+dPhi),
				corner(rho, phi+dPhi),
			}}

			rhoMid := rho + dRho/2
			phiMid := phi + dPhi/2
			nz := 1 - rhoMid*rhoMid
			if nz < 0 {
				nz = 0
			}
			n := mathutil.Vec3{rhoMid * math.Cos(phiMid), rhoMid * math.Sin(phiMid), math.Sqrt(nz)}
			dot := n.Dot(light)
			if dot < 0 {
				cell.Whiteness = p.Lower
			} else {
				cell.Whiteness = p.Lower + (p.Upper-p.Lower)*dot*dot
			}
			cells = append(cells, cell)
		}
	}
	return cells
}
