// Package preview rasterizes a scene primitive stream into a WebP image.
// It is a proofing aid for quick iteration on viewpoints and styles, not
// a substitute for the MetaPost output: text labels need TeX and are
// skipped, arrowheads are drawn as plain strokes, and bezier paths are
// rendered as polylines.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/vector"

	"poincare-mapper/internal/scene"
	"poincare-mapper/internal/sphere"
)

// World coordinates span roughly [-1.7, 1.7] in both screen axes once
// the extended axes and their labels are accounted for.
const worldExtent = 1.7

// One PostScript point in millimetres.
const ptToMM = 0.352778

// Renderer rasterizes primitives onto a square canvas.
type Renderer struct {
	Size          int     // canvas width and height in pixels
	ScaleFactorMM float64 // sphere radius in millimetres, for pen widths
}

// Render draws the primitive stream onto a white canvas.
func (r *Renderer) Render(prims []scene.Primitive) (*image.NRGBA, error) {
	if r.Size < 16 {
		return nil, fmt.Errorf("preview: canvas size %d too small", r.Size)
	}

	img := image.NewNRGBA(image.Rect(0, 0, r.Size, r.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, p := range prims {
		switch p := p.(type) {
		case scene.Fill:
			r.fillPoly(img, p.Pts, gray(p.Whiteness))
		case scene.Path:
			w := p.Style.Whiteness
			pts := p.Pts
			if p.Style.Dashed {
				for _, seg := range r.dashes(pts) {
					r.stroke(img, seg, p.Style.Thickness, gray(w))
				}
			} else {
				r.stroke(img, pts, p.Style.Thickness, gray(w))
			}
		case scene.Text:
			// needs TeX; not rendered in previews
		default:
			return nil, fmt.Errorf("preview: unknown primitive %T", p)
		}
	}
	return img, nil
}

// Encode renders the primitives and writes them as a lossless WebP.
func (r *Renderer) Encode(w io.Writer, prims []scene.Primitive) error {
	img, err := r.Render(prims)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: webp encode: %w", err)
	}
	return nil
}

// pixel maps screen coordinates (sphere radii, y up) to canvas pixels.
func (r *Renderer) pixel(p sphere.Point2) (float32, float32) {
	s := float64(r.Size) / (2 * worldExtent)
	half := float64(r.Size) / 2
	return float32(half + p.X*s), float32(half - p.Y*s)
}

// penWidth converts a pen thickness in points to pixels on this canvas.
func (r *Renderer) penWidth(thicknessPt float64) float64 {
	s := float64(r.Size) / (2 * worldExtent)
	w := thicknessPt * ptToMM / r.ScaleFactorMM * s
	if w < 1 {
		w = 1
	}
	return w
}

func gray(whiteness float64) color.Color {
	v := uint8(math.Round(255 * whiteness))
	return color.NRGBA{v, v, v, 255}
}

func (r *Renderer) fillPoly(img *image.NRGBA, pts []sphere.Point2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	z := vector.NewRasterizer(r.Size, r.Size)
	x, y := r.pixel(pts[0])
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = r.pixel(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
	z.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

// stroke draws a polyline by filling one quad per segment. Joins are
// butt joins, which is plenty for a proofing image.
func (r *Renderer) stroke(img *image.NRGBA, pts []sphere.Point2, thicknessPt float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	half := r.penWidth(thicknessPt) / 2

	z := vector.NewRasterizer(r.Size, r.Size)
	for i := 0; i+1 < len(pts); i++ {
		ax, ay := r.pixel(pts[i])
		bx, by := r.pixel(pts[i+1])
		dx, dy := float64(bx-ax), float64(by-ay)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := float32(-dy/l*half), float32(dx/l*half)
		z.MoveTo(ax+nx, ay+ny)
		z.LineTo(bx+nx, by+ny)
		z.LineTo(bx-nx, by-ny)
		z.LineTo(ax-nx, ay-ny)
		z.ClosePath()
	}
	z.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}

// dashes splits a polyline into on-segments matching MetaPost's
// "dashed evenly" pattern of 3pt on, 3pt off.
func (r *Renderer) dashes(pts []sphere.Point2) [][]sphere.Point2 {
	dash := r.penWidth(3.0) // 3pt, in pixels
	s := float64(r.Size) / (2 * worldExtent)
	dashWorld := dash / s

	var out [][]sphere.Point2
	var cur []sphere.Point2
	on := true
	remain := dashWorld

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		if on && len(cur) == 0 {
			cur = append(cur, a)
		}
		for segLen-pos > remain {
			pos += remain
			t := pos / segLen
			p := sphere.Point2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
			if on {
				cur = append(cur, p)
				out = append(out, cur)
				cur = nil
			} else {
				cur = []sphere.Point2{p}
			}
			on = !on
			remain = dashWorld
		}
		remain -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if len(cur) >= 2 {
		out = append(out, cur)
	}
	return out
}
