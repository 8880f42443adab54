package preview

import (
	"bytes"
	"image/color"
	"testing"

	"poincare-mapper/internal/scene"
	"poincare-mapper/internal/sphere"
)

func testRenderer() *Renderer {
	return &Renderer{Size: 64, ScaleFactorMM: 6.0}
}

func TestRenderFillCoversCentre(t *testing.T) {
	prims := []scene.Primitive{
		scene.Fill{
			Pts: []sphere.Point2{
				{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5},
				{X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5},
			},
			Whiteness: 0,
		},
	}
	r := testRenderer()
	img, err := r.Render(prims)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Dx(); got != 64 {
		t.Fatalf("canvas width %d, want 64", got)
	}

	centre := img.NRGBAAt(32, 32)
	if centre.R > 10 {
		t.Errorf("centre pixel %+v, want near black", centre)
	}
	corner := img.NRGBAAt(1, 1)
	if (corner != color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel %+v, want the white background", corner)
	}
}

func TestRenderSkipsText(t *testing.T) {
	prims := []scene.Primitive{
		scene.Text{At: sphere.Point2{}, Text: "$S_1$"},
	}
	img, err := testRenderer().Render(prims)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(32, 32); (got != color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("text must not be rasterized, centre pixel %+v", got)
	}
}

func TestRenderTooSmall(t *testing.T) {
	r := &Renderer{Size: 4, ScaleFactorMM: 6.0}
	if _, err := r.Render(nil); err == nil {
		t.Error("tiny canvas should error")
	}
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	prims := []scene.Primitive{
		scene.Path{
			Pts:   []sphere.Point2{{X: -1, Y: 0}, {X: 1, Y: 0}},
			Style: scene.Style{Thickness: 1.0},
		},
	}
	if err := testRenderer().Encode(&buf, prims); err != nil {
		t.Fatal(err)
	}
	b := buf.Bytes()
	if len(b) < 12 || string(b[:4]) != "RIFF" || string(b[8:12]) != "WEBP" {
		t.Errorf("output does not look like a WebP container: % x", b[:min(12, len(b))])
	}
}

func TestDashesAlternate(t *testing.T) {
	r := testRenderer()
	// A line spanning the whole canvas splits into several dashes.
	segs := r.dashes([]sphere.Point2{{X: -1.5, Y: 0}, {X: 1.5, Y: 0}})
	if len(segs) < 2 {
		t.Fatalf("got %d dash segments, want several", len(segs))
	}
	for i, s := range segs {
		if len(s) < 2 {
			t.Errorf("dash %d has %d points", i, len(s))
		}
	}
}
