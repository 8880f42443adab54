// Package mpost renders a scene primitive stream as MetaPost source code,
// compilable with the mpost program or anything else that understands
// MetaPost.
package mpost

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"poincare-mapper/internal/scene"
)

// Writer renders one figure. All fields are optional except ScaleFactor.
type Writer struct {
	OutFilename    string   // recorded in the header comment
	InFilename     string   // recorded in the header comment
	CommandLine    []string // recorded in the header comment
	ScaleFactor    float64  // sphere radius in millimetres
	ArrowHeadAngle float64  // degrees; 0 keeps the MetaPost default
	AuxSource      string   // MetaPost file to `input` before endfig
	Now            func() time.Time
}

// Render produces the complete MetaPost source for the primitive stream.
// Output is buffered: on error nothing is produced, so a failed run never
// leaves a partial figure behind.
func (w *Writer) Render(prims []scene.Primitive) ([]byte, error) {
	var buf bytes.Buffer
	w.header(&buf)
	w.prologue(&buf)

	pen := -1.0 // current pen diameter; force a pickup before the first path
	for _, p := range prims {
		switch p := p.(type) {
		case scene.Fill:
			w.fill(&buf, p)
		case scene.Path:
			if len(p.Pts) < 2 {
				continue
			}
			if p.Style.Thickness != pen {
				pen = p.Style.Thickness
				fmt.Fprintf(&buf, "  pickup pencircle scaled %.4f pt;\n", pen)
			}
			w.path(&buf, p)
		case scene.Text:
			fmt.Fprintf(&buf, "  label.%s(btex %s etex, (%.4f,%.4f)*radius);\n",
				p.Anchor, p.Text, p.At.X, p.At.Y)
		default:
			return nil, fmt.Errorf("mpost: unknown primitive %T", p)
		}
	}

	w.epilogue(&buf)
	return buf.Bytes(), nil
}

func (w *Writer) header(buf io.Writer) {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	fmt.Fprintf(buf, "%% This Filename:  %s   [MetaPost source]\n", w.OutFilename)
	fmt.Fprintf(buf, "%% Creation time:  %s\n", now().Format(time.ANSIC))
	fmt.Fprintf(buf, "%%\n")
	if w.InFilename != "" {
		fmt.Fprintf(buf, "%% Input filename [Stokes parameters]:  %s\n", w.InFilename)
	}
	fmt.Fprintf(buf, "%% Map of Stokes parameters, visualized as trajectories on the\n")
	fmt.Fprintf(buf, "%% Poincare sphere. This source code was automatically generated.\n")
	if len(w.CommandLine) > 0 {
		fmt.Fprintf(buf, "%% Full command line that generated this code:\n")
		fmt.Fprintf(buf, "%%    %s\n", strings.Join(w.CommandLine, " "))
	}
	fmt.Fprintf(buf, "%%\n")
}

func (w *Writer) prologue(buf io.Writer) {
	fmt.Fprintf(buf, "scalefactor := %.4f mm;\n", w.ScaleFactor)
	fmt.Fprintf(buf, "radius := scalefactor;\n")
	fmt.Fprintf(buf, "beginfig(1);\n")
	fmt.Fprintf(buf, "  path p;\n")
	if w.ArrowHeadAngle > 0 {
		fmt.Fprintf(buf, "  oldahangle := ahangle;\n")
		fmt.Fprintf(buf, "  ahangle := %.4f;\n", w.ArrowHeadAngle)
	}
}

func (w *Writer) epilogue(buf io.Writer) {
	if w.ArrowHeadAngle > 0 {
		fmt.Fprintf(buf, "  ahangle := oldahangle;\n")
	}
	if w.AuxSource != "" {
		fmt.Fprintf(buf, "%%\n%% Auxiliary source included at the end of the figure:\n%%\n")
		fmt.Fprintf(buf, "  input %s\n", w.AuxSource)
	}
	fmt.Fprintf(buf, "endfig;\nend\n")
}

func (w *Writer) fill(buf io.Writer, f scene.Fill) {
	fmt.Fprintf(buf, "  fill (")
	for _, pt := range f.Pts {
		fmt.Fprintf(buf, "(%.4f,%.4f)--", pt.X, pt.Y)
	}
	fmt.Fprintf(buf, "cycle) scaled radius withcolor %.4f [black,white];\n", f.Whiteness)
}

func (w *Writer) path(buf io.Writer, p scene.Path) {
	join := "--"
	if p.Style.Smooth {
		join = ".."
	}
	fmt.Fprintf(buf, "  p := ")
	for i, pt := range p.Pts {
		if i > 0 {
			fmt.Fprintf(buf, "%s", join)
			if i%3 == 0 {
				fmt.Fprintf(buf, "\n    ")
			}
		}
		fmt.Fprintf(buf, "(%.4f,%.4f)", pt.X, pt.Y)
	}
	fmt.Fprintf(buf, ";\n")

	cmd := "draw p"
	if p.Style.Arrow {
		if p.Style.Reverse {
			cmd = "drawarrow reverse p"
		} else {
			cmd = "drawarrow p"
		}
	}
	fmt.Fprintf(buf, "  %s scaled radius", cmd)
	if p.Style.Dashed {
		fmt.Fprintf(buf, " dashed evenly")
	}
	if p.Style.Whiteness > 0 {
		fmt.Fprintf(buf, " withcolor %.4f [black,white]", p.Style.Whiteness)
	} else {
		fmt.Fprintf(buf, " withcolor black")
	}
	fmt.Fprintf(buf, ";\n")
}
