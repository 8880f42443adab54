package scene

import (
	"fmt"

	"poincare-mapper/internal/mathutil"
	"poincare-mapper/internal/shading"
	"poincare-mapper/internal/sphere"
	"poincare-mapper/internal/stokes"
)

// Fixed grayscale values of the sphere furniture.
const (
	equatorWhiteness    = 0.55 // equators: 45% black
	insideAxisWhiteness = 0.15 // dashed axis parts inside the sphere: 85% black
)

// MaxArrows bounds the number of user-specified great-circle arrows.
const MaxArrows = 24

// ArrowSpec is one user-requested arrow between two Stokes-space points.
type ArrowSpec struct {
	A, B      mathutil.Vec3
	Dashed    bool
	Blackness float64 // 0 = white, 1 = black
}

// AxisSpec is one coordinate axis plus its label.
type AxisSpec struct {
	Axis     sphere.Axis
	Label    string // empty means: do not draw (overlay frames only)
	LabelPos stokes.Anchor
}

// PathStyle collects the per-run presentation options shared by all
// trajectories of one map.
type PathStyle struct {
	Thickness     float64
	Bezier        bool
	HiddenDashed  bool    // hidden runs dashed black instead of gray
	HiddenGray    float64 // whiteness of hidden runs when not dashed
	AsArrows      bool    // final run of each trajectory gets an arrowhead
	ReverseArrows bool
}

// Map is the full description of one Poincaré map. Construct it, then call
// Build once; the value is read-only afterwards.
type Map struct {
	View    sphere.View
	Overlay *sphere.View // optional second frame sharing the sphere

	Shading      shading.Params
	EquatorSteps int // samples per equator circle; 0 picks a default

	Trajectories []*stokes.Trajectory
	Style        PathStyle

	Arrows         []ArrowSpec
	ArrowThickness float64

	Axes           [3]AxisSpec // primary frame: S1, S2, S3
	OverlayAxes    []AxisSpec  // drawn only when labelled
	AxisThickness  float64
	DrawAxesInside bool
}

// Build produces the ordered primitive stream. The whole-file draw order is:
// shading cells, equators, then every trajectory's hidden runs, then every
// trajectory's visible runs (so a later trajectory's hidden parts can never
// overpaint an earlier one's visible parts), then user arrows and axes.
func (m *Map) Build() ([]Primitive, error) {
	var prims []Primitive

	for _, c := range m.Shading.Field() {
		prims = append(prims, Fill{Pts: c.Quad[:], Whiteness: c.Whiteness})
	}

	eq, err := m.equators()
	if err != nil {
		return nil, err
	}
	prims = append(prims, eq...)

	for i, tr := range m.Trajectories {
		tr.Classify(m.View)
		ps, err := m.trajectoryPass(tr, false)
		if err != nil {
			return nil, fmt.Errorf("scene: trajectory %d: %w", i+1, err)
		}
		prims = append(prims, ps...)
	}
	for i, tr := range m.Trajectories {
		ps, err := m.trajectoryPass(tr, true)
		if err != nil {
			return nil, fmt.Errorf("scene: trajectory %d: %w", i+1, err)
		}
		prims = append(prims, ps...)
		ls, err := m.labels(tr)
		if err != nil {
			return nil, fmt.Errorf("scene: trajectory %d: %w", i+1, err)
		}
		prims = append(prims, ls...)
	}

	as, err := m.userArrows()
	if err != nil {
		return nil, err
	}
	prims = append(prims, as...)

	ax, err := m.axes(m.View.Raw(), m.Axes[:], true)
	if err != nil {
		return nil, err
	}
	prims = append(prims, ax...)

	if m.Overlay != nil {
		ax, err := m.axes(m.Overlay.Raw(), m.OverlayAxes, false)
		if err != nil {
			return nil, err
		}
		prims = append(prims, ax...)
	}

	return prims, nil
}

func (m *Map) equatorSteps() int {
	if m.EquatorSteps > 0 {
		return m.EquatorSteps
	}
	return 120
}

// project maps a slice of Stokes points through the view.
func project(v sphere.View, pts []mathutil.Vec3) ([]sphere.Point2, error) {
	out := make([]sphere.Point2, len(pts))
	for i, p := range pts {
		q, err := v.Project(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

// visibleStroke draws only the front-facing part of a closed or open
// sample sequence, reusing the trajectory segmentation.
func visibleStroke(v sphere.View, pts []mathutil.Vec3, style Style) ([]Primitive, error) {
	vis := make([]bool, len(pts))
	for i, p := range pts {
		vis[i] = v.Visible(p)
	}
	var prims []Primitive
	for _, r := range stokes.Segments(vis) {
		if !r.Visible {
			continue
		}
		r = r.Extended(len(pts))
		if !r.Drawable() {
			continue
		}
		proj, err := project(v, pts[r.Start:r.End+1])
		if err != nil {
			return nil, err
		}
		prims = append(prims, Path{Pts: proj, Style: style})
	}
	return prims, nil
}

func (m *Map) equators() ([]Primitive, error) {
	style := Style{Thickness: m.AxisThickness, Whiteness: equatorWhiteness}
	var prims []Primitive
	for _, circle := range sphere.Equators(m.equatorSteps()) {
		ps, err := visibleStroke(m.View.Raw(), circle, style)
		if err != nil {
			return nil, err
		}
		prims = append(prims, ps...)
	}
	if m.Overlay != nil {
		for _, circle := range sphere.Equators(m.equatorSteps()) {
			ps, err := visibleStroke(m.Overlay.Raw(), circle, style)
			if err != nil {
				return nil, err
			}
			prims = append(prims, ps...)
		}
	}
	return prims, nil
}

// trajectoryPass emits one visibility class of a classified trajectory:
// its runs in increasing index order, plus the tick marks whose anchor
// point belongs to the class.
func (m *Map) trajectoryPass(tr *stokes.Trajectory, visible bool) ([]Primitive, error) {
	n := len(tr.Points)
	var prims []Primitive

	style := Style{Thickness: m.Style.Thickness, Smooth: m.Style.Bezier}
	if !visible {
		if m.Style.HiddenDashed {
			style.Dashed = true
		} else {
			style.Whiteness = m.Style.HiddenGray
		}
	}

	for _, r := range stokes.Segments(tr.Visible) {
		if r.Visible != visible {
			continue
		}
		r = r.Extended(n)
		if !r.Drawable() {
			continue
		}
		proj, err := project(m.View, tr.Points[r.Start:r.End+1])
		if err != nil {
			return nil, err
		}
		s := style
		if m.Style.AsArrows && r.End == n-1 {
			s.Arrow = true
			s.Reverse = m.Style.ReverseArrows
		}
		prims = append(prims, Path{Pts: proj, Style: s})
	}

	tickStyle := Style{Thickness: m.Style.Thickness / 2}
	if !visible {
		tickStyle.Whiteness = m.Style.HiddenGray
	}
	for _, k := range tr.Ticks {
		if tr.Visible[k] != visible {
			continue
		}
		a, b, err := tr.TickSegment(k, m.View)
		if err != nil {
			return nil, err
		}
		prims = append(prims, Path{Pts: []sphere.Point2{a, b}, Style: tickStyle})
	}
	return prims, nil
}

func (m *Map) labels(tr *stokes.Trajectory) ([]Primitive, error) {
	var prims []Primitive
	add := func(l *stokes.Label) error {
		if l == nil || l.Index < 0 || l.Index >= len(tr.Points) {
			return nil
		}
		at, err := m.View.Project(tr.Points[l.Index])
		if err != nil {
			return err
		}
		prims = append(prims, Text{At: at, Anchor: l.Pos, Text: l.Text})
		return nil
	}
	if err := add(tr.Begin); err != nil {
		return nil, err
	}
	for i := range tr.TickLabels {
		if err := add(&tr.TickLabels[i]); err != nil {
			return nil, err
		}
	}
	if err := add(tr.End); err != nil {
		return nil, err
	}
	return prims, nil
}

func (m *Map) userArrows() ([]Primitive, error) {
	if len(m.Arrows) > MaxArrows {
		return nil, &stokes.CapacityError{What: "arrows", Limit: MaxArrows}
	}
	var prims []Primitive
	for i, a := range m.Arrows {
		first, second, err := sphere.GeodesicArc(a.A, a.B, sphere.DefaultArcSteps)
		if err != nil {
			return nil, fmt.Errorf("scene: arrow %d: %w", i+1, err)
		}
		style := Style{
			Thickness: m.ArrowThickness,
			Whiteness: 1 - a.Blackness,
			Dashed:    a.Dashed,
			Smooth:    true,
		}
		// Arrowhead at the midpoint: the first half ends there.
		p1, err := project(m.View.Raw(), first)
		if err != nil {
			return nil, err
		}
		s := style
		s.Arrow = true
		prims = append(prims, Path{Pts: p1, Style: s})

		p2, err := project(m.View.Raw(), second)
		if err != nil {
			return nil, err
		}
		prims = append(prims, Path{Pts: p2, Style: style})
	}
	return prims, nil
}

// axes draws one coordinate frame. For the primary frame every axis is
// drawn; overlay axes are drawn only when explicitly labelled, so two
// frames sharing an axis do not produce doubled strokes.
func (m *Map) axes(v sphere.View, specs []AxisSpec, always bool) ([]Primitive, error) {
	var prims []Primitive
	for _, spec := range specs {
		if !always && spec.Label == "" {
			continue
		}
		tail, err := v.Project(spec.Axis.Tail())
		if err != nil {
			return nil, err
		}
		hit, err := v.Project(spec.Axis.Intersect())
		if err != nil {
			return nil, err
		}
		tip, err := v.Project(spec.Axis.Tip())
		if err != nil {
			return nil, err
		}

		if m.DrawAxesInside {
			prims = append(prims, Path{
				Pts:   []sphere.Point2{tail, hit},
				Style: Style{Thickness: m.AxisThickness, Whiteness: insideAxisWhiteness, Dashed: true},
			})
		}
		prims = append(prims, Path{
			Pts:   []sphere.Point2{hit, tip},
			Style: Style{Thickness: m.AxisThickness, Arrow: true},
		})
		if spec.Label != "" {
			prims = append(prims, Text{At: tip, Anchor: spec.LabelPos, Text: spec.Label})
		}
	}
	return prims, nil
}
