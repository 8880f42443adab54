// Package stokes holds the trajectory data model for Stokes-parameter
// paths: the record-file scanner, visibility segmentation, and the
// tick-mark geometry attached to sampled points.
package stokes

import (
	"fmt"

	"poincare-mapper/internal/mathutil"
	"poincare-mapper/internal/sphere"
)

// Anchor is one of the eight compass-style text placements relative to a
// projected point.
type Anchor int

const (
	AnchorTop Anchor = iota
	AnchorUpperLeft
	AnchorLeft
	AnchorLowerLeft
	AnchorBottom
	AnchorLowerRight
	AnchorRight
	AnchorUpperRight
)

var anchorNames = [...]string{
	AnchorTop:        "top",
	AnchorUpperLeft:  "ulft",
	AnchorLeft:       "lft",
	AnchorLowerLeft:  "llft",
	AnchorBottom:     "bot",
	AnchorLowerRight: "lrt",
	AnchorRight:      "rt",
	AnchorUpperRight: "urt",
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// ParseAnchor maps a position code from the input grammar to an Anchor.
// Invalid codes are a hard parse error for the caller.
func ParseAnchor(s string) (Anchor, bool) {
	for a, name := range anchorNames {
		if s == name {
			return Anchor(a), true
		}
	}
	return 0, false
}

// Label is a text annotation bound to a trajectory sample.
type Label struct {
	Index int // sample index the label is anchored to
	Pos   Anchor
	Text  string
}

// Trajectory is one scanned path of Stokes triplets. Begin and End labels
// occupy their own slots so they can never collide with tick labels.
type Trajectory struct {
	Points     []mathutil.Vec3
	Visible    []bool // filled by Classify, parallel to Points
	Ticks      []int  // sample indices carrying a tick mark
	TickLabels []Label
	Begin, End *Label
}

// Classify computes the per-point visibility flags for the given view.
func (t *Trajectory) Classify(v sphere.View) {
	t.Visible = make([]bool, len(t.Points))
	for i, p := range t.Points {
		t.Visible[i] = v.Visible(p)
	}
}

// Limits are the static capacity maxima for one trajectory. They exist to
// bound memory on hostile input; exceeding one is a fatal CapacityError.
type Limits struct {
	MaxPoints int
	MaxTicks  int
	MaxLabels int
}

// DefaultLimits are generous for measured polarization data while still
// bounding a runaway input file.
func DefaultLimits() Limits {
	return Limits{MaxPoints: 5000, MaxTicks: 500, MaxLabels: 50}
}

// CapacityError reports input exceeding a static maximum.
type CapacityError struct {
	What  string
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("stokes: too many %s (limit %d)", e.What, e.Limit)
}
