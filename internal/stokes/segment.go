package stokes

// Run is a maximal contiguous stretch of samples sharing one visibility
// class. Start and End are inclusive sample indices.
type Run struct {
	Start, End int
	Visible    bool
}

// Len returns the number of samples in the run.
func (r Run) Len() int { return r.End - r.Start + 1 }

// Segments partitions the classified samples into maximal runs, in
// increasing index order. The runs cover every index exactly once.
func Segments(visible []bool) []Run {
	var runs []Run
	for i := 0; i < len(visible); {
		j := i
		for j+1 < len(visible) && visible[j+1] == visible[i] {
			j++
		}
		runs = append(runs, Run{Start: i, End: j, Visible: visible[i]})
		i = j + 1
	}
	return runs
}

// Extended widens a visible run by one sample on each side, clamped to
// [0, n-1], so that visible strokes overlap slightly into the hidden parts
// and render without seams. Hidden runs keep their exact boundaries: they
// are drawn in a different style and must not bleed past the terminator.
func (r Run) Extended(n int) Run {
	if !r.Visible {
		return r
	}
	if r.Start > 0 {
		r.Start--
	}
	if r.End < n-1 {
		r.End++
	}
	return r
}

// Drawable reports whether the run has enough samples to form a path.
func (r Run) Drawable() bool { return r.Len() >= 2 }
