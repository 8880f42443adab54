package stokes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSegmentsPartition(t *testing.T) {
	cases := []struct {
		name    string
		visible []bool
		want    []Run
	}{
		{"empty", nil, nil},
		{"single", []bool{true}, []Run{{0, 0, true}}},
		{"all visible", []bool{true, true, true}, []Run{{0, 2, true}}},
		{"alternating", []bool{true, false, true}, []Run{
			{0, 0, true}, {1, 1, false}, {2, 2, true},
		}},
		{"two runs", []bool{false, false, true, true, true}, []Run{
			{0, 1, false}, {2, 4, true},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Segments(c.visible)
			if d := cmp.Diff(c.want, got); d != "" {
				t.Errorf("runs mismatch (-want +got):\n%s", d)
			}

			// The runs must cover every index exactly once, in order.
			next := 0
			for _, r := range got {
				if r.Start != next {
					t.Errorf("run %+v does not start at %d", r, next)
				}
				next = r.End + 1
			}
			if next != len(c.visible) {
				t.Errorf("runs cover %d samples, want %d", next, len(c.visible))
			}
		})
	}
}

func TestRunExtended(t *testing.T) {
	n := 10

	// Visible runs grow one sample into each neighbor, clamped.
	got := Run{3, 5, true}.Extended(n)
	if want := (Run{2, 6, true}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	got = Run{0, 9, true}.Extended(n)
	if want := (Run{0, 9, true}); got != want {
		t.Errorf("clamped: got %+v, want %+v", got, want)
	}

	// Hidden runs keep their boundaries.
	got = Run{3, 5, false}.Extended(n)
	if want := (Run{3, 5, false}); got != want {
		t.Errorf("hidden: got %+v, want %+v", got, want)
	}
}

func TestRunDrawable(t *testing.T) {
	if (Run{4, 4, true}).Drawable() {
		t.Error("single-sample run should not be drawable")
	}
	if !(Run{4, 5, true}).Drawable() {
		t.Error("two-sample run should be drawable")
	}

	// A lone visible sample becomes drawable after boundary extension.
	if !(Run{4, 4, true}).Extended(10).Drawable() {
		t.Error("extended single visible sample should be drawable")
	}
}
