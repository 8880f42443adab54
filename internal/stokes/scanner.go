package stokes

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"poincare-mapper/internal/mathutil"
)

// ParseError reports a violation of the trajectory record grammar.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("stokes: line %d: %s", e.Line, e.Msg)
}

// Scan reads every trajectory record from r. The record grammar is
//
//	record    := 'p' [ 'b' pos '"' text '"' ]  triplet+  'q' [ 'e' pos '"' text '"' ]
//	triplet   := s1 s2 s3 [ 't' [ 'l' pos '"' text '"' ] ]
//	pos       := top|bot|lft|rt|ulft|urt|llft|lrt
//
// '%' introduces a comment running to end of line; other trailing words
// after a complete triplet are ignored as commentary. A record without its
// 'q' terminator, an unreadable numeric field, an invalid position code or
// an unterminated quoted label is a ParseError. Exceeding a capacity in lim
// is a CapacityError.
func Scan(r io.Reader, lim Limits) ([]*Trajectory, error) {
	s := &scanner{r: bufio.NewReader(r), line: 1, lim: lim}
	var out []*Trajectory
	for {
		if err := s.skip(); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		w, err := s.word()
		if err != nil {
			return nil, err
		}
		if w != "p" {
			return nil, s.errf("expected 'p' to start a record, found %q", w)
		}
		tr, err := s.record()
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
}

type scanner struct {
	r    *bufio.Reader
	line int
	lim  Limits
}

func (s *scanner) errf(format string, args ...any) error {
	return &ParseError{Line: s.line, Msg: fmt.Sprintf(format, args...)}
}

// skip consumes whitespace and '%' comments. Returns io.EOF at end of input.
func (s *scanner) skip() error {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '\n':
			s.line++
		case b == ' ' || b == '\t' || b == '\r' || b == ',':
		case b == '%':
			for {
				b, err = s.r.ReadByte()
				if err != nil {
					return err
				}
				if b == '\n' {
					s.line++
					break
				}
			}
		default:
			s.r.UnreadByte()
			return nil
		}
	}
}

// skipLine discards the rest of the current line (trailing commentary).
func (s *scanner) skipLine() {
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return
		}
		if b == '\n' {
			s.line++
			return
		}
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b == '_'
}

func isNumberStart(b byte) bool {
	return b >= '0' && b <= '9' || b == '-' || b == '+' || b == '.'
}

func isNumberByte(b byte) bool {
	return isNumberStart(b) || b == 'e' || b == 'E'
}

func (s *scanner) peek() (byte, error) {
	bs, err := s.r.Peek(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// word reads a run of letters.
func (s *scanner) word() (string, error) {
	var buf []byte
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			break
		}
		if !isWordByte(b) {
			s.r.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	if len(buf) == 0 {
		return "", s.errf("expected a keyword")
	}
	return string(buf), nil
}

// number reads one floating-point field.
func (s *scanner) number(what string) (float64, error) {
	if err := s.skip(); err != nil {
		return 0, s.errf("missing %s value", what)
	}
	var buf []byte
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			break
		}
		if !isNumberByte(b) {
			s.r.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	f, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		return 0, s.errf("unreadable %s value %q", what, string(buf))
	}
	return f, nil
}

// label reads a position code plus a quoted text, for a label anchored at
// the given sample index.
func (s *scanner) label(index int) (*Label, error) {
	if err := s.skip(); err != nil {
		return nil, s.errf("missing label position")
	}
	w, err := s.word()
	if err != nil {
		return nil, err
	}
	pos, ok := ParseAnchor(w)
	if !ok {
		return nil, s.errf("invalid label position %q", w)
	}
	if err := s.skip(); err != nil {
		return nil, s.errf("missing label text")
	}
	b, err := s.r.ReadByte()
	if err != nil || b != '"' {
		return nil, s.errf("label text must be enclosed in quote marks")
	}
	var text []byte
	for {
		b, err = s.r.ReadByte()
		if err != nil || b == '\n' {
			return nil, s.errf("reached end of line without closing quote mark")
		}
		if b == '"' {
			break
		}
		text = append(text, b)
	}
	return &Label{Index: index, Pos: pos, Text: string(text)}, nil
}

// record parses one 'p' ... 'q' block; the leading 'p' is already consumed.
func (s *scanner) record() (*Trajectory, error) {
	tr := &Trajectory{}

	if err := s.skip(); err != nil {
		return nil, s.errf("record missing 'q' terminator")
	}
	if b, err := s.peek(); err == nil && b == 'b' {
		s.word()
		lab, err := s.label(0)
		if err != nil {
			return nil, err
		}
		tr.Begin = lab
	}

	lastTicked := -1 // index of the sample the most recent 't' attached to
	for {
		if err := s.skip(); err != nil {
			return nil, s.errf("record missing 'q' terminator")
		}
		b, err := s.peek()
		if err != nil {
			return nil, s.errf("record missing 'q' terminator")
		}

		switch {
		case isNumberStart(b):
			var v mathutil.Vec3
			for i, what := range [...]string{"S1", "S2", "S3"} {
				f, err := s.number(what)
				if err != nil {
					return nil, err
				}
				v[i] = f
			}
			if len(tr.Points) >= s.lim.MaxPoints {
				return nil, &CapacityError{What: "trajectory points", Limit: s.lim.MaxPoints}
			}
			tr.Points = append(tr.Points, v)
			lastTicked = -1

		case isWordByte(b):
			w, err := s.word()
			if err != nil {
				return nil, err
			}
			switch w {
			case "q":
				return tr, s.endLabel(tr)
			case "t":
				if len(tr.Points) == 0 {
					return nil, s.errf("tick mark before any triplet")
				}
				if len(tr.Ticks) >= s.lim.MaxTicks {
					return nil, &CapacityError{What: "tick marks", Limit: s.lim.MaxTicks}
				}
				lastTicked = len(tr.Points) - 1
				tr.Ticks = append(tr.Ticks, lastTicked)
			case "l":
				if lastTicked < 0 {
					return nil, s.errf("tick label without a preceding tick mark")
				}
				if len(tr.TickLabels) >= s.lim.MaxLabels {
					return nil, &CapacityError{What: "labels", Limit: s.lim.MaxLabels}
				}
				lab, err := s.label(lastTicked)
				if err != nil {
					return nil, err
				}
				tr.TickLabels = append(tr.TickLabels, *lab)
				lastTicked = -1
			default:
				// Trailing commentary after a triplet.
				if len(tr.Points) == 0 {
					return nil, s.errf("unexpected %q in record", w)
				}
				s.skipLine()
			}

		default:
			return nil, s.errf("unexpected character %q in record", b)
		}
	}
}

// endLabel checks for an 'e' label following the 'q' terminator.
func (s *scanner) endLabel(tr *Trajectory) error {
	if err := s.skip(); err != nil {
		return nil // EOF right after q is fine
	}
	b, err := s.peek()
	if err != nil || b != 'e' {
		return nil
	}
	s.word()
	idx := len(tr.Points) - 1
	if idx < 0 {
		return s.errf("end label on a record with no points")
	}
	lab, err := s.label(idx)
	if err != nil {
		return err
	}
	tr.End = lab
	return nil
}
