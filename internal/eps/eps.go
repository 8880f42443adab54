// Package eps drives the external MetaPost and TeX toolchain to turn a
// generated .mp source file into an encapsulated PostScript figure.
// It shells out to mpost, tex and dvips, which must be on PATH.
package eps

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// BoundingBox is the figure extent in PostScript points, as reported by
// the %%BoundingBox comment of the final EPS file.
type BoundingBox struct {
	LLX, LLY, URX, URY int
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%d %d %d %d", b.LLX, b.LLY, b.URX, b.URY)
}

// Generator runs the mpost/tex/dvips pipeline inside Dir.
type Generator struct {
	Dir     string
	Verbose bool
	Log     io.Writer // tool output when Verbose; defaults to os.Stderr
}

// Generate compiles mpFile (a path inside Dir, or relative to it) and
// returns the path of the produced EPS file and its bounding box.
func (g *Generator) Generate(mpFile string) (string, BoundingBox, error) {
	base := strings.TrimSuffix(filepath.Base(mpFile), ".mp")

	if err := g.run("mpost", "-interaction=nonstopmode", filepath.Base(mpFile)); err != nil {
		return "", BoundingBox{}, err
	}

	// Plain TeX wrapper that embeds the MetaPost figure, so btex labels
	// come out typeset in the final PostScript.
	wrapName := base + "-eps"
	wrapper := fmt.Sprintf("\\input epsf\n\\nopagenumbers\n\\epsfbox{%s.1}\n\\bye\n", base)
	if err := os.WriteFile(filepath.Join(g.Dir, wrapName+".tex"), []byte(wrapper), 0644); err != nil {
		return "", BoundingBox{}, fmt.Errorf("eps: write tex wrapper: %w", err)
	}

	if err := g.run("tex", "-interaction=nonstopmode", wrapName+".tex"); err != nil {
		return "", BoundingBox{}, err
	}

	epsName := base + ".eps"
	if err := g.run("dvips", "-q", "-E", wrapName+".dvi", "-o", epsName); err != nil {
		return "", BoundingBox{}, err
	}

	epsPath := filepath.Join(g.Dir, epsName)
	f, err := os.Open(epsPath)
	if err != nil {
		return "", BoundingBox{}, fmt.Errorf("eps: open %s: %w", epsName, err)
	}
	defer f.Close()

	bbox, err := ScanBoundingBox(f)
	if err != nil {
		return "", BoundingBox{}, fmt.Errorf("eps: %s: %w", epsName, err)
	}
	return epsPath, bbox, nil
}

func (g *Generator) run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = g.Dir
	if g.Verbose {
		log := g.Log
		if log == nil {
			log = os.Stderr
		}
		cmd.Stdout = log
		cmd.Stderr = log
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("eps: %s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// ScanBoundingBox finds the first resolved %%BoundingBox comment in a
// PostScript stream. A "(atend)" placeholder is skipped in favor of the
// trailer comment.
func ScanBoundingBox(r io.Reader) (BoundingBox, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		rest, ok := strings.CutPrefix(line, "%%BoundingBox:")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, "(atend)") {
			continue
		}
		var b BoundingBox
		if _, err := fmt.Sscanf(rest, "%d %d %d %d", &b.LLX, &b.LLY, &b.URX, &b.URY); err != nil {
			return BoundingBox{}, fmt.Errorf("malformed bounding box %q: %w", line, err)
		}
		return b, nil
	}
	if err := sc.Err(); err != nil {
		return BoundingBox{}, err
	}
	return BoundingBox{}, fmt.Errorf("no bounding box comment found")
}
