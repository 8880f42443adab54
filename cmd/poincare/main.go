package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"poincare-mapper/internal/config"
	"poincare-mapper/internal/eps"
	"poincare-mapper/internal/mathutil"
	"poincare-mapper/internal/mpost"
	"poincare-mapper/internal/preview"
	"poincare-mapper/internal/scene"
	"poincare-mapper/internal/shading"
	"poincare-mapper/internal/sphere"
	"poincare-mapper/internal/stokes"
)

// arrowList collects repeated -arrow flags. Each value is six
// comma-separated Stokes coordinates, optionally followed by "dashed"
// and/or a blackness in [0,1]:
//
//	-arrow 1,0,0,0,1,0
//	-arrow 0,0,1,1,0,0,dashed,0.5
type arrowList []config.Arrow

func (a *arrowList) String() string { return fmt.Sprintf("%d arrows", len(*a)) }

func (a *arrowList) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) < 6 {
		return fmt.Errorf("need 6 coordinates, got %d", len(parts))
	}
	var ar config.Arrow
	ar.Blackness = 1.0
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return fmt.Errorf("coordinate %d: %v", i+1, err)
		}
		if i < 3 {
			ar.From[i] = v
		} else {
			ar.To[i-3] = v
		}
	}
	for _, opt := range parts[6:] {
		opt = strings.TrimSpace(opt)
		if opt == "dashed" {
			ar.Dashed = true
			continue
		}
		v, err := strconv.ParseFloat(opt, 64)
		if err != nil {
			return fmt.Errorf("arrow option %q: want \"dashed\" or a blackness value", opt)
		}
		ar.Blackness = v
	}
	*a = append(*a, ar)
	return nil
}

// primeLabel marks a second-frame axis label with a prime, inside the
// math delimiters when there are any: "$S_1$" becomes "$S_1'$".
func primeLabel(text string) string {
	if i := strings.LastIndex(text, "$"); i > 0 {
		return text[:i] + "'" + text[i:]
	}
	return text + "'"
}

// parseAxisLabel splits "text@pos" into the TeX label and its anchor.
func parseAxisLabel(s string, def stokes.Anchor) (string, stokes.Anchor, error) {
	text, pos, ok := strings.Cut(s, "@")
	if !ok {
		return s, def, nil
	}
	a, ok := stokes.ParseAnchor(pos)
	if !ok {
		return "", 0, fmt.Errorf("unknown label position %q", pos)
	}
	return text, a, nil
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to JSON config file")
	inFile := flag.String("in", "", "Stokes trajectory input file (default: sphere only)")
	outFile := flag.String("out", "poincare.mp", "MetaPost output file")

	psi := flag.Float64("psi", 0, "Viewpoint rotation about S3 in degrees (default: -40)")
	phi := flag.Float64("phi", 0, "Viewpoint rotation about S2 in degrees (default: 15)")
	normalize := flag.Bool("normalize", false, "Project each Stokes vector onto the unit sphere")
	dpsi := flag.Float64("dpsi", 0, "Second frame: extra rotation about S3 in degrees")
	dphi := flag.Float64("dphi", 0, "Second frame: extra rotation about S2 in degrees")

	shade := flag.Bool("shading", true, "Shade the sphere")
	lightPhi := flag.Float64("lightphi", 0, "Light source azimuth in degrees (default: 30)")
	lightTheta := flag.Float64("lighttheta", 0, "Light source polar angle in degrees (default: 30)")
	wLo := flag.Float64("wlo", 0, "Whiteness in full shadow (default: 0.75)")
	wHi := flag.Float64("whi", 0, "Whiteness in full light (default: 0.99)")
	rhoSteps := flag.Int("rhosteps", 0, "Radial shading subdivisions (default: 50)")
	phiSteps := flag.Int("phisteps", 0, "Tangential shading subdivisions (default: 80)")

	bezier := flag.Bool("bezier", false, "Join trajectory points with bezier curves")
	hiddenDashed := flag.Bool("hiddendashed", true, "Draw hidden trajectory parts dashed instead of gray")
	hiddenGray := flag.Float64("hiddengray", 0, "Whiteness of hidden parts when not dashed (default: 0.65)")
	asArrows := flag.Bool("arrows", false, "Finish each trajectory with an arrowhead")
	reverseArrows := flag.Bool("reversearrows", false, "Point trajectory arrowheads backwards")
	pathThickness := flag.Float64("paththickness", 0, "Trajectory pen in points (default: 1.0)")

	scale := flag.Float64("scale", 0, "Sphere radius in millimetres (default: 6.0)")
	axisNeg := flag.Float64("axisneg", 0, "Axis length behind the origin in radii (default: 0.3)")
	axisPos := flag.Float64("axispos", 0, "Axis length past the sphere in radii (default: 1.5)")
	arrowThickness := flag.Float64("arrowthickness", 0, "Axis and arrow pen in points (default: 0.6)")
	headAngle := flag.Float64("headangle", 0, "Arrowhead opening angle in degrees (default: 30)")
	axesInside := flag.Bool("axesinside", false, "Also draw the axis parts inside the sphere, dashed")

	s1Label := flag.String("s1label", "$S_1$", "S1 axis label, optionally with @position")
	s2Label := flag.String("s2label", "$S_2$", "S2 axis label, optionally with @position")
	s3Label := flag.String("s3label", "$S_3$", "S3 axis label, optionally with @position")

	auxSource := flag.String("aux", "", "MetaPost file to input at the end of the figure")
	genEPS := flag.Bool("eps", false, "Run mpost/tex/dvips to produce an EPS file")
	previewFile := flag.String("preview", "", "Also write a WebP preview to this path")
	previewSize := flag.Int("previewsize", 0, "Preview canvas size in pixels (default: 800)")
	verbose := flag.Bool("v", false, "Verbose progress output")

	var arrows arrowList
	flag.Var(&arrows, "arrow", "Geodesic arrow \"a1,a2,a3,b1,b2,b3[,dashed][,blackness]\" (repeatable)")

	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override the config file. Only flags actually given
	// count, so explicit zeros work.
	var fl config.Flags
	fl.Arrows = arrows
	var labelSet [3]bool
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "s1label":
			labelSet[0] = true
		case "s2label":
			labelSet[1] = true
		case "s3label":
			labelSet[2] = true
		case "psi":
			fl.Psi = psi
		case "phi":
			fl.Phi = phi
		case "normalize":
			fl.Normalize = normalize
		case "dpsi":
			fl.DeltaPsi = dpsi
		case "dphi":
			fl.DeltaPhi = dphi
		case "shading":
			fl.Shading = shade
		case "lightphi":
			fl.LightPhi = lightPhi
		case "lighttheta":
			fl.LightTheta = lightTheta
		case "wlo":
			fl.WhitenessLo = wLo
		case "whi":
			fl.WhitenessHi = wHi
		case "rhosteps":
			fl.RhoSteps = rhoSteps
		case "phisteps":
			fl.PhiSteps = phiSteps
		case "bezier":
			fl.Bezier = bezier
		case "hiddendashed":
			fl.HiddenDashed = hiddenDashed
		case "hiddengray":
			fl.HiddenGray = hiddenGray
		case "arrows":
			fl.AsArrows = asArrows
		case "reversearrows":
			fl.ReverseArrows = reverseArrows
		case "paththickness":
			fl.PathThickness = pathThickness
		case "scale":
			fl.ScaleFactor = scale
		case "axisneg":
			fl.AxisNegLen = axisNeg
		case "axispos":
			fl.AxisPosLen = axisPos
		case "arrowthickness":
			fl.ArrowThickness = arrowThickness
		case "headangle":
			fl.HeadAngle = headAngle
		case "axesinside":
			fl.AxesInside = axesInside
		case "aux":
			fl.AuxSource = auxSource
		case "previewsize":
			fl.PreviewSize = previewSize
		case "v":
			fl.Verbose = verbose
		}
	})
	cfg.Resolve(fl)

	// Load trajectories
	var trajectories []*stokes.Trajectory
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input: %v\n", err)
			os.Exit(1)
		}
		trajectories, err = stokes.Scan(f, stokes.DefaultLimits())
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *inFile, err)
			os.Exit(1)
		}
	}

	if cfg.Verbose {
		points := 0
		for _, tr := range trajectories {
			points += len(tr.Points)
		}
		fmt.Printf("Trajectories: %d (%d points)\n", len(trajectories), points)
		fmt.Printf("Viewpoint: psi=%g phi=%g normalize=%v\n", cfg.PsiDeg, cfg.PhiDeg, cfg.Normalize)
	}

	// Assemble the map
	view := sphere.NewView(mathutil.Deg2Rad(cfg.PsiDeg), mathutil.Deg2Rad(cfg.PhiDeg), cfg.Normalize)

	m := scene.Map{
		View:           view,
		EquatorSteps:   cfg.EquatorSteps,
		Trajectories:   trajectories,
		ArrowThickness: cfg.ArrowThickness,
		AxisThickness:  cfg.ArrowThickness,
		DrawAxesInside: cfg.DrawAxesInside,
		Style: scene.PathStyle{
			Thickness:     cfg.PathThickness,
			Bezier:        cfg.Bezier,
			HiddenDashed:  cfg.HiddenDashed,
			HiddenGray:    cfg.HiddenGray,
			AsArrows:      cfg.AsArrows,
			ReverseArrows: cfg.ReverseArrows,
		},
	}

	if cfg.Overlay {
		ov := view.Rotated(mathutil.Deg2Rad(cfg.DeltaPsiDeg), mathutil.Deg2Rad(cfg.DeltaPhiDeg))
		m.Overlay = &ov
	}

	if cfg.Shading {
		m.Shading = shading.Params{
			RhoSteps:    cfg.RhoSteps,
			PhiSteps:    cfg.PhiSteps,
			PhiSource:   mathutil.Deg2Rad(cfg.LightPhiDeg),
			ThetaSource: mathutil.Deg2Rad(cfg.LightThetaDeg),
			Lower:       cfg.WhitenessLower,
			Upper:       cfg.WhitenessUpper,
		}
	}

	for _, a := range cfg.Arrows {
		m.Arrows = append(m.Arrows, scene.ArrowSpec{
			A:         mathutil.Vec3(a.From),
			B:         mathutil.Vec3(a.To),
			Dashed:    a.Dashed,
			Blackness: a.Blackness,
		})
	}

	dirs := [3]mathutil.Vec3{mathutil.AxisS1, mathutil.AxisS2, mathutil.AxisS3}
	labels := [3]string{*s1Label, *s2Label, *s3Label}
	defPos := [3]stokes.Anchor{stokes.AnchorBottom, stokes.AnchorRight, stokes.AnchorTop}
	for i := range dirs {
		if cfg.Normalize && !labelSet[i] {
			// Normalized coordinates are ratios of the Stokes parameters.
			labels[i] = fmt.Sprintf("$S_%d/S_0$", i+1)
		}
		text, pos, err := parseAxisLabel(labels[i], defPos[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -s%dlabel: %v\n", i+1, err)
			os.Exit(1)
		}
		spec := scene.AxisSpec{
			Axis:     sphere.Axis{Dir: dirs[i], NegLen: cfg.AxisNegLen, PosLen: cfg.AxisPosLen},
			Label:    text,
			LabelPos: pos,
		}
		m.Axes[i] = spec
		if cfg.Overlay {
			spec.Label = primeLabel(text)
			m.OverlayAxes = append(m.OverlayAxes, spec)
		}
	}

	prims, err := m.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building map: %v\n", err)
		os.Exit(1)
	}

	// Emit MetaPost. The source is rendered fully in memory first, so a
	// failed run never leaves a truncated output file behind.
	w := mpost.Writer{
		OutFilename:    *outFile,
		InFilename:     *inFile,
		CommandLine:    os.Args,
		ScaleFactor:    cfg.ScaleFactorMM,
		ArrowHeadAngle: cfg.HeadAngleDeg,
		AuxSource:      cfg.AuxSource,
	}
	src, err := w.Render(prims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering MetaPost: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outFile, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *outFile, err)
		os.Exit(1)
	}
	if cfg.Verbose {
		fmt.Printf("MetaPost: %s (%d primitives)\n", *outFile, len(prims))
	}

	if *previewFile != "" {
		pf, err := os.Create(*previewFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating preview: %v\n", err)
			os.Exit(1)
		}
		r := preview.Renderer{Size: cfg.PreviewSize, ScaleFactorMM: cfg.ScaleFactorMM}
		err = r.Encode(pf, prims)
		if cerr := pf.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
			os.Exit(1)
		}
		if cfg.Verbose {
			fmt.Printf("Preview: %s (%dx%d)\n", *previewFile, cfg.PreviewSize, cfg.PreviewSize)
		}
	}

	if *genEPS {
		g := eps.Generator{Dir: filepath.Dir(*outFile), Verbose: cfg.Verbose}
		epsPath, bbox, err := g.Generate(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating EPS: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("EPS: %s (bounding box %s)\n", epsPath, bbox)
	}
}
