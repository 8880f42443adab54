// Package config holds all tunable render settings, loadable from a JSON
// file and overridable per-flag on the command line.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Arrow is a user-requested geodesic arrow between two Stokes vectors.
type Arrow struct {
	From      [3]float64 `json:"from"`
	To        [3]float64 `json:"to"`
	Dashed    bool       `json:"dashed"`
	Blackness float64    `json:"blackness"`
}

// Config holds every render setting. Angles are in degrees, lengths in
// sphere radii, thicknesses in PostScript points, the scale factor in
// millimetres.
type Config struct {
	// Viewpoint
	PsiDeg    float64 `json:"psi_deg"`
	PhiDeg    float64 `json:"phi_deg"`
	Normalize bool    `json:"normalize"`

	// Optional second coordinate frame overlaid on the first
	Overlay     bool    `json:"overlay"`
	DeltaPsiDeg float64 `json:"delta_psi_deg"`
	DeltaPhiDeg float64 `json:"delta_phi_deg"`

	// Sphere shading
	Shading        bool    `json:"shading"`
	LightPhiDeg    float64 `json:"light_phi_deg"`
	LightThetaDeg  float64 `json:"light_theta_deg"`
	WhitenessLower float64 `json:"whiteness_lower"`
	WhitenessUpper float64 `json:"whiteness_upper"`
	RhoSteps       int     `json:"rho_steps"`
	PhiSteps       int     `json:"phi_steps"`

	// Trajectory style
	Bezier        bool    `json:"bezier"`
	HiddenDashed  bool    `json:"hidden_dashed"`
	HiddenGray    float64 `json:"hidden_gray"`
	AsArrows      bool    `json:"as_arrows"`
	ReverseArrows bool    `json:"reverse_arrows"`
	PathThickness float64 `json:"path_thickness"`

	// Sphere and axis geometry
	EquatorSteps   int     `json:"equator_steps"`
	ScaleFactorMM  float64 `json:"scale_factor_mm"`
	AxisNegLen     float64 `json:"axis_neg_len"`
	AxisPosLen     float64 `json:"axis_pos_len"`
	ArrowThickness float64 `json:"arrow_thickness"`
	HeadAngleDeg   float64 `json:"head_angle_deg"`
	DrawAxesInside bool    `json:"draw_axes_inside"`

	// Extra geodesic arrows
	Arrows []Arrow `json:"arrows"`

	// Output
	AuxSource   string `json:"aux_source"`
	PreviewSize int    `json:"preview_size"`
	Verbose     bool   `json:"verbose"`
}

// Default returns the configuration used when no file and no flags are
// given.
func Default() Config {
	return Config{
		PsiDeg:         -40.0,
		PhiDeg:         15.0,
		Shading:        true,
		LightPhiDeg:    30.0,
		LightThetaDeg:  30.0,
		WhitenessLower: 0.75,
		WhitenessUpper: 0.99,
		RhoSteps:       50,
		PhiSteps:       80,
		HiddenDashed:   true,
		HiddenGray:     0.65,
		PathThickness:  1.0,
		EquatorSteps:   120,
		ScaleFactorMM:  6.0,
		AxisNegLen:     0.3,
		AxisPosLen:     1.5,
		ArrowThickness: 0.6,
		HeadAngleDeg:   30.0,
		PreviewSize:    800,
	}
}

// Load reads a JSON config file on top of the defaults. Fields not set
// in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Nil
// pointers mean the flag was not given on the command line, so zero
// remains expressible as an explicit override.
type Flags struct {
	Psi, Phi           *float64
	Normalize          *bool
	DeltaPsi, DeltaPhi *float64

	Shading                  *bool
	LightPhi, LightTheta     *float64
	WhitenessLo, WhitenessHi *float64
	RhoSteps, PhiSteps       *int

	Bezier        *bool
	HiddenDashed  *bool
	HiddenGray    *float64
	AsArrows      *bool
	ReverseArrows *bool
	PathThickness *float64

	ScaleFactor    *float64
	AxisNegLen     *float64
	AxisPosLen     *float64
	ArrowThickness *float64
	HeadAngle      *float64
	AxesInside     *bool

	Arrows []Arrow

	AuxSource   *string
	PreviewSize *int
	Verbose     *bool
}

// Resolve applies CLI flag overrides and sanity-clamps the result.
func (c *Config) Resolve(flags Flags) {
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setB := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&c.PsiDeg, flags.Psi)
	setF(&c.PhiDeg, flags.Phi)
	setB(&c.Normalize, flags.Normalize)
	if flags.DeltaPsi != nil || flags.DeltaPhi != nil {
		c.Overlay = true
	}
	setF(&c.DeltaPsiDeg, flags.DeltaPsi)
	setF(&c.DeltaPhiDeg, flags.DeltaPhi)

	setB(&c.Shading, flags.Shading)
	setF(&c.LightPhiDeg, flags.LightPhi)
	setF(&c.LightThetaDeg, flags.LightTheta)
	setF(&c.WhitenessLower, flags.WhitenessLo)
	setF(&c.WhitenessUpper, flags.WhitenessHi)
	setI(&c.RhoSteps, flags.RhoSteps)
	setI(&c.PhiSteps, flags.PhiSteps)

	setB(&c.Bezier, flags.Bezier)
	setB(&c.HiddenDashed, flags.HiddenDashed)
	setF(&c.HiddenGray, flags.HiddenGray)
	setB(&c.AsArrows, flags.AsArrows)
	setB(&c.ReverseArrows, flags.ReverseArrows)
	setF(&c.PathThickness, flags.PathThickness)

	setF(&c.ScaleFactorMM, flags.ScaleFactor)
	setF(&c.AxisNegLen, flags.AxisNegLen)
	setF(&c.AxisPosLen, flags.AxisPosLen)
	setF(&c.ArrowThickness, flags.ArrowThickness)
	setF(&c.HeadAngleDeg, flags.HeadAngle)
	setB(&c.DrawAxesInside, flags.AxesInside)

	c.Arrows = append(c.Arrows, flags.Arrows...)

	if flags.AuxSource != nil {
		c.AuxSource = *flags.AuxSource
	}
	setI(&c.PreviewSize, flags.PreviewSize)
	setB(&c.Verbose, flags.Verbose)

	// Clamps
	c.WhitenessLower = clamp01(c.WhitenessLower)
	c.WhitenessUpper = clamp01(c.WhitenessUpper)
	c.HiddenGray = clamp01(c.HiddenGray)
	if c.RhoSteps < 1 {
		c.RhoSteps = 1
	}
	if c.PhiSteps < 3 {
		c.PhiSteps = 3
	}
	if c.EquatorSteps < 8 {
		c.EquatorSteps = 8
	}
	if c.ScaleFactorMM <= 0 {
		c.ScaleFactorMM = Default().ScaleFactorMM
	}
	if c.PathThickness <= 0 {
		c.PathThickness = Default().PathThickness
	}
	if c.ArrowThickness <= 0 {
		c.ArrowThickness = Default().ArrowThickness
	}
	if c.PreviewSize < 16 {
		c.PreviewSize = Default().PreviewSize
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
