package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"psi_deg": 10, "hidden_gray": 0.5, "arrows": [{"from": [1,0,0], "to": [0,1,0]}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PsiDeg != 10 {
		t.Errorf("PsiDeg = %g, want 10 from the file", cfg.PsiDeg)
	}
	if cfg.HiddenGray != 0.5 {
		t.Errorf("HiddenGray = %g, want 0.5 from the file", cfg.HiddenGray)
	}
	if cfg.PhiDeg != 15 {
		t.Errorf("PhiDeg = %g, want the default 15", cfg.PhiDeg)
	}
	if !cfg.Shading {
		t.Error("Shading should stay on by default")
	}
	if len(cfg.Arrows) != 1 || cfg.Arrows[0].To != [3]float64{0, 1, 0} {
		t.Errorf("Arrows = %+v, want the one from the file", cfg.Arrows)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("malformed JSON should error")
	}
}

func TestResolveFlagPrecedence(t *testing.T) {
	cfg := Default()
	cfg.PsiDeg = 10 // as if set by a config file

	psi := 0.0 // explicit zero on the command line
	shading := false
	cfg.Resolve(Flags{Psi: &psi, Shading: &shading})

	if cfg.PsiDeg != 0 {
		t.Errorf("PsiDeg = %g, want the explicit flag value 0", cfg.PsiDeg)
	}
	if cfg.Shading {
		t.Error("Shading flag should override the default")
	}
	if cfg.PhiDeg != 15 {
		t.Errorf("PhiDeg = %g, want the untouched default 15", cfg.PhiDeg)
	}
}

func TestResolveOverlayImpliedByDelta(t *testing.T) {
	cfg := Default()
	d := 5.0
	cfg.Resolve(Flags{DeltaPsi: &d})
	if !cfg.Overlay {
		t.Error("a delta angle flag should enable the overlay frame")
	}
	if cfg.DeltaPsiDeg != 5 {
		t.Errorf("DeltaPsiDeg = %g, want 5", cfg.DeltaPsiDeg)
	}
}

func TestResolveClamps(t *testing.T) {
	cfg := Default()
	hi := 1.7
	steps := 0
	thickness := -1.0
	cfg.Resolve(Flags{WhitenessHi: &hi, RhoSteps: &steps, PathThickness: &thickness})

	if cfg.WhitenessUpper != 1 {
		t.Errorf("WhitenessUpper = %g, want clamped to 1", cfg.WhitenessUpper)
	}
	if cfg.RhoSteps != 1 {
		t.Errorf("RhoSteps = %d, want floored to 1", cfg.RhoSteps)
	}
	if cfg.PathThickness != Default().PathThickness {
		t.Errorf("PathThickness = %g, want the default restored", cfg.PathThickness)
	}
}

func TestResolveAppendsArrowFlags(t *testing.T) {
	cfg := Default()
	cfg.Arrows = []Arrow{{From: [3]float64{1, 0, 0}, To: [3]float64{0, 1, 0}}}
	cfg.Resolve(Flags{Arrows: []Arrow{{From: [3]float64{0, 0, 1}, To: [3]float64{1, 0, 0}}}})
	if len(cfg.Arrows) != 2 {
		t.Errorf("got %d arrows, want config and flag arrows combined", len(cfg.Arrows))
	}
}
