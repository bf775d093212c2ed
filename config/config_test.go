package config

import "testing"

func TestValidateRejectsBadColorNum(t *testing.T) {
	cfg := Default()
	cfg.InputPath = "in.gds"
	cfg.ColoringDistanceNM = 100
	cfg.ColorNum = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ErrInvalidColorNum")
	}
}

func TestValidateRejectsNonPositiveDistance(t *testing.T) {
	cfg := Default()
	cfg.InputPath = "in.gds"
	cfg.ColorNum = 3
	cfg.ColoringDistanceNM = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ErrInvalidDistance")
	}
}

func TestValidateRejectsUnknownAlgorithm(t *testing.T) {
	cfg := Default()
	cfg.InputPath = "in.gds"
	cfg.ColorNum = 3
	cfg.ColoringDistanceNM = 100
	cfg.Algorithm = "NOT_REAL"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ErrUnknownAlgorithm")
	}
}

func TestValidateAcceptsDefaultsWithRequiredFields(t *testing.T) {
	cfg := Default()
	cfg.InputPath = "in.gds"
	cfg.ColorNum = 3
	cfg.ColoringDistanceNM = 100
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsUnknownStitchMethod(t *testing.T) {
	cfg := Default()
	cfg.InputPath = "in.gds"
	cfg.ColorNum = 3
	cfg.ColoringDistanceNM = 100
	cfg.StitchMethod = "NOT_REAL"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected ErrUnknownStitchMethod")
	}
}

func TestStitchConfigCarriesDistanceAndMethod(t *testing.T) {
	cfg := Default()
	cfg.ColoringDistanceNM = 250
	scfg := cfg.StitchConfig()
	if scfg.ColoringDistance != 250 {
		t.Fatalf("ColoringDistance = %d, want 250", scfg.ColoringDistance)
	}
	if scfg.Method != "BEI" {
		t.Fatalf("Method = %q, want BEI", scfg.Method)
	}
}

func TestLayerSetsConvertSlicesToLookups(t *testing.T) {
	cfg := Config{UncolorLayers: []int{1, 2}, PrecolorLayers: []int{10}}
	set := cfg.UncolorLayerSet()
	if !set[1] || !set[2] || set[3] {
		t.Fatalf("unexpected set: %v", set)
	}
	if !cfg.PrecolorLayerSet()[10] {
		t.Fatal("expected layer 10 in precolor set")
	}
}
