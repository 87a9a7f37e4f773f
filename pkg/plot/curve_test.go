package plot

import (
	"errors"
	"testing"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
	"github.com/df07/go-optics-workbench/pkg/material"
)

func TestDispersionCurveDimensions(t *testing.T) {
	coeffs, _, err := material.Default().Lookup("Window glass")
	if err != nil {
		t.Fatalf("catalog lookup: %v", err)
	}

	img, err := DispersionCurve(coeffs, Options{Width: 400, Height: 300, Title: "Window glass"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 300 {
		t.Errorf("image is %dx%d, want 400x300", bounds.Dx(), bounds.Dy())
	}
}

func TestDispersionCurveDefaults(t *testing.T) {
	// Vacuum's flat n=1 curve must still render, not divide by a zero y span
	img, err := DispersionCurve(dispersion.Coefficients{}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 500 {
		t.Errorf("default image is %dx%d, want 800x500", bounds.Dx(), bounds.Dy())
	}
}

func TestDispersionCurveResonance(t *testing.T) {
	// A resonance inside the visible sweep is an error, not a broken image
	resonant := dispersion.Coefficients{B1: 1, C1: 580 * 580}
	_, err := DispersionCurve(resonant, Options{Samples: 201})
	if err == nil {
		t.Fatal("expected error for resonant coefficients")
	}
	var domainErr *dispersion.DomainError
	if !errors.As(err, &domainErr) {
		t.Errorf("expected wrapped *DomainError, got %v", err)
	}
}
