package dispersion

import (
	"fmt"
	"math"
)

// ReferenceWavelength is the wavelength all derived refractive indices are
// quoted at: 580nm, yellow visible light.
const ReferenceWavelength = 580.0

// Coefficients holds the six Sellmeier coefficients of a material.
// B1-B3 are dimensionless, C1-C3 are in nm².
// Literature usually quotes the C terms in µm²; see FromMicrometerSquared.
type Coefficients struct {
	B1, B2, B3 float64
	C1, C2, C3 float64
}

// FromMicrometerSquared builds Coefficients from resonance terms quoted in
// µm², as published on refractiveindex.info: (µm)² = 1e6 (nm)².
func FromMicrometerSquared(b1, b2, b3, c1, c2, c3 float64) Coefficients {
	const factor = 1e6
	return Coefficients{
		B1: b1, B2: b2, B3: b3,
		C1: c1 * factor, C2: c2 * factor, C3: c3 * factor,
	}
}

// IsZero reports whether all six coefficients are zero (vacuum)
func (c Coefficients) IsZero() bool {
	return c == Coefficients{}
}

// Slice returns the coefficients in their conventional [B1 B2 B3 C1 C2 C3] order
func (c Coefficients) Slice() []float64 {
	return []float64{c.B1, c.B2, c.B3, c.C1, c.C2, c.C3}
}

// FromSlice builds Coefficients from a [B1 B2 B3 C1 C2 C3] slice
func FromSlice(s []float64) (Coefficients, error) {
	if len(s) != 6 {
		return Coefficients{}, fmt.Errorf("expected 6 Sellmeier coefficients, got %d", len(s))
	}
	return Coefficients{B1: s[0], B2: s[1], B3: s[2], C1: s[3], C2: s[4], C3: s[5]}, nil
}

// DomainError reports a wavelength/coefficient combination for which the
// Sellmeier equation is mathematically undefined.
type DomainError struct {
	Wavelength float64 // Wavelength in nm at which evaluation failed
	Reason     string  // What made the result undefined
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("sellmeier: %s at %gnm", e.Reason, e.Wavelength)
}

// RefractiveIndex evaluates the Sellmeier dispersion equation
//
//	n² = 1 + Σ Bi·λ² / (λ² - Ci)
//
// at the given wavelength in nm. For all-zero coefficients (vacuum) the
// result is exactly 1. A wavelength hitting an absorption resonance
// (λ² == Ci) or a coefficient set producing a negative radicand yields a
// DomainError rather than an infinity or NaN.
//
// The function is pure and safe for concurrent use.
func RefractiveIndex(wavelengthNm float64, c Coefficients) (float64, error) {
	if wavelengthNm <= 0 {
		return 0, &DomainError{Wavelength: wavelengthNm, Reason: "wavelength must be positive"}
	}

	l2 := wavelengthNm * wavelengthNm
	terms := [3]struct{ b, c float64 }{
		{c.B1, c.C1},
		{c.B2, c.C2},
		{c.B3, c.C3},
	}

	sum := 1.0
	for _, term := range terms {
		denom := l2 - term.c
		if denom == 0 {
			return 0, &DomainError{Wavelength: wavelengthNm, Reason: "absorption resonance, λ² equals a C coefficient"}
		}
		sum += term.b * l2 / denom
	}

	if sum < 0 {
		return 0, &DomainError{Wavelength: wavelengthNm, Reason: "negative radicand, coefficients are not physical"}
	}

	return math.Sqrt(sum), nil
}

// Sample is one point on a dispersion curve.
type Sample struct {
	WavelengthNm float64
	Index        float64
}

// Curve evaluates the refractive index at evenly spaced wavelengths across
// [minNm, maxNm], inclusive of both endpoints. A DomainError anywhere in the
// range aborts the sweep.
func Curve(minNm, maxNm float64, samples int, c Coefficients) ([]Sample, error) {
	if samples < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", samples)
	}
	if minNm <= 0 || maxNm <= minNm {
		return nil, fmt.Errorf("invalid wavelength range [%g, %g]", minNm, maxNm)
	}

	step := (maxNm - minNm) / float64(samples-1)
	out := make([]Sample, 0, samples)
	for i := 0; i < samples; i++ {
		wavelength := minNm + float64(i)*step
		n, err := RefractiveIndex(wavelength, c)
		if err != nil {
			return nil, err
		}
		out = append(out, Sample{WavelengthNm: wavelength, Index: n})
	}
	return out, nil
}
