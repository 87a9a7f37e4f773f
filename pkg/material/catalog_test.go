package material

import (
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
)

func TestDefaultCatalogOrder(t *testing.T) {
	got := Default().Names()
	want := []string{
		"?", "Vacuum", "Air", "Quartz", "PMMA (plexiglass)", "Window glass", "Polycarbonate",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d names %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookupQuartz(t *testing.T) {
	coeffs, ok, err := Default().Lookup("Quartz")
	if err != nil || !ok {
		t.Fatalf("Lookup(Quartz) = ok=%v err=%v", ok, err)
	}

	// Exact stored values, nm² (the published µm² literals times 1e6)
	want := dispersion.Coefficients{
		B1: 0.6961663, B2: 0.4079426, B3: 0.8974794,
		C1: 4679.14826, C2: 13512.0631, C3: 97934002.5,
	}
	if coeffs != want {
		t.Errorf("Quartz = %+v, want %+v", coeffs, want)
	}
}

func TestLookupSentinel(t *testing.T) {
	coeffs, ok, err := Default().Lookup(Sentinel)
	if err != nil {
		t.Fatalf("sentinel lookup must not error, got %v", err)
	}
	if ok {
		t.Error("sentinel lookup must report no data")
	}
	if !coeffs.IsZero() {
		t.Errorf("sentinel coefficients = %+v, want zero", coeffs)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, _, err := Default().Lookup("Unobtainium")
	var unknownErr *UnknownMaterialError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownMaterialError, got %v", err)
	}
	if unknownErr.Name != "Unobtainium" {
		t.Errorf("error names %q, want Unobtainium", unknownErr.Name)
	}
}

func TestVacuumHasData(t *testing.T) {
	// Vacuum is a real entry with all-zero coefficients, not a sentinel
	coeffs, ok, err := Default().Lookup("Vacuum")
	if err != nil || !ok {
		t.Fatalf("Lookup(Vacuum) = ok=%v err=%v", ok, err)
	}
	if !coeffs.IsZero() {
		t.Errorf("Vacuum coefficients = %+v, want zero", coeffs)
	}
}

func TestMerge(t *testing.T) {
	extra := New([]Entry{
		{Name: "Flint glass", HasData: true, Coefficients: dispersion.Coefficients{B1: 1.34533359, C1: 9977.43871}},
		{Name: "Quartz", HasData: true, Coefficients: dispersion.Coefficients{B1: 42}},
	})
	merged := Default().Merge(extra)

	// New names append after the defaults
	names := merged.Names()
	if names[len(names)-1] != "Flint glass" {
		t.Errorf("last name = %q, want Flint glass", names[len(names)-1])
	}

	// Existing names keep their position but take the new data
	coeffs, _, err := merged.Lookup("Quartz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coeffs.B1 != 42 {
		t.Errorf("merged Quartz B1 = %v, want 42", coeffs.B1)
	}
	if names[3] != "Quartz" {
		t.Errorf("Quartz moved to position of %q", names[3])
	}

	// Default() itself is untouched
	coeffs, _, _ = Default().Lookup("Quartz")
	if coeffs.B1 != 0.6961663 {
		t.Errorf("Default catalog mutated: Quartz B1 = %v", coeffs.B1)
	}
}

func TestParseNanometerUnits(t *testing.T) {
	in := `
units: nm2
materials:
  - name: Test glass
    coefficients: [1.0, 0.2, 0.9, 6000.0, 20000.0, 100000000.0]
`
	catalog, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coeffs, ok, err := catalog.Lookup("Test glass")
	if err != nil || !ok {
		t.Fatalf("Lookup = ok=%v err=%v", ok, err)
	}
	if coeffs.C1 != 6000.0 {
		t.Errorf("nm2 C1 = %v, want 6000 (no conversion)", coeffs.C1)
	}
}

func TestParseMicrometerUnits(t *testing.T) {
	in := `
units: um2
materials:
  - name: Fused silica
    coefficients: [0.6961663, 0.4079426, 0.8974794, 4.67914826e-3, 1.35120631e-2, 97.9340025]
`
	catalog, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coeffs, _, err := catalog.Lookup("Fused silica")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// µm² literals scale by 1e6 into nm²
	if got, want := coeffs.C1, 4679.14826; !closeTo(got, want) {
		t.Errorf("C1 = %v, want %v", got, want)
	}
	if got, want := coeffs.C3, 97934002.5; !closeTo(got, want) {
		t.Errorf("C3 = %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad units", "units: furlongs2\nmaterials: []\n"},
		{"missing name", "materials:\n  - coefficients: [1, 2, 3, 4, 5, 6]\n"},
		{"short coefficients", "materials:\n  - name: X\n    coefficients: [1, 2, 3]\n"},
		{"unknown field", "spectra: true\nmaterials: []\n"},
		{"not yaml", "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.in)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func closeTo(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	scale := b
	if scale < 0 {
		scale = -scale
	}
	return diff <= scale*1e-12
}
