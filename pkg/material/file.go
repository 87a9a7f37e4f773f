package material

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
)

// fileCatalog mirrors the YAML layout of a user catalog file:
//
//	units: um2          # or nm2 (default)
//	materials:
//	  - name: Flint glass
//	    coefficients: [1.34533359, 0.209073176, 0.937357162, 0.00997743871, 0.0470450767, 111.886764]
type fileCatalog struct {
	Units     string         `yaml:"units"`
	Materials []fileMaterial `yaml:"materials"`
}

type fileMaterial struct {
	Name         string    `yaml:"name"`
	Coefficients []float64 `yaml:"coefficients"`
}

// Parse reads a YAML material catalog. C terms are converted to nm² when the
// file declares um2 units; adding a material this way is a data-only change.
func Parse(r io.Reader) (*Catalog, error) {
	var file fileCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse material catalog: %w", err)
	}

	switch file.Units {
	case "", "nm2", "um2":
	default:
		return nil, fmt.Errorf("unsupported units %q, want nm2 or um2", file.Units)
	}

	entries := make([]Entry, 0, len(file.Materials))
	for _, m := range file.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("material with empty name")
		}
		coeffs, err := dispersion.FromSlice(m.Coefficients)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name, err)
		}
		if file.Units == "um2" {
			coeffs = dispersion.FromMicrometerSquared(
				coeffs.B1, coeffs.B2, coeffs.B3, coeffs.C1, coeffs.C2, coeffs.C3)
		}
		entries = append(entries, Entry{Name: m.Name, Coefficients: coeffs, HasData: true})
	}
	return New(entries), nil
}

// LoadFile parses the YAML catalog at path
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
