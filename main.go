package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
	"github.com/df07/go-optics-workbench/pkg/material"
	"github.com/df07/go-optics-workbench/pkg/plot"
)

func main() {
	// Parse command line flags
	materialName := flag.String("material", "Window glass", "Catalog material to evaluate")
	wavelength := flag.Float64("wavelength", dispersion.ReferenceWavelength, "Wavelength in nm")
	catalogPath := flag.String("catalog", "", "Optional YAML material catalog merged over the built-in one")
	list := flag.Bool("list", false, "List the material catalog and exit")
	curve := flag.Bool("curve", false, "Render a dispersion curve PNG")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Optics Workbench")
		fmt.Println("Usage: opticsbench [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Computes the Sellmeier refractive index of a catalog material at the")
		fmt.Println("given wavelength. With -curve, a dispersion curve over the visible")
		fmt.Println("range is saved to output/<material>/curve_<timestamp>.png")
		return
	}

	catalog, err := buildCatalog(*catalogPath)
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	if *list {
		printCatalog(catalog)
		return
	}

	coeffs, hasData, err := catalog.Lookup(*materialName)
	if err != nil {
		fmt.Printf("Unknown material %q. Use -list to see the catalog.\n", *materialName)
		os.Exit(1)
	}
	if !hasData {
		fmt.Printf("Material %q carries no dispersion data.\n", *materialName)
		os.Exit(1)
	}

	index, err := dispersion.RefractiveIndex(*wavelength, coeffs)
	if err != nil {
		fmt.Printf("Error computing refractive index: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: n(%gnm) = %.6f\n", *materialName, *wavelength, index)

	if !*curve {
		return
	}

	// Create output directory for this material
	outputDir := filepath.Join("output", safeName(*materialName))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	img, err := plot.DispersionCurve(coeffs, plot.Options{Title: *materialName})
	if err != nil {
		fmt.Printf("Error rendering curve: %v\n", err)
		os.Exit(1)
	}

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("curve_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Curve saved as %s\n", filename)
}

// buildCatalog merges an optional user YAML catalog over the built-in one
func buildCatalog(path string) (*material.Catalog, error) {
	catalog := material.Default()
	if path == "" {
		return catalog, nil
	}
	extra, err := material.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return catalog.Merge(extra), nil
}

func printCatalog(catalog *material.Catalog) {
	fmt.Println("Materials (C coefficients in nm²):")
	for _, entry := range catalog.Entries() {
		if !entry.HasData {
			fmt.Printf("  %-20s (no data, user-supplied coefficients)\n", entry.Name)
			continue
		}
		c := entry.Coefficients
		fmt.Printf("  %-20s B=(%g, %g, %g) C=(%g, %g, %g)\n",
			entry.Name, c.B1, c.B2, c.B3, c.C1, c.C2, c.C3)
	}
}

// safeName turns a material name into a directory name
func safeName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "material"
	}
	return b.String()
}
