// Package plot renders dispersion curves as images.
package plot

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
)

// Options control the rendered dispersion curve
type Options struct {
	Width, Height int     // Image size in pixels (default 800x500)
	MinWavelength float64 // Sweep start in nm (default 380, violet)
	MaxWavelength float64 // Sweep end in nm (default 780, deep red)
	Samples       int     // Curve resolution (default 200)
	Title         string  // Optional title drawn at the top
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 500
	}
	if o.MinWavelength <= 0 {
		o.MinWavelength = 380
	}
	if o.MaxWavelength <= o.MinWavelength {
		o.MaxWavelength = 780
	}
	if o.Samples < 2 {
		o.Samples = 200
	}
	return o
}

// DispersionCurve plots n(λ) for the given coefficients over the configured
// wavelength range. An absorption resonance inside the range surfaces as the
// dispersion engine's DomainError rather than a broken plot.
func DispersionCurve(c dispersion.Coefficients, opts Options) (image.Image, error) {
	opts = opts.withDefaults()

	samples, err := dispersion.Curve(opts.MinWavelength, opts.MaxWavelength, opts.Samples, c)
	if err != nil {
		return nil, fmt.Errorf("failed to sample dispersion curve: %w", err)
	}

	minIndex, maxIndex := samples[0].Index, samples[0].Index
	for _, s := range samples {
		if s.Index < minIndex {
			minIndex = s.Index
		}
		if s.Index > maxIndex {
			maxIndex = s.Index
		}
	}
	// Flat curves (vacuum) still need a visible y range
	if maxIndex-minIndex < 1e-6 {
		minIndex -= 0.05
		maxIndex += 0.05
	}

	const margin = 60.0
	plotW := float64(opts.Width) - 2*margin
	plotH := float64(opts.Height) - 2*margin

	toX := func(wavelength float64) float64 {
		return margin + plotW*(wavelength-opts.MinWavelength)/(opts.MaxWavelength-opts.MinWavelength)
	}
	toY := func(index float64) float64 {
		return float64(opts.Height) - margin - plotH*(index-minIndex)/(maxIndex-minIndex)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Axes
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, margin, margin, float64(opts.Height)-margin)
	dc.DrawLine(margin, float64(opts.Height)-margin, float64(opts.Width)-margin, float64(opts.Height)-margin)
	dc.Stroke()

	// Tick labels at the corners of the plot area
	dc.DrawStringAnchored(fmt.Sprintf("%.0fnm", opts.MinWavelength), margin, float64(opts.Height)-margin+15, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0fnm", opts.MaxWavelength), float64(opts.Width)-margin, float64(opts.Height)-margin+15, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.4f", minIndex), margin-5, float64(opts.Height)-margin, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.4f", maxIndex), margin-5, margin, 1, 0.5)
	if opts.Title != "" {
		dc.DrawStringAnchored(opts.Title, float64(opts.Width)/2, margin/2, 0.5, 0.5)
	}

	// Reference wavelength marker, if inside the sweep
	if dispersion.ReferenceWavelength > opts.MinWavelength && dispersion.ReferenceWavelength < opts.MaxWavelength {
		dc.SetRGB(0.7, 0.7, 0.7)
		dc.SetDash(4, 4)
		x := toX(dispersion.ReferenceWavelength)
		dc.DrawLine(x, margin, x, float64(opts.Height)-margin)
		dc.Stroke()
		dc.SetDash()
	}

	// The curve itself
	dc.SetRGB(0.1, 0.3, 0.8)
	dc.SetLineWidth(2)
	for i, s := range samples {
		if i == 0 {
			dc.MoveTo(toX(s.WavelengthNm), toY(s.Index))
		} else {
			dc.LineTo(toX(s.WavelengthNm), toY(s.Index))
		}
	}
	dc.Stroke()

	return dc.Image(), nil
}
