package workbench

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
	"github.com/df07/go-optics-workbench/pkg/element"
	"github.com/df07/go-optics-workbench/pkg/material"
)

func TestMakeAndList(t *testing.T) {
	w := New()

	mirror := w.MakeMirror([]string{"Box"})
	absorber := w.MakeAbsorber([]string{"Wall"})
	lens, err := w.MakeLens([]string{"Cylinder"}, "Quartz")
	require.NoError(t, err)
	theory := w.MakeTheoreticalLens([]string{"Disk"}, 60)

	records := w.List()
	require.Len(t, records, 4)

	// Creation order is preserved
	assert.Equal(t, mirror.ID, records[0].Record().ID)
	assert.Equal(t, absorber.ID, records[1].Record().ID)
	assert.Equal(t, lens.ID, records[2].Record().ID)
	assert.Equal(t, theory.ID, records[3].Record().ID)

	got, ok := w.Get(lens.ID)
	require.True(t, ok)
	assert.Equal(t, lens, got)
}

func TestMakeLensDefaultMaterial(t *testing.T) {
	w := New()
	lens, err := w.MakeLens([]string{"Cylinder"}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLensMaterial, lens.Material)
	assert.InDelta(t, 1.5171, lens.RefractionIndex, 1e-3)
}

func TestMakeLensUnknownMaterial(t *testing.T) {
	w := New()
	lens, err := w.MakeLens(nil, "Mithril")
	require.NoError(t, err)
	assert.Equal(t, material.Sentinel, lens.Material)
	assert.False(t, lens.HasSellmeier)
}

func TestRemove(t *testing.T) {
	w := New()
	mirror := w.MakeMirror(nil)

	assert.True(t, w.Remove(mirror.ID))
	assert.False(t, w.Remove(mirror.ID))
	assert.Empty(t, w.List())
}

func TestUpdateLens(t *testing.T) {
	w := New()
	lens, err := w.MakeLens(nil, "Quartz")
	require.NoError(t, err)

	require.NoError(t, w.UpdateLens(lens.ID, element.RefractionIndexChanged{Value: 1.33}))
	assert.Equal(t, material.Sentinel, lens.Material)
	assert.Equal(t, 1.33, lens.RefractionIndex)
}

func TestUpdateLensErrors(t *testing.T) {
	w := New()
	mirror := w.MakeMirror(nil)

	assert.Error(t, w.UpdateLens("missing", element.RefractionIndexChanged{Value: 1.5}))
	assert.Error(t, w.UpdateLens(mirror.ID, element.RefractionIndexChanged{Value: 1.5}))
}

func TestUpdateLensSerialized(t *testing.T) {
	w := New()
	lens, err := w.MakeLens(nil, "Window glass")
	require.NoError(t, err)

	quartz, _, err := material.Default().Lookup("Quartz")
	require.NoError(t, err)
	window, _, err := material.Default().Lookup("Window glass")
	require.NoError(t, err)

	// Hammer the same record from several goroutines; the per-lens lock keeps
	// each propagation atomic
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		coeffs := quartz
		if i%2 == 0 {
			coeffs = window
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := w.UpdateLens(lens.ID, element.SellmeierChanged{Coefficients: coeffs}); err != nil {
					t.Errorf("update failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// Whichever write landed last, the triple must be quiescent-consistent
	want, err := dispersion.RefractiveIndex(dispersion.ReferenceWavelength, lens.Sellmeier)
	require.NoError(t, err)
	assert.Equal(t, want, lens.RefractionIndex)
	assert.True(t, lens.Sellmeier == quartz || lens.Sellmeier == window)
}

func TestWithCatalog(t *testing.T) {
	custom := material.Default().Merge(material.New([]material.Entry{
		{Name: "Flint glass", HasData: true, Coefficients: dispersion.Coefficients{B1: 1.345, C1: 9977}},
	}))
	w := New(WithCatalog(custom))

	assert.Contains(t, w.Materials(), "Flint glass")

	lens, err := w.MakeLens(nil, "Flint glass")
	require.NoError(t, err)
	assert.Equal(t, "Flint glass", lens.Material)
}

func TestMaterialsOrder(t *testing.T) {
	w := New()
	names := w.Materials()
	require.NotEmpty(t, names)
	assert.Equal(t, material.Sentinel, names[0])
	assert.Equal(t, material.Default().Names(), names)
}
