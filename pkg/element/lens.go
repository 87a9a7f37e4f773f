package element

import (
	"fmt"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
	"github.com/df07/go-optics-workbench/pkg/material"
)

// Change is a field-change notification for a lens record. Exactly one of
// the three lens fields changes per notification.
type Change interface {
	isChange()
}

// MaterialChanged selects a catalog material by name
type MaterialChanged struct {
	Name string
}

// SellmeierChanged replaces the raw coefficients directly
type SellmeierChanged struct {
	Coefficients dispersion.Coefficients
}

// RefractionIndexChanged sets the derived index by explicit user entry
type RefractionIndexChanged struct {
	Value float64
}

func (MaterialChanged) isChange()        {}
func (SellmeierChanged) isChange()       {}
func (RefractionIndexChanged) isChange() {}

// guardState is the reconciler's re-entrancy guard. While a change is
// propagating, the writes it makes echo back through the notification path
// and must be ignored.
type guardState int

const (
	guardIdle guardState = iota
	guardPropagating
)

// Lens couples tagged geometry with a material selection, raw Sellmeier
// coefficients and the refractive index derived at the reference wavelength.
// At rest the triple is consistent: RefractionIndex matches the coefficients
// at 580nm, and a catalog material's coefficients match the catalog.
//
// A Lens is not safe for concurrent Apply calls; callers serialize changes
// per record (the workbench package does this with a per-lens lock).
type Lens struct {
	Element
	Material        string                  // Catalog key, or the sentinel for user-supplied data
	Sellmeier       dispersion.Coefficients // Coefficients currently in effect
	HasSellmeier    bool                    // False when no coefficients are set (sentinel states)
	RefractionIndex float64                 // Derived index at 580nm, or the last explicit value

	catalog *material.Catalog
	guard   guardState
}

// NewLens tags the given geometry as a refractive lens and selects the named
// material through the reconciler. A name missing from the catalog falls back
// to the sentinel, matching how an unknown material behaves in the selector.
func NewLens(base []string, materialName string, catalog *material.Catalog) (*Lens, error) {
	l := &Lens{
		Element:         newElement(TypeLens, base),
		Material:        material.Sentinel,
		RefractionIndex: 1,
		catalog:         catalog,
	}
	if !catalog.Has(materialName) {
		materialName = material.Sentinel
	}
	if err := l.Apply(MaterialChanged{Name: materialName}); err != nil {
		return nil, err
	}
	return l, nil
}

// Apply reacts to a single field-change notification and rewrites the
// dependent fields so the (Material, Sellmeier, RefractionIndex) triple stays
// consistent:
//
//   - material selected: coefficients come from the catalog, index is
//     recomputed at 580nm (sentinel: coefficients clear, index keeps its
//     last explicit value)
//   - coefficients edited: index is recomputed, material selection stays
//   - index edited: material demotes to the sentinel, coefficients clear
//
// A notification arriving while a previous one is still propagating is
// ignored; that swallows the echo of the reconciler's own writes. A
// dispersion.DomainError surfaces to the caller with the guard reset, so the
// record is never left locked mid-propagation.
func (l *Lens) Apply(change Change) error {
	if l.guard == guardPropagating {
		return nil
	}
	l.guard = guardPropagating
	defer func() { l.guard = guardIdle }()

	switch ch := change.(type) {
	case MaterialChanged:
		coeffs, hasData, err := l.catalog.Lookup(ch.Name)
		if err != nil {
			return err
		}
		l.setMaterial(ch.Name)
		if !hasData {
			// No data to derive from: skip the dispersion formula and keep
			// the last explicit index
			l.clearSellmeier()
			return nil
		}
		l.setSellmeier(coeffs)
		return l.recomputeIndex()

	case SellmeierChanged:
		l.setSellmeier(ch.Coefficients)
		return l.recomputeIndex()

	case RefractionIndexChanged:
		l.setRefractionIndex(ch.Value)
		l.setMaterial(material.Sentinel)
		l.clearSellmeier()
		return nil

	default:
		return fmt.Errorf("unsupported change %T", change)
	}
}

// recomputeIndex derives the refractive index from the current coefficients
// at the reference wavelength
func (l *Lens) recomputeIndex() error {
	n, err := dispersion.RefractiveIndex(dispersion.ReferenceWavelength, l.Sellmeier)
	if err != nil {
		return err
	}
	l.setRefractionIndex(n)
	return nil
}

// The setters below mimic the host property system: every write re-fires the
// corresponding change notification, which the guard in Apply swallows.

func (l *Lens) setMaterial(name string) {
	l.Material = name
	l.notify(MaterialChanged{Name: name})
}

func (l *Lens) setSellmeier(c dispersion.Coefficients) {
	l.Sellmeier = c
	l.HasSellmeier = true
	l.notify(SellmeierChanged{Coefficients: c})
}

func (l *Lens) clearSellmeier() {
	l.Sellmeier = dispersion.Coefficients{}
	l.HasSellmeier = false
	l.notify(SellmeierChanged{})
}

func (l *Lens) setRefractionIndex(n float64) {
	l.RefractionIndex = n
	l.notify(RefractionIndexChanged{Value: n})
}

func (l *Lens) notify(change Change) {
	// Writes only happen while propagating, so this Apply is always a no-op;
	// it exists to route internal writes through the same path external
	// notifications take
	_ = l.Apply(change)
}
