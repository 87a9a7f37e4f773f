// Package element models host geometry tagged with an optical role: mirrors,
// absorbers, lenses and idealized theoretical lenses. Lenses carry a material
// selection, Sellmeier coefficients and a derived refractive index kept
// consistent by a change-propagation reconciler.
package element

import (
	"fmt"

	"github.com/google/uuid"
)

// Type discriminates the optical behavior of an element
type Type string

const (
	TypeMirror          Type = "mirror"
	TypeAbsorber        Type = "absorber"
	TypeLens            Type = "lens"
	TypeTheoreticalLens Type = "lens_theory"
)

// Valid reports whether t is one of the known optical types
func (t Type) Valid() bool {
	switch t {
	case TypeMirror, TypeAbsorber, TypeLens, TypeTheoreticalLens:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ParseType converts a string to a Type
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown optical type %q", s)
	}
	return t, nil
}

// Element tags existing geometry with an optical role. Base holds names of
// geometry objects owned by the host document; the element never owns them
// and an empty list is the caller's problem, not an error.
type Element struct {
	ID    string   // Unique record ID
	Type  Type     // Optical role of the tagged geometry
	Label string   // Display label, defaults to the type name
	Base  []string // Weak references to host geometry objects
}

// Record returns the element's shared fields; it makes every element kind
// satisfy the Object interface.
func (e *Element) Record() *Element {
	return e
}

// Object is implemented by every optical element record
type Object interface {
	Record() *Element
}

func newElement(t Type, base []string) Element {
	return Element{
		ID:    uuid.NewString(),
		Type:  t,
		Label: string(t),
		Base:  base,
	}
}

// NewMirror tags the given geometry as an ideal mirror
func NewMirror(base []string) *Element {
	e := newElement(TypeMirror, base)
	return &e
}

// NewAbsorber tags the given geometry as an absorber that swallows rays
func NewAbsorber(base []string) *Element {
	e := newElement(TypeAbsorber, base)
	return &e
}

// DefaultFocalLength is the focal length a theoretical lens starts with, in mm
const DefaultFocalLength = 50.0

// TheoreticalLens is an idealized lens described only by its focal length.
// It has no material, no dispersion and no derived fields.
type TheoreticalLens struct {
	Element
	FocalLength float64
}

// NewTheoreticalLens tags the given geometry as an idealized thin lens.
// A non-positive focal length falls back to DefaultFocalLength.
func NewTheoreticalLens(base []string, focalLength float64) *TheoreticalLens {
	if focalLength <= 0 {
		focalLength = DefaultFocalLength
	}
	return &TheoreticalLens{
		Element:     newElement(TypeTheoreticalLens, base),
		FocalLength: focalLength,
	}
}
