package material

import (
	"fmt"

	"github.com/df07/go-optics-workbench/pkg/dispersion"
)

// Sentinel is the catalog key meaning "no predefined material selected";
// its coefficients are supplied by the user instead of the catalog.
const Sentinel = "?"

// Entry is one material in the catalog
type Entry struct {
	Name         string
	Coefficients dispersion.Coefficients
	HasData      bool // false only for the sentinel entry
}

// Catalog is an ordered, immutable set of materials. Order matters for
// presentation (selector lists) but not for computation.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// UnknownMaterialError reports a lookup for a name that is not in the
// catalog at all. The sentinel entry is a valid key and never produces this.
type UnknownMaterialError struct {
	Name string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("unknown material %q", e.Name)
}

// New builds a catalog from entries, preserving their order. Duplicate names
// keep the first occurrence's position but take the last occurrence's data.
func New(entries []Entry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, ok := c.index[e.Name]; ok {
			c.entries[i] = e
			continue
		}
		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Default returns the built-in catalog. Coefficient data from
// https://refractiveindex.info/, C terms stored in nm².
func Default() *Catalog {
	return New([]Entry{
		{Name: Sentinel},
		{Name: "Vacuum", HasData: true},
		{Name: "Air", HasData: true, Coefficients: dispersion.Coefficients{
			B1: 4.915889e-4, B2: 5.368273e-5, B3: -1.949567e-4,
			C1: 4352.140, C2: 17470.01, C3: 4258444000,
		}},
		{Name: "Quartz", HasData: true, Coefficients: dispersion.Coefficients{
			B1: 0.6961663, B2: 0.4079426, B3: 0.8974794,
			C1: 4679.14826, C2: 13512.0631, C3: 97934002.5,
		}},
		{Name: "PMMA (plexiglass)", HasData: true, Coefficients: dispersion.Coefficients{
			B1: 1.1819, C1: 11313,
		}},
		{Name: "Window glass", HasData: true, Coefficients: dispersion.Coefficients{
			B1: 1.03961212, B2: 0.231792344, B3: 1.01046945,
			C1: 6000.69867, C2: 20017.9144, C3: 103560653,
		}},
		{Name: "Polycarbonate", HasData: true, Coefficients: dispersion.Coefficients{
			B1: 1.4182, C1: 21304,
		}},
	})
}

// Lookup returns the coefficients stored for name. The second return is
// false for the sentinel (a valid entry with no data); a name missing from
// the catalog entirely is an UnknownMaterialError.
func (c *Catalog) Lookup(name string) (dispersion.Coefficients, bool, error) {
	i, ok := c.index[name]
	if !ok {
		return dispersion.Coefficients{}, false, &UnknownMaterialError{Name: name}
	}
	e := c.entries[i]
	return e.Coefficients, e.HasData, nil
}

// Has reports whether name is a catalog key (sentinel included)
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Names returns all material names in catalog order, sentinel included.
// This is the list a material selector presents.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of all entries in catalog order
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Merge returns a new catalog with other's entries layered over c. Names
// already present keep their position and take other's data; new names are
// appended in other's order. Neither input is modified.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	combined := make([]Entry, 0, len(c.entries)+len(other.entries))
	combined = append(combined, c.entries...)
	combined = append(combined, other.entries...)
	return New(combined)
}
