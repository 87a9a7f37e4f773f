// Package workbench owns the optical element records created from host
// geometry and the material catalog they draw from. It is the in-memory
// registry behind the CLI and the web API; persistence and undo stay with
// the host document.
package workbench

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/df07/go-optics-workbench/pkg/element"
	"github.com/df07/go-optics-workbench/pkg/material"
)

// DefaultLensMaterial is selected when a lens is created without an explicit
// material
const DefaultLensMaterial = "Window glass"

// Workbench is a registry of optical element records sharing one material
// catalog. All methods are safe for concurrent use; lens reconciliation is
// serialized per record.
type Workbench struct {
	catalog *material.Catalog
	logger  *zap.SugaredLogger

	mu       sync.RWMutex
	order    []string
	elements map[string]element.Object
	locks    map[string]*sync.Mutex // per-lens reconciliation locks
}

// Option configures a Workbench
type Option func(*Workbench)

// WithCatalog replaces the default material catalog
func WithCatalog(c *material.Catalog) Option {
	return func(w *Workbench) { w.catalog = c }
}

// WithLogger attaches a logger; the default discards everything
func WithLogger(l *zap.SugaredLogger) Option {
	return func(w *Workbench) { w.logger = l }
}

// New creates an empty workbench backed by the default material catalog
func New(opts ...Option) *Workbench {
	w := &Workbench{
		catalog:  material.Default(),
		logger:   zap.NewNop().Sugar(),
		elements: make(map[string]element.Object),
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Catalog returns the material catalog the workbench's lenses draw from
func (w *Workbench) Catalog() *material.Catalog {
	return w.catalog
}

// Materials returns the ordered material names for a selector, sentinel
// included
func (w *Workbench) Materials() []string {
	return w.catalog.Names()
}

// MakeMirror tags the given geometry as a mirror and registers the record
func (w *Workbench) MakeMirror(base []string) *element.Element {
	mirror := element.NewMirror(base)
	w.add(mirror)
	w.logger.Infow("created mirror", "id", mirror.ID, "base", base)
	return mirror
}

// MakeAbsorber tags the given geometry as an absorber and registers the record
func (w *Workbench) MakeAbsorber(base []string) *element.Element {
	absorber := element.NewAbsorber(base)
	w.add(absorber)
	w.logger.Infow("created absorber", "id", absorber.ID, "base", base)
	return absorber
}

// MakeLens tags the given geometry as a refractive lens. An empty material
// name selects DefaultLensMaterial.
func (w *Workbench) MakeLens(base []string, materialName string) (*element.Lens, error) {
	if materialName == "" {
		materialName = DefaultLensMaterial
	}
	lens, err := element.NewLens(base, materialName, w.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create lens: %w", err)
	}
	w.add(lens)
	w.logger.Infow("created lens", "id", lens.ID, "material", lens.Material, "refractionIndex", lens.RefractionIndex)
	return lens, nil
}

// MakeTheoreticalLens tags the given geometry as an idealized thin lens
func (w *Workbench) MakeTheoreticalLens(base []string, focalLength float64) *element.TheoreticalLens {
	lens := element.NewTheoreticalLens(base, focalLength)
	w.add(lens)
	w.logger.Infow("created theoretical lens", "id", lens.ID, "focalLength", lens.FocalLength)
	return lens
}

func (w *Workbench) add(obj element.Object) {
	record := obj.Record()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.elements[record.ID] = obj
	w.order = append(w.order, record.ID)
	if record.Type == element.TypeLens {
		w.locks[record.ID] = &sync.Mutex{}
	}
}

// Get returns the record with the given ID
func (w *Workbench) Get(id string) (element.Object, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.elements[id]
	return obj, ok
}

// List returns all records in creation order
func (w *Workbench) List() []element.Object {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]element.Object, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.elements[id])
	}
	return out
}

// Remove deletes the record with the given ID, reporting whether it existed
func (w *Workbench) Remove(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.elements[id]; !ok {
		return false
	}
	delete(w.elements, id)
	delete(w.locks, id)
	for i, existing := range w.order {
		if existing == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.logger.Infow("removed element", "id", id)
	return true
}

// UpdateLens applies a field change to the lens with the given ID. Changes to
// the same lens are serialized; the reconciler itself is not reentrant.
func (w *Workbench) UpdateLens(id string, change element.Change) error {
	w.mu.RLock()
	obj, ok := w.elements[id]
	lock := w.locks[id]
	w.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no element with id %q", id)
	}
	lens, isLens := obj.(*element.Lens)
	if !isLens {
		return fmt.Errorf("element %q is a %s, not a lens", id, obj.Record().Type)
	}

	lock.Lock()
	defer lock.Unlock()
	if err := lens.Apply(change); err != nil {
		w.logger.Warnw("lens update failed", "id", id, "error", err)
		return err
	}
	w.logger.Debugw("lens updated", "id", id, "material", lens.Material, "refractionIndex", lens.RefractionIndex)
	return nil
}
