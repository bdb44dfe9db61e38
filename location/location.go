// Package location manages warehouse storage-location definitions. Each
// location kind carries its own capacity model, dispatched through a table
// keyed on the kind so adding one is a localized change.
package location

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/domain"
)

// Kind identifies the physical form of a storage location.
type Kind string

const (
	KindRack  Kind = "rack"
	KindShelf Kind = "shelf"
	KindBin   Kind = "bin"
	KindFloor Kind = "floor"
)

// Kinds lists all location kinds in display order.
var Kinds = []Kind{KindRack, KindShelf, KindBin, KindFloor}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindRack, KindShelf, KindBin, KindFloor:
		return true
	}
	return false
}

// CapacitySpec carries the dimensions a capacity model derives capacity
// from. Only the fields for the location's kind are meaningful.
type CapacitySpec struct {
	Bays         int     `json:"bays,omitempty"`         // rack
	Levels       int     `json:"levels,omitempty"`       // rack
	Meters       float64 `json:"meters,omitempty"`       // shelf
	Units        int     `json:"units,omitempty"`        // bin
	SquareMeters float64 `json:"squareMeters,omitempty"` // floor
}

type capacityModel struct {
	unit     string
	capacity func(CapacitySpec) float64
}

var capacityModels = map[Kind]capacityModel{
	KindRack: {
		unit:     "slots",
		capacity: func(s CapacitySpec) float64 { return float64(s.Bays * s.Levels) },
	},
	KindShelf: {
		unit:     "m",
		capacity: func(s CapacitySpec) float64 { return s.Meters },
	},
	KindBin: {
		unit:     "units",
		capacity: func(s CapacitySpec) float64 { return float64(s.Units) },
	},
	KindFloor: {
		unit:     "m²",
		capacity: func(s CapacitySpec) float64 { return s.SquareMeters },
	},
}

// Location is one storage-location definition.
type Location struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      Kind         `json:"kind"`
	Spec      CapacitySpec `json:"spec"`
	Used      float64      `json:"used"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Capacity returns the location's total capacity in its kind's unit.
func (l Location) Capacity() float64 {
	return capacityModels[l.Kind].capacity(l.Spec)
}

// Unit returns the unit the location's capacity is measured in.
func (l Location) Unit() string {
	return capacityModels[l.Kind].unit
}

// Utilization returns used/capacity in [0,1]; zero-capacity locations report
// zero.
func (l Location) Utilization() float64 {
	total := l.Capacity()
	if total <= 0 {
		return 0
	}
	return l.Used / total
}

// Draft carries the fields needed to define a location.
type Draft struct {
	Name string       `json:"name"`
	Kind Kind         `json:"kind"`
	Spec CapacitySpec `json:"spec"`
}

// Registry is the mutable collection of storage-location definitions.
type Registry struct {
	mu        sync.RWMutex
	locations map[string]Location
	order     []string

	now func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{locations: make(map[string]Location), now: time.Now}
}

// Create validates and stores a new location definition.
func (r *Registry) Create(draft Draft) (Location, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return Location{}, domain.Validationf("location name is required")
	}
	if !draft.Kind.Valid() {
		return Location{}, domain.Validationf("unknown location kind %q", draft.Kind)
	}
	loc := Location{
		ID:   uuid.NewString(),
		Name: draft.Name,
		Kind: draft.Kind,
		Spec: draft.Spec,
	}
	if loc.Capacity() <= 0 {
		return Location{}, domain.Validationf("%s capacity must be positive", draft.Kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	loc.CreatedAt = now
	loc.UpdatedAt = now
	r.locations[loc.ID] = loc
	r.order = append(r.order, loc.ID)
	return loc, nil
}

// Get returns one location definition by id.
func (r *Registry) Get(id string) (Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	loc, ok := r.locations[id]
	if !ok {
		return Location{}, fmt.Errorf("%w: location %s", domain.ErrNotFound, id)
	}
	return loc, nil
}

// List returns all definitions in creation order.
func (r *Registry) List() []Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Location, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.locations[id])
	}
	return out
}

// SetUsed records how much of a location's capacity is occupied. Usage above
// capacity or below zero is rejected and nothing changes.
func (r *Registry) SetUsed(id string, used float64) (Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.locations[id]
	if !ok {
		return Location{}, fmt.Errorf("%w: location %s", domain.ErrNotFound, id)
	}
	if used < 0 || used > loc.Capacity() {
		return Location{}, domain.OutOfRangef("used %.2f of %.2f %s", used, loc.Capacity(), loc.Unit())
	}
	loc.Used = used
	loc.UpdatedAt = r.now()
	r.locations[id] = loc
	return loc, nil
}

// Rename updates a location's display name.
func (r *Registry) Rename(id, name string) (Location, error) {
	if strings.TrimSpace(name) == "" {
		return Location{}, domain.Validationf("location name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.locations[id]
	if !ok {
		return Location{}, fmt.Errorf("%w: location %s", domain.ErrNotFound, id)
	}
	loc.Name = name
	loc.UpdatedAt = r.now()
	r.locations[id] = loc
	return loc, nil
}
