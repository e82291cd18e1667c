package service

import "sync"

// ZoneResolver decides which zones a vehicle is evaluated against, in order.
type ZoneResolver interface {
	ZonesFor(vehicleID string) []string
}

type zoneLister interface {
	IDs() []string
}

// CatalogResolver evaluates every vehicle against every catalog zone.
type CatalogResolver struct {
	catalog zoneLister
}

func NewCatalogResolver(catalog zoneLister) *CatalogResolver {
	return &CatalogResolver{catalog: catalog}
}

func (r *CatalogResolver) ZonesFor(string) []string {
	return r.catalog.IDs()
}

// AssignmentResolver uses explicit per-vehicle zone lists, typically the
// zones along a bus's route, and defers to fallback for unassigned vehicles.
type AssignmentResolver struct {
	mu          sync.RWMutex
	assignments map[string][]string
	fallback    ZoneResolver
}

func NewAssignmentResolver(fallback ZoneResolver) *AssignmentResolver {
	return &AssignmentResolver{assignments: map[string][]string{}, fallback: fallback}
}

func (r *AssignmentResolver) Assign(vehicleID string, zoneIDs []string) {
	ids := append([]string(nil), zoneIDs...)
	r.mu.Lock()
	r.assignments[vehicleID] = ids
	r.mu.Unlock()
}

func (r *AssignmentResolver) Unassign(vehicleID string) {
	r.mu.Lock()
	delete(r.assignments, vehicleID)
	r.mu.Unlock()
}

func (r *AssignmentResolver) ZonesFor(vehicleID string) []string {
	r.mu.RLock()
	ids, ok := r.assignments[vehicleID]
	r.mu.RUnlock()
	if ok {
		return ids
	}
	if r.fallback == nil {
		return nil
	}
	return r.fallback.ZonesFor(vehicleID)
}
