// Package catalog holds the geofence zones the pipeline evaluates against.
//
// Readers work on immutable snapshots; every mutation builds a new snapshot
// and swaps it in, so an evaluation never sees a half-applied change.
package catalog

import (
	"fmt"
	"sync"
	"sync/atomic"

	gogeo "github.com/paulmach/go.geo"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

type entry struct {
	zone  domain.GeofenceZone
	bound *gogeo.Bound
}

type snapshot struct {
	order []string
	byID  map[string]*entry
}

type Catalog struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
}

func New() *Catalog {
	c := &Catalog{}
	c.snap.Store(&snapshot{byID: map[string]*entry{}})
	return c
}

func (c *Catalog) Get(zoneID string) (domain.GeofenceZone, error) {
	e, ok := c.snap.Load().byID[zoneID]
	if !ok {
		return domain.GeofenceZone{}, fmt.Errorf("%w: %s", domain.ErrZoneNotFound, zoneID)
	}
	return e.zone.Clone(), nil
}

// List returns every zone in catalog order: first-insertion order, with
// replaced zones keeping their original position.
func (c *Catalog) List() []domain.GeofenceZone {
	s := c.snap.Load()
	out := make([]domain.GeofenceZone, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].zone.Clone())
	}
	return out
}

// IDs returns zone ids in catalog order.
func (c *Catalog) IDs() []string {
	s := c.snap.Load()
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

func (c *Catalog) Len() int {
	return len(c.snap.Load().order)
}

// ListZonesNear returns, in catalog order, the zones whose bounding box padded
// by maxDistanceMeters contains point. A non-positive distance disables the
// filter and returns every zone.
func (c *Catalog) ListZonesNear(point domain.Coordinate, maxDistanceMeters float64) []domain.GeofenceZone {
	if maxDistanceMeters <= 0 {
		return c.List()
	}
	s := c.snap.Load()
	p := gogeo.NewPoint(point.Lon, point.Lat)
	var out []domain.GeofenceZone
	for _, id := range s.order {
		e := s.byID[id]
		if e.bound.Clone().GeoPad(maxDistanceMeters).Contains(p) {
			out = append(out, e.zone.Clone())
		}
	}
	return out
}

// Upsert validates zone and stores it, replacing any zone with the same id.
func (c *Catalog) Upsert(zone domain.GeofenceZone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	e := newEntry(zone)

	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.snap.Load()
	next := &snapshot{
		order: old.order,
		byID:  make(map[string]*entry, len(old.byID)+1),
	}
	for id, v := range old.byID {
		next.byID[id] = v
	}
	if _, exists := old.byID[zone.ID]; !exists {
		next.order = append(append([]string(nil), old.order...), zone.ID)
	}
	next.byID[zone.ID] = e
	c.snap.Store(next)
	return nil
}

func (c *Catalog) Remove(zoneID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.snap.Load()
	if _, ok := old.byID[zoneID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrZoneNotFound, zoneID)
	}
	next := &snapshot{
		order: make([]string, 0, len(old.order)-1),
		byID:  make(map[string]*entry, len(old.byID)-1),
	}
	for _, id := range old.order {
		if id == zoneID {
			continue
		}
		next.order = append(next.order, id)
		next.byID[id] = old.byID[id]
	}
	c.snap.Store(next)
	return nil
}

// Replace swaps the whole catalog for zones and returns the ids that were
// present before but are no longer. Nothing changes if any zone is invalid.
// Zones that survive keep their position; new zones are appended in the order
// given.
func (c *Catalog) Replace(zones []domain.GeofenceZone) ([]string, error) {
	incoming := make(map[string]*entry, len(zones))
	var fresh []string
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if _, dup := incoming[z.ID]; !dup {
			fresh = append(fresh, z.ID)
		}
		incoming[z.ID] = newEntry(z)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.snap.Load()
	next := &snapshot{byID: incoming}
	var removed []string
	for _, id := range old.order {
		if _, ok := incoming[id]; ok {
			next.order = append(next.order, id)
		} else {
			removed = append(removed, id)
		}
	}
	for _, id := range fresh {
		if _, ok := old.byID[id]; !ok {
			next.order = append(next.order, id)
		}
	}
	c.snap.Store(next)
	return removed, nil
}

func newEntry(zone domain.GeofenceZone) *entry {
	zone = zone.Clone()
	return &entry{zone: zone, bound: zoneBound(&zone)}
}

func zoneBound(zone *domain.GeofenceZone) *gogeo.Bound {
	switch zone.Kind {
	case domain.ZoneCircle:
		c := zone.Center
		return gogeo.NewBound(c.Lon, c.Lon, c.Lat, c.Lat).GeoPad(zone.RadiusMeters)
	default:
		first := zone.Vertices[0]
		b := gogeo.NewBound(first.Lon, first.Lon, first.Lat, first.Lat)
		for _, v := range zone.Vertices[1:] {
			b.Extend(gogeo.NewPoint(v.Lon, v.Lat))
		}
		return b
	}
}
