// Package tracker keeps per-vehicle, per-zone containment state and detects
// enter/exit transitions between consecutive fixes.
//
// The first observation of a (vehicle, zone) pair only records a baseline and
// never reports Entered, so buses already inside a zone at startup do not
// raise alerts.
package tracker

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Kingori-wizzy/Smart-School-Transport-and-Attendance-System-sub001/module/core/domain"
)

type Transition int

const (
	None Transition = iota
	Entered
	Exited
)

func (t Transition) String() string {
	switch t {
	case Entered:
		return "entered"
	case Exited:
		return "exited"
	default:
		return "none"
	}
}

type ZoneState struct {
	ZoneID      string    `json:"zone_id"`
	Inside      bool      `json:"is_inside"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

type vehicleState struct {
	mu      sync.Mutex
	zones   map[string]*ZoneState
	lastFix *domain.VehicleFix
	evicted bool
}

// Tracker is safe for concurrent use. Each vehicle has its own lock, so
// different vehicles never contend with each other.
type Tracker struct {
	vehicles sync.Map // vehicle id -> *vehicleState
	seq      atomic.Uint64
}

func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) state(vehicleID string) *vehicleState {
	if v, ok := t.vehicles.Load(vehicleID); ok {
		return v.(*vehicleState)
	}
	v, _ := t.vehicles.LoadOrStore(vehicleID, &vehicleState{zones: map[string]*ZoneState{}})
	return v.(*vehicleState)
}

// Session holds a vehicle's lock until End is called. All fixes for a vehicle
// that go through a session are applied one at a time.
type Session struct {
	vehicleID string
	st        *vehicleState
	tracker   *Tracker
}

func (t *Tracker) Begin(vehicleID string) *Session {
	for {
		st := t.state(vehicleID)
		st.mu.Lock()
		if !st.evicted {
			return &Session{vehicleID: vehicleID, st: st, tracker: t}
		}
		// evicted while we waited; pick up the replacement
		st.mu.Unlock()
	}
}

// Next returns a sequence number unique across the tracker's lifetime.
// Numbers grow in session order for any one vehicle.
func (s *Session) Next() uint64 {
	return s.tracker.seq.Add(1)
}

func (s *Session) End() {
	s.st.mu.Unlock()
}

// Evaluate records inside for zoneID and reports the transition from the
// previously stored value.
func (s *Session) Evaluate(zoneID string, inside bool, at time.Time) Transition {
	prev, seen := s.st.zones[zoneID]
	if !seen {
		s.st.zones[zoneID] = &ZoneState{ZoneID: zoneID, Inside: inside, EvaluatedAt: at}
		return None
	}

	result := None
	switch {
	case !prev.Inside && inside:
		result = Entered
	case prev.Inside && !inside:
		result = Exited
	}
	prev.Inside = inside
	prev.EvaluatedAt = at
	return result
}

// LastFix returns the previous fix accepted for the vehicle, or nil.
func (s *Session) LastFix() *domain.VehicleFix {
	return s.st.lastFix
}

func (s *Session) SetLastFix(fix domain.VehicleFix) {
	s.st.lastFix = &fix
}

// EvaluateAndTransition is a single-zone Evaluate under the vehicle lock.
func (t *Tracker) EvaluateAndTransition(vehicleID, zoneID string, inside bool, at time.Time) Transition {
	s := t.Begin(vehicleID)
	defer s.End()
	return s.Evaluate(zoneID, inside, at)
}

// Snapshot returns the vehicle's zone states sorted by zone id.
func (t *Tracker) Snapshot(vehicleID string) ([]ZoneState, bool) {
	v, ok := t.vehicles.Load(vehicleID)
	if !ok {
		return nil, false
	}
	st := v.(*vehicleState)
	st.mu.Lock()
	if st.evicted {
		st.mu.Unlock()
		return nil, false
	}
	out := make([]ZoneState, 0, len(st.zones))
	for _, z := range st.zones {
		out = append(out, *z)
	}
	st.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ZoneID < out[j].ZoneID })
	return out, true
}

// EvictVehicle drops all state for a vehicle. It waits for an open session on
// the vehicle to end, and sessions begun afterwards start from empty state.
func (t *Tracker) EvictVehicle(vehicleID string) bool {
	v, ok := t.vehicles.Load(vehicleID)
	if !ok {
		return false
	}
	st := v.(*vehicleState)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.evicted {
		return false
	}
	st.evicted = true
	t.vehicles.CompareAndDelete(vehicleID, st)
	return true
}

// EvictZone drops the zone's state from every vehicle and returns how many
// entries were removed.
func (t *Tracker) EvictZone(zoneID string) int {
	removed := 0
	t.vehicles.Range(func(_, v any) bool {
		st := v.(*vehicleState)
		st.mu.Lock()
		if _, ok := st.zones[zoneID]; ok && !st.evicted {
			delete(st.zones, zoneID)
			removed++
		}
		st.mu.Unlock()
		return true
	})
	return removed
}
