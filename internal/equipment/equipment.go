// Package equipment models placed farm equipment as a source of snap
// targets for the routing engine. The routing engine reads positions
// through this package and never holds renderer handles.
package equipment

import (
	"sync"

	"cable-router/internal/snap"
	"cable-router/pkg/geometry"
)

// Kind identifies the equipment class.
type Kind string

const (
	KindTransformer Kind = "transformer"
	KindSwitchboard Kind = "switchboard"
	KindPDU         Kind = "pdu"
	KindContainer   Kind = "container"
	KindNetworkRack Kind = "network-rack"
)

// ConnectionPoint is a typed attachment position on a piece of
// equipment, expressed as an offset from the equipment origin.
type ConnectionPoint struct {
	Offset   geometry.Point3D `json:"offset"`
	Type     snap.PointType   `json:"type"`
	Capacity int              `json:"capacity"` // max cables; informational
}

// Equipment is one placed object on the farm floor.
type Equipment struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Kind        Kind              `json:"kind"`
	Position    geometry.Point3D  `json:"position"`
	Size        geometry.Point3D  `json:"size"` // footprint extents
	Connections []ConnectionPoint `json:"connections"`
}

// PositionLookup resolves an equipment object id to its position.
// The drawing layer depends on this interface only, never on concrete
// renderer objects.
type PositionLookup interface {
	LookupPosition(objectID string) (geometry.Point3D, bool)
}

// Set holds the current equipment placement. Placement changes
// invalidate previously derived snap points, so consumers must call
// SnapPoints fresh on every resolution.
type Set struct {
	mu    sync.RWMutex
	items []*Equipment
	byID  map[string]*Equipment
}

// NewSet creates an empty equipment set.
func NewSet() *Set {
	return &Set{byID: make(map[string]*Equipment)}
}

// Add places equipment. Re-adding an existing id replaces it.
func (s *Set) Add(e *Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byID[e.ID]; ok {
		for i, item := range s.items {
			if item == old {
				s.items[i] = e
				break
			}
		}
	} else {
		s.items = append(s.items, e)
	}
	s.byID[e.ID] = e
}

// Remove deletes equipment by id. Returns false when not present.
func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	for i, item := range s.items {
		if item == e {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// Move relocates equipment. Returns false when not present.
func (s *Set) Move(id string, pos geometry.Point3D) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	e.Position = pos
	return true
}

// All returns a snapshot of the placed equipment.
func (s *Set) All() []*Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Equipment, len(s.items))
	copy(out, s.items)
	return out
}

// LookupPosition implements PositionLookup.
func (s *Set) LookupPosition(objectID string) (geometry.Point3D, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.byID[objectID]
	if !ok {
		return geometry.Point3D{}, false
	}
	return e.Position, true
}

// SnapPoints derives the current snap targets from the placement.
// The slice is rebuilt on every call; callers must not cache it across
// placement changes.
func (s *Set) SnapPoints() []snap.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []snap.Point
	for _, e := range s.items {
		for _, cp := range e.Connections {
			out = append(out, snap.Point{
				Position:   e.Position.Add(cp.Offset),
				ObjectID:   e.ID,
				ObjectName: e.Name,
				Type:       cp.Type,
			})
		}
		out = append(out, snap.Point{
			Position:   e.Position,
			ObjectID:   e.ID,
			ObjectName: e.Name,
			Type:       snap.TypeCenter,
		})
	}
	return out
}
