// Package routes manages the set of cable routes and their aggregate
// statistics.
package routes

import (
	"errors"
	"fmt"
	"sync"

	"cable-router/internal/catalog"
	"cable-router/internal/route"
	"cable-router/pkg/geometry"
)

// ErrNotFound is returned for operations on an unknown route id.
var ErrNotFound = errors.New("route not found")

// duplicateOffset translates duplicated routes so the copy never
// overlaps the original exactly.
var duplicateOffset = geometry.NewPoint3D(2, 0, 2)

// Manager owns the route list. All mutations go through it; each one
// bumps the revision so observers can detect "routes changed" without
// re-deriving it from incidental state.
type Manager struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]*route.CableRoute
	created int
	rev     uint64
}

// NewManager creates an empty route manager.
func NewManager() *Manager {
	return &Manager{
		order: make([]string, 0),
		byID:  make(map[string]*route.CableRoute),
	}
}

// CreateRoute allocates a new empty route seeded from the preset, with
// a name derived from the creation count and preset name. Always
// succeeds.
func (m *Manager) CreateRoute(preset catalog.Preset) *route.CableRoute {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.created++
	name := fmt.Sprintf("Route %d (%s)", m.created, preset.Name)
	r := route.New(name, preset)
	m.byID[r.ID] = r
	m.order = append(m.order, r.ID)
	m.rev++
	return r
}

// Get returns the route with the given id, or nil.
func (m *Manager) Get(id string) *route.CableRoute {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byID[id]
}

// Routes returns the routes in creation order.
func (m *Manager) Routes() []*route.CableRoute {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*route.CableRoute, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Count returns the number of routes.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Revision returns a counter that increases on every mutation.
func (m *Manager) Revision() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rev
}

// Touch bumps the revision after an external in-place mutation of a
// managed route (the drawing session extends routes directly).
func (m *Manager) Touch() {
	m.mu.Lock()
	m.rev++
	m.mu.Unlock()
}

// Delete removes a route and all its points and segments.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.rev++
	return nil
}

// Duplicate deep-copies a route under a derived name. The copy gets
// fresh identifiers throughout, is translated by a fixed offset, and is
// not marked active anywhere.
func (m *Manager) Duplicate(id string) (*route.CableRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	dup := src.Duplicate(src.Name+" (copy)", duplicateOffset)
	m.byID[dup.ID] = dup
	m.order = append(m.order, dup.ID)
	m.rev++
	return dup, nil
}

// ToggleVisibility flips the display flag of a route and returns the
// new value. Geometry and persistence eligibility are unaffected.
func (m *Manager) ToggleVisibility(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	r.Visible = !r.Visible
	m.rev++
	return r.Visible, nil
}

// Hydrate replaces the route list with persisted routes. Each route is
// sanitized (orphaned segments dropped, totals and fittings recomputed)
// and the collected warnings are returned. Hydration bypasses the
// drawing state machine entirely.
func (m *Manager) Hydrate(list []*route.CableRoute) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var warnings []string
	m.order = make([]string, 0, len(list))
	m.byID = make(map[string]*route.CableRoute, len(list))
	for _, r := range list {
		warnings = append(warnings, r.Sanitize()...)
		m.byID[r.ID] = r
		m.order = append(m.order, r.ID)
	}
	m.created = len(list)
	m.rev++
	return warnings
}
