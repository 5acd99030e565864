package routes

import (
	"gonum.org/v1/gonum/floats"
)

// RouteStats are the per-route aggregate counters.
type RouteStats struct {
	RouteID     string  `json:"routeId"`
	Name        string  `json:"name"`
	Points      int     `json:"points"`
	Segments    int     `json:"segments"`
	TotalLength float64 `json:"totalLength"`
}

// GlobalStats are the counters summed across every route.
type GlobalStats struct {
	Routes      int     `json:"routes"`
	Points      int     `json:"points"`
	Segments    int     `json:"segments"`
	TotalLength float64 `json:"totalLength"`
}

// RouteStats recomputes the statistics for one route directly from its
// segments; nothing here is cached.
func (m *Manager) RouteStats(id string) (RouteStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.byID[id]
	if !ok {
		return RouteStats{}, ErrNotFound
	}

	lengths := make([]float64, len(r.Segments))
	for i, seg := range r.Segments {
		lengths[i] = r.SegmentLength(seg)
	}
	return RouteStats{
		RouteID:     r.ID,
		Name:        r.Name,
		Points:      len(r.Points),
		Segments:    len(r.Segments),
		TotalLength: floats.Sum(lengths),
	}, nil
}

// Stats recomputes global and per-route statistics from the current
// route list. The result always equals a direct recomputation; there is
// no staleness window.
func (m *Manager) Stats() (GlobalStats, []RouteStats) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	perRoute := make([]RouteStats, 0, len(m.order))
	lengths := make([]float64, 0, len(m.order))
	var points, segments int

	for _, id := range m.order {
		r := m.byID[id]
		segLengths := make([]float64, len(r.Segments))
		for i, seg := range r.Segments {
			segLengths[i] = r.SegmentLength(seg)
		}
		rs := RouteStats{
			RouteID:     r.ID,
			Name:        r.Name,
			Points:      len(r.Points),
			Segments:    len(r.Segments),
			TotalLength: floats.Sum(segLengths),
		}
		perRoute = append(perRoute, rs)
		lengths = append(lengths, rs.TotalLength)
		points += rs.Points
		segments += rs.Segments
	}

	return GlobalStats{
		Routes:      len(m.order),
		Points:      points,
		Segments:    segments,
		TotalLength: floats.Sum(lengths),
	}, perRoute
}
