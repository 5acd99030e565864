// Package snap resolves raw pointer positions against the grid and the
// connection points supplied by the equipment layer.
package snap

import "cable-router/pkg/geometry"

// PointType identifies where on its equipment a snap point sits.
type PointType string

const (
	TypeConnection PointType = "connection"
	TypeEdge       PointType = "edge"
	TypeCenter     PointType = "center"
	TypeCorner     PointType = "corner"
)

// Point is a candidate snap target supplied by the equipment layer.
// The routing engine only reads these; it never mutates or caches them.
type Point struct {
	Position   geometry.Point3D `json:"position"`
	ObjectID   string           `json:"objectId"`
	ObjectName string           `json:"objectName"`
	Type       PointType        `json:"type"`
}

// Settings holds the per-session snap configuration.
type Settings struct {
	ObjectSnap bool    // snap to equipment connection points
	Radius     float64 // object-snap capture radius
	GridSnap   bool    // quantize to the working grid
	GridSize   float64
}

// DefaultSettings returns the snap configuration used for new sessions.
func DefaultSettings() Settings {
	return Settings{
		ObjectSnap: true,
		Radius:     0.5,
		GridSnap:   true,
		GridSize:   0.25,
	}
}

// Result is a resolved position plus the snap target it locked onto,
// if any.
type Result struct {
	Position geometry.Point3D
	Target   *Point // nil when no object snap applied
}

// Resolve corrects a raw candidate position. Grid snap quantizes first;
// an object within the snap radius then overrides the quantized position
// with its exact location. Pure function of its inputs.
func Resolve(raw geometry.Point3D, s Settings, points []Point) Result {
	p := raw
	if s.GridSnap {
		p = p.SnapToGrid(s.GridSize)
	}

	if s.ObjectSnap {
		if nearest, dist := Nearest(p, points); nearest != nil && dist < s.Radius {
			return Result{Position: nearest.Position, Target: nearest}
		}
	}
	return Result{Position: p}
}

// Nearest returns the snap point closest to p and its distance, or nil
// when the list is empty. Ties keep the earliest entry so resolution is
// deterministic for identical inputs.
func Nearest(p geometry.Point3D, points []Point) (*Point, float64) {
	var best *Point
	bestDist := 0.0
	for i := range points {
		d := p.Distance(points[i].Position)
		if best == nil || d < bestDist {
			best = &points[i]
			bestDist = d
		}
	}
	return best, bestDist
}
