// Package route provides the cable route model: points, segments,
// and derived fittings.
package route

import (
	"errors"
	"fmt"

	"cable-router/internal/catalog"
	"cable-router/pkg/geometry"

	"github.com/google/uuid"
)

// ErrDegenerate is returned when a segment would have zero length.
var ErrDegenerate = errors.New("zero-length segment")

// ErrNoPoints is returned when extending a route that has no points yet.
var ErrNoPoints = errors.New("route has no points")

// PointRole identifies the role a point plays within its route.
type PointRole string

const (
	RoleStart    PointRole = "start"
	RoleWaypoint PointRole = "waypoint"
	RoleEnd      PointRole = "end"
	RoleJunction PointRole = "junction"
	RoleBranch   PointRole = "branch"
)

// CablePoint is a single point of a route. Points are owned by exactly
// one route and are never shared.
type CablePoint struct {
	ID       string           `json:"id"`
	Position geometry.Point3D `json:"position"`
	Role     PointRole        `json:"role"`

	// EquipmentID anchors the point to the equipment object it snapped
	// to, empty for free points.
	EquipmentID string `json:"equipmentId,omitempty"`

	// Fitting is the derived bend annotation at this point. Recomputed
	// on every geometry change, never user-edited.
	Fitting *CableFitting `json:"fitting,omitempty"`
}

// CableSegment is one tray edge between two points of the owning route.
type CableSegment struct {
	ID           string `json:"id"`
	StartPointID string `json:"startPointId"`
	EndPointID   string `json:"endPointId"`

	Style      catalog.TrayStyle   `json:"style"`
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	CableTypes []catalog.CableType `json:"cableTypes,omitempty"`
	Color      string              `json:"color"`
	Locked     bool                `json:"locked"`
	Visible    bool                `json:"visible"`
}

// CableRoute is the aggregate: an ordered point list, the segments
// connecting them, and route-level metadata. TotalLength always equals
// the sum of segment lengths; it is maintained on every mutation.
type CableRoute struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	RouteType   catalog.RouteType    `json:"routeType"`
	Voltage     catalog.VoltageClass `json:"voltage"`
	Color       string               `json:"color"`
	Visible     bool                 `json:"visible"`
	TotalLength float64              `json:"totalLength"`
	Points      []*CablePoint        `json:"points"`
	Segments    []*CableSegment      `json:"segments"`
}

// New creates an empty route seeded from a preset.
func New(name string, preset catalog.Preset) *CableRoute {
	return &CableRoute{
		ID:        uuid.NewString(),
		Name:      name,
		RouteType: preset.RouteType,
		Voltage:   preset.Voltage,
		Color:     preset.Color,
		Visible:   true,
		Points:    make([]*CablePoint, 0),
		Segments:  make([]*CableSegment, 0),
	}
}

// Point returns the point with the given ID, or nil.
func (r *CableRoute) Point(id string) *CablePoint {
	for _, p := range r.Points {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// LastPoint returns the most recently appended point, or nil.
func (r *CableRoute) LastPoint() *CablePoint {
	if len(r.Points) == 0 {
		return nil
	}
	return r.Points[len(r.Points)-1]
}

// StartAt appends the first point of the route. The first point of a
// route is tagged start; if points already exist the new point is a
// plain waypoint.
func (r *CableRoute) StartAt(pos geometry.Point3D, equipmentID string) *CablePoint {
	role := RoleStart
	if len(r.Points) > 0 {
		role = RoleWaypoint
	}
	p := &CablePoint{
		ID:          uuid.NewString(),
		Position:    pos,
		Role:        role,
		EquipmentID: equipmentID,
	}
	r.Points = append(r.Points, p)
	return p
}

// ExtendTo appends a waypoint at pos and a segment from the current last
// point, styled from the preset. The segment length is added to the
// route total and the bend fitting at the previous point is recomputed.
// A click at the current last position is rejected with ErrDegenerate
// and leaves the route untouched.
func (r *CableRoute) ExtendTo(pos geometry.Point3D, equipmentID string, preset catalog.Preset) (*CableSegment, error) {
	last := r.LastPoint()
	if last == nil {
		return nil, ErrNoPoints
	}
	length := last.Position.Distance(pos)
	if length == 0 {
		return nil, ErrDegenerate
	}

	// Extending past a sealed end re-opens the route; the end tag moves
	// to the new last point on the next SealEnd.
	if last.Role == RoleEnd {
		last.Role = RoleWaypoint
	}

	p := &CablePoint{
		ID:          uuid.NewString(),
		Position:    pos,
		Role:        RoleWaypoint,
		EquipmentID: equipmentID,
	}
	seg := &CableSegment{
		ID:           uuid.NewString(),
		StartPointID: last.ID,
		EndPointID:   p.ID,
		Style:        preset.Style,
		Width:        preset.Width,
		Height:       preset.Height,
		CableTypes:   append([]catalog.CableType(nil), preset.CableTypes...),
		Color:        preset.Color,
		Visible:      true,
	}

	r.Points = append(r.Points, p)
	r.Segments = append(r.Segments, seg)
	r.TotalLength += length

	// The previous point just became interior; classify the bend there.
	r.updateFittingAt(len(r.Points) - 2)
	return seg, nil
}

// SealEnd retags the last point as the route end. A route with fewer
// than two points stays as it is.
func (r *CableRoute) SealEnd() {
	if len(r.Points) < 2 {
		return
	}
	last := r.Points[len(r.Points)-1]
	if last.Role == RoleWaypoint {
		last.Role = RoleEnd
	}
}

// MarkJunction retags an interior point as a junction and attaches a
// junction-box fitting. Returns false if the point is not in the route.
func (r *CableRoute) MarkJunction(pointID string) bool {
	p := r.Point(pointID)
	if p == nil {
		return false
	}
	p.Role = RoleJunction
	p.Fitting = &CableFitting{Type: FittingJunctionBox}
	return true
}

// RemoveSegment deletes a segment by id and refreshes the total length
// and fittings. Points are kept; they may still anchor other segments.
// Returns false when the segment is not part of this route.
func (r *CableRoute) RemoveSegment(segmentID string) bool {
	for i, seg := range r.Segments {
		if seg.ID == segmentID {
			r.Segments = append(r.Segments[:i], r.Segments[i+1:]...)
			r.RecomputeTotalLength()
			r.RecomputeFittings()
			return true
		}
	}
	return false
}

// MovePoint relocates a point and refreshes the total length and the
// fittings around it. Returns false when the point is not in the route.
func (r *CableRoute) MovePoint(pointID string, pos geometry.Point3D) bool {
	for i, p := range r.Points {
		if p.ID == pointID {
			p.Position = pos
			r.RecomputeTotalLength()
			r.updateFittingAt(i - 1)
			r.updateFittingAt(i)
			r.updateFittingAt(i + 1)
			return true
		}
	}
	return false
}

// SegmentLength derives the segment length from its endpoints.
// Returns 0 when an endpoint does not resolve.
func (r *CableRoute) SegmentLength(seg *CableSegment) float64 {
	a := r.Point(seg.StartPointID)
	b := r.Point(seg.EndPointID)
	if a == nil || b == nil {
		return 0
	}
	return a.Position.Distance(b.Position)
}

// RecomputeTotalLength recalculates the total from current segments and
// stores it. Used after bulk edits and load; incremental paths keep the
// total current on their own.
func (r *CableRoute) RecomputeTotalLength() float64 {
	var total float64
	for _, seg := range r.Segments {
		total += r.SegmentLength(seg)
	}
	r.TotalLength = total
	return total
}

// RecomputeFittings reclassifies the bend at every interior point.
func (r *CableRoute) RecomputeFittings() {
	for i := range r.Points {
		r.updateFittingAt(i)
	}
}

// updateFittingAt classifies the bend at point index i. Endpoints and
// junction points keep their existing annotation.
func (r *CableRoute) updateFittingAt(i int) {
	if i < 0 || i >= len(r.Points) {
		return
	}
	p := r.Points[i]
	if p.Role == RoleJunction {
		return
	}
	var prev, next *geometry.Point3D
	if i > 0 {
		prev = &r.Points[i-1].Position
	}
	if i < len(r.Points)-1 {
		next = &r.Points[i+1].Position
	}
	p.Fitting = ClassifyBend(prev, p.Position, next)
}

// Sanitize drops segments whose endpoints do not resolve to points of
// this route and recomputes the total length and fittings. It returns a
// human-readable warning per dropped segment. Used when hydrating
// persisted data; segments built through the API can never be orphaned.
func (r *CableRoute) Sanitize() []string {
	var warnings []string
	kept := r.Segments[:0]
	for _, seg := range r.Segments {
		if r.Point(seg.StartPointID) == nil || r.Point(seg.EndPointID) == nil {
			warnings = append(warnings,
				fmt.Sprintf("route %q: dropped segment %s with unresolved endpoint", r.Name, seg.ID))
			continue
		}
		kept = append(kept, seg)
	}
	r.Segments = kept
	r.RecomputeTotalLength()
	r.RecomputeFittings()
	return warnings
}

// Duplicate deep-copies the route under the given name. Every point and
// segment receives a fresh identifier, segments are re-pointed through
// the copied points, and positions are translated by offset so the copy
// does not overlap the original exactly.
func (r *CableRoute) Duplicate(name string, offset geometry.Point3D) *CableRoute {
	dup := &CableRoute{
		ID:          uuid.NewString(),
		Name:        name,
		RouteType:   r.RouteType,
		Voltage:     r.Voltage,
		Color:       r.Color,
		Visible:     r.Visible,
		TotalLength: r.TotalLength,
		Points:      make([]*CablePoint, 0, len(r.Points)),
		Segments:    make([]*CableSegment, 0, len(r.Segments)),
	}

	idMap := make(map[string]string, len(r.Points))
	for _, p := range r.Points {
		np := &CablePoint{
			ID:          uuid.NewString(),
			Position:    p.Position.Add(offset),
			Role:        p.Role,
			EquipmentID: p.EquipmentID,
		}
		if p.Fitting != nil {
			f := *p.Fitting
			np.Fitting = &f
		}
		idMap[p.ID] = np.ID
		dup.Points = append(dup.Points, np)
	}

	for _, seg := range r.Segments {
		ns := *seg
		ns.ID = uuid.NewString()
		ns.StartPointID = idMap[seg.StartPointID]
		ns.EndPointID = idMap[seg.EndPointID]
		ns.CableTypes = append([]catalog.CableType(nil), seg.CableTypes...)
		dup.Segments = append(dup.Segments, &ns)
	}
	return dup
}

// Positions returns the ordered point positions of the route.
func (r *CableRoute) Positions() []geometry.Point3D {
	out := make([]geometry.Point3D, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Position
	}
	return out
}
