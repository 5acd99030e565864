// Package session turns pointer clicks into route geometry. It owns
// the drawing state machine and the per-session snap settings.
package session

import (
	"errors"

	"cable-router/internal/catalog"
	"cable-router/internal/route"
	"cable-router/internal/routes"
	"cable-router/internal/snap"
	"cable-router/pkg/geometry"
)

// ErrNotDrawing is returned for clicks outside an active drawing pass.
var ErrNotDrawing = errors.New("no drawing in progress")

// ErrNoActiveRoute is returned when draw mode is entered without a route.
var ErrNoActiveRoute = errors.New("no active route")

// Mode is the interaction tool selected in the UI.
type Mode string

const (
	ModeSelect   Mode = "select"
	ModeDraw     Mode = "draw"
	ModeEdit     Mode = "edit"
	ModeDelete   Mode = "delete"
	ModeJunction Mode = "junction"
)

// State is the drawing state machine state.
type State int

const (
	StateIdle State = iota
	StateDrawing
)

func (s State) String() string {
	if s == StateDrawing {
		return "drawing"
	}
	return "idle"
}

// SnapSource supplies the current snap targets. The session queries it
// fresh on every click; equipment may move between clicks.
type SnapSource interface {
	SnapPoints() []snap.Point
}

// hitTolerance is the plan-view pick distance for edit, delete and
// junction clicks, in world units.
const hitTolerance = 0.4

// Session is the drawing controller. Commit policy is per-click: every
// accepted click after the first immediately appends one point and one
// segment to the active route; only the un-committed first click lives
// in the session buffer, so cancel never mutates the route.
//
// All methods are called from the UI event loop; every operation
// completes before the next input arrives.
type Session struct {
	manager *routes.Manager
	snaps   SnapSource

	mode     Mode
	state    State
	activeID string

	// pending is the resolved first click of a fresh route, not yet
	// committed. Nil otherwise.
	pending *pendingPoint

	Settings snap.Settings
	preset   catalog.Preset

	onChange func()
}

type pendingPoint struct {
	pos     geometry.Point3D
	equipID string
}

// New creates an idle session in select mode.
func New(manager *routes.Manager, snaps SnapSource) *Session {
	return &Session{
		manager:  manager,
		snaps:    snaps,
		mode:     ModeSelect,
		Settings: snap.DefaultSettings(),
		preset:   catalog.DefaultPreset(),
	}
}

// OnChange registers a callback fired after every session-driven
// mutation or state change.
func (s *Session) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Session) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// SetSnapSource replaces the snap target provider, used when a loaded
// project brings its own equipment set.
func (s *Session) SetSnapSource(snaps SnapSource) {
	s.snaps = snaps
}

// snapPoints queries the snap source, tolerating a session without one.
func (s *Session) snapPoints() []snap.Point {
	if s.snaps == nil {
		return nil
	}
	return s.snaps.SnapPoints()
}

// Mode returns the current tool mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches the interaction tool. Leaving draw mode cancels any
// drawing in progress.
func (s *Session) SetMode(m Mode) {
	if m != ModeDraw && s.state == StateDrawing {
		s.Cancel()
	}
	s.mode = m
	s.notify()
}

// State returns the drawing state.
func (s *Session) State() State {
	return s.state
}

// Preset returns the preset used for new segments.
func (s *Session) Preset() catalog.Preset {
	return s.preset
}

// SetPreset selects the preset for subsequent segments. Unknown names
// fall back to the default preset.
func (s *Session) SetPreset(name string) {
	s.preset = catalog.GetOrDefault(name)
	s.notify()
}

// ActiveRoute returns the route being drawn, or nil.
func (s *Session) ActiveRoute() *route.CableRoute {
	if s.activeID == "" {
		return nil
	}
	return s.manager.Get(s.activeID)
}

// SetActiveRoute changes the active route. Switching while drawing is
// an implicit cancel followed by re-entry on the new route.
func (s *Session) SetActiveRoute(id string) {
	if id == s.activeID {
		return
	}
	wasDrawing := s.state == StateDrawing
	if wasDrawing {
		s.Cancel()
	}
	s.activeID = id
	if wasDrawing && id != "" && s.manager.Get(id) != nil {
		s.state = StateDrawing
		s.mode = ModeDraw
	}
	s.notify()
}

// RouteDeleted drops the session's reference to a route removed from
// the manager. Deleting the active route ends the drawing pass.
func (s *Session) RouteDeleted(id string) {
	if id != s.activeID {
		return
	}
	s.activeID = ""
	s.pending = nil
	s.state = StateIdle
	s.notify()
}

// EnterDraw starts a drawing pass on the given route.
func (s *Session) EnterDraw(routeID string) error {
	if routeID == "" || s.manager.Get(routeID) == nil {
		return ErrNoActiveRoute
	}
	if s.state == StateDrawing {
		s.Cancel()
	}
	s.activeID = routeID
	s.mode = ModeDraw
	s.state = StateDrawing
	s.pending = nil
	s.notify()
	return nil
}

// Click handles an accepted pointer click while drawing. The raw
// position is resolved against snap settings and the current snap
// targets, then committed per the commit-per-click policy. A click that
// resolves onto the previous position is a no-op.
func (s *Session) Click(raw geometry.Point3D) (snap.Result, error) {
	if s.state != StateDrawing {
		return snap.Result{}, ErrNotDrawing
	}
	r := s.ActiveRoute()
	if r == nil {
		return snap.Result{}, ErrNoActiveRoute
	}

	res := snap.Resolve(raw, s.Settings, s.snapPoints())
	equipID := ""
	if res.Target != nil {
		equipID = res.Target.ObjectID
	}

	switch {
	case len(r.Points) == 0 && s.pending == nil:
		// First click of a fresh route: buffer only, commit on the
		// second click so cancel leaves the route untouched.
		s.pending = &pendingPoint{pos: res.Position, equipID: equipID}
		s.notify()
		return res, nil

	case s.pending != nil:
		if res.Position == s.pending.pos {
			return res, route.ErrDegenerate
		}
		r.StartAt(s.pending.pos, s.pending.equipID)
		s.pending = nil
		if _, err := r.ExtendTo(res.Position, equipID, s.preset); err != nil {
			return res, err
		}

	default:
		if _, err := r.ExtendTo(res.Position, equipID, s.preset); err != nil {
			return res, err
		}
	}

	s.manager.Touch()
	s.notify()
	return res, nil
}

// PendingPosition returns the buffered first click, used by the canvas
// to rubber-band the next segment. Second return is false when nothing
// is buffered.
func (s *Session) PendingPosition() (geometry.Point3D, bool) {
	if s.pending == nil {
		return geometry.Point3D{}, false
	}
	return s.pending.pos, true
}

// Finish ends the drawing pass: the last point placed on the route is
// retagged as the route end and the session returns to idle. Segments
// committed during the pass remain.
func (s *Session) Finish() {
	if s.state != StateDrawing {
		return
	}
	if r := s.ActiveRoute(); r != nil {
		r.SealEnd()
		s.manager.Touch()
	}
	s.pending = nil
	s.state = StateIdle
	s.notify()
}

// Cancel discards the pending click without mutating the route and
// returns to idle. Segments already committed remain.
func (s *Session) Cancel() {
	if s.state != StateDrawing {
		return
	}
	s.pending = nil
	s.state = StateIdle
	s.notify()
}

// SelectAt returns the id of the route whose geometry is closest to the
// click within the pick tolerance, or "".
func (s *Session) SelectAt(p geometry.Point3D) string {
	bestID := ""
	bestDist := hitTolerance
	for _, r := range s.manager.Routes() {
		if !r.Visible {
			continue
		}
		for _, seg := range r.Segments {
			a := r.Point(seg.StartPointID)
			b := r.Point(seg.EndPointID)
			if a == nil || b == nil {
				continue
			}
			if d := geometry.DistanceToSegmentXZ(p, a.Position, b.Position); d <= bestDist {
				bestDist = d
				bestID = r.ID
			}
		}
	}
	return bestID
}

// DeleteSegmentAt removes the segment nearest to the click within the
// pick tolerance. Returns false when nothing is close enough.
func (s *Session) DeleteSegmentAt(p geometry.Point3D) bool {
	var bestRoute *route.CableRoute
	var bestSeg *route.CableSegment
	bestDist := hitTolerance
	for _, r := range s.manager.Routes() {
		if !r.Visible {
			continue
		}
		for _, seg := range r.Segments {
			a := r.Point(seg.StartPointID)
			b := r.Point(seg.EndPointID)
			if a == nil || b == nil {
				continue
			}
			if d := geometry.DistanceToSegmentXZ(p, a.Position, b.Position); d <= bestDist {
				bestDist = d
				bestRoute = r
				bestSeg = seg
			}
		}
	}
	if bestSeg == nil || bestSeg.Locked {
		return false
	}
	if !bestRoute.RemoveSegment(bestSeg.ID) {
		return false
	}
	s.manager.Touch()
	s.notify()
	return true
}

// JunctionAt retags the route point nearest to the click as a junction.
// Returns false when no point is within the pick tolerance.
func (s *Session) JunctionAt(p geometry.Point3D) bool {
	var bestRoute *route.CableRoute
	bestPointID := ""
	bestDist := hitTolerance
	for _, r := range s.manager.Routes() {
		if !r.Visible {
			continue
		}
		for _, pt := range r.Points {
			if d := p.Distance(pt.Position); d <= bestDist {
				bestDist = d
				bestRoute = r
				bestPointID = pt.ID
			}
		}
	}
	if bestRoute == nil || !bestRoute.MarkJunction(bestPointID) {
		return false
	}
	s.manager.Touch()
	s.notify()
	return true
}

// MovePointAt relocates the active route's point nearest to from onto
// the resolved position of to. Used by edit mode. Returns false when no
// point is within the pick tolerance.
func (s *Session) MovePointAt(from, to geometry.Point3D) bool {
	r := s.ActiveRoute()
	if r == nil {
		return false
	}
	bestPointID := ""
	bestDist := hitTolerance
	for _, pt := range r.Points {
		if d := from.Distance(pt.Position); d <= bestDist {
			bestDist = d
			bestPointID = pt.ID
		}
	}
	if bestPointID == "" {
		return false
	}
	res := snap.Resolve(to, s.Settings, s.snapPoints())
	if !r.MovePoint(bestPointID, res.Position) {
		return false
	}
	s.manager.Touch()
	s.notify()
	return true
}
