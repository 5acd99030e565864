package routes

import (
	"math"
	"strings"
	"testing"

	"cable-router/internal/catalog"
	"cable-router/internal/route"
	"cable-router/pkg/geometry"
)

func preset() catalog.Preset {
	return catalog.GetOrDefault("LV Conduit")
}

// drawSquareU draws a 3-segment route through 4 points.
func drawSquareU(t *testing.T, r *route.CableRoute) {
	t.Helper()
	r.StartAt(geometry.NewPoint3D(0, 0, 0), "")
	for _, p := range []geometry.Point3D{
		geometry.NewPoint3D(4, 0, 0),
		geometry.NewPoint3D(4, 0, 4),
		geometry.NewPoint3D(0, 0, 4),
	} {
		if _, err := r.ExtendTo(p, "", preset()); err != nil {
			t.Fatalf("ExtendTo: %v", err)
		}
	}
}

func TestCreateRouteNaming(t *testing.T) {
	m := NewManager()
	r1 := m.CreateRoute(preset())
	r2 := m.CreateRoute(preset())

	if r1.Name == r2.Name {
		t.Errorf("derived names should differ: %q vs %q", r1.Name, r2.Name)
	}
	if !strings.Contains(r1.Name, preset().Name) {
		t.Errorf("route name should mention the preset, got %q", r1.Name)
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 routes, got %d", m.Count())
	}
}

func TestDeleteRemovesFromGlobalStats(t *testing.T) {
	m := NewManager()
	keep := m.CreateRoute(preset())
	doomed := m.CreateRoute(preset())
	drawSquareU(t, doomed)
	keep.StartAt(geometry.NewPoint3D(9, 0, 9), "")

	before, _ := m.Stats()
	if before.Segments != 3 || before.Points != 5 {
		t.Fatalf("precondition: stats = %+v", before)
	}

	if err := m.Delete(doomed.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	after, _ := m.Stats()
	if after.Routes != 1 {
		t.Errorf("expected 1 route after delete, got %d", after.Routes)
	}
	if before.Segments-after.Segments != 3 {
		t.Errorf("global segment count should drop by exactly 3, dropped %d", before.Segments-after.Segments)
	}
	if before.Points-after.Points != 4 {
		t.Errorf("global point count should drop by exactly 4, dropped %d", before.Points-after.Points)
	}
	if after.TotalLength != 0 {
		t.Errorf("remaining route has no segments, global length should be 0, got %f", after.TotalLength)
	}
}

func TestDeleteNotFound(t *testing.T) {
	m := NewManager()
	m.CreateRoute(preset())
	rev := m.Revision()

	if err := m.Delete("no-such-route"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if m.Count() != 1 {
		t.Error("failed delete must not change state")
	}
	if m.Revision() != rev {
		t.Error("failed delete must not bump the revision")
	}
}

func TestDuplicate(t *testing.T) {
	m := NewManager()
	src := m.CreateRoute(preset())
	drawSquareU(t, src)

	dup, err := m.Duplicate(src.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == src.ID {
		t.Error("duplicate should have its own id")
	}
	if len(dup.Segments) != len(src.Segments) {
		t.Errorf("duplicate segment count %d != %d", len(dup.Segments), len(src.Segments))
	}
	if math.Abs(dup.TotalLength-src.TotalLength) > 1e-9 {
		t.Errorf("duplicate length %f != %f", dup.TotalLength, src.TotalLength)
	}
	if m.Count() != 2 {
		t.Errorf("duplicate should be appended to the list, count=%d", m.Count())
	}

	if _, err := m.Duplicate("no-such-route"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleVisibility(t *testing.T) {
	m := NewManager()
	r := m.CreateRoute(preset())
	drawSquareU(t, r)
	lengthBefore := r.TotalLength

	visible, err := m.ToggleVisibility(r.ID)
	if err != nil || visible {
		t.Fatalf("first toggle should hide: visible=%v err=%v", visible, err)
	}
	visible, err = m.ToggleVisibility(r.ID)
	if err != nil || !visible {
		t.Fatalf("second toggle should show: visible=%v err=%v", visible, err)
	}
	if r.TotalLength != lengthBefore || len(r.Segments) != 3 {
		t.Error("visibility toggles must not touch geometry")
	}

	if _, err := m.ToggleVisibility("no-such-route"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStatsMatchDirectRecomputation(t *testing.T) {
	m := NewManager()
	a := m.CreateRoute(preset())
	drawSquareU(t, a)
	b := m.CreateRoute(preset())
	b.StartAt(geometry.NewPoint3D(0, 0, 0), "")
	if _, err := b.ExtendTo(geometry.NewPoint3D(0, 0, 10), "", preset()); err != nil {
		t.Fatal(err)
	}

	global, perRoute := m.Stats()
	var wantLength float64
	var wantPoints, wantSegments int
	for _, r := range m.Routes() {
		wantPoints += len(r.Points)
		wantSegments += len(r.Segments)
		for _, seg := range r.Segments {
			wantLength += r.SegmentLength(seg)
		}
	}
	if global.Points != wantPoints || global.Segments != wantSegments {
		t.Errorf("global counters %+v do not match recomputation (%d points, %d segments)",
			global, wantPoints, wantSegments)
	}
	if math.Abs(global.TotalLength-wantLength) > 1e-9 {
		t.Errorf("global length %f != %f", global.TotalLength, wantLength)
	}
	if len(perRoute) != 2 {
		t.Fatalf("expected 2 per-route entries, got %d", len(perRoute))
	}

	rs, err := m.RouteStats(a.ID)
	if err != nil {
		t.Fatalf("RouteStats: %v", err)
	}
	if rs.Segments != 3 || math.Abs(rs.TotalLength-12) > 1e-9 {
		t.Errorf("route stats = %+v", rs)
	}
	if _, err := m.RouteStats("no-such-route"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRevisionBumpsOnMutation(t *testing.T) {
	m := NewManager()
	rev := m.Revision()

	r := m.CreateRoute(preset())
	if m.Revision() <= rev {
		t.Error("create should bump revision")
	}
	rev = m.Revision()

	if _, err := m.ToggleVisibility(r.ID); err != nil {
		t.Fatal(err)
	}
	if m.Revision() <= rev {
		t.Error("toggle should bump revision")
	}
	rev = m.Revision()

	m.Touch()
	if m.Revision() <= rev {
		t.Error("touch should bump revision")
	}
}

func TestHydrateSanitizes(t *testing.T) {
	m := NewManager()
	r := route.New("loaded", preset())
	r.StartAt(geometry.NewPoint3D(0, 0, 0), "")
	if _, err := r.ExtendTo(geometry.NewPoint3D(3, 0, 0), "", preset()); err != nil {
		t.Fatal(err)
	}
	r.Segments = append(r.Segments, &route.CableSegment{
		ID: "orphan", StartPointID: "missing-a", EndPointID: "missing-b",
	})

	warnings := m.Hydrate([]*route.CableRoute{r})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	got := m.Get(r.ID)
	if got == nil || len(got.Segments) != 1 {
		t.Fatal("hydrated route should keep only valid segments")
	}
	if math.Abs(got.TotalLength-3) > 1e-9 {
		t.Errorf("hydrated total length should be recomputed, got %f", got.TotalLength)
	}
}
