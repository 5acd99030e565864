package snap

import (
	"testing"

	"cable-router/pkg/geometry"
)

func pt(x, y, z float64) geometry.Point3D {
	return geometry.Point3D{X: x, Y: y, Z: z}
}

func TestResolveObjectSnapWithinRadius(t *testing.T) {
	points := []Point{
		{Position: pt(3, 0, 0), ObjectID: "pdu-1", Type: TypeConnection},
	}
	s := Settings{ObjectSnap: true, Radius: 0.5}

	res := Resolve(pt(3.1, 0, 0), s, points)
	if res.Position != pt(3, 0, 0) {
		t.Errorf("expected exact snap-point position, got %v", res.Position)
	}
	if res.Target == nil || res.Target.ObjectID != "pdu-1" {
		t.Error("result should carry the snap target")
	}
}

func TestResolveOutsideRadius(t *testing.T) {
	points := []Point{
		{Position: pt(3, 0, 0), ObjectID: "pdu-1"},
	}
	s := Settings{ObjectSnap: true, Radius: 0.5}

	raw := pt(4, 0, 0)
	res := Resolve(raw, s, points)
	if res.Position != raw {
		t.Errorf("point outside radius should pass through, got %v", res.Position)
	}
	if res.Target != nil {
		t.Error("no target expected outside radius")
	}
}

func TestResolveRadiusBoundaryIsExclusive(t *testing.T) {
	points := []Point{{Position: pt(0, 0, 0)}}
	s := Settings{ObjectSnap: true, Radius: 0.5}

	// Distance exactly equal to the radius does not capture.
	raw := pt(0.5, 0, 0)
	if res := Resolve(raw, s, points); res.Target != nil {
		t.Error("capture requires distance strictly less than the radius")
	}
}

func TestResolveGridSnap(t *testing.T) {
	s := Settings{GridSnap: true, GridSize: 1}
	res := Resolve(pt(1.4, 0.2, 2.7), s, nil)
	if res.Position != pt(1, 0, 3) {
		t.Errorf("expected grid-quantized point, got %v", res.Position)
	}
}

// Object snap takes priority over grid snap when both would apply.
func TestResolveObjectSnapBeatsGrid(t *testing.T) {
	points := []Point{
		{Position: pt(3.2, 0, 0), ObjectID: "switchboard-1"},
	}
	s := Settings{ObjectSnap: true, Radius: 0.5, GridSnap: true, GridSize: 1}

	res := Resolve(pt(3.1, 0, 0), s, points)
	if res.Position != pt(3.2, 0, 0) {
		t.Errorf("object snap must override the grid, got %v", res.Position)
	}
}

func TestResolveNearestOfSeveral(t *testing.T) {
	points := []Point{
		{Position: pt(0, 0, 0), ObjectID: "a"},
		{Position: pt(1, 0, 0), ObjectID: "b"},
		{Position: pt(1.2, 0, 0), ObjectID: "c"},
	}
	s := Settings{ObjectSnap: true, Radius: 2}

	res := Resolve(pt(1.05, 0, 0), s, points)
	if res.Target == nil || res.Target.ObjectID != "b" {
		t.Errorf("expected nearest snap point b, got %+v", res.Target)
	}
}

func TestResolveDisabled(t *testing.T) {
	points := []Point{{Position: pt(0.1, 0, 0)}}
	raw := pt(0.13, 0.21, 0.34)

	res := Resolve(raw, Settings{}, points)
	if res.Position != raw || res.Target != nil {
		t.Errorf("with everything disabled the raw point passes through, got %v", res.Position)
	}
}

func TestResolveDeterministic(t *testing.T) {
	points := []Point{
		{Position: pt(1, 0, 0), ObjectID: "a"},
		{Position: pt(2, 0, 0), ObjectID: "b"},
	}
	s := DefaultSettings()
	raw := pt(1.45, 0, 0)

	first := Resolve(raw, s, points)
	for i := 0; i < 10; i++ {
		again := Resolve(raw, s, points)
		if again.Position != first.Position {
			t.Fatalf("resolution not deterministic: %v vs %v", again.Position, first.Position)
		}
	}
}
