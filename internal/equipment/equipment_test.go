package equipment

import (
	"testing"

	"cable-router/internal/snap"
	"cable-router/pkg/geometry"
)

func TestSetAddRemoveLookup(t *testing.T) {
	s := NewSet()
	s.Add(&Equipment{ID: "pdu-1", Name: "PDU 1", Kind: KindPDU, Position: geometry.NewPoint3D(1, 0, 2)})

	pos, ok := s.LookupPosition("pdu-1")
	if !ok || pos != geometry.NewPoint3D(1, 0, 2) {
		t.Fatalf("LookupPosition = %v, %v", pos, ok)
	}
	if _, ok := s.LookupPosition("nope"); ok {
		t.Error("lookup of unknown id should report not found")
	}

	if !s.Move("pdu-1", geometry.NewPoint3D(5, 0, 5)) {
		t.Fatal("Move should succeed")
	}
	if pos, _ := s.LookupPosition("pdu-1"); pos != geometry.NewPoint3D(5, 0, 5) {
		t.Errorf("position after move = %v", pos)
	}

	if !s.Remove("pdu-1") {
		t.Fatal("Remove should succeed")
	}
	if s.Remove("pdu-1") {
		t.Error("second remove should report not found")
	}
	if len(s.All()) != 0 {
		t.Error("set should be empty after remove")
	}
}

func TestAddReplacesExistingID(t *testing.T) {
	s := NewSet()
	s.Add(&Equipment{ID: "x", Position: geometry.NewPoint3D(0, 0, 0)})
	s.Add(&Equipment{ID: "x", Position: geometry.NewPoint3D(9, 0, 9)})

	if len(s.All()) != 1 {
		t.Fatalf("re-adding an id should replace, have %d items", len(s.All()))
	}
	if pos, _ := s.LookupPosition("x"); pos != geometry.NewPoint3D(9, 0, 9) {
		t.Errorf("replacement position = %v", pos)
	}
}

func TestSnapPointsFollowPlacement(t *testing.T) {
	s := NewSet()
	s.Add(&Equipment{
		ID:       "swb-1",
		Name:     "Switchboard 1",
		Kind:     KindSwitchboard,
		Position: geometry.NewPoint3D(10, 0, 2),
		Connections: []ConnectionPoint{
			{Offset: geometry.NewPoint3D(0, 1.8, 0), Type: snap.TypeConnection},
		},
	})

	points := s.SnapPoints()
	// One connection point plus the center point.
	if len(points) != 2 {
		t.Fatalf("expected 2 snap points, got %d", len(points))
	}
	if points[0].Position != geometry.NewPoint3D(10, 1.8, 2) {
		t.Errorf("connection snap position = %v", points[0].Position)
	}
	if points[0].Type != snap.TypeConnection || points[1].Type != snap.TypeCenter {
		t.Error("snap point types should reflect their source")
	}

	// Moving the equipment must be visible on the next derivation.
	s.Move("swb-1", geometry.NewPoint3D(0, 0, 0))
	points = s.SnapPoints()
	if points[0].Position != geometry.NewPoint3D(0, 1.8, 0) {
		t.Errorf("snap points must track placement, got %v", points[0].Position)
	}
}

func TestDemoFarmProvidesSnapTargets(t *testing.T) {
	s := DemoFarm()
	if len(s.All()) == 0 {
		t.Fatal("demo farm should place equipment")
	}
	if len(s.SnapPoints()) == 0 {
		t.Fatal("demo farm should expose snap points")
	}
}
