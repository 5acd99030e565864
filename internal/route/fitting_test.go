package route

import (
	"math"
	"testing"

	"cable-router/pkg/geometry"
)

func pt(x, y, z float64) geometry.Point3D {
	return geometry.Point3D{X: x, Y: y, Z: z}
}

func TestClassifyBendRightAngle(t *testing.T) {
	prev := pt(0, 0, 0)
	cur := pt(5, 0, 0)
	next := pt(5, 0, 5)

	f := ClassifyBend(&prev, cur, &next)
	if f == nil {
		t.Fatal("right-angle bend should produce a fitting")
	}
	if f.Type != FittingElbow90 {
		t.Errorf("expected elbow-90, got %s", f.Type)
	}
	if math.Abs(f.Rotation) > 1e-9 {
		t.Errorf("incoming heading should be 0, got %f", f.Rotation)
	}
}

func TestClassifyBend45(t *testing.T) {
	prev := pt(0, 0, 0)
	cur := pt(5, 0, 0)
	next := pt(10, 0, 5) // heading change of π/4

	f := ClassifyBend(&prev, cur, &next)
	if f == nil {
		t.Fatal("45-degree bend should produce a fitting")
	}
	if f.Type != FittingElbow45 {
		t.Errorf("expected elbow-45, got %s", f.Type)
	}
}

func TestClassifyBendStraight(t *testing.T) {
	prev := pt(0, 0, 0)
	cur := pt(5, 0, 0)
	next := pt(10, 0, 0)

	if f := ClassifyBend(&prev, cur, &next); f != nil {
		t.Errorf("straight run should need no fitting, got %s", f.Type)
	}
}

func TestClassifyBendEndpoints(t *testing.T) {
	cur := pt(5, 0, 0)
	other := pt(0, 0, 0)

	if f := ClassifyBend(nil, cur, &other); f != nil {
		t.Error("first point of a route is not a bend")
	}
	if f := ClassifyBend(&other, cur, nil); f != nil {
		t.Error("last point of a route is not a bend")
	}
	if f := ClassifyBend(nil, cur, nil); f != nil {
		t.Error("isolated point is not a bend")
	}
}

func TestClassifyBendIgnoresVertical(t *testing.T) {
	// Same horizontal right angle, but the corner is elevated.
	prev := pt(0, 0, 0)
	cur := pt(5, 3, 0)
	next := pt(5, 3, 5)

	f := ClassifyBend(&prev, cur, &next)
	if f == nil || f.Type != FittingElbow90 {
		t.Fatalf("classification should use the horizontal projection only, got %v", f)
	}
}

func TestClassifyBendDeterministic(t *testing.T) {
	prev := pt(1, 0, 2)
	cur := pt(4, 0, 2)
	next := pt(4, 0, 6)

	first := ClassifyBend(&prev, cur, &next)
	for i := 0; i < 10; i++ {
		again := ClassifyBend(&prev, cur, &next)
		if (first == nil) != (again == nil) {
			t.Fatal("classification not deterministic")
		}
		if first != nil && (first.Type != again.Type || first.Rotation != again.Rotation) {
			t.Fatalf("classification not deterministic: %v vs %v", first, again)
		}
	}
}

// The 90° and 45° bands must never both claim the same heading change.
func TestFittingBandsMutuallyExclusive(t *testing.T) {
	if elbow45Max >= elbow90Min {
		t.Fatalf("bands overlap: elbow-45 ends at %f, elbow-90 starts at %f", elbow45Max, elbow90Min)
	}

	prev := pt(0, 0, 0)
	cur := pt(1, 0, 0)
	// Sweep offset by half a step so no sample lands exactly on a band edge.
	for diff := math.Pi / 1440; diff <= math.Pi; diff += math.Pi / 720 {
		next := pt(1+math.Cos(diff), 0, math.Sin(diff))
		f := ClassifyBend(&prev, cur, &next)
		in90 := diff > elbow90Min && diff < elbow90Max
		in45 := diff > elbow45Min && diff < elbow45Max
		switch {
		case in90 && (f == nil || f.Type != FittingElbow90):
			t.Fatalf("diff %f should classify elbow-90, got %v", diff, f)
		case in45 && (f == nil || f.Type != FittingElbow45):
			t.Fatalf("diff %f should classify elbow-45, got %v", diff, f)
		case !in90 && !in45 && f != nil:
			t.Fatalf("diff %f should need no fitting, got %s", diff, f.Type)
		}
	}
}
