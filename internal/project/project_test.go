package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"cable-router/internal/catalog"
	"cable-router/internal/route"
	"cable-router/internal/routes"
	"cable-router/pkg/geometry"
)

func buildRoute(t *testing.T, name string, pts ...geometry.Point3D) *route.CableRoute {
	t.Helper()
	preset := catalog.DefaultPreset()
	r := route.New(name, preset)
	for i, p := range pts {
		if i == 0 {
			r.StartAt(p, "")
			continue
		}
		if _, err := r.ExtendTo(p, "", preset); err != nil {
			t.Fatalf("ExtendTo: %v", err)
		}
	}
	r.SealEnd()
	return r
}

func TestSaveLoadFile(t *testing.T) {
	r := buildRoute(t, "Feeder A",
		geometry.Point3D{},
		geometry.Point3D{X: 5},
		geometry.Point3D{X: 5, Z: 3})

	path := filepath.Join(t.TempDir(), "farm.trayproj")
	if err := Save(path, "Farm", []*route.CableRoute{r}, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", f.Version, CurrentVersion)
	}
	if f.Name != "Farm" {
		t.Errorf("Name = %q, want %q", f.Name, "Farm")
	}
	if len(f.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(f.Routes))
	}

	got := f.Routes[0]
	if got.ID != r.ID || got.Name != r.Name {
		t.Errorf("identity changed: %q/%q", got.ID, got.Name)
	}
	if len(got.Points) != 3 || len(got.Segments) != 2 {
		t.Errorf("got %d points / %d segments, want 3 / 2",
			len(got.Points), len(got.Segments))
	}
	if got.TotalLength != r.TotalLength {
		t.Errorf("TotalLength = %v, want %v", got.TotalLength, r.TotalLength)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.trayproj")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.trayproj")
	data := []byte(`{"version": 99, "routes": []}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a newer file version")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.trayproj")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted garbage")
	}
}

func TestHydrateLoadedRoutesWarnsOnOrphans(t *testing.T) {
	r := buildRoute(t, "Damaged",
		geometry.Point3D{},
		geometry.Point3D{X: 4})
	r.Segments = append(r.Segments, &route.CableSegment{
		ID:           "seg-orphan",
		StartPointID: "missing-a",
		EndPointID:   "missing-b",
	})

	path := filepath.Join(t.TempDir(), "damaged.trayproj")
	if err := Save(path, "", []*route.CableRoute{r}, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	mgr := routes.NewManager()
	warnings := mgr.Hydrate(f.Routes)
	if len(warnings) == 0 {
		t.Fatal("expected orphan-segment warnings, got none")
	}
	got := mgr.Routes()[0]
	if len(got.Segments) != 1 {
		t.Errorf("got %d segments after hydration, want 1", len(got.Segments))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "farm.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	a := buildRoute(t, "Main Run",
		geometry.Point3D{},
		geometry.Point3D{X: 10},
		geometry.Point3D{X: 10, Z: 10})
	b := buildRoute(t, "Branch",
		geometry.Point3D{X: 2},
		geometry.Point3D{X: 2, Z: 6})
	b.Segments[0].Locked = true

	ctx := context.Background()
	if err := store.SaveRoutes(ctx, []*route.CableRoute{a, b}); err != nil {
		t.Fatalf("SaveRoutes: %v", err)
	}

	got, err := store.LoadRoutes(ctx)
	if err != nil {
		t.Fatalf("LoadRoutes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d routes, want 2", len(got))
	}
	if got[0].Name != "Main Run" || got[1].Name != "Branch" {
		t.Errorf("order not preserved: %q, %q", got[0].Name, got[1].Name)
	}
	if len(got[0].Points) != 3 || len(got[0].Segments) != 2 {
		t.Errorf("route 0: %d points / %d segments, want 3 / 2",
			len(got[0].Points), len(got[0].Segments))
	}
	if got[0].TotalLength != a.TotalLength {
		t.Errorf("TotalLength = %v, want %v", got[0].TotalLength, a.TotalLength)
	}
	if !got[1].Segments[0].Locked {
		t.Error("locked flag lost")
	}

	// The middle point of the right-angle run carries a recomputed bend.
	mid := got[0].Points[1]
	if mid.Fitting == nil || mid.Fitting.Type != route.FittingElbow90 {
		t.Errorf("mid fitting = %+v, want 90 degree elbow", mid.Fitting)
	}
}

func TestStoreSaveReplacesPrevious(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "farm.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := buildRoute(t, "Old", geometry.Point3D{}, geometry.Point3D{X: 1})
	if err := store.SaveRoutes(ctx, []*route.CableRoute{first}); err != nil {
		t.Fatalf("SaveRoutes: %v", err)
	}
	second := buildRoute(t, "New", geometry.Point3D{}, geometry.Point3D{Z: 2})
	if err := store.SaveRoutes(ctx, []*route.CableRoute{second}); err != nil {
		t.Fatalf("SaveRoutes: %v", err)
	}

	got, err := store.LoadRoutes(ctx)
	if err != nil {
		t.Fatalf("LoadRoutes: %v", err)
	}
	if len(got) != 1 || got[0].Name != "New" {
		t.Fatalf("store not replaced: %d routes", len(got))
	}
}
