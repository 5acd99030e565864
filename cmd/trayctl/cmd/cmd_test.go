package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cable-router/internal/catalog"
	"cable-router/internal/project"
	"cable-router/internal/route"
	"cable-router/pkg/geometry"
)

func writeProject(t *testing.T, dir string) string {
	t.Helper()
	preset := catalog.DefaultPreset()
	r := route.New("Feeder", preset)
	r.StartAt(geometry.Point3D{}, "")
	if _, err := r.ExtendTo(geometry.Point3D{X: 8}, "", preset); err != nil {
		t.Fatalf("ExtendTo: %v", err)
	}
	if _, err := r.ExtendTo(geometry.Point3D{X: 8, Z: 4}, "", preset); err != nil {
		t.Fatalf("ExtendTo: %v", err)
	}
	r.SealEnd()

	path := filepath.Join(dir, "farm.trayproj")
	if err := project.Save(path, "farm", []*route.CableRoute{r}, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return path
}

func TestLoadManager(t *testing.T) {
	path := writeProject(t, t.TempDir())

	mgr, warnings, err := loadManager(path)
	if err != nil {
		t.Fatalf("loadManager: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	global, _ := mgr.Stats()
	if global.Routes != 1 || global.Segments != 2 {
		t.Errorf("stats = %+v", global)
	}
	if global.TotalLength != 12 {
		t.Errorf("TotalLength = %v, want 12", global.TotalLength)
	}
}

func TestExportWritesBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, dir)

	out := filepath.Join(dir, "bom.json")
	exportOutput = out
	defer func() { exportOutput = "" }()

	if err := runExport(exportCmd, []string{path}); err != nil {
		t.Fatalf("runExport: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var bom billOfMaterials
	if err := json.Unmarshal(data, &bom); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if bom.Routes != 1 || bom.TotalLength != 12 {
		t.Errorf("bom = %+v", bom)
	}
	// The right-angle corner produces one 90 degree elbow.
	if bom.Fittings[route.FittingElbow90] != 1 {
		t.Errorf("Fittings = %v, want one elbow-90", bom.Fittings)
	}
}

func TestDBSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeProject(t, dir)
	db := filepath.Join(dir, "layouts.db")

	if err := runDBSave(dbSaveCmd, []string{path, db}); err != nil {
		t.Fatalf("runDBSave: %v", err)
	}

	out := filepath.Join(dir, "restored.trayproj")
	if err := runDBLoad(dbLoadCmd, []string{db, out}); err != nil {
		t.Fatalf("runDBLoad: %v", err)
	}

	f, err := project.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Routes) != 1 || f.Routes[0].Name != "Feeder" {
		t.Fatalf("restored %d routes", len(f.Routes))
	}
	if len(f.Routes[0].Segments) != 2 {
		t.Errorf("restored %d segments, want 2", len(f.Routes[0].Segments))
	}
}
