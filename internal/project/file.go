// Package project persists route layouts as JSON project files and in
// a SQLite store. Loading hydrates the model directly; the drawing
// state machine is never involved.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"cable-router/internal/equipment"
	"cable-router/internal/route"
)

// CurrentVersion is written to new project files.
const CurrentVersion = 1

// File is the JSON structure of a .trayproj file. Routes are stored in
// the external wire shape: plain {x,y,z} triples, no engine-internal
// types.
type File struct {
	Version   int                    `json:"version"`
	Name      string                 `json:"name,omitempty"`
	Routes    []*route.CableRoute    `json:"routes"`
	Equipment []*equipment.Equipment `json:"equipment,omitempty"`
}

// Save writes a project file.
func Save(path string, name string, rts []*route.CableRoute, equip []*equipment.Equipment) error {
	f := File{
		Version:   CurrentVersion,
		Name:      name,
		Routes:    rts,
		Equipment: equip,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads and decodes a project file. Sanitizing malformed routes
// (dropping orphaned segments, recomputing totals) is the hydration
// step's job, so a file with recoverable problems still loads.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid project file: %w", err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("project file version %d is newer than supported version %d",
			f.Version, CurrentVersion)
	}
	for _, r := range f.Routes {
		if r.Points == nil {
			r.Points = make([]*route.CablePoint, 0)
		}
		if r.Segments == nil {
			r.Segments = make([]*route.CableSegment, 0)
		}
	}
	return &f, nil
}
