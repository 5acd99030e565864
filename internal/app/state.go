// Package app provides application lifecycle management, shared state,
// and events.
package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"cable-router/internal/equipment"
	"cable-router/internal/project"
	"cable-router/internal/routes"
	"cable-router/internal/session"
)

// State holds the application state shared between the UI layers: the
// route manager, the drawing session, the equipment set and the current
// project file, plus the event bus that keeps panels in sync.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	ProjectName string
	Modified    bool

	// Model
	Manager   *routes.Manager
	Equipment *equipment.Set
	Session   *session.Session

	// Warnings collected while loading the current project, shown once
	// in the UI and then cleared.
	LoadWarnings []string

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventRoutesChanged
	EventSelectionChanged
	EventModeChanged
	EventPresetChanged
	EventSnapChanged
	EventEquipmentChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty layout and the
// demo equipment set.
func NewState() *State {
	equip := equipment.DemoFarm()
	mgr := routes.NewManager()
	s := &State{
		Manager:   mgr,
		Equipment: equip,
		Session:   session.New(mgr, equip),
		listeners: make(map[EventType][]EventListener),
	}
	s.Session.OnChange(func() {
		s.SetModified(true)
		s.Emit(EventRoutesChanged, nil)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// LoadProject loads a project from the specified path, replacing the
// current layout. Recoverable problems in the file (orphaned segments)
// are repaired and reported through LoadWarnings.
func (s *State) LoadProject(path string) error {
	f, err := project.Load(path)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}

	warnings := s.Manager.Hydrate(f.Routes)

	if len(f.Equipment) > 0 {
		set := equipment.NewSet()
		for _, e := range f.Equipment {
			set.Add(e)
		}
		s.mu.Lock()
		s.Equipment = set
		s.mu.Unlock()
		s.Session.SetSnapSource(set)
		s.Emit(EventEquipmentChanged, nil)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.ProjectName = f.Name
	if s.ProjectName == "" {
		s.ProjectName = projectNameFromPath(path)
	}
	s.Modified = false
	s.LoadWarnings = warnings
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	s.Emit(EventRoutesChanged, nil)
	return nil
}

// SaveProject saves the current layout to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	name := s.ProjectName
	equip := s.Equipment
	s.mu.RUnlock()
	if name == "" {
		name = projectNameFromPath(path)
	}

	if err := project.Save(path, name, s.Manager.Routes(), equip.All()); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.ProjectName = name
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}

// TakeLoadWarnings returns and clears the warnings from the last load.
func (s *State) TakeLoadWarnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.LoadWarnings
	s.LoadWarnings = nil
	return w
}

func projectNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
