// Package catalog provides tray style definitions and the preset registry.
package catalog

import (
	"fmt"
	"image/color"
	"sort"

	"golang.org/x/image/colornames"
)

// TrayStyle identifies the physical tray construction.
type TrayStyle string

const (
	StyleLadder   TrayStyle = "ladder"
	StyleWireMesh TrayStyle = "wire-mesh"
	StyleConduit  TrayStyle = "conduit"
	StyleBusbar   TrayStyle = "busbar"
)

// Valid returns true for a known tray style.
func (s TrayStyle) Valid() bool {
	switch s {
	case StyleLadder, StyleWireMesh, StyleConduit, StyleBusbar:
		return true
	}
	return false
}

// VoltageClass identifies the electrical classification of a route.
type VoltageClass string

const (
	VoltageHV   VoltageClass = "hv"
	VoltageMV   VoltageClass = "mv"
	VoltageLV   VoltageClass = "lv"
	VoltageData VoltageClass = "data"
)

// Valid returns true for a known voltage class.
func (v VoltageClass) Valid() bool {
	switch v {
	case VoltageHV, VoltageMV, VoltageLV, VoltageData:
		return true
	}
	return false
}

// RouteType identifies the role a route plays in the distribution layout.
type RouteType string

const (
	RouteMain   RouteType = "main"
	RouteBranch RouteType = "branch"
	RouteFeeder RouteType = "feeder"
)

// CableType identifies a class of cable a tray can carry.
type CableType string

const (
	CablePowerAC  CableType = "power-ac"
	CablePowerDC  CableType = "power-dc"
	CableEthernet CableType = "ethernet"
	CableFiber    CableType = "fiber"
	CableControl  CableType = "control"
)

// Preset is a named bundle of tray attributes used to seed new routes
// and segments. Width and height are in meters.
type Preset struct {
	Name       string       `json:"name"`
	Style      TrayStyle    `json:"style"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Voltage    VoltageClass `json:"voltage"`
	RouteType  RouteType    `json:"route_type"`
	Color      string       `json:"color"` // #RRGGBB
	CableTypes []CableType  `json:"cable_types"`
}

// Validate checks the preset for usable values.
func (p Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if !p.Style.Valid() {
		return fmt.Errorf("unknown tray style %q", p.Style)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("tray dimensions must be positive")
	}
	if !p.Voltage.Valid() {
		return fmt.Errorf("unknown voltage class %q", p.Voltage)
	}
	return nil
}

// HexColor formats a color as a #RRGGBB string.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHexColor parses a #RRGGBB string. Returns gray on malformed input.
func ParseHexColor(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// defaultPresetName is the fallback used when an unknown preset is requested.
const defaultPresetName = "LV Conduit"

// Registry of known presets
var registry = make(map[string]Preset)

// Register adds a preset to the registry.
func Register(p Preset) {
	registry[p.Name] = p
}

// Get returns a preset by name.
func Get(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// GetOrDefault returns the named preset, falling back to the default
// preset for unknown names.
func GetOrDefault(name string) Preset {
	if p, ok := registry[name]; ok {
		return p
	}
	return DefaultPreset()
}

// DefaultPreset returns the fallback preset.
func DefaultPreset() Preset {
	return registry[defaultPresetName]
}

// List returns all registered preset names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	// Built-in presets. Colors come from the SVG named palette so the UI
	// and persisted files agree on exact values.
	Register(Preset{
		Name:       "HV Busbar",
		Style:      StyleBusbar,
		Width:      0.40,
		Height:     0.15,
		Voltage:    VoltageHV,
		RouteType:  RouteMain,
		Color:      HexColor(colornames.Red),
		CableTypes: []CableType{CablePowerAC},
	})
	Register(Preset{
		Name:       "MV Ladder",
		Style:      StyleLadder,
		Width:      0.60,
		Height:     0.12,
		Voltage:    VoltageMV,
		RouteType:  RouteMain,
		Color:      HexColor(colornames.Orange),
		CableTypes: []CableType{CablePowerAC},
	})
	Register(Preset{
		Name:       "LV Ladder",
		Style:      StyleLadder,
		Width:      0.45,
		Height:     0.10,
		Voltage:    VoltageLV,
		RouteType:  RouteBranch,
		Color:      HexColor(colornames.Gold),
		CableTypes: []CableType{CablePowerAC, CablePowerDC},
	})
	Register(Preset{
		Name:       "LV Conduit",
		Style:      StyleConduit,
		Width:      0.10,
		Height:     0.10,
		Voltage:    VoltageLV,
		RouteType:  RouteFeeder,
		Color:      HexColor(colornames.Yellowgreen),
		CableTypes: []CableType{CablePowerAC, CableControl},
	})
	Register(Preset{
		Name:       "Data Wire Mesh",
		Style:      StyleWireMesh,
		Width:      0.30,
		Height:     0.08,
		Voltage:    VoltageData,
		RouteType:  RouteBranch,
		Color:      HexColor(colornames.Deepskyblue),
		CableTypes: []CableType{CableEthernet, CableFiber},
	})
	Register(Preset{
		Name:       "Data Conduit",
		Style:      StyleConduit,
		Width:      0.08,
		Height:     0.08,
		Voltage:    VoltageData,
		RouteType:  RouteFeeder,
		Color:      HexColor(colornames.Royalblue),
		CableTypes: []CableType{CableEthernet},
	})
}
