package catalog

import "testing"

func TestBuiltinPresetsValidate(t *testing.T) {
	names := List()
	if len(names) == 0 {
		t.Fatal("no built-in presets registered")
	}
	for _, name := range names {
		p, ok := Get(name)
		if !ok {
			t.Fatalf("List returned unregistered preset %q", name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("built-in preset %q invalid: %v", name, err)
		}
	}
}

func TestGetOrDefaultFallsBack(t *testing.T) {
	p := GetOrDefault("No Such Preset")
	if p.Name != DefaultPreset().Name {
		t.Errorf("expected default preset, got %q", p.Name)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default preset invalid: %v", err)
	}
}

func TestPresetValidate(t *testing.T) {
	tests := []struct {
		name    string
		preset  Preset
		wantErr bool
	}{
		{"valid", Preset{Name: "x", Style: StyleLadder, Width: 0.3, Height: 0.1, Voltage: VoltageLV}, false},
		{"missing name", Preset{Style: StyleLadder, Width: 0.3, Height: 0.1, Voltage: VoltageLV}, true},
		{"bad style", Preset{Name: "x", Style: "cardboard", Width: 0.3, Height: 0.1, Voltage: VoltageLV}, true},
		{"zero width", Preset{Name: "x", Style: StyleLadder, Height: 0.1, Voltage: VoltageLV}, true},
		{"bad voltage", Preset{Name: "x", Style: StyleLadder, Width: 0.3, Height: 0.1, Voltage: "uhv"}, true},
	}
	for _, tt := range tests {
		err := tt.preset.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	for _, name := range List() {
		p, _ := Get(name)
		c := ParseHexColor(p.Color)
		if HexColor(c) != p.Color {
			t.Errorf("%s: color %q did not round-trip, got %q", name, p.Color, HexColor(c))
		}
	}
}

func TestParseHexColorMalformed(t *testing.T) {
	c := ParseHexColor("not-a-color")
	if c.R != 128 || c.G != 128 || c.B != 128 {
		t.Errorf("malformed color should fall back to gray, got %v", c)
	}
}
