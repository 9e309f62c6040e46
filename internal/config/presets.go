package config

import "sort"

var Presets = map[string]*Config{
	"gallery": {
		FPS: 60, Theme: "cyberpunk",
		Strip: StripConfig{Cards: 24, CardWidth: 18, Gap: 2},
	},
	"wide": {
		FPS: 60, Theme: "ocean",
		Options: PanOptions{IsResizable: boolPtr(true)},
		Strip:   StripConfig{Cards: 60, CardWidth: 22, Gap: 1},
	},
	"static": {
		FPS: 30, Theme: "minimal",
		Options: PanOptions{PauseOnMouseOut: boolPtr(false)},
		Strip:   StripConfig{Cards: 12, CardWidth: 16, Gap: 2},
	},
	"touch": {
		FPS: 60, Theme: "retro", Touch: true,
		Strip: StripConfig{Cards: 30, CardWidth: 14, Gap: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func boolPtr(b bool) *bool { return &b }
