package config

import (
	"os"

	"github.com/san-kum/griddlepan/internal/pan"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 60
	DefaultCards     = 24
	DefaultCardWidth = 18
	DefaultGap       = 2
	DefaultTheme     = "cyberpunk"
)

type Config struct {
	Options PanOptions  `yaml:"options"`
	Touch   bool        `yaml:"touch"`
	FPS     int         `yaml:"fps"`
	Theme   string      `yaml:"theme"`
	Strip   StripConfig `yaml:"strip"`
}

// PanOptions mirrors pan.Override; absent keys keep the widget's value.
type PanOptions struct {
	Container       *string `yaml:"container,omitempty"`
	PauseOnMouseOut *bool   `yaml:"pause_on_mouse_out,omitempty"`
	IsResizable     *bool   `yaml:"is_resizable,omitempty"`
}

type StripConfig struct {
	Cards     int   `yaml:"cards"`
	CardWidth int   `yaml:"card_width"`
	Gap       int   `yaml:"gap"`
	Seed      int64 `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Strip: StripConfig{
			Cards:     DefaultCards,
			CardWidth: DefaultCardWidth,
			Gap:       DefaultGap,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Override converts the yaml options into a pan.Override.
func (p PanOptions) Override() *pan.Override {
	return &pan.Override{
		Container:       p.Container,
		PauseOnMouseOut: p.PauseOnMouseOut,
		IsResizable:     p.IsResizable,
	}
}

// Resolved is the full option set after merging over the pan defaults.
func (c *Config) Resolved() pan.Options {
	return pan.DefaultOptions().Merge(c.Options.Override())
}
