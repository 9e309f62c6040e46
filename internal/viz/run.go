package viz

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/griddlepan/internal/bridge"
	"github.com/san-kum/griddlepan/internal/config"
)

type RunOptions struct {
	Config     *config.Config
	ConfigPath string
	Watch      bool
	// LogFile receives log output while the alt screen is up. Empty
	// discards it.
	LogFile string
}

// Run starts the terminal host and blocks until the user quits.
func Run(opts RunOptions) error {
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "griddlepan")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := NewModel(opts.Config, bridge.NewRegistry())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())

	if opts.Watch {
		if opts.ConfigPath == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err := WatchConfig(opts.ConfigPath, p.Send)
		if err != nil {
			return fmt.Errorf("watch %s: %w", opts.ConfigPath, err)
		}
		defer w.Close()
	}

	_, err := p.Run()
	return err
}
