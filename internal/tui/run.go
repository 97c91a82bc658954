package tui

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// DebugEnv names the variable holding a log file path. Without it log
// output is discarded, since stderr belongs to the alt screen.
const DebugEnv = "NEONFOLIO_DEBUG"

// Run starts the interactive portfolio and blocks until it quits.
func Run(opts Options) error {
	if path := os.Getenv(DebugEnv); path != "" {
		f, err := tea.LogToFile(path, "neonfolio")
		if err != nil {
			return fmt.Errorf("tui: log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}
