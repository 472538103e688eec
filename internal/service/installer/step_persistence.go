package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/simplechat/pkg/env"
)

// SaveEnvStep merges the collected profile into the .env file.
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	if err := env.WriteFile(state.EnvPath, &state.Profile); err != nil {
		s.err = fmt.Errorf("write %s: %w", state.EnvPath, err)
		return s, nil
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved to " + state.EnvPath + "\n"
	}
	return "Saving configuration...\n"
}
