package installer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/simplechat/internal/core"
)

// InputStep asks for one free-text value. An empty answer keeps the
// default when there is one.
type InputStep struct {
	input  textinput.Model
	title  string
	def    string
	apply  func(value string, state *InstallState) error
	err    error
	skipFn func(state *InstallState) bool
}

func newInputStep(title, placeholder, def string, apply func(string, *InstallState) error) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	return &InputStep{input: ti, title: title, def: def, apply: apply}
}

func NewIdentityStep() Step {
	return newInputStep("Enter your login ID", "alice", "", func(v string, state *InstallState) error {
		if v == "" {
			return fmt.Errorf("login ID must not be empty")
		}
		state.Profile.Identity = v
		return nil
	})
}

func NewHostStep() Step {
	return newInputStep("Enter the server host", core.DefaultHost, core.DefaultHost, func(v string, state *InstallState) error {
		state.Profile.Host = v
		return nil
	})
}

func NewPortStep() Step {
	def := strconv.Itoa(core.DefaultPort)
	return newInputStep("Enter the server port", def, def, func(v string, state *InstallState) error {
		p, err := strconv.Atoi(v)
		if err != nil || !core.ValidPort(p) {
			return fmt.Errorf("invalid port %q", v)
		}
		state.Profile.Port = p
		return nil
	})
}

func NewWSPathStep() Step {
	s := newInputStep("Enter the WebSocket path", "/", "/", func(v string, state *InstallState) error {
		if !strings.HasPrefix(v, "/") {
			v = "/" + v
		}
		state.Profile.WSPath = v
		return nil
	})
	s.skipFn = func(state *InstallState) bool {
		return state.Profile.Transport != transportWebSocket
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skipFn != nil && s.skipFn(state) {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.def
		}
		if s.err = s.apply(val, state); s.err != nil {
			return s, nil
		}
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + ":\n\n" + s.input.View() + "\n\n")
	if s.err != nil {
		b.WriteString(errorStyle.Render("Error: "+s.err.Error()) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}
