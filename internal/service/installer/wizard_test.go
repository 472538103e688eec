package installer

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(m model, text string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(model)
}

func press(m model, key tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(model), cmd
}

func tick(m model) model {
	next, _ := m.Update(nextMsg{})
	return next.(model)
}

func TestWizard_TCPProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	m := initialModel(path)

	m = typeText(m, "alice")
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "chat.example")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyEnter) // default port
	m, _ = press(m, tea.KeyEnter) // tcp
	m = tick(m)                   // websocket path skipped
	m = tick(m)                   // save

	assert.Equal(t, len(m.steps), m.currentStep)
	assert.Equal(t, Profile{Identity: "alice", Host: "chat.example", Port: 5555, Transport: "tcp"}, m.state.Profile)

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"CHAT_IDENTITY":  "alice",
		"CHAT_HOST":      "chat.example",
		"CHAT_PORT":      "5555",
		"CHAT_TRANSPORT": "tcp",
	}, got)
}

func TestWizard_WebSocketProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	m := initialModel(path)

	m = typeText(m, "bob")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyEnter) // default host
	m = typeText(m, "8080")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "chat")
	m, _ = press(m, tea.KeyEnter)
	m = tick(m)

	assert.Equal(t, Profile{Identity: "bob", Host: "localhost", Port: 8080, Transport: "websocket", WSPath: "/chat"}, m.state.Profile)
	got, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "/chat", got["CHAT_WS_PATH"])
}

func TestWizard_RejectsBadInput(t *testing.T) {
	m := initialModel(filepath.Join(t.TempDir(), ".env"))

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, 0, m.currentStep, "empty identity is rejected")
	assert.Contains(t, m.View(), "login ID must not be empty")

	m = typeText(m, "alice")
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyEnter)
	m = typeText(m, "99999")
	m, _ = press(m, tea.KeyEnter)

	assert.Equal(t, 2, m.currentStep)
	assert.Contains(t, m.View(), `invalid port "99999"`)
}

func TestWizard_CtrlCCancels(t *testing.T) {
	m := initialModel(filepath.Join(t.TempDir(), ".env"))

	m, cmd := press(m, tea.KeyCtrlC)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, "Setup cancelled.\n", m.View())
}
