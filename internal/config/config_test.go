package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/simplechat/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".simplechat"), cfg.GetRuntimePath())
	assert.Equal(t, filepath.Join(home, ".simplechat", "input_history"), cfg.GetHistoryPath())
	assert.Equal(t, TransportTCP, cfg.GetTransport())
	assert.Equal(t, "/", cfg.GetWSPath())
	assert.Equal(t, 5*time.Second, cfg.GetDialTimeout())
	assert.Equal(t, 0, cfg.GetDialRetries())
	assert.True(t, cfg.IsAutoLogin())
}

func TestParseAppConfig_FromEnv(t *testing.T) {
	runtime := t.TempDir()
	t.Setenv("CHAT_RUNTIME_PATH", runtime)
	t.Setenv("CHAT_TRANSPORT", "websocket")
	t.Setenv("CHAT_WS_PATH", "/chat")
	t.Setenv("CHAT_DIAL_TIMEOUT", "250ms")
	t.Setenv("CHAT_DIAL_RETRIES", "3")
	t.Setenv("CHAT_AUTO_LOGIN", "false")

	cfg, err := ParseAppConfig()
	require.NoError(t, err)

	assert.Equal(t, runtime, cfg.GetRuntimePath())
	assert.Equal(t, TransportWebSocket, cfg.GetTransport())
	assert.Equal(t, "/chat", cfg.GetWSPath())
	assert.Equal(t, 250*time.Millisecond, cfg.GetDialTimeout())
	assert.Equal(t, 3, cfg.GetDialRetries())
	assert.False(t, cfg.IsAutoLogin())
}

func TestParseAppConfig_BadValue(t *testing.T) {
	t.Setenv("CHAT_DIAL_TIMEOUT", "soon")

	_, err := ParseAppConfig()
	assert.Error(t, err)
}

func TestAppConfig_ImplementsCore(t *testing.T) {
	var _ core.AppConfig = AppConfig{}
}

func TestIsDebug(t *testing.T) {
	t.Setenv("CHAT_DEBUG", "1")
	assert.True(t, IsDebug())

	t.Setenv("CHAT_DEBUG", "")
	assert.False(t, IsDebug())
}

func TestGetRuntimePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv("CHAT_RUNTIME_PATH", "")
	assert.Equal(t, filepath.Join(home, ".simplechat"), GetRuntimePath())

	t.Setenv("CHAT_RUNTIME_PATH", "chats")
	assert.Equal(t, filepath.Join(home, "chats"), GetRuntimePath())

	t.Setenv("CHAT_RUNTIME_PATH", "/var/lib/chat")
	assert.Equal(t, "/var/lib/chat", GetRuntimePath())
}

func TestGetEnvPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv("CHAT_RUNTIME_PATH", "")
	assert.Equal(t, filepath.Join(home, ".simplechat", ".env"), GetEnvPath())

	t.Setenv("CHAT_RUNTIME_PATH", "/var/lib/chat")
	assert.Equal(t, "/var/lib/chat/.env", GetEnvPath())
}

func TestResolveSession(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		cfg     AppConfig
		want    SessionConfig
		wantErr error
	}{
		{
			name:    "no identity",
			args:    nil,
			wantErr: ErrNoIdentity,
		},
		{
			name:    "blank identity",
			args:    []string{"  "},
			wantErr: ErrNoIdentity,
		},
		{
			name: "identity only",
			args: []string{"alice"},
			want: SessionConfig{Identity: "alice", Host: "localhost", Port: 5555},
		},
		{
			name: "identity and port",
			args: []string{"alice", "6000"},
			want: SessionConfig{Identity: "alice", Host: "localhost", Port: 6000},
		},
		{
			name: "all three",
			args: []string{"alice", "6000", "chat.example"},
			want: SessionConfig{Identity: "alice", Host: "chat.example", Port: 6000},
		},
		{
			name: "unparsable port falls back",
			args: []string{"alice", "abc", "chat.example"},
			want: SessionConfig{Identity: "alice", Host: "chat.example", Port: 5555},
		},
		{
			name: "out of range port falls back",
			args: []string{"alice", "99999"},
			want: SessionConfig{Identity: "alice", Host: "localhost", Port: 5555},
		},
		{
			name: "environment fills gaps",
			args: []string{"alice"},
			cfg:  AppConfig{Host: "env.example", Port: "7000"},
			want: SessionConfig{Identity: "alice", Host: "env.example", Port: 7000},
		},
		{
			name: "arguments win over environment",
			args: []string{"alice", "6000", "arg.example"},
			cfg:  AppConfig{Identity: "bob", Host: "env.example", Port: "7000"},
			want: SessionConfig{Identity: "alice", Host: "arg.example", Port: 6000},
		},
		{
			name: "identity from environment",
			cfg:  AppConfig{Identity: "bob", Port: "nope"},
			want: SessionConfig{Identity: "bob", Host: "localhost", Port: 5555},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSession(tt.args, &tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
