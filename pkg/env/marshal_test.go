package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Identity string        `env:"CHAT_IDENTITY"`
	Host     string        `env:"CHAT_HOST"`
	Port     int           `env:"CHAT_PORT"`
	Timeout  time.Duration `env:"CHAT_DIAL_TIMEOUT"`
	Debug    bool          `env:"CHAT_DEBUG"`
	Untagged string
	hidden   string `env:"HIDDEN"`
}

func TestMarshal_SkipsZeroAndUntagged(t *testing.T) {
	values, err := Marshal(&sample{
		Identity: "alice",
		Port:     6000,
		Timeout:  1500 * time.Millisecond,
		Untagged: "x",
		hidden:   "y",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"CHAT_IDENTITY":     "alice",
		"CHAT_PORT":         "6000",
		"CHAT_DIAL_TIMEOUT": "1.5s",
	}, values)
}

func TestMarshal_RequiresStructPointer(t *testing.T) {
	_, err := Marshal(sample{})
	assert.Error(t, err)
}

func TestMarshalEnv_ReadsBack(t *testing.T) {
	content, err := MarshalEnv(&sample{Identity: "alice smith", Host: "chat.example", Debug: true})
	require.NoError(t, err)

	parsed, err := godotenv.Unmarshal(content)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"CHAT_IDENTITY": "alice smith",
		"CHAT_HOST":     "chat.example",
		"CHAT_DEBUG":    "true",
	}, parsed)
}

func TestMarshalEnv_Empty(t *testing.T) {
	content, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestWriteFile_MergesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtime", ".env")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("CHAT_TRANSPORT=websocket\nCHAT_HOST=old\n"), 0o600))

	require.NoError(t, WriteFile(path, &sample{Identity: "alice", Host: "new"}))

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"CHAT_TRANSPORT": "websocket",
		"CHAT_HOST":      "new",
		"CHAT_IDENTITY":  "alice",
	}, got)
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", ".env")

	require.NoError(t, WriteFile(path, &sample{Port: 5555}))

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "5555", got["CHAT_PORT"])
}
