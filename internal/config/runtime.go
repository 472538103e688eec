package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath returns the directory holding .env and the input
// history. Relative paths are taken from the home directory.
func GetRuntimePath() string {
	path := os.Getenv("CHAT_RUNTIME_PATH")
	if path == "" {
		path = ".simplechat"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

// GetEnvPath is the .env file inside the runtime directory. It is read
// before AppConfig is parsed, so it only depends on the environment.
func GetEnvPath() string {
	return filepath.Join(GetRuntimePath(), ".env")
}
