package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

type AppConfig struct {
	RuntimePath string `env:"CHAT_RUNTIME_PATH" envDefault:".simplechat"`

	// Connection
	Transport   string        `env:"CHAT_TRANSPORT" envDefault:"tcp"`
	WSPath      string        `env:"CHAT_WS_PATH" envDefault:"/"`
	DialTimeout time.Duration `env:"CHAT_DIAL_TIMEOUT" envDefault:"5s"`
	DialRetries int           `env:"CHAT_DIAL_RETRIES" envDefault:"0"`
	AutoLogin   bool          `env:"CHAT_AUTO_LOGIN" envDefault:"true"`

	// Fallbacks for the positional arguments. Port stays a string so a
	// bad value falls back to the default instead of failing the parse.
	Identity string `env:"CHAT_IDENTITY"`
	Host     string `env:"CHAT_HOST"`
	Port     string `env:"CHAT_PORT"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(c.RuntimePath) {
		home, _ := os.UserHomeDir()
		c.RuntimePath = filepath.Join(home, c.RuntimePath)
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) GetTransport() string {
	return c.Transport
}

func (c AppConfig) GetWSPath() string {
	return c.WSPath
}

func (c AppConfig) GetDialTimeout() time.Duration {
	return c.DialTimeout
}

func (c AppConfig) GetDialRetries() int {
	return c.DialRetries
}

func (c AppConfig) IsAutoLogin() bool {
	return c.AutoLogin
}
