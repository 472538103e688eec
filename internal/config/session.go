package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sandevgo/simplechat/internal/core"
)

var ErrNoIdentity = errors.New("no login ID specified")

// SessionConfig is the startup configuration of the chat session.
type SessionConfig struct {
	Identity string
	Host     string
	Port     int
}

// ResolveSession reads the positional arguments `identity [port] [host]`.
// Missing values come from the environment, then from the defaults. A
// port that does not parse is treated as missing.
func ResolveSession(args []string, cfg *AppConfig) (SessionConfig, error) {
	arg := func(i int) string {
		if i < len(args) {
			return strings.TrimSpace(args[i])
		}
		return ""
	}

	sc := SessionConfig{
		Identity: firstNonEmpty(arg(0), cfg.Identity),
		Host:     firstNonEmpty(arg(2), cfg.Host, core.DefaultHost),
		Port:     core.DefaultPort,
	}
	if sc.Identity == "" {
		return SessionConfig{}, ErrNoIdentity
	}

	for _, raw := range []string{arg(1), strings.TrimSpace(cfg.Port)} {
		if p, ok := parsePort(raw); ok {
			sc.Port = p
			break
		}
	}
	return sc, nil
}

func parsePort(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	p, err := strconv.Atoi(raw)
	if err != nil || !core.ValidPort(p) {
		return 0, false
	}
	return p, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
