package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetHistoryPath() string
	GetTransport() string
	GetWSPath() string
	GetDialTimeout() time.Duration
	GetDialRetries() int
	IsAutoLogin() bool
}
