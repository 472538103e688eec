package installer

// Profile is what the wizard writes to .env.
type Profile struct {
	Identity  string `env:"CHAT_IDENTITY"`
	Host      string `env:"CHAT_HOST"`
	Port      int    `env:"CHAT_PORT"`
	Transport string `env:"CHAT_TRANSPORT"`
	WSPath    string `env:"CHAT_WS_PATH"`
}

type InstallState struct {
	Profile Profile
	EnvPath string
}

func NewInstallState(envPath string) *InstallState {
	return &InstallState{EnvPath: envPath}
}
