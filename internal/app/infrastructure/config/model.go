package config

import "time"

type Config struct {
	App       App       `json:"app"`
	Proxy     *Proxy    `json:"proxy,omitempty"`
	Reconnect Reconnect `json:"reconnect"`
	Clients   []Client  `json:"clients"`
}

type App struct {
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file,omitempty"` // пусто - только stdout
	HTTPAddr  string `json:"http_addr"`
	GinMode   string `json:"gin_mode"`
	AuthToken string `json:"auth_token,omitempty"` // basic auth для /metrics и pprof
}

type Proxy struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// Reconnect is shared by every client; durations are stored in nanoseconds.
type Reconnect struct {
	MaxAttempts int           `json:"max_attempts"`
	BaseDelay   time.Duration `json:"base_delay"`
	Multiplier  float64       `json:"multiplier"`
	MaxDelay    time.Duration `json:"max_delay"`
}

type Client struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`

	// Username/Password win over the environment; otherwise the variables
	// named by UsernameEnv/PasswordEnv (or the TMI_CLIENT_* defaults) are used.
	Username    string `json:"username,omitempty"`
	UsernameEnv string `json:"username_env,omitempty"`
	Password    string `json:"password,omitempty"`
	PasswordEnv string `json:"password_env,omitempty"`

	Channels           []string `json:"channels"`
	Capabilities       []string `json:"capabilities"` // tags, membership, commands
	FilterUserMessages bool     `json:"filter_user_messages"`
	DeliverUndefined   bool     `json:"deliver_undefined"`
}
