package config

import (
	"time"
	"tmiclient/internal/app/infrastructure/backoff"
)

const (
	CapabilityTags       = "tags"
	CapabilityMembership = "membership"
	CapabilityCommands   = "commands"
)

func (m *Manager) GetDefault() *Config {
	return &Config{
		App: App{
			LogLevel: "info",
			HTTPAddr: ":8080",
			GinMode:  "release",
		},
		Reconnect: Reconnect{
			MaxAttempts: backoff.DefaultMaxAttempts,
			BaseDelay:   backoff.DefaultBaseDelay,
			Multiplier:  backoff.DefaultMultiplier,
			MaxDelay:    time.Minute,
		},
		Clients: []Client{
			{
				Name:               "default",
				Channels:           []string{},
				Capabilities:       []string{CapabilityTags, CapabilityCommands},
				FilterUserMessages: true,
			},
		},
	}
}
