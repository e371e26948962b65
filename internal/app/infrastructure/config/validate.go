package config

import (
	"errors"
	"fmt"
	"net/url"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if cfg.App.GinMode != "" && !validModes[cfg.App.GinMode] {
		return fmt.Errorf("app.gin_mode must be one of debug, release, test; got %s", cfg.App.GinMode)
	}

	// proxy
	if cfg.Proxy != nil && cfg.Proxy.Address != "" {
		if cfg.Proxy.Port <= 0 || cfg.Proxy.Port > 65535 {
			return errors.New("proxy.port must be [1,65535]")
		}
	}

	// reconnect
	if cfg.Reconnect.MaxAttempts < 0 {
		return errors.New("reconnect.max_attempts must not be negative")
	}
	if cfg.Reconnect.BaseDelay < 0 || cfg.Reconnect.MaxDelay < 0 {
		return errors.New("reconnect delays must not be negative")
	}
	if cfg.Reconnect.Multiplier != 0 && cfg.Reconnect.Multiplier < 1 {
		return errors.New("reconnect.multiplier must be >= 1")
	}

	// clients
	if len(cfg.Clients) == 0 {
		return errors.New("clients is required")
	}

	validCaps := map[string]bool{CapabilityTags: true, CapabilityMembership: true, CapabilityCommands: true}
	names := make(map[string]struct{}, len(cfg.Clients))
	for i := range cfg.Clients {
		client := &cfg.Clients[i]

		if client.Name != "" {
			if _, ok := names[client.Name]; ok {
				return fmt.Errorf("clients[%d].name %q is used twice", i, client.Name)
			}
			names[client.Name] = struct{}{}
		}

		if client.URL != "" {
			u, err := url.Parse(client.URL)
			if err != nil {
				return fmt.Errorf("clients[%d].url: %w", i, err)
			}
			if u.Scheme != "ws" && u.Scheme != "wss" {
				return fmt.Errorf("clients[%d].url must use ws or wss", i)
			}
		}

		for _, c := range client.Capabilities {
			if !validCaps[c] {
				return fmt.Errorf("clients[%d].capabilities: unknown capability %q", i, c)
			}
		}

		if client.Channels == nil {
			client.Channels = []string{}
		}
	}

	return nil
}
