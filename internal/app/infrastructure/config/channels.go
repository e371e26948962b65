package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrClientNotFound = errors.New("client not found")

// AddChannels appends channels the named client does not join yet and saves
// the config. Channels are stored lowercase without the leading '#'.
func (m *Manager) AddChannels(client string, channels ...string) error {
	return m.editChannels(client, func(cur []string) []string {
		for _, ch := range channels {
			ch = normalizeChannel(ch)
			if ch != "" && !slices.Contains(cur, ch) {
				cur = append(cur, ch)
			}
		}
		return cur
	})
}

func (m *Manager) RemoveChannels(client string, channels ...string) error {
	drop := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		drop[normalizeChannel(ch)] = struct{}{}
	}

	return m.editChannels(client, func(cur []string) []string {
		return slices.DeleteFunc(cur, func(ch string) bool {
			_, ok := drop[normalizeChannel(ch)]
			return ok
		})
	})
}

func (m *Manager) editChannels(client string, edit func([]string) []string) error {
	found := slices.ContainsFunc(m.Get().Clients, func(c Client) bool { return c.Name == client })
	if !found {
		return fmt.Errorf("%w: %q", ErrClientNotFound, client)
	}

	return m.Update(func(cfg *Config) {
		for i := range cfg.Clients {
			if cfg.Clients[i].Name == client {
				cfg.Clients[i].Channels = edit(cfg.Clients[i].Channels)
			}
		}
	})
}

func normalizeChannel(ch string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ch)), "#")
}
