package config

import (
	"errors"
	"github.com/joho/godotenv"
	"io/fs"
	"os"
	"slices"
	"tmiclient/internal/app/domain"
	"tmiclient/internal/app/domain/session"
	"tmiclient/internal/app/infrastructure/backoff"
)

const (
	DefaultUsernameEnv = "TMI_CLIENT_USERNAME"
	DefaultPasswordEnv = "TMI_CLIENT_PASSWORD"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv copies the variables from a .env file into the process
// environment without overriding ones already set. A missing file is fine.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ResolveCredential returns provided when set, otherwise the non-empty value
// of the environment variable key.
func ResolveCredential(key, provided string, lookup LookupFunc) (string, error) {
	if provided != "" {
		return provided, nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(key); ok && v != "" {
		return v, nil
	}
	return "", &domain.ConfigurationError{Key: key}
}

func (c Client) Credentials(lookup LookupFunc) (username, password string, err error) {
	usernameKey := c.UsernameEnv
	if usernameKey == "" {
		usernameKey = DefaultUsernameEnv
	}
	passwordKey := c.PasswordEnv
	if passwordKey == "" {
		passwordKey = DefaultPasswordEnv
	}

	if username, err = ResolveCredential(usernameKey, c.Username, lookup); err != nil {
		return "", "", err
	}
	if password, err = ResolveCredential(passwordKey, c.Password, lookup); err != nil {
		return "", "", err
	}
	return username, password, nil
}

func (c Client) SessionCapabilities() session.Capabilities {
	return session.Capabilities{
		Tags:       slices.Contains(c.Capabilities, CapabilityTags),
		Membership: slices.Contains(c.Capabilities, CapabilityMembership),
		Commands:   slices.Contains(c.Capabilities, CapabilityCommands),
	}
}

func (r Reconnect) Policy() backoff.Policy {
	return backoff.Policy{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay,
		Multiplier:  r.Multiplier,
		MaxDelay:    r.MaxDelay,
	}
}
