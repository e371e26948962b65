package domain

import (
	"errors"
	"fmt"
)

// ErrConnectionClosed is returned when the server closed the socket normally.
var ErrConnectionClosed = errors.New("connection closed")

// ConfigurationError means a credential or setting could not be resolved.
// It is never retried.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("configuration %q: could not obtain value from environment", e.Key)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AuthenticationError means the handshake was rejected or could not be sent.
// It is never retried.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return "authentication failed: " + e.Reason
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError covers dropped or never established connections and
// callback failures. It is retried by the reconnect policy.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func IsAuthenticationError(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}
