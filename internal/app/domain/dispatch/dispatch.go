package dispatch

import (
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
)

// Dispatcher inspects a message and may enqueue actions on the session.
// Implementations must not block.
type Dispatcher interface {
	Dispatch(s *session.Session, msg message.ChatMessage)
}

type DispatcherFunc func(s *session.Session, msg message.ChatMessage)

func (f DispatcherFunc) Dispatch(s *session.Session, msg message.ChatMessage) {
	f(s, msg)
}

type chain []Dispatcher

// Chain runs dispatchers in order for every message.
func Chain(dispatchers ...Dispatcher) Dispatcher {
	return chain(dispatchers)
}

func (c chain) Dispatch(s *session.Session, msg message.ChatMessage) {
	for _, d := range c {
		d.Dispatch(s, msg)
	}
}
