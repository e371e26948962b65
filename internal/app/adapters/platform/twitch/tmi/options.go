package tmi

import (
	"tmiclient/internal/app/domain/dispatch"
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
	"tmiclient/internal/app/infrastructure/backoff"
)

const DefaultURL = "wss://irc-ws.chat.twitch.tv:443"

// ConnectFunc runs once per connection after all channels were joined.
type ConnectFunc func(s *session.Session) error

// MessageFunc runs for every delivered message. Actions it enqueues are
// flushed before the next line is read. A returned error drops the
// connection and lets the reconnect policy take over.
type MessageFunc func(s *session.Session, msg message.ChatMessage) error

type Options struct {
	// Name identifies the client in logs, metrics and /status. A random
	// UUID is used when empty.
	Name string
	URL  string

	Username string
	Password string
	Channels []string

	// FilterUserMessages drops messages sent by Username itself.
	FilterUserMessages bool
	Capabilities       session.Capabilities
	// DeliverUndefined passes lines without a known command to the
	// callbacks as Undefined messages instead of only logging them.
	DeliverUndefined bool

	OnConnect   ConnectFunc
	OnMessage   MessageFunc
	Dispatchers []dispatch.Dispatcher

	// MessageSink is an external source of plain text. Every item is sent
	// to all joined channels.
	MessageSink <-chan string

	Reconnect backoff.Policy
}
