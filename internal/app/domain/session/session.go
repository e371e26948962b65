package session

import (
	"slices"
	"strings"
	"sync"
	"tmiclient/internal/app/domain/message"
)

// Capabilities gates the CAP REQ frames sent right after joining.
type Capabilities struct {
	Tags       bool `json:"tags"`
	Membership bool `json:"membership"`
	Commands   bool `json:"commands"`
}

// Session is the surface callbacks work with while one connection is alive.
// Callbacks enqueue frames; the client flushes them after each callback.
type Session struct {
	mu     sync.RWMutex
	joined []string
	caps   Capabilities

	actions *ActionQueue
}

// New creates a session for channels that have already been joined on the wire.
func New(channels []string, caps Capabilities) *Session {
	s := &Session{
		caps:    caps,
		actions: NewActionQueue(),
	}
	for _, ch := range channels {
		s.addChannel(ch)
	}
	return s
}

func normalize(channel string) string {
	return strings.TrimPrefix(strings.TrimSpace(channel), "#")
}

func (s *Session) addChannel(channel string) bool {
	channel = normalize(channel)
	if channel == "" || slices.Contains(s.joined, channel) {
		return false
	}
	s.joined = append(s.joined, channel)
	return true
}

func (s *Session) Actions() *ActionQueue {
	return s.actions
}

func (s *Session) Capabilities() Capabilities {
	return s.caps
}

// JoinedChannels returns a copy of the joined channels in join order.
func (s *Session) JoinedChannels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.joined)
}

// Frames builds a PRIVMSG of text for each channel, or for every joined
// channel when none are given. Nothing is enqueued.
func (s *Session) Frames(text string, channels ...string) []string {
	if len(channels) == 0 {
		channels = s.JoinedChannels()
	}

	frames := make([]string, 0, len(channels))
	for _, ch := range channels {
		frames = append(frames, message.ToFrame(text, ch))
	}
	return frames
}

// TextMessage enqueues text for the given channels, defaulting to all joined ones.
func (s *Session) TextMessage(text string, channels ...string) {
	s.actions.Enqueue(s.Frames(text, channels...)...)
}

// PlainMessage enqueues a raw frame as is.
func (s *Session) PlainMessage(frame string) {
	s.actions.Enqueue(frame)
}

func (s *Session) Join(channels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range channels {
		if s.addChannel(ch) {
			s.actions.Enqueue(message.Join(normalize(ch)))
		}
	}
}

func (s *Session) Leave(channels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range channels {
		ch = normalize(ch)
		i := slices.Index(s.joined, ch)
		if i == -1 {
			continue
		}
		s.joined = slices.Delete(s.joined, i, i+1)
		s.actions.Enqueue(message.Part(ch))
	}
}

// RequestCapabilities enqueues one CAP REQ per enabled capability.
func (s *Session) RequestCapabilities() {
	if s.caps.Tags {
		s.actions.Enqueue(message.CapReq(message.CapTags))
	}
	if s.caps.Membership {
		s.actions.Enqueue(message.CapReq(message.CapMembership))
	}
	if s.caps.Commands {
		s.actions.Enqueue(message.CapReq(message.CapCommands))
	}
}
