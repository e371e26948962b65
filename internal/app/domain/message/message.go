package message

import "time"

// Type is the IRC command a ChatMessage was built from.
type Type int

const (
	Undefined Type = iota
	PrivMsg
	Notice
	UserNotice
)

func (t Type) String() string {
	switch t {
	case PrivMsg:
		return "PRIVMSG"
	case Notice:
		return "NOTICE"
	case UserNotice:
		return "USERNOTICE"
	}
	return "UNDEFINED"
}

// ChatMessage is one parsed inbound frame. It is built once by Parse and
// never mutated afterwards.
type ChatMessage struct {
	Timestamp time.Time
	Channel   string // without the leading '#'
	User      string
	Text      string
	Type      Type
	Tags      Tags
}

// IsSubscribed reports whether the author carries an active subscriber tag.
func (m ChatMessage) IsSubscribed() bool {
	return m.Tags.Has("subscriber", "1")
}

// ID returns the Twitch message id, empty when tags are disabled.
func (m ChatMessage) ID() string {
	return m.Tags.First("id")
}

// NoticeType returns the msg-id of a USERNOTICE, UndefinedNotice otherwise.
func (m ChatMessage) NoticeType() UserNoticeType {
	if m.Type != UserNotice {
		return UndefinedNotice
	}
	return UserNoticeTypeFromID(m.Tags.First("msg-id"))
}
