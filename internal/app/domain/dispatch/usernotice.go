package dispatch

import (
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
)

type UserNoticeHandler func(s *session.Session, msg message.ChatMessage, noticeType message.UserNoticeType)

// UserNoticeMatcher needs the tags and commands capabilities, otherwise
// Twitch sends neither USERNOTICE frames nor their msg-id.
type UserNoticeMatcher struct {
	types   map[message.UserNoticeType]struct{}
	handler UserNoticeHandler
}

// OnUserNotice fires handler for USERNOTICEs of the given types, or of every
// known type when none are given.
func OnUserNotice(handler UserNoticeHandler, types ...message.UserNoticeType) *UserNoticeMatcher {
	if len(types) == 0 {
		types = message.UserNoticeTypes
	}

	set := make(map[message.UserNoticeType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return &UserNoticeMatcher{types: set, handler: handler}
}

func (m *UserNoticeMatcher) Dispatch(s *session.Session, msg message.ChatMessage) {
	if msg.Type != message.UserNotice {
		return
	}

	tag, ok := msg.Tags.Get("msg-id")
	if !ok {
		return
	}
	for _, id := range tag.Values {
		t := message.UserNoticeType(id)
		if _, ok := m.types[t]; ok {
			m.handler(s, msg, t)
			return
		}
	}
}
