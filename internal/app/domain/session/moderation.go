package session

import "tmiclient/internal/app/domain/message"

// Moderation commands go to channel, or to the first joined channel when it
// is empty. They are dropped when there is no channel to send to. Twitch
// ignores them unless the bot has the required privileges.

func (s *Session) moderate(channel, command, arg string) {
	if channel == "" {
		joined := s.JoinedChannels()
		if len(joined) == 0 {
			return
		}
		channel = joined[0]
	}
	s.actions.Enqueue(message.Moderation(channel, command, arg))
}

func (s *Session) ClearChat(channel string)        { s.moderate(channel, "clear", "") }
func (s *Session) EmoteOnly(channel string)        { s.moderate(channel, "emoteonly", "") }
func (s *Session) EmoteOnlyOff(channel string)     { s.moderate(channel, "emoteonlyoff", "") }
func (s *Session) FollowersOnly(channel string)    { s.moderate(channel, "followers", "") }
func (s *Session) FollowersOnlyOff(channel string) { s.moderate(channel, "followersoff", "") }
func (s *Session) Slow(channel string)             { s.moderate(channel, "slow", "") }
func (s *Session) SlowOff(channel string)          { s.moderate(channel, "slowoff", "") }
func (s *Session) Subscribers(channel string)      { s.moderate(channel, "subscribers", "") }
func (s *Session) SubscribersOff(channel string)   { s.moderate(channel, "subscribersoff", "") }

// Marker adds a stream marker with description at the current timestamp.
func (s *Session) Marker(description, channel string) {
	s.moderate(channel, "marker", description)
}
