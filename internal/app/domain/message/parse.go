package message

import (
	"strings"
	"time"
)

// Classify returns the type of the first standalone PRIVMSG, NOTICE or
// USERNOTICE token of the line.
func Classify(line string) Type {
	for _, token := range strings.Fields(line) {
		switch token {
		case "PRIVMSG":
			return PrivMsg
		case "NOTICE":
			return Notice
		case "USERNOTICE":
			return UserNotice
		}
	}
	return Undefined
}

func CanParse(line string) bool {
	return Classify(line) != Undefined
}

// ParseTags reads the @key=v1,v2;key=v prefix of a line. Values are kept
// escaped as they came over the wire.
func ParseTags(line string) Tags {
	var tags Tags
	if len(line) == 0 || line[0] != '@' {
		return tags
	}

	rawTags := line[1:]
	if spaceIdx := strings.IndexByte(rawTags, ' '); spaceIdx != -1 {
		rawTags = rawTags[:spaceIdx]
	}
	rawTags = strings.TrimRight(rawTags, "\r\n")

	start := 0
	for i := 0; i <= len(rawTags); i++ {
		if i != len(rawTags) && rawTags[i] != ';' {
			continue
		}

		pair := rawTags[start:i]
		start = i + 1
		if pair == "" {
			continue
		}

		k, v, _ := strings.Cut(pair, "=")
		tags.add(Tag{ID: k, Values: strings.Split(v, ",")})
	}

	return tags
}

// Parse builds a ChatMessage from one inbound line. Lines without a known
// command become Undefined messages carrying the raw line as text.
func Parse(line string, at time.Time) ChatMessage {
	switch Classify(line) {
	case PrivMsg:
		return parsePrefixed(line, PrivMsg, at)
	case Notice:
		return parsePrefixed(line, Notice, at)
	case UserNotice:
		return ParseUserNotice(line, at)
	}

	return ChatMessage{
		Timestamp: at,
		Text:      strings.TrimRight(line, "\r\n"),
		Type:      Undefined,
		Tags:      ParseTags(line),
	}
}

func ParsePrivMsg(line string, at time.Time) ChatMessage {
	return parsePrefixed(line, PrivMsg, at)
}

// ParseUserNotice takes user and text from the display-name and system-msg
// tags since a USERNOTICE has no sender prefix.
func ParseUserNotice(line string, at time.Time) ChatMessage {
	tags := ParseTags(line)
	f := scan(line)

	return ChatMessage{
		Timestamp: at,
		Channel:   channelOf(f.target),
		User:      tags.First("display-name"),
		Text:      tags.First("system-msg"),
		Type:      UserNotice,
		Tags:      tags,
	}
}

func parsePrefixed(line string, typ Type, at time.Time) ChatMessage {
	f := scan(line)

	user := ""
	if bang := strings.IndexByte(f.prefix, '!'); bang != -1 {
		user = f.prefix[:bang]
	}

	return ChatMessage{
		Timestamp: at,
		Channel:   channelOf(f.target),
		User:      user,
		Text:      f.trailing,
		Type:      typ,
		Tags:      ParseTags(line),
	}
}

func channelOf(target string) string {
	if !strings.HasPrefix(target, "#") {
		return ""
	}
	return target[1:]
}

const serverPrefix = "tmi.twitch.tv"

type frame struct {
	prefix   string
	command  string
	target   string
	trailing string
}

// scan splits "[@tags ][:prefix ]COMMAND [target] [:trailing]".
func scan(line string) frame {
	var f frame

	s := strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(s, "@") {
		_, s, _ = strings.Cut(s, " ")
	}
	s = strings.TrimLeft(s, " ")

	if strings.HasPrefix(s, ":") {
		f.prefix, s, _ = strings.Cut(s[1:], " ")
		s = strings.TrimLeft(s, " ")
	}

	f.command, s, _ = strings.Cut(s, " ")
	if strings.HasPrefix(s, ":") {
		f.trailing = s[1:]
		return f
	}

	f.target, s, _ = strings.Cut(s, " ")
	f.trailing = strings.TrimPrefix(s, ":")
	return f
}

// ServerNotice returns the text of a NOTICE the server addressed to the
// connection itself (":tmi.twitch.tv NOTICE * :text"). Channel notices and
// relayed chat never match.
func ServerNotice(line string) (string, bool) {
	f := scan(line)
	if f.command != "NOTICE" || f.prefix != serverPrefix || f.target != "*" {
		return "", false
	}
	return f.trailing, true
}

// Command returns the IRC command token of a line, e.g. "PRIVMSG" or "RECONNECT".
func Command(line string) string {
	return scan(line).command
}
