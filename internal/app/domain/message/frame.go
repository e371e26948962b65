package message

import "strings"

const (
	CapTags       = "twitch.tv/tags"
	CapMembership = "twitch.tv/membership"
	CapCommands   = "twitch.tv/commands"
)

func withHash(channel string) string {
	if !strings.HasPrefix(channel, "#") {
		return "#" + channel
	}
	return channel
}

// ToFrame builds the PRIVMSG that sends text to channel.
func ToFrame(text, channel string) string {
	return "PRIVMSG " + withHash(channel) + " :" + text
}

func Pass(password string) string {
	return "PASS " + password
}

func Nick(username string) string {
	return "NICK " + username
}

func Join(channel string) string {
	return "JOIN " + withHash(channel)
}

func Part(channel string) string {
	return "PART " + withHash(channel)
}

func Pong(token string) string {
	return "PONG " + token
}

func CapReq(capability string) string {
	return "CAP REQ :" + capability
}

// Moderation builds a slash command for channel, e.g. "/slow" or "/marker text".
func Moderation(channel, command, arg string) string {
	text := "/" + command
	if arg != "" {
		text += " " + arg
	}
	return ToFrame(text, channel)
}

// PingToken returns the token of a "PING <token>" keepalive.
func PingToken(line string) (string, bool) {
	line = strings.TrimRight(line, "\r\n")
	token, ok := strings.CutPrefix(line, "PING ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
