package dispatch

import (
	"golang.org/x/time/rate"
	"strings"
	"time"
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
	"tmiclient/internal/app/infrastructure/storage"
)

// Command is the matched command token and the whitespace separated
// arguments that followed it.
type Command struct {
	Name      string
	Arguments []string
}

type CommandHandler func(s *session.Session, msg message.ChatMessage, cmd Command)

type commandOptions struct {
	caseInsensitive bool
	allowArguments  bool

	cooldownEvery time.Duration
	cooldownBurst int
}

type CommandOption func(*commandOptions)

// CaseSensitive requires the command token to match exactly.
func CaseSensitive() CommandOption {
	return func(o *commandOptions) { o.caseInsensitive = false }
}

// WithoutArguments only matches messages that consist of the command alone.
func WithoutArguments() CommandOption {
	return func(o *commandOptions) { o.allowArguments = false }
}

// WithUserCooldown lets each user trigger the command burst times per every.
func WithUserCooldown(every time.Duration, burst int) CommandOption {
	return func(o *commandOptions) {
		o.cooldownEvery = every
		o.cooldownBurst = burst
	}
}

const cooldownCacheSize = 10_000

type CommandMatcher struct {
	command string
	opts    commandOptions
	handler CommandHandler

	limiters *storage.Cache[*rate.Limiter]
}

func OnCommand(command string, handler CommandHandler, opts ...CommandOption) *CommandMatcher {
	o := commandOptions{caseInsensitive: true, allowArguments: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.cooldownEvery > 0 && o.cooldownBurst < 1 {
		o.cooldownBurst = 1
	}

	m := &CommandMatcher{
		command: command,
		opts:    o,
		handler: handler,
	}
	if o.cooldownEvery > 0 {
		m.limiters = storage.NewCache[*rate.Limiter](cooldownCacheSize, o.cooldownEvery*time.Duration(o.cooldownBurst)*2)
	}
	return m
}

// Match returns the parsed command when text triggers this matcher.
// Invisible characters some chat clients append are ignored.
func (m *CommandMatcher) Match(text string) (Command, bool) {
	text = message.StripInvisible(text)
	head, rest, _ := strings.Cut(text, " ")

	if !m.opts.allowArguments && strings.TrimSpace(text) != head {
		return Command{}, false
	}
	if head != m.command && !(m.opts.caseInsensitive && strings.EqualFold(head, m.command)) {
		return Command{}, false
	}

	return Command{Name: head, Arguments: strings.Fields(rest)}, true
}

func (m *CommandMatcher) Dispatch(s *session.Session, msg message.ChatMessage) {
	cmd, ok := m.Match(msg.Text)
	if !ok || !m.allow(msg.User) {
		return
	}
	m.handler(s, msg, cmd)
}

func (m *CommandMatcher) allow(user string) bool {
	if m.limiters == nil {
		return true
	}

	limiter := m.limiters.GetOrCreate(strings.ToLower(user), func() *rate.Limiter {
		return rate.NewLimiter(rate.Every(m.opts.cooldownEvery), m.opts.cooldownBurst)
	})
	return limiter.Allow()
}
