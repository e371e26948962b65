package logger

import "log/slog"

// PrefixedLogger tags every record of one chat client: the message gets a
// "[name]" prefix for the text sink and a "client" attribute for the JSON one.
type PrefixedLogger struct {
	inner  Logger
	prefix string
	attr   slog.Attr
}

func NewPrefixedLogger(inner Logger, prefix string) *PrefixedLogger {
	return &PrefixedLogger{
		inner:  inner,
		prefix: "[" + prefix + "] ",
		attr:   slog.String("client", prefix),
	}
}

func (p *PrefixedLogger) Prefix() string {
	return p.attr.Value.String()
}

func (p *PrefixedLogger) with(args []any) []any {
	return append([]any{p.attr}, args...)
}

func (p *PrefixedLogger) SetLogLevel(levelStr string) { p.inner.SetLogLevel(levelStr) }
func (p *PrefixedLogger) GetLogLevel() string         { return p.inner.GetLogLevel() }

func (p *PrefixedLogger) Trace(msg string, args ...any) {
	p.inner.Trace(p.prefix+msg, p.with(args)...)
}

func (p *PrefixedLogger) Debug(msg string, args ...any) {
	p.inner.Debug(p.prefix+msg, p.with(args)...)
}

func (p *PrefixedLogger) Info(msg string, args ...any) {
	p.inner.Info(p.prefix+msg, p.with(args)...)
}

func (p *PrefixedLogger) Warn(msg string, args ...any) {
	p.inner.Warn(p.prefix+msg, p.with(args)...)
}

func (p *PrefixedLogger) Error(msg string, err error, args ...any) {
	p.inner.Error(p.prefix+msg, err, p.with(args)...)
}

func (p *PrefixedLogger) Fatal(msg string, err error, args ...any) {
	p.inner.Fatal(p.prefix+msg, err, p.with(args)...)
}
