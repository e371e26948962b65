package tmi

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"tmiclient/internal/app/adapters/metrics"
	"tmiclient/internal/app/domain"
	"tmiclient/internal/app/domain/dispatch"
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
	"tmiclient/internal/app/infrastructure/backoff"
	"tmiclient/internal/app/ports"
	"tmiclient/pkg/logger"
)

const partTimeout = 2 * time.Second

var errServerReconnect = errors.New("server requested reconnect")

type Client struct {
	log       logger.Logger
	transport ports.TransportPort
	opts      Options
	dispatch  dispatch.Dispatcher

	state    atomic.Int32
	attempts atomic.Int64

	mu      sync.RWMutex
	session *session.Session
	cancel  context.CancelFunc
}

// New validates the credentials and prepares a client. Nothing is dialed
// until Run is called.
func New(log logger.Logger, transport ports.TransportPort, opts Options) (*Client, error) {
	if opts.Username == "" {
		return nil, &domain.ConfigurationError{Key: "username"}
	}
	if opts.Password == "" {
		return nil, &domain.ConfigurationError{Key: "password"}
	}

	if opts.Name == "" {
		opts.Name = uuid.NewString()
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Reconnect.BaseDelay <= 0 {
		opts.Reconnect.BaseDelay = backoff.DefaultBaseDelay
	}

	c := &Client{
		log:       logger.NewPrefixedLogger(log, opts.Name),
		transport: transport,
		opts:      opts,
		dispatch:  dispatch.Chain(opts.Dispatchers...),
	}
	c.setState(Idle)

	return c, nil
}

func (c *Client) Name() string {
	return c.opts.Name
}

func (c *Client) State() State {
	return State(c.state.Load())
}

func (c *Client) setState(s State) {
	c.state.Store(int32(s))
	metrics.ClientState.WithLabelValues(c.opts.Name).Set(float64(s))
}

// Session returns the session of the current connection, or nil before the
// first one was established.
func (c *Client) Session() *session.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.session
}

func (c *Client) Status() ports.ClientStatus {
	channels := c.opts.Channels
	if s := c.Session(); s != nil {
		channels = s.JoinedChannels()
	}

	return ports.ClientStatus{
		Name:     c.opts.Name,
		State:    c.State().String(),
		Channels: channels,
		Attempts: int(c.attempts.Load()),
	}
}

// Close stops a running client. Run then returns context.Canceled.
func (c *Client) Close() {
	c.mu.RLock()
	cancel := c.cancel
	c.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
}

// Run connects and serves until the server closes the connection, ctx is
// done, a fatal error occurs or the reconnect attempts are used up.
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	policy := c.opts.Reconnect
	onRetry := policy.OnRetry
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		c.setState(Idle)
		metrics.Reconnects.WithLabelValues(c.opts.Name).Inc()
		c.log.Warn("Connection lost, reconnecting",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		if onRetry != nil {
			onRetry(attempt, err, delay)
		}
	}

	err := policy.Do(ctx, classify, c.run)
	c.setState(Closed)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Err
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		c.log.Error("Client stopped", err)
	} else {
		c.log.Info("Client stopped")
	}
	return err
}

func classify(err error) backoff.Action {
	if domain.IsConfigurationError(err) || domain.IsAuthenticationError(err) {
		return backoff.Stop
	}
	return backoff.Retry
}

// run is one pass through Connecting, Authenticating, Joining and Ready.
func (c *Client) run(ctx context.Context, reset func()) error {
	c.attempts.Add(1)
	metrics.ConnectAttempts.WithLabelValues(c.opts.Name).Inc()

	c.setState(Connecting)
	conn, err := c.transport.Connect(ctx, c.opts.URL)
	if err != nil {
		return &domain.TransportError{Op: "connect", Err: err}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.log.Debug("Failed to close connection", slog.String("error", err.Error()))
		}
	}()

	c.setState(Authenticating)
	if err := c.send(ctx, conn, metrics.SourceHandshake, message.Pass(c.opts.Password), message.Nick(c.opts.Username)); err != nil {
		return &domain.AuthenticationError{Reason: "send credentials", Err: err}
	}

	c.setState(Joining)
	for _, ch := range c.opts.Channels {
		if err := c.send(ctx, conn, metrics.SourceHandshake, message.Join(ch)); err != nil {
			return &domain.TransportError{Op: "join", Err: err}
		}
	}

	s := session.New(c.opts.Channels, c.opts.Capabilities)
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	err = c.serve(ctx, conn, s, reset)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

type batch struct {
	source string
	frames []string
	done   chan error
}

// serve runs the Ready loop. The reader, the sink and keepalives all hand
// their frames to a single writer goroutine.
func (c *Client) serve(ctx context.Context, conn ports.ConnPort, s *session.Session, reset func()) error {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(connCtx)
	out := make(chan batch)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case b := <-out:
				err := c.send(gctx, conn, b.source, b.frames...)
				if b.done != nil {
					b.done <- err
				}
				if err != nil {
					return &domain.TransportError{Op: "write", Err: err}
				}
			}
		}
	})

	if c.opts.MessageSink != nil {
		g.Go(func() error {
			return c.pumpSink(gctx, s, out)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		c.setState(Closing)
		if ctx.Err() != nil {
			c.part(conn, s)
		}
		if err := conn.Close(); err != nil {
			c.log.Debug("Failed to close connection", slog.String("error", err.Error()))
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()

		s.RequestCapabilities()
		if c.opts.OnConnect != nil {
			if err := c.opts.OnConnect(s); err != nil {
				return &domain.TransportError{Op: "callback", Err: err}
			}
		}
		if err := c.flush(gctx, out, metrics.SourceCallback, s.Actions().ConsumeAndClear()); err != nil {
			return err
		}

		c.setState(Ready)
		reset()
		c.log.Info("Connected", slog.Any("channels", s.JoinedChannels()))

		return c.read(gctx, conn, s, out)
	})

	return g.Wait()
}

func (c *Client) read(ctx context.Context, conn ports.ConnPort, s *session.Session, out chan<- batch) error {
	for {
		line, err := conn.Receive(ctx)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrConnectionClosed):
				c.log.Info("Connection closed by server")
				return nil
			case ctx.Err() != nil:
				return nil
			}
			return &domain.TransportError{Op: "read", Err: err}
		}

		if err := c.handle(ctx, s, line, out); err != nil {
			return err
		}
	}
}

func (c *Client) handle(ctx context.Context, s *session.Session, line string, out chan<- batch) error {
	metrics.FramesReceived.WithLabelValues(c.opts.Name).Inc()

	// keep-alive
	if token, ok := message.PingToken(line); ok {
		return c.flush(ctx, out, metrics.SourceKeepalive, []string{message.Pong(token)})
	}
	if message.Command(line) == "RECONNECT" {
		return &domain.TransportError{Op: "read", Err: errServerReconnect}
	}

	if text, ok := message.ServerNotice(line); ok {
		if reason, ok := authFailure(text); ok {
			return &domain.AuthenticationError{Reason: reason}
		}
	}

	msg := message.Parse(line, time.Now())
	if msg.Type == message.Undefined && !c.opts.DeliverUndefined {
		c.log.Trace("Skipped line", slog.String("line", line))
		return nil
	}

	if c.opts.FilterUserMessages && strings.EqualFold(msg.User, c.opts.Username) {
		return nil
	}
	metrics.Messages.WithLabelValues(c.opts.Name, msg.Type.String()).Inc()

	start := time.Now()
	c.dispatch.Dispatch(s, msg)
	var err error
	if c.opts.OnMessage != nil {
		err = c.opts.OnMessage(s, msg)
	}
	metrics.CallbackTime.WithLabelValues(c.opts.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		return &domain.TransportError{Op: "callback", Err: err}
	}

	return c.flush(ctx, out, metrics.SourceCallback, s.Actions().ConsumeAndClear())
}

func authFailure(text string) (string, bool) {
	switch {
	case strings.Contains(text, "Login authentication failed"):
		return "login authentication failed", true
	case strings.Contains(text, "Improperly formatted auth"):
		return "improperly formatted auth", true
	}
	return "", false
}

// flush hands frames to the writer and waits until they were written.
func (c *Client) flush(ctx context.Context, out chan<- batch, source string, frames []string) error {
	if len(frames) == 0 {
		return nil
	}

	done := make(chan error, 1)
	select {
	case out <- batch{source: source, frames: frames, done: done}:
	case <-ctx.Done():
		return nil
	}

	select {
	case err := <-done:
		if err != nil {
			return &domain.TransportError{Op: "write", Err: err}
		}
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (c *Client) pumpSink(ctx context.Context, s *session.Session, out chan<- batch) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case text, ok := <-c.opts.MessageSink:
			if !ok {
				c.log.Debug("Message sink closed")
				return nil
			}

			select {
			case out <- batch{source: metrics.SourceSink, frames: s.Frames(text)}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// part leaves every joined channel before the connection is dropped. Errors
// are only logged since closing the socket is enough on its own.
func (c *Client) part(conn ports.ConnPort, s *session.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), partTimeout)
	defer cancel()

	for _, ch := range s.JoinedChannels() {
		if err := conn.Send(ctx, message.Part(ch)); err != nil {
			c.log.Debug("Failed to leave channel", slog.String("channel", ch), slog.String("error", err.Error()))
			return
		}
	}
}

func (c *Client) send(ctx context.Context, conn ports.ConnPort, source string, frames ...string) error {
	for _, frame := range frames {
		if err := conn.Send(ctx, frame); err != nil {
			return err
		}
		metrics.FramesSent.WithLabelValues(c.opts.Name, source).Inc()
		c.log.Trace("Sent frame", slog.String("frame", redact(frame)))
	}
	return nil
}

func redact(frame string) string {
	if strings.HasPrefix(frame, "PASS ") {
		return "PASS ***"
	}
	return frame
}
