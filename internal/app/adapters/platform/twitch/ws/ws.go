package ws

import (
	"context"
	"errors"
	"fmt"
	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
	"tmiclient/internal/app/domain"
	"tmiclient/internal/app/ports"
	"tmiclient/pkg/logger"
)

const (
	handshakeTimeout = 10 * time.Second
	closeGracePeriod = time.Second
)

type Transport struct {
	log    logger.Logger
	dialer websocket.Dialer
}

// New builds a websocket transport. A non-empty proxyAddr ("host:port")
// routes every connection through that SOCKS5 proxy.
func New(log logger.Logger, proxyAddr string) (*Transport, error) {
	t := &Transport{
		log: log,
		dialer: websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
		},
	}

	if proxyAddr != "" {
		d, err := proxy.SOCKS5("tcp", proxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks5 proxy %s: %w", proxyAddr, err)
		}

		if cd, ok := d.(proxy.ContextDialer); ok {
			t.dialer.NetDialContext = cd.DialContext
		} else {
			t.dialer.NetDialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return d.Dial(network, addr)
			}
		}
	}

	return t, nil
}

func (t *Transport) Connect(ctx context.Context, url string) (ports.ConnPort, error) {
	conn, resp, err := t.dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			if err := resp.Body.Close(); err != nil {
				t.log.Error("Failed to close response body", err)
			}
		}
		return nil, fmt.Errorf("websocket dial: %w", err)
	}

	t.log.Debug("Websocket connected", slog.String("url", url))
	return &Conn{ws: conn}, nil
}

// Conn is one websocket connection carrying IRC lines as text messages.
type Conn struct {
	ws *websocket.Conn

	writeMu sync.Mutex
	pending []string

	closeOnce sync.Once
	closeErr  error
}

func (c *Conn) Send(ctx context.Context, frame string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline, _ := ctx.Deadline()
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}

// Receive returns the next line. One websocket message may carry several
// CRLF separated lines; the rest are buffered for later calls.
func (c *Conn) Receive(ctx context.Context) (string, error) {
	for len(c.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		_, data, err := c.ws.ReadMessage()
		if err != nil {
			switch {
			case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				return "", domain.ErrConnectionClosed
			case ctx.Err() != nil:
				return "", ctx.Err()
			}
			return "", fmt.Errorf("websocket read: %w", err)
		}
		c.pending = splitLines(string(data))
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

func splitLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Close sends a close frame on a best effort basis and drops the connection.
// It is safe to call more than once and from any goroutine.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		err := c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGracePeriod))
		if err != nil && !errors.Is(err, websocket.ErrCloseSent) && !errors.Is(err, net.ErrClosed) {
			c.closeErr = err
		}
		if err := c.ws.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			c.closeErr = errors.Join(c.closeErr, err)
		}
	})
	return c.closeErr
}
