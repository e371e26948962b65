package tmi

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"tmiclient/internal/app/domain"
	"tmiclient/internal/app/ports"
)

var errDialRefused = errors.New("dial refused")

type fakeConn struct {
	in   chan string
	sent chan string

	closeOnce sync.Once
	closed    chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan string, 16),
		sent:   make(chan string, 256),
		closed: make(chan struct{}),
	}
}

func (f *fakeConn) Send(_ context.Context, frame string) error {
	select {
	case <-f.closed:
		return net.ErrClosed
	default:
	}
	f.sent <- frame
	return nil
}

func (f *fakeConn) Receive(ctx context.Context) (string, error) {
	select {
	case line, ok := <-f.in:
		if !ok {
			return "", domain.ErrConnectionClosed
		}
		return line, nil
	case <-f.closed:
		return "", net.ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

// next returns the next frame the client wrote.
func (f *fakeConn) next(t *testing.T) string {
	t.Helper()

	select {
	case frame := <-f.sent:
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an outbound frame")
		return ""
	}
}

func (f *fakeConn) nextN(t *testing.T, n int) []string {
	t.Helper()

	frames := make([]string, 0, n)
	for range n {
		frames = append(frames, f.next(t))
	}
	return frames
}

// fakeTransport refuses the first fails dials and hands out fakeConns after.
type fakeTransport struct {
	fails int64
	calls atomic.Int64
	conns chan *fakeConn
}

func newFakeTransport(fails int64) *fakeTransport {
	return &fakeTransport{fails: fails, conns: make(chan *fakeConn, 16)}
}

func (f *fakeTransport) Connect(ctx context.Context, _ string) (ports.ConnPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.calls.Add(1) <= f.fails {
		return nil, errDialRefused
	}

	conn := newFakeConn()
	f.conns <- conn
	return conn, nil
}

func (f *fakeTransport) conn(t *testing.T) *fakeConn {
	t.Helper()

	select {
	case c := <-f.conns:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a connection")
		return nil
	}
}
