package ws

import (
	"context"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"tmiclient/internal/app/domain"
	"tmiclient/pkg/logger"
)

func serve(t *testing.T, handler func(conn *websocket.Conn)) string {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func connect(t *testing.T, url string) *Conn {
	t.Helper()

	tr, err := New(logger.NewDiscard(), "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := tr.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn.(*Conn)
}

func TestConn_ReceiveSplitsLines(t *testing.T) {
	url := serve(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte("PING :tmi.twitch.tv\r\n"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(":a!a@a.tmi.twitch.tv PRIVMSG #c :one\r\n:b!b@b.tmi.twitch.tv PRIVMSG #c :two\r\n"))
		_, _, _ = conn.ReadMessage()
	})
	conn := connect(t, url)

	ctx := context.Background()
	for _, want := range []string{
		"PING :tmi.twitch.tv",
		":a!a@a.tmi.twitch.tv PRIVMSG #c :one",
		":b!b@b.tmi.twitch.tv PRIVMSG #c :two",
	} {
		line, err := conn.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}
}

func TestConn_Send(t *testing.T) {
	got := make(chan string, 2)
	url := serve(t, func(conn *websocket.Conn) {
		for range 2 {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			got <- string(data)
		}
	})
	conn := connect(t, url)

	require.NoError(t, conn.Send(context.Background(), "PASS oauth:secret"))
	require.NoError(t, conn.Send(context.Background(), "NICK bot"))

	assert.Equal(t, "PASS oauth:secret", <-got)
	assert.Equal(t, "NICK bot", <-got)
}

func TestConn_NormalCloseIsConnectionClosed(t *testing.T) {
	url := serve(t, func(conn *websocket.Conn) {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_, _, _ = conn.ReadMessage()
	})
	conn := connect(t, url)

	_, err := conn.Receive(context.Background())
	assert.ErrorIs(t, err, domain.ErrConnectionClosed)
}

func TestConn_AbruptDropIsError(t *testing.T) {
	url := serve(t, func(conn *websocket.Conn) {
		_ = conn.UnderlyingConn().Close()
	})
	conn := connect(t, url)

	_, err := conn.Receive(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConnectionClosed)
}

func TestConn_CloseIsIdempotent(t *testing.T) {
	url := serve(t, func(conn *websocket.Conn) {
		_, _, _ = conn.ReadMessage()
	})
	conn := connect(t, url)

	assert.NoError(t, conn.Close())
	assert.NoError(t, conn.Close())
}

func TestTransport_ConnectFailure(t *testing.T) {
	tr, err := New(logger.NewDiscard(), "")
	require.NoError(t, err)

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err = tr.Connect(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	assert.ErrorContains(t, err, "websocket dial")
}

func TestNew_WithProxy(t *testing.T) {
	tr, err := New(logger.NewDiscard(), "127.0.0.1:1080")
	require.NoError(t, err)
	assert.NotNil(t, tr.dialer.NetDialContext)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "a\r\nb\r\n", want: []string{"a", "b"}},
		{in: "a\nb", want: []string{"a", "b"}},
		{in: "single", want: []string{"single"}},
		{in: "\r\n", want: nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitLines(tt.in), tt.in)
	}
}
