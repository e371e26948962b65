package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
	router "tmiclient/internal/app/adapters/http"
	"tmiclient/internal/app/adapters/platform/twitch/tmi"
	"tmiclient/internal/app/adapters/platform/twitch/ws"
	"tmiclient/internal/app/adapters/stats"
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
	"tmiclient/internal/app/infrastructure/config"
	"tmiclient/internal/app/ports"
	"tmiclient/pkg/logger"
)

type Options struct {
	ConfigPath string
	EnvPath    string
}

// Run starts one chat client per configured entry plus the HTTP server and
// blocks until ctx is done or every client has stopped.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadDotEnv(opts.EnvPath); err != nil {
		return fmt.Errorf("load %s: %w", opts.EnvPath, err)
	}

	manager, err := config.New(opts.ConfigPath)
	if err != nil {
		return err
	}
	cfg := manager.Get()

	log := logger.New(logger.Options{FilePath: cfg.App.LogFile, Level: cfg.App.LogLevel})
	log.Info("Config loaded", slog.String("path", manager.Path()), slog.Int("clients", len(cfg.Clients)))
	gin.SetMode(cfg.App.GinMode)

	transport, err := ws.New(log, proxyAddr(cfg.Proxy))
	if err != nil {
		return err
	}

	st := stats.New(time.Now())
	clients, err := buildClients(log, cfg, transport, st)
	if err != nil {
		return err
	}
	st.Register(clientStatuses(clients)...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := router.NewRouter(log, cfg.App, st)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()

		var cg errgroup.Group
		for _, c := range clients {
			cg.Go(func() error {
				err := c.Run(gctx)
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Error("Client stopped", err, slog.String("client", c.Name()))
				}
				return nil
			})
		}
		return cg.Wait()
	})

	return g.Wait()
}

func proxyAddr(p *config.Proxy) string {
	if p == nil || p.Address == "" || p.Port == 0 {
		return ""
	}
	return net.JoinHostPort(p.Address, strconv.Itoa(p.Port))
}

func buildClients(log logger.Logger, cfg *config.Config, transport *ws.Transport, st *stats.Stats) ([]*tmi.Client, error) {
	clients := make([]*tmi.Client, 0, len(cfg.Clients))
	for _, cc := range cfg.Clients {
		username, password, err := cc.Credentials(os.LookupEnv)
		if err != nil {
			return nil, fmt.Errorf("client %q: %w", cc.Name, err)
		}

		c, err := tmi.New(log, transport, tmi.Options{
			Name:               cc.Name,
			URL:                cc.URL,
			Username:           username,
			Password:           password,
			Channels:           cc.Channels,
			FilterUserMessages: cc.FilterUserMessages,
			Capabilities:       cc.SessionCapabilities(),
			DeliverUndefined:   cc.DeliverUndefined,
			OnConnect: func(s *session.Session) error {
				log.Info("Chatbot started", slog.String("client", cc.Name), slog.Any("channels", s.JoinedChannels()), slog.Any("capabilities", s.Capabilities()))
				return nil
			},
			OnMessage: func(_ *session.Session, msg message.ChatMessage) error {
				log.Trace("Message", slog.String("type", msg.Type.String()), slog.String("channel", msg.Channel), slog.String("user", msg.User), slog.String("text", msg.Text))
				return nil
			},
			Dispatchers: defaultDispatchers(log, st),
			Reconnect:   cfg.Reconnect.Policy(),
		})
		if err != nil {
			return nil, fmt.Errorf("client %q: %w", cc.Name, err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func clientStatuses(clients []*tmi.Client) []ports.StatusPort {
	out := make([]ports.StatusPort, 0, len(clients))
	for _, c := range clients {
		out = append(out, c)
	}
	return out
}
