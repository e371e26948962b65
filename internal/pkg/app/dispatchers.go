package app

import (
	"fmt"
	"log/slog"
	"time"
	"tmiclient/internal/app/domain/dispatch"
	"tmiclient/internal/app/domain/message"
	"tmiclient/internal/app/domain/session"
	"tmiclient/internal/app/ports"
	"tmiclient/pkg/logger"
)

const (
	pingCooldown  = 30 * time.Second
	cheerThankMin = 100
)

// defaultDispatchers is the chat behaviour every configured client gets.
func defaultDispatchers(log logger.Logger, stats ports.StatsPort) []dispatch.Dispatcher {
	return []dispatch.Dispatcher{
		dispatch.OnCommand("!ping", func(s *session.Session, msg message.ChatMessage, _ dispatch.Command) {
			s.TextMessage(fmt.Sprintf("@%s %s", msg.User, stats.Summary()), msg.Channel)
		}, dispatch.WithoutArguments(), dispatch.WithUserCooldown(pingCooldown, 1)),

		dispatch.OnCheer(dispatch.Always(), func(s *session.Session, msg message.ChatMessage, amount int) {
			log.Info("Cheer received", slog.String("channel", msg.Channel), slog.String("user", msg.User), slog.Int("amount", amount))
			if amount >= cheerThankMin {
				s.TextMessage(fmt.Sprintf("@%s thanks for the %d bits!", msg.User, amount), msg.Channel)
			}
		}),

		dispatch.OnUserNotice(func(s *session.Session, msg message.ChatMessage, noticeType message.UserNoticeType) {
			log.Info("User notice", slog.String("channel", msg.Channel), slog.String("type", string(noticeType)), slog.String("user", msg.User))

			switch noticeType {
			case message.Raid:
				s.TextMessage(fmt.Sprintf("Welcome raiders from %s!", msg.User), msg.Channel)
			default:
				s.TextMessage(fmt.Sprintf("@%s thank you for the support!", msg.User), msg.Channel)
			}
		}, message.Sub, message.Resub, message.SubGift, message.Raid),
	}
}
