package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClientState - текущее состояние клиента (номер состояния).
	ClientState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tmi_client_state",
			Help: "Current state of the client state machine (0 idle .. 6 closed)",
		},
		[]string{"client"},
	)

	// FramesReceived - количество входящих строк протокола.
	FramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmi_frames_received_total",
			Help: "Total number of inbound protocol lines",
		},
		[]string{"client"},
	)

	// FramesSent - количество исходящих строк протокола по источнику.
	FramesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmi_frames_sent_total",
			Help: "Total number of outbound protocol lines per source",
		},
		[]string{"client", "source"},
	)

	// Messages - количество разобранных сообщений по типу.
	Messages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmi_messages_total",
			Help: "Total number of parsed chat messages per type",
		},
		[]string{"client", "type"},
	)

	// ConnectAttempts - количество попыток подключения.
	ConnectAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmi_connect_attempts_total",
			Help: "Total number of connection attempts",
		},
		[]string{"client"},
	)

	// Reconnects - количество запланированных переподключений.
	Reconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmi_reconnects_total",
			Help: "Total number of scheduled reconnects",
		},
		[]string{"client"},
	)

	// CallbackTime - время обработки одного входящего сообщения колбэками.
	CallbackTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmi_callback_seconds",
			Help:    "Time spent in dispatchers and message callbacks per message",
			Buckets: prometheus.ExponentialBuckets(0.00005, 1.5, 25),
		},
		[]string{"client"},
	)
)

const (
	SourceHandshake = "handshake"
	SourceCallback  = "callback"
	SourceSink      = "sink"
	SourceKeepalive = "keepalive"
)
