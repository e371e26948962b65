package handlers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"tmiclient/internal/app/ports"
	"tmiclient/pkg/logger"
)

type Handlers struct {
	log   logger.Logger
	stats ports.StatsPort
}

func New(log logger.Logger, stats ports.StatsPort) *Handlers {
	return &Handlers{
		log:   log,
		stats: stats,
	}
}

func (h *Handlers) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Snapshot())
}

// HealthHandler answers 200 while at least one client is not closed.
func (h *Handlers) HealthHandler(c *gin.Context) {
	snap := h.stats.Snapshot()
	for _, client := range snap.Clients {
		if client.State != "closed" {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
	}

	h.log.Warn("Health check failed, no client is running")
	c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
}
