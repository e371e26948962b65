package stats

import (
	"fmt"
	"github.com/shirou/gopsutil/cpu"
	"runtime"
	"sync"
	"time"
	"tmiclient/internal/app/ports"
)

// Stats reports process load and the status of every registered client.
type Stats struct {
	startTime time.Time

	mu      sync.RWMutex
	clients []ports.StatusPort
}

func New(startTime time.Time) *Stats {
	return &Stats{startTime: startTime}
}

func (s *Stats) Register(clients ...ports.StatusPort) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = append(s.clients, clients...)
}

func (s *Stats) Snapshot() ports.Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	percent, _ := cpu.Percent(0, false)
	if len(percent) == 0 {
		percent = append(percent, 0)
	}

	s.mu.RLock()
	statuses := make([]ports.ClientStatus, 0, len(s.clients))
	for _, c := range s.clients {
		statuses = append(statuses, c.Status())
	}
	s.mu.RUnlock()

	return ports.Snapshot{
		Uptime:     time.Since(s.startTime).Truncate(time.Second),
		CPUPercent: percent[0],
		MemoryMB:   m.Sys / 1024 / 1024,
		Clients:    statuses,
	}
}

func (s *Stats) Summary() string {
	snap := s.Snapshot()

	ready := 0
	for _, c := range snap.Clients {
		if c.State == "ready" {
			ready++
		}
	}

	return fmt.Sprintf("up %v • CPU %.2f%% • RAM %v MB • clients ready %d/%d",
		snap.Uptime, snap.CPUPercent, snap.MemoryMB, ready, len(snap.Clients))
}
