package ports

import "time"

type Snapshot struct {
	Uptime     time.Duration  `json:"uptime"`
	CPUPercent float64        `json:"cpu_percent"`
	MemoryMB   uint64         `json:"memory_mb"`
	Clients    []ClientStatus `json:"clients"`
}

type StatsPort interface {
	Snapshot() Snapshot
	Summary() string
}
