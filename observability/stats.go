package observability

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is the show-day triage snapshot: enough to tell at a glance
// whether the server is the problem.
type ProcessStats struct {
	PID        int32   `json:"pid"`
	Status     string  `json:"status"`
	CPUPercent float64 `json:"cpuPercent"`
	RSSBytes   uint64  `json:"rssBytes"`
	AllocMemMB uint64  `json:"allocMemMb"`
	NumGC      uint32  `json:"numGc"`
	Goroutines int     `json:"goroutines"`
	UptimeSec  int64   `json:"uptimeSec"`
}

// StatsCollector samples OS-level metrics of the serving process plus the Go
// runtime counters.
type StatsCollector struct {
	log     *slog.Logger
	proc    *process.Process
	started time.Time
}

func NewStatsCollector(log *slog.Logger) (*StatsCollector, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &StatsCollector{log: log, proc: p, started: time.Now()}, nil
}

// Collect samples the current process. OS-level probe failures degrade to
// partial stats rather than an error: the Go runtime counters are always
// available and a half-empty answer still beats none during a show.
func (c *StatsCollector) Collect() ProcessStats {
	stats := ProcessStats{
		PID:        c.proc.Pid,
		Goroutines: runtime.NumGoroutine(),
		UptimeSec:  int64(time.Since(c.started).Seconds()),
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.AllocMemMB = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC

	if memInfo, err := c.proc.MemoryInfo(); err == nil {
		stats.RSSBytes = memInfo.RSS
	} else {
		c.log.Debug("Failed to read process memory info", "err", err)
	}
	if cpu, err := c.proc.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	} else {
		c.log.Debug("Failed to read process cpu usage", "err", err)
	}
	if status, err := c.proc.Status(); err == nil {
		stats.Status = status
	} else {
		c.log.Debug("Failed to read process status", "err", err)
	}
	return stats
}
