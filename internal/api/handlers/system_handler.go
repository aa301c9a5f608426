package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemHandler exposes liveness and host statistics.
type SystemHandler struct {
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{startedAt: time.Now()}
}

// Health reports liveness. It is always public.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Stats reports process and host statistics for the admin dashboard. A
// metric that cannot be read is logged and left out of the response.
func (h *SystemHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
	}

	if percents, err := cpu.Percent(0, false); err != nil {
		log.Warn().Err(err).Msg("Failed to read CPU usage")
	} else if len(percents) > 0 {
		stats["cpu_percent"] = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn().Err(err).Msg("Failed to read memory usage")
	} else {
		stats["memory_total_bytes"] = vm.Total
		stats["memory_used_bytes"] = vm.Used
		stats["memory_used_percent"] = vm.UsedPercent
	}

	respondWithJSON(w, http.StatusOK, stats)
}
