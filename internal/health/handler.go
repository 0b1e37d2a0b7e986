package health

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vxvideo-bot/internal/database/models"
)

// StatsProvider exposes the current counter values.
type StatsProvider interface {
	Snapshot() models.BotStats
}

// Handler serves the liveness and stats endpoints.
type Handler struct {
	stats     StatsProvider
	version   string
	startedAt time.Time
}

// NewHandler creates a new health handler.
func NewHandler(stats StatsProvider, version string) *Handler {
	return &Handler{stats: stats, version: version, startedAt: time.Now()}
}

// Response is the JSON body of GET /health.
type Response struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// StatsResponse is the JSON body of GET /stats.
type StatsResponse struct {
	MessagesHandled int64 `json:"messages_handled"`
	MediaDownloaded int64 `json:"media_downloaded"`
}

// Live handles GET /health - liveness probe.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
	})
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot := h.stats.Snapshot()
	writeJSON(w, http.StatusOK, StatsResponse{
		MessagesHandled: snapshot.MessagesHandled,
		MediaDownloaded: snapshot.MediaDownloaded,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[Health] Failed to encode response: %v", err)
	}
}
