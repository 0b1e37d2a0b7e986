package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vxvideo-bot/internal/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats models.BotStats

func (f fixedStats) Snapshot() models.BotStats { return models.BotStats(f) }

func TestRouter(t *testing.T) {
	server := httptest.NewServer(NewRouter(NewHandler(fixedStats{MessagesHandled: 12, MediaDownloaded: 4}, "1.2.3")))
	defer server.Close()

	t.Run("Health", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		var body Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "1.2.3", body.Version)
	})

	t.Run("Stats", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body StatsResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, StatsResponse{MessagesHandled: 12, MediaDownloaded: 4}, body)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("WrongMethod", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/stats", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
