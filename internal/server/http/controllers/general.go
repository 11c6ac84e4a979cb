package controllers

import (
	"net/http"
	"time"

	"github.com/rzbill/tally/internal/runtime"
)

const serviceVersion = "0.1.0"

// endpointSummary is returned by the index and in 404 responses.
var endpointSummary = map[string]string{
	"POST /v1/events": "Record a visit or purchase event",
	"GET /v1/stats":   "Server statistics with a trailing-window count",
	"GET /v1/healthz": "Health check",
}

// GeneralController handles the index, health, and statistics endpoints.
type GeneralController struct {
	rt *runtime.Runtime
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt}
}

// RegisterRoutes registers general routes with the given mux.
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", c.handleIndex)
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/stats", c.handleStats)
}

// handleIndex serves basic service information at "/" and a JSON 404 for
// every unregistered path (the root pattern catches those too).
func (c *GeneralController) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeNotFound(w, r.URL.Path)
		return
	}
	writeJSON(w, indexResp{
		Service:   "tally",
		Version:   serviceVersion,
		Endpoints: endpointSummary,
	})
}

// handleHealth returns 200 with {"status":"ok"} while the ledger backend is
// reachable, 503 otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStats answers the query contract: running total plus the count of
// events inside the trailing window, embedded in the server status payload.
func (c *GeneralController) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	wcfg := c.rt.Config().Window
	hours, err := parseHours(r.URL.Query().Get("hours"), wcfg.DefaultHours, wcfg.MinHours, wcfg.MaxHours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	total, err := c.rt.Ledger().Total(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read ledger total")
		return
	}
	recent, err := c.rt.Window().CountWithin(r.Context(), hours, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute window count")
		return
	}

	uptime := c.rt.Uptime()
	writeJSON(w, statsResp{
		Status:        "healthy",
		UptimeSeconds: uptime.Seconds(),
		Uptime:        formatUptime(uptime),
		CurrentTime:   now.Format(time.RFC3339),
		Total:         total,
		RecentCount:   recent,
		WindowHours:   hours,
	})
}
