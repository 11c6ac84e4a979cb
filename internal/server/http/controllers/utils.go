package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Helper functions for common HTTP responses

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a 200 JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeNotFound answers unknown paths with the endpoint summary.
func writeNotFound(w http.ResponseWriter, path string) {
	writeJSONStatus(w, http.StatusNotFound, map[string]any{
		"error":               "Not Found",
		"message":             fmt.Sprintf("The requested path %q was not found", path),
		"available_endpoints": endpointSummary,
	})
}

// parseHours parses the window size query parameter. An empty value falls
// back to def; values outside [min, max] are rejected.
func parseHours(s string, def, min, max float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("hours must be a number, got %q", s)
	}
	if h < min || h > max {
		return 0, fmt.Errorf("hours must be between %g and %g, got %g", min, max, h)
	}
	return h, nil
}

// formatUptime renders a duration as "1d 2h 3m 4s", dropping leading zero
// units.
func formatUptime(d time.Duration) string {
	secs := int64(d.Seconds())
	days := secs / 86400
	hours := (secs % 86400) / 3600
	mins := (secs % 3600) / 60
	s := secs % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, mins, s)
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, s)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
