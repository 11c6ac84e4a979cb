package controllers

// Common request/response types for HTTP controllers

// trackReq represents a request to record one event. Quantity is a pointer
// so an omitted field defaults to 1 while an explicit 0 is rejected.
type trackReq struct {
	Kind        string `json:"kind"`
	SubjectID   string `json:"subject_id"`
	Page        string `json:"page,omitempty"`
	ProductID   string `json:"product_id,omitempty"`
	PromotionID string `json:"promotion_id,omitempty"`
	Quantity    *int64 `json:"quantity"`
}

// trackResp acknowledges a recorded event with the updated running total.
type trackResp struct {
	Accepted   bool   `json:"accepted"`
	ID         string `json:"id"`
	Total      int64  `json:"total"`
	RecordedAt string `json:"recorded_at"`
}

// statsResp is the query contract payload: the ledger integers embedded in
// the server status report.
type statsResp struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Uptime        string  `json:"uptime"`
	CurrentTime   string  `json:"current_time"`
	Total         int64   `json:"total"`
	RecentCount   int64   `json:"recent_count"`
	WindowHours   float64 `json:"window_hours"`
}

// indexResp describes the service at the root path.
type indexResp struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
