package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rzbill/tally/internal/ledger"
	"github.com/rzbill/tally/internal/runtime"
	logpkg "github.com/rzbill/tally/pkg/log"
)

// EventsController handles the ingest contract: it validates the incoming
// event, enriches it with the client address and generation timestamp, and
// appends it to the ledger.
type EventsController struct {
	rt     *runtime.Runtime
	logger logpkg.Logger
}

// NewEventsController creates a new events controller.
func NewEventsController(rt *runtime.Runtime, logger logpkg.Logger) *EventsController {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	return &EventsController{rt: rt, logger: logger}
}

// RegisterRoutes registers ingest routes with the given mux.
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/events", c.handleTrack)
}

// handleTrack records one event and returns the updated running total.
func (c *EventsController) handleTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	icfg := c.rt.Config().Ingest
	r.Body = http.MaxBytesReader(w, r.Body, int64(icfg.MaxBodyBytes))

	var req trackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	kind := ledger.Kind(req.Kind)
	if kind != ledger.KindVisit && kind != ledger.KindPurchase {
		writeError(w, http.StatusBadRequest, "kind must be \"visit\" or \"purchase\"")
		return
	}
	quantity := int64(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}

	rec := ledger.Record{
		ID:          c.rt.NextID(),
		Kind:        kind,
		SubjectID:   req.SubjectID,
		Page:        req.Page,
		ProductID:   req.ProductID,
		PromotionID: req.PromotionID,
		Origin:      ClientAddr(r, icfg.TrustProxyHeaders),
		Quantity:    quantity,
		At:          GenerationTime(r, icfg.TrustProxyHeaders, time.Now()),
	}
	total, err := c.rt.Ledger().Append(r.Context(), rec)
	if err != nil {
		// The ledger re-checks quantity; surface the rejection rather than
		// answering with a stale total.
		if errors.Is(err, ledger.ErrInvalidQuantity) {
			writeError(w, http.StatusBadRequest, "quantity must be a positive integer")
			return
		}
		c.logger.Error("append failed", logpkg.Err(err), logpkg.Str("kind", string(kind)))
		writeError(w, http.StatusInternalServerError, "Failed to record event")
		return
	}

	c.logger.Debug("event recorded",
		logpkg.Str("id", rec.ID),
		logpkg.Str("kind", string(kind)),
		logpkg.Int64("quantity", quantity),
		logpkg.Int64("total", total),
	)
	writeJSONStatus(w, http.StatusCreated, trackResp{
		Accepted:   true,
		ID:         rec.ID,
		Total:      total,
		RecordedAt: rec.At.Format(time.RFC3339),
	})
}
