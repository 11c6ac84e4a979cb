package controllers

import (
	"net/http"

	"github.com/rzbill/tally/internal/runtime"
	logpkg "github.com/rzbill/tally/pkg/log"
)

// Registry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes.
type Registry struct {
	general *GeneralController
	events  *EventsController
}

// NewRegistry creates a new controller registry.
func NewRegistry(rt *runtime.Runtime, logger logpkg.Logger) *Registry {
	return &Registry{
		general: NewGeneralController(rt),
		events:  NewEventsController(rt, logger),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This sets up the full Tally HTTP surface: the service index and 404
// handler, health, statistics, and event ingest.
func (r *Registry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.events.RegisterRoutes(mux)
}
