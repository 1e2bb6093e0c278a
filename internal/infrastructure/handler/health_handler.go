package handler

import (
	"net/http"

	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/logger"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// CatalogSizer reports how many currencies the service accepts
type CatalogSizer interface {
	Size() int
}

// HealthHandler serves liveness and the fallback routes
type HealthHandler struct {
	catalog CatalogSizer
	logger  logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog CatalogSizer, log logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &HealthHandler{
		catalog: catalog,
		logger:  log,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:     "ok",
		Currencies: h.catalog.Size(),
	})
}

// NotFound answers unknown routes in the error envelope
func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	sendErrorResponse(w, h.logger, statusPhrase(http.StatusNotFound),
		"The requested URL was not found on the server.", http.StatusNotFound, middleware.GetRequestID(r.Context()))
}

// MethodNotAllowed answers known routes called with the wrong method
func (h *HealthHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendErrorResponse(w, h.logger, statusPhrase(http.StatusMethodNotAllowed),
		"The method is not allowed for the requested URL.", http.StatusMethodNotAllowed, middleware.GetRequestID(r.Context()))
}

// RegisterRoutes registers the health route and the router fallbacks
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	router.NotFoundHandler = http.HandlerFunc(h.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)
}
