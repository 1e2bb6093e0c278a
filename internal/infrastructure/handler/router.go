package handler

import (
	"github.com/damon-houk/prevday-exchange-rate/internal/application/service"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/logger"
	"github.com/damon-houk/prevday-exchange-rate/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires the handlers and middleware chain
func NewRouter(resolver *service.RateResolver, catalog CatalogSizer, log logger.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.RecoveryMiddleware(log),
	)

	NewExchangeRateHandler(resolver, log).RegisterRoutes(router)
	NewHealthHandler(catalog, log).RegisterRoutes(router)

	return router
}
