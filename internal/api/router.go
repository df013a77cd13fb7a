package api

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/topio-market/topio-registry/internal/api/recovery"
	"github.com/topio-market/topio-registry/internal/services"
	"github.com/topio-market/topio-registry/internal/store"
)

// NewRouter wires every registry route to its handler. requestTimeout
// bounds each storage operation; isHealthy feeds GET /health and may be
// nil.
func NewRouter(st store.Store, requestTimeout time.Duration, isHealthy func() bool) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares; recovery sits outermost.
	router.Use(recovery.Middleware)
	router.Use(RequestID)
	router.Use(RequestLogger)

	users := NewUserHandler(services.NewUserService(st, requestTimeout))
	types := NewAssetTypeHandler(services.NewAssetTypeService(st, requestTimeout))
	assets := NewAssetHandler(services.NewAssetService(st, requestTimeout))
	health := NewHealthHandler(st, isHealthy)

	// Users
	router.HandleFunc("/users/register", users.Register).Methods("POST")
	router.HandleFunc("/users/{id:[0-9]+}", users.Get).Methods("GET")

	// Asset types; the list route needs the trailing slash.
	router.HandleFunc("/asset_types/register", types.Register).Methods("POST")
	router.HandleFunc("/asset_types/", types.List).Methods("GET")
	router.HandleFunc("/asset_types/{id}", types.Get).Methods("GET")

	// Assets and identifier resolution
	router.HandleFunc("/assets/register", assets.Register).Methods("POST")
	router.HandleFunc("/assets/topio_id", assets.TopioID).Methods("GET")
	router.HandleFunc("/assets/custom_id", assets.CustomID).Methods("GET")
	router.HandleFunc("/assets/", assets.List).Methods("GET")

	// Health
	router.HandleFunc("/health", health.CheckHealth).Methods("GET")
	router.HandleFunc("/health/db", health.CheckStorageHealth).Methods("GET")

	return router
}
