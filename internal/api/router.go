package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tikkit/tikkit/internal/api/handler"
	"github.com/tikkit/tikkit/internal/api/middleware"
	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/services/purchase"
	"github.com/tikkit/tikkit/internal/services/room"
	"github.com/tikkit/tikkit/internal/services/session"
	"github.com/tikkit/tikkit/internal/services/wardrobe"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	Catalog         *catalog.Catalog
	SessionService  *session.Service
	PurchaseService *purchase.Service
	WardrobeService *wardrobe.Service
	RoomService     *room.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.SessionService)
	shopHandler := handler.NewShopHandler(cfg.Catalog, cfg.PurchaseService)
	wardrobeHandler := handler.NewWardrobeHandler(cfg.WardrobeService, cfg.SessionService)
	roomHandler := handler.NewRoomHandler(cfg.RoomService, cfg.SessionService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.SessionService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(authMiddleware)
	players.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)
	players.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Catalog routes (browsing needs no account)
	api.HandleFunc("/catalog/clothing", shopHandler.ListClothing).Methods(http.MethodGet)
	api.HandleFunc("/catalog/furniture", shopHandler.ListFurniture).Methods(http.MethodGet)

	// Shop routes
	shop := api.PathPrefix("/shop").Subrouter()
	shop.Use(authMiddleware)
	shop.HandleFunc("/purchase", shopHandler.Purchase).Methods(http.MethodPost)

	// Wardrobe routes
	wardrobeRoutes := api.PathPrefix("/wardrobe").Subrouter()
	wardrobeRoutes.Use(authMiddleware)
	wardrobeRoutes.HandleFunc("", wardrobeHandler.Get).Methods(http.MethodGet)
	wardrobeRoutes.HandleFunc("/wear", wardrobeHandler.Wear).Methods(http.MethodPost)
	wardrobeRoutes.HandleFunc("/unwear", wardrobeHandler.Unwear).Methods(http.MethodPost)
	wardrobeRoutes.HandleFunc("/checkout", wardrobeHandler.Checkout).Methods(http.MethodPost)

	// Room routes
	roomRoutes := api.PathPrefix("/room").Subrouter()
	roomRoutes.Use(authMiddleware)
	roomRoutes.HandleFunc("", roomHandler.Get).Methods(http.MethodGet)
	roomRoutes.HandleFunc("/place", roomHandler.Place).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/save", roomHandler.Save).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/instances/{id}/move", roomHandler.Move).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/instances/{id}/rotate", roomHandler.Rotate).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/instances/{id}/front", roomHandler.BringToFront).Methods(http.MethodPost)
	roomRoutes.HandleFunc("/instances/{id}", roomHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
