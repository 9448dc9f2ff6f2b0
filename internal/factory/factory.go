package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/dependencies/clock"
	"github.com/tikkit/tikkit/internal/dependencies/random"
	"github.com/tikkit/tikkit/internal/services/purchase"
	"github.com/tikkit/tikkit/internal/services/room"
	"github.com/tikkit/tikkit/internal/services/session"
	"github.com/tikkit/tikkit/internal/services/wardrobe"
	"github.com/tikkit/tikkit/internal/storage"
	"github.com/tikkit/tikkit/internal/storage/memory"
	redisstorage "github.com/tikkit/tikkit/internal/storage/redis"
	"github.com/tikkit/tikkit/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeSQLite = "sqlite"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Catalog and services
	Catalog         *catalog.Catalog
	PurchaseService *purchase.Service
	WardrobeService *wardrobe.Service
	RoomService     *room.Service
	SessionService  *session.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AssetsDir is the directory holding item sprites (optional)
	// Used to derive furniture orientation counts from sprite files
	AssetsDir string
	// SessionConfig holds configuration for the session service (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// RoomConfig holds room dimensions (optional)
	// If zero value, defaults to room.DefaultConfig()
	RoomConfig room.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "sqlite" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'sqlite' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	cat := catalog.New(cfg.AssetsDir)

	purchaseService := purchase.New(cat, logger)
	wardrobeService := wardrobe.New(cat, logger)
	roomService := room.New(cat, cfg.RoomConfig, logger)
	sessionService := session.New(store, wardrobeService, roomService, cat, clk, rnd, cfg.SessionConfig, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Catalog:         cat,
		PurchaseService: purchaseService,
		WardrobeService: wardrobeService,
		RoomService:     roomService,
		SessionService:  sessionService,
	}
}
