package storage

import (
	"context"

	"github.com/tikkit/tikkit/internal/model"
)

// Store defines the interface for data persistence. It is the only
// component that writes durable state and the only one allowed to
// reconstruct a player's aggregates from stored rows.
//
// Furniture inventory is stored compressed (one row per distinct name with
// a quantity) and expanded back into a multiset on load. Placed furniture
// is stored uncompressed, one row per instance, because every instance
// carries its own position, orientation and stacking order. Clothing is
// not stackable: one inventory row per owned item, and a single equipped
// row per user with one nullable column per category.
type Store interface {
	// CreateUser inserts the account row, seeds the default room layout
	// and creates the all-null equipped-clothes row in one logical step:
	// if the account insert fails (e.g. the username is taken), none of
	// the dependent rows may exist afterwards.
	CreateUser(ctx context.Context, username, passwordHash string, currency int, layout []*model.PlacedInstance) (model.UserID, error)
	GetUser(ctx context.Context, uuid model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	SetLoggedStatus(ctx context.Context, uuid model.UserID, loggedIn bool) error

	SaveCurrency(ctx context.Context, uuid model.UserID, currency int) error
	LoadCurrency(ctx context.Context, uuid model.UserID) (int, error)

	// SaveFurniture replaces all furniture rows for the user with
	// delete-then-insert semantics. Inventory and placement are saved in
	// the same call so the two halves can never go out of sync.
	SaveFurniture(ctx context.Context, uuid model.UserID, inventory []model.ItemName, placed []*model.PlacedInstance) error
	LoadFurniture(ctx context.Context, uuid model.UserID) ([]model.ItemName, []*model.PlacedInstance, error)

	// SaveClothes replaces the clothing inventory rows and updates the
	// equipped row. The equipped row itself is created once at account
	// creation, so the update can assume it exists.
	SaveClothes(ctx context.Context, uuid model.UserID, inventory []model.ItemName, equipped map[model.Category]model.ItemName) error
	LoadClothes(ctx context.Context, uuid model.UserID) ([]model.ItemName, map[model.Category]model.ItemName, error)

	Close() error
}
