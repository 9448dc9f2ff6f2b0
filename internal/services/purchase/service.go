package purchase

import (
	"log/slog"

	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/model"
)

// Service handles shop purchases against an in-memory player state.
// Currency never goes negative: the price check happens before any
// mutation, and a failed purchase leaves the state untouched.
type Service struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a new PurchaseService
func New(cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{
		catalog: cat,
		logger:  logger.With("service", "purchase"),
	}
}

// Buy purchases an item for the player and returns the new balance.
// Clothing can be owned at most once; furniture is a multiset and each
// purchase adds one more unit of the same name.
func (s *Service) Buy(state *model.PlayerState, name model.ItemName, kind model.ItemKind) (int, error) {
	price, err := s.catalog.Price(name, kind)
	if err != nil {
		return state.Currency, err
	}

	if kind == model.KindClothing && state.OwnsClothing(name) {
		return state.Currency, model.ErrAlreadyOwned
	}

	if state.Currency < price {
		return state.Currency, model.ErrInsufficientFunds
	}

	state.Currency -= price
	switch kind {
	case model.KindClothing:
		state.ClothingInventory = append(state.ClothingInventory, name)
	case model.KindFurniture:
		state.FurnitureInventory = append(state.FurnitureInventory, name)
	}

	s.logger.Info("item purchased",
		"uuid", state.UUID,
		"item", name,
		"kind", kind,
		"price", price,
		"balance", state.Currency)

	return state.Currency, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Buy(state *model.PlayerState, name model.ItemName, kind model.ItemKind) (int, error)
}

var _ ServiceInterface = (*Service)(nil)
