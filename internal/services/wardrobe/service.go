package wardrobe

import (
	"log/slog"

	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/model"
)

// Service manages the player's outfit across three layers:
//
//   - worn: the preview layer. Anything in the catalog can be worn,
//     owned or not, so players can try clothes before buying.
//   - equipped: the committed layer. Only owned items ever land here.
//   - snapshot: the outfit as it stood when the wardrobe was opened,
//     used to revert unowned previews on finalize.
//
// Finalize is the only operation that moves items between layers.
type Service struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a new WardrobeService
func New(cat *catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{
		catalog: cat,
		logger:  logger.With("service", "wardrobe"),
	}
}

// BeginSession snapshots the committed outfit so an unfinished fitting
// can be reverted. Called when the player enters the wardrobe and again
// after every finalize.
func (s *Service) BeginSession(state *model.PlayerState) {
	state.OriginalOutfit = model.CloneOutfit(state.ClothingEquipped)
}

// Wear puts an item on the preview layer. The item's category slot is
// exclusive: wearing a second hat replaces the first. Items with no
// catalog category are ignored.
func (s *Service) Wear(state *model.PlayerState, name model.ItemName) {
	cat, ok := s.catalog.CategoryOf(name)
	if !ok {
		return
	}
	state.ClothingWorn[cat] = name
}

// Unwear takes an item off the preview layer. For owned items the
// snapshot slot is cleared too, so finalize will not quietly put the
// old item back on.
func (s *Service) Unwear(state *model.PlayerState, name model.ItemName) {
	cat, ok := s.catalog.CategoryOf(name)
	if !ok {
		return
	}
	if state.ClothingWorn[cat] == name {
		state.ClothingWorn[cat] = ""
	}
	if state.OwnsClothing(name) {
		if state.OriginalOutfit[cat] == name {
			state.OriginalOutfit[cat] = ""
		}
		if state.ClothingEquipped[cat] == name {
			state.ClothingEquipped[cat] = ""
		}
	}
}

// Finalize commits the fitting session. Owned previews become the
// equipped outfit; unowned previews revert to the snapshot. The preview
// layer is rebuilt from the committed outfit and a fresh snapshot is
// taken, so calling Finalize twice in a row changes nothing.
func (s *Service) Finalize(state *model.PlayerState) {
	for _, cat := range model.Categories {
		worn := state.ClothingWorn[cat]
		if worn != "" && state.OwnsClothing(worn) {
			state.ClothingEquipped[cat] = worn
		} else {
			state.ClothingEquipped[cat] = state.OriginalOutfit[cat]
		}
	}

	state.ClothingWorn = model.CloneOutfit(state.ClothingEquipped)
	state.OriginalOutfit = model.CloneOutfit(state.ClothingEquipped)

	s.logger.Debug("outfit finalized", "uuid", state.UUID)
}

// Interface for dependency injection
type ServiceInterface interface {
	BeginSession(state *model.PlayerState)
	Wear(state *model.PlayerState, name model.ItemName)
	Unwear(state *model.PlayerState, name model.ItemName)
	Finalize(state *model.PlayerState)
}

var _ ServiceInterface = (*Service)(nil)
