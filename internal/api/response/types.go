package response

import (
	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/services/session"
)

// Player represents the authenticated player in API responses
type Player struct {
	UUID     int64  `json:"uuid"`
	Username string `json:"username"`
	Currency int    `json:"currency"`
}

// PlayerFromSession converts a session to a response Player
func PlayerFromSession(s *session.Session) Player {
	return Player{
		UUID:     int64(s.UUID),
		Username: s.Username,
		Currency: s.State.Currency,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *session.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromSession(s),
		SessionToken: s.Token,
	}
}

// RegisterResponse is the response for account registration
type RegisterResponse struct {
	UUID int64 `json:"uuid"`
}

// ClothingItem represents a catalog clothing entry
type ClothingItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
}

// ClothingItemFromCatalog converts a catalog.ClothingItem
func ClothingItemFromCatalog(item catalog.ClothingItem) ClothingItem {
	return ClothingItem{
		Name:     string(item.Name),
		Price:    item.Price,
		Category: string(item.Category),
	}
}

// FurnitureItem represents a catalog furniture entry
type FurnitureItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Variants int    `json:"variants"`
}

// FurnitureItemFromCatalog converts a catalog.FurnitureItem
func FurnitureItemFromCatalog(item catalog.FurnitureItem) FurnitureItem {
	return FurnitureItem{
		Name:     string(item.Name),
		Price:    item.Price,
		Category: string(item.Category),
		Variants: item.Variants,
	}
}

// PurchaseResponse is the response for a successful purchase
type PurchaseResponse struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Currency int    `json:"currency"`
}

// Wardrobe is the response for the wardrobe view. Currency rides along
// so clients stay in sync without a separate /me call.
type Wardrobe struct {
	Currency  int               `json:"currency"`
	Inventory []string          `json:"inventory"`
	Worn      map[string]string `json:"worn"`
	Equipped  map[string]string `json:"equipped"`
}

// WardrobeFromState builds the wardrobe view from player state
func WardrobeFromState(state *model.PlayerState) Wardrobe {
	return Wardrobe{
		Currency:  state.Currency,
		Inventory: itemNames(state.ClothingInventory),
		Worn:      outfit(state.ClothingWorn),
		Equipped:  outfit(state.ClothingEquipped),
	}
}

// PlacedInstance represents a placed furniture piece
type PlacedInstance struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	OrientationIndex int     `json:"orientation_index"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                int     `json:"z"`
	Fixture          bool    `json:"fixture"`
}

// PlacedInstanceFromModel converts a model.PlacedInstance
func PlacedInstanceFromModel(inst *model.PlacedInstance) PlacedInstance {
	return PlacedInstance{
		ID:               inst.ID,
		Name:             string(inst.Name),
		OrientationIndex: inst.OrientationIndex,
		X:                inst.X,
		Y:                inst.Y,
		Z:                inst.Z,
		Fixture:          inst.Fixture,
	}
}

// Room is the response for the room view. Instances are ordered by
// stacking order, bottom first.
type Room struct {
	Currency  int              `json:"currency"`
	Inventory []string         `json:"inventory"`
	Instances []PlacedInstance `json:"instances"`
}

// RoomFromState builds the room view from player state
func RoomFromState(state *model.PlayerState, instances []*model.PlacedInstance) Room {
	placed := make([]PlacedInstance, 0, len(instances))
	for _, inst := range instances {
		placed = append(placed, PlacedInstanceFromModel(inst))
	}
	return Room{
		Currency:  state.Currency,
		Inventory: itemNames(state.FurnitureInventory),
		Instances: placed,
	}
}

func itemNames(items []model.ItemName) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, string(item))
	}
	return names
}

func outfit(m map[model.Category]model.ItemName) map[string]string {
	out := make(map[string]string, len(m))
	for cat, name := range m {
		out[string(cat)] = string(name)
	}
	return out
}
