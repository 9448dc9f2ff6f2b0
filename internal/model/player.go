package model

import "time"

// UserID uniquely identifies a registered account across the system
type UserID int64

// User is an account record. The password is stored as a bcrypt hash.
type User struct {
	UUID         UserID
	Username     string
	PasswordHash string
	Currency     int
	LoggedIn     bool
	CreatedAt    time.Time
}

// PlayerState is the in-memory aggregate shared by the shop, wardrobe and
// room views. All mutations go through the engine services so the
// invariants (non-negative currency, placement quota, category exclusivity)
// stay centrally enforced; views must never write fields directly.
type PlayerState struct {
	UUID     UserID
	Currency int

	// ClothingInventory holds owned clothing, no duplicates.
	ClothingInventory []ItemName

	// ClothingWorn is the preview layer: items currently tried on while
	// browsing, not yet durable. One entry per category like
	// ClothingEquipped; "" means nothing is tried on in that slot.
	ClothingWorn map[Category]ItemName

	// ClothingEquipped is the committed layer shown in the room view.
	// Exactly one entry per category; "" means the slot is empty.
	ClothingEquipped map[Category]ItemName

	// OriginalOutfit is the pre-session snapshot of ClothingEquipped,
	// captured when a wardrobe session begins. Written only by the
	// wardrobe service.
	OriginalOutfit map[Category]ItemName

	// FurnitureInventory is a multiset: repeats represent multiple owned
	// units of the same item.
	FurnitureInventory []ItemName

	// FurniturePlaced holds every unit currently in the room.
	FurniturePlaced []*PlacedInstance
}

// NewPlayerState creates a fresh aggregate with empty equipped slots.
func NewPlayerState(uuid UserID, currency int) *PlayerState {
	return &PlayerState{
		UUID:             uuid,
		Currency:         currency,
		ClothingWorn:     EmptyOutfit(),
		ClothingEquipped: EmptyOutfit(),
		OriginalOutfit:   EmptyOutfit(),
	}
}

// EmptyOutfit returns an outfit map with every category present and empty.
func EmptyOutfit() map[Category]ItemName {
	outfit := make(map[Category]ItemName, len(Categories))
	for _, cat := range Categories {
		outfit[cat] = ""
	}
	return outfit
}

// CloneOutfit copies an outfit map, filling in any missing categories.
func CloneOutfit(outfit map[Category]ItemName) map[Category]ItemName {
	clone := EmptyOutfit()
	for cat, name := range outfit {
		clone[cat] = name
	}
	return clone
}

// OwnsClothing reports whether the named clothing item is in the inventory.
func (s *PlayerState) OwnsClothing(name ItemName) bool {
	for _, owned := range s.ClothingInventory {
		if owned == name {
			return true
		}
	}
	return false
}

// OwnedFurnitureCount returns how many units of the named item are owned.
func (s *PlayerState) OwnedFurnitureCount(name ItemName) int {
	count := 0
	for _, owned := range s.FurnitureInventory {
		if owned == name {
			count++
		}
	}
	return count
}

// PlacedCount returns how many units of the named item are in the room.
func (s *PlayerState) PlacedCount(name ItemName) int {
	count := 0
	for _, inst := range s.FurniturePlaced {
		if inst.Name == name {
			count++
		}
	}
	return count
}
