package model

// ItemName identifies a catalog item. Placed furniture units of the same
// item share a name but are distinct instances.
type ItemName string

// ItemKind distinguishes the two purchasable item families. The values
// match the item_type column in the inventory table.
type ItemKind string

const (
	KindClothing  ItemKind = "clothing"
	KindFurniture ItemKind = "furniture"
)

// Category is a clothing equip slot.
type Category string

const (
	CategoryHead  Category = "Head"
	CategoryTorso Category = "Torso"
	CategoryLegs  Category = "Legs"
	CategoryFeet  Category = "Feet"
)

// Categories lists every equip slot in display order. The order also
// drives the worn-list rebuild after checkout, so it must stay stable.
var Categories = []Category{CategoryHead, CategoryTorso, CategoryLegs, CategoryFeet}
