package model

// PlacedInstance is one physically placed unit of an owned furniture item.
// Two placed units of the same item are distinct instances; identity is the
// instance itself (addressed by ID over the API), never the name.
type PlacedInstance struct {
	// ID is assigned by the room service when the instance is created or
	// adopted from storage. It is stable for the life of the room session
	// and is not persisted.
	ID string

	Name ItemName

	// OrientationIndex indexes the item's ordered orientation variants
	// and wraps modulo the variant count.
	OrientationIndex int

	// X, Y anchor the top-left corner, clamped to the room bounds.
	X float64
	Y float64

	// Z is the stacking order; higher draws on top. Values need not be
	// contiguous. Equal z draws in creation order.
	Z int

	// Fixture marks structural pieces (floor and wall tiles) that are
	// placed once by the default-layout bootstrap and are exempt from
	// move, rotate and delete. Derived from the catalog, not persisted.
	Fixture bool
}

// MaxZ returns the highest z among the given instances, or 0 if none.
func MaxZ(instances []*PlacedInstance) int {
	max := 0
	for _, inst := range instances {
		if inst.Z > max {
			max = inst.Z
		}
	}
	return max
}
