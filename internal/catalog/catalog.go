package catalog

import (
	"github.com/tikkit/tikkit/internal/model"
)

// ClothingItem is a shop listing for a wearable item.
type ClothingItem struct {
	Name     model.ItemName
	Price    int
	Category model.Category
}

// FurnitureItem is a shop listing for a placeable item.
type FurnitureItem struct {
	Name     model.ItemName
	Price    int
	Category string

	// Variants is the number of orientation images the item has. Rotation
	// cycles through them; 1 means the item cannot be rotated.
	Variants int

	// Width and Height are the item's extent used for clamping moves to
	// the room bounds.
	Width  float64
	Height float64
}

// clothingItems is the static clothing catalog. Names keep the original
// asset casing.
var clothingItems = []ClothingItem{
	{Name: "T-Shirt", Price: 20, Category: model.CategoryTorso},
	{Name: "Jeans", Price: 40, Category: model.CategoryLegs},
	{Name: "sweater", Price: 60, Category: model.CategoryTorso},
	{Name: "Sneakers", Price: 50, Category: model.CategoryFeet},
	{Name: "Hat", Price: 15, Category: model.CategoryHead},
	{Name: "Sunglasses", Price: 25, Category: model.CategoryHead},
	{Name: "skirt", Price: 70, Category: model.CategoryLegs},
	{Name: "Boots", Price: 80, Category: model.CategoryFeet},
}

// furnitureItems is the static furniture catalog, grouped by shop category.
// Fixture pieces (floors, walls) are deliberately absent: they are not
// purchasable and exist only through the default room layout.
var furnitureItems = []FurnitureItem{
	{Name: "Single Bed", Price: 100, Category: "Beds", Variants: 2, Width: 120, Height: 80},
	{Name: "Double Bed", Price: 250, Category: "Beds", Variants: 2, Width: 160, Height: 100},
	{Name: "King Bed", Price: 400, Category: "Beds", Variants: 2, Width: 180, Height: 110},
	{Name: "Stool", Price: 20, Category: "Chairs", Variants: 1, Width: 40, Height: 40},
	{Name: "Office Chair", Price: 80, Category: "Chairs", Variants: 4, Width: 50, Height: 50},
	{Name: "Gaming Chair", Price: 200, Category: "Chairs", Variants: 4, Width: 55, Height: 55},
	{Name: "Side Table", Price: 45, Category: "Tables", Variants: 1, Width: 50, Height: 50},
	{Name: "Dining Table", Price: 120, Category: "Tables", Variants: 2, Width: 140, Height: 80},
	{Name: "Glass Table", Price: 150, Category: "Tables", Variants: 2, Width: 120, Height: 70},
	{Name: "Wardrobe", Price: 300, Category: "Storage", Variants: 2, Width: 90, Height: 50},
	{Name: "Bookshelf", Price: 120, Category: "Storage", Variants: 2, Width: 80, Height: 35},
	{Name: "Locker", Price: 50, Category: "Storage", Variants: 1, Width: 45, Height: 40},
	{Name: "Rug", Price: 50, Category: "Decor", Variants: 2, Width: 130, Height: 90},
	{Name: "Painting", Price: 200, Category: "Decor", Variants: 1, Width: 70, Height: 50},
	{Name: "Vase", Price: 30, Category: "Decor", Variants: 1, Width: 30, Height: 30},
	{Name: "Stove", Price: 500, Category: "Kitchen", Variants: 1, Width: 70, Height: 60},
	{Name: "Fridge", Price: 600, Category: "Kitchen", Variants: 2, Width: 70, Height: 60},
	{Name: "Sink", Price: 300, Category: "Kitchen", Variants: 1, Width: 60, Height: 50},
	{Name: "Bench", Price: 100, Category: "Outdoor", Variants: 2, Width: 110, Height: 45},
	{Name: "Fountain", Price: 800, Category: "Outdoor", Variants: 1, Width: 100, Height: 100},
	{Name: "Bush", Price: 20, Category: "Outdoor", Variants: 1, Width: 50, Height: 50},
	{Name: "Desk", Price: 150, Category: "Office", Variants: 2, Width: 120, Height: 60},
	{Name: "Lamp", Price: 40, Category: "Office", Variants: 1, Width: 30, Height: 70},
	{Name: "PC", Price: 1200, Category: "Office", Variants: 1, Width: 50, Height: 50},
}

// fixtureItems are the structural pieces placed by the default layout.
// They are immovable for the life of the room.
var fixtureItems = []FurnitureItem{
	{Name: "Floor Blank", Price: 0, Category: "Fixtures", Variants: 4, Width: 160, Height: 115},
	{Name: "Wall1", Price: 0, Category: "Fixtures", Variants: 2, Width: 160, Height: 110},
	{Name: "Wall2", Price: 0, Category: "Fixtures", Variants: 1, Width: 160, Height: 110},
}

// Catalog resolves item names to prices, categories, orientation variant
// counts and extents. Variant counts come from the static tables unless an
// assets directory is supplied, in which case they are derived from the
// asset file naming convention.
type Catalog struct {
	clothing     []ClothingItem
	furniture    []FurnitureItem
	clothingIdx  map[model.ItemName]ClothingItem
	furnitureIdx map[model.ItemName]FurnitureItem
	fixtureIdx   map[model.ItemName]FurnitureItem
}

// New builds a catalog. assetsDir is optional; when present, orientation
// variant counts found on disk override the static tables.
func New(assetsDir string) *Catalog {
	c := &Catalog{
		clothing:     append([]ClothingItem(nil), clothingItems...),
		furniture:    append([]FurnitureItem(nil), furnitureItems...),
		clothingIdx:  make(map[model.ItemName]ClothingItem, len(clothingItems)),
		furnitureIdx: make(map[model.ItemName]FurnitureItem, len(furnitureItems)),
		fixtureIdx:   make(map[model.ItemName]FurnitureItem, len(fixtureItems)),
	}
	for _, item := range clothingItems {
		c.clothingIdx[item.Name] = item
	}
	for _, item := range furnitureItems {
		c.furnitureIdx[item.Name] = item
	}
	for _, item := range fixtureItems {
		c.fixtureIdx[item.Name] = item
	}

	if assetsDir != "" {
		c.applyAssetVariants(scanAssets(assetsDir))
	}
	return c
}

// Clothing returns the purchasable clothing listings.
func (c *Catalog) Clothing() []ClothingItem {
	return c.clothing
}

// Furniture returns the purchasable furniture listings. Fixtures are
// excluded; they cannot be bought.
func (c *Catalog) Furniture() []FurnitureItem {
	return c.furniture
}

// ClothingByName looks up a clothing listing.
func (c *Catalog) ClothingByName(name model.ItemName) (ClothingItem, bool) {
	item, ok := c.clothingIdx[name]
	return item, ok
}

// FurnitureByName looks up a furniture listing, including fixtures.
func (c *Catalog) FurnitureByName(name model.ItemName) (FurnitureItem, bool) {
	if item, ok := c.furnitureIdx[name]; ok {
		return item, true
	}
	item, ok := c.fixtureIdx[name]
	return item, ok
}

// CategoryOf returns the equip slot for a clothing item. Items absent from
// the table have no category and cannot be worn.
func (c *Catalog) CategoryOf(name model.ItemName) (model.Category, bool) {
	item, ok := c.clothingIdx[name]
	if !ok {
		return "", false
	}
	return item.Category, true
}

// Price returns the shop price of an item of the given kind.
func (c *Catalog) Price(name model.ItemName, kind model.ItemKind) (int, error) {
	switch kind {
	case model.KindClothing:
		if item, ok := c.clothingIdx[name]; ok {
			return item.Price, nil
		}
	case model.KindFurniture:
		if item, ok := c.furnitureIdx[name]; ok {
			return item.Price, nil
		}
	}
	return 0, model.ErrUnknownItem
}

// Variants returns the orientation variant count for a furniture item.
// Unknown items report a single variant.
func (c *Catalog) Variants(name model.ItemName) int {
	if item, ok := c.FurnitureByName(name); ok && item.Variants > 0 {
		return item.Variants
	}
	return 1
}

// Extent returns the width and height used when clamping an instance to
// the room bounds.
func (c *Catalog) Extent(name model.ItemName) (float64, float64) {
	if item, ok := c.FurnitureByName(name); ok && item.Width > 0 {
		return item.Width, item.Height
	}
	return defaultExtent, defaultExtent
}

// IsFixture reports whether the named item is a structural piece.
func (c *Catalog) IsFixture(name model.ItemName) bool {
	_, ok := c.fixtureIdx[name]
	return ok
}

const defaultExtent = 60

func (c *Catalog) applyAssetVariants(variants map[model.ItemName]int) {
	for name, count := range variants {
		if count < 1 {
			continue
		}
		if item, ok := c.furnitureIdx[name]; ok {
			item.Variants = count
			c.furnitureIdx[name] = item
		}
		if item, ok := c.fixtureIdx[name]; ok {
			item.Variants = count
			c.fixtureIdx[name] = item
		}
	}
	for i, item := range c.furniture {
		c.furniture[i] = c.furnitureIdx[item.Name]
	}
}
