package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tikkit/tikkit/internal/model"
)

type CatalogSuite struct {
	suite.Suite
	catalog *Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.catalog = New("")
}

// Price tests

func (s *CatalogSuite) TestPriceClothing() {
	price, err := s.catalog.Price("Hat", model.KindClothing)
	s.Require().NoError(err)
	s.Equal(15, price)
}

func (s *CatalogSuite) TestPriceFurniture() {
	price, err := s.catalog.Price("Single Bed", model.KindFurniture)
	s.Require().NoError(err)
	s.Equal(100, price)
}

func (s *CatalogSuite) TestPriceUnknownItem() {
	_, err := s.catalog.Price("Jetpack", model.KindClothing)
	s.ErrorIs(err, model.ErrUnknownItem)
}

func (s *CatalogSuite) TestPriceWrongKind() {
	// A clothing name priced as furniture is unknown.
	_, err := s.catalog.Price("Hat", model.KindFurniture)
	s.ErrorIs(err, model.ErrUnknownItem)
}

func (s *CatalogSuite) TestFixturesAreNotPurchasable() {
	_, err := s.catalog.Price("Floor Blank", model.KindFurniture)
	s.ErrorIs(err, model.ErrUnknownItem)

	for _, item := range s.catalog.Furniture() {
		s.False(s.catalog.IsFixture(item.Name))
	}
}

// Category tests

func (s *CatalogSuite) TestCategoryOf() {
	cat, ok := s.catalog.CategoryOf("Jeans")
	s.True(ok)
	s.Equal(model.CategoryLegs, cat)
}

func (s *CatalogSuite) TestCategoryOfUnknownItem() {
	_, ok := s.catalog.CategoryOf("Lamp")
	s.False(ok)
}

func (s *CatalogSuite) TestEveryClothingItemHasValidCategory() {
	valid := map[model.Category]bool{}
	for _, cat := range model.Categories {
		valid[cat] = true
	}

	for _, item := range s.catalog.Clothing() {
		s.True(valid[item.Category], "item %s has category %s", item.Name, item.Category)
	}
}

// Variant and extent tests

func (s *CatalogSuite) TestVariants() {
	s.Equal(4, s.catalog.Variants("Office Chair"))
	s.Equal(1, s.catalog.Variants("Lamp"))
}

func (s *CatalogSuite) TestVariantsUnknownItemDefaultsToOne() {
	s.Equal(1, s.catalog.Variants("Jetpack"))
}

func (s *CatalogSuite) TestVariantsIncludesFixtures() {
	s.Equal(4, s.catalog.Variants("Floor Blank"))
	s.Equal(2, s.catalog.Variants("Wall1"))
	s.Equal(1, s.catalog.Variants("Wall2"))
}

func (s *CatalogSuite) TestExtent() {
	w, h := s.catalog.Extent("Single Bed")
	s.Equal(120.0, w)
	s.Equal(80.0, h)
}

func (s *CatalogSuite) TestExtentUnknownItemUsesDefault() {
	w, h := s.catalog.Extent("Jetpack")
	s.Equal(float64(defaultExtent), w)
	s.Equal(float64(defaultExtent), h)
}

// Fixture tests

func (s *CatalogSuite) TestIsFixture() {
	s.True(s.catalog.IsFixture("Floor Blank"))
	s.True(s.catalog.IsFixture("Wall1"))
	s.False(s.catalog.IsFixture("Single Bed"))
}

// Default layout tests

func (s *CatalogSuite) TestDefaultLayoutIsAllFixtures() {
	layout := DefaultLayout()
	s.Len(layout, 8)

	for _, inst := range layout {
		s.True(inst.Fixture)
		s.True(s.catalog.IsFixture(inst.Name))
	}
}

func (s *CatalogSuite) TestDefaultLayoutReturnsFreshInstances() {
	first := DefaultLayout()
	first[0].X = -1

	second := DefaultLayout()
	s.Equal(555.0, second[0].X)
}

// Asset scanning tests

func (s *CatalogSuite) TestParseAssetName() {
	name, ok := parseAssetName("Chairs_Office Chair_80_1.png")
	s.True(ok)
	s.Equal(model.ItemName("Office Chair"), name)
}

func (s *CatalogSuite) TestParseAssetNameSingleOrientation() {
	name, ok := parseAssetName("Office_Lamp_40.png")
	s.True(ok)
	s.Equal(model.ItemName("Lamp"), name)
}

func (s *CatalogSuite) TestParseAssetNameRejectsOtherFiles() {
	_, ok := parseAssetName("readme.txt")
	s.False(ok)

	_, ok = parseAssetName("background.png")
	s.False(ok)
}

func (s *CatalogSuite) TestAssetVariantsOverrideStaticTable() {
	dir := s.T().TempDir()
	for _, f := range []string{
		"Office_Lamp_40_1.png",
		"Office_Lamp_40_2.png",
		"Office_Lamp_40_3.png",
	} {
		s.Require().NoError(os.WriteFile(filepath.Join(dir, f), []byte{0}, 0600))
	}

	cat := New(dir)
	s.Equal(3, cat.Variants("Lamp"))

	// Other items keep their static counts.
	s.Equal(4, cat.Variants("Office Chair"))
}

func (s *CatalogSuite) TestMissingAssetsDirIsIgnored() {
	cat := New("/nonexistent/assets")
	s.Equal(1, cat.Variants("Lamp"))
}
