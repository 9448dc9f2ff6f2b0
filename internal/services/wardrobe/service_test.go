package wardrobe

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	state   *model.PlayerState
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(catalog.New(""), testutil.NopLogger())
	s.state = model.NewPlayerState(1, 300)
	s.service.BeginSession(s.state)
}

// Wear tests

func (s *ServiceSuite) TestWearDoesNotRequireOwnership() {
	s.service.Wear(s.state, "Hat")

	s.Equal(model.ItemName("Hat"), s.state.ClothingWorn[model.CategoryHead])
	s.Equal(model.ItemName(""), s.state.ClothingEquipped[model.CategoryHead])
}

func (s *ServiceSuite) TestWearReplacesSameCategory() {
	s.service.Wear(s.state, "Hat")
	s.service.Wear(s.state, "Sunglasses")

	s.Equal(model.ItemName("Sunglasses"), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestWearDifferentCategoriesCoexist() {
	s.service.Wear(s.state, "Hat")
	s.service.Wear(s.state, "Jeans")

	s.Equal(model.ItemName("Hat"), s.state.ClothingWorn[model.CategoryHead])
	s.Equal(model.ItemName("Jeans"), s.state.ClothingWorn[model.CategoryLegs])
}

func (s *ServiceSuite) TestWearUnknownItemIsIgnored() {
	s.service.Wear(s.state, "Jetpack")

	for _, cat := range model.Categories {
		s.Equal(model.ItemName(""), s.state.ClothingWorn[cat])
	}
}

// Finalize tests

func (s *ServiceSuite) TestFinalizeCommitsOwnedPreview() {
	s.state.ClothingInventory = []model.ItemName{"Hat"}
	s.service.Wear(s.state, "Hat")

	s.service.Finalize(s.state)

	s.Equal(model.ItemName("Hat"), s.state.ClothingEquipped[model.CategoryHead])
	s.Equal(model.ItemName("Hat"), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestFinalizeRevertsUnownedPreview() {
	s.service.Wear(s.state, "Hat")

	s.service.Finalize(s.state)

	s.Equal(model.ItemName(""), s.state.ClothingEquipped[model.CategoryHead])
	s.Equal(model.ItemName(""), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestFinalizeRevertsUnownedPreviewToPriorOutfit() {
	// An equipped hat survives a try-on of an unowned one.
	s.state.ClothingInventory = []model.ItemName{"Hat"}
	s.service.Wear(s.state, "Hat")
	s.service.Finalize(s.state)

	s.service.Wear(s.state, "Sunglasses")
	s.service.Finalize(s.state)

	s.Equal(model.ItemName("Hat"), s.state.ClothingEquipped[model.CategoryHead])
	s.Equal(model.ItemName("Hat"), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestFinalizeMixedOwnership() {
	s.state.ClothingInventory = []model.ItemName{"Jeans"}
	s.service.Wear(s.state, "Jeans")
	s.service.Wear(s.state, "Boots")

	s.service.Finalize(s.state)

	s.Equal(model.ItemName("Jeans"), s.state.ClothingEquipped[model.CategoryLegs])
	s.Equal(model.ItemName(""), s.state.ClothingEquipped[model.CategoryFeet])
}

func (s *ServiceSuite) TestFinalizeIsIdempotent() {
	s.state.ClothingInventory = []model.ItemName{"Hat", "Jeans"}
	s.service.Wear(s.state, "Hat")
	s.service.Wear(s.state, "Jeans")

	s.service.Finalize(s.state)
	equipped := model.CloneOutfit(s.state.ClothingEquipped)

	s.service.Finalize(s.state)

	s.Equal(equipped, s.state.ClothingEquipped)
	s.Equal(equipped, s.state.ClothingWorn)
}

// Unwear tests

func (s *ServiceSuite) TestUnwearRemovesPreview() {
	s.service.Wear(s.state, "Hat")
	s.service.Unwear(s.state, "Hat")

	s.Equal(model.ItemName(""), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestUnwearOwnedItemPersistsThroughFinalize() {
	// Equip a hat, then take it off: finalize must not put it back on.
	s.state.ClothingInventory = []model.ItemName{"Hat"}
	s.service.Wear(s.state, "Hat")
	s.service.Finalize(s.state)

	s.service.Unwear(s.state, "Hat")
	s.service.Finalize(s.state)

	s.Equal(model.ItemName(""), s.state.ClothingEquipped[model.CategoryHead])
	s.Equal(model.ItemName(""), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestUnwearDifferentItemKeepsSlot() {
	s.service.Wear(s.state, "Hat")
	s.service.Unwear(s.state, "Sunglasses")

	s.Equal(model.ItemName("Hat"), s.state.ClothingWorn[model.CategoryHead])
}

func (s *ServiceSuite) TestUnwearUnknownItemIsIgnored() {
	s.service.Wear(s.state, "Hat")
	s.service.Unwear(s.state, "Jetpack")

	s.Equal(model.ItemName("Hat"), s.state.ClothingWorn[model.CategoryHead])
}

// Session snapshot tests

func (s *ServiceSuite) TestBeginSessionSnapshotsEquippedOutfit() {
	s.state.ClothingInventory = []model.ItemName{"Hat"}
	s.state.ClothingEquipped[model.CategoryHead] = "Hat"

	s.service.BeginSession(s.state)

	s.Equal(model.ItemName("Hat"), s.state.OriginalOutfit[model.CategoryHead])
}
