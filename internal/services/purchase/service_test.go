package purchase

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
}

// Clothing purchases

func (s *ServiceSuite) TestBuyClothingDeductsPriceAndAddsItem() {
	currency, err := s.service.Buy(s.state, "Hat", model.KindClothing)
	s.Require().NoError(err)

	s.Equal(285, currency)
	s.Equal(285, s.state.Currency)
	s.Contains(s.state.ClothingInventory, model.ItemName("Hat"))
}

func (s *ServiceSuite) TestBuyClothingTwiceFails() {
	_, err := s.service.Buy(s.state, "Hat", model.KindClothing)
	s.Require().NoError(err)

	_, err = s.service.Buy(s.state, "Hat", model.KindClothing)
	s.ErrorIs(err, model.ErrAlreadyOwned)

	// No double charge, no duplicate item.
	s.Equal(285, s.state.Currency)
	s.Len(s.state.ClothingInventory, 1)
}

func (s *ServiceSuite) TestBuySequenceSpendingDown() {
	_, err := s.service.Buy(s.state, "T-Shirt", model.KindClothing)
	s.Require().NoError(err)
	s.Equal(280, s.state.Currency)

	_, err = s.service.Buy(s.state, "Jeans", model.KindClothing)
	s.Require().NoError(err)
	s.Equal(240, s.state.Currency)

	_, err = s.service.Buy(s.state, "Boots", model.KindClothing)
	s.Require().NoError(err)
	s.Equal(160, s.state.Currency)
}

// Furniture purchases

func (s *ServiceSuite) TestBuyFurnitureRepeatedlyStacksUnits() {
	_, err := s.service.Buy(s.state, "Stool", model.KindFurniture)
	s.Require().NoError(err)
	_, err = s.service.Buy(s.state, "Stool", model.KindFurniture)
	s.Require().NoError(err)

	s.Equal(2, s.state.OwnedFurnitureCount("Stool"))
	s.Equal(260, s.state.Currency)
}

// Failure cases

func (s *ServiceSuite) TestBuyInsufficientFundsLeavesStateUntouched() {
	s.state.Currency = 10

	currency, err := s.service.Buy(s.state, "Hat", model.KindClothing)
	s.ErrorIs(err, model.ErrInsufficientFunds)

	s.Equal(10, currency)
	s.Equal(10, s.state.Currency)
	s.Empty(s.state.ClothingInventory)
}

func (s *ServiceSuite) TestBuyExactPriceSucceeds() {
	s.state.Currency = 15

	currency, err := s.service.Buy(s.state, "Hat", model.KindClothing)
	s.Require().NoError(err)
	s.Equal(0, currency)
}

func (s *ServiceSuite) TestBuyUnknownItem() {
	_, err := s.service.Buy(s.state, "Jetpack", model.KindFurniture)
	s.ErrorIs(err, model.ErrUnknownItem)
	s.Equal(300, s.state.Currency)
}

func (s *ServiceSuite) TestBuyFixtureFails() {
	// Fixtures are not listed in the shop.
	_, err := s.service.Buy(s.state, "Floor Blank", model.KindFurniture)
	s.ErrorIs(err, model.ErrUnknownItem)
}
