package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tikkit/tikkit/internal/api/apierr"
	"github.com/tikkit/tikkit/internal/api/middleware"
	"github.com/tikkit/tikkit/internal/api/request"
	"github.com/tikkit/tikkit/internal/api/response"
	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/services/purchase"
)

// ShopHandler handles catalog browsing and purchases
type ShopHandler struct {
	catalog         *catalog.Catalog
	purchaseService purchase.ServiceInterface
}

// NewShopHandler creates a new shop handler
func NewShopHandler(cat *catalog.Catalog, purchaseService purchase.ServiceInterface) *ShopHandler {
	return &ShopHandler{
		catalog:         cat,
		purchaseService: purchaseService,
	}
}

// ListClothing handles GET /api/v1/catalog/clothing
func (h *ShopHandler) ListClothing(w http.ResponseWriter, _ *http.Request) {
	items := h.catalog.Clothing()
	out := make([]response.ClothingItem, 0, len(items))
	for _, item := range items {
		out = append(out, response.ClothingItemFromCatalog(item))
	}
	response.JSON(w, http.StatusOK, out)
}

// ListFurniture handles GET /api/v1/catalog/furniture
func (h *ShopHandler) ListFurniture(w http.ResponseWriter, _ *http.Request) {
	items := h.catalog.Furniture()
	out := make([]response.FurnitureItem, 0, len(items))
	for _, item := range items {
		out = append(out, response.FurnitureItemFromCatalog(item))
	}
	response.JSON(w, http.StatusOK, out)
}

// Purchase handles POST /api/v1/shop/purchase
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	kind := model.ItemKind(req.Kind)
	if kind != model.KindClothing && kind != model.KindFurniture {
		apierr.WriteError(w, apierr.NewInvalidRequestError("kind must be clothing or furniture"))
		return
	}

	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	currency, err := h.purchaseService.Buy(sess.State, model.ItemName(req.Name), kind)
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PurchaseResponse{
		Name:     req.Name,
		Kind:     req.Kind,
		Currency: currency,
	})
}
