package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tikkit/tikkit/internal/api/apierr"
	"github.com/tikkit/tikkit/internal/api/middleware"
	"github.com/tikkit/tikkit/internal/api/request"
	"github.com/tikkit/tikkit/internal/api/response"
	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/services/session"
	"github.com/tikkit/tikkit/internal/services/wardrobe"
)

// WardrobeHandler handles outfit preview and checkout endpoints
type WardrobeHandler struct {
	wardrobeService wardrobe.ServiceInterface
	sessionService  session.ServiceInterface
}

// NewWardrobeHandler creates a new wardrobe handler
func NewWardrobeHandler(wardrobeService wardrobe.ServiceInterface, sessionService session.ServiceInterface) *WardrobeHandler {
	return &WardrobeHandler{
		wardrobeService: wardrobeService,
		sessionService:  sessionService,
	}
}

// Get handles GET /api/v1/wardrobe
func (h *WardrobeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	view := response.WardrobeFromState(sess.State)
	sess.Unlock()

	response.JSON(w, http.StatusOK, view)
}

// Wear handles POST /api/v1/wardrobe/wear
func (h *WardrobeHandler) Wear(w http.ResponseWriter, r *http.Request) {
	h.preview(w, r, h.wardrobeService.Wear)
}

// Unwear handles POST /api/v1/wardrobe/unwear
func (h *WardrobeHandler) Unwear(w http.ResponseWriter, r *http.Request) {
	h.preview(w, r, h.wardrobeService.Unwear)
}

func (h *WardrobeHandler) preview(w http.ResponseWriter, r *http.Request, apply func(*model.PlayerState, model.ItemName)) {
	var req request.WearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	apply(sess.State, model.ItemName(req.Name))
	view := response.WardrobeFromState(sess.State)
	sess.Unlock()

	response.JSON(w, http.StatusOK, view)
}

// Checkout handles POST /api/v1/wardrobe/checkout. It commits the
// fitting session and persists the clothing state, the checkpoint that
// corresponds to walking out of the wardrobe.
func (h *WardrobeHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	err := h.sessionService.OnLeaveWardrobe(r.Context(), sess.State)
	view := response.WardrobeFromState(sess.State)
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}
