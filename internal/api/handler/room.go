package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tikkit/tikkit/internal/api/apierr"
	"github.com/tikkit/tikkit/internal/api/middleware"
	"github.com/tikkit/tikkit/internal/api/request"
	"github.com/tikkit/tikkit/internal/api/response"
	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/services/room"
	"github.com/tikkit/tikkit/internal/services/session"
)

// RoomHandler handles furniture placement endpoints
type RoomHandler struct {
	roomService    room.ServiceInterface
	sessionService session.ServiceInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService room.ServiceInterface, sessionService session.ServiceInterface) *RoomHandler {
	return &RoomHandler{
		roomService:    roomService,
		sessionService: sessionService,
	}
}

// Get handles GET /api/v1/room
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	view := response.RoomFromState(sess.State, h.roomService.Instances(sess.State))
	sess.Unlock()

	response.JSON(w, http.StatusOK, view)
}

// Place handles POST /api/v1/room/place
func (h *RoomHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
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
	inst, err := h.roomService.Place(sess.State, model.ItemName(req.Name))
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlacedInstanceFromModel(inst))
}

// Move handles POST /api/v1/room/instances/{id}/move
func (h *RoomHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id := mux.Vars(r)["id"]
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	inst, err := h.roomService.Move(sess.State, id, req.X, req.Y)
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlacedInstanceFromModel(inst))
}

// Rotate handles POST /api/v1/room/instances/{id}/rotate
func (h *RoomHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.roomService.Rotate)
}

// BringToFront handles POST /api/v1/room/instances/{id}/front
func (h *RoomHandler) BringToFront(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.roomService.BringToFront)
}

func (h *RoomHandler) mutate(w http.ResponseWriter, r *http.Request, apply func(*model.PlayerState, string) (*model.PlacedInstance, error)) {
	id := mux.Vars(r)["id"]
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	inst, err := apply(sess.State, id)
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlacedInstanceFromModel(inst))
}

// Delete handles DELETE /api/v1/room/instances/{id}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	err := h.roomService.Delete(sess.State, id)
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Save handles POST /api/v1/room/save. It persists the furniture state,
// the checkpoint that corresponds to leaving the room.
func (h *RoomHandler) Save(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	err := h.sessionService.OnLeaveRoom(r.Context(), sess.State)
	sess.Unlock()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
