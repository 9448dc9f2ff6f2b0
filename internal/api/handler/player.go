package handler

import (
	"encoding/json"
	"net/http"

	"github.com/tikkit/tikkit/internal/api/apierr"
	"github.com/tikkit/tikkit/internal/api/middleware"
	"github.com/tikkit/tikkit/internal/api/request"
	"github.com/tikkit/tikkit/internal/api/response"
	"github.com/tikkit/tikkit/internal/services/session"
)

// PlayerHandler handles account and session endpoints
type PlayerHandler struct {
	sessionService session.ServiceInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(sessionService session.ServiceInterface) *PlayerHandler {
	return &PlayerHandler{
		sessionService: sessionService,
	}
}

// Register handles POST /api/v1/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	uuid, err := h.sessionService.Register(r.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RegisterResponse{UUID: int64(uuid)})
}

// Login handles POST /api/v1/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	sess, err := h.sessionService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(sess))
}

// Logout handles POST /api/v1/players/logout
func (h *PlayerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	if err := h.sessionService.Logout(r.Context(), sess.Token); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// GetMe handles GET /api/v1/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	sess := middleware.MustGetSession(r.Context())

	sess.Lock()
	player := response.PlayerFromSession(sess)
	sess.Unlock()

	response.JSON(w, http.StatusOK, player)
}
