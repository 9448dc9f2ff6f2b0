package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikkit/tikkit/internal/api"
	"github.com/tikkit/tikkit/internal/api/apierr"
	"github.com/tikkit/tikkit/internal/api/response"
	"github.com/tikkit/tikkit/internal/factory"
	"github.com/tikkit/tikkit/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Catalog:         app.Catalog,
		SessionService:  app.SessionService,
		PurchaseService: app.PurchaseService,
		WardrobeService: app.WardrobeService,
		RoomService:     app.RoomService,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	// Register
	registerBody := map[string]string{
		"username":         "alice",
		"password":         "secret123",
		"confirm_password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.RegisterResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.NotZero(t, registerResp.UUID)

	// Login
	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.UUID, loginResp.Player.UUID)
	assert.Equal(t, 300, loginResp.Player.Currency)
	assert.NotEmpty(t, loginResp.SessionToken)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	// Mismatched passwords
	body := map[string]string{
		"username":         "alice",
		"password":         "secret123",
		"confirm_password": "secret124",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Too short
	body["password"] = "abc"
	body["confirm_password"] = "abc"
	rr = ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	registerPlayer(t, ts, "alice")

	body := map[string]string{
		"username":         "alice",
		"password":         "secret123",
		"confirm_password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeUsernameTaken, errorCode(t, rr))
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	registerPlayer(t, ts, "alice")

	body := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/players/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, errorCode(t, rr))
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var meResp response.Player
	err := json.Unmarshal(rr.Body.Bytes(), &meResp)
	require.NoError(t, err)
	assert.Equal(t, "alice", meResp.Username)
	assert.Equal(t, 300, meResp.Currency)
}

func TestUnauthorizedWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/wardrobe", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/shop/purchase", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Token no longer valid
	rr = ts.request(http.MethodGet, "/api/v1/players/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCatalogListing(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/catalog/clothing", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var clothing []response.ClothingItem
	err := json.Unmarshal(rr.Body.Bytes(), &clothing)
	require.NoError(t, err)
	assert.NotEmpty(t, clothing)

	rr = ts.request(http.MethodGet, "/api/v1/catalog/furniture", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var furniture []response.FurnitureItem
	err = json.Unmarshal(rr.Body.Bytes(), &furniture)
	require.NoError(t, err)
	assert.NotEmpty(t, furniture)
}

func TestPurchaseClothing(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")

	body := map[string]string{"name": "Hat", "kind": "clothing"}
	rr := ts.request(http.MethodPost, "/api/v1/shop/purchase", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.PurchaseResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "Hat", resp.Name)
	assert.Equal(t, 285, resp.Currency)

	// Buying the same clothing twice fails
	rr = ts.request(http.MethodPost, "/api/v1/shop/purchase", body, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadyOwned, errorCode(t, rr))
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")

	body := map[string]string{"name": "PC", "kind": "furniture"}
	rr := ts.request(http.MethodPost, "/api/v1/shop/purchase", body, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeInsufficientFunds, errorCode(t, rr))
}

func TestWardrobeFlow(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")
	buy(t, ts, token, "Hat", "clothing")

	// Wear a preview item without owning it
	rr := ts.request(http.MethodPost, "/api/v1/wardrobe/wear", map[string]string{"name": "Jeans"}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Wear the owned hat
	rr = ts.request(http.MethodPost, "/api/v1/wardrobe/wear", map[string]string{"name": "Hat"}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var view response.Wardrobe
	err := json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	assert.Equal(t, "Hat", view.Worn["Head"])
	assert.Equal(t, "Jeans", view.Worn["Legs"])
	assert.Equal(t, "", view.Equipped["Head"])

	// Checkout commits the owned item and reverts the preview
	rr = ts.request(http.MethodPost, "/api/v1/wardrobe/checkout", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	assert.Equal(t, "Hat", view.Equipped["Head"])
	assert.Equal(t, "", view.Equipped["Legs"])
	assert.Equal(t, "Hat", view.Worn["Head"])
	assert.Equal(t, "", view.Worn["Legs"])
}

func TestWardrobeUnwear(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")
	buy(t, ts, token, "Hat", "clothing")

	rr := ts.request(http.MethodPost, "/api/v1/wardrobe/wear", map[string]string{"name": "Hat"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/wardrobe/unwear", map[string]string{"name": "Hat"}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var view response.Wardrobe
	err := json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	assert.Equal(t, "", view.Worn["Head"])
}

func TestRoomFlow(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")
	buy(t, ts, token, "Stool", "furniture")

	// The default room ships with its fixtures
	rr := ts.request(http.MethodGet, "/api/v1/room", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var view response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	assert.Len(t, view.Instances, 8)

	// Place the stool
	rr = ts.request(http.MethodPost, "/api/v1/room/place", map[string]string{"name": "Stool"}, token)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var inst response.PlacedInstance
	err = json.Unmarshal(rr.Body.Bytes(), &inst)
	require.NoError(t, err)
	assert.NotEmpty(t, inst.ID)
	assert.False(t, inst.Fixture)

	// Move it
	rr = ts.request(http.MethodPost, "/api/v1/room/instances/"+inst.ID+"/move",
		map[string]float64{"x": 100, "y": 200}, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	err = json.Unmarshal(rr.Body.Bytes(), &inst)
	require.NoError(t, err)
	assert.Equal(t, float64(100), inst.X)
	assert.Equal(t, float64(200), inst.Y)

	// Rotate is a no-op for a single orientation piece, but still succeeds
	rr = ts.request(http.MethodPost, "/api/v1/room/instances/"+inst.ID+"/rotate", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Bring to front bumps it above everything else
	rr = ts.request(http.MethodPost, "/api/v1/room/instances/"+inst.ID+"/front", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Save the room and pick it back up
	rr = ts.request(http.MethodPost, "/api/v1/room/save", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Delete returns it to the inventory
	rr = ts.request(http.MethodDelete, "/api/v1/room/instances/"+inst.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/room", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	err = json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	assert.Len(t, view.Instances, 8)
	assert.Contains(t, view.Inventory, "Stool")
}

func TestRoomFixtureLocked(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")

	rr := ts.request(http.MethodGet, "/api/v1/room", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var view response.Room
	err := json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	require.NotEmpty(t, view.Instances)
	fixtureID := view.Instances[0].ID

	rr = ts.request(http.MethodPost, "/api/v1/room/instances/"+fixtureID+"/move",
		map[string]float64{"x": 10, "y": 10}, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeFixtureLocked, errorCode(t, rr))

	rr = ts.request(http.MethodDelete, "/api/v1/room/instances/"+fixtureID, nil, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRoomQuota(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")
	buy(t, ts, token, "Stool", "furniture")

	rr := ts.request(http.MethodPost, "/api/v1/room/place", map[string]string{"name": "Stool"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Only one stool is owned
	rr = ts.request(http.MethodPost, "/api/v1/room/place", map[string]string{"name": "Stool"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeQuotaExceeded, errorCode(t, rr))
}

func TestRoomPlaceNotOwned(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/room/place", map[string]string{"name": "Stool"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeNotOwned, errorCode(t, rr))
}

func TestStatePersistsAcrossLogins(t *testing.T) {
	ts := newTestServer(t)

	token := loginPlayer(t, ts, "alice")
	buy(t, ts, token, "Hat", "clothing")

	rr := ts.request(http.MethodPost, "/api/v1/wardrobe/wear", map[string]string{"name": "Hat"}, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/players/logout", nil, token)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// Log back in and find the outfit committed
	body := map[string]string{"username": "alice", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/v1/players/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var authResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &authResp)
	require.NoError(t, err)
	assert.Equal(t, 285, authResp.Player.Currency)

	rr = ts.request(http.MethodGet, "/api/v1/wardrobe", nil, authResp.SessionToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var view response.Wardrobe
	err = json.Unmarshal(rr.Body.Bytes(), &view)
	require.NoError(t, err)
	assert.Equal(t, "Hat", view.Equipped["Head"])
	assert.Contains(t, view.Inventory, "Hat")
}

// Helper functions

func registerPlayer(t *testing.T, ts *testServer, username string) {
	t.Helper()

	body := map[string]string{
		"username":         username,
		"password":         "secret123",
		"confirm_password": "secret123",
	}
	rr := ts.request(http.MethodPost, "/api/v1/players/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)
}

func loginPlayer(t *testing.T, ts *testServer, username string) string {
	t.Helper()

	registerPlayer(t, ts, username)

	body := map[string]string{"username": username, "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/v1/players/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	return resp.SessionToken
}

func buy(t *testing.T, ts *testServer, token, name, kind string) {
	t.Helper()

	body := map[string]string{"name": name, "kind": kind}
	rr := ts.request(http.MethodPost, "/api/v1/shop/purchase", body, token)
	require.Equal(t, http.StatusOK, rr.Code)
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp apierr.ErrorResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp.Error.Code
}
