package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/dependencies/clock"
	"github.com/tikkit/tikkit/internal/dependencies/random"
	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/services/room"
	"github.com/tikkit/tikkit/internal/services/wardrobe"
	"github.com/tikkit/tikkit/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrFieldsRequired     = errors.New("username and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

const minPasswordLength = 6

// Session is an authenticated player session. It owns the in-memory
// PlayerState for the duration of the login; storage is only touched at
// the checkpoints (login, leaving the wardrobe or room, logout).
type Session struct {
	Token     string
	UUID      model.UserID
	Username  string
	State     *model.PlayerState
	CreatedAt time.Time
	ExpiresAt time.Time

	// mu guards State. Handlers mutate the state through the services,
	// which never take the lock themselves.
	mu sync.Mutex
}

// Lock acquires the session's state lock
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session's state lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Config holds configuration for the session service
type Config struct {
	SessionDuration  time.Duration
	StartingCurrency int
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration:  24 * time.Hour,
		StartingCurrency: 300,
	}
}

// Service handles accounts, login sessions and the persistence
// checkpoints that flush in-memory state back to storage.
type Service struct {
	storage  storage.Store
	wardrobe wardrobe.ServiceInterface
	room     room.ServiceInterface
	catalog  *catalog.Catalog
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration  time.Duration
	startingCurrency int
}

// New creates a new SessionService
func New(
	store storage.Store,
	wardrobeService wardrobe.ServiceInterface,
	roomService room.ServiceInterface,
	cat *catalog.Catalog,
	clk clock.Clock,
	rand random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.StartingCurrency == 0 {
		cfg.StartingCurrency = DefaultConfig().StartingCurrency
	}
	return &Service{
		storage:          store,
		wardrobe:         wardrobeService,
		room:             roomService,
		catalog:          cat,
		clock:            clk,
		random:           rand,
		logger:           logger.With("service", "session"),
		sessions:         make(map[string]*Session),
		sessionDuration:  cfg.SessionDuration,
		startingCurrency: cfg.StartingCurrency,
	}
}

// Register creates a new account. The account is seeded with the
// starting balance, the default room layout and an empty outfit. The
// caller still needs to log in afterwards.
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) (model.UserID, error) {
	if username == "" || password == "" || confirmPassword == "" {
		return 0, ErrFieldsRequired
	}
	if password != confirmPassword {
		return 0, ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return 0, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	uuid, err := s.storage.CreateUser(ctx, username, string(hash), s.startingCurrency, catalog.DefaultLayout())
	if err != nil {
		return 0, err
	}

	s.logger.Info("account registered", "uuid", uuid, "username", username)
	return uuid, nil
}

// Login authenticates a user and hydrates their state from storage.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.storage.SetLoggedStatus(ctx, user.UUID, true); err != nil {
		return nil, err
	}

	state, err := s.hydrateState(ctx, user.UUID)
	if err != nil {
		return nil, err
	}

	session := s.createSession(user, state)
	s.logger.Info("user logged in", "uuid", user.UUID, "username", username)
	return session, nil
}

// hydrateState rebuilds the in-memory player state from stored rows.
func (s *Service) hydrateState(ctx context.Context, uuid model.UserID) (*model.PlayerState, error) {
	currency, err := s.storage.LoadCurrency(ctx, uuid)
	if err != nil {
		return nil, err
	}

	state := model.NewPlayerState(uuid, currency)

	furnitureInventory, placed, err := s.storage.LoadFurniture(ctx, uuid)
	if err != nil {
		return nil, err
	}
	s.room.Adopt(placed)
	state.FurnitureInventory = furnitureInventory
	state.FurniturePlaced = placed

	clothingInventory, equipped, err := s.storage.LoadClothes(ctx, uuid)
	if err != nil {
		return nil, err
	}
	state.ClothingInventory = clothingInventory
	state.ClothingEquipped = equipped
	state.ClothingWorn = model.CloneOutfit(equipped)

	s.wardrobe.BeginSession(state)
	return state, nil
}

// Validate checks a session token and returns the session if it is
// still live.
func (s *Service) Validate(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Logout finalizes any open fitting session, flushes all player state
// to storage and removes the session.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.Validate(token)
	if err != nil {
		return err
	}

	session.Lock()
	s.wardrobe.Finalize(session.State)
	flushErr := s.flushAll(ctx, session.State)
	session.Unlock()
	if flushErr != nil {
		return flushErr
	}

	if err := s.storage.SetLoggedStatus(ctx, session.UUID, false); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	s.logger.Info("user logged out", "uuid", session.UUID)
	return nil
}

// OnLeaveWardrobe commits the fitting session and persists the
// clothing and currency checkpoints. Callers hold the session lock.
func (s *Service) OnLeaveWardrobe(ctx context.Context, state *model.PlayerState) error {
	s.wardrobe.Finalize(state)
	if err := s.storage.SaveClothes(ctx, state.UUID, state.ClothingInventory, state.ClothingEquipped); err != nil {
		return err
	}
	return s.storage.SaveCurrency(ctx, state.UUID, state.Currency)
}

// OnLeaveRoom persists the furniture and currency checkpoints. Callers
// hold the session lock.
func (s *Service) OnLeaveRoom(ctx context.Context, state *model.PlayerState) error {
	if err := s.storage.SaveFurniture(ctx, state.UUID, state.FurnitureInventory, state.FurniturePlaced); err != nil {
		return err
	}
	return s.storage.SaveCurrency(ctx, state.UUID, state.Currency)
}

func (s *Service) flushAll(ctx context.Context, state *model.PlayerState) error {
	if err := s.storage.SaveClothes(ctx, state.UUID, state.ClothingInventory, state.ClothingEquipped); err != nil {
		return err
	}
	if err := s.storage.SaveFurniture(ctx, state.UUID, state.FurnitureInventory, state.FurniturePlaced); err != nil {
		return err
	}
	return s.storage.SaveCurrency(ctx, state.UUID, state.Currency)
}

func (s *Service) createSession(user *model.User, state *model.PlayerState) *Session {
	token := s.random.Token("sess_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		UUID:      user.UUID,
		Username:  user.Username,
		State:     state,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	Register(ctx context.Context, username, password, confirmPassword string) (model.UserID, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, token string) error
	Validate(token string) (*Session, error)
	OnLeaveWardrobe(ctx context.Context, state *model.PlayerState) error
	OnLeaveRoom(ctx context.Context, state *model.PlayerState) error
}

var _ ServiceInterface = (*Service)(nil)
