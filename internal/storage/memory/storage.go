package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. It
// mirrors the relational layout: furniture inventory is held compressed
// and expanded on load, placed furniture is held row-per-instance.
type Storage struct {
	mu sync.RWMutex

	nextUUID      model.UserID
	users         map[model.UserID]*userRecord
	usernameIndex map[string]model.UserID
}

type userRecord struct {
	user model.User

	furnitureCounts map[model.ItemName]int
	placed          []placedRow
	clothing        []model.ItemName
	equipped        map[model.Category]model.ItemName
}

// placedRow mirrors a placed_furniture row: no instance ID, no fixture
// flag; both are reconstructed by the room service on load.
type placedRow struct {
	name             model.ItemName
	orientationIndex int
	x, y             float64
	z                int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*userRecord),
		usernameIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, currency int, layout []*model.PlacedInstance) (model.UserID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernameIndex[username]; taken {
		return 0, model.ErrUsernameTaken
	}

	s.nextUUID++
	uuid := s.nextUUID

	rec := &userRecord{
		user: model.User{
			UUID:         uuid,
			Username:     username,
			PasswordHash: passwordHash,
			Currency:     currency,
			CreatedAt:    time.Now(),
		},
		furnitureCounts: make(map[model.ItemName]int),
		equipped:        model.EmptyOutfit(),
	}
	for _, inst := range layout {
		rec.placed = append(rec.placed, toRow(inst))
	}

	s.users[uuid] = rec
	s.usernameIndex[username] = uuid
	return uuid, nil
}

func (s *Storage) GetUser(ctx context.Context, uuid model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[uuid]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user := rec.user
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uuid, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user := s.users[uuid].user
	return &user, nil
}

func (s *Storage) SetLoggedStatus(ctx context.Context, uuid model.UserID, loggedIn bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[uuid]
	if !ok {
		return model.ErrUserNotFound
	}
	rec.user.LoggedIn = loggedIn
	return nil
}

func (s *Storage) SaveCurrency(ctx context.Context, uuid model.UserID, currency int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[uuid]
	if !ok {
		return model.ErrUserNotFound
	}
	rec.user.Currency = currency
	return nil
}

func (s *Storage) LoadCurrency(ctx context.Context, uuid model.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[uuid]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	return rec.user.Currency, nil
}

func (s *Storage) SaveFurniture(ctx context.Context, uuid model.UserID, inventory []model.ItemName, placed []*model.PlacedInstance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[uuid]
	if !ok {
		return model.ErrUserNotFound
	}

	rec.furnitureCounts = model.CompressInventory(inventory)
	rec.placed = rec.placed[:0]
	for _, inst := range placed {
		rec.placed = append(rec.placed, toRow(inst))
	}
	return nil
}

func (s *Storage) LoadFurniture(ctx context.Context, uuid model.UserID) ([]model.ItemName, []*model.PlacedInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[uuid]
	if !ok {
		return nil, nil, model.ErrUserNotFound
	}

	inventory := model.ExpandInventory(rec.furnitureCounts)

	placed := make([]*model.PlacedInstance, 0, len(rec.placed))
	for _, row := range rec.placed {
		placed = append(placed, &model.PlacedInstance{
			Name:             row.name,
			OrientationIndex: row.orientationIndex,
			X:                row.x,
			Y:                row.y,
			Z:                row.z,
		})
	}
	// Stable sort keeps save order for equal z, matching draw order.
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Z < placed[j].Z })
	return inventory, placed, nil
}

func (s *Storage) SaveClothes(ctx context.Context, uuid model.UserID, inventory []model.ItemName, equipped map[model.Category]model.ItemName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[uuid]
	if !ok {
		return model.ErrUserNotFound
	}

	rec.clothing = append(rec.clothing[:0], inventory...)
	rec.equipped = model.CloneOutfit(equipped)
	return nil
}

func (s *Storage) LoadClothes(ctx context.Context, uuid model.UserID) ([]model.ItemName, map[model.Category]model.ItemName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[uuid]
	if !ok {
		return nil, nil, model.ErrUserNotFound
	}

	inventory := append([]model.ItemName(nil), rec.clothing...)
	return inventory, model.CloneOutfit(rec.equipped), nil
}

// Close is a no-op for the in-memory store
func (s *Storage) Close() error {
	return nil
}

func toRow(inst *model.PlacedInstance) placedRow {
	return placedRow{
		name:             inst.Name,
		orientationIndex: inst.OrientationIndex,
		x:                inst.X,
		y:                inst.Y,
		z:                inst.Z,
	}
}
