package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tikkit/tikkit/internal/model"
	"github.com/tikkit/tikkit/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface. The
// aggregates are stored as JSON records per user, with the same
// compressed-inventory discipline as the relational store: furniture
// inventory as name->quantity, placed furniture as one record per
// instance.
type Storage struct {
	client *redis.Client
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

type userRecord struct {
	UUID         model.UserID `json:"uuid"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"password"`
	Currency     int          `json:"currency"`
	LoggedStatus int          `json:"logged_status"`
	CreatedAt    time.Time    `json:"created_at"`
}

type placedRecord struct {
	Name             string  `json:"name"`
	OrientationIndex int     `json:"orientation_index"`
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	Z                int     `json:"z"`
}

type furnitureRecord struct {
	Inventory map[string]int `json:"inventory"`
	Placed    []placedRecord `json:"placed"`
}

type clothesRecord struct {
	Inventory []string          `json:"inventory"`
	Equipped  map[string]string `json:"equipped"`
}

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string, currency int, layout []*model.PlacedInstance) (model.UserID, error) {
	// Claim the username first; SetNX doubles as the uniqueness check.
	claimed, err := s.client.SetNX(ctx, usernameIndexKey(username), "pending", 0).Result()
	if err != nil {
		return 0, err
	}
	if !claimed {
		return 0, model.ErrUsernameTaken
	}

	id, err := s.client.Incr(ctx, nextUUIDKey()).Result()
	if err != nil {
		// Roll the claim back so the name is not left orphaned.
		_ = s.client.Del(ctx, usernameIndexKey(username)).Err()
		return 0, err
	}
	uuid := model.UserID(id)

	user := userRecord{
		UUID:         uuid,
		Username:     username,
		PasswordHash: passwordHash,
		Currency:     currency,
		CreatedAt:    time.Now(),
	}
	userData, err := json.Marshal(user)
	if err != nil {
		return 0, err
	}

	furniture := furnitureRecord{Inventory: map[string]int{}}
	for _, inst := range layout {
		furniture.Placed = append(furniture.Placed, toRecord(inst))
	}
	furnitureData, err := json.Marshal(furniture)
	if err != nil {
		return 0, err
	}

	clothes := clothesRecord{Equipped: emptyEquipped()}
	clothesData, err := json.Marshal(clothes)
	if err != nil {
		return 0, err
	}

	// One pipeline so the account and its seeded aggregates land together.
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(uuid), userData, 0)
	pipe.Set(ctx, usernameIndexKey(username), int64(uuid), 0)
	pipe.Set(ctx, furnitureKey(uuid), furnitureData, 0)
	pipe.Set(ctx, clothesKey(uuid), clothesData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		_ = s.client.Del(ctx, usernameIndexKey(username)).Err()
		return 0, err
	}

	return uuid, nil
}

func (s *Storage) GetUser(ctx context.Context, uuid model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(uuid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) SetLoggedStatus(ctx context.Context, uuid model.UserID, loggedIn bool) error {
	return s.updateUser(ctx, uuid, func(rec *userRecord) {
		rec.LoggedStatus = 0
		if loggedIn {
			rec.LoggedStatus = 1
		}
	})
}

func (s *Storage) SaveCurrency(ctx context.Context, uuid model.UserID, currency int) error {
	return s.updateUser(ctx, uuid, func(rec *userRecord) {
		rec.Currency = currency
	})
}

func (s *Storage) LoadCurrency(ctx context.Context, uuid model.UserID) (int, error) {
	user, err := s.GetUser(ctx, uuid)
	if err != nil {
		return 0, err
	}
	return user.Currency, nil
}

func (s *Storage) updateUser(ctx context.Context, uuid model.UserID, mutate func(*userRecord)) error {
	data, err := s.client.Get(ctx, userKey(uuid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrUserNotFound
		}
		return err
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	mutate(&rec)

	updated, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(uuid), updated, 0).Err()
}

func (s *Storage) SaveFurniture(ctx context.Context, uuid model.UserID, inventory []model.ItemName, placed []*model.PlacedInstance) error {
	if err := s.requireUser(ctx, uuid); err != nil {
		return err
	}

	rec := furnitureRecord{Inventory: make(map[string]int)}
	for name, count := range model.CompressInventory(inventory) {
		rec.Inventory[string(name)] = count
	}
	for _, inst := range placed {
		rec.Placed = append(rec.Placed, toRecord(inst))
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, furnitureKey(uuid), data, 0).Err()
}

func (s *Storage) LoadFurniture(ctx context.Context, uuid model.UserID) ([]model.ItemName, []*model.PlacedInstance, error) {
	data, err := s.client.Get(ctx, furnitureKey(uuid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, model.ErrUserNotFound
		}
		return nil, nil, err
	}

	var rec furnitureRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, err
	}

	counts := make(map[model.ItemName]int, len(rec.Inventory))
	for name, count := range rec.Inventory {
		counts[model.ItemName(name)] = count
	}
	inventory := model.ExpandInventory(counts)

	placed := make([]*model.PlacedInstance, 0, len(rec.Placed))
	for _, row := range rec.Placed {
		placed = append(placed, &model.PlacedInstance{
			Name:             model.ItemName(row.Name),
			OrientationIndex: row.OrientationIndex,
			X:                row.X,
			Y:                row.Y,
			Z:                row.Z,
		})
	}
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Z < placed[j].Z })

	return inventory, placed, nil
}

func (s *Storage) SaveClothes(ctx context.Context, uuid model.UserID, inventory []model.ItemName, equipped map[model.Category]model.ItemName) error {
	if err := s.requireUser(ctx, uuid); err != nil {
		return err
	}

	rec := clothesRecord{Equipped: emptyEquipped()}
	for _, name := range inventory {
		rec.Inventory = append(rec.Inventory, string(name))
	}
	for cat, name := range equipped {
		rec.Equipped[string(cat)] = string(name)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, clothesKey(uuid), data, 0).Err()
}

func (s *Storage) LoadClothes(ctx context.Context, uuid model.UserID) ([]model.ItemName, map[model.Category]model.ItemName, error) {
	data, err := s.client.Get(ctx, clothesKey(uuid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, model.ErrUserNotFound
		}
		return nil, nil, err
	}

	var rec clothesRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil, err
	}

	inventory := make([]model.ItemName, 0, len(rec.Inventory))
	for _, name := range rec.Inventory {
		inventory = append(inventory, model.ItemName(name))
	}

	equipped := model.EmptyOutfit()
	for cat, name := range rec.Equipped {
		equipped[model.Category(cat)] = model.ItemName(name)
	}
	return inventory, equipped, nil
}

func (s *Storage) requireUser(ctx context.Context, uuid model.UserID) error {
	exists, err := s.client.Exists(ctx, userKey(uuid)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRecord) toModel() *model.User {
	return &model.User{
		UUID:         r.UUID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Currency:     r.Currency,
		LoggedIn:     r.LoggedStatus != 0,
		CreatedAt:    r.CreatedAt,
	}
}

func toRecord(inst *model.PlacedInstance) placedRecord {
	return placedRecord{
		Name:             string(inst.Name),
		OrientationIndex: inst.OrientationIndex,
		X:                inst.X,
		Y:                inst.Y,
		Z:                inst.Z,
	}
}

func emptyEquipped() map[string]string {
	equipped := make(map[string]string, len(model.Categories))
	for _, cat := range model.Categories {
		equipped[string(cat)] = ""
	}
	return equipped
}
