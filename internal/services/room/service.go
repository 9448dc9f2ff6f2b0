package room

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/tikkit/tikkit/internal/catalog"
	"github.com/tikkit/tikkit/internal/model"
)

// Config holds configuration for the room service
type Config struct {
	// Room dimensions in scene units. Placed pieces are clamped so they
	// never extend past the room edges.
	RoomWidth  float64
	RoomHeight float64
}

// DefaultConfig returns default room configuration
func DefaultConfig() Config {
	return Config{
		RoomWidth:  800,
		RoomHeight: 600,
	}
}

// Service manages furniture placement within a player's room. Placement
// is quota-bound: a piece can only be placed as many times as the player
// owns it. Fixture pieces (floors and walls) are part of the room shell
// and reject every mutation.
type Service struct {
	catalog *catalog.Catalog
	config  Config
	logger  *slog.Logger

	mu     sync.Mutex
	nextID int
}

// New creates a new RoomService
func New(cat *catalog.Catalog, cfg Config, logger *slog.Logger) *Service {
	if cfg.RoomWidth == 0 {
		cfg.RoomWidth = DefaultConfig().RoomWidth
	}
	if cfg.RoomHeight == 0 {
		cfg.RoomHeight = DefaultConfig().RoomHeight
	}
	return &Service{
		catalog: cat,
		config:  cfg,
		logger:  logger.With("service", "room"),
	}
}

// Place creates a new instance of an owned piece in the room. The piece
// appears centered, un-rotated and on top of everything already placed.
func (s *Service) Place(state *model.PlayerState, name model.ItemName) (*model.PlacedInstance, error) {
	if s.catalog.IsFixture(name) {
		return nil, model.ErrFixtureLocked
	}

	owned := state.OwnedFurnitureCount(name)
	if owned == 0 {
		return nil, model.ErrNotOwned
	}
	if state.PlacedCount(name) >= owned {
		return nil, model.ErrQuotaExceeded
	}

	width, height := s.catalog.Extent(name)
	x, y := s.clamp(name, (s.config.RoomWidth-width)/2, (s.config.RoomHeight-height)/2)

	inst := &model.PlacedInstance{
		ID:               s.allocateID(),
		Name:             name,
		OrientationIndex: 0,
		X:                x,
		Y:                y,
		Z:                model.MaxZ(state.FurniturePlaced) + 1,
	}
	state.FurniturePlaced = append(state.FurniturePlaced, inst)

	s.logger.Info("furniture placed", "uuid", state.UUID, "item", name, "instance", inst.ID)
	return inst, nil
}

// Move repositions an instance, clamping it inside the room bounds.
func (s *Service) Move(state *model.PlayerState, id string, x, y float64) (*model.PlacedInstance, error) {
	inst, err := s.mutableInstance(state, id)
	if err != nil {
		return nil, err
	}

	inst.X, inst.Y = s.clamp(inst.Name, x, y)
	return inst, nil
}

// Rotate advances an instance to its next orientation, wrapping back to
// the first. Pieces with a single orientation are left as they are.
func (s *Service) Rotate(state *model.PlayerState, id string) (*model.PlacedInstance, error) {
	inst, err := s.mutableInstance(state, id)
	if err != nil {
		return nil, err
	}

	variants := s.catalog.Variants(inst.Name)
	if variants > 1 {
		inst.OrientationIndex = (inst.OrientationIndex + 1) % variants
	}
	return inst, nil
}

// BringToFront restacks an instance above everything else in the room.
func (s *Service) BringToFront(state *model.PlayerState, id string) (*model.PlacedInstance, error) {
	inst, err := s.mutableInstance(state, id)
	if err != nil {
		return nil, err
	}

	inst.Z = model.MaxZ(state.FurniturePlaced) + 1
	return inst, nil
}

// Delete removes an instance from the room. The piece stays in the
// player's inventory and can be placed again.
func (s *Service) Delete(state *model.PlayerState, id string) error {
	inst, err := s.mutableInstance(state, id)
	if err != nil {
		return err
	}

	placed := state.FurniturePlaced[:0]
	for _, other := range state.FurniturePlaced {
		if other != inst {
			placed = append(placed, other)
		}
	}
	state.FurniturePlaced = placed

	s.logger.Info("furniture removed", "uuid", state.UUID, "item", inst.Name, "instance", id)
	return nil
}

// Adopt assigns instance identifiers and fixture flags to instances
// loaded from storage. Neither field is persisted: identifiers only need
// to be stable within a session, and fixture status is a catalog fact.
func (s *Service) Adopt(instances []*model.PlacedInstance) {
	for _, inst := range instances {
		inst.ID = s.allocateID()
		inst.Fixture = s.catalog.IsFixture(inst.Name)
	}
}

// FindInstance looks up a placed instance by its session identifier.
func (s *Service) FindInstance(state *model.PlayerState, id string) (*model.PlacedInstance, error) {
	for _, inst := range state.FurniturePlaced {
		if inst.ID == id {
			return inst, nil
		}
	}
	return nil, model.ErrInstanceNotFound
}

// Instances returns the room contents in stacking order, bottom first.
func (s *Service) Instances(state *model.PlayerState) []*model.PlacedInstance {
	instances := append([]*model.PlacedInstance(nil), state.FurniturePlaced...)
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Z < instances[j].Z
	})
	return instances
}

func (s *Service) mutableInstance(state *model.PlayerState, id string) (*model.PlacedInstance, error) {
	inst, err := s.FindInstance(state, id)
	if err != nil {
		return nil, err
	}
	if inst.Fixture {
		return nil, model.ErrFixtureLocked
	}
	return inst, nil
}

func (s *Service) clamp(name model.ItemName, x, y float64) (float64, float64) {
	width, height := s.catalog.Extent(name)

	maxX := s.config.RoomWidth - width
	maxY := s.config.RoomHeight - height

	if x < 0 {
		x = 0
	} else if x > maxX {
		x = maxX
	}
	if y < 0 {
		y = 0
	} else if y > maxY {
		y = maxY
	}
	return x, y
}

func (s *Service) allocateID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return fmt.Sprintf("f_%d", s.nextID)
}

// Interface for dependency injection
type ServiceInterface interface {
	Place(state *model.PlayerState, name model.ItemName) (*model.PlacedInstance, error)
	Move(state *model.PlayerState, id string, x, y float64) (*model.PlacedInstance, error)
	Rotate(state *model.PlayerState, id string) (*model.PlacedInstance, error)
	BringToFront(state *model.PlayerState, id string) (*model.PlacedInstance, error)
	Delete(state *model.PlayerState, id string) error
	Adopt(instances []*model.PlacedInstance)
	FindInstance(state *model.PlayerState, id string) (*model.PlacedInstance, error)
	Instances(state *model.PlayerState) []*model.PlacedInstance
}

var _ ServiceInterface = (*Service)(nil)
