package catalog

import "github.com/tikkit/tikkit/internal/model"

// DefaultLayout returns the fixture instances seeded into every new
// account's room: the floor tiles and wall pieces that frame the room.
// Positions and stacking are fixed; fixtures never move afterwards.
func DefaultLayout() []*model.PlacedInstance {
	return []*model.PlacedInstance{
		{Name: "Floor Blank", OrientationIndex: 0, X: 555, Y: 172, Z: 0, Fixture: true},
		{Name: "Wall1", OrientationIndex: 0, X: 640, Y: 64, Z: 0, Fixture: true},
		{Name: "Wall1", OrientationIndex: 1, X: 558, Y: 67, Z: 0, Fixture: true},
		{Name: "Floor Blank", OrientationIndex: 0, X: 477, Y: 230, Z: 3, Fixture: true},
		{Name: "Wall2", OrientationIndex: 0, X: 717, Y: 119, Z: 1, Fixture: true},
		{Name: "Floor Blank", OrientationIndex: 3, X: 633, Y: 228, Z: 2, Fixture: true},
		{Name: "Floor Blank", OrientationIndex: 1, X: 554, Y: 285, Z: 4, Fixture: true},
		{Name: "Wall1", OrientationIndex: 1, X: 477, Y: 124, Z: 5, Fixture: true},
	}
}
