package world

import (
	"errors"

	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/grid"
)

// Collection limits for a level.
const (
	MaxDimension = 256
	MaxMobs      = 100
	MaxItems     = 100
)

// ErrInvalidLevelData is returned when level data cannot describe a playable map.
var ErrInvalidLevelData = errors.New("invalid level data")

// Spawn places an actor definition on a tile.
type Spawn struct {
	Def *gamedata.ActorDef
	Pos grid.Tile
}

// Item is a non-colliding pickup shown on the map.
type Item struct {
	Sprite int
	Pos    grid.Tile
}

// Level is everything the simulation needs from a map source.
type Level struct {
	Width, Height int
	Tiles         []Tile // Row-major, drawn by the renderer
	Collision     []bool // Row-major static obstacles
	Player        Spawn
	Enemies       []Spawn
	Items         []Item
}

func newLevel(width, height int) *Level {
	return &Level{
		Width:     width,
		Height:    height,
		Tiles:     make([]Tile, width*height),
		Collision: make([]bool, width*height),
	}
}

// TileAt returns the tile at t, or a wall outside the map.
func (l *Level) TileAt(t grid.Tile) Tile {
	if t.X < 0 || t.Y < 0 || t.X >= l.Width || t.Y >= l.Height {
		return TileWall
	}
	return l.Tiles[t.Y*l.Width+t.X]
}

// Occupancy builds the static collision layer as a fresh occupancy grid.
// Actors are not included.
func (l *Level) Occupancy() *grid.Occupancy {
	occ := grid.NewOccupancy(l.Width, l.Height)
	for i, blocked := range l.Collision {
		if blocked {
			occ.SetBlocked(grid.Tile{X: i % l.Width, Y: i / l.Width}, true)
		}
	}
	return occ
}
