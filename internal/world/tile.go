// Package world holds static level data: the tile layout, the collision
// layer and initial actor placements, loaded from a file or generated.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = '#'
	// TileFloor represents a passable floor tile.
	TileFloor Tile = '.'
	// TileProp is decoration drawn over floor; it may or may not collide.
	TileProp Tile = ','
)

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
