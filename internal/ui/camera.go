package ui

import (
	"math"

	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/grid"
)

// Camera maps map tiles to screen cells. One tile is one cell.
type Camera struct {
	Origin        grid.Tile // Map tile drawn at the top-left cell
	Width, Height int       // View size in cells
}

// Follow centres the view on a, including its in-flight move offset.
func (c *Camera) Follow(a *entity.Actor, width, height int) {
	c.Width, c.Height = width, height
	x, y := drawPos(a)
	c.Origin = grid.Tile{X: x - width/2, Y: y - height/2}
}

// ToScreen returns the cell for map tile t and whether it is in view.
func (c *Camera) ToScreen(t grid.Tile) (x, y int, ok bool) {
	x, y = t.X-c.Origin.X, t.Y-c.Origin.Y
	return x, y, x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// ToTile returns the map tile under cell (x, y) and whether the cell is in view.
func (c *Camera) ToTile(x, y int) (grid.Tile, bool) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return grid.Tile{}, false
	}
	return grid.Tile{X: x + c.Origin.X, Y: y + c.Origin.Y}, true
}

// drawPos is the cell an actor is drawn on: its tile plus the rounded
// interpolation offset.
func drawPos(a *entity.Actor) (int, int) {
	return a.Pos.X + int(math.Round(a.Offset.X)), a.Pos.Y + int(math.Round(a.Offset.Y))
}
