// Package grid provides tile coordinates and the occupancy map that
// pathfinding and movement share.
package grid

import "math"

// Tile is an integer cell coordinate on the map.
type Tile struct {
	X, Y int
}

// Add returns the tile offset by (dx, dy).
func (t Tile) Add(dx, dy int) Tile {
	return Tile{X: t.X + dx, Y: t.Y + dy}
}

// Delta returns the absolute distance between two tiles along each axis.
func Delta(a, b Tile) (dx, dy int) {
	return abs(a.X - b.X), abs(a.Y - b.Y)
}

// Chebyshev returns the king-move distance between two tiles.
func Chebyshev(a, b Tile) int {
	dx, dy := Delta(a, b)
	return max(dx, dy)
}

// Euclidean returns the straight-line distance between two tiles.
func Euclidean(a, b Tile) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Adjacent reports whether b is within one tile of a, diagonals included.
func Adjacent(a, b Tile) bool {
	return Chebyshev(a, b) <= 1
}

// Occupancy is a blocked/free flag per tile over a bounded grid.
// Cells are stored flat at y*Columns+x.
type Occupancy struct {
	Columns int
	Rows    int
	blocked []bool
}

// NewOccupancy creates an occupancy map with every tile free.
func NewOccupancy(columns, rows int) *Occupancy {
	return &Occupancy{
		Columns: columns,
		Rows:    rows,
		blocked: make([]bool, columns*rows),
	}
}

// InBounds returns true if t lies inside the grid.
func (o *Occupancy) InBounds(t Tile) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < o.Columns && t.Y < o.Rows
}

// Index returns the flat arena index of t. t must be in bounds.
func (o *Occupancy) Index(t Tile) int {
	return t.Y*o.Columns + t.X
}

// Size returns the number of cells in the grid.
func (o *Occupancy) Size() int {
	return o.Columns * o.Rows
}

// IsBlocked returns true if t is occupied. Out-of-bounds tiles count as blocked.
func (o *Occupancy) IsBlocked(t Tile) bool {
	if !o.InBounds(t) {
		return true
	}
	return o.blocked[o.Index(t)]
}

// SetBlocked marks t as occupied or free. Out-of-bounds tiles are ignored.
func (o *Occupancy) SetBlocked(t Tile, blocked bool) {
	if !o.InBounds(t) {
		return
	}
	o.blocked[o.Index(t)] = blocked
}

// Move clears from and blocks to in one step.
func (o *Occupancy) Move(from, to Tile) {
	o.SetBlocked(from, false)
	o.SetBlocked(to, true)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
