// Package path finds tile routes over an occupancy grid.
package path

import "github.com/samdwyer/cavetactics/internal/grid"

// Goal couples the distance estimate used to order the search with the
// predicate that ends it. A goal is reached exactly when Estimate is zero.
type Goal interface {
	// Estimate returns the heuristic remaining cost from t.
	Estimate(t grid.Tile) float64
	// Reached reports whether the search may stop at t.
	Reached(t grid.Tile) bool
}

// MovementGoal is reached only on the target tile itself.
type MovementGoal struct {
	Target grid.Tile
}

// Estimate returns the octile cost from t to the target.
func (g MovementGoal) Estimate(t grid.Tile) float64 {
	return MoveCost(t, g.Target)
}

// Reached returns true if t is the target.
func (g MovementGoal) Reached(t grid.Tile) bool {
	return g.Estimate(t) == 0
}

// MeleeGoal is reached on any tile within one step of the target,
// so it can route towards a tile that is itself occupied.
type MeleeGoal struct {
	Target grid.Tile
}

// Estimate returns the reduced distance to the ring around the target.
func (g MeleeGoal) Estimate(t grid.Tile) float64 {
	dx, dy := grid.Delta(t, g.Target)
	return float64(max(dx-1, 0) + max(dy-1, 0))
}

// Reached returns true if t is in melee range of the target.
func (g MeleeGoal) Reached(t grid.Tile) bool {
	return g.Estimate(t) == 0
}

// MoveCost returns the octile cost between two tiles: the longer axis
// costs one per tile, the shorter axis adds half per tile.
func MoveCost(a, b grid.Tile) float64 {
	dx, dy := grid.Delta(a, b)
	if dx > dy {
		return float64(dx) + 0.5*float64(dy)
	}
	return float64(dy) + 0.5*float64(dx)
}

// Cost sums the step costs of a path walked from start.
func Cost(start grid.Tile, p []grid.Tile) float64 {
	total := 0.0
	prev := start
	for _, t := range p {
		total += MoveCost(prev, t)
		prev = t
	}
	return total
}
