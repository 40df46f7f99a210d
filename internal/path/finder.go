package path

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/samdwyer/cavetactics/internal/grid"
)

// MaxLength is the default cap on the number of tiles in a returned path.
const MaxLength = 100

var (
	// ErrPathNotFound is returned when no tile satisfying the goal can be reached.
	ErrPathNotFound = errors.New("path not found")
	// ErrPathTooLong is returned when the route exists but exceeds the length cap.
	ErrPathTooLong = errors.New("path too long")
)

// Neighbor offsets, clockwise from north-west.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1}, {1, 0},
	{1, 1}, {0, 1}, {-1, 1}, {-1, 0},
}

const noParent = -1

// openEntry is one heap slot. A tile may have several entries; only the
// one matching its best known cost matters, the rest are skipped once the
// tile is visited.
type openEntry struct {
	idx int
	f   float64
}

type openSet []openEntry

func (s openSet) Len() int           { return len(s) }
func (s openSet) Less(i, j int) bool { return s[i].f < s[j].f }
func (s openSet) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x any) {
	*s = append(*s, x.(openEntry))
}

func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	e := old[n-1]
	*s = old[:n-1]
	return e
}

// Finder runs best-first searches over an occupancy grid. Its per-cell
// buffers are allocated once for the grid size and reused across searches.
// A Finder is not safe for concurrent use.
type Finder struct {
	occ       *grid.Occupancy
	maxLength int

	fromStart []float64
	cameFrom  []int
	visited   []bool
	open      openSet
}

// NewFinder creates a finder over occ with the default length cap.
func NewFinder(occ *grid.Occupancy) *Finder {
	size := occ.Size()
	return &Finder{
		occ:       occ,
		maxLength: MaxLength,
		fromStart: make([]float64, size),
		cameFrom:  make([]int, size),
		visited:   make([]bool, size),
		open:      make(openSet, 0, size/4),
	}
}

// SetMaxLength overrides the path length cap.
func (f *Finder) SetMaxLength(n int) {
	f.maxLength = n
}

// Find returns the tiles from start (excluded) to the first tile that
// satisfies goal, in walking order. A start that already satisfies goal
// yields an empty path.
func Find(occ *grid.Occupancy, start grid.Tile, goal Goal) ([]grid.Tile, error) {
	return NewFinder(occ).Find(start, goal)
}

// Find searches from start towards goal. See the package-level Find.
func (f *Finder) Find(start grid.Tile, goal Goal) ([]grid.Tile, error) {
	if !f.occ.InBounds(start) {
		return nil, fmt.Errorf("start %v out of bounds: %w", start, ErrPathNotFound)
	}

	for i := range f.fromStart {
		f.fromStart[i] = math.MaxFloat64
		f.cameFrom[i] = noParent
		f.visited[i] = false
	}
	f.open = f.open[:0]

	startIdx := f.occ.Index(start)
	f.fromStart[startIdx] = 0
	heap.Push(&f.open, openEntry{idx: startIdx, f: goal.Estimate(start)})

	for f.open.Len() > 0 {
		current := heap.Pop(&f.open).(openEntry)
		tile := f.tileAt(current.idx)

		if goal.Reached(tile) {
			return f.reconstruct(startIdx, current.idx)
		}
		if f.visited[current.idx] {
			continue
		}

		for _, off := range neighborOffsets {
			next := tile.Add(off[0], off[1])
			if !f.passable(tile, off[0], off[1]) {
				continue
			}
			nextIdx := f.occ.Index(next)
			tentative := f.fromStart[current.idx] + MoveCost(tile, next)
			if tentative < f.fromStart[nextIdx] {
				f.cameFrom[nextIdx] = current.idx
				f.fromStart[nextIdx] = tentative
				heap.Push(&f.open, openEntry{idx: nextIdx, f: tentative + goal.Estimate(next)})
			}
		}
		f.visited[current.idx] = true
	}

	return nil, ErrPathNotFound
}

// passable reports whether a step of (dx, dy) from t is allowed. A diagonal
// step needs both orthogonal cells it passes between to be free as well.
func (f *Finder) passable(t grid.Tile, dx, dy int) bool {
	if f.occ.IsBlocked(t.Add(dx, dy)) {
		return false
	}
	if dx != 0 && dy != 0 {
		return !f.occ.IsBlocked(t.Add(dx, 0)) && !f.occ.IsBlocked(t.Add(0, dy))
	}
	return true
}

func (f *Finder) reconstruct(startIdx, endIdx int) ([]grid.Tile, error) {
	length := 0
	for idx := endIdx; idx != startIdx; idx = f.cameFrom[idx] {
		length++
	}
	if length > f.maxLength {
		return nil, fmt.Errorf("%d tiles exceeds cap of %d: %w", length, f.maxLength, ErrPathTooLong)
	}

	p := make([]grid.Tile, length)
	for idx, i := endIdx, length-1; idx != startIdx; idx, i = f.cameFrom[idx], i-1 {
		p[i] = f.tileAt(idx)
	}
	return p, nil
}

func (f *Finder) tileAt(idx int) grid.Tile {
	return grid.Tile{X: idx % f.occ.Columns, Y: idx / f.occ.Columns}
}
