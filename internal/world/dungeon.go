package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/grid"
	"github.com/samdwyer/cavetactics/internal/telemetry"
)

const (
	// Default generated map dimensions
	DefaultWidth  = 96
	DefaultHeight = 48

	// BSP parameters
	minRoomSize = 5
	maxRoomSize = 14
	minLeafSize = 8
)

// Room is a rectangular carved area.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int
}

// Center returns the center tile of the room.
func (r Room) Center() grid.Tile {
	return grid.Tile{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains returns true if t is inside the room.
func (r Room) Contains(t grid.Tile) bool {
	return t.X >= r.X && t.X < r.X+r.Width && t.Y >= r.Y && t.Y < r.Y+r.Height
}

// Dungeon is a procedurally generated map: BSP rooms joined by corridors.
type Dungeon struct {
	Width  int
	Height int
	Tiles  []Tile // Row-major
	Rooms  []Room
	rng    *rand.Rand
}

// NewDungeon creates a dungeon filled with walls. rng drives every random
// choice, so the same seed reproduces the same layout.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = TileWall
	}
	return &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		rng:    rng,
	}
}

// Generate carves rooms and corridors.
func (d *Dungeon) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()

	root := &bspNode{room: Room{X: 1, Y: 1, Width: d.Width - 2, Height: d.Height - 2}}
	d.split(root)
	d.createRooms(root)
	d.connect(root)

	span.SetAttributes(
		attribute.Int("level.width", d.Width),
		attribute.Int("level.height", d.Height),
		attribute.Int("level.room_count", len(d.Rooms)),
		attribute.Int64("level.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// IsPassable returns true if t is carved floor.
func (d *Dungeon) IsPassable(t grid.Tile) bool {
	if t.X < 0 || t.X >= d.Width || t.Y < 0 || t.Y >= d.Height {
		return false
	}
	return d.Tiles[t.Y*d.Width+t.X] == TileFloor
}

// RandomPointInRoom returns a random floor tile in the room, falling back
// to its center.
func (d *Dungeon) RandomPointInRoom(room Room) grid.Tile {
	for i := 0; i < 100; i++ {
		t := grid.Tile{X: room.X + d.rng.Intn(room.Width), Y: room.Y + d.rng.Intn(room.Height)}
		if d.IsPassable(t) {
			return t
		}
	}
	return room.Center()
}

// ToLevel turns the carved layout into a Level: the player starts at the
// center of the first room and enemies drawn from reg are scattered over
// the other rooms, never two on one tile.
func (d *Dungeon) ToLevel(reg *gamedata.ActorRegistry, enemies int) (*Level, error) {
	if len(d.Rooms) == 0 {
		return nil, fmt.Errorf("%w: generated dungeon has no rooms", ErrInvalidLevelData)
	}
	player := reg.Player()
	if player == nil {
		return nil, fmt.Errorf("%w: no player definition", ErrInvalidLevelData)
	}
	enemies = min(enemies, MaxMobs)

	lvl := newLevel(d.Width, d.Height)
	copy(lvl.Tiles, d.Tiles)
	for i, t := range d.Tiles {
		lvl.Collision[i] = t != TileFloor
	}

	lvl.Player = Spawn{Def: player, Pos: d.Rooms[0].Center()}
	taken := map[grid.Tile]bool{lvl.Player.Pos: true}

	if len(d.Rooms) > 1 {
		for i := 0; i < enemies; i++ {
			def := reg.SpawnRandom(d.rng)
			if def == nil {
				break
			}
			room := d.Rooms[1+d.rng.Intn(len(d.Rooms)-1)]
			pos := d.RandomPointInRoom(room)
			if taken[pos] {
				continue
			}
			taken[pos] = true
			lvl.Enemies = append(lvl.Enemies, Spawn{Def: def, Pos: pos})
		}
	}
	return lvl, nil
}

// bspNode is a node of the space partition; room holds its bounds until a
// leaf gets an actual carved room.
type bspNode struct {
	room        Room
	left, right *bspNode
	carved      *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// split recursively halves a node along its longer axis.
func (d *Dungeon) split(node *bspNode) {
	b := node.room
	canSplitH := b.Height >= minLeafSize*2
	canSplitV := b.Width >= minLeafSize*2
	if !canSplitH && !canSplitV {
		return
	}

	horizontal := canSplitH && (!canSplitV || b.Height >= b.Width)
	span := b.Width
	if horizontal {
		span = b.Height
	}
	at := minLeafSize + d.rng.Intn(span-2*minLeafSize+1)

	if horizontal {
		node.left = &bspNode{room: Room{X: b.X, Y: b.Y, Width: b.Width, Height: at}}
		node.right = &bspNode{room: Room{X: b.X, Y: b.Y + at, Width: b.Width, Height: b.Height - at}}
	} else {
		node.left = &bspNode{room: Room{X: b.X, Y: b.Y, Width: at, Height: b.Height}}
		node.right = &bspNode{room: Room{X: b.X + at, Y: b.Y, Width: b.Width - at, Height: b.Height}}
	}

	d.split(node.left)
	d.split(node.right)
}

// createRooms carves one room inside every leaf large enough to hold one.
func (d *Dungeon) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		d.createRooms(node.left)
		d.createRooms(node.right)
		return
	}

	b := node.room
	w := min(minRoomSize+d.rng.Intn(maxRoomSize-minRoomSize+1), b.Width-2)
	h := min(minRoomSize+d.rng.Intn(maxRoomSize-minRoomSize+1), b.Height-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}

	room := Room{
		X:      b.X + 1 + d.rng.Intn(b.Width-w-1),
		Y:      b.Y + 1 + d.rng.Intn(b.Height-h-1),
		Width:  w,
		Height: h,
	}
	node.carved = &room
	d.Rooms = append(d.Rooms, room)
	d.carve(room.X, room.Y, room.X+room.Width-1, room.Y+room.Height-1)
}

// connect joins sibling subtrees with an L-shaped corridor.
func (d *Dungeon) connect(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}
	d.connect(node.left)
	d.connect(node.right)

	a, b := anyRoom(node.left), anyRoom(node.right)
	if a == nil || b == nil {
		return
	}
	from, to := a.Center(), b.Center()
	if d.rng.Intn(2) == 0 {
		d.carve(from.X, from.Y, to.X, from.Y)
		d.carve(to.X, from.Y, to.X, to.Y)
	} else {
		d.carve(from.X, from.Y, from.X, to.Y)
		d.carve(from.X, to.Y, to.X, to.Y)
	}
}

func anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.carved != nil {
		return node.carved
	}
	if r := anyRoom(node.left); r != nil {
		return r
	}
	return anyRoom(node.right)
}

// carve sets the inclusive rectangle between two corners to floor, keeping
// the outer border solid.
func (d *Dungeon) carve(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := max(y1, 1); y <= min(y2, d.Height-2); y++ {
		for x := max(x1, 1); x <= min(x2, d.Width-2); x++ {
			d.Tiles[y*d.Width+x] = TileFloor
		}
	}
}
