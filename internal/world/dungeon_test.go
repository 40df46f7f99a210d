package world

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/grid"
)

func generate(seed int64) *Dungeon {
	d := NewDungeon(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(seed)))
	d.Generate(context.Background())
	return d
}

func TestDungeonReproducibility(t *testing.T) {
	d1, d2 := generate(12345), generate(12345)

	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(d1.Rooms), len(d2.Rooms))
	}
	for i := range d1.Rooms {
		if d1.Rooms[i] != d2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, d1.Rooms[i], d2.Rooms[i])
		}
	}
	for i := range d1.Tiles {
		if d1.Tiles[i] != d2.Tiles[i] {
			t.Fatalf("Tile mismatch at index %d: %v != %v", i, d1.Tiles[i], d2.Tiles[i])
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	d1, d2 := generate(12345), generate(54321)

	identical := len(d1.Rooms) == len(d2.Rooms)
	for i := 0; identical && i < len(d1.Rooms); i++ {
		identical = d1.Rooms[i] == d2.Rooms[i]
	}
	if identical {
		t.Error("Dungeons with different seeds should not be identical")
	}
}

func TestDungeonBorderIsSolid(t *testing.T) {
	d := generate(7)

	for x := 0; x < d.Width; x++ {
		if d.IsPassable(grid.Tile{X: x, Y: 0}) || d.IsPassable(grid.Tile{X: x, Y: d.Height - 1}) {
			t.Fatalf("Border column %d is carved", x)
		}
	}
	for y := 0; y < d.Height; y++ {
		if d.IsPassable(grid.Tile{X: 0, Y: y}) || d.IsPassable(grid.Tile{X: d.Width - 1, Y: y}) {
			t.Fatalf("Border row %d is carved", y)
		}
	}
}

func TestDungeonRoomsAreConnected(t *testing.T) {
	d := generate(99)
	if len(d.Rooms) < 2 {
		t.Fatalf("Expected several rooms, got %d", len(d.Rooms))
	}

	// Flood fill from the first room must reach every other room.
	start := d.Rooms[0].Center()
	seen := map[grid.Tile]bool{start: true}
	frontier := []grid.Tile{start}
	for len(frontier) > 0 {
		cur := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, n := range []grid.Tile{cur.Add(1, 0), cur.Add(-1, 0), cur.Add(0, 1), cur.Add(0, -1)} {
			if !seen[n] && d.IsPassable(n) {
				seen[n] = true
				frontier = append(frontier, n)
			}
		}
	}

	for i, r := range d.Rooms {
		if !seen[r.Center()] {
			t.Errorf("Room %d at %v is unreachable", i, r.Center())
		}
	}
}

func TestRoomContains(t *testing.T) {
	r := Room{X: 2, Y: 3, Width: 4, Height: 2}

	if !r.Contains(grid.Tile{X: 2, Y: 3}) || !r.Contains(grid.Tile{X: 5, Y: 4}) {
		t.Error("Room should contain its corners")
	}
	if r.Contains(grid.Tile{X: 6, Y: 3}) || r.Contains(grid.Tile{X: 2, Y: 5}) {
		t.Error("Room should not contain tiles past its far edges")
	}
	if c := r.Center(); c != (grid.Tile{X: 4, Y: 4}) {
		t.Errorf("Center = %v, want (4,4)", c)
	}
}

func testRegistry() *gamedata.ActorRegistry {
	return gamedata.NewActorRegistry([]gamedata.ActorDef{
		{ID: "player", Name: "Hero", Glyph: "@", Sprite: 13, Player: true, HP: 8, Defense: 13, MaxMove: 3},
		{ID: "orc", Name: "Orc", Glyph: "o", Sprite: 21, HP: 8, Defense: 13, MaxMove: 3, SpawnWeight: 1},
	})
}

func TestDungeonToLevel(t *testing.T) {
	d := generate(2024)

	lvl, err := d.ToLevel(testRegistry(), 12)
	if err != nil {
		t.Fatalf("ToLevel failed: %v", err)
	}

	if lvl.Player.Pos != d.Rooms[0].Center() {
		t.Errorf("Player start = %v, want first room center %v", lvl.Player.Pos, d.Rooms[0].Center())
	}
	if !lvl.Player.Def.Player {
		t.Error("Player spawn should use the player definition")
	}
	if len(lvl.Enemies) == 0 || len(lvl.Enemies) > 12 {
		t.Errorf("Enemy count = %d, want 1..12", len(lvl.Enemies))
	}

	occ := lvl.Occupancy()
	taken := map[grid.Tile]bool{lvl.Player.Pos: true}
	for _, e := range lvl.Enemies {
		if e.Def.Player {
			t.Error("Enemies must not use the player definition")
		}
		if taken[e.Pos] {
			t.Errorf("Two actors spawned on %v", e.Pos)
		}
		taken[e.Pos] = true
		if occ.IsBlocked(e.Pos) {
			t.Errorf("Enemy spawned on blocked tile %v", e.Pos)
		}
	}
}

func TestDungeonToLevelWithoutRooms(t *testing.T) {
	d := NewDungeon(10, 10, rand.New(rand.NewSource(1)))

	if _, err := d.ToLevel(testRegistry(), 3); err == nil {
		t.Error("Expected an error for a dungeon with no rooms")
	}
}
