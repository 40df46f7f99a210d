package ui

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/cavetactics/internal/combat"
	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/game"
	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/grid"
	"github.com/samdwyer/cavetactics/internal/world"
)

func TestCameraFollow(t *testing.T) {
	a := entity.NewActor("Hero", entity.KindPlayer, grid.Tile{X: 20, Y: 10})
	c := &Camera{}

	c.Follow(a, 11, 7)
	assert.Equal(t, grid.Tile{X: 15, Y: 7}, c.Origin)

	x, y, ok := c.ToScreen(a.Pos)
	assert.True(t, ok)
	assert.Equal(t, 5, x)
	assert.Equal(t, 3, y)

	tile, ok := c.ToTile(x, y)
	assert.True(t, ok)
	assert.Equal(t, a.Pos, tile)

	_, ok = c.ToTile(11, 0)
	assert.False(t, ok)
	_, _, ok = c.ToScreen(grid.Tile{X: 14, Y: 10})
	assert.False(t, ok)

	a.Offset = entity.Offset{X: 0.6}
	c.Follow(a, 11, 7)
	assert.Equal(t, grid.Tile{X: 16, Y: 7}, c.Origin, "the view follows the drawn position")
}

func TestInputSamplerConfirmIsEdgeTriggered(t *testing.T) {
	c := &Camera{Origin: grid.Tile{X: 10, Y: 20}, Width: 40, Height: 20}
	s := NewInputSampler(c)

	assert.False(t, s.Sample().PointerValid)

	s.HandleMouse(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone))
	in := s.Sample()
	assert.True(t, in.PointerValid)
	assert.Equal(t, grid.Tile{X: 13, Y: 24}, in.Pointer)
	assert.False(t, in.Confirm)

	s.HandleMouse(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	assert.True(t, s.Sample().Confirm)
	assert.False(t, s.Sample().Confirm, "confirm is reported once per press")

	s.HandleMouse(tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone))
	assert.False(t, s.Sample().Confirm, "dragging with the button held is not a new press")

	s.HandleMouse(tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone))
	s.HandleMouse(tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone))
	assert.True(t, s.Sample().Confirm)

	s.HandleMouse(tcell.NewEventMouse(60, 4, tcell.ButtonNone, tcell.ModNone))
	assert.False(t, s.Sample().PointerValid)
}

func TestRendererDrawsActorsAndStatus(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := newScreen(sim)
	require.NoError(t, err)
	defer screen.Close()
	sim.SetSize(21, 11)

	lvl := &world.Level{
		Width:     12,
		Height:    8,
		Tiles:     make([]world.Tile, 12*8),
		Collision: make([]bool, 12*8),
		Player: world.Spawn{
			Def: &gamedata.ActorDef{ID: "player", Name: "Hero", Glyph: "@", Player: true, HP: 8, Defense: 13, MaxMove: 3},
			Pos: grid.Tile{X: 4, Y: 4},
		},
		Enemies: []world.Spawn{{
			Def: &gamedata.ActorDef{ID: "orc", Name: "Orc", Glyph: "o", HP: 8, Defense: 13, MaxMove: 3},
			Pos: grid.Tile{X: 9, Y: 4},
		}},
		Items: []world.Item{{Sprite: 40, Pos: grid.Tile{X: 2, Y: 2}}},
	}
	for i := range lvl.Tiles {
		lvl.Tiles[i] = world.TileFloor
	}

	cfg := game.DefaultConfig().Sim
	s, err := game.NewSim(lvl, cfg, combat.NewRandDice(rand.New(rand.NewSource(1))), nil)
	require.NoError(t, err)
	g := game.New(s, cfg, rand.New(rand.NewSource(1)), nil)

	camera := &Camera{}
	NewRenderer(screen, camera).Render(g)

	cell := func(tile grid.Tile) rune {
		x, y, ok := camera.ToScreen(tile)
		require.True(t, ok, "tile %v out of view", tile)
		r, _, _, _ := sim.GetContent(x, y)
		return r
	}
	assert.Equal(t, '@', cell(grid.Tile{X: 4, Y: 4}))
	assert.Equal(t, 'o', cell(grid.Tile{X: 9, Y: 4}))
	assert.Equal(t, itemGlyph, cell(grid.Tile{X: 2, Y: 2}))
	assert.Equal(t, '.', cell(grid.Tile{X: 5, Y: 5}))

	status := ""
	for x := 0; x < 7; x++ {
		r, _, _, _ := sim.GetContent(x, 10)
		status += string(r)
	}
	assert.Equal(t, "explore", status)
}
