package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cavetactics/internal/combat"
	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/game"
	"github.com/samdwyer/cavetactics/internal/grid"
	"github.com/samdwyer/cavetactics/internal/world"
)

const (
	itemGlyph = '*'
	pathGlyph = '·'
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	camera *Camera
}

// NewRenderer creates a new renderer for the given screen and camera.
func NewRenderer(screen *Screen, camera *Camera) *Renderer {
	return &Renderer{screen: screen, camera: camera}
}

// Render draws the map, items, actors, the route preview and a status line.
// The bottom row is reserved for status.
func (r *Renderer) Render(g *game.Game) {
	sim := g.Sim()
	width, height := r.screen.Size()
	r.camera.Follow(sim.Player, width, max(height-1, 0))

	r.screen.Clear()
	r.drawLevel(sim.Level)

	itemStyle := tcell.StyleDefault.Foreground(tcell.ColorGold)
	for _, it := range sim.Items {
		if x, y, ok := r.camera.ToScreen(it.Pos); ok {
			r.screen.SetContent(x, y, itemGlyph, itemStyle)
		}
	}

	showPreview := g.State() == game.StateExplore || g.State() == game.StateCombatPlayerInput
	if showPreview {
		r.drawPath(g.Preview())
	}

	for _, m := range sim.Mobs {
		r.drawActor(m, m == g.ActiveEnemy())
	}
	r.drawActor(sim.Player, false)

	// The cursor goes over actors so an attack target shows the attack cursor.
	if showPreview {
		r.drawCursor(g.Preview())
	}

	r.drawStatus(g, height-1)
	r.screen.Show()
}

func (r *Renderer) drawLevel(lvl *world.Level) {
	for y := 0; y < r.camera.Height; y++ {
		for x := 0; x < r.camera.Width; x++ {
			t, _ := r.camera.ToTile(x, y)
			if t.X < 0 || t.Y < 0 || t.X >= lvl.Width || t.Y >= lvl.Height {
				continue
			}
			tile := lvl.TileAt(t)
			r.screen.SetContent(x, y, tile.Rune(), tileStyle(tile))
		}
	}
}

func (r *Renderer) drawPath(p game.Preview) {
	style := tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	if p.Cursor == game.CursorInaccessible {
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	}
	for _, t := range p.Path {
		if x, y, ok := r.camera.ToScreen(t); ok {
			r.screen.SetContent(x, y, pathGlyph, style)
		}
	}
}

func (r *Renderer) drawCursor(p game.Preview) {
	glyph, cursorStyle := cursorLook(p.Cursor)
	if glyph == 0 {
		return
	}
	if x, y, ok := r.camera.ToScreen(p.Target); ok {
		r.screen.SetContent(x, y, glyph, cursorStyle)
	}
}

func (r *Renderer) drawActor(a *entity.Actor, active bool) {
	ax, ay := drawPos(a)
	x, y, ok := r.camera.ToScreen(grid.Tile{X: ax, Y: ay})
	if !ok {
		return
	}
	style := tcell.StyleDefault.Foreground(a.Color()).Bold(true)
	if active {
		style = style.Reverse(true)
	}
	r.screen.SetContent(x, y, a.Symbol, style)
}

func (r *Renderer) drawStatus(g *game.Game, row int) {
	if row < 0 {
		return
	}
	player := g.Sim().Player
	msg := fmt.Sprintf("%s  HP %d/%d  engaged %d", g.State(), player.HP, player.MaxHP, g.Sim().Roster.Len())

	p := g.Preview()
	if p.Enemy != nil && g.State() != game.StateDefeat {
		msg += fmt.Sprintf("  %s HP %d  hit %.0f%%", p.Enemy.Name, p.Enemy.HP, combat.HitChance(p.Enemy.Defense)*100)
	}
	if g.State() == game.StateCombatPlayerInput && len(p.Path) > 0 {
		msg += fmt.Sprintf("  move %.1f/%.1f", p.Cost, player.MaxMove)
	}
	if g.State() == game.StateDefeat {
		msg += "  You have fallen. Press q to quit."
	}
	r.screen.DrawText(0, row, msg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// tileStyle returns the appropriate style for a tile type.
func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileProp:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	default:
		return tcell.StyleDefault
	}
}

// cursorLook returns the glyph and style for a cursor kind; glyph 0 draws nothing.
func cursorLook(kind game.CursorKind) (rune, tcell.Style) {
	switch kind {
	case game.CursorMove:
		return '+', tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	case game.CursorAttack:
		return 'X', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case game.CursorInaccessible:
		return '×', tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	default:
		return 0, tcell.StyleDefault
	}
}
