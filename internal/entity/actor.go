// Package entity provides the actors that occupy map tiles and the actions they carry out.
package entity

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/grid"
)

// Default stats for actors created without a definition.
const (
	DefaultHP      = 8
	DefaultDefense = 13
	DefaultMaxMove = 3.0
)

// Kind tells the player apart from enemies.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Offset is a sub-tile displacement in tile units, used only for drawing.
type Offset struct {
	X, Y float64
}

// Actor is the player or an enemy standing on the map.
type Actor struct {
	ID     uuid.UUID
	Def    *gamedata.ActorDef // nil for actors built from defaults
	Name   string
	Kind   Kind
	Symbol rune

	Pos    grid.Tile // Logical tile, changes only when a move commits
	Offset Offset    // Interpolated drawing offset towards the current move target

	HP      int
	MaxHP   int
	Defense int
	MaxMove float64 // Movement budget per combat turn

	Queue *Queue
}

// NewActor creates an actor of the given kind with default stats.
func NewActor(name string, kind Kind, pos grid.Tile) *Actor {
	symbol := 'o'
	if kind == KindPlayer {
		symbol = '@'
	}
	return &Actor{
		ID:      uuid.New(),
		Name:    name,
		Kind:    kind,
		Symbol:  symbol,
		Pos:     pos,
		HP:      DefaultHP,
		MaxHP:   DefaultHP,
		Defense: DefaultDefense,
		MaxMove: DefaultMaxMove,
		Queue:   NewQueue(MaxActions),
	}
}

// NewActorFromDef creates an actor from a data-driven definition.
func NewActorFromDef(def *gamedata.ActorDef, pos grid.Tile) *Actor {
	kind := KindEnemy
	if def.Player {
		kind = KindPlayer
	}
	a := NewActor(def.Name, kind, pos)
	a.Def = def
	a.Symbol = def.GlyphRune()
	a.HP = def.HP
	a.MaxHP = def.HP
	a.Defense = def.Defense
	a.MaxMove = def.MaxMove
	return a
}

// IsPlayer returns true for the player character.
func (a *Actor) IsPlayer() bool { return a.Kind == KindPlayer }

// Color returns the tcell color for this actor.
func (a *Actor) Color() tcell.Color {
	if a.Def != nil {
		return a.Def.TCellColor()
	}
	if a.IsPlayer() {
		return tcell.ColorYellow
	}
	return tcell.ColorGreen
}

// MoveSteps returns the movement budget as a whole number of steps.
func (a *Actor) MoveSteps() int {
	return int(a.MaxMove)
}

// InMeleeRange reports whether other stands on an adjacent tile.
func (a *Actor) InMeleeRange(other *Actor) bool {
	return grid.Adjacent(a.Pos, other.Pos)
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the actor's name.
func (a *Actor) GetName() string { return a.Name }

// IsAlive returns true if the actor has HP remaining.
func (a *Actor) IsAlive() bool { return a.HP > 0 }

// GetHP returns current HP.
func (a *Actor) GetHP() int { return a.HP }

// GetDefense returns the defense rating an attack roll must meet.
func (a *Actor) GetDefense() int { return a.Defense }

// TakeDamage subtracts amount from HP, which may go below zero.
func (a *Actor) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	a.HP -= amount
	return amount
}
