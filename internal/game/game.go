package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/grid"
	"github.com/samdwyer/cavetactics/internal/path"
	"github.com/samdwyer/cavetactics/internal/telemetry"
)

// Input is what the input collaborator reports at the start of a tick.
type Input struct {
	Pointer      grid.Tile // Tile under the pointer
	PointerValid bool      // False when the pointer is off the map view
	Confirm      bool      // True only on the tick the button went down
}

// CursorKind tells the renderer which cursor to draw.
type CursorKind int

const (
	CursorNone CursorKind = iota
	CursorMove
	CursorAttack
	CursorInaccessible
)

// String returns the cursor name.
func (c CursorKind) String() string {
	switch c {
	case CursorNone:
		return "none"
	case CursorMove:
		return "move"
	case CursorAttack:
		return "attack"
	case CursorInaccessible:
		return "inaccessible"
	default:
		return "unknown"
	}
}

// Preview is the planned route to the tile under the pointer.
type Preview struct {
	Target grid.Tile
	Path   []grid.Tile   // Empty when no route exists or the target is the player's tile
	Cost   float64       // Octile cost of Path from the player
	Enemy  *entity.Actor // Enemy on Target, if any
	Cursor CursorKind
	Err    error // Why no route was found
}

// Game drives the simulation one fixed tick at a time.
type Game struct {
	sim    *Sim
	cfg    SimConfig
	rng    *rand.Rand
	logger *zap.Logger

	state   State
	preview Preview
	turn    int // Index of the active enemy in the roster
	rounds  int // Combat rounds since combat started
}

// New creates a game over sim. rng decides initiative.
func New(sim *Sim, cfg SimConfig, rng *rand.Rand, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		sim:    sim,
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		state:  StateExplore,
	}
}

// Sim returns the simulation context.
func (g *Game) Sim() *Sim { return g.sim }

// State returns the current state.
func (g *Game) State() State { return g.state }

// Preview returns the current route preview.
func (g *Game) Preview() Preview { return g.preview }

// ActiveEnemy returns the enemy whose turn it is, or nil outside the enemy phase.
func (g *Game) ActiveEnemy() *entity.Actor {
	if g.state != StateCombatEnemyAI && g.state != StateCombatEnemyResolve {
		return nil
	}
	return g.sim.Roster.At(g.turn)
}

// Tick advances the simulation by one fixed step. Errors are recoverable
// overflows; the game stays consistent and keeps running.
func (g *Game) Tick(ctx context.Context, in Input) error {
	dt := g.cfg.Tick().Seconds()
	stage := g.sim.Stage(ctx)
	player := g.sim.Player

	switch g.state {
	case StateExplore:
		g.updatePreview(in, false)
		var errs []error
		if in.Confirm && g.preview.Cursor != CursorNone && g.preview.Cursor != CursorInaccessible {
			player.Queue.Clear()
			player.ResetOffset()
			if err := player.Queue.EnqueueMoves(g.preview.Path); err != nil {
				errs = append(errs, fmt.Errorf("enqueue player path: %w", err))
			}
		}
		player.Advance(dt, g.cfg.MoveSpeed, stage)
		errs = append(errs, g.checkAggro())
		if !g.sim.Roster.IsEmpty() {
			g.startCombat(ctx)
		}
		return errors.Join(errs...)

	case StateCombatPlayerInput:
		g.updatePreview(in, true)
		if in.Confirm {
			return g.confirmPlayerTurn()
		}

	case StateCombatPlayerResolve:
		player.Advance(dt, g.cfg.MoveSpeed, stage)
		if g.checkDefeat(ctx) {
			return nil
		}
		if player.Queue.Idle() {
			if g.sim.Roster.IsEmpty() {
				g.endCombat(ctx, "victory")
				g.setState(StateExplore)
			} else {
				g.turn = 0
				g.setState(StateCombatEnemyAI)
			}
		}

	case StateCombatEnemyAI:
		enemy := g.sim.Roster.At(g.turn)
		if enemy == nil {
			g.beginPlayerTurn()
			return nil
		}
		err := g.planEnemyTurn(enemy)
		g.setState(StateCombatEnemyResolve)
		return err

	case StateCombatEnemyResolve:
		enemy := g.sim.Roster.At(g.turn)
		if enemy == nil {
			g.beginPlayerTurn()
			return nil
		}
		enemy.Advance(dt, g.cfg.MoveSpeed, stage)
		if g.checkDefeat(ctx) {
			return nil
		}
		if enemy.Queue.Idle() {
			g.turn++
			if g.turn >= g.sim.Roster.Len() {
				g.beginPlayerTurn()
			} else {
				g.setState(StateCombatEnemyAI)
			}
		}

	case StateDefeat:
	}
	return nil
}

// updatePreview plans a route to the pointer tile: melee range if an enemy
// stands there, the tile itself otherwise. In combat the route must fit the
// player's movement budget.
func (g *Game) updatePreview(in Input, budgeted bool) {
	if !in.PointerValid || !g.sim.Occupancy().InBounds(in.Pointer) {
		g.preview = Preview{Cursor: CursorNone}
		return
	}

	player := g.sim.Player
	p := Preview{Target: in.Pointer, Cursor: CursorMove}

	var goal path.Goal = path.MovementGoal{Target: in.Pointer}
	if enemy := g.sim.EnemyAt(in.Pointer); enemy != nil {
		p.Enemy = enemy
		p.Cursor = CursorAttack
		goal = path.MeleeGoal{Target: in.Pointer}
	}

	route, err := g.sim.FindPath(player.Pos, goal)
	if err != nil {
		p.Err = err
		p.Cursor = CursorInaccessible
		g.preview = p
		return
	}
	p.Path = route
	p.Cost = path.Cost(player.Pos, route)
	if budgeted && p.Cost > player.MaxMove {
		p.Cursor = CursorInaccessible
	}
	g.preview = p
}

// confirmPlayerTurn queues the previewed route, plus an attack when the
// pointer is on an enemy. Confirming the player's own tile passes the turn.
// Confirming an inaccessible or empty preview does nothing.
func (g *Game) confirmPlayerTurn() error {
	player := g.sim.Player
	p := g.preview
	if p.Cursor == CursorNone || p.Cursor == CursorInaccessible {
		return nil
	}

	player.Queue.Clear()
	player.ResetOffset()
	if err := player.Queue.EnqueueMoves(p.Path); err != nil {
		return fmt.Errorf("enqueue player path: %w", err)
	}
	if p.Cursor == CursorAttack {
		if err := player.Queue.EnqueueAttack(p.Enemy); err != nil {
			player.Queue.Clear()
			return fmt.Errorf("enqueue player attack: %w", err)
		}
	}

	g.logger.Debug("player turn confirmed",
		zap.Stringer("cursor", p.Cursor),
		zap.Int("steps", len(p.Path)),
		zap.Float64("cost", p.Cost),
	)
	g.setState(StateCombatPlayerResolve)
	return nil
}

// planEnemyTurn queues the enemy's turn: attack if adjacent, otherwise close
// in along a melee route, attacking only if the whole route fits the budget.
// An enemy with no route passes.
func (g *Game) planEnemyTurn(enemy *entity.Actor) error {
	player := g.sim.Player
	q := enemy.Queue
	q.Clear()

	if enemy.InMeleeRange(player) {
		return q.EnqueueAttack(player)
	}

	route, err := g.sim.FindPath(enemy.Pos, path.MeleeGoal{Target: player.Pos})
	if err != nil {
		g.logger.Debug("enemy has no route, passing",
			zap.String("enemy", enemy.Name),
			zap.Stringer("id", enemy.ID),
			zap.Error(err),
		)
		return nil
	}

	budget := enemy.MoveSteps()
	if len(route) > budget {
		return q.EnqueueMoves(route[:budget])
	}
	if err := q.EnqueueMoves(route); err != nil {
		return err
	}
	return q.EnqueueAttack(player)
}

// checkAggro engages every living enemy within the aggro radius. Enemies
// already engaged are skipped; overflow is reported and the enemy stays idle.
func (g *Game) checkAggro() error {
	player := g.sim.Player
	var errs []error
	for _, m := range g.sim.Mobs {
		if g.sim.Roster.Contains(m) || grid.Euclidean(player.Pos, m.Pos) > g.cfg.AggroRadius {
			continue
		}
		if err := g.sim.Roster.Add(m); err != nil {
			errs = append(errs, err)
			continue
		}
		g.logger.Info("enemy aggroed",
			zap.String("enemy", m.Name),
			zap.Stringer("id", m.ID),
			zap.Any("pos", m.Pos),
		)
	}
	return errors.Join(errs...)
}

// startCombat clears the player's plan and rolls initiative.
func (g *Game) startCombat(ctx context.Context) {
	player := g.sim.Player
	player.Queue.Clear()
	player.ResetOffset()
	g.turn = 0
	g.rounds = 0

	playerFirst := g.rng.Intn(2) == 0

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.Int("enemy_count", g.sim.Roster.Len()),
		attribute.Bool("player_initiative", playerFirst),
	)
	span.End()

	g.logger.Info("combat start",
		zap.Int("enemies", g.sim.Roster.Len()),
		zap.Bool("player_initiative", playerFirst),
	)

	if playerFirst {
		g.setState(StateCombatPlayerInput)
	} else {
		g.setState(StateCombatEnemyAI)
	}
}

func (g *Game) beginPlayerTurn() {
	g.turn = 0
	g.rounds++
	g.setState(StateCombatPlayerInput)
}

// checkDefeat moves to StateDefeat once the player has fallen.
func (g *Game) checkDefeat(ctx context.Context) bool {
	if !g.sim.PlayerDefeated() {
		return false
	}
	g.endCombat(ctx, "defeat")
	g.setState(StateDefeat)
	return true
}

func (g *Game) endCombat(ctx context.Context, outcome string) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("rounds", g.rounds),
		attribute.Int("player_hp", g.sim.Player.HP),
	)
	span.End()

	g.logger.Info("combat end",
		zap.String("outcome", outcome),
		zap.Int("rounds", g.rounds),
		zap.Int("player_hp", g.sim.Player.HP),
	)
}

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	g.logger.Debug("state change", zap.Stringer("from", g.state), zap.Stringer("to", s))
	g.state = s
}
