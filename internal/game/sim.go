package game

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/cavetactics/internal/combat"
	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/grid"
	"github.com/samdwyer/cavetactics/internal/path"
	"github.com/samdwyer/cavetactics/internal/telemetry"
	"github.com/samdwyer/cavetactics/internal/world"
)

// Sim is the simulation context: it owns the occupancy grid, the actors,
// the items and the combat roster of one level.
type Sim struct {
	Level  *world.Level
	Player *entity.Actor
	Mobs   []*entity.Actor // Living enemies
	Items  []world.Item
	Roster *Roster

	occ      *grid.Occupancy
	finder   *path.Finder
	resolver *combat.Resolver
	logger   *zap.Logger

	playerDefeated bool
}

// NewSim places the level's actors on a fresh occupancy grid. Per-actor
// movement budgets left at zero by their definitions fall back to cfg.
func NewSim(lvl *world.Level, cfg SimConfig, dice combat.Dice, logger *zap.Logger) (*Sim, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(lvl.Enemies) > world.MaxMobs {
		return nil, fmt.Errorf("%d mobs exceeds %d: %w", len(lvl.Enemies), world.MaxMobs, ErrCapacityExceeded)
	}
	if len(lvl.Items) > world.MaxItems {
		return nil, fmt.Errorf("%d items exceeds %d: %w", len(lvl.Items), world.MaxItems, ErrCapacityExceeded)
	}

	occ := lvl.Occupancy()
	s := &Sim{
		Level:    lvl,
		Items:    slices.Clone(lvl.Items),
		Roster:   NewRoster(MaxEnemies),
		occ:      occ,
		finder:   path.NewFinder(occ),
		resolver: combat.NewResolver(dice),
		logger:   logger,
	}

	place := func(spawn world.Spawn) (*entity.Actor, error) {
		if occ.IsBlocked(spawn.Pos) {
			return nil, fmt.Errorf("%w: %s spawns on blocked tile %v", world.ErrInvalidLevelData, spawn.Def.Name, spawn.Pos)
		}
		a := entity.NewActorFromDef(spawn.Def, spawn.Pos)
		occ.SetBlocked(a.Pos, true)
		return a, nil
	}

	player, err := place(lvl.Player)
	if err != nil {
		return nil, err
	}
	if player.MaxMove <= 0 {
		player.MaxMove = cfg.PlayerMaxMove
	}
	s.Player = player

	for _, spawn := range lvl.Enemies {
		mob, err := place(spawn)
		if err != nil {
			return nil, err
		}
		if mob.MaxMove <= 0 {
			mob.MaxMove = float64(cfg.EnemyMaxMove)
		}
		s.Mobs = append(s.Mobs, mob)
	}

	logger.Info("simulation ready",
		zap.Int("width", lvl.Width),
		zap.Int("height", lvl.Height),
		zap.Int("mobs", len(s.Mobs)),
		zap.Int("items", len(s.Items)),
		zap.Stringer("player_id", player.ID),
	)
	return s, nil
}

// Occupancy returns the live occupancy grid.
func (s *Sim) Occupancy() *grid.Occupancy {
	return s.occ
}

// EnemyAt returns the living enemy standing on t, or nil.
func (s *Sim) EnemyAt(t grid.Tile) *entity.Actor {
	for _, m := range s.Mobs {
		if m.Pos == t {
			return m
		}
	}
	return nil
}

// FindPath searches from start towards goal on the live grid.
func (s *Sim) FindPath(start grid.Tile, goal path.Goal) ([]grid.Tile, error) {
	return s.finder.Find(start, goal)
}

// PlayerDefeated returns true once the player's hit points reached zero.
func (s *Sim) PlayerDefeated() bool {
	return s.playerDefeated
}

// Stage returns the entity.Stage that actions act upon during one tick.
func (s *Sim) Stage(ctx context.Context) entity.Stage {
	return tickStage{ctx: ctx, sim: s}
}

type tickStage struct {
	ctx context.Context
	sim *Sim
}

func (t tickStage) CommitMove(a *entity.Actor, to grid.Tile) bool {
	return t.sim.commitMove(a, to)
}

func (t tickStage) ResolveAttack(a, target *entity.Actor) {
	t.sim.resolveAttack(t.ctx, a, target)
}

// commitMove updates occupancy and position in one step. A destination
// that became blocked since the path was planned refuses the move.
func (s *Sim) commitMove(a *entity.Actor, to grid.Tile) bool {
	if s.occ.IsBlocked(to) || !grid.Adjacent(a.Pos, to) {
		s.logger.Debug("move refused",
			zap.String("actor", a.Name),
			zap.Any("from", a.Pos),
			zap.Any("to", to),
		)
		return false
	}
	s.occ.Move(a.Pos, to)
	a.Pos = to
	return true
}

// resolveAttack rolls one melee attack. A dead non-player target leaves the
// roster, the mob collection and the grid before this returns.
func (s *Sim) resolveAttack(ctx context.Context, a, target *entity.Actor) {
	if !target.IsAlive() || (!target.IsPlayer() && !slices.Contains(s.Mobs, target)) {
		s.logger.Debug("attack on a fallen target dropped", zap.String("attacker", a.Name))
		return
	}
	if !a.InMeleeRange(target) {
		s.logger.Debug("attack target out of reach",
			zap.String("attacker", a.Name),
			zap.String("target", target.Name),
		)
		return
	}

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.attack")
	defer span.End()

	result := s.resolver.Resolve(target)

	span.SetAttributes(
		attribute.String("attacker", a.Name),
		attribute.String("attacker.id", a.ID.String()),
		attribute.String("target", target.Name),
		attribute.String("target.id", target.ID.String()),
		attribute.Int("roll", result.AttackRoll),
		attribute.Bool("hit", result.Hit),
		attribute.Int("damage", result.DamageRoll),
		attribute.Int("target_hp", result.TargetHP),
	)
	s.logger.Info("attack",
		zap.String("attacker", a.Name),
		zap.String("target", target.Name),
		zap.Int("roll", result.AttackRoll),
		zap.Int("defense", target.Defense),
		zap.Bool("hit", result.Hit),
		zap.Int("damage", result.DamageRoll),
		zap.Int("target_hp", result.TargetHP),
	)

	if !result.Killed {
		return
	}
	if target.IsPlayer() {
		s.playerDefeated = true
		s.logger.Info("player defeated", zap.Stringer("id", target.ID))
		return
	}
	s.removeMob(target)
}

func (s *Sim) removeMob(m *entity.Actor) {
	s.Roster.Remove(m)
	if i := slices.Index(s.Mobs, m); i >= 0 {
		s.Mobs = slices.Delete(s.Mobs, i, i+1)
	}
	s.occ.SetBlocked(m.Pos, false)
	m.Queue.Clear()
	s.logger.Info("enemy slain",
		zap.String("name", m.Name),
		zap.Stringer("id", m.ID),
		zap.Int("remaining", len(s.Mobs)),
	)
}
