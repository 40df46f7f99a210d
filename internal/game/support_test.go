package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/grid"
)

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateExplore, "explore"},
		{StateCombatPlayerInput, "combat_player_input"},
		{StateCombatPlayerResolve, "combat_player_resolve"},
		{StateCombatEnemyAI, "combat_enemy_ai"},
		{StateCombatEnemyResolve, "combat_enemy_resolve"},
		{StateDefeat, "defeat"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
	assert.False(t, StateExplore.InCombat())
	assert.True(t, StateCombatEnemyAI.InCombat())
	assert.False(t, StateDefeat.InCombat())
}

func TestRoster(t *testing.T) {
	r := NewRoster(2)
	a := entity.NewActor("Orc A", entity.KindEnemy, grid.Tile{X: 1})
	b := entity.NewActor("Orc B", entity.KindEnemy, grid.Tile{X: 2})
	c := entity.NewActor("Orc C", entity.KindEnemy, grid.Tile{X: 3})

	require.NoError(t, r.Add(a))
	require.NoError(t, r.Add(b))
	require.NoError(t, r.Add(a), "re-adding an engaged enemy is a no-op")
	assert.Equal(t, 2, r.Len())
	assert.ErrorIs(t, r.Add(c), ErrCapacityExceeded)
	assert.False(t, r.Contains(c))

	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a))
	assert.Equal(t, b, r.At(0))
	assert.Nil(t, r.At(1))
	assert.Nil(t, r.At(-1))

	require.NoError(t, r.Add(c))
	assert.Equal(t, []*entity.Actor{b, c}, r.Members())
}

func TestClock(t *testing.T) {
	c := NewClock(40 * time.Millisecond)

	assert.Equal(t, 0, c.Advance(30*time.Millisecond))
	assert.Equal(t, 1, c.Advance(30*time.Millisecond), "leftover time carries over")
	assert.Equal(t, 0, c.Advance(10*time.Millisecond))
	assert.Equal(t, 2, c.Advance(80*time.Millisecond))
	assert.Equal(t, 0, c.Advance(-time.Second))
	assert.Equal(t, maxCatchUp, c.Advance(10*time.Second))
	assert.Equal(t, 0, c.Advance(0), "a stall is dropped, not replayed")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 40*time.Millisecond, cfg.Sim.Tick())
	assert.Equal(t, 3.125, cfg.Sim.MoveSpeed)
	assert.Equal(t, 5.0, cfg.Sim.AggroRadius)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cavetactics.yaml")
	require.NoError(t, os.WriteFile(file, []byte("seed: 42\nlevel:\n  path: generate\nsim:\n  aggro_radius: 7\n"), 0o644))
	t.Setenv("CAVETACTICS_SIM_TICK_MS", "20")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, LevelGenerate, cfg.Level.Path)
	assert.Equal(t, 7.0, cfg.Sim.AggroRadius)
	assert.Equal(t, 20, cfg.Sim.TickMS)
	assert.Equal(t, 3.125, cfg.Sim.MoveSpeed, "unset keys keep their defaults")
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("CAVETACTICS_SIM_MOVE_SPEED", "0")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sim.TickMS = 0
	cfg.Sim.EnemyMaxMove = -1
	cfg.Level.Enemies = -2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sim.tick_ms")
	assert.Contains(t, err.Error(), "sim.enemy_max_move")
	assert.Contains(t, err.Error(), "level.enemies")
}
