package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LevelGenerate as level.path selects the procedural cave generator.
const LevelGenerate = "generate"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible levels,
	// initiative and dice. A seed of 0 means a random seed will be generated.
	Seed    int64       `mapstructure:"seed"`
	Debug   bool        `mapstructure:"debug"`
	LogFile string      `mapstructure:"log_file"`
	Level   LevelConfig `mapstructure:"level"`
	Sim     SimConfig   `mapstructure:"sim"`
}

// LevelConfig selects the map.
type LevelConfig struct {
	Path    string `mapstructure:"path"`    // Empty for the embedded level, LevelGenerate for BSP
	Enemies int    `mapstructure:"enemies"` // Enemies placed in a generated level
}

// SimConfig tunes the simulation.
type SimConfig struct {
	TickMS        int     `mapstructure:"tick_ms"`
	MoveSpeed     float64 `mapstructure:"move_speed"`      // Tiles per second
	AggroRadius   float64 `mapstructure:"aggro_radius"`    // Euclidean, inclusive
	PlayerMaxMove float64 `mapstructure:"player_max_move"` // Octile cost per turn
	EnemyMaxMove  int     `mapstructure:"enemy_max_move"`  // Steps per turn
}

// Tick returns the fixed simulation step.
func (c SimConfig) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		LogFile: "cavetactics.log",
		Level:   LevelConfig{Enemies: 8},
		Sim: SimConfig{
			TickMS:        40,
			MoveSpeed:     100.0 / 32.0,
			AggroRadius:   5,
			PlayerMaxMove: 3,
			EnemyMaxMove:  3,
		},
	}
}

// LoadConfig reads settings from an optional YAML file at path, then from
// CAVETACTICS_* environment variables. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("cavetactics")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("seed", def.Seed)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("level.path", def.Level.Path)
	v.SetDefault("level.enemies", def.Level.Enemies)
	v.SetDefault("sim.tick_ms", def.Sim.TickMS)
	v.SetDefault("sim.move_speed", def.Sim.MoveSpeed)
	v.SetDefault("sim.aggro_radius", def.Sim.AggroRadius)
	v.SetDefault("sim.player_max_move", def.Sim.PlayerMaxMove)
	v.SetDefault("sim.enemy_max_move", def.Sim.EnemyMaxMove)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Sim.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_ms must be positive, got %d", c.Sim.TickMS))
	}
	if c.Sim.MoveSpeed <= 0 {
		errs = append(errs, fmt.Errorf("sim.move_speed must be positive, got %v", c.Sim.MoveSpeed))
	}
	if c.Sim.AggroRadius < 0 {
		errs = append(errs, fmt.Errorf("sim.aggro_radius must not be negative, got %v", c.Sim.AggroRadius))
	}
	if c.Sim.PlayerMaxMove <= 0 {
		errs = append(errs, fmt.Errorf("sim.player_max_move must be positive, got %v", c.Sim.PlayerMaxMove))
	}
	if c.Sim.EnemyMaxMove <= 0 {
		errs = append(errs, fmt.Errorf("sim.enemy_max_move must be positive, got %d", c.Sim.EnemyMaxMove))
	}
	if c.Level.Enemies < 0 {
		errs = append(errs, fmt.Errorf("level.enemies must not be negative, got %d", c.Level.Enemies))
	}
	return errors.Join(errs...)
}
