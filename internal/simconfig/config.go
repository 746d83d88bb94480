// Package simconfig loads the tunables that shape engine and solver
// behavior without touching the simulation's own domain state: tick
// interval, solver search budgets, and the default RNG seed. There is no
// save-game or CLI surface here — just numbers an operator may want to
// override without a rebuild.
package simconfig

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the engine and solver read at startup.
type Config struct {
	TickInterval time.Duration `mapstructure:"tickIntervalMs"`

	SolverMaxExpandedNodes int           `mapstructure:"solverMaxExpandedNodes"`
	SolverTimeBudget       time.Duration `mapstructure:"solverTimeBudgetMs"`
	SolverMaxReplans       int           `mapstructure:"solverMaxReplans"`

	DefaultSeed int64 `mapstructure:"defaultSeed"`
}

// Default returns the built-in tunables, used when no config file is
// supplied and no environment overrides are set.
func Default() Config {
	return Config{
		TickInterval:           100 * time.Millisecond,
		SolverMaxExpandedNodes: 100_000,
		SolverTimeBudget:       5 * time.Second,
		SolverMaxReplans:       64,
		DefaultSeed:            1,
	}
}

// Load reads defaults, then overlays an optional YAML file at path and
// any IDLECORE_-prefixed environment variables, following the same
// viper.New/SetConfigFile/ReadInConfig/Unmarshal shape used elsewhere in
// the pack for tunable, non-domain configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	vp := viper.New()
	vp.SetEnvPrefix("IDLECORE")
	vp.AutomaticEnv()
	vp.SetDefault("tickIntervalMs", cfg.TickInterval.Milliseconds())
	vp.SetDefault("solverMaxExpandedNodes", cfg.SolverMaxExpandedNodes)
	vp.SetDefault("solverTimeBudgetMs", cfg.SolverTimeBudget.Milliseconds())
	vp.SetDefault("solverMaxReplans", cfg.SolverMaxReplans)
	vp.SetDefault("defaultSeed", cfg.DefaultSeed)

	if path != "" {
		vp.SetConfigFile(path)
		vp.SetConfigType("yaml")
		vp.AddConfigPath(filepath.Dir(path))
		if err := vp.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("simconfig: read %s: %w", path, err)
		}
	}

	var raw struct {
		TickIntervalMs         int64 `mapstructure:"tickIntervalMs"`
		SolverMaxExpandedNodes int   `mapstructure:"solverMaxExpandedNodes"`
		SolverTimeBudgetMs     int64 `mapstructure:"solverTimeBudgetMs"`
		SolverMaxReplans       int   `mapstructure:"solverMaxReplans"`
		DefaultSeed            int64 `mapstructure:"defaultSeed"`
	}
	if err := vp.Unmarshal(&raw); err != nil {
		return cfg, fmt.Errorf("simconfig: unmarshal: %w", err)
	}

	cfg.TickInterval = time.Duration(raw.TickIntervalMs) * time.Millisecond
	cfg.SolverMaxExpandedNodes = raw.SolverMaxExpandedNodes
	cfg.SolverTimeBudget = time.Duration(raw.SolverTimeBudgetMs) * time.Millisecond
	cfg.SolverMaxReplans = raw.SolverMaxReplans
	cfg.DefaultSeed = raw.DefaultSeed

	return cfg, nil
}
