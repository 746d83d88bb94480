// Command idlecore loads a registry bundle, an optional save file, and a
// goal, then runs the solver and prints the resulting plan.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/obslog"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/simconfig"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/solver"
	"github.com/kestrelgames/idlecore/internal/state"
)

func main() {
	obslog.Default()

	registryDir := flag.String("registry", "registry", "directory holding the registry SQLite DB and manifest")
	configPath := flag.String("config", "", "optional YAML file overriding simconfig defaults")
	savePath := flag.String("save", "", "optional save-game JSON to resume from; starts fresh when empty")
	goalFlag := flag.String("goal", "", "goal to solve toward: gp:<n> | skill:<name>:<level> | multi:<name>:<level>,<name>:<level>,...")
	flag.Parse()

	cfg, err := simconfig.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("tunables loaded",
		"tickInterval", cfg.TickInterval,
		"solverMaxExpandedNodes", cfg.SolverMaxExpandedNodes,
		"solverTimeBudget", cfg.SolverTimeBudget,
		"solverMaxReplans", cfg.SolverMaxReplans,
		"defaultSeed", cfg.DefaultSeed,
	)

	bundle, err := registry.Load(*registryDir)
	if err != nil {
		slog.Error("registry load failed", "error", err)
		os.Exit(1)
	}
	slog.Info("registry loaded", "actions", len(bundle.Actions), "items", len(bundle.Items), "monsters", len(bundle.Monsters))

	target, err := parseGoal(*goalFlag)
	if err != nil {
		slog.Error("invalid -goal", "error", err)
		os.Exit(1)
	}

	start := state.Empty(bundle)
	if *savePath != "" {
		data, err := os.ReadFile(*savePath)
		if err != nil {
			slog.Error("save file read failed", "error", err)
			os.Exit(1)
		}
		start, err = state.FromJSON(data, bundle)
		if err != nil {
			slog.Error("save file decode failed", "error", err)
			os.Exit(1)
		}
		slog.Info("save file loaded", "path", *savePath)
	}

	params := solver.TerminationParams{
		MaxExpandedNodes: cfg.SolverMaxExpandedNodes,
		TimeBudget:       cfg.SolverTimeBudget,
		MaxReplans:       cfg.SolverMaxReplans,
	}
	r := rng.NewSource(cfg.DefaultSeed)

	plan, err := solver.Solve(start, bundle, target, nil, r, params)
	if err != nil {
		slog.Error("solve failed", "goal", target.Describe(), "error", err)
		os.Exit(1)
	}

	fmt.Print(plan.PrettyPrint())
}

// parseGoal parses the -goal flag's small grammar described in its usage
// string into a goal.Goal.
func parseGoal(spec string) (goal.Goal, error) {
	kind, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("expected kind:args, got %q", spec)
	}
	switch kind {
	case "gp":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("gp target: %w", err)
		}
		return goal.ReachGp{N: n}, nil
	case "skill":
		skill, level, err := parseSkillLevel(rest)
		if err != nil {
			return nil, err
		}
		return goal.ReachSkillLevel{Skill: skill, Level: level}, nil
	case "multi":
		targets := map[skills.Skill]int{}
		for _, pair := range strings.Split(rest, ",") {
			skill, level, err := parseSkillLevel(pair)
			if err != nil {
				return nil, err
			}
			targets[skill] = level
		}
		return goal.MultiSkill{Targets: targets}, nil
	default:
		return nil, fmt.Errorf("unknown goal kind %q", kind)
	}
}

func parseSkillLevel(s string) (skills.Skill, int, error) {
	name, levelStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected name:level, got %q", s)
	}
	skill, ok := skills.ParseName(name)
	if !ok {
		return 0, 0, fmt.Errorf("unknown skill %q", name)
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil {
		return 0, 0, fmt.Errorf("skill level: %w", err)
	}
	return skill, level, nil
}
