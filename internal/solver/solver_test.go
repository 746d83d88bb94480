package solver

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

func TestSolveReachesLowSkillLevel(t *testing.T) {
	action := registry.Action{
		ID:                ids.New("test", "chop_logs"),
		Skill:             skills.Woodcutting,
		LevelRequirement:  1,
		BaseDurationTicks: 30,
		Outputs:           []registry.ItemQuantity{{Item: ids.New("test", "log"), MinQty: 1, MaxQty: 1}},
		SkillXP:           500,
	}
	bundle := &registry.Bundle{Actions: map[ids.Id]registry.Action{action.ID: action}}
	start := state.Empty(bundle)
	target := goal.ReachSkillLevel{Skill: skills.Woodcutting, Level: 2}

	params := TerminationParams{MaxExpandedNodes: 2000, TimeBudget: 2 * time.Second, MaxReplans: 32}
	plan, err := Solve(start, bundle, target, nil, rng.NewSource(1), params)

	require.NoError(t, err)
	assert.NotEmpty(t, plan.Steps)
	assert.NotEqual(t, uuid.Nil, plan.ID)
}

func TestSolveAlreadySatisfiedReturnsEmptyPlan(t *testing.T) {
	bundle := &registry.Bundle{Actions: map[ids.Id]registry.Action{}}
	start := state.Empty(bundle)
	start.GP = 1000

	target := goal.ReachGp{N: 500}
	plan, err := Solve(start, bundle, target, nil, rng.NewSource(1), DefaultTermination)

	require.NoError(t, err)
	assert.Equal(t, int64(0), plan.TotalTicks)
	assert.Equal(t, 0, plan.InteractionCount)
}

func TestSolveUnreachableGoalFails(t *testing.T) {
	bundle := &registry.Bundle{Actions: map[ids.Id]registry.Action{}}
	start := state.Empty(bundle)
	target := goal.ReachGp{N: 1_000_000}

	params := TerminationParams{MaxExpandedNodes: 5, TimeBudget: time.Second, MaxReplans: 5}
	plan, err := Solve(start, bundle, target, nil, rng.NewSource(1), params)

	assert.Nil(t, plan)
	require.Error(t, err)
	var failure *SolverFailure
	require.ErrorAs(t, err, &failure)
	assert.NotEmpty(t, failure.Diagnostics.Boundaries)
}
