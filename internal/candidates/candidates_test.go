package candidates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

var (
	wcAction = registry.Action{
		ID:                ids.New("test", "chop_logs"),
		Skill:             skills.Woodcutting,
		LevelRequirement:  1,
		BaseDurationTicks: 30,
	}
	miningAction = registry.Action{
		ID:                ids.New("test", "mine_ore"),
		Skill:             skills.Mining,
		LevelRequirement:  1,
		BaseDurationTicks: 30,
	}
	fishAction = registry.Action{
		ID:                ids.New("test", "catch_fish"),
		Skill:             skills.Fishing,
		LevelRequirement:  1,
		BaseDurationTicks: 30,
	}
	bundle = &registry.Bundle{Actions: map[ids.Id]registry.Action{
		wcAction.ID:     wcAction,
		miningAction.ID: miningAction,
		fishAction.ID:   fishAction,
	}}
)

func TestEnumerateFiltersToRelevantSkills(t *testing.T) {
	s := state.Empty(bundle)
	target := goal.ReachSkillLevel{Skill: skills.Woodcutting, Level: 10}

	c := Enumerate(s, bundle, target, nil)
	assert.Contains(t, c.SwitchToActivities, wcAction.ID)
	assert.NotContains(t, c.SwitchToActivities, miningAction.ID, "mining is unrelated to woodcutting and has no feeder link")
}

func TestEnumerateIncludesFeederSkill(t *testing.T) {
	s := state.Empty(bundle)
	target := goal.ReachSkillLevel{Skill: skills.Cooking, Level: 10}

	c := Enumerate(s, bundle, target, nil)
	assert.Contains(t, c.SwitchToActivities, fishAction.ID, "cooking's feeder skill is fishing")
}

func TestKeyStableAcrossEquivalentStates(t *testing.T) {
	target := goal.ReachSkillLevel{Skill: skills.Woodcutting, Level: 10}
	a := state.Empty(bundle)
	b := state.Empty(bundle)
	assert.Equal(t, Key(a, target), Key(b, target))

	b.SkillStates[skills.Woodcutting] = b.SkillStates[skills.Woodcutting].AddXP(1_000_000)
	assert.NotEqual(t, Key(a, target), Key(b, target))
}

func TestCacheGetFiltersActiveAction(t *testing.T) {
	s := state.Empty(bundle)
	target := goal.ReachSkillLevel{Skill: skills.Woodcutting, Level: 10}

	cache := NewCache()
	first := cache.Get(s, bundle, target, nil)
	assert.Contains(t, first.SwitchToActivities, wcAction.ID)
	assert.Equal(t, int64(0), cache.Hits)
	assert.Equal(t, int64(1), cache.Misses)

	second := cache.Get(s, bundle, target, nil)
	assert.Equal(t, int64(1), cache.Hits)
	assert.Contains(t, second.SwitchToActivities, wcAction.ID)

	s.ActiveActivity = &state.ActiveActivity{Kind: state.ActivitySkill, ActionID: wcAction.ID}
	active := cache.Get(s, bundle, target, nil)
	assert.NotContains(t, active.SwitchToActivities, wcAction.ID, "the active action is filtered out at lookup time")
}
