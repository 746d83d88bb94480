package waitfor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/rates"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

var logID = ids.New("test", "log")

func TestSkillXp(t *testing.T) {
	w := SkillXp{Skill: skills.Woodcutting, N: 100}
	s := state.Empty(nil)
	assert.False(t, w.IsSatisfied(s))

	r := rates.Empty()
	r.XPPerTickBySkill[skills.Woodcutting] = 2
	assert.Equal(t, int64(50), w.EstimateTicks(s, r))

	s.SkillStates[skills.Woodcutting] = s.SkillStates[skills.Woodcutting].AddXP(100)
	assert.True(t, w.IsSatisfied(s))
	assert.Equal(t, int64(0), w.EstimateTicks(s, r))
}

func TestSkillXpZeroRateIsInf(t *testing.T) {
	w := SkillXp{Skill: skills.Mining, N: 10}
	s := state.Empty(nil)
	assert.Equal(t, InfTicks, w.EstimateTicks(s, rates.Empty()))
}

func TestInventoryAtLeast(t *testing.T) {
	s := state.Empty(nil)
	logItem := items.Item{ID: logID, Name: "log", SellPrice: 5}
	var err error
	s.Inventory, err = s.Inventory.Add(logItem, 3)
	require.NoError(t, err)

	w := InventoryAtLeast{Item: logID, N: 5}
	assert.False(t, w.IsSatisfied(s))
	assert.Equal(t, int64(3), w.Progress(s))

	r := rates.Empty()
	r.ItemFlowsPerTick[logID] = 0.5
	assert.Equal(t, int64(4), w.EstimateTicks(s, r))
}

func TestInventoryFull(t *testing.T) {
	s := state.Empty(nil)
	w := InventoryFull{}
	assert.False(t, w.IsSatisfied(s))
	assert.Equal(t, s.Inventory.Capacity, w.Progress(s))
}

func TestEffectiveCredits(t *testing.T) {
	s := state.Empty(nil)
	s.GP = 100
	logItem := items.Item{ID: logID, Name: "log", SellPrice: 10}
	var err error
	s.Inventory, err = s.Inventory.Add(logItem, 5)
	require.NoError(t, err)

	w := EffectiveCredits{N: 200}
	assert.False(t, w.IsSatisfied(s))
	assert.Equal(t, int64(150), w.current(s))

	r := rates.Empty()
	r.DirectGPPerTick = 5
	assert.Equal(t, int64(10), w.EstimateTicks(s, r))
}

func TestAnyOfTakesTheMinimum(t *testing.T) {
	a := SkillXp{Skill: skills.Woodcutting, N: 100}
	b := SkillXp{Skill: skills.Mining, N: 10}
	w := AnyOf{Children: []WaitFor{a, b}}

	s := state.Empty(nil)
	r := rates.Empty()
	r.XPPerTickBySkill[skills.Woodcutting] = 1
	r.XPPerTickBySkill[skills.Mining] = 1

	assert.Equal(t, int64(10), w.EstimateTicks(s, r))
	assert.False(t, w.IsSatisfied(s))

	s.SkillStates[skills.Mining] = s.SkillStates[skills.Mining].AddXP(10)
	assert.True(t, w.IsSatisfied(s))
}

func TestOnGoalDelegatesToGoal(t *testing.T) {
	w := OnGoal{Goal: goal.ReachGp{N: 500}}
	s := state.Empty(nil)
	assert.False(t, w.IsSatisfied(s))

	r := rates.Empty()
	r.DirectGPPerTick = 10
	assert.Equal(t, int64(50), w.EstimateTicks(s, r))

	s.GP = 500
	assert.True(t, w.IsSatisfied(s))
	assert.Equal(t, int64(0), w.EstimateTicks(s, r))
}
