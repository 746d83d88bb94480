package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

var (
	logAction = registry.Action{
		ID:                ids.New("test", "chop_logs"),
		Skill:             skills.Woodcutting,
		BaseDurationTicks: 30,
		Outputs:           []registry.ItemQuantity{{Item: ids.New("test", "log"), MinQty: 1, MaxQty: 1}},
		SkillXP:           25,
		MasteryXPBase:     10,
	}
	bundle = &registry.Bundle{Actions: map[ids.Id]registry.Action{logAction.ID: logAction}}
)

func TestEstimateNoActivityIsEmpty(t *testing.T) {
	s := state.Empty(bundle)
	r := Estimate(s, bundle)
	assert.Equal(t, 0.0, r.DirectGPPerTick)
	assert.Empty(t, r.ItemFlowsPerTick)
}

func TestForActionUnderFixedDuration(t *testing.T) {
	s := state.Empty(bundle)
	r := ForAction(s, logAction)

	assert.InDelta(t, 1.0/30.0, r.ItemFlowsPerTick[logAction.Outputs[0].Item], 0.0001)
	assert.InDelta(t, 25.0/30.0, r.XPPerTickBySkill[skills.Woodcutting], 0.0001)
	assert.InDelta(t, 10.0/30.0, r.MasteryXPPerTick, 0.0001)
}

func TestEstimateSkillMatchesForActionUnderActiveActivity(t *testing.T) {
	s := state.Empty(bundle)
	s.ActiveActivity = &state.ActiveActivity{
		Kind:       state.ActivitySkill,
		ActionID:   logAction.ID,
		TotalTicks: 30,
	}

	want := ForAction(s, logAction)
	got := Estimate(s, bundle)
	assert.InDelta(t, want.XPPerTickBySkill[skills.Woodcutting], got.XPPerTickBySkill[skills.Woodcutting], 0.0001)
}

func TestRateForActionConsumesInputs(t *testing.T) {
	inputItem := ids.New("test", "tinderbox")
	consuming := registry.Action{
		ID:                ids.New("test", "light_fire"),
		Skill:             skills.Firemaking,
		BaseDurationTicks: 10,
		Inputs:            []registry.ItemQuantity{{Item: inputItem, MinQty: 1, MaxQty: 1}},
		SkillXP:           5,
	}
	s := state.Empty(bundle)
	r := ForAction(s, consuming)
	assert.Less(t, r.ItemFlowsPerTick[inputItem], 0.0)
}
