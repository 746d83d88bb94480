package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/idlecore/internal/candidates"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/skills"
)

func TestPlanCompressMergesAdjacentMacros(t *testing.T) {
	actionID := ids.New("test", "chop_logs")
	macro := candidates.MacroCandidate{Skill: skills.Woodcutting, ActionID: actionID}

	p := &Plan{Steps: []PlanStep{
		{Kind: StepMacro, Ticks: 100, Macro: macro},
		{Kind: StepMacro, Ticks: 50, Macro: macro},
		{Kind: StepInteraction, Interaction: Interaction{Kind: InteractionBuyShopItem, ShopItemID: ids.New("test", "axe")}},
	}}

	p.Compress()

	assert.Len(t, p.Steps, 2)
	assert.Equal(t, int64(150), p.Steps[0].Ticks)
	assert.Equal(t, StepInteraction, p.Steps[1].Kind)
}

func TestPlanCompressDoesNotMergeDifferentActions(t *testing.T) {
	p := &Plan{Steps: []PlanStep{
		{Kind: StepMacro, Ticks: 100, Macro: candidates.MacroCandidate{ActionID: ids.New("test", "chop_logs")}},
		{Kind: StepMacro, Ticks: 50, Macro: candidates.MacroCandidate{ActionID: ids.New("test", "mine_ore")}},
	}}

	p.Compress()
	assert.Len(t, p.Steps, 2)
}

func TestPrettyPrintIncludesDurationAndSteps(t *testing.T) {
	p := &Plan{
		Steps: []PlanStep{
			{Kind: StepInteraction, Interaction: Interaction{Kind: InteractionSwitchActivity, ActionID: ids.New("test", "chop_logs")}},
		},
		TotalTicks:       600,
		InteractionCount: 1,
	}

	out := p.PrettyPrint()
	assert.Contains(t, out, "1m 0s")
	assert.Contains(t, out, "switch to")
}
