// Package rates estimates the player's current per-tick throughput:
// GP, item flows, and XP, under whatever activity currently occupies
// the foreground. It never mutates GlobalState and never consumes RNG
// — every figure is an expected value, used by WaitFor.EstimateTicks
// and the solver's admissible heuristic. See spec.md §4.5.
package rates

import (
	"math"

	"github.com/kestrelgames/idlecore/internal/droptable"
	"github.com/kestrelgames/idlecore/internal/engine"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/modifiers"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// Rates is the estimated throughput of the current foreground activity,
// expressed per single 100ms tick.
type Rates struct {
	DirectGPPerTick  float64
	ItemFlowsPerTick map[ids.Id]float64 // negative for consumed inputs
	XPPerTickBySkill map[skills.Skill]float64
	MasteryXPPerTick float64
	ItemTypesPerTick float64 // new distinct item types gained per tick, for InventoryThreshold/Full estimates
}

// Empty returns a Rates with no activity and therefore no throughput.
func Empty() Rates {
	return Rates{
		ItemFlowsPerTick: map[ids.Id]float64{},
		XPPerTickBySkill: map[skills.Skill]float64{},
	}
}

// Estimate computes g's current Rates. If no foreground activity is
// active it returns Empty(); skill activities and combat are estimated
// by separate, differently-shaped formulas (a skill action has a fixed
// roll duration, combat's "duration" is itself an expectation over
// accuracy and damage rolls).
func Estimate(g state.GlobalState, bundle *registry.Bundle) Rates {
	activity := g.ActiveActivity
	if activity == nil {
		return Empty()
	}
	switch activity.Kind {
	case state.ActivitySkill:
		return estimateSkill(g, bundle, *activity)
	case state.ActivityCombat:
		return estimateCombat(g, bundle, *activity)
	default:
		return Empty()
	}
}

func estimateSkill(g state.GlobalState, bundle *registry.Bundle, activity state.ActiveActivity) Rates {
	action, ok := bundle.Actions[activity.ActionID]
	if !ok || activity.TotalTicks <= 0 {
		return Empty()
	}
	return rateForAction(g, action, activity.TotalTicks)
}

// ForAction estimates action's Rates as if it were the foreground
// activity right now, without requiring it to actually be active. The
// duration is re-derived via rng.RollDuration, which — unlike the other
// rollers — consumes no RNG state and is therefore exactly reproducible
// from g's resolved modifiers alone. The solver's heuristic uses this to
// compare actions it has not yet committed to starting.
func ForAction(g state.GlobalState, action registry.Action) Rates {
	anchor := modifiers.Anchor{Skill: action.Skill, ActionID: action.ID, CategoryID: action.CategoryID, Target: modifiers.TargetPlayer}
	resolved := engine.ResolveFor(g, anchor)
	totalTicks := rng.RollDuration(action.BaseDurationTicks, resolved.SkillIntervalPct(), resolved.FlatSkillIntervalMs())
	return rateForAction(g, action, totalTicks)
}

func rateForAction(g state.GlobalState, action registry.Action, totalTicks int64) Rates {
	if totalTicks <= 0 {
		return Empty()
	}
	d := float64(totalTicks)

	anchor := modifiers.Anchor{Skill: action.Skill, ActionID: action.ID, CategoryID: action.CategoryID, Target: modifiers.TargetPlayer}
	resolved := engine.ResolveFor(g, anchor)
	doublingMult := 1 + resolved.DoublingChancePct()/100

	out := Empty()
	for _, in := range action.Inputs {
		out.ItemFlowsPerTick[in.Item] -= float64(in.MinQty) / d
	}
	for _, o := range action.Outputs {
		avgQty := float64(o.MinQty+o.MaxQty) / 2 * doublingMult
		out.ItemFlowsPerTick[o.Item] += avgQty / d
	}
	for item, expected := range droptable.ExpectedItems(action.Drops) {
		out.ItemFlowsPerTick[item] += expected / d
	}

	xpPerCompletion := float64(scalePct(action.SkillXP, resolved.SkillXPPct()))
	out.XPPerTickBySkill[action.Skill] = xpPerCompletion / d
	out.MasteryXPPerTick = float64(action.MasteryXPBase) / d
	out.ItemTypesPerTick = itemTypesPerTick(out.ItemFlowsPerTick, d)
	return out
}

// estimateCombat approximates a kill's expected duration from the same
// hit-chance/max-hit formulas engine.TickCombat rolls against, then
// spreads the kill's XP and drop rewards over that duration. It omits
// the slayer-task XP/currency bonus, which is conditional on task state
// the rate estimator has no visibility into.
func estimateCombat(g state.GlobalState, bundle *registry.Bundle, activity state.ActiveActivity) Rates {
	monster, ok := bundle.Monsters[activity.Context.CurrentMonsterID()]
	if !ok {
		return Empty()
	}

	attackLevel := g.SkillState(skills.Attack).Level()
	strengthLevel := g.SkillState(skills.Strength).Level()
	accuracy := (50 + float64(attackLevel)) / (50 + float64(attackLevel) + monster.Evasion)
	maxHit := 1 + float64(strengthLevel/3)
	expectedDamagePerAttack := accuracy * (1 + maxHit) / 2

	ticksToKill := float64(monster.MaxHP) / expectedDamagePerAttack * float64(engine.PlayerAttackIntervalTicks)
	if ticksToKill <= 0 {
		return Empty()
	}

	out := Empty()
	for skill, xp := range monster.XPRewards {
		out.XPPerTickBySkill[skill] = float64(xp) / ticksToKill
	}
	for item, expected := range droptable.ExpectedItems(monster.Drops) {
		out.ItemFlowsPerTick[item] = expected / ticksToKill
	}
	out.ItemTypesPerTick = itemTypesPerTick(out.ItemFlowsPerTick, 1)
	return out
}

func itemTypesPerTick(flows map[ids.Id]float64, _ float64) float64 {
	var total float64
	for _, f := range flows {
		if f > 0 {
			total += f
		}
	}
	if total > 1 {
		return 1 // at most one new slot per tick in expectation terms
	}
	return total
}

func scalePct(base int64, pct float64) int64 {
	return int64(math.Round(float64(base) * (1 + pct/100)))
}
