package engine

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

const passiveCookingSlowdown = 5

// AssignCookingArea assigns action to area without starting it as the
// foreground activity — used to keep a passive area cooking something
// while the player's foreground action is elsewhere. The recipe id is
// stored for reference; selection among an action's outputs is handled
// at completion time.
func AssignCookingArea(b *state.StateUpdateBuilder, area state.CookingAreaID, action registry.Action, recipe *ids.Id) {
	b.SetCookingArea(area, state.CookingAreaState{
		ActionID:       action.ID,
		SelectedRecipe: recipe,
		TotalTicks:     action.BaseDurationTicks,
	})
}

// StartForegroundCooking begins cooking action in the foreground at
// area, clearing that area's prior progress (fresh assignment) but
// leaving the other two areas' passive progress untouched.
func StartForegroundCooking(b *state.StateUpdateBuilder, area state.CookingAreaID, action registry.Action, recipe *ids.Id) error {
	if !hasInputs(b.State(), action, 1) {
		return ErrInsufficientInputs
	}
	if err := StartAction(b, action, recipe); err != nil {
		return err
	}
	b.SetCookingArea(area, state.CookingAreaState{
		ActionID:       action.ID,
		SelectedRecipe: recipe,
		TotalTicks:     b.State().ActiveActivity.TotalTicks,
	})
	return nil
}

// CompleteCookingForeground fires when the foreground cooking activity's
// progress fills: full XP and mastery XP, per design doc Section 4.4.
func CompleteCookingForeground(b *state.StateUpdateBuilder, area state.CookingAreaID, action registry.Action, r rng.Rng) {
	completeCookingRoll(b, action, r, false)
	as := b.State().Cooking.Areas[area]
	as.ProgressTicks = 0
	b.SetCookingArea(area, as)
}

// TickPassiveCookingAreas advances the two non-foreground cooking areas
// by dt real ticks, applied at 1/5 rate via an integer remainder so no
// fractional progress leaks between breakpoints. Passive completions
// grant no XP or mastery, per design doc Section 4.4.
func TickPassiveCookingAreas(b *state.StateUpdateBuilder, foreground state.CookingAreaID, dt int64, bundle *registry.Bundle, r rng.Rng) {
	for area := state.CookingAreaID(0); int(area) < state.NumCookingAreas; area++ {
		if area == foreground {
			continue
		}
		as := b.State().Cooking.Areas[area]
		if as.ActionID.IsZero() || as.TotalTicks == 0 {
			continue
		}
		as.PassiveRemainder += dt
		wholeTicks := as.PassiveRemainder / passiveCookingSlowdown
		as.PassiveRemainder -= wholeTicks * passiveCookingSlowdown
		as.ProgressTicks += wholeTicks
		for as.ProgressTicks >= as.TotalTicks {
			as.ProgressTicks -= as.TotalTicks
			if action, ok := bundle.Actions[as.ActionID]; ok {
				completeCookingRoll(b, action, r, true)
			}
		}
		b.SetCookingArea(area, as)
	}
}

// ClearPassiveCookingProgress wipes progress (but not assignment) in
// every area except keep, per "switching away from cooking clears all
// passive area progress but preserves the assigned recipes."
func ClearPassiveCookingProgress(b *state.StateUpdateBuilder, keep state.CookingAreaID) {
	for area := state.CookingAreaID(0); int(area) < state.NumCookingAreas; area++ {
		if area == keep {
			continue
		}
		as := b.State().Cooking.Areas[area]
		as.ProgressTicks = 0
		as.PassiveRemainder = 0
		b.SetCookingArea(area, as)
	}
}

func completeCookingRoll(b *state.StateUpdateBuilder, action registry.Action, r rng.Rng, passive bool) {
	g := b.State()
	masteryLevel := skills.State{XP: g.ActionState(action.ID).MasteryXP}.Level()

	for _, in := range action.Inputs {
		if err := b.RemoveItem(in.Item, in.MinQty); err != nil {
			if !passive {
				b.SetActiveActivity(nil)
			}
			return
		}
	}

	success := rng.RollCookingSuccess(r, masteryLevel)
	xp := action.SkillXP
	if !success {
		xp = 1
	}
	stored := true
	for _, out := range action.Outputs {
		if item, ok := g.Registries.Items[out.Item]; ok && success {
			qty := rng.RollUniformQuantity(r, out.MinQty, out.MaxQty)
			if !b.AddItem(item, qty) {
				stored = false
			}
		}
	}
	b.AddSkillXP(skills.Cooking, xp)
	if !passive {
		cap := masteryPoolCap(g, skills.Cooking)
		b.AddMasteryXP(action.ID, skills.Cooking, action.MasteryXPBase, cap)
	}
	if !passive && !stored {
		b.SetActiveActivity(nil)
	}
}
