package engine

import (
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

const noEvent int64 = -1

// ConsumeTicks drives builder's working state through up to ticks 100ms
// quanta: one foreground activity plus every background subsystem.
// Rewards and state transitions fire atomically at each computed
// breakpoint; see design doc Section 4.3 for the control-flow contract
// this implements.
func ConsumeTicks(b *state.StateUpdateBuilder, ticks int64, bundle *registry.Bundle, r rng.Rng) {
	ConsumeTicksUntil(b, ticks, bundle, r, nil)
}

// ConsumeTicksUntil is ConsumeTicks with an early-exit predicate
// evaluated after every breakpoint; it returns as soon as stop reports
// true or the tick budget is exhausted, whichever comes first.
func ConsumeTicksUntil(b *state.StateUpdateBuilder, ticks int64, bundle *registry.Bundle, r rng.Rng, stop func(state.GlobalState) bool) {
	for ticks > 0 {
		if isIdle(b.State()) {
			return
		}

		dt := nextBreakpoint(b.State(), ticks)
		if dt <= 0 {
			dt = ticks
		}

		advanceBackground(b, dt, bundle, r)
		ticks -= dt

		if completeForegroundIfReady(b, bundle, r) {
			// Reset handled inside completeForegroundIfReady.
		}

		if b.State().Health.IsDead() {
			b.SetActiveActivity(nil)
			b.HealPlayerToFull()
		}

		if stop != nil && stop(b.State()) {
			return
		}
	}
}

func isIdle(g state.GlobalState) bool {
	if g.ActiveActivity != nil {
		return false
	}
	for _, as := range g.ActionStates {
		if as.Mining != nil && (as.Mining.HPLost > 0 || as.Mining.Depleted) {
			return false
		}
	}
	for _, plot := range g.Farming.Plots {
		if plot.IsPlanted() && !plot.IsReady() {
			return false
		}
	}
	for _, area := range g.Cooking.Areas {
		if !area.ActionID.IsZero() && area.TotalTicks > 0 {
			return false
		}
	}
	if g.Stunned.IsStunned() {
		return false
	}
	return true
}

// nextBreakpoint computes the minimum of: remaining budget and every
// subsystem's next-event distance (design doc Section 4.3 step 2a).
func nextBreakpoint(g state.GlobalState, remaining int64) int64 {
	best := remaining

	take := func(candidate int64) {
		if candidate >= 0 && candidate < best {
			best = candidate
		}
	}

	if g.Stunned.IsStunned() {
		take(g.Stunned.TicksRemaining)
	}

	for _, as := range g.ActionStates {
		if as.Mining == nil {
			continue
		}
		if as.Mining.Depleted {
			take(as.Mining.RespawnTicksRemaining)
		} else if as.Mining.HPLost > 0 {
			take(as.Mining.RegenTicksRemaining)
		}
	}

	for _, plot := range g.Farming.Plots {
		if plot.IsPlanted() && plot.GrowthTicksRemaining != nil && *plot.GrowthTicksRemaining > 0 {
			take(*plot.GrowthTicksRemaining)
		}
	}

	foregroundArea, inCookingForeground := foregroundCookingArea(g)
	for i, area := range g.Cooking.Areas {
		if inCookingForeground && state.CookingAreaID(i) == foregroundArea {
			continue
		}
		if area.ActionID.IsZero() || area.TotalTicks == 0 {
			continue
		}
		remainingTicks := (area.TotalTicks-area.ProgressTicks)*passiveCookingSlowdown - area.PassiveRemainder
		take(remainingTicks)
	}

	if !g.Stunned.IsStunned() && g.ActiveActivity != nil {
		switch g.ActiveActivity.Kind {
		case state.ActivitySkill:
			take(g.ActiveActivity.TicksUntilComplete())
		case state.ActivityCombat:
			p := g.ActiveActivity.Progress
			if p.SpawnTicksRemaining != nil {
				take(*p.SpawnTicksRemaining)
			} else {
				take(p.PlayerAttackTicksRemaining)
				take(p.MonsterAttackTicksRemaining)
			}
		}
	}

	if best < 1 {
		best = 1
	}
	return best
}

func foregroundCookingArea(g state.GlobalState) (state.CookingAreaID, bool) {
	if g.ActiveActivity == nil || g.ActiveActivity.Kind != state.ActivitySkill {
		return 0, false
	}
	if g.ActiveActivity.Skill != skills.Cooking {
		return 0, false
	}
	action, ok := g.Registries.Actions[g.ActiveActivity.ActionID]
	if !ok {
		return 0, false
	}
	for i, area := range g.Cooking.Areas {
		if area.ActionID == action.ID {
			return state.CookingAreaID(i), true
		}
	}
	return 0, false
}

// advanceBackground advances every background ticker by dt, in the
// decided order: regen, respawn (both inside TickMiningNodes), crop
// growth, stun decay, combat-enemy (inside TickCombat, ahead of the
// player's own swing), then conditional-modifier decay last since it
// affects only future resolution, not this tick's outcomes.
func advanceBackground(b *state.StateUpdateBuilder, dt int64, bundle *registry.Bundle, r rng.Rng) {
	TickMiningNodes(b, dt, bundle)
	TickFarming(b, dt)
	wasStunned := b.State().Stunned.IsStunned()
	b.TickStun(dt)

	activity := b.State().ActiveActivity
	if activity != nil && activity.Kind == state.ActivityCombat {
		if monster, ok := monsterForContext(b.State(), activity.Context, bundle); ok {
			TickCombat(b, monster, dt, r)
		}
	} else if area, ok := foregroundCookingArea(b.State()); ok {
		TickPassiveCookingAreas(b, area, dt, bundle, r)
	} else {
		TickPassiveCookingAreas(b, state.CookingAreaID(state.NumCookingAreas), dt, bundle, r)
	}

	if !wasStunned {
		advanceForegroundProgress(b, dt)
	}
	b.TickConditionalModifiers(dt)
}

// advanceForegroundProgress advances a foreground skill activity's
// progress_ticks by dt — the "foreground" step of the decided ordering,
// applied after every background ticker. It is a no-op while stunned
// (spec.md §4.3: "foreground activity's progress_ticks does not
// advance") and for combat, whose progress is driven entirely by
// TickCombat's attack countdowns.
func advanceForegroundProgress(b *state.StateUpdateBuilder, dt int64) {
	g := b.State()
	if g.Stunned.IsStunned() {
		return
	}
	if g.ActiveActivity == nil || g.ActiveActivity.Kind != state.ActivitySkill {
		return
	}
	advanced := g.ActiveActivity.WithProgress(dt)
	b.SetActiveActivity(&advanced)
}

func monsterForContext(g state.GlobalState, ctx state.CombatContext, bundle *registry.Bundle) (registry.Monster, bool) {
	m, ok := bundle.Monsters[ctx.CurrentMonsterID()]
	return m, ok
}

// completeForegroundIfReady fires the foreground completion handler
// when a skill activity's progress has filled. Combat completions are
// resolved inside TickCombat itself (there is no uniform total-ticks
// countdown for a fight), so this only ever dispatches skill activities.
func completeForegroundIfReady(b *state.StateUpdateBuilder, bundle *registry.Bundle, r rng.Rng) bool {
	activity := b.State().ActiveActivity
	if activity == nil || activity.Kind != state.ActivitySkill {
		return false
	}
	if b.State().Stunned.IsStunned() {
		return false
	}

	if !activity.IsComplete() {
		return false
	}

	action, ok := bundle.Actions[activity.ActionID]
	if !ok {
		b.SetActiveActivity(nil)
		return true
	}

	switch {
	case activity.Skill == skills.Cooking:
		area, found := foregroundCookingArea(b.State())
		if !found {
			b.SetActiveActivity(nil)
			return true
		}
		CompleteCookingForeground(b, area, action, r)
	case activity.Skill == skills.Firemaking:
		CompleteFiremaking(b, action, r)
	default:
		CompleteAction(b, action, r)
	}

	if next := b.State().ActiveActivity; next != nil && next.Kind == state.ActivitySkill && next.ActionID == action.ID {
		if action.Kind == registry.ActionConsumer && !hasInputs(b.State(), action, 1) {
			b.SetActiveActivity(nil)
			return true
		}
		restarted := next.Reset()
		b.SetActiveActivity(&restarted)
	}
	return true
}
