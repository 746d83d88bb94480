package engine

import (
	"fmt"
	"math"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/modifiers"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// StartAction validates and begins a foreground skill activity. It never
// rolls duration at completion time — only once, at start, per design
// doc Section 4.4 ("roll duration once per action start").
func StartAction(b *state.StateUpdateBuilder, action registry.Action, recipe *ids.Id) error {
	g := b.State()
	if g.Stunned.IsStunned() {
		return ErrStunned
	}
	if g.SkillState(action.Skill).Level() < action.LevelRequirement {
		return ErrLevelTooLow
	}
	if action.Kind == registry.ActionConsumer {
		if !hasInputs(g, action, 1) {
			return fmt.Errorf("producer: start %s: %w", action.ID, ErrInsufficientInputs)
		}
	}

	anchor := modifiers.Anchor{Skill: action.Skill, ActionID: action.ID, CategoryID: action.CategoryID, Target: modifiers.TargetPlayer}
	resolved := ResolveFor(g, anchor)
	totalTicks := rng.RollDuration(action.BaseDurationTicks, resolved.SkillIntervalPct(), resolved.FlatSkillIntervalMs())

	b.SetActiveActivity(statePtr(state.NewSkillActivity(action.Skill, action.ID, totalTicks, recipe)))
	return nil
}

func hasInputs(g state.GlobalState, action registry.Action, multiplier int64) bool {
	for _, in := range action.Inputs {
		if g.Inventory.CountOf(in.Item) < in.MinQty*multiplier {
			return false
		}
	}
	return true
}

// CompleteAction fires when a producer or consumer action's foreground
// progress fills. It dispatches the skill-specific twist (thieving
// stealth, mining node damage) and otherwise follows the generic
// producer contract of design doc Section 4.4.
func CompleteAction(b *state.StateUpdateBuilder, action registry.Action, r rng.Rng) {
	switch action.Skill {
	case skills.Thieving:
		completeThieving(b, action, r)
		return
	case skills.Mining:
		completeMining(b, action, r)
		return
	}
	completeGenericProducer(b, action, r, false)
}

// completeGenericProducer applies the shared reward pipeline: consume
// declared inputs, roll outputs with doubling, roll skill-level drops,
// roll a mastery token, and grant XP. passive disables mastery XP.
func completeGenericProducer(b *state.StateUpdateBuilder, action registry.Action, r rng.Rng, passive bool) {
	g := b.State()
	anchor := modifiers.Anchor{Skill: action.Skill, ActionID: action.ID, CategoryID: action.CategoryID, Target: modifiers.TargetPlayer}
	resolved := ResolveFor(g, anchor)

	for _, in := range action.Inputs {
		if err := b.RemoveItem(in.Item, in.MinQty); err != nil {
			b.SetActiveActivity(nil)
			return
		}
	}

	stored := true
	doubled := rng.RollDoubling(r, resolved.DoublingChancePct())
	for _, out := range action.Outputs {
		qty := rng.RollUniformQuantity(r, out.MinQty, out.MaxQty)
		if doubled {
			qty *= 2
		}
		item, ok := g.Registries.Items[out.Item]
		if !ok {
			continue
		}
		if !b.AddItem(item, qty) {
			stored = false
		}
	}

	if !b.AddItemsByID(rng.RollDrops(r, action.Drops)) {
		stored = false
	}
	rollMasteryToken(b, g, action, r)

	skillXP := scalePct(action.SkillXP, resolved.SkillXPPct())
	b.AddSkillXP(action.Skill, skillXP)
	if !passive {
		cap := masteryPoolCap(g, action.Skill)
		b.AddMasteryXP(action.ID, action.Skill, action.MasteryXPBase, cap)
	}
	if !stored {
		b.SetActiveActivity(nil)
	}
}

func completeThieving(b *state.StateUpdateBuilder, action registry.Action, r rng.Rng) {
	g := b.State()
	level := g.SkillState(skills.Thieving).Level()
	masteryLevel := skills.State{XP: g.ActionState(action.ID).MasteryXP}.Level()

	if !rng.RollThievingSuccess(r, level, masteryLevel, action.NPCPerception) {
		b.DamagePlayer(11)
		b.Stun(30)
		b.SetActiveActivity(nil)
		return
	}
	completeGenericProducer(b, action, r, false)
}

func completeMining(b *state.StateUpdateBuilder, action registry.Action, r rng.Rng) {
	completeGenericProducer(b, action, r, false)

	maxHP := action.NodeMaxHP
	if maxHP <= 0 {
		maxHP = 1
	}
	b.MutateActionState(action.ID, func(as state.ActionState) state.ActionState {
		mining := as.Mining
		if mining == nil {
			mining = &state.MiningNodeState{}
		}
		if mining.HPLost == 0 {
			mining.RegenTicksRemaining = action.NodeRegenTicks
		}
		mining.HPLost++
		if mining.HPLost >= maxHP {
			mining.Depleted = true
			mining.RespawnTicksRemaining = action.NodeRespawnTicks
			mining.HPLost = 0
			mining.RegenTicksRemaining = 0
		}
		as.Mining = mining
		return as
	})
	if node := b.State().ActionState(action.ID).Mining; node != nil && node.Depleted {
		b.SetActiveActivity(nil)
	}
}

func rollMasteryToken(b *state.StateUpdateBuilder, g state.GlobalState, action registry.Action, r rng.Rng) {
	token, ok := g.Registries.MasteryTokens[action.Skill]
	if !ok {
		return
	}
	unlocked := g.Registries.UnlockedActionCount(action.Skill, g.SkillState(action.Skill).Level())
	rate := float64(unlocked) / 18500
	if rate > 1 {
		rate = 1
	}
	if r.NextDouble() < rate {
		if item, ok := g.Registries.Items[token.Item]; ok {
			b.AddItem(item, 1)
		}
	}
}

func scalePct(base int64, pct float64) int64 {
	return int64(math.Round(float64(base) * (1 + pct/100)))
}

func masteryPoolCap(g state.GlobalState, skill skills.Skill) int64 {
	var sum int64
	for _, a := range g.Registries.Actions {
		if a.Skill != skill {
			continue
		}
		sum += a.MasteryXPBase * 99 // rough 99-mastery total per action, see design doc notes
	}
	return skills.MaxMasteryPoolXP(sum)
}

func statePtr(a state.ActiveActivity) *state.ActiveActivity { return &a }
