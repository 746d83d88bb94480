package state

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/modifiers"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// ActiveConditionalModifier is a timed buff (potion, food) that contributes
// a Modifier while TicksRemaining is positive. It is consumed — decremented
// and eventually dropped — by the same tick pass that decrements stun and
// regen countdowns. See spec.md §4.1 source 7.
type ActiveConditionalModifier struct {
	SourceID       ids.Id             `json:"sourceId"`
	Modifier       modifiers.Modifier `json:"modifier"`
	TicksRemaining int64              `json:"ticksRemaining"`
}

// GlobalState is the complete, serializable snapshot of one player's
// simulation: inventory, every skill's progression, every action's
// mastery progress, the single foreground activity, currencies, and
// every subsystem's background state. It is a value type; every mutation
// flows through a StateUpdateBuilder, which returns a new GlobalState
// plus the Changes that produced it (spec.md §9 copy-on-write discipline).
//
// Registries is a borrowed, unserialized reference to the static data
// bundle this state was built against — never written to the wire.
type GlobalState struct {
	Inventory    items.Inventory
	SkillStates  [skills.NumSkills]skills.State
	ActionStates map[ids.Id]ActionState

	ActiveActivity *ActiveActivity

	GP         int64
	Currencies map[Currency]int64

	Shop       ShopState
	Health     HealthState
	Equipment  EquipmentState
	Stunned    StunState
	Cooking    CookingState
	Farming    FarmingState
	Agility    AgilityState
	Astrology  AstrologyState

	SlayerTask            *SlayerTask
	SlayerTaskCompletions map[ids.Id]int64 // category id -> lifetime completions

	ActiveConditionalModifiers []ActiveConditionalModifier

	Registries *registry.Bundle
}

// Empty builds a fresh GlobalState against registries: empty inventory,
// level-1 skills, starting health, no active task or activity.
func Empty(registries *registry.Bundle) GlobalState {
	return GlobalState{
		Inventory:             items.New(items.DefaultCapacity),
		ActionStates:          map[ids.Id]ActionState{},
		Currencies:            map[Currency]int64{},
		Shop:                  ShopState{PurchaseCounts: map[ids.Id]int64{}},
		Health:                HealthState{Current: 10, Max: 10},
		Equipment:             EquipmentState{Equipped: map[string]ids.Id{}},
		Farming:               FarmingState{Plots: map[ids.Id]PlotState{}},
		Agility:               AgilityState{PurchaseCounts: map[ids.Id]int64{}},
		Astrology:             AstrologyState{Purchases: map[ids.Id]int64{}},
		SlayerTaskCompletions: map[ids.Id]int64{},
		Registries:            registries,
	}
}

// ActionState looks up a (possibly absent) action progress record,
// returning the zero value when none exists yet.
func (g GlobalState) ActionState(action ids.Id) ActionState {
	return g.ActionStates[action]
}

// SkillState returns the progression record for skill.
func (g GlobalState) SkillState(skill skills.Skill) skills.State {
	return g.SkillStates[skill]
}

// IsBusy reports whether a foreground activity currently occupies the player.
func (g GlobalState) IsBusy() bool {
	return g.ActiveActivity != nil
}

// Clone makes a deep-enough copy for a StateUpdateBuilder to mutate
// without aliasing the receiver's maps and slices. Registries is shared
// by reference — it is never mutated.
func (g GlobalState) Clone() GlobalState {
	out := g
	out.ActionStates = cloneActionStates(g.ActionStates)
	out.Currencies = cloneInt64Map(g.Currencies)
	out.Shop.PurchaseCounts = cloneInt64IDMap(g.Shop.PurchaseCounts)
	out.Equipment.Equipped = cloneIDMap(g.Equipment.Equipped)
	out.Farming.Plots = clonePlots(g.Farming.Plots)
	out.Agility.PurchaseCounts = cloneInt64IDMap(g.Agility.PurchaseCounts)
	out.Agility.BuiltSlots = append([]ids.Id(nil), g.Agility.BuiltSlots...)
	out.Astrology.Purchases = cloneInt64IDMap(g.Astrology.Purchases)
	out.SlayerTaskCompletions = cloneInt64IDMap(g.SlayerTaskCompletions)
	out.ActiveConditionalModifiers = append([]ActiveConditionalModifier(nil), g.ActiveConditionalModifiers...)
	if g.ActiveActivity != nil {
		a := *g.ActiveActivity
		out.ActiveActivity = &a
	}
	if g.SlayerTask != nil {
		t := *g.SlayerTask
		out.SlayerTask = &t
	}
	return out
}

func cloneActionStates(m map[ids.Id]ActionState) map[ids.Id]ActionState {
	out := make(map[ids.Id]ActionState, len(m))
	for k, v := range m {
		if v.Mining != nil {
			mining := *v.Mining
			v.Mining = &mining
		}
		if v.Combat != nil {
			combat := *v.Combat
			v.Combat = &combat
		}
		out[k] = v
	}
	return out
}

func cloneInt64Map(m map[Currency]int64) map[Currency]int64 {
	out := make(map[Currency]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneInt64IDMap(m map[ids.Id]int64) map[ids.Id]int64 {
	out := make(map[ids.Id]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIDMap(m map[string]ids.Id) map[string]ids.Id {
	out := make(map[string]ids.Id, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func clonePlots(m map[ids.Id]PlotState) map[ids.Id]PlotState {
	out := make(map[ids.Id]PlotState, len(m))
	for k, v := range m {
		if v.GrowthTicksRemaining != nil {
			t := *v.GrowthTicksRemaining
			v.GrowthTicksRemaining = &t
		}
		if v.CropID != nil {
			c := *v.CropID
			v.CropID = &c
		}
		v.CompostApplied = append([]ids.Id(nil), v.CompostApplied...)
		out[k] = v
	}
	return out
}
