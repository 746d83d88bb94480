package state

import (
	"log/slog"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// StateUpdateBuilder is a short-lived, single-use mutator: it owns a
// mutable working copy of a GlobalState (produced via GlobalState.Clone),
// applies a sequence of domain operations against it, and at the end
// hands back an immutable GlobalState plus the Changes that record what
// happened. Engine subsystems never mutate a GlobalState directly; they
// always go through a builder. See spec.md §9.
type StateUpdateBuilder struct {
	working GlobalState
	changes Changes
}

// NewBuilder starts a builder pass over a clone of base.
func NewBuilder(base GlobalState) *StateUpdateBuilder {
	return &StateUpdateBuilder{working: base.Clone()}
}

// Finish returns the accumulated GlobalState and Changes, ending the pass.
func (b *StateUpdateBuilder) Finish() (GlobalState, Changes) {
	return b.working, b.changes
}

// State exposes a read-only view of the working state for callers that
// need to branch on current values before deciding the next operation.
func (b *StateUpdateBuilder) State() GlobalState {
	return b.working
}

// AddItem deposits n units of item into the inventory. On success it
// records an InventoryChange and returns true; on ErrInventoryFull it
// records a DroppedItem instead, leaves the inventory untouched, and
// returns false, matching spec.md §4.3's "route to dropped_items, clear
// the activity" backpressure contract.
func (b *StateUpdateBuilder) AddItem(item items.Item, n int64) bool {
	if n <= 0 {
		return true
	}
	inv, err := b.working.Inventory.Add(item, n)
	if err != nil {
		slog.Warn("item dropped, inventory full", "item", item.ID, "qty", n, "error", err)
		b.changes.DroppedItems = append(b.changes.DroppedItems, DroppedItem{Item: item.ID, Qty: n})
		return false
	}
	b.working.Inventory = inv
	b.changes.InventoryChanges = append(b.changes.InventoryChanges, InventoryChange{Item: item.ID, Delta: n})
	return true
}

// AddItemsByID resolves each rolled id through the registry and deposits
// it, for use with rng.RollDrops results. Returns false if any item
// could not be stored.
func (b *StateUpdateBuilder) AddItemsByID(rolled map[ids.Id]int64) bool {
	stored := true
	for id, qty := range rolled {
		item, ok := b.working.Registries.Items[id]
		if !ok {
			continue
		}
		if !b.AddItem(item, qty) {
			stored = false
		}
	}
	return stored
}

// RemoveItem withdraws n units of id, recording a negative InventoryChange.
// Returns the underlying error unchanged (e.g. ErrNotEnoughItems) without
// recording a change, leaving the inventory untouched.
func (b *StateUpdateBuilder) RemoveItem(id ids.Id, n int64) error {
	if n <= 0 {
		return nil
	}
	inv, err := b.working.Inventory.Remove(id, n)
	if err != nil {
		return err
	}
	b.working.Inventory = inv
	b.changes.InventoryChanges = append(b.changes.InventoryChanges, InventoryChange{Item: id, Delta: -n})
	return nil
}

// AddSkillXP adds xp to skill, recording the XP change and, when the
// level crosses a threshold, a SkillLevelChange.
func (b *StateUpdateBuilder) AddSkillXP(skill skills.Skill, xpAmount int64) {
	if xpAmount <= 0 {
		return
	}
	before := b.working.SkillStates[skill]
	oldLevel := before.Level()
	after := before.AddXP(xpAmount)
	b.working.SkillStates[skill] = after
	b.changes.SkillXPChanges = append(b.changes.SkillXPChanges, SkillXPChange{Skill: skill, XP: xpAmount})
	if newLevel := after.Level(); newLevel != oldLevel {
		b.changes.SkillLevelChanges = append(b.changes.SkillLevelChanges, SkillLevelChange{
			Skill: skill, OldLevel: oldLevel, NewLevel: newLevel,
		})
	}
}

// AddMasteryXP adds mastery XP to action's ActionState and, separately,
// to the skill's mastery pool (capped at poolCap).
func (b *StateUpdateBuilder) AddMasteryXP(action ids.Id, skill skills.Skill, xpAmount, poolCap int64) {
	if xpAmount <= 0 {
		return
	}
	as := b.working.ActionStates[action]
	b.working.ActionStates[action] = as.AddMasteryXP(xpAmount)

	pool := b.working.SkillStates[skill]
	b.working.SkillStates[skill] = pool.AddMasteryPoolXP(xpAmount, poolCap)
}

// AddMasteryPoolXP adds xpAmount directly to skill's mastery pool
// (capped at poolCap) without touching any action's mastery XP — used
// by mastery token claims, which feed the pool only.
func (b *StateUpdateBuilder) AddMasteryPoolXP(skill skills.Skill, xpAmount, poolCap int64) {
	pool := b.working.SkillStates[skill]
	b.working.SkillStates[skill] = pool.AddMasteryPoolXP(xpAmount, poolCap)
}

// AddGP adds n GP (never negative) and records a CurrencyGain if n > 0.
// Spending GP should go through SpendGP instead.
func (b *StateUpdateBuilder) AddGP(n int64) {
	if n <= 0 {
		return
	}
	b.working.GP += n
	b.changes.CurrenciesGained = append(b.changes.CurrenciesGained, CurrencyGain{Currency: "gp", Amount: n})
}

// SpendGP withdraws n GP, failing without mutation if insufficient.
func (b *StateUpdateBuilder) SpendGP(n int64) bool {
	if n <= 0 {
		return true
	}
	if b.working.GP < n {
		return false
	}
	b.working.GP -= n
	return true
}

// AddCurrency adds n of currency, recording a CurrencyGain.
func (b *StateUpdateBuilder) AddCurrency(currency Currency, n int64) {
	if n <= 0 {
		return
	}
	b.working.Currencies[currency] += n
	b.changes.CurrenciesGained = append(b.changes.CurrenciesGained, CurrencyGain{Currency: currency, Amount: n})
}

// SpendCurrency withdraws n of currency, failing without mutation if
// insufficient.
func (b *StateUpdateBuilder) SpendCurrency(currency Currency, n int64) bool {
	if n <= 0 {
		return true
	}
	if b.working.Currencies[currency] < n {
		return false
	}
	b.working.Currencies[currency] -= n
	return true
}

// SetActiveActivity replaces the foreground activity (nil clears it).
func (b *StateUpdateBuilder) SetActiveActivity(a *ActiveActivity) {
	b.working.ActiveActivity = a
}

// RecordShopPurchase increments entry's purchase count, which both gates
// RepeatLimit and feeds the entry's modifier contribution at its next
// multiplicity (see engine.gatherContributions, source 1).
func (b *StateUpdateBuilder) RecordShopPurchase(entry ids.Id) {
	b.working.Shop.PurchaseCounts[entry]++
}

// SetSlayerTask replaces the standalone slayer task entity (nil clears it).
func (b *StateUpdateBuilder) SetSlayerTask(t *SlayerTask) {
	b.working.SlayerTask = t
}

// RecordSlayerTaskCompletion increments the lifetime completion counter
// for category, used by the "never repeat a category twice in a row"
// task-roll rule.
func (b *StateUpdateBuilder) RecordSlayerTaskCompletion(category ids.Id) {
	b.working.SlayerTaskCompletions[category]++
}

// MutateActionState applies fn to action's current ActionState and
// stores the result. Every subsystem that tracks per-action background
// state (mining node HP, combat progress) goes through this.
func (b *StateUpdateBuilder) MutateActionState(action ids.Id, fn func(ActionState) ActionState) {
	b.working.ActionStates[action] = fn(b.working.ActionStates[action])
}

// DamagePlayer subtracts n HP (floored at 0).
func (b *StateUpdateBuilder) DamagePlayer(n int64) {
	h := b.working.Health
	h.Current -= n
	if h.Current < 0 {
		h.Current = 0
	}
	b.working.Health = h
}

// HealPlayerToFull restores current HP to max, used on respawn after death.
func (b *StateUpdateBuilder) HealPlayerToFull() {
	b.working.Health.Current = b.working.Health.Max
}

// Stun sets the stun countdown to ticks.
func (b *StateUpdateBuilder) Stun(ticks int64) {
	b.working.Stunned = StunState{TicksRemaining: ticks}
}

// TickStun decrements the stun countdown by dt, floored at 0.
func (b *StateUpdateBuilder) TickStun(dt int64) {
	remaining := b.working.Stunned.TicksRemaining - dt
	if remaining < 0 {
		remaining = 0
	}
	b.working.Stunned.TicksRemaining = remaining
}

// SetCookingArea replaces one cooking area's state.
func (b *StateUpdateBuilder) SetCookingArea(area CookingAreaID, a CookingAreaState) {
	b.working.Cooking.Areas[area] = a
}

// SetPlot replaces one farming plot's state.
func (b *StateUpdateBuilder) SetPlot(plot ids.Id, p PlotState) {
	b.working.Farming.Plots[plot] = p
}

// SetAgility replaces the entire agility course state.
func (b *StateUpdateBuilder) SetAgility(a AgilityState) {
	b.working.Agility = a
}

// SetAstrology replaces the entire astrology state.
func (b *StateUpdateBuilder) SetAstrology(a AstrologyState) {
	b.working.Astrology = a
}

// TickConditionalModifiers decrements every active conditional
// modifier's countdown by dt, dropping any that expire.
func (b *StateUpdateBuilder) TickConditionalModifiers(dt int64) {
	kept := b.working.ActiveConditionalModifiers[:0]
	for _, cm := range b.working.ActiveConditionalModifiers {
		cm.TicksRemaining -= dt
		if cm.TicksRemaining > 0 {
			kept = append(kept, cm)
		}
	}
	b.working.ActiveConditionalModifiers = kept
}

// Equip assigns item into its equipment slot.
func (b *StateUpdateBuilder) Equip(slot string, item ids.Id) {
	b.working.Equipment.Equipped[slot] = item
}

// SetFoodSlot sets or clears (nil) the active food item.
func (b *StateUpdateBuilder) SetFoodSlot(item *ids.Id) {
	b.working.Equipment.Food = item
}
