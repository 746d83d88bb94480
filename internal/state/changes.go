package state

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// InventoryChange records a net quantity delta for one item produced by
// a single builder pass (positive for gains, negative for losses).
type InventoryChange struct {
	Item  ids.Id
	Delta int64
}

// SkillXPChange records XP gained by one skill during a builder pass.
type SkillXPChange struct {
	Skill skills.Skill
	XP    int64
}

// SkillLevelChange records a skill crossing one or more level thresholds.
type SkillLevelChange struct {
	Skill    skills.Skill
	OldLevel int
	NewLevel int
}

// DroppedItem records a roll that produced an item but found the
// inventory full — it never reached Inventory and is reported separately
// so callers can surface "your inventory is full" feedback.
type DroppedItem struct {
	Item ids.Id
	Qty  int64
}

// CurrencyGain records a currency increase during a builder pass.
type CurrencyGain struct {
	Currency Currency
	Amount   int64
}

// Changes is the mutation log a StateUpdateBuilder emits alongside the
// new GlobalState: everything that happened during that pass, in the
// order it was recorded. See spec.md §9 ("every mutation is reported").
type Changes struct {
	InventoryChanges  []InventoryChange
	SkillXPChanges    []SkillXPChange
	SkillLevelChanges []SkillLevelChange
	DroppedItems      []DroppedItem
	CurrenciesGained  []CurrencyGain
}

// IsEmpty reports whether nothing changed during the pass.
func (c Changes) IsEmpty() bool {
	return len(c.InventoryChanges) == 0 && len(c.SkillXPChanges) == 0 &&
		len(c.SkillLevelChanges) == 0 && len(c.DroppedItems) == 0 &&
		len(c.CurrenciesGained) == 0
}

// Merge appends other's entries after c's, preserving order. Used when a
// tick advances through multiple breakpoints and each produces its own
// Changes that must be reported together.
func (c Changes) Merge(other Changes) Changes {
	c.InventoryChanges = append(c.InventoryChanges, other.InventoryChanges...)
	c.SkillXPChanges = append(c.SkillXPChanges, other.SkillXPChanges...)
	c.SkillLevelChanges = append(c.SkillLevelChanges, other.SkillLevelChanges...)
	c.DroppedItems = append(c.DroppedItems, other.DroppedItems...)
	c.CurrenciesGained = append(c.CurrenciesGained, other.CurrenciesGained...)
	return c
}
