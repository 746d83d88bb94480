// Package items provides the item data model, item stacks, and the
// slotted inventory the engine draws from and deposits into.
// See spec.md §3 (Item, ItemStack, Inventory).
package items

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/modifiers"
)

// EquipSlot enumerates the slots an item may be equipped into.
type EquipSlot uint8

const (
	SlotWeapon EquipSlot = iota
	SlotShield
	SlotHelmet
	SlotBody
	SlotLegs
	SlotGloves
	SlotBoots
	SlotCape
	SlotAmulet
	SlotRing
	SlotFood
)

// Item is an immutable registry record. Items are never mutated after
// load — callers that need per-player state track it in ItemStack
// counts or in GlobalState, never on the Item itself.
type Item struct {
	ID             ids.Id      `json:"id"`
	Name           string      `json:"name"`
	SellPrice      int64       `json:"sellPrice"`
	CompostValue   *int64      `json:"compostValue,omitempty"`
	HarvestBonus   *float64    `json:"harvestBonus,omitempty"`
	ValidEquipSlots []EquipSlot `json:"validEquipSlots,omitempty"`
	Stackable      bool        `json:"stackable"`
	MaxStackSize   int64       `json:"maxStackSize,omitempty"` // 0 == unbounded
	Modifier       modifiers.Modifier `json:"modifier,omitempty"` // equipment modifier entries, empty for non-equippable items
}

// IsEquippable reports whether the item may occupy any equipment slot.
func (it Item) IsEquippable() bool {
	return len(it.ValidEquipSlots) > 0
}

// FitsSlot reports whether the item may be equipped into slot s.
func (it Item) FitsSlot(s EquipSlot) bool {
	for _, valid := range it.ValidEquipSlots {
		if valid == s {
			return true
		}
	}
	return false
}
