package items

import (
	"errors"
	"fmt"

	"github.com/kestrelgames/idlecore/internal/ids"
)

// ErrInventoryFull is returned when adding a new item would require a
// free slot and none remain. See spec.md §7.
var ErrInventoryFull = errors.New("items: inventory full")

// ErrNotEnoughItems is returned when removing more units than are present.
var ErrNotEnoughItems = errors.New("items: not enough of item in inventory")

// DefaultCapacity is the default number of inventory slots.
const DefaultCapacity = 20

// ItemStack pairs an item with a count. Count 0 is legal and represents
// a reserved, otherwise-empty slot.
type ItemStack struct {
	Item  Item  `json:"item"`
	Count int64 `json:"count"`
}

// Inventory is an ordered, fixed-capacity sequence of ItemStacks. Items
// of the same Id collapse into a single slot; used_slots never exceeds
// capacity; removing the last unit of a stack clears its slot.
//
// Inventory is a value type: every mutating method returns a new
// Inventory, leaving the receiver untouched, so GlobalState's
// copy-on-write discipline (spec.md §9) holds without extra bookkeeping.
type Inventory struct {
	Capacity int64       `json:"capacity"`
	Slots    []ItemStack `json:"slots"`
}

// New creates an empty inventory with the given capacity.
func New(capacity int64) Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return Inventory{Capacity: capacity, Slots: nil}
}

// UsedSlots returns the number of occupied slots.
func (inv Inventory) UsedSlots() int {
	return len(inv.Slots)
}

// FreeSlots returns the number of unoccupied slots.
func (inv Inventory) FreeSlots() int64 {
	return inv.Capacity - int64(len(inv.Slots))
}

// IsFull reports whether no free slot remains.
func (inv Inventory) IsFull() bool {
	return inv.FreeSlots() <= 0
}

func (inv Inventory) indexOf(id ids.Id) int {
	for i, s := range inv.Slots {
		if s.Item.ID == id {
			return i
		}
	}
	return -1
}

// CountOf returns the total count of id currently held.
func (inv Inventory) CountOf(id ids.Id) int64 {
	if i := inv.indexOf(id); i >= 0 {
		return inv.Slots[i].Count
	}
	return 0
}

// CountByID is an alias for CountOf matching spec.md's naming.
func (inv Inventory) CountByID(id ids.Id) int64 {
	return inv.CountOf(id)
}

// Add deposits n units of item, stacking onto an existing slot when
// present. If the item is not already held and no free slot remains, it
// returns ErrInventoryFull and the inventory is returned unchanged.
func (inv Inventory) Add(item Item, n int64) (Inventory, error) {
	if n <= 0 {
		return inv, nil
	}
	if i := inv.indexOf(item.ID); i >= 0 {
		out := inv.clone()
		out.Slots[i].Count += n
		return out, nil
	}
	if inv.IsFull() {
		return inv, fmt.Errorf("items: add %s x%d: %w", item.ID, n, ErrInventoryFull)
	}
	out := inv.clone()
	out.Slots = append(out.Slots, ItemStack{Item: item, Count: n})
	return out, nil
}

// Remove withdraws n units of id. Removing the last unit clears the
// slot entirely. Returns ErrNotEnoughItems (inventory unchanged) if n
// exceeds the held count.
func (inv Inventory) Remove(id ids.Id, n int64) (Inventory, error) {
	if n <= 0 {
		return inv, nil
	}
	i := inv.indexOf(id)
	if i < 0 || inv.Slots[i].Count < n {
		return inv, fmt.Errorf("items: remove %s x%d: %w", id, n, ErrNotEnoughItems)
	}
	out := inv.clone()
	out.Slots[i].Count -= n
	if out.Slots[i].Count == 0 {
		out.Slots = append(out.Slots[:i], out.Slots[i+1:]...)
	}
	return out, nil
}

// CanAdd reports whether Add(item, n) would succeed without mutating.
func (inv Inventory) CanAdd(item Item, n int64) bool {
	if n <= 0 {
		return true
	}
	if inv.indexOf(item.ID) >= 0 {
		return true
	}
	return !inv.IsFull()
}

func (inv Inventory) clone() Inventory {
	out := Inventory{Capacity: inv.Capacity, Slots: make([]ItemStack, len(inv.Slots))}
	copy(out.Slots, inv.Slots)
	return out
}
