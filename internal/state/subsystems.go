package state

import "github.com/kestrelgames/idlecore/internal/ids"

// HealthState tracks current/max hitpoints.
type HealthState struct {
	Current int64 `json:"current"`
	Max     int64 `json:"max"`
}

// IsDead reports whether current HP has reached zero.
func (h HealthState) IsDead() bool { return h.Current <= 0 }

// StunState tracks the countdown during which the player cannot change
// or progress their foreground activity (spec.md §3).
type StunState struct {
	TicksRemaining int64 `json:"ticksRemaining,omitempty"`
}

// IsStunned reports whether the player is currently stunned.
func (s StunState) IsStunned() bool { return s.TicksRemaining > 0 }

// EquipmentState holds equipped gear and the active food slot.
type EquipmentState struct {
	Equipped map[string]ids.Id `json:"equipped,omitempty"` // keyed by EquipSlot name
	Food     *ids.Id           `json:"food,omitempty"`
}

// CookingAreaID enumerates the three independent cooking areas.
type CookingAreaID uint8

const (
	AreaFire CookingAreaID = iota
	AreaFurnace
	AreaPot
)

// NumCookingAreas is the number of independent cooking areas.
const NumCookingAreas = int(AreaPot) + 1

// CookingAreaState is the progress/recipe assignment for one cooking area.
// PassiveRemainder banks sub-tick progress for the 5x-slower passive
// rate (one real tick of progress per 5 elapsed ticks) without resorting
// to floating point, keeping tick advancement exactly reproducible.
type CookingAreaState struct {
	ActionID         ids.Id  `json:"actionId,omitempty"`
	SelectedRecipe   *ids.Id `json:"selectedRecipe,omitempty"`
	ProgressTicks    int64   `json:"progressTicks,omitempty"`
	TotalTicks       int64   `json:"totalTicks,omitempty"`
	PassiveRemainder int64   `json:"passiveRemainder,omitempty"`
}

// CookingState holds all three cooking areas.
type CookingState struct {
	Areas [NumCookingAreas]CookingAreaState `json:"areas"`
}

// PlotState is a single farming plot's background lifecycle.
type PlotState struct {
	CropID               *ids.Id  `json:"cropId,omitempty"`
	GrowthTicksRemaining *int64   `json:"growthTicksRemaining,omitempty"`
	CompostApplied       []ids.Id `json:"compostApplied,omitempty"`
}

// IsPlanted reports whether the plot currently has a crop in it.
func (p PlotState) IsPlanted() bool { return p.CropID != nil }

// IsReady reports whether the crop has finished growing.
func (p PlotState) IsReady() bool {
	return p.IsPlanted() && p.GrowthTicksRemaining != nil && *p.GrowthTicksRemaining <= 0
}

// FarmingState holds every plot, keyed by plot id (category:index).
type FarmingState struct {
	Plots map[ids.Id]PlotState `json:"plots,omitempty"`
}

// AgilityState is the cyclic obstacle-course pipeline.
type AgilityState struct {
	BuiltSlots           []ids.Id `json:"builtSlots,omitempty"` // obstacle id per built slot, in course order
	CurrentObstacleIndex int      `json:"currentObstacleIndex,omitempty"`
	PurchaseCounts       map[ids.Id]int64 `json:"purchaseCounts,omitempty"` // obstacle id -> times bought (for cost discount)
}

// AstrologyState tracks constellation modifier purchase counts. Banked
// stardust and golden stardust live in GlobalState.Currencies, since
// they are spendable currencies like any other (see CurrencyStardust).
type AstrologyState struct {
	Purchases map[ids.Id]int64 `json:"purchases,omitempty"` // modifier id -> purchase count
}

// SlayerTask is a standalone entity that persists independently of the
// current combat activity (spec.md §4.4).
type SlayerTask struct {
	CategoryID     ids.Id `json:"categoryId"`
	MonsterID      ids.Id `json:"monsterId"`
	KillsRequired  int64  `json:"killsRequired"`
	KillsCompleted int64  `json:"killsCompleted"`
}

// IsComplete reports whether the task's kill quota has been met.
func (t SlayerTask) IsComplete() bool { return t.KillsCompleted >= t.KillsRequired }

// ShopState tracks per-entry purchase counts.
type ShopState struct {
	PurchaseCounts map[ids.Id]int64 `json:"purchaseCounts,omitempty"`
}

// Currency enumerates non-GP currencies.
type Currency string

const (
	CurrencySlayerCoins    Currency = "slayerCoins"
	CurrencyStardust       Currency = "stardust"
	CurrencyGoldenStardust Currency = "goldenStardust"
)
