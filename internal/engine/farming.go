package engine

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// PlantCrop consumes crop's seed item from the inventory and occupies
// plot. Allotment-category crops grant base_xp immediately; tree
// categories grant none (trees pay out only on harvest), per design
// doc Section 4.4.
func PlantCrop(b *state.StateUpdateBuilder, plot ids.Id, crop registry.Crop, category registry.CropCategory) error {
	g := b.State()
	existing := g.Farming.Plots[plot]
	if existing.IsPlanted() {
		return ErrRequirementUnmet
	}
	if g.SkillState(skills.Farming).Level() < crop.LevelRequirement {
		return ErrLevelTooLow
	}
	if err := b.RemoveItem(crop.SeedItem, 1); err != nil {
		return err
	}
	ticks := crop.GrowthTicks
	b.SetPlot(plot, state.PlotState{CropID: &crop.ID, GrowthTicksRemaining: &ticks})
	if category.GiveXPOnPlant {
		b.AddSkillXP(skills.Farming, crop.BaseXP)
	}
	return nil
}

// ApplyCompost records a compost item's application to an unharvested
// plot, raising its eventual harvest success chance. Each call consumes
// one compost item and appends it to the plot's CompostApplied list; the
// same item may be applied more than once, and every application adds
// its CompostValue at harvest.
func ApplyCompost(b *state.StateUpdateBuilder, plot ids.Id, compostItem ids.Id) error {
	g := b.State()
	ps := g.Farming.Plots[plot]
	if !ps.IsPlanted() {
		return ErrRequirementUnmet
	}
	if err := b.RemoveItem(compostItem, 1); err != nil {
		return err
	}
	ps.CompostApplied = append(ps.CompostApplied, compostItem)
	b.SetPlot(plot, ps)
	return nil
}

// TickFarming decrements every planted, not-yet-ready plot's growth
// countdown by dt ticks, floored at 0. Growth is a pure background
// timer: it advances regardless of which activity is in the foreground.
func TickFarming(b *state.StateUpdateBuilder, dt int64) {
	g := b.State()
	for plot, ps := range g.Farming.Plots {
		if !ps.IsPlanted() || ps.GrowthTicksRemaining == nil {
			continue
		}
		remaining := *ps.GrowthTicksRemaining - dt
		if remaining < 0 {
			remaining = 0
		}
		ps.GrowthTicksRemaining = &remaining
		b.SetPlot(plot, ps)
	}
}

// HarvestCrop resolves a ready plot: an allotment-category crop grants
// base_xp × harvested_quantity, a tree grants exactly base_xp
// regardless of quantity. Harvest success chance scales with any
// compost applied via each compost item's registry CompostValue, and
// yield scales with the player's equipped HarvestBonus. The
// plot is cleared on success; a failed harvest clears it too but
// grants nothing, since the crop withered.
func HarvestCrop(b *state.StateUpdateBuilder, plot ids.Id, crop registry.Crop, category registry.CropCategory, r rng.Rng) error {
	g := b.State()
	ps := g.Farming.Plots[plot]
	if !ps.IsReady() {
		return ErrRequirementUnmet
	}

	compostBonusPct := 0.0
	for _, c := range ps.CompostApplied {
		if item, ok := g.Registries.Items[c]; ok && item.CompostValue != nil {
			compostBonusPct += float64(*item.CompostValue)
		}
	}
	successChance := 0.5 + compostBonusPct/100
	if successChance > 1 {
		successChance = 1
	}
	if successChance < 0 {
		successChance = 0
	}

	b.SetPlot(plot, state.PlotState{})

	if r.NextDouble() >= successChance {
		return nil
	}

	harvestBonusPct := 0.0
	if equipped := g.Equipment.Equipped; equipped != nil {
		for _, itemID := range equipped {
			if item, ok := g.Registries.Items[itemID]; ok && item.HarvestBonus != nil {
				harvestBonusPct += *item.HarvestBonus
			}
		}
	}

	quantity := int64(float64(crop.BaseQuantity) * category.HarvestMultiplier * (1 + harvestBonusPct/100))
	if quantity < 1 {
		quantity = 1
	}
	if produce, ok := g.Registries.Items[crop.ProduceItem]; ok {
		b.AddItem(produce, quantity)
	}

	xp := crop.BaseXP
	if category.ScaleXPWithQuantity {
		xp *= quantity
	}
	b.AddSkillXP(skills.Farming, xp)

	return nil
}
