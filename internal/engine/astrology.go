package engine

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// PurchaseConstellationModifier buys the next level of constellation,
// paying stardust (standard) or golden stardust (unique) at
// stardust_costs[current_level], gated on the player's astrology
// mastery level and the modifier's lifetime purchase cap.
func PurchaseConstellationModifier(b *state.StateUpdateBuilder, constellation registry.Constellation) error {
	g := b.State()
	if g.SkillState(skills.Astrology).Level() < constellation.UnlockMasteryLevel {
		return ErrLevelTooLow
	}
	current := g.Astrology.Purchases[constellation.ID]
	if constellation.MaxCount > 0 && current >= constellation.MaxCount {
		return ErrRequirementUnmet
	}
	if int(current) >= len(constellation.StardustCosts) {
		return ErrRequirementUnmet
	}
	cost := constellation.StardustCosts[current]

	currency := state.CurrencyStardust
	if constellation.IsUnique {
		currency = state.CurrencyGoldenStardust
	}
	if !b.SpendCurrency(currency, cost) {
		return ErrInsufficientCurrency
	}

	astrology := g.Astrology
	purchases := clonePurchases(astrology.Purchases)
	purchases[constellation.ID] = current + 1
	astrology.Purchases = purchases
	b.SetAstrology(astrology)
	return nil
}

func clonePurchases(m map[ids.Id]int64) map[ids.Id]int64 {
	out := make(map[ids.Id]int64, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
