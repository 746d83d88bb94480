package engine

import (
	"log/slog"
	"math"

	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// MasteryTokenPoolFraction is the fraction of a skill's mastery pool
// cap that one mastery token is worth when claimed (design doc
// Section 4.4: round(max_pool_xp * 0.001)).
const MasteryTokenPoolFraction = 0.001

// ClaimMasteryToken consumes one of skill's mastery token items and adds
// round(poolCap*0.001) XP to the skill's mastery pool. It fails without
// mutation if the player holds no tokens, or if the pool has no room
// left for even one full token's worth of XP.
func ClaimMasteryToken(b *state.StateUpdateBuilder, skill skills.Skill, token registry.MasteryToken, poolCap int64) error {
	g := b.State()
	if g.Inventory.CountOf(token.Item) < 1 {
		return ErrRequirementUnmet
	}
	tokenXP := int64(math.Round(float64(poolCap) * MasteryTokenPoolFraction))
	if tokenXP <= 0 {
		slog.Warn("mastery token claim rejected, pool cap too small for a single token", "skill", skill, "poolCap", poolCap)
		return ErrPoolFull
	}
	if g.SkillState(skill).MasteryPoolXP+tokenXP > poolCap {
		slog.Warn("mastery token claim rejected, pool full", "skill", skill, "poolXP", g.SkillState(skill).MasteryPoolXP, "poolCap", poolCap)
		return ErrPoolFull
	}
	if err := b.RemoveItem(token.Item, 1); err != nil {
		return err
	}
	b.AddMasteryPoolXP(skill, tokenXP, poolCap)
	return nil
}

// ClaimAllMasteryTokens repeatedly claims tokens for skill until either
// the inventory runs out or the pool can no longer fit one, returning
// the number of tokens actually claimed.
func ClaimAllMasteryTokens(b *state.StateUpdateBuilder, skill skills.Skill, token registry.MasteryToken, poolCap int64) int64 {
	var claimed int64
	for {
		if err := ClaimMasteryToken(b, skill, token, poolCap); err != nil {
			return claimed
		}
		claimed++
	}
}
