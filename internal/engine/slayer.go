package engine

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// StartSlayerTask rolls a kill count uniformly in [category.MinKills,
// category.MaxKills], deducts the category's roll cost in slayer coins,
// and installs the standalone SlayerTask entity. Kill progress is
// tracked independently of whatever combat activity is running — see
// onMonsterDeath in combat.go.
func StartSlayerTask(b *state.StateUpdateBuilder, category registry.SlayerCategory, monster ids.Id, r rng.Rng) error {
	if !b.SpendCurrency(state.CurrencySlayerCoins, category.RollCost) {
		return ErrInsufficientCurrency
	}
	kills := rng.RollUniformQuantity(r, category.MinKills, category.MaxKills)
	b.SetSlayerTask(&state.SlayerTask{
		CategoryID:     category.ID,
		MonsterID:      monster,
		KillsRequired:  kills,
		KillsCompleted: 0,
	})
	return nil
}

// CompleteSlayerTaskRewards grants a category's XP and currency reward.
// It is invoked by onMonsterDeath the instant a task's kill quota is
// met; exposed separately so tests can exercise the reward step without
// driving a full combat sequence.
func CompleteSlayerTaskRewards(b *state.StateUpdateBuilder, category registry.SlayerCategory) {
	b.AddSkillXP(skills.Slayer, category.XPReward)
	b.AddCurrency(state.CurrencySlayerCoins, category.CurrencyReward)
}
