package engine

import (
	"math"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// AgilityCostDiscountPerPurchase and AgilityCostDiscountCap implement
// the obstacle cost discount of design doc Section 4.4:
// min(0.04 * purchase_count, 0.40).
const (
	AgilityCostDiscountPerPurchase = 0.04
	AgilityCostDiscountCap         = 0.40
)

// ObstacleCost returns obstacle's purchase cost after applying the
// per-purchase discount from the player's existing purchase count.
func ObstacleCost(obstacle registry.Obstacle, purchaseCounts map[ids.Id]int64) int64 {
	discount := AgilityCostDiscountPerPurchase * float64(purchaseCounts[obstacle.ID])
	if discount > AgilityCostDiscountCap {
		discount = AgilityCostDiscountCap
	}
	return int64(math.Round(float64(obstacle.CostAmount) * (1 - discount)))
}

// BuildObstacle purchases obstacle into the next course slot, spending
// GP (the only agility currency) at the discounted cost and recording
// the purchase count used by future discounts.
func BuildObstacle(b *state.StateUpdateBuilder, obstacle registry.Obstacle) error {
	g := b.State()
	cost := ObstacleCost(obstacle, g.Agility.PurchaseCounts)
	if !b.SpendGP(cost) {
		return ErrInsufficientCurrency
	}
	agility := g.Agility
	agility.BuiltSlots = append(append([]ids.Id{}, agility.BuiltSlots...), obstacle.ID)
	counts := cloneCountsForAgility(agility.PurchaseCounts)
	counts[obstacle.ID]++
	agility.PurchaseCounts = counts
	b.SetAgility(agility)
	return nil
}

// CompleteLap finishes the obstacle at the current course index, grants
// its skill XP, and advances current_obstacle_index modulo the number
// of built slots (design doc Section 4.4: "cyclic pipeline").
func CompleteLap(b *state.StateUpdateBuilder, obstacleXP int64) {
	g := b.State()
	if len(g.Agility.BuiltSlots) == 0 {
		return
	}
	b.AddSkillXP(skills.Agility, obstacleXP)
	agility := g.Agility
	agility.CurrentObstacleIndex = (agility.CurrentObstacleIndex + 1) % len(agility.BuiltSlots)
	b.SetAgility(agility)
}

// CurrentObstacle returns the obstacle id at the course's current
// index, and false if no obstacles are built yet.
func CurrentObstacle(g state.GlobalState) (ids.Id, bool) {
	if len(g.Agility.BuiltSlots) == 0 {
		return ids.Id{}, false
	}
	idx := g.Agility.CurrentObstacleIndex % len(g.Agility.BuiltSlots)
	return g.Agility.BuiltSlots[idx], true
}

func cloneCountsForAgility(m map[ids.Id]int64) map[ids.Id]int64 {
	out := make(map[ids.Id]int64, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
