package rng

import (
	"math"

	"github.com/kestrelgames/idlecore/internal/droptable"
	"github.com/kestrelgames/idlecore/internal/ids"
)

// RollDuration implements spec.md §4.1's duration-rolling formula:
//
//	rolled_ticks = max(1, round(base_ticks*(1+skillIntervalPct/100)) + flatIntervalMs/100)
//
// Rounding is ties-to-even, and flatIntervalMs is converted to ticks by
// integer division by 100 (a tick is 100ms). This roller consumes no
// RNG state — duration is deterministic given the resolved modifiers —
// but lives here alongside the other rollers per spec.md's grouping.
func RollDuration(baseTicks int64, skillIntervalPct, flatIntervalMs float64) int64 {
	scaled := math.RoundToEven(float64(baseTicks) * (1 + skillIntervalPct/100))
	flatTicks := int64(flatIntervalMs) / 100
	rolled := int64(scaled) + flatTicks
	if rolled < 1 {
		return 1
	}
	return rolled
}

// RollDoubling succeeds iff rng.NextDouble() < chancePct/100.
func RollDoubling(r Rng, chancePct float64) bool {
	return r.NextDouble() < chancePct/100
}

// RollUniformQuantity returns a uniform integer in [min, max].
func RollUniformQuantity(r Rng, min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + r.NextInt(max-min+1)
}

// RollDrops recurses over a drop tree per spec.md §4.2: a DropChance
// succeeds iff NextDouble() < rate; a DropTable selects one entry
// weighted by weight; a leaf Drop yields a uniform quantity in
// [minQty, maxQty]. Returns the items actually rolled this call.
func RollDrops(r Rng, d droptable.Droppable) map[ids.Id]int64 {
	out := make(map[ids.Id]int64)
	rollInto(r, d, out)
	return out
}

func rollInto(r Rng, d droptable.Droppable, out map[ids.Id]int64) {
	if d == nil {
		return
	}
	switch v := d.(type) {
	case droptable.Drop:
		if r.NextDouble() < v.Rate {
			out[v.Item] += RollUniformQuantity(r, v.MinQty, v.MaxQty)
		}
	case droptable.DropChance:
		if r.NextDouble() < v.Rate {
			rollInto(r, v.Child, out)
		}
	case droptable.DropTable:
		total := v.TotalWeight()
		if total <= 0 || len(v.Entries) == 0 {
			return
		}
		roll := r.NextDouble() * total
		var cursor float64
		for _, e := range v.Entries {
			cursor += e.Weight
			if roll < cursor {
				rollInto(r, e.Child, out)
				return
			}
		}
		// Floating point edge case: fall through to the last entry.
		rollInto(r, v.Entries[len(v.Entries)-1].Child, out)
	}
}

// RollCombatDamage selects 1 + rng.NextInt(maxHit).
func RollCombatDamage(r Rng, maxHit int64) int64 {
	if maxHit <= 0 {
		return 0
	}
	return 1 + r.NextInt(maxHit)
}

// RollAccuracy succeeds iff rng.NextDouble() < hitChance, where
// hitChance is precomputed by the caller from accuracy vs. evasion.
func RollAccuracy(r Rng, hitChance float64) bool {
	return r.NextDouble() < hitChance
}

// RollThievingSuccess implements the stealth formula of spec.md §4.2:
// stealth = 40 + level + masteryLevel; success iff
// NextDouble() < (100+stealth)/(100+npcPerception).
func RollThievingSuccess(r Rng, level, masteryLevel int, npcPerception float64) bool {
	stealth := 40 + float64(level) + float64(masteryLevel)
	chance := (100 + stealth) / (100 + npcPerception)
	return r.NextDouble() < chance
}

// RollCookingSuccess implements spec.md §4.2: base 0.70 + 0.006*masteryLevel,
// capped at 1.0.
func RollCookingSuccess(r Rng, masteryLevel int) bool {
	chance := 0.70 + 0.006*float64(masteryLevel)
	if chance > 1.0 {
		chance = 1.0
	}
	return r.NextDouble() < chance
}
