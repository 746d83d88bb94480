// Package waitfor implements the WaitFor predicate sum type: the
// solver's stopping conditions for a macro step, and the building block
// for estimating how long a goal will take at the current Rates. See
// spec.md §4.6.
package waitfor

import (
	"fmt"
	"math"

	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/rates"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// InfTicks reports an unreachable estimate under the current rates —
// the wait condition needs a flow that is currently zero or negative.
const InfTicks int64 = math.MaxInt64

// WaitFor is the sealed sum type every wait condition implements. Only
// this package may implement it.
type WaitFor interface {
	IsSatisfied(g state.GlobalState) bool
	EstimateTicks(g state.GlobalState, r rates.Rates) int64
	Progress(g state.GlobalState) int64
	waitFor()
}

// SellPolicy decides which items count toward EffectiveCredits' "sellable
// inventory value" — e.g. "everything except equipped gear and quest
// items." A nil SellPolicy counts every item with a positive SellPrice.
type SellPolicy func(item items.Item) bool

func sellableValue(g state.GlobalState, policy SellPolicy) int64 {
	var total int64
	for _, slot := range g.Inventory.Slots {
		if slot.Item.SellPrice <= 0 {
			continue
		}
		if policy != nil && !policy(slot.Item) {
			continue
		}
		total += slot.Item.SellPrice * slot.Count
	}
	return total
}

func sellableValueRate(r rates.Rates, bundle *registry.Bundle, policy SellPolicy) float64 {
	rate := r.DirectGPPerTick
	for item, flow := range r.ItemFlowsPerTick {
		if flow <= 0 {
			continue
		}
		it, ok := bundle.Items[item]
		if !ok || it.SellPrice <= 0 {
			continue
		}
		if policy != nil && !policy(it) {
			continue
		}
		rate += flow * float64(it.SellPrice)
	}
	return rate
}

func ticksFor(deficit, rate float64) int64 {
	if deficit <= 0 {
		return 0
	}
	if rate <= 0 {
		return InfTicks
	}
	return int64(math.Ceil(deficit / rate))
}

// EffectiveCredits is satisfied once banked GP plus the sellable value
// of the inventory (under policy) reaches N.
type EffectiveCredits struct {
	N      int64
	Bundle *registry.Bundle
	Policy SellPolicy
}

func (w EffectiveCredits) waitFor() {}

func (w EffectiveCredits) current(g state.GlobalState) int64 {
	return g.GP + sellableValue(g, w.Policy)
}

func (w EffectiveCredits) IsSatisfied(g state.GlobalState) bool { return w.current(g) >= w.N }

func (w EffectiveCredits) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	return ticksFor(float64(w.N-w.current(g)), sellableValueRate(r, w.Bundle, w.Policy))
}

func (w EffectiveCredits) Progress(g state.GlobalState) int64 { return w.current(g) }

// SkillXp is satisfied once skill's XP reaches N.
type SkillXp struct {
	Skill skills.Skill
	N     int64
}

func (w SkillXp) waitFor() {}

func (w SkillXp) IsSatisfied(g state.GlobalState) bool { return g.SkillState(w.Skill).XP >= w.N }

func (w SkillXp) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	return ticksFor(float64(w.N-g.SkillState(w.Skill).XP), r.XPPerTickBySkill[w.Skill])
}

func (w SkillXp) Progress(g state.GlobalState) int64 { return g.SkillState(w.Skill).XP }

// MasteryXp is satisfied once action's mastery XP reaches N. The
// estimate only has a nonzero rate while action is the actively
// trained activity — rates.Rates carries only the foreground action's
// mastery throughput.
type MasteryXp struct {
	Action ids.Id
	N      int64
}

func (w MasteryXp) waitFor() {}

func (w MasteryXp) current(g state.GlobalState) int64 {
	return g.ActionState(w.Action).MasteryXP
}

func (w MasteryXp) IsSatisfied(g state.GlobalState) bool { return w.current(g) >= w.N }

func (w MasteryXp) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	rate := 0.0
	if a := g.ActiveActivity; a != nil && a.Kind == state.ActivitySkill && a.ActionID == w.Action {
		rate = r.MasteryXPPerTick
	}
	return ticksFor(float64(w.N-w.current(g)), rate)
}

func (w MasteryXp) Progress(g state.GlobalState) int64 { return w.current(g) }

// InventoryAtLeast is satisfied once the held count of item reaches N.
type InventoryAtLeast struct {
	Item ids.Id
	N    int64
}

func (w InventoryAtLeast) waitFor() {}

func (w InventoryAtLeast) IsSatisfied(g state.GlobalState) bool {
	return g.Inventory.CountOf(w.Item) >= w.N
}

func (w InventoryAtLeast) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	return ticksFor(float64(w.N-g.Inventory.CountOf(w.Item)), r.ItemFlowsPerTick[w.Item])
}

func (w InventoryAtLeast) Progress(g state.GlobalState) int64 { return g.Inventory.CountOf(w.Item) }

// InventoryDelta is satisfied once item's count has risen by Delta from
// whatever it held when Start was captured (a caller-supplied snapshot,
// taken at the moment the wait condition was constructed).
type InventoryDelta struct {
	Item  ids.Id
	Delta int64
	Start int64
}

func (w InventoryDelta) waitFor() {}

func (w InventoryDelta) target() int64 { return w.Start + w.Delta }

func (w InventoryDelta) IsSatisfied(g state.GlobalState) bool {
	return g.Inventory.CountOf(w.Item) >= w.target()
}

func (w InventoryDelta) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	return ticksFor(float64(w.target()-g.Inventory.CountOf(w.Item)), r.ItemFlowsPerTick[w.Item])
}

func (w InventoryDelta) Progress(g state.GlobalState) int64 { return g.Inventory.CountOf(w.Item) }

// InventoryThreshold is satisfied once the fraction of occupied slots
// reaches F.
type InventoryThreshold struct {
	F float64
}

func (w InventoryThreshold) waitFor() {}

func (w InventoryThreshold) used(g state.GlobalState) float64 { return float64(g.Inventory.UsedSlots()) }

func (w InventoryThreshold) IsSatisfied(g state.GlobalState) bool {
	return w.used(g)/float64(g.Inventory.Capacity) >= w.F
}

func (w InventoryThreshold) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	target := w.F * float64(g.Inventory.Capacity)
	return ticksFor(target-w.used(g), r.ItemTypesPerTick)
}

func (w InventoryThreshold) Progress(g state.GlobalState) int64 { return int64(w.used(g)) }

// InventoryFull is satisfied once no free slot remains.
type InventoryFull struct{}

func (w InventoryFull) waitFor() {}

func (w InventoryFull) IsSatisfied(g state.GlobalState) bool { return g.Inventory.IsFull() }

func (w InventoryFull) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	return ticksFor(float64(g.Inventory.FreeSlots()), r.ItemTypesPerTick)
}

func (w InventoryFull) Progress(g state.GlobalState) int64 { return g.Inventory.FreeSlots() }

// InputsDepleted is satisfied once every one of action's inputs has
// hit zero in the inventory.
type InputsDepleted struct {
	Action registry.Action
}

func (w InputsDepleted) waitFor() {}

func (w InputsDepleted) IsSatisfied(g state.GlobalState) bool {
	for _, in := range w.Action.Inputs {
		if g.Inventory.CountOf(in.Item) > 0 {
			return false
		}
	}
	return true
}

// EstimateTicks returns the smallest-stocked input's count divided by
// its (necessarily negative) consumption rate — the soonest any input
// runs dry.
func (w InputsDepleted) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	if len(w.Action.Inputs) == 0 {
		return 0
	}
	best := InfTicks
	for _, in := range w.Action.Inputs {
		count := g.Inventory.CountOf(in.Item)
		if count <= 0 {
			continue
		}
		consumption := -r.ItemFlowsPerTick[in.Item]
		t := ticksFor(float64(count), consumption)
		if t < best {
			best = t
		}
	}
	return best
}

func (w InputsDepleted) Progress(g state.GlobalState) int64 {
	var total int64
	for _, in := range w.Action.Inputs {
		total += g.Inventory.CountOf(in.Item)
	}
	return total
}

// InputsAvailable is satisfied once every one of action's inputs meets
// its minimum quantity. There is no general external-gather rate to
// extrapolate from, so the estimate is binary: 0 if already satisfied,
// InfTicks otherwise.
type InputsAvailable struct {
	Action registry.Action
}

func (w InputsAvailable) waitFor() {}

func (w InputsAvailable) IsSatisfied(g state.GlobalState) bool {
	for _, in := range w.Action.Inputs {
		if g.Inventory.CountOf(in.Item) < in.MinQty {
			return false
		}
	}
	return true
}

func (w InputsAvailable) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	if w.IsSatisfied(g) {
		return 0
	}
	return InfTicks
}

func (w InputsAvailable) Progress(g state.GlobalState) int64 {
	if w.IsSatisfied(g) {
		return 1
	}
	return 0
}

// SufficientInputs is satisfied once every one of action's inputs holds
// at least N units.
type SufficientInputs struct {
	Action registry.Action
	N      int64
}

func (w SufficientInputs) waitFor() {}

func (w SufficientInputs) IsSatisfied(g state.GlobalState) bool {
	for _, in := range w.Action.Inputs {
		if g.Inventory.CountOf(in.Item) < w.N {
			return false
		}
	}
	return true
}

func (w SufficientInputs) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	best := int64(0)
	for _, in := range w.Action.Inputs {
		deficit := float64(w.N - g.Inventory.CountOf(in.Item))
		if deficit <= 0 {
			continue
		}
		t := ticksFor(deficit, r.ItemFlowsPerTick[in.Item])
		if t > best {
			best = t
		}
	}
	return best
}

func (w SufficientInputs) Progress(g state.GlobalState) int64 {
	best := int64(math.MaxInt64)
	for _, in := range w.Action.Inputs {
		c := g.Inventory.CountOf(in.Item)
		if c < best {
			best = c
		}
	}
	if best == math.MaxInt64 {
		return 0
	}
	return best
}

// AnyOf is satisfied once any of Children is satisfied; its estimate is
// the minimum of its children's estimates.
type AnyOf struct {
	Children []WaitFor
}

func (w AnyOf) waitFor() {}

func (w AnyOf) IsSatisfied(g state.GlobalState) bool {
	for _, c := range w.Children {
		if c.IsSatisfied(g) {
			return true
		}
	}
	return false
}

func (w AnyOf) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	best := InfTicks
	for _, c := range w.Children {
		if t := c.EstimateTicks(g, r); t < best {
			best = t
		}
	}
	return best
}

func (w AnyOf) Progress(g state.GlobalState) int64 {
	var best int64
	for i, c := range w.Children {
		p := c.Progress(g)
		if i == 0 || p > best {
			best = p
		}
	}
	return best
}

// OnGoal delegates to a goal.Goal, letting the solver treat "reach the
// plan's own goal" as an ordinary wait condition (the table's `Goal(g)`
// row). Named OnGoal, not Goal, so it does not shadow the goal package.
type OnGoal struct {
	Goal goal.Goal
}

func (w OnGoal) waitFor() {}

func (w OnGoal) IsSatisfied(g state.GlobalState) bool { return w.Goal.IsSatisfied(g) }

func (w OnGoal) EstimateTicks(g state.GlobalState, r rates.Rates) int64 {
	remaining := w.Goal.Remaining(g)
	if remaining <= 0 {
		return 0
	}
	// ReachGp's Remaining is a GP deficit, not an XP one — its rate
	// comes from DirectGPPerTick, since RelevantSkills is empty for it.
	if _, isGP := w.Goal.(goal.ReachGp); isGP {
		return ticksFor(remaining, r.DirectGPPerTick)
	}
	// A multi-skill goal's rate is the rate of whichever relevant skill
	// is currently being trained; any other skill contributes nothing
	// to this estimate this tick.
	var rate float64
	for _, skill := range w.Goal.RelevantSkills() {
		rate += r.XPPerTickBySkill[skill]
	}
	return ticksFor(remaining, rate)
}

func (w OnGoal) Progress(g state.GlobalState) int64 {
	return int64(w.Goal.Remaining(g))
}

// Describe renders a short human-readable label, used by Plan.PrettyPrint.
func Describe(w WaitFor) string {
	switch v := w.(type) {
	case EffectiveCredits:
		return fmt.Sprintf("until %d effective GP", v.N)
	case SkillXp:
		return fmt.Sprintf("until %s reaches %d XP", v.Skill.Name(), v.N)
	case MasteryXp:
		return fmt.Sprintf("until %s mastery reaches %d XP", v.Action, v.N)
	case InventoryAtLeast:
		return fmt.Sprintf("until %d %s held", v.N, v.Item)
	case InventoryDelta:
		return fmt.Sprintf("until %s rises by %d", v.Item, v.Delta)
	case InventoryThreshold:
		return fmt.Sprintf("until inventory %.0f%% full", v.F*100)
	case InventoryFull:
		return "until inventory full"
	case InputsDepleted:
		return fmt.Sprintf("until %s runs out of inputs", v.Action.Name)
	case InputsAvailable:
		return fmt.Sprintf("until %s has its inputs", v.Action.Name)
	case SufficientInputs:
		return fmt.Sprintf("until %s holds %d of each input", v.Action.Name, v.N)
	case AnyOf:
		return "until any of several conditions"
	case OnGoal:
		return v.Goal.Describe()
	default:
		return "until condition met"
	}
}
