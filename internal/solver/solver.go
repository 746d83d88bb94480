// Package solver implements the best-first planner that turns a goal
// into a concrete Plan of interactions and waits. See spec.md §4.8.
package solver

import (
	"container/heap"
	"fmt"
	"log/slog"
	"time"

	"github.com/kestrelgames/idlecore/internal/candidates"
	"github.com/kestrelgames/idlecore/internal/engine"
	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/rates"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
	"github.com/kestrelgames/idlecore/internal/waitfor"
	"github.com/kestrelgames/idlecore/internal/xp"
)

// TerminationParams bounds how hard the search is allowed to work
// before giving up with a SolverFailure.
type TerminationParams struct {
	MaxExpandedNodes int
	TimeBudget       time.Duration
	MaxReplans       int
}

// DefaultTermination matches the order of magnitude spec.md's
// sub-exponential performance property expects of a single goal.
var DefaultTermination = TerminationParams{
	MaxExpandedNodes: 20000,
	TimeBudget:       5 * time.Second,
	MaxReplans:       64,
}

// SolverFailure reports why Solve could not produce a Plan.
type SolverFailure struct {
	Boundary    ReplanBoundary
	Diagnostics *Diagnostics
}

func (f *SolverFailure) Error() string {
	return fmt.Sprintf("solver: %s", f.Boundary.Describe())
}

// node is one state the frontier can expand: the simulated GlobalState
// reached so far, the steps taken to reach it, and the accumulated tick
// cost of those steps (the search's "g" value).
type node struct {
	state    state.GlobalState
	steps    []PlanStep
	planTick int64
}

// Solve runs best-first search from start toward target, returning a
// compressed, pretty-printable Plan.
func Solve(start state.GlobalState, bundle *registry.Bundle, target goal.Goal, policy waitfor.SellPolicy, r rng.Rng, params TerminationParams) (*Plan, error) {
	diag := newDiagnostics()
	cache := candidates.NewCache()
	deadline := time.Now().Add(params.TimeBudget)

	frontier := &minHeap[node, float64]{}
	heap.Init(frontier)
	heap.Push(frontier, heapItem[node, float64]{
		value:    node{state: start},
		priority: heuristic(start, bundle, target),
	})

	for frontier.Len() > 0 {
		if diag.ExpandedNodes >= params.MaxExpandedNodes {
			boundary := ReplanBoundary{Kind: HorizonCapBoundary, Detail: "max expanded nodes reached"}
			diag.record(boundary)
			slog.Warn("solver gave up, unexpected replan boundary", "kind", boundary.Kind, "detail", boundary.Detail)
			return nil, &SolverFailure{Boundary: boundary, Diagnostics: diag}
		}
		if time.Now().After(deadline) {
			boundary := ReplanBoundary{Kind: TimeBudgetExceeded, CausesReplan: false, Detail: "time budget exceeded"}
			diag.record(boundary)
			slog.Warn("solver gave up, unexpected replan boundary", "kind", boundary.Kind, "detail", boundary.Detail)
			return nil, &SolverFailure{Boundary: boundary, Diagnostics: diag}
		}
		if diag.Replans > params.MaxReplans {
			boundary := ReplanBoundary{Kind: ReplanLimitExceeded, Detail: "replan limit exceeded"}
			diag.record(boundary)
			slog.Warn("solver gave up, unexpected replan boundary", "kind", boundary.Kind, "detail", boundary.Detail)
			return nil, &SolverFailure{Boundary: boundary, Diagnostics: diag}
		}

		current := heap.Pop(frontier).(heapItem[node, float64]).value
		diag.ExpandedNodes++

		if target.IsSatisfied(current.state) {
			return finalize(current, diag), nil
		}

		cand := cache.Get(current.state, bundle, target, policy)

		for _, actionID := range cand.SwitchToActivities {
			child, ok := applySwitch(current, bundle, actionID)
			if !ok {
				continue
			}
			heap.Push(frontier, heapItem[node, float64]{value: child, priority: float64(child.planTick) + heuristic(child.state, bundle, target)})
		}

		for _, shopID := range cand.BuyUpgrades {
			child, ok := applyBuy(current, bundle, shopID)
			if !ok {
				continue
			}
			heap.Push(frontier, heapItem[node, float64]{value: child, priority: float64(child.planTick) + heuristic(child.state, bundle, target)})
		}

		if cand.ShouldEmitSellCandidate {
			if child, ok := applySellAll(current, bundle, cand.SellPolicy); ok {
				heap.Push(frontier, heapItem[node, float64]{value: child, priority: float64(child.planTick) + heuristic(child.state, bundle, target)})
			}
		}

		for _, macro := range cand.Macros {
			child, boundary := runMacro(current, bundle, target, macro, r)
			diag.record(boundary)
			if !boundary.IsExpected {
				slog.Warn("unexpected replan boundary", "kind", boundary.Kind, "action", boundary.ActionID, "detail", boundary.Detail)
			}
			heap.Push(frontier, heapItem[node, float64]{value: child, priority: float64(child.planTick) + heuristic(child.state, bundle, target)})
		}
	}

	boundary := ReplanBoundary{Kind: HorizonCapBoundary, Detail: "frontier exhausted"}
	diag.record(boundary)
	slog.Warn("solver gave up, unexpected replan boundary", "kind", boundary.Kind, "detail", boundary.Detail)
	return nil, &SolverFailure{Boundary: boundary, Diagnostics: diag}
}

func finalize(n node, diag *Diagnostics) *Plan {
	p := &Plan{
		Steps:       n.steps,
		TotalTicks:  n.planTick,
		Diagnostics: diag,
	}
	for _, s := range p.Steps {
		if s.Kind == StepInteraction {
			p.InteractionCount++
		}
	}
	p.Compress()
	p.ID = diag.RunID
	diag.record(ReplanBoundary{Kind: GoalReachedBoundary, IsExpected: true})
	return p
}

// heuristic is h(state, goal): the sum of each relevant skill's
// estimated ticks to close its XP deficit at the best unlocked action's
// rate, per spec.md §4.8. It never includes a switch's own cost, so it
// never overestimates — admissible.
func heuristic(g state.GlobalState, bundle *registry.Bundle, target goal.Goal) float64 {
	if target.IsSatisfied(g) {
		return 0
	}
	switch t := target.(type) {
	case goal.ReachGp:
		return gpHeuristic(g, bundle, t.N)
	case goal.ReachSkillLevel:
		return skillHeuristic(g, bundle, t.Skill, xp.StartXPForLevel(t.Level))
	case goal.MultiSkill:
		var total float64
		for skill, level := range t.Targets {
			total += skillHeuristic(g, bundle, skill, xp.StartXPForLevel(level))
		}
		return total
	default:
		return 0
	}
}

func skillHeuristic(g state.GlobalState, bundle *registry.Bundle, skill skills.Skill, targetXP int64) float64 {
	deficit := float64(targetXP) - float64(g.SkillState(skill).XP)
	if deficit <= 0 {
		return 0
	}
	bestRate := 0.0
	for _, action := range bundle.Actions {
		if action.Skill != skill || g.SkillState(skill).Level() < action.LevelRequirement {
			continue
		}
		r := rates.ForAction(g, action)
		if rate := r.XPPerTickBySkill[skill]; rate > bestRate {
			bestRate = rate
		}
	}
	if bestRate <= 0 {
		return float64(waitfor.InfTicks)
	}
	return deficit / bestRate
}

func gpHeuristic(g state.GlobalState, bundle *registry.Bundle, targetGP int64) float64 {
	deficit := float64(targetGP - g.GP)
	if deficit <= 0 {
		return 0
	}
	w := waitfor.EffectiveCredits{N: targetGP, Bundle: bundle}
	r := rates.Estimate(g, bundle)
	t := w.EstimateTicks(g, r)
	if t >= waitfor.InfTicks {
		return float64(waitfor.InfTicks)
	}
	return float64(t)
}

func applySwitch(n node, bundle *registry.Bundle, actionID ids.Id) (node, bool) {
	action, ok := bundle.Actions[actionID]
	if !ok {
		return node{}, false
	}
	b := state.NewBuilder(n.state)
	if err := engine.StartAction(b, action, nil); err != nil {
		return node{}, false
	}
	next, _ := b.Finish()
	step := PlanStep{Kind: StepInteraction, Interaction: Interaction{Kind: InteractionSwitchActivity, ActionID: actionID}}
	return node{state: next, steps: append(appendCopy(n.steps), step), planTick: n.planTick}, true
}

func applyBuy(n node, bundle *registry.Bundle, shopID ids.Id) (node, bool) {
	entry, ok := bundle.ShopEntries[shopID]
	if !ok {
		return node{}, false
	}
	b := state.NewBuilder(n.state)
	purchased := n.state.Shop.PurchaseCounts[shopID]
	cost := int64(float64(entry.CostAmount) * pow(entry.CostGrowth, purchased))

	var paid bool
	switch entry.Cost {
	case registry.CurrencyGP:
		paid = b.SpendGP(cost)
	case registry.CurrencySlayerCoins:
		paid = b.SpendCurrency(state.CurrencySlayerCoins, cost)
	case registry.CurrencyStardust:
		paid = b.SpendCurrency(state.CurrencyStardust, cost)
	case registry.CurrencyGoldenStardust:
		paid = b.SpendCurrency(state.CurrencyGoldenStardust, cost)
	}
	if !paid {
		return node{}, false
	}
	b.RecordShopPurchase(shopID)

	var gpDelta int64
	if entry.Cost == registry.CurrencyGP {
		gpDelta = -cost
	}

	next, _ := b.Finish()
	step := PlanStep{Kind: StepInteraction, Interaction: Interaction{Kind: InteractionBuyShopItem, ShopItemID: shopID, GPDelta: gpDelta}}
	return node{state: next, steps: append(appendCopy(n.steps), step), planTick: n.planTick}, true
}

func pow(base float64, exp int64) float64 {
	if exp <= 0 {
		return 1
	}
	result := 1.0
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func applySellAll(n node, bundle *registry.Bundle, policy waitfor.SellPolicy) (node, bool) {
	b := state.NewBuilder(n.state)
	sold := false
	var proceeds int64
	for _, slot := range n.state.Inventory.Slots {
		if slot.Item.SellPrice <= 0 {
			continue
		}
		if policy != nil && !policy(slot.Item) {
			continue
		}
		if err := b.RemoveItem(slot.Item.ID, slot.Count); err != nil {
			continue
		}
		gained := slot.Item.SellPrice * slot.Count
		b.AddGP(gained)
		proceeds += gained
		sold = true
	}
	if !sold {
		return node{}, false
	}
	next, _ := b.Finish()
	step := PlanStep{Kind: StepInteraction, Interaction: Interaction{Kind: InteractionSell, GPDelta: proceeds}}
	return node{state: next, steps: append(appendCopy(n.steps), step), planTick: n.planTick}, true
}

// runMacro simulates macro's action running until target is satisfied,
// some relevant boundary fires, or a conservative horizon is hit,
// whichever comes first. It always returns a usable child node —
// boundary just records why the simulated segment stopped.
func runMacro(n node, bundle *registry.Bundle, target goal.Goal, macro candidates.MacroCandidate, r rng.Rng) (node, ReplanBoundary) {
	const defaultHorizon int64 = 200000 // ~5.5 hours of ticks, a conservative macro segment cap
	horizon := macro.StopAt.HorizonTicks
	if horizon <= 0 {
		horizon = defaultHorizon
	}

	b := state.NewBuilder(n.state)
	if b.State().ActiveActivity == nil || b.State().ActiveActivity.ActionID != macro.ActionID {
		action, ok := bundle.Actions[macro.ActionID]
		if !ok {
			return n, ReplanBoundary{Kind: InputsDepletedBoundary, ActionID: macro.ActionID, Detail: "unknown action"}
		}
		if err := engine.StartAction(b, action, nil); err != nil {
			return n, ReplanBoundary{Kind: InputsDepletedBoundary, ActionID: macro.ActionID, Detail: err.Error()}
		}
	}

	action := bundle.Actions[macro.ActionID]
	stoppedAt := ReplanBoundary{Kind: HorizonCapBoundary, ActionID: macro.ActionID, CausesReplan: true}

	stop := func(g state.GlobalState) bool {
		if target.IsSatisfied(g) {
			stoppedAt = ReplanBoundary{Kind: GoalReachedBoundary, ActionID: macro.ActionID, IsExpected: true, CausesReplan: true}
			return true
		}
		if g.ActiveActivity == nil {
			stoppedAt = ReplanBoundary{Kind: InventoryPressureBoundary, ActionID: macro.ActionID, IsExpected: true, CausesReplan: true, Detail: "activity cleared, likely inventory full"}
			return true
		}
		if macro.StopAt.WatchInputsDepleted && (waitfor.InputsDepleted{Action: action}).IsSatisfied(g) {
			stoppedAt = ReplanBoundary{Kind: InputsDepletedBoundary, ActionID: macro.ActionID, IsExpected: true, CausesReplan: true}
			return true
		}
		if macro.StopAt.WatchUnlocks && bundle.UnlockedActionCount(action.Skill, g.SkillState(action.Skill).Level()) > bundle.UnlockedActionCount(action.Skill, n.state.SkillState(action.Skill).Level()) {
			stoppedAt = ReplanBoundary{Kind: UnlockBoundary, ActionID: macro.ActionID, IsExpected: true, CausesReplan: true}
			return true
		}
		if macro.StopAt.InventoryPressure > 0 {
			frac := float64(g.Inventory.UsedSlots()) / float64(g.Inventory.Capacity)
			if frac >= macro.StopAt.InventoryPressure {
				stoppedAt = ReplanBoundary{Kind: InventoryPressureBoundary, ActionID: macro.ActionID, IsExpected: true, CausesReplan: true}
				return true
			}
		}
		return false
	}

	before := b.State()
	engine.ConsumeTicksUntil(b, horizon, bundle, r, stop)
	after, _ := b.Finish()

	// ConsumeTicksUntil doesn't report how many ticks it actually
	// advanced before stop fired, so the segment's length is
	// approximated from before's rates: the sooner of the goal estimate
	// or the horizon cap, whichever this segment is more likely to have
	// hit given why it stopped.
	elapsed := horizon
	rt := rates.Estimate(before, bundle)
	wf := waitfor.OnGoal{Goal: target}
	if estimated := wf.EstimateTicks(before, rt); estimated > 0 && estimated < elapsed {
		elapsed = estimated
	}

	step := PlanStep{
		Kind:           StepMacro,
		Ticks:          elapsed,
		WaitFor:        wf,
		Macro:          macro,
		ExpectedAction: &macro.ActionID,
	}
	return node{state: after, steps: append(appendCopy(n.steps), step), planTick: n.planTick + elapsed}, stoppedAt
}

func appendCopy(steps []PlanStep) []PlanStep {
	out := make([]PlanStep, len(steps))
	copy(out, steps)
	return out
}
