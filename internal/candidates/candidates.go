// Package candidates enumerates the moves the solver can make from a
// given state toward a given goal, and caches that enumeration behind
// a small equivalence-class key so repeated visits to "the same kind
// of state" don't re-enumerate. See spec.md §4.7.
package candidates

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kestrelgames/idlecore/internal/goal"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
	"github.com/kestrelgames/idlecore/internal/waitfor"
)

// feederSkill names, for a consumer skill, the producer skill whose
// output is that skill's typical input — cooking trains on fish,
// firemaking on logs. This is a fixed, small table rather than a
// general input-provenance search, since the registry does not tag
// "which skill produced this item."
var feederSkill = map[skills.Skill]skills.Skill{
	skills.Cooking:    skills.Fishing,
	skills.Firemaking: skills.Woodcutting,
}

// BoundaryWatch tells a macro candidate's segment simulator which
// replan boundaries to watch for while training — the solver package
// owns the actual ReplanBoundary sum type and boundary detection; this
// is only the descriptor a MacroCandidate carries into that search.
// The solver's segment simulator does not read WatchUpgrades.
type BoundaryWatch struct {
	WatchUpgrades       bool
	WatchUnlocks        bool
	WatchInputsDepleted bool
	HorizonTicks        int64   // 0 disables the horizon cap
	InventoryPressure   float64 // 0 disables the pressure watch
}

// MacroCandidate is a compound "train skill until boundary" move.
type MacroCandidate struct {
	Skill    skills.Skill
	ActionID ids.Id
	StopAt   BoundaryWatch
}

// WatchList names the skills and items the solver should keep an eye
// on even when no macro targeting them is currently selected — used to
// decide whether a cached Candidates set has gone stale enough to
// re-enumerate early.
type WatchList struct {
	Skills []skills.Skill
	Items  []ids.Id
}

// Candidates is the full move set available from one state toward one
// goal.
type Candidates struct {
	SwitchToActivities      []ids.Id
	BuyUpgrades             []ids.Id
	SellPolicy              waitfor.SellPolicy
	ShouldEmitSellCandidate bool
	Watch                   WatchList
	Macros                  []MacroCandidate
}

// relevantSkills returns g's goal-relevant skills plus each one's feeder
// skill, per §4.7's "goal-relevant skills (plus their producer skills
// for consuming skills)".
func relevantSkills(g goal.Goal) []skills.Skill {
	seen := map[skills.Skill]bool{}
	var out []skills.Skill
	add := func(s skills.Skill) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range g.RelevantSkills() {
		add(s)
		if feeder, ok := feederSkill[s]; ok {
			add(feeder)
		}
	}
	return out
}

// Enumerate builds the full Candidates set for g toward goal.
func Enumerate(g state.GlobalState, bundle *registry.Bundle, target goal.Goal, policy waitfor.SellPolicy) Candidates {
	relevant := relevantSkills(target)
	relevantSet := make(map[skills.Skill]bool, len(relevant))
	for _, s := range relevant {
		relevantSet[s] = true
	}

	var switchTo []ids.Id
	var macros []MacroCandidate
	for _, action := range bundle.Actions {
		if !relevantSet[action.Skill] {
			continue
		}
		if g.SkillState(action.Skill).Level() < action.LevelRequirement {
			continue
		}
		// The active action is deliberately NOT excluded here: Enumerate's
		// result is cached by Cache.Get and shared across every state that
		// hashes to the same CandidateCacheKey, each of which may have a
		// different (or no) active action. Filtering happens once, at
		// lookup time, in filterActive.
		switchTo = append(switchTo, action.ID)
		macros = append(macros, MacroCandidate{
			Skill:    action.Skill,
			ActionID: action.ID,
			StopAt: BoundaryWatch{
				WatchUpgrades:       true,
				WatchUnlocks:        true,
				WatchInputsDepleted: len(action.Inputs) > 0,
			},
		})
	}
	sort.Slice(switchTo, func(i, j int) bool { return switchTo[i].String() < switchTo[j].String() })
	sort.Slice(macros, func(i, j int) bool { return macros[i].ActionID.String() < macros[j].ActionID.String() })

	var buy []ids.Id
	for _, entry := range bundle.ShopEntries {
		if !entryImprovesAny(bundle, entry, relevantSet) {
			continue
		}
		purchased := g.Shop.PurchaseCounts[entry.ID]
		if entry.RepeatLimit > 0 && purchased >= entry.RepeatLimit {
			continue
		}
		buy = append(buy, entry.ID)
	}
	sort.Slice(buy, func(i, j int) bool { return buy[i].String() < buy[j].String() })

	return Candidates{
		SwitchToActivities:      switchTo,
		BuyUpgrades:             buy,
		SellPolicy:              policy,
		ShouldEmitSellCandidate: needsSellCandidate(g, buy, bundle),
		Watch:                   WatchList{Skills: relevant},
		Macros:                  macros,
	}
}

func entryImprovesAny(bundle *registry.Bundle, entry registry.ShopEntry, relevantSet map[skills.Skill]bool) bool {
	for _, e := range entry.Modifier.Entries {
		if e.Scope.SkillID == nil {
			return true // unscoped (global) entries improve every skill
		}
		if relevantSet[*e.Scope.SkillID] {
			return true
		}
	}
	return false
}

// needsSellCandidate reports whether any affordable-soon upgrade costs
// more GP than the player currently holds, meaning a Sell interaction
// would need to run as a prerequisite (spec.md §4.8 "emit prerequisite
// Sell if needed").
func needsSellCandidate(g state.GlobalState, buy []ids.Id, bundle *registry.Bundle) bool {
	for _, id := range buy {
		entry, ok := bundle.ShopEntries[id]
		if !ok || entry.Cost != registry.CurrencyGP {
			continue
		}
		if entry.CostAmount > g.GP {
			return true
		}
	}
	return false
}

// CandidateCacheKey is the stable, comparable equivalence-class key
// spec.md §4.7 describes: two states with the same key share a cached
// Candidates set, modulo the active action (filtered out at lookup
// time by filterActive, which Cache.Get applies). It is a plain string so it can be
// used directly as a Go map key without a custom Equal/Hash pair.
type CandidateCacheKey string

// Key canonicalizes g's candidate-relevant shape into a CandidateCacheKey.
func Key(g state.GlobalState, target goal.Goal) CandidateCacheKey {
	relevant := relevantSkills(target)
	sort.Slice(relevant, func(i, j int) bool { return relevant[i] < relevant[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "inv=%d;", inventoryBucket(g))
	b.WriteString("lvl=")
	for _, s := range relevant {
		fmt.Fprintf(&b, "%d:%d,", s, g.SkillState(s).Level())
	}
	b.WriteString(";tiers=")
	for _, s := range relevant {
		fmt.Fprintf(&b, "%d:%d,", s, upgradeTier(g, s))
	}
	fmt.Fprintf(&b, ";goal=%s", target.Describe())
	return CandidateCacheKey(b.String())
}

// inventoryBucket discretizes fill level into 5 buckets (0..4).
func inventoryBucket(g state.GlobalState) int {
	if g.Inventory.Capacity <= 0 {
		return 0
	}
	frac := float64(g.Inventory.UsedSlots()) / float64(g.Inventory.Capacity)
	bucket := int(frac * 5)
	if bucket > 4 {
		bucket = 4
	}
	return bucket
}

// upgradeTier counts purchases made within skill's scope: shop purchases
// whose modifier improves skill (unscoped entries count for every skill),
// plus agility obstacle purchases for Agility and constellation
// purchases for Astrology; a table with no purchases contributes 0.
func upgradeTier(g state.GlobalState, skill skills.Skill) int64 {
	var total int64
	for id, n := range g.Shop.PurchaseCounts {
		if g.Registries != nil {
			if entry, ok := g.Registries.ShopEntries[id]; ok && !entryImprovesAny(g.Registries, entry, map[skills.Skill]bool{skill: true}) {
				continue
			}
		}
		total += n
	}
	if skill == skills.Agility {
		for _, n := range g.Agility.PurchaseCounts {
			total += n
		}
	}
	if skill == skills.Astrology {
		for _, n := range g.Astrology.Purchases {
			total += n
		}
	}
	return total
}

// Cache memoizes Enumerate results behind a CandidateCacheKey, with
// hit/miss counters as an observability aid (not consulted by the
// solver's own decisions).
type Cache struct {
	mu      sync.Mutex
	entries map[CandidateCacheKey]Candidates
	Hits    int64
	Misses  int64
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: map[CandidateCacheKey]Candidates{}}
}

// Get returns the cached Candidates for g/target, enumerating and
// storing on a miss. The returned SwitchToActivities has the currently
// active action filtered out, per §4.7's lookup-time filtering rule.
func (c *Cache) Get(g state.GlobalState, bundle *registry.Bundle, target goal.Goal, policy waitfor.SellPolicy) Candidates {
	key := Key(g, target)

	c.mu.Lock()
	cached, ok := c.entries[key]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	c.mu.Unlock()

	if !ok {
		cached = Enumerate(g, bundle, target, policy)
		c.mu.Lock()
		c.entries[key] = cached
		c.mu.Unlock()
	}

	return filterActive(cached, g)
}

func filterActive(c Candidates, g state.GlobalState) Candidates {
	if g.ActiveActivity == nil || g.ActiveActivity.Kind != state.ActivitySkill {
		return c
	}
	active := g.ActiveActivity.ActionID
	filtered := make([]ids.Id, 0, len(c.SwitchToActivities))
	for _, id := range c.SwitchToActivities {
		if id != active {
			filtered = append(filtered, id)
		}
	}
	c.SwitchToActivities = filtered
	return c
}
