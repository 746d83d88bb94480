// Package modifiers implements the modifier resolver: a deterministic
// fold of contributions from many sources into a flat, scope-filtered
// numeric map. See spec.md §4.1.
package modifiers

import (
	"math"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// Scope filters where a modifier entry applies. A nil field on any axis
// means that axis is unconstrained; every non-nil axis must match the
// anchor for the entry to contribute (they AND together).
type Scope struct {
	SkillID    *skills.Skill `json:"skillId,omitempty"`
	ActionID   *ids.Id       `json:"actionId,omitempty"`
	CategoryID *ids.Id       `json:"categoryId,omitempty"`
}

// Entry is one scoped numeric contribution to a named modifier.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Scope Scope   `json:"scope"`
}

// Scaling describes a mastery-level bonus that repeats as the owning
// skill's level climbs past TriggerLevel, per spec.md §4.1:
// multiplicity = floor((min(level, max) - trigger) / slope) + 1.
type Scaling struct {
	TriggerLevel int
	SlopeLevels  int
	MaxLevel     int // 0 means uncapped (treated as math.MaxInt32)
}

// Multiplicity computes the scaling multiplicity for a skill at level.
// Below TriggerLevel it is 0 (the bonus has not unlocked).
func (s Scaling) Multiplicity(level int) int64 {
	if level < s.TriggerLevel {
		return 0
	}
	max := s.MaxLevel
	if max <= 0 {
		max = math.MaxInt32
	}
	capped := level
	if capped > max {
		capped = max
	}
	slope := s.SlopeLevels
	if slope <= 0 {
		slope = 1
	}
	return int64((capped-s.TriggerLevel)/slope) + 1
}

// Modifier groups entries that share an optional scaling rule.
type Modifier struct {
	Entries []Entry
	Scaling *Scaling
}

// TargetKind distinguishes a Player anchor from an Enemy one, used to
// gate slayer-area effects (spec.md §4.1: "only if target matches Player").
type TargetKind uint8

const (
	TargetPlayer TargetKind = iota
	TargetEnemy
)

// Anchor is the lookup key the resolver matches scopes against: either a
// skill action, or a combat/equipment context.
type Anchor struct {
	Skill      skills.Skill
	ActionID   ids.Id
	CategoryID ids.Id
	Target     TargetKind
}

// Contribution pairs a Modifier with the multiplicity its source
// already computed (the purchase count for shop entries and
// constellations; Scaling.Multiplicity(level) for mastery bonuses; 1 for
// other sources such as agility obstacles and equipment).
type Contribution struct {
	Mod          Modifier
	Multiplicity int64
}

// ResolvedModifiers is the flat map the engine consults at every
// decision point. Unknown names resolve to 0 via Get, never an error
// (spec.md §4.1: "errors only on unknown modifier name (returns 0)").
type ResolvedModifiers map[string]float64

// Get returns the accumulated value for name, or 0 if absent.
func (r ResolvedModifiers) Get(name string) float64 {
	return r[name]
}

// Reserved modifier names consulted throughout the engine.
const (
	SkillInterval              = "skillInterval"              // percent
	FlatSkillInterval          = "flatSkillInterval"           // milliseconds
	SkillXP                    = "skillXP"                     // percent
	SkillItemDoublingChance    = "skillItemDoublingChance"     // percent
	PerfectCookChance          = "perfectCookChance"           // percent
	FlatSlayerAreaEffectNegation = "flatSlayerAreaEffectNegation"
)

func (r ResolvedModifiers) SkillIntervalPct() float64           { return r.Get(SkillInterval) }
func (r ResolvedModifiers) FlatSkillIntervalMs() float64        { return r.Get(FlatSkillInterval) }
func (r ResolvedModifiers) SkillXPPct() float64                 { return r.Get(SkillXP) }
func (r ResolvedModifiers) DoublingChancePct() float64          { return r.Get(SkillItemDoublingChance) }
func (r ResolvedModifiers) PerfectCookChancePct() float64       { return r.Get(PerfectCookChance) }

// Resolve folds every contribution into a flat map, honoring scope per
// entry and multiplicity per modifier. This is the algorithm of
// spec.md §4.1 and is a pure function of its inputs.
func Resolve(anchor Anchor, contributions []Contribution) ResolvedModifiers {
	out := make(ResolvedModifiers)
	for _, c := range contributions {
		if c.Multiplicity == 0 {
			continue
		}
		for _, e := range c.Mod.Entries {
			if !scopeMatches(e.Scope, anchor) {
				continue
			}
			out[e.Name] += e.Value * float64(c.Multiplicity)
		}
	}
	return out
}

func scopeMatches(s Scope, a Anchor) bool {
	if s.SkillID != nil && *s.SkillID != a.Skill {
		return false
	}
	if s.ActionID != nil && *s.ActionID != a.ActionID {
		return false
	}
	if s.CategoryID != nil && *s.CategoryID != a.CategoryID {
		return false
	}
	return true
}
