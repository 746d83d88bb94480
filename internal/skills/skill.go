// Package skills provides the Skill enum and per-skill progression
// state (experience and mastery pool experience). See spec.md §3.
package skills

import "github.com/kestrelgames/idlecore/internal/xp"

// Skill enumerates every trainable skill the engine drives.
type Skill uint8

const (
	Woodcutting Skill = iota
	Mining
	Fishing
	Firemaking
	Cooking
	Thieving
	Farming
	Agility
	Astrology
	Slayer
	Attack
	Strength
	Defence
	Hitpoints
	Ranged
	Magic
	Runecrafting
	Smithing
	Fletching
	Crafting
	Herblore
	Summoning
)

// NumSkills is the total number of skills the engine knows about.
const NumSkills = int(Summoning) + 1

// Name returns the canonical lower-case skill name, used for modifier
// scope matching and logging.
func (s Skill) Name() string {
	if int(s) < len(skillNames) {
		return skillNames[s]
	}
	return "unknown"
}

var skillNames = [NumSkills]string{
	"woodcutting", "mining", "fishing", "firemaking", "cooking",
	"thieving", "farming", "agility", "astrology", "slayer",
	"attack", "strength", "defence", "hitpoints", "ranged", "magic",
	"runecrafting", "smithing", "fletching", "crafting", "herblore",
	"summoning",
}

// ParseName resolves a lower-case skill name to its enum value.
func ParseName(name string) (Skill, bool) {
	for i, n := range skillNames {
		if n == name {
			return Skill(i), true
		}
	}
	return 0, false
}

// IsCombat reports whether the skill is trained through combat rather
// than a foreground action loop.
func (s Skill) IsCombat() bool {
	switch s {
	case Attack, Strength, Defence, Hitpoints, Ranged, Magic, Slayer:
		return true
	default:
		return false
	}
}

// State is the per-skill progression record: experience and the
// mastery pool's banked experience.
type State struct {
	XP            int64 `json:"xp"`
	MasteryPoolXP int64 `json:"masteryPoolXp,omitempty"`
}

// Level returns the current level derived from XP.
func (s State) Level() int {
	return xp.LevelForXP(s.XP)
}

// AddXP returns a new State with n additional XP (n may be fractional
// rewards already rounded by the caller). XP never goes negative.
func (s State) AddXP(n int64) State {
	if n < 0 {
		n = 0
	}
	s.XP += n
	return s
}

// MaxMasteryPoolXP returns the mastery pool cap for a skill given the
// sum of 99-mastery XP across its actions — the pool caps at 50% of the
// sum of 99-mastery XP across every
// action the skill offers, the standard idle-game convention this
// engine follows.
func MaxMasteryPoolXP(sumOf99MasteryXP int64) int64 {
	return sumOf99MasteryXP / 2
}

// AddMasteryPoolXP returns a new State with n mastery pool XP added,
// clamped to cap (spec.md §3 invariant: pool XP <= max pool XP).
func (s State) AddMasteryPoolXP(n, cap int64) State {
	if n < 0 {
		n = 0
	}
	s.MasteryPoolXP += n
	if s.MasteryPoolXP > cap {
		s.MasteryPoolXP = cap
	}
	return s
}
