// Package goal implements the Goal sum type the solver plans toward:
// a target expressed in GP or skill levels. See spec.md §4.6.
package goal

import (
	"fmt"

	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
	"github.com/kestrelgames/idlecore/internal/xp"
)

// Goal is the sealed sum type a plan is solved against. Only this
// package implements it.
type Goal interface {
	IsSatisfied(g state.GlobalState) bool
	Remaining(g state.GlobalState) float64
	Describe() string
	// RelevantSkills lists the skills whose level or XP this goal cares
	// about directly, used by the capability cache key (spec.md §4.7).
	RelevantSkills() []skills.Skill
	goal()
}

// ReachGp is satisfied once the player's GP reaches N.
type ReachGp struct {
	N int64
}

func (g ReachGp) goal() {}

func (g ReachGp) IsSatisfied(s state.GlobalState) bool { return s.GP >= g.N }

func (g ReachGp) Remaining(s state.GlobalState) float64 {
	r := float64(g.N - s.GP)
	if r < 0 {
		return 0
	}
	return r
}

func (g ReachGp) Describe() string { return fmt.Sprintf("reach %d GP", g.N) }

func (g ReachGp) RelevantSkills() []skills.Skill { return nil }

// ReachSkillLevel is satisfied once skill reaches Level. The target XP
// is derived once via xp.StartXPForLevel so Remaining can report in XP
// terms, matching how rates.Rates reports XP throughput.
type ReachSkillLevel struct {
	Skill skills.Skill
	Level int
}

func (g ReachSkillLevel) goal() {}

func (g ReachSkillLevel) targetXP() int64 { return xp.StartXPForLevel(g.Level) }

func (g ReachSkillLevel) IsSatisfied(s state.GlobalState) bool {
	return s.SkillState(g.Skill).XP >= g.targetXP()
}

func (g ReachSkillLevel) Remaining(s state.GlobalState) float64 {
	r := float64(g.targetXP() - s.SkillState(g.Skill).XP)
	if r < 0 {
		return 0
	}
	return r
}

func (g ReachSkillLevel) Describe() string {
	return fmt.Sprintf("reach %s level %d", g.Skill.Name(), g.Level)
}

func (g ReachSkillLevel) RelevantSkills() []skills.Skill { return []skills.Skill{g.Skill} }

// MultiSkill is satisfied once every named skill reaches its target
// level. Remaining sums the per-skill XP deficits, which keeps the
// solver's admissible heuristic a true lower bound: training skill A
// can never make up for a deficit in skill B.
type MultiSkill struct {
	Targets map[skills.Skill]int
}

func (g MultiSkill) goal() {}

func (g MultiSkill) IsSatisfied(s state.GlobalState) bool {
	for skill, level := range g.Targets {
		if s.SkillState(skill).XP < xp.StartXPForLevel(level) {
			return false
		}
	}
	return true
}

func (g MultiSkill) Remaining(s state.GlobalState) float64 {
	var total float64
	for skill, level := range g.Targets {
		r := float64(xp.StartXPForLevel(level) - s.SkillState(skill).XP)
		if r > 0 {
			total += r
		}
	}
	return total
}

func (g MultiSkill) Describe() string {
	return fmt.Sprintf("reach %d skill targets", len(g.Targets))
}

func (g MultiSkill) RelevantSkills() []skills.Skill {
	out := make([]skills.Skill, 0, len(g.Targets))
	for skill := range g.Targets {
		out = append(out, skill)
	}
	return out
}
