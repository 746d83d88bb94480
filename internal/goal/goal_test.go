package goal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
	"github.com/kestrelgames/idlecore/internal/xp"
)

func TestReachGp(t *testing.T) {
	g := ReachGp{N: 1000}
	s := state.Empty(nil)

	assert.False(t, g.IsSatisfied(s))
	assert.InDelta(t, 1000, g.Remaining(s), 0.001)

	s.GP = 1500
	assert.True(t, g.IsSatisfied(s))
	assert.InDelta(t, 0, g.Remaining(s), 0.001)
	assert.Nil(t, g.RelevantSkills())
}

func TestReachSkillLevel(t *testing.T) {
	g := ReachSkillLevel{Skill: skills.Woodcutting, Level: 10}
	s := state.Empty(nil)

	assert.False(t, g.IsSatisfied(s))
	assert.Greater(t, g.Remaining(s), 0.0)
	assert.Equal(t, []skills.Skill{skills.Woodcutting}, g.RelevantSkills())

	s.SkillStates[skills.Woodcutting] = s.SkillStates[skills.Woodcutting].AddXP(xp.StartXPForLevel(10))
	assert.True(t, g.IsSatisfied(s))
	assert.InDelta(t, 0, g.Remaining(s), 0.001)
}

func TestMultiSkillSumsDeficits(t *testing.T) {
	g := MultiSkill{Targets: map[skills.Skill]int{
		skills.Woodcutting: 5,
		skills.Mining:      5,
	}}
	s := state.Empty(nil)
	assert.False(t, g.IsSatisfied(s))

	want := xp.StartXPForLevel(5) + xp.StartXPForLevel(5)
	assert.InDelta(t, float64(want), g.Remaining(s), 0.001)

	s.SkillStates[skills.Woodcutting] = s.SkillStates[skills.Woodcutting].AddXP(xp.StartXPForLevel(5))
	assert.False(t, g.IsSatisfied(s), "mining is still short")
	assert.InDelta(t, float64(xp.StartXPForLevel(5)), g.Remaining(s), 0.001)

	s.SkillStates[skills.Mining] = s.SkillStates[skills.Mining].AddXP(xp.StartXPForLevel(5))
	assert.True(t, g.IsSatisfied(s))

	assert.ElementsMatch(t, []skills.Skill{skills.Woodcutting, skills.Mining}, g.RelevantSkills())
}
