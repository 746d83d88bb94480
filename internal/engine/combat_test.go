package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/state"
)

func TestOnMonsterDeathSetsSpawnTimerForNextMonster(t *testing.T) {
	monsterID := ids.New("test", "goblin")
	monster := registry.Monster{
		ID:                  monsterID,
		MaxHP:               5,
		AttackIntervalTicks: 20,
		SpawnDelayTicks:     100,
	}

	b := state.NewBuilder(state.Empty(nil))
	b.SetActiveActivity(statePtr(state.NewCombatActivity(
		state.NewMonsterContext(monsterID),
		state.CombatProgressState{MonsterHP: 1, PlayerAttackTicksRemaining: 1, MonsterAttackTicksRemaining: 1},
		0,
	)))

	onMonsterDeath(b, b.State().ActiveActivity.Context, monster, rng.NewSource(1))

	activity := b.State().ActiveActivity
	if assert.NotNil(t, activity) {
		if assert.NotNil(t, activity.Progress.SpawnTicksRemaining) {
			assert.Equal(t, int64(100), *activity.Progress.SpawnTicksRemaining)
		}
		assert.Equal(t, monster.MaxHP, activity.Progress.MonsterHP)
	}
}

func TestTickCombatHoldsAttacksDuringSpawnDelay(t *testing.T) {
	monsterID := ids.New("test", "goblin")
	monster := registry.Monster{
		ID:                  monsterID,
		MaxHP:               5,
		AttackIntervalTicks: 20,
		Accuracy:            50,
		Evasion:             50,
		MaxHit:              1,
	}
	delay := int64(30)
	progress := state.CombatProgressState{
		MonsterHP:                   monster.MaxHP,
		PlayerAttackTicksRemaining:  PlayerAttackIntervalTicks,
		MonsterAttackTicksRemaining: monster.AttackIntervalTicks,
		SpawnTicksRemaining:         &delay,
	}

	b := state.NewBuilder(state.Empty(nil))
	b.SetActiveActivity(statePtr(state.NewCombatActivity(state.NewMonsterContext(monsterID), progress, 0)))

	r := rng.NewSource(1)
	TickCombat(b, monster, 10, r)

	activity := b.State().ActiveActivity
	if assert.NotNil(t, activity) {
		if assert.NotNil(t, activity.Progress.SpawnTicksRemaining) {
			assert.Equal(t, int64(20), *activity.Progress.SpawnTicksRemaining)
		}
		assert.Equal(t, monster.MaxHP, activity.Progress.MonsterHP, "no swings should resolve while the spawn timer is running")
		assert.Equal(t, PlayerAttackIntervalTicks, activity.Progress.PlayerAttackTicksRemaining)
	}

	TickCombat(b, monster, 20, r)
	activity = b.State().ActiveActivity
	if assert.NotNil(t, activity) {
		assert.Nil(t, activity.Progress.SpawnTicksRemaining, "spawn timer should clear once exhausted")
	}
}
