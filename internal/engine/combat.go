package engine

import (
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/skills"
	"github.com/kestrelgames/idlecore/internal/state"
)

// PlayerAttackIntervalTicks is the fixed player attack speed; the
// source's weapon-speed tables are out of scope (see design doc), so
// every attack style shares one interval.
const PlayerAttackIntervalTicks = 30

// StartCombat begins a foreground combat activity against ctx's current
// monster, seeding fresh attack-interval countdowns and full monster HP.
func StartCombat(b *state.StateUpdateBuilder, ctx state.CombatContext, monster registry.Monster) error {
	if b.State().Stunned.IsStunned() {
		return ErrStunned
	}
	progress := state.CombatProgressState{
		MonsterHP:                   monster.MaxHP,
		PlayerAttackTicksRemaining:  PlayerAttackIntervalTicks,
		MonsterAttackTicksRemaining: monster.AttackIntervalTicks,
	}
	b.SetActiveActivity(statePtr(state.NewCombatActivity(ctx, progress, 0)))
	return nil
}

// TickCombat advances one combat exchange for dt ticks. The tick engine
// chooses dt to land exactly on the next attack event, so in practice
// this resolves a single swing per call; it loops defensively in case
// dt spans more than one interval.
func TickCombat(b *state.StateUpdateBuilder, monster registry.Monster, dt int64, r rng.Rng) {
	activity := b.State().ActiveActivity
	if activity == nil || activity.Kind != state.ActivityCombat {
		return
	}
	progress := activity.Progress

	for dt > 0 {
		if progress.SpawnTicksRemaining != nil {
			remaining := *progress.SpawnTicksRemaining
			step := dt
			if remaining < step {
				step = remaining
			}
			remaining -= step
			dt -= step
			if remaining <= 0 {
				progress.SpawnTicksRemaining = nil
			} else {
				progress.SpawnTicksRemaining = &remaining
			}
			continue
		}

		step := dt
		if progress.PlayerAttackTicksRemaining < step {
			step = progress.PlayerAttackTicksRemaining
		}
		if progress.MonsterAttackTicksRemaining < step {
			step = progress.MonsterAttackTicksRemaining
		}
		if step <= 0 {
			step = dt
		}
		progress.PlayerAttackTicksRemaining -= step
		progress.MonsterAttackTicksRemaining -= step
		dt -= step

		// Ordering: the monster's swing (combat-enemy) resolves before
		// the player's (foreground) when both land on the same tick.
		g := b.State()
		if progress.MonsterAttackTicksRemaining <= 0 {
			progress.MonsterAttackTicksRemaining = monster.AttackIntervalTicks
			defenceLevel := g.SkillState(skills.Defence).Level()
			evasion := 50 + float64(defenceLevel)
			chance := monster.Accuracy / (monster.Accuracy + evasion)
			if rng.RollAccuracy(r, chance) {
				b.DamagePlayer(rng.RollCombatDamage(r, monster.MaxHit))
			}
		}
		if b.State().Health.IsDead() {
			b.SetActiveActivity(nil)
			b.HealPlayerToFull()
			return
		}

		if progress.PlayerAttackTicksRemaining <= 0 {
			progress.PlayerAttackTicksRemaining = PlayerAttackIntervalTicks
			attackLevel := g.SkillState(skills.Attack).Level()
			strengthLevel := g.SkillState(skills.Strength).Level()
			chance := (50 + float64(attackLevel)) / (50 + float64(attackLevel) + monster.Evasion)
			if rng.RollAccuracy(r, chance) {
				maxHit := 1 + int64(strengthLevel/3)
				progress.MonsterHP -= rng.RollCombatDamage(r, maxHit)
			}
		}
		if progress.MonsterHP <= 0 {
			activity.Progress = progress
			b.SetActiveActivity(activity)
			onMonsterDeath(b, activity.Context, monster, r)
			return
		}
	}

	activity.Progress = progress
	b.SetActiveActivity(activity)
}

// onMonsterDeath grants each skill the fixed XP listed in
// monster.XPRewards (the player's attack style does not change the
// split), rolls drops, advances slayer task progress, and either respawns the same
// monster or advances a dungeon's cursor via CombatContext.Advance.
func onMonsterDeath(b *state.StateUpdateBuilder, ctx state.CombatContext, monster registry.Monster, r rng.Rng) {
	for skill, xp := range monster.XPRewards {
		b.AddSkillXP(skill, xp)
	}
	// Drops that overflow the inventory here are recorded and left on
	// the ground; combat keeps running, unlike a producer/consumer
	// skill action whose foreground activity halts on a full inventory.
	b.AddItemsByID(rng.RollDrops(r, monster.Drops))

	g := b.State()
	if g.SlayerTask != nil && ctx.CurrentMonsterID() == g.SlayerTask.MonsterID {
		task := *g.SlayerTask
		task.KillsCompleted++
		if task.IsComplete() {
			if category, ok := g.Registries.SlayerCategories[task.CategoryID]; ok {
				CompleteSlayerTaskRewards(b, category)
			}
			b.RecordSlayerTaskCompletion(task.CategoryID)
			b.SetSlayerTask(nil)
		} else {
			b.SetSlayerTask(&task)
		}
	}

	next, ok := ctx.Advance()
	if !ok {
		b.SetActiveActivity(nil)
		return
	}
	var spawnTicks *int64
	if monster.SpawnDelayTicks > 0 {
		delay := monster.SpawnDelayTicks
		spawnTicks = &delay
	}
	progress := state.CombatProgressState{
		MonsterHP:                   monster.MaxHP,
		PlayerAttackTicksRemaining:  PlayerAttackIntervalTicks,
		MonsterAttackTicksRemaining: monster.AttackIntervalTicks,
		SpawnTicksRemaining:         spawnTicks,
	}
	b.SetActiveActivity(statePtr(state.NewCombatActivity(next, progress, 0)))
}
