package state

// MiningNodeState tracks a single mining node's background lifecycle:
// damage accrued, regeneration countdown, and (once depleted) the
// respawn countdown. See spec.md §4.4.
type MiningNodeState struct {
	HPLost                int64 `json:"hpLost,omitempty"`
	RegenTicksRemaining   int64 `json:"regenTicksRemaining,omitempty"`
	RespawnTicksRemaining int64 `json:"respawnTicksRemaining,omitempty"`
	Depleted              bool  `json:"depleted,omitempty"`
}

// ActionState is the per-action progression record: mastery XP plus
// optional subsystem state slots (spec.md §3).
type ActionState struct {
	MasteryXP int64            `json:"masteryXp,omitempty"`
	Mining    *MiningNodeState `json:"mining,omitempty"`
	Combat    *CombatProgressState `json:"combat,omitempty"`
}

// AddMasteryXP returns a copy with n additional mastery XP (never negative).
func (a ActionState) AddMasteryXP(n int64) ActionState {
	if n < 0 {
		n = 0
	}
	a.MasteryXP += n
	return a
}
