package state

import (
	"encoding/json"
	"fmt"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// ActivityKind discriminates the ActiveActivity sum type.
type ActivityKind string

const (
	ActivitySkill  ActivityKind = "skill"
	ActivityCombat ActivityKind = "combat"
)

// ActiveActivity is the tagged union of what the player is currently
// doing in the foreground: a skill action, or combat. At most one is
// active at a time; GlobalState.ActiveActivity is a pointer and nil
// means no foreground activity.
type ActiveActivity struct {
	Kind ActivityKind `json:"type"`

	// ActivitySkill
	Skill          skills.Skill `json:"skill,omitempty"`
	ActionID       ids.Id       `json:"actionId,omitempty"`
	SelectedRecipe *ids.Id      `json:"selectedRecipe,omitempty"`

	// ActivityCombat
	Context CombatContext `json:"context,omitempty"`

	// Shared progress fields.
	Progress     CombatProgressState `json:"progress,omitempty"`
	ProgressTicks int64              `json:"progressTicks"`
	TotalTicks    int64              `json:"totalTicks"`
}

// NewSkillActivity starts a skill activity at progress 0.
func NewSkillActivity(skill skills.Skill, action ids.Id, totalTicks int64, recipe *ids.Id) ActiveActivity {
	return ActiveActivity{
		Kind:       ActivitySkill,
		Skill:      skill,
		ActionID:   action,
		SelectedRecipe: recipe,
		TotalTicks: totalTicks,
	}
}

// NewCombatActivity starts a combat activity at progress 0.
func NewCombatActivity(ctx CombatContext, progress CombatProgressState, totalTicks int64) ActiveActivity {
	return ActiveActivity{
		Kind:          ActivityCombat,
		Context:       ctx,
		Progress:      progress,
		TotalTicks:    totalTicks,
	}
}

// IsComplete reports whether progress has reached the total, i.e. this
// tick's breakpoint landed on a completion.
func (a ActiveActivity) IsComplete() bool {
	return a.ProgressTicks >= a.TotalTicks && a.TotalTicks > 0
}

// WithProgress returns a copy advanced by dt ticks (never exceeding TotalTicks).
func (a ActiveActivity) WithProgress(dt int64) ActiveActivity {
	a.ProgressTicks += dt
	if a.ProgressTicks > a.TotalTicks {
		a.ProgressTicks = a.TotalTicks
	}
	return a
}

// Reset returns a copy with progress wound back to zero, as happens on
// completion (spec.md §3: "on completion progress wraps to 0").
func (a ActiveActivity) Reset() ActiveActivity {
	a.ProgressTicks = 0
	return a
}

// TicksUntilComplete returns the ticks remaining before this activity's
// foreground completion fires.
func (a ActiveActivity) TicksUntilComplete() int64 {
	remaining := a.TotalTicks - a.ProgressTicks
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarshalJSON renders the discriminated-union wire form; a nil
// *ActiveActivity marshals as JSON null per spec.md §6 maybe_from_json.
func (a ActiveActivity) MarshalJSON() ([]byte, error) {
	type alias ActiveActivity
	return json.Marshal(alias(a))
}

func (a *ActiveActivity) UnmarshalJSON(data []byte) error {
	type alias ActiveActivity
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind != ActivitySkill && raw.Kind != ActivityCombat {
		return fmt.Errorf("state: unknown activity type %q", raw.Kind)
	}
	*a = ActiveActivity(raw)
	return nil
}
