package solver

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/kestrelgames/idlecore/internal/candidates"
	"github.com/kestrelgames/idlecore/internal/engine"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/waitfor"
)

// InteractionKind discriminates the user-facing operations a plan can
// call for.
type InteractionKind string

const (
	InteractionSwitchActivity InteractionKind = "switchActivity"
	InteractionBuyShopItem    InteractionKind = "buyShopItem"
	InteractionSell           InteractionKind = "sell"
)

// Interaction is one concrete user operation a PlanStep may carry.
type Interaction struct {
	Kind       InteractionKind
	ActionID   ids.Id // InteractionSwitchActivity
	ShopItemID ids.Id // InteractionBuyShopItem
	SellItem   ids.Id // InteractionSell
	SellQty    int64  // InteractionSell
	// GPDelta is the GP cost (negative, InteractionBuyShopItem) or
	// proceeds (positive, InteractionSell) of the interaction. Zero when
	// a purchase used a non-GP currency, which PrettyPrint then renders
	// without a figure.
	GPDelta int64
}

func (i Interaction) describe() string {
	switch i.Kind {
	case InteractionSwitchActivity:
		return fmt.Sprintf("switch to %s", i.ActionID)
	case InteractionBuyShopItem:
		if i.GPDelta != 0 {
			return fmt.Sprintf("buy %s for %s gp", i.ShopItemID, humanComma(-i.GPDelta))
		}
		return fmt.Sprintf("buy %s", i.ShopItemID)
	case InteractionSell:
		if i.GPDelta != 0 {
			return fmt.Sprintf("sell inventory for %s gp", humanComma(i.GPDelta))
		}
		return "sell inventory"
	default:
		return "interaction"
	}
}

// PlanStepKind discriminates the PlanStep sum type.
type PlanStepKind string

const (
	StepInteraction PlanStepKind = "interaction"
	StepWait        PlanStepKind = "wait"
	StepMacro       PlanStepKind = "macro"
)

// PlanStep is the sealed sum type a Plan is built from: a single
// interaction, a plain tick-count wait, or a macro run spanning many
// completions. See spec.md §4.8.
type PlanStep struct {
	Kind PlanStepKind

	Interaction Interaction // StepInteraction

	Ticks          int64           // StepWait, StepMacro
	WaitFor        waitfor.WaitFor // StepWait, StepMacro
	ExpectedAction *ids.Id         // StepWait: the action expected to complete it, if any

	Macro candidates.MacroCandidate // StepMacro
}

// Plan is the solver's output: an ordered list of steps that, executed
// against the initial state, reach the goal.
type Plan struct {
	ID               uuid.UUID
	Steps            []PlanStep
	TotalTicks       int64
	InteractionCount int
	Diagnostics      *Diagnostics
}

// Compress folds consecutive equivalent steps: adjacent macro steps
// training the same action, and adjacent wait steps on the same
// expected action, collapse into one step with their ticks summed.
// Interaction steps never merge — each is a discrete user operation.
func (p *Plan) Compress() {
	if len(p.Steps) < 2 {
		return
	}
	out := make([]PlanStep, 0, len(p.Steps))
	for _, step := range p.Steps {
		if n := len(out); n > 0 && mergeable(out[n-1], step) {
			out[n-1].Ticks += step.Ticks
			continue
		}
		out = append(out, step)
	}
	p.Steps = out
}

func mergeable(a, b PlanStep) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case StepMacro:
		return a.Macro.ActionID == b.Macro.ActionID
	case StepWait:
		return sameExpectedAction(a.ExpectedAction, b.ExpectedAction) && sameWaitFor(a.WaitFor, b.WaitFor)
	default:
		return false
	}
}

func sameExpectedAction(a, b *ids.Id) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameWaitFor(a, b waitfor.WaitFor) bool {
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// PrettyPrint renders a human-readable transcript of the plan, with
// every tick figure formatted via engine.FormatTicks and every GP
// figure comma-grouped via humanize.Comma.
func (p *Plan) PrettyPrint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan %s: %d step(s), %s total, %d interaction(s)\n",
		p.ID, len(p.Steps), engine.FormatTicks(p.TotalTicks), p.InteractionCount)

	for i, step := range p.Steps {
		fmt.Fprintf(&b, "  %d. ", i+1)
		switch step.Kind {
		case StepInteraction:
			fmt.Fprintln(&b, step.Interaction.describe())
		case StepWait:
			fmt.Fprintf(&b, "wait %s %s\n", engine.FormatTicks(step.Ticks), waitfor.Describe(step.WaitFor))
		case StepMacro:
			fmt.Fprintf(&b, "train %s for %s (%s)\n",
				step.Macro.Skill.Name(), engine.FormatTicks(step.Ticks), waitfor.Describe(step.WaitFor))
		}
	}

	if p.Diagnostics != nil && len(p.Diagnostics.Boundaries) > 0 {
		fmt.Fprintf(&b, "diagnostics (%s): %d node(s) expanded, %d replan(s)\n",
			p.Diagnostics.RunID, p.Diagnostics.ExpandedNodes, p.Diagnostics.Replans)
		for _, boundary := range p.Diagnostics.Boundaries {
			if !boundary.IsExpected {
				fmt.Fprintf(&b, "  ! %s\n", boundary.Describe())
			}
		}
	}
	return b.String()
}

// humanComma comma-groups a GP figure for Interaction.describe.
func humanComma(n int64) string { return humanize.Comma(n) }
