package solver

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kestrelgames/idlecore/internal/ids"
)

// BoundaryKind names why a macro's segment simulation stopped. The first
// six are the replan boundaries spec.md §4.8 enumerates; the last two
// are termination-exhaustion outcomes rather than state boundaries.
type BoundaryKind string

const (
	GoalReachedBoundary       BoundaryKind = "goalReached"
	UpgradeAffordableBoundary BoundaryKind = "upgradeAffordable"
	UnlockBoundary            BoundaryKind = "unlock"
	InputsDepletedBoundary    BoundaryKind = "inputsDepleted"
	HorizonCapBoundary        BoundaryKind = "horizonCap"
	InventoryPressureBoundary BoundaryKind = "inventoryPressure"

	ReplanLimitExceeded BoundaryKind = "replanLimitExceeded"
	TimeBudgetExceeded  BoundaryKind = "timeBudgetExceeded"
)

// ReplanBoundary records one point at which the solver's segment
// simulation stopped a macro run and re-evaluated candidates.
type ReplanBoundary struct {
	Kind BoundaryKind

	// IsExpected marks a boundary the macro's own StopAt was watching
	// for (e.g. it asked to watch unlocks and one fired). An unexpected
	// boundary is one the simulator hit incidentally.
	IsExpected bool

	// CausesReplan marks a boundary that actually triggered a new
	// Enumerate/search pass, as opposed to one that was merely logged.
	CausesReplan bool

	ActionID ids.Id // the macro action being trained when the boundary fired
	Detail   string
}

func (b ReplanBoundary) Describe() string {
	if b.Detail != "" {
		return fmt.Sprintf("%s: %s", b.Kind, b.Detail)
	}
	return string(b.Kind)
}

// Diagnostics accumulates the solver run's bookkeeping: a stable run
// identity, the boundary log, and the two counters the termination
// params (MaxExpandedNodes, MaxReplans) are checked against.
type Diagnostics struct {
	RunID         uuid.UUID
	Boundaries    []ReplanBoundary
	ExpandedNodes int
	Replans       int
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{RunID: uuid.New()}
}

func (d *Diagnostics) record(b ReplanBoundary) {
	d.Boundaries = append(d.Boundaries, b)
	if b.CausesReplan {
		d.Replans++
	}
}
