package engine

import (
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/rng"
	"github.com/kestrelgames/idlecore/internal/state"
)

// StartFiremaking begins burning action's declared input (a log), once
// verified present. Firemaking is a consumer action: inputs are checked
// again at completion since nothing prevents the player from depleting
// the inventory out from under a running activity via some other path.
func StartFiremaking(b *state.StateUpdateBuilder, action registry.Action) error {
	return StartAction(b, action, nil)
}

// CompleteFiremaking burns the log, yields ash/output and XP, and rolls
// the shared producer drop/mastery-token pipeline. Re-verifies inputs
// are still present before consuming them, per design doc Section 4.4
// ("consumer actions verify inputs at both start and completion").
func CompleteFiremaking(b *state.StateUpdateBuilder, action registry.Action, r rng.Rng) {
	if !hasInputs(b.State(), action, 1) {
		b.SetActiveActivity(nil)
		return
	}
	completeGenericProducer(b, action, r, false)
}
