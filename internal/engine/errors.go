// Package engine implements the tick-driven simulation core: the
// per-skill subsystems, the breakpoint-based tick loop (consume_ticks),
// and the rate estimator. See design doc Sections 4.3, 4.4, 4.5.
package engine

import "errors"

// Sentinel errors raised by user-initiated operations (start an action,
// buy an upgrade, enter a slayer area, claim a mastery token). Errors
// encountered while ticks are being processed are never returned this
// way — they are folded into Changes.DroppedItems and activity
// clearance instead, per design doc Section 7.
var (
	ErrInventoryFull        = errors.New("engine: inventory full")
	ErrInsufficientInputs   = errors.New("engine: insufficient inputs")
	ErrInsufficientCurrency = errors.New("engine: insufficient currency")
	ErrStunned              = errors.New("engine: player is stunned")
	ErrLevelTooLow          = errors.New("engine: level requirement not met")
	ErrRequirementUnmet     = errors.New("engine: requirement not met")
	ErrInvalidArgument      = errors.New("engine: invalid argument")
	ErrPoolFull             = errors.New("engine: mastery pool full")
)
