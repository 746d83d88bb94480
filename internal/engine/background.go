package engine

import (
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/state"
)

// TickMiningNodes advances every tracked mining node's regen or respawn
// countdown by dt ticks. A depleted node counts down RespawnTicksRemaining
// and resets to full HP at 0; a damaged-but-not-depleted node counts down
// RegenTicksRemaining and heals 1 HP at 0, re-arming the countdown from
// the action's NodeRegenTicks if further healing is still possible. No
// timer carries leftover ticks across a reset (design doc Section 4.3).
func TickMiningNodes(b *state.StateUpdateBuilder, dt int64, bundle *registry.Bundle) {
	g := b.State()
	for actionID, as := range g.ActionStates {
		if as.Mining == nil {
			continue
		}
		action, ok := bundle.Actions[actionID]
		if !ok {
			continue
		}
		b.MutateActionState(actionID, func(as state.ActionState) state.ActionState {
			node := *as.Mining
			if node.Depleted {
				node.RespawnTicksRemaining -= dt
				if node.RespawnTicksRemaining <= 0 {
					node.Depleted = false
					node.HPLost = 0
					node.RespawnTicksRemaining = 0
				}
			} else if node.HPLost > 0 {
				node.RegenTicksRemaining -= dt
				if node.RegenTicksRemaining <= 0 {
					node.HPLost--
					if node.HPLost > 0 {
						node.RegenTicksRemaining = action.NodeRegenTicks
					} else {
						node.RegenTicksRemaining = 0
					}
				}
			}
			as.Mining = &node
			return as
		})
	}
}
