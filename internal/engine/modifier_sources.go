package engine

import (
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/modifiers"
	"github.com/kestrelgames/idlecore/internal/state"
)

// ResolveFor resolves the full modifier map for anchor against the live
// state g, gathering all seven contribution sources and folding them
// through modifiers.Resolve. This is the single entry point every
// subsystem calls before rolling a duration, a doubling chance, or a
// combat stat.
func ResolveFor(g state.GlobalState, anchor modifiers.Anchor) modifiers.ResolvedModifiers {
	return modifiers.Resolve(anchor, gatherContributions(g, anchor))
}

// gatherContributions assembles every source enumerated in design doc
// Section 4.1 from the live GlobalState into the Contribution list the
// modifier resolver folds. anchor.Target distinguishes a Player anchor
// (everything applies) from an Enemy anchor (slayer-area effects, source
// 5, are gated to Player only).
func gatherContributions(g state.GlobalState, anchor modifiers.Anchor) []modifiers.Contribution {
	bundle := g.Registries
	var out []modifiers.Contribution

	// Source 1: shop purchases.
	for entryID, count := range g.Shop.PurchaseCounts {
		if count <= 0 {
			continue
		}
		entry, ok := bundle.ShopEntries[entryID]
		if !ok {
			continue
		}
		out = append(out, modifiers.Contribution{Mod: entry.Modifier, Multiplicity: count})
	}

	// Source 2: mastery-level bonuses from the anchor's skill.
	level := g.SkillStates[anchor.Skill].Level()
	for _, bonus := range bundle.MasteryBonuses[anchor.Skill] {
		if level < bonus.TriggerLevel {
			continue
		}
		mod := bonus.Modifier
		if bonus.AutoScopeToAction {
			mod = scopeModifierToAction(mod, anchor.ActionID)
		}
		multiplicity := int64(1)
		if mod.Scaling != nil {
			multiplicity = mod.Scaling.Multiplicity(level)
		}
		out = append(out, modifiers.Contribution{Mod: mod, Multiplicity: multiplicity})
	}

	// Source 3: astrology constellations.
	for constID, count := range g.Astrology.Purchases {
		if count <= 0 {
			continue
		}
		c, ok := bundle.Constellations[constID]
		if !ok {
			continue
		}
		out = append(out, modifiers.Contribution{Mod: c.Modifier, Multiplicity: count})
	}

	// Source 4: agility obstacles active in built slots.
	for _, obstacleID := range g.Agility.BuiltSlots {
		o, ok := bundle.Obstacles[obstacleID]
		if !ok {
			continue
		}
		out = append(out, modifiers.Contribution{Mod: o.Modifier, Multiplicity: 1})
	}

	// Source 5: slayer area effects, Player target only.
	if anchor.Target == modifiers.TargetPlayer {
		if areaID, ok := activeSlayerAreaID(g); ok {
			if area, ok := bundle.SlayerAreas[areaID]; ok {
				out = append(out, modifiers.Contribution{
					Mod:          modifiers.Modifier{Entries: area.EffectModifiers},
					Multiplicity: 1,
				})
			}
		}
	}

	// Source 6: equipment item modifiers.
	for _, itemID := range g.Equipment.Equipped {
		it, ok := bundle.Items[itemID]
		if !ok {
			continue
		}
		out = append(out, modifiers.Contribution{Mod: it.Modifier, Multiplicity: 1})
	}
	if g.Equipment.Food != nil {
		if it, ok := bundle.Items[*g.Equipment.Food]; ok {
			out = append(out, modifiers.Contribution{Mod: it.Modifier, Multiplicity: 1})
		}
	}

	// Source 7: active conditional modifiers (potions, food buffs).
	for _, cm := range g.ActiveConditionalModifiers {
		if cm.TicksRemaining <= 0 {
			continue
		}
		out = append(out, modifiers.Contribution{Mod: cm.Modifier, Multiplicity: 1})
	}

	return out
}

// activeSlayerAreaID reports the slayer area currently being fought in,
// if the foreground activity is combat framed as a SlayerArea context.
func activeSlayerAreaID(g state.GlobalState) (id ids.Id, ok bool) {
	if g.ActiveActivity == nil || g.ActiveActivity.Kind != state.ActivityCombat {
		return id, false
	}
	ctx := g.ActiveActivity.Context
	if ctx.Kind != state.ContextSlayerArea {
		return id, false
	}
	return ctx.AreaID, true
}

func scopeModifierToAction(mod modifiers.Modifier, action ids.Id) modifiers.Modifier {
	out := modifiers.Modifier{Entries: make([]modifiers.Entry, len(mod.Entries)), Scaling: mod.Scaling}
	for i, e := range mod.Entries {
		a := action
		e.Scope.ActionID = &a
		out.Entries[i] = e
	}
	return out
}
