package state

import (
	"encoding/json"

	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/registry"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// wireGlobalState is the on-disk shape of GlobalState. Registries is
// deliberately absent: it is a borrowed reference to static data, never
// serialized (spec.md §6).
type wireGlobalState struct {
	Inventory    items.Inventory                `json:"inventory"`
	SkillStates  [skills.NumSkills]skills.State `json:"skillStates"`
	ActionStates map[string]ActionState         `json:"actionStates"`

	ActiveActivity *ActiveActivity `json:"activeActivity,omitempty"`

	GP         int64              `json:"gp"`
	Currencies map[Currency]int64 `json:"currencies,omitempty"`

	Shop      ShopState      `json:"shop"`
	Health    HealthState    `json:"health"`
	Equipment EquipmentState `json:"equipment"`
	Stunned   StunState      `json:"stunned"`
	Cooking   CookingState   `json:"cooking"`
	Farming   wireFarming    `json:"farming"`
	Agility   wireAgility    `json:"agility"`
	Astrology wireAstrology  `json:"astrology"`

	SlayerTask            *SlayerTask      `json:"slayerTask,omitempty"`
	SlayerTaskCompletions map[string]int64 `json:"slayerTaskCompletions,omitempty"`

	ActiveConditionalModifiers []ActiveConditionalModifier `json:"activeConditionalModifiers,omitempty"`
}

// wireFarming/wireAgility/wireAstrology re-key their id-valued maps to
// strings, since JSON object keys must be strings and ids.Id is a struct.
type wireFarming struct {
	Plots map[string]PlotState `json:"plots,omitempty"`
}

type wireAgility struct {
	BuiltSlots           []ids.Id         `json:"builtSlots,omitempty"`
	CurrentObstacleIndex int              `json:"currentObstacleIndex,omitempty"`
	PurchaseCounts       map[string]int64 `json:"purchaseCounts,omitempty"`
}

type wireAstrology struct {
	Purchases map[string]int64 `json:"purchases,omitempty"`
}

// ToJSON renders the complete state to its wire form (spec.md §6 to_json).
func (g GlobalState) ToJSON() ([]byte, error) {
	w := wireGlobalState{
		Inventory:      g.Inventory,
		SkillStates:    g.SkillStates,
		ActionStates:   keyByString(g.ActionStates),
		ActiveActivity: g.ActiveActivity,
		GP:             g.GP,
		Currencies:     g.Currencies,
		Shop:           g.Shop,
		Health:         g.Health,
		Equipment:      g.Equipment,
		Stunned:        g.Stunned,
		Cooking:        g.Cooking,
		Farming:        wireFarming{Plots: keyByStringPlot(g.Farming.Plots)},
		Agility: wireAgility{
			BuiltSlots:           g.Agility.BuiltSlots,
			CurrentObstacleIndex: g.Agility.CurrentObstacleIndex,
			PurchaseCounts:       keyByStringInt(g.Agility.PurchaseCounts),
		},
		Astrology: wireAstrology{
			Purchases: keyByStringInt(g.Astrology.Purchases),
		},
		SlayerTask:                 g.SlayerTask,
		SlayerTaskCompletions:      keyByStringInt(g.SlayerTaskCompletions),
		ActiveConditionalModifiers: g.ActiveConditionalModifiers,
	}
	return json.Marshal(w)
}

// FromJSON parses data into a GlobalState bound to registries. Saves
// written before the slayer-task rework stored the active task inline as
// a CombatContext of type "slayerTask"; FromJSON detects that legacy
// shape and reconstructs the standalone SlayerTask record from it, per
// spec.md §6's migration note.
func FromJSON(data []byte, registries *registry.Bundle) (GlobalState, error) {
	var w wireGlobalState
	if err := json.Unmarshal(data, &w); err != nil {
		return GlobalState{}, err
	}

	g := GlobalState{
		Inventory:    w.Inventory,
		SkillStates:  w.SkillStates,
		ActionStates: unkeyActionStates(w.ActionStates),
		GP:           w.GP,
		Currencies:   w.Currencies,
		Shop:         w.Shop,
		Health:       w.Health,
		Equipment:    w.Equipment,
		Stunned:      w.Stunned,
		Cooking:      w.Cooking,
		Farming:      FarmingState{Plots: unkeyPlots(w.Farming.Plots)},
		Agility: AgilityState{
			BuiltSlots:           w.Agility.BuiltSlots,
			CurrentObstacleIndex: w.Agility.CurrentObstacleIndex,
			PurchaseCounts:       unkeyInt(w.Agility.PurchaseCounts),
		},
		Astrology: AstrologyState{
			Purchases: unkeyInt(w.Astrology.Purchases),
		},
		SlayerTask:                 w.SlayerTask,
		SlayerTaskCompletions:      unkeyInt(w.SlayerTaskCompletions),
		ActiveConditionalModifiers: w.ActiveConditionalModifiers,
		ActiveActivity:             w.ActiveActivity,
		Registries:                 registries,
	}

	if g.SlayerTask == nil {
		if task, ok := legacySlayerTaskFromActivity(data); ok {
			g.SlayerTask = &task
		}
	}

	if g.ActionStates == nil {
		g.ActionStates = map[ids.Id]ActionState{}
	}
	if g.Currencies == nil {
		g.Currencies = map[Currency]int64{}
	}
	if g.Shop.PurchaseCounts == nil {
		g.Shop.PurchaseCounts = map[ids.Id]int64{}
	}
	if g.SlayerTaskCompletions == nil {
		g.SlayerTaskCompletions = map[ids.Id]int64{}
	}

	return g, nil
}

// legacySlayerTaskFromActivity scans the raw payload for the pre-rework
// "slayerTask"-typed combat context and, if found, extracts the kill
// counters it carried inline.
func legacySlayerTaskFromActivity(data []byte) (SlayerTask, bool) {
	var probe struct {
		ActiveActivity *struct {
			Context struct {
				Type           string `json:"type"`
				AreaID         string `json:"areaId"`
				MonsterID      string `json:"monsterId"`
				CategoryID     string `json:"categoryId"`
				KillsRequired  int64  `json:"killsRequired"`
				KillsCompleted int64  `json:"killsCompleted"`
			} `json:"context"`
		} `json:"activeActivity"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return SlayerTask{}, false
	}
	if probe.ActiveActivity == nil || probe.ActiveActivity.Context.Type != "slayerTask" {
		return SlayerTask{}, false
	}
	ctx := probe.ActiveActivity.Context
	area, err1 := ids.Parse(ctx.AreaID)
	monster, err2 := ids.Parse(ctx.MonsterID)
	category, err3 := ids.Parse(ctx.CategoryID)
	if err1 != nil || err2 != nil || err3 != nil {
		return SlayerTask{}, false
	}
	_ = area
	return SlayerTask{
		CategoryID:     category,
		MonsterID:      monster,
		KillsRequired:  ctx.KillsRequired,
		KillsCompleted: ctx.KillsCompleted,
	}, true
}

func keyByString(m map[ids.Id]ActionState) map[string]ActionState {
	out := make(map[string]ActionState, len(m))
	for k, v := range m {
		out[k.String()] = v
	}
	return out
}

func unkeyActionStates(m map[string]ActionState) map[ids.Id]ActionState {
	out := make(map[ids.Id]ActionState, len(m))
	for k, v := range m {
		id, err := ids.Parse(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

func keyByStringInt(m map[ids.Id]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k.String()] = v
	}
	return out
}

func unkeyInt(m map[string]int64) map[ids.Id]int64 {
	out := make(map[ids.Id]int64, len(m))
	for k, v := range m {
		id, err := ids.Parse(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

func keyByStringPlot(m map[ids.Id]PlotState) map[string]PlotState {
	out := make(map[string]PlotState, len(m))
	for k, v := range m {
		out[k.String()] = v
	}
	return out
}

func unkeyPlots(m map[string]PlotState) map[ids.Id]PlotState {
	out := make(map[ids.Id]PlotState, len(m))
	for k, v := range m {
		id, err := ids.Parse(k)
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}
