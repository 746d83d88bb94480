// Package registry provides the read-only, namespace-keyed data tables
// the engine consults but never mutates: items, actions, monsters,
// dungeons, slayer areas/categories, shop entries, mastery bonuses,
// crops, agility obstacles, and astrology constellations. See spec.md
// §1 ("the static data registries... are inputs whose schema is
// described only via the types the engine uses") and §6 ("Registries").
package registry

import (
	"github.com/kestrelgames/idlecore/internal/droptable"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/modifiers"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// ActionKind discriminates how an action's completion is computed.
type ActionKind string

const (
	ActionProducer ActionKind = "producer" // woodcutting, mining, fishing, thieving, runecrafting...
	ActionConsumer ActionKind = "consumer" // firemaking, cooking
)

// ItemQuantity pairs an item id with a fixed or ranged quantity.
type ItemQuantity struct {
	Item   ids.Id
	MinQty int64
	MaxQty int64
}

// Action is a registry record for a single skill action.
type Action struct {
	ID                ids.Id
	Skill             skills.Skill
	Name              string
	Kind              ActionKind
	LevelRequirement  int
	CategoryID        ids.Id
	BaseDurationTicks int64
	Inputs            []ItemQuantity // consumer actions only
	Outputs           []ItemQuantity
	SkillXP           int64
	MasteryXPBase     int64
	Drops             droptable.Droppable // skill-level drops (e.g. bird nest, gem table)
	NPCPerception     float64             // thieving only

	// Mining-node-only fields; zero for every other skill's actions.
	NodeMaxHP         int64
	NodeRegenTicks    int64 // ticks between +1 HP regen while damaged and not depleted
	NodeRespawnTicks  int64 // ticks the node stays depleted before HP resets to max
}

// AttackStyle selects which combat stat a monster's XP reward scales.
type AttackStyle string

const (
	StyleMelee  AttackStyle = "melee"
	StyleRanged AttackStyle = "ranged"
	StyleMagic  AttackStyle = "magic"
)

// Monster is a registry record for a combat opponent.
type Monster struct {
	ID                ids.Id
	Name              string
	MaxHP             int64
	Accuracy          float64
	Evasion           float64
	MaxHit            int64
	AttackIntervalTicks int64
	AttackStyle       AttackStyle
	XPRewards         map[skills.Skill]int64
	Drops             droptable.Droppable
	SlayerLevelReq    int
	SpawnDelayTicks   int64 // ticks between a kill and the next monster's attacks starting
}

// Dungeon is an ordered sequence of monsters fought back to back.
type Dungeon struct {
	ID         ids.Id
	Name       string
	MonsterIDs []ids.Id
}

// SlayerArea gates a set of monsters behind a requirement and applies
// an area-wide modifier effect while the player fights there.
type SlayerArea struct {
	ID               ids.Id
	Name             string
	MonsterID        ids.Id
	LevelRequirement int
	ItemRequirement  *ids.Id
	EffectModifiers  []modifiers.Entry
}

// SlayerCategory defines a task band (e.g. "easy") and its rewards.
type SlayerCategory struct {
	ID               ids.Id
	Name             string
	MinKills         int64
	MaxKills         int64
	XPReward         int64
	CurrencyReward   int64
	RollCost         int64
}

// ShopCurrency enumerates the currencies a shop entry may cost.
type ShopCurrency string

const (
	CurrencyGP             ShopCurrency = "gp"
	CurrencySlayerCoins    ShopCurrency = "slayerCoins"
	CurrencyStardust       ShopCurrency = "stardust"
	CurrencyGoldenStardust ShopCurrency = "goldenStardust"
)

// ShopEntry is a purchasable upgrade. RepeatLimit of 0 means unlimited.
type ShopEntry struct {
	ID           ids.Id
	Name         string
	CategoryID   ids.Id
	Cost         ShopCurrency
	CostAmount   int64
	CostGrowth   float64 // cost multiplier per existing purchase, 1.0 = flat
	RepeatLimit  int64
	Modifier     modifiers.Modifier
}

// MasteryBonus is a per-skill bonus unlocked at a mastery level,
// optionally repeating via Scaling. AutoScopeToAction, when true, means
// the bonus's entries apply only to the action currently being trained
// within that skill rather than skill-wide.
type MasteryBonus struct {
	Skill             skills.Skill
	TriggerLevel      int
	Modifier          modifiers.Modifier
	AutoScopeToAction bool
}

// CropCategory groups crops that share XP/harvest rules (allotment vs tree).
type CropCategory struct {
	ID                  ids.Id
	Name                string
	HarvestMultiplier   float64
	GiveXPOnPlant       bool
	ScaleXPWithQuantity bool
}

// Crop is a plantable registry record.
type Crop struct {
	ID               ids.Id
	CategoryID       ids.Id
	SeedItem         ids.Id
	ProduceItem      ids.Id
	LevelRequirement int
	BaseXP           int64
	BaseQuantity     int64
	GrowthTicks      int64
}

// Obstacle is an agility course obstacle in a fixed course slot.
type Obstacle struct {
	ID         ids.Id
	SlotIndex  int
	Name       string
	DurationTicks int64
	Cost       ShopCurrency
	CostAmount int64
	Modifier   modifiers.Modifier
}

// Constellation is an astrology modifier purchase ladder.
type Constellation struct {
	ID                 ids.Id
	Name               string
	UnlockMasteryLevel int
	MaxCount           int64
	IsUnique           bool
	StardustCosts      []int64 // indexed by current purchase count
	Modifier           modifiers.Modifier
}

// MasteryToken pairs a non-combat skill with its mastery token item.
type MasteryToken struct {
	Skill skills.Skill
	Item  ids.Id
}

// Bundle is the complete, immutable set of tables for one namespace.
// It is loaded once (see Load) and then shared by reference across
// every simulation that consults it.
type Bundle struct {
	Namespace string

	Items             map[ids.Id]items.Item
	Actions           map[ids.Id]Action
	Monsters          map[ids.Id]Monster
	Dungeons          map[ids.Id]Dungeon
	SlayerAreas       map[ids.Id]SlayerArea
	SlayerCategories  map[ids.Id]SlayerCategory
	ShopEntries       map[ids.Id]ShopEntry
	MasteryBonuses    map[skills.Skill][]MasteryBonus // sorted by TriggerLevel ascending
	CropCategories    map[ids.Id]CropCategory
	Crops             map[ids.Id]Crop
	Obstacles         map[ids.Id]Obstacle
	Constellations    map[ids.Id]Constellation
	MasteryTokens     map[skills.Skill]MasteryToken

	names map[string]ids.Id // lower-cased display name -> id, across all tables
}

// ResolveName implements ids.NameResolver.
func (b *Bundle) ResolveName(name string) (ids.Id, bool) {
	id, ok := b.names[name]
	return id, ok
}

// UnlockedActionCount returns how many actions of skill the given
// level has unlocked — used by the mastery-token drop rate formula
// (spec.md §4.4: min(unlocked_actions/18500, 1)).
func (b *Bundle) UnlockedActionCount(skill skills.Skill, level int) int {
	count := 0
	for _, a := range b.Actions {
		if a.Skill == skill && a.LevelRequirement <= level {
			count++
		}
	}
	return count
}
