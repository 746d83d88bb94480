package state

import (
	"encoding/json"
	"fmt"

	"github.com/kestrelgames/idlecore/internal/ids"
)

// CombatContextKind discriminates the CombatContext sum type. The string
// values are the "type" discriminant used on the wire (spec.md §6).
type CombatContextKind string

const (
	ContextMonster    CombatContextKind = "monster"
	ContextDungeon    CombatContextKind = "dungeon"
	ContextSlayerArea CombatContextKind = "slayerArea"
)

// CombatContext is a tagged union over the three ways combat can be
// framed: a single monster, a dungeon (ordered monster list with a
// cursor), or a slayer area (area id plus the currently-spawned
// monster). Exactly the fields relevant to Kind are populated.
type CombatContext struct {
	Kind CombatContextKind `json:"type"`

	// ContextMonster
	MonsterID ids.Id `json:"monsterId,omitempty"`

	// ContextDungeon
	DungeonID     ids.Id   `json:"dungeonId,omitempty"`
	MonsterIDs    []ids.Id `json:"monsterIds,omitempty"`
	CurrentIndex  int      `json:"currentIndex,omitempty"`

	// ContextSlayerArea
	AreaID ids.Id `json:"areaId,omitempty"`
}

// NewMonsterContext builds a single-monster combat context.
func NewMonsterContext(monster ids.Id) CombatContext {
	return CombatContext{Kind: ContextMonster, MonsterID: monster}
}

// NewDungeonContext builds a dungeon combat context starting at index 0.
func NewDungeonContext(dungeon ids.Id, monsters []ids.Id) CombatContext {
	return CombatContext{Kind: ContextDungeon, DungeonID: dungeon, MonsterIDs: monsters, CurrentIndex: 0}
}

// NewSlayerAreaContext builds a slayer-area combat context.
func NewSlayerAreaContext(area, monster ids.Id) CombatContext {
	return CombatContext{Kind: ContextSlayerArea, AreaID: area, MonsterID: monster}
}

// CurrentMonsterID returns the monster currently being fought,
// regardless of which variant the context is.
func (c CombatContext) CurrentMonsterID() ids.Id {
	switch c.Kind {
	case ContextMonster, ContextSlayerArea:
		return c.MonsterID
	case ContextDungeon:
		if c.CurrentIndex < len(c.MonsterIDs) {
			return c.MonsterIDs[c.CurrentIndex]
		}
		return ids.Id{}
	default:
		return ids.Id{}
	}
}

// Advance returns the context for the next monster after a kill. For a
// plain monster or slayer area the context is unchanged (the same
// monster respawns); for a dungeon the cursor advances, and ok is false
// once the last monster has been cleared.
func (c CombatContext) Advance() (next CombatContext, ok bool) {
	switch c.Kind {
	case ContextDungeon:
		if c.CurrentIndex+1 >= len(c.MonsterIDs) {
			return c, false
		}
		c.CurrentIndex++
		return c, true
	default:
		return c, true
	}
}

// CombatProgressState tracks the live per-tick countdowns of a fight.
type CombatProgressState struct {
	MonsterHP                  int64  `json:"monsterHp"`
	PlayerAttackTicksRemaining int64  `json:"playerAttackTicksRemaining"`
	MonsterAttackTicksRemaining int64 `json:"monsterAttackTicksRemaining"`
	SpawnTicksRemaining        *int64 `json:"spawnTicksRemaining,omitempty"`
}

// UnmarshalJSON supports the legacy migration named in spec.md §6:
// pre-rework saves stored a CombatContext of type "slayerTask" carrying
// both the area/monster pair and the task's kill counters inline. Those
// decode into a plain slayerArea CombatContext; the caller
// (FromJSON) is responsible for reconstructing the
// separate SlayerTask record from the same payload.
func (c *CombatContext) UnmarshalJSON(data []byte) error {
	type alias CombatContext
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind == "slayerTask" {
		raw.Kind = ContextSlayerArea
	}
	if raw.Kind != ContextMonster && raw.Kind != ContextDungeon && raw.Kind != ContextSlayerArea {
		return fmt.Errorf("state: unknown combat context type %q", raw.Kind)
	}
	*c = CombatContext(raw)
	return nil
}
