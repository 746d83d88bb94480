package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/kestrelgames/idlecore/internal/droptable"
	"github.com/kestrelgames/idlecore/internal/ids"
	"github.com/kestrelgames/idlecore/internal/items"
	"github.com/kestrelgames/idlecore/internal/modifiers"
	"github.com/kestrelgames/idlecore/internal/skills"
)

// Load reads a bundle directory (a manifest.yaml plus a SQLite file) and
// returns an immutable Bundle. The database connection is closed before
// Load returns; nothing in the returned Bundle holds it open, matching
// spec.md §6 ("the engine never mutates them").
func Load(dir string) (*Bundle, error) {
	manifest, err := loadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open("sqlite", filepath.Join(dir, manifest.Database)+"?mode=ro&_query_only=true")
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", manifest.Database, err)
	}
	defer conn.Close()

	b := &Bundle{
		Namespace:        manifest.Namespace,
		Items:            map[ids.Id]items.Item{},
		Actions:          map[ids.Id]Action{},
		Monsters:         map[ids.Id]Monster{},
		Dungeons:         map[ids.Id]Dungeon{},
		SlayerAreas:      map[ids.Id]SlayerArea{},
		SlayerCategories: map[ids.Id]SlayerCategory{},
		ShopEntries:      map[ids.Id]ShopEntry{},
		MasteryBonuses:   map[skills.Skill][]MasteryBonus{},
		CropCategories:   map[ids.Id]CropCategory{},
		Crops:            map[ids.Id]Crop{},
		Obstacles:        map[ids.Id]Obstacle{},
		Constellations:   map[ids.Id]Constellation{},
		MasteryTokens:    map[skills.Skill]MasteryToken{},
		names:            map[string]ids.Id{},
	}

	loaders := []func(*sqlx.DB, *Bundle) error{
		loadItems, loadActions, loadActionIO, loadMonsters, loadDungeons,
		loadSlayerAreas, loadSlayerCategories, loadShopEntries,
		loadMasteryBonuses, loadCropCategories, loadCrops, loadObstacles,
		loadConstellations, loadMasteryTokens,
	}
	for _, fn := range loaders {
		if err := fn(conn, b); err != nil {
			return nil, err
		}
	}

	for skill := range b.MasteryBonuses {
		sort.Slice(b.MasteryBonuses[skill], func(i, j int) bool {
			return b.MasteryBonuses[skill][i].TriggerLevel < b.MasteryBonuses[skill][j].TriggerLevel
		})
	}

	return b, nil
}

func remember(b *Bundle, id ids.Id, name string) {
	b.names[strings.ToLower(name)] = id
}

func parseOptID(s sql.NullString) (*ids.Id, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	id, err := ids.Parse(s.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

type itemRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	SellPrice     int64          `db:"sell_price"`
	CompostValue  sql.NullInt64  `db:"compost_value"`
	HarvestBonus  sql.NullFloat64 `db:"harvest_bonus"`
	Stackable     bool           `db:"stackable"`
	MaxStackSize  sql.NullInt64  `db:"max_stack_size"`
	EquipSlots    sql.NullString `db:"equip_slots"`
	ModifierJSON  sql.NullString `db:"modifier_json"`
}

func loadItems(conn *sqlx.DB, b *Bundle) error {
	var rows []itemRow
	if err := conn.Select(&rows, `SELECT id, name, sell_price, compost_value, harvest_bonus, stackable, max_stack_size, equip_slots, modifier_json FROM items`); err != nil {
		return fmt.Errorf("registry: load items: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		it := items.Item{
			ID:        id,
			Name:      r.Name,
			SellPrice: r.SellPrice,
			Stackable: r.Stackable,
		}
		if r.CompostValue.Valid {
			v := r.CompostValue.Int64
			it.CompostValue = &v
		}
		if r.HarvestBonus.Valid {
			v := r.HarvestBonus.Float64
			it.HarvestBonus = &v
		}
		if r.MaxStackSize.Valid {
			it.MaxStackSize = r.MaxStackSize.Int64
		}
		if r.EquipSlots.Valid && r.EquipSlots.String != "" {
			for _, slotName := range strings.Split(r.EquipSlots.String, ",") {
				if slot, ok := parseEquipSlot(slotName); ok {
					it.ValidEquipSlots = append(it.ValidEquipSlots, slot)
				}
			}
		}
		if r.ModifierJSON.Valid && r.ModifierJSON.String != "" {
			mod, err := modifiers.DecodeModifier([]byte(r.ModifierJSON.String))
			if err != nil {
				return fmt.Errorf("registry: item %s modifier_json: %w", r.ID, err)
			}
			it.Modifier = mod
		}
		b.Items[id] = it
		remember(b, id, r.Name)
	}
	return nil
}

var equipSlotNames = map[string]items.EquipSlot{
	"weapon": items.SlotWeapon, "shield": items.SlotShield, "helmet": items.SlotHelmet,
	"body": items.SlotBody, "legs": items.SlotLegs, "gloves": items.SlotGloves,
	"boots": items.SlotBoots, "cape": items.SlotCape, "amulet": items.SlotAmulet,
	"ring": items.SlotRing, "food": items.SlotFood,
}

func parseEquipSlot(name string) (items.EquipSlot, bool) {
	slot, ok := equipSlotNames[strings.TrimSpace(name)]
	return slot, ok
}

type actionRow struct {
	ID                string         `db:"id"`
	Skill             string         `db:"skill"`
	Name              string         `db:"name"`
	Kind              string         `db:"kind"`
	LevelRequirement  int            `db:"level_requirement"`
	CategoryID        sql.NullString `db:"category_id"`
	BaseDurationTicks int64          `db:"base_duration_ticks"`
	SkillXP           int64          `db:"skill_xp"`
	MasteryXPBase     int64          `db:"mastery_xp_base"`
	NPCPerception     sql.NullFloat64 `db:"npc_perception"`
	DropJSON          sql.NullString `db:"drop_json"`
	NodeMaxHP         sql.NullInt64  `db:"node_max_hp"`
	NodeRegenTicks    sql.NullInt64  `db:"node_regen_ticks"`
	NodeRespawnTicks  sql.NullInt64  `db:"node_respawn_ticks"`
}

func loadActions(conn *sqlx.DB, b *Bundle) error {
	var rows []actionRow
	if err := conn.Select(&rows, `SELECT id, skill, name, kind, level_requirement, category_id, base_duration_ticks, skill_xp, mastery_xp_base, npc_perception, drop_json, node_max_hp, node_regen_ticks, node_respawn_ticks FROM actions`); err != nil {
		return fmt.Errorf("registry: load actions: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		skill, ok := skills.ParseName(r.Skill)
		if !ok {
			return fmt.Errorf("registry: action %s: unknown skill %q", r.ID, r.Skill)
		}
		a := Action{
			ID:                id,
			Skill:             skill,
			Name:              r.Name,
			Kind:              ActionKind(r.Kind),
			LevelRequirement:  r.LevelRequirement,
			BaseDurationTicks: r.BaseDurationTicks,
			SkillXP:           r.SkillXP,
			MasteryXPBase:     r.MasteryXPBase,
		}
		if r.NPCPerception.Valid {
			a.NPCPerception = r.NPCPerception.Float64
		}
		if r.NodeMaxHP.Valid {
			a.NodeMaxHP = r.NodeMaxHP.Int64
		}
		if r.NodeRegenTicks.Valid {
			a.NodeRegenTicks = r.NodeRegenTicks.Int64
		}
		if r.NodeRespawnTicks.Valid {
			a.NodeRespawnTicks = r.NodeRespawnTicks.Int64
		}
		if cat, err := parseOptID(r.CategoryID); err != nil {
			return err
		} else if cat != nil {
			a.CategoryID = *cat
		}
		if r.DropJSON.Valid && r.DropJSON.String != "" {
			drops, err := droptable.Decode([]byte(r.DropJSON.String))
			if err != nil {
				return fmt.Errorf("registry: action %s drop_json: %w", r.ID, err)
			}
			a.Drops = drops
		}
		b.Actions[id] = a
		remember(b, id, r.Name)
	}
	return nil
}

type itemQtyRow struct {
	OwnerID string `db:"action_id"`
	ItemID  string `db:"item_id"`
	MinQty  int64  `db:"min_qty"`
	MaxQty  int64  `db:"max_qty"`
}

func loadActionIO(conn *sqlx.DB, b *Bundle) error {
	var inputs []itemQtyRow
	if err := conn.Select(&inputs, `SELECT action_id, item_id, min_qty, max_qty FROM action_inputs`); err != nil {
		return fmt.Errorf("registry: load action_inputs: %w", err)
	}
	var outputs []itemQtyRow
	if err := conn.Select(&outputs, `SELECT action_id, item_id, min_qty, max_qty FROM action_outputs`); err != nil {
		return fmt.Errorf("registry: load action_outputs: %w", err)
	}
	for _, r := range inputs {
		aid, err := ids.Parse(r.OwnerID)
		if err != nil {
			return err
		}
		iid, err := ids.Parse(r.ItemID)
		if err != nil {
			return err
		}
		a := b.Actions[aid]
		a.Inputs = append(a.Inputs, ItemQuantity{Item: iid, MinQty: r.MinQty, MaxQty: r.MaxQty})
		b.Actions[aid] = a
	}
	for _, r := range outputs {
		aid, err := ids.Parse(r.OwnerID)
		if err != nil {
			return err
		}
		iid, err := ids.Parse(r.ItemID)
		if err != nil {
			return err
		}
		a := b.Actions[aid]
		a.Outputs = append(a.Outputs, ItemQuantity{Item: iid, MinQty: r.MinQty, MaxQty: r.MaxQty})
		b.Actions[aid] = a
	}
	return nil
}

type monsterRow struct {
	ID                  string          `db:"id"`
	Name                string          `db:"name"`
	MaxHP               int64           `db:"max_hp"`
	Accuracy            float64         `db:"accuracy"`
	Evasion             float64         `db:"evasion"`
	MaxHit              int64           `db:"max_hit"`
	AttackIntervalTicks int64           `db:"attack_interval_ticks"`
	AttackStyle         string          `db:"attack_style"`
	XPRewardsJSON       string          `db:"xp_rewards_json"`
	DropJSON            sql.NullString  `db:"drop_json"`
	SlayerLevelReq      int             `db:"slayer_level_req"`
	SpawnDelayTicks     sql.NullInt64   `db:"spawn_delay_ticks"`
}

func loadMonsters(conn *sqlx.DB, b *Bundle) error {
	var rows []monsterRow
	if err := conn.Select(&rows, `SELECT id, name, max_hp, accuracy, evasion, max_hit, attack_interval_ticks, attack_style, xp_rewards_json, drop_json, slayer_level_req, spawn_delay_ticks FROM monsters`); err != nil {
		return fmt.Errorf("registry: load monsters: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		xpRewards, err := decodeSkillAmounts(r.XPRewardsJSON)
		if err != nil {
			return fmt.Errorf("registry: monster %s xp_rewards_json: %w", r.ID, err)
		}
		m := Monster{
			ID: id, Name: r.Name, MaxHP: r.MaxHP, Accuracy: r.Accuracy, Evasion: r.Evasion,
			MaxHit: r.MaxHit, AttackIntervalTicks: r.AttackIntervalTicks,
			AttackStyle: AttackStyle(r.AttackStyle), XPRewards: xpRewards, SlayerLevelReq: r.SlayerLevelReq,
		}
		if r.SpawnDelayTicks.Valid {
			m.SpawnDelayTicks = r.SpawnDelayTicks.Int64
		}
		if r.DropJSON.Valid && r.DropJSON.String != "" {
			drops, err := droptable.Decode([]byte(r.DropJSON.String))
			if err != nil {
				return err
			}
			m.Drops = drops
		}
		b.Monsters[id] = m
		remember(b, id, r.Name)
	}
	return nil
}

func loadDungeons(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID            string `db:"id"`
		Name          string `db:"name"`
		MonsterIDsCSV string `db:"monster_ids"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, name, monster_ids FROM dungeons`); err != nil {
		return fmt.Errorf("registry: load dungeons: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		var monsterIDs []ids.Id
		for _, part := range strings.Split(r.MonsterIDsCSV, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			mid, err := ids.Parse(part)
			if err != nil {
				return err
			}
			monsterIDs = append(monsterIDs, mid)
		}
		b.Dungeons[id] = Dungeon{ID: id, Name: r.Name, MonsterIDs: monsterIDs}
		remember(b, id, r.Name)
	}
	return nil
}

func loadSlayerAreas(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID               string         `db:"id"`
		Name             string         `db:"name"`
		MonsterID        string         `db:"monster_id"`
		LevelRequirement int            `db:"level_requirement"`
		ItemRequirement  sql.NullString `db:"item_requirement"`
		EffectJSON       sql.NullString `db:"effect_modifiers_json"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, name, monster_id, level_requirement, item_requirement, effect_modifiers_json FROM slayer_areas`); err != nil {
		return fmt.Errorf("registry: load slayer_areas: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		mid, err := ids.Parse(r.MonsterID)
		if err != nil {
			return err
		}
		area := SlayerArea{ID: id, Name: r.Name, MonsterID: mid, LevelRequirement: r.LevelRequirement}
		if itemReq, err := parseOptID(r.ItemRequirement); err != nil {
			return err
		} else {
			area.ItemRequirement = itemReq
		}
		if r.EffectJSON.Valid && r.EffectJSON.String != "" {
			mod, err := modifiers.DecodeModifier([]byte(r.EffectJSON.String))
			if err != nil {
				return err
			}
			area.EffectModifiers = mod.Entries
		}
		b.SlayerAreas[id] = area
		remember(b, id, r.Name)
	}
	return nil
}

func loadSlayerCategories(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID             string `db:"id"`
		Name           string `db:"name"`
		MinKills       int64  `db:"min_kills"`
		MaxKills       int64  `db:"max_kills"`
		XPReward       int64  `db:"xp_reward"`
		CurrencyReward int64  `db:"currency_reward"`
		RollCost       int64  `db:"roll_cost"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, name, min_kills, max_kills, xp_reward, currency_reward, roll_cost FROM slayer_categories`); err != nil {
		return fmt.Errorf("registry: load slayer_categories: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		b.SlayerCategories[id] = SlayerCategory{
			ID: id, Name: r.Name, MinKills: r.MinKills, MaxKills: r.MaxKills,
			XPReward: r.XPReward, CurrencyReward: r.CurrencyReward, RollCost: r.RollCost,
		}
		remember(b, id, r.Name)
	}
	return nil
}

func loadShopEntries(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID           string         `db:"id"`
		Name         string         `db:"name"`
		CategoryID   sql.NullString `db:"category_id"`
		CostCurrency string         `db:"cost_currency"`
		CostAmount   int64          `db:"cost_amount"`
		CostGrowth   float64        `db:"cost_growth"`
		RepeatLimit  int64          `db:"repeat_limit"`
		ModifierJSON sql.NullString `db:"modifier_json"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, name, category_id, cost_currency, cost_amount, cost_growth, repeat_limit, modifier_json FROM shop_entries`); err != nil {
		return fmt.Errorf("registry: load shop_entries: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		entry := ShopEntry{
			ID: id, Name: r.Name, Cost: ShopCurrency(r.CostCurrency), CostAmount: r.CostAmount,
			CostGrowth: r.CostGrowth, RepeatLimit: r.RepeatLimit,
		}
		if cat, err := parseOptID(r.CategoryID); err != nil {
			return err
		} else if cat != nil {
			entry.CategoryID = *cat
		}
		if r.ModifierJSON.Valid && r.ModifierJSON.String != "" {
			mod, err := modifiers.DecodeModifier([]byte(r.ModifierJSON.String))
			if err != nil {
				return err
			}
			entry.Modifier = mod
		}
		b.ShopEntries[id] = entry
		remember(b, id, r.Name)
	}
	return nil
}

func loadMasteryBonuses(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		Skill             string `db:"skill"`
		TriggerLevel      int    `db:"trigger_level"`
		AutoScopeToAction bool   `db:"auto_scope_to_action"`
		ModifierJSON      string `db:"modifier_json"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT skill, trigger_level, auto_scope_to_action, modifier_json FROM mastery_bonuses`); err != nil {
		return fmt.Errorf("registry: load mastery_bonuses: %w", err)
	}
	for _, r := range rows {
		skill, ok := skills.ParseName(r.Skill)
		if !ok {
			return fmt.Errorf("registry: mastery bonus: unknown skill %q", r.Skill)
		}
		mod, err := modifiers.DecodeModifier([]byte(r.ModifierJSON))
		if err != nil {
			return err
		}
		b.MasteryBonuses[skill] = append(b.MasteryBonuses[skill], MasteryBonus{
			Skill: skill, TriggerLevel: r.TriggerLevel, Modifier: mod, AutoScopeToAction: r.AutoScopeToAction,
		})
	}
	return nil
}

func loadCropCategories(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID                  string  `db:"id"`
		Name                string  `db:"name"`
		HarvestMultiplier   float64 `db:"harvest_multiplier"`
		GiveXPOnPlant       bool    `db:"give_xp_on_plant"`
		ScaleXPWithQuantity bool    `db:"scale_xp_with_quantity"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, name, harvest_multiplier, give_xp_on_plant, scale_xp_with_quantity FROM crop_categories`); err != nil {
		return fmt.Errorf("registry: load crop_categories: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		b.CropCategories[id] = CropCategory{
			ID: id, Name: r.Name, HarvestMultiplier: r.HarvestMultiplier,
			GiveXPOnPlant: r.GiveXPOnPlant, ScaleXPWithQuantity: r.ScaleXPWithQuantity,
		}
		remember(b, id, r.Name)
	}
	return nil
}

func loadCrops(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID               string `db:"id"`
		CategoryID       string `db:"category_id"`
		SeedItemID       string `db:"seed_item_id"`
		ProduceItemID    string `db:"produce_item_id"`
		LevelRequirement int    `db:"level_requirement"`
		BaseXP           int64  `db:"base_xp"`
		BaseQuantity     int64  `db:"base_quantity"`
		GrowthTicks      int64  `db:"growth_ticks"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, category_id, seed_item_id, produce_item_id, level_requirement, base_xp, base_quantity, growth_ticks FROM crops`); err != nil {
		return fmt.Errorf("registry: load crops: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		catID, err := ids.Parse(r.CategoryID)
		if err != nil {
			return err
		}
		seedID, err := ids.Parse(r.SeedItemID)
		if err != nil {
			return err
		}
		produceID, err := ids.Parse(r.ProduceItemID)
		if err != nil {
			return err
		}
		b.Crops[id] = Crop{
			ID: id, CategoryID: catID, SeedItem: seedID, ProduceItem: produceID, LevelRequirement: r.LevelRequirement,
			BaseXP: r.BaseXP, BaseQuantity: r.BaseQuantity, GrowthTicks: r.GrowthTicks,
		}
	}
	return nil
}

func loadObstacles(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID            string         `db:"id"`
		SlotIndex     int            `db:"slot_index"`
		Name          string         `db:"name"`
		DurationTicks int64          `db:"duration_ticks"`
		CostCurrency  string         `db:"cost_currency"`
		CostAmount    int64          `db:"cost_amount"`
		ModifierJSON  sql.NullString `db:"modifier_json"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, slot_index, name, duration_ticks, cost_currency, cost_amount, modifier_json FROM obstacles`); err != nil {
		return fmt.Errorf("registry: load obstacles: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		o := Obstacle{
			ID: id, SlotIndex: r.SlotIndex, Name: r.Name, DurationTicks: r.DurationTicks,
			Cost: ShopCurrency(r.CostCurrency), CostAmount: r.CostAmount,
		}
		if r.ModifierJSON.Valid && r.ModifierJSON.String != "" {
			mod, err := modifiers.DecodeModifier([]byte(r.ModifierJSON.String))
			if err != nil {
				return err
			}
			o.Modifier = mod
		}
		b.Obstacles[id] = o
		remember(b, id, r.Name)
	}
	return nil
}

func loadConstellations(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		ID                 string `db:"id"`
		Name               string `db:"name"`
		UnlockMasteryLevel int    `db:"unlock_mastery_level"`
		MaxCount           int64  `db:"max_count"`
		IsUnique           bool   `db:"is_unique"`
		StardustCostsCSV   string `db:"stardust_costs"`
		ModifierJSON       string `db:"modifier_json"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT id, name, unlock_mastery_level, max_count, is_unique, stardust_costs, modifier_json FROM constellations`); err != nil {
		return fmt.Errorf("registry: load constellations: %w", err)
	}
	for _, r := range rows {
		id, err := ids.Parse(r.ID)
		if err != nil {
			return err
		}
		mod, err := modifiers.DecodeModifier([]byte(r.ModifierJSON))
		if err != nil {
			return err
		}
		var costs []int64
		for _, part := range strings.Split(r.StardustCostsCSV, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			var v int64
			if _, err := fmt.Sscanf(part, "%d", &v); err != nil {
				return fmt.Errorf("registry: constellation %s stardust_costs: %w", r.ID, err)
			}
			costs = append(costs, v)
		}
		b.Constellations[id] = Constellation{
			ID: id, Name: r.Name, UnlockMasteryLevel: r.UnlockMasteryLevel, MaxCount: r.MaxCount,
			IsUnique: r.IsUnique, StardustCosts: costs, Modifier: mod,
		}
		remember(b, id, r.Name)
	}
	return nil
}

func loadMasteryTokens(conn *sqlx.DB, b *Bundle) error {
	type row struct {
		Skill  string `db:"skill"`
		ItemID string `db:"item_id"`
	}
	var rows []row
	if err := conn.Select(&rows, `SELECT skill, item_id FROM mastery_tokens`); err != nil {
		return fmt.Errorf("registry: load mastery_tokens: %w", err)
	}
	for _, r := range rows {
		skill, ok := skills.ParseName(r.Skill)
		if !ok {
			return fmt.Errorf("registry: mastery token: unknown skill %q", r.Skill)
		}
		id, err := ids.Parse(r.ItemID)
		if err != nil {
			return err
		}
		b.MasteryTokens[skill] = MasteryToken{Skill: skill, Item: id}
	}
	return nil
}

func decodeSkillAmounts(jsonStr string) (map[skills.Skill]int64, error) {
	raw := map[string]int64{}
	if jsonStr != "" {
		if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
			return nil, err
		}
	}
	out := make(map[skills.Skill]int64, len(raw))
	for name, amount := range raw {
		skill, ok := skills.ParseName(name)
		if !ok {
			return nil, fmt.Errorf("registry: unknown skill %q", name)
		}
		out[skill] = amount
	}
	return out, nil
}
