package droptable

import (
	"encoding/json"
	"fmt"

	"github.com/kestrelgames/idlecore/internal/ids"
)

// wireNode is the on-disk shape of any Droppable node, discriminated by
// Type, matching the "type" discriminant convention of spec.md §6.
type wireNode struct {
	Type   string     `json:"type"`
	Item   string     `json:"item,omitempty"`
	MinQty int64      `json:"minQty,omitempty"`
	MaxQty int64      `json:"maxQty,omitempty"`
	Rate   float64    `json:"rate,omitempty"`
	Child  *wireNode  `json:"child,omitempty"`
	Entries []wireEntry `json:"entries,omitempty"`
}

type wireEntry struct {
	Weight float64  `json:"weight"`
	Child  wireNode `json:"child"`
}

// Decode parses a JSON-encoded drop tree, as stored in the registry
// bundle's drop_table_json columns.
func Decode(data []byte) (Droppable, error) {
	var node wireNode
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Type == "" {
		return nil, nil
	}
	return decodeNode(node)
}

func decodeNode(node wireNode) (Droppable, error) {
	switch node.Type {
	case "drop":
		id, err := ids.Parse(node.Item)
		if err != nil {
			return nil, err
		}
		return Drop{Item: id, MinQty: node.MinQty, MaxQty: node.MaxQty, Rate: node.Rate}, nil
	case "chance":
		if node.Child == nil {
			return nil, fmt.Errorf("droptable: chance node missing child")
		}
		child, err := decodeNode(*node.Child)
		if err != nil {
			return nil, err
		}
		return DropChance{Rate: node.Rate, Child: child}, nil
	case "table":
		entries := make([]TableEntry, 0, len(node.Entries))
		for _, e := range node.Entries {
			child, err := decodeNode(e.Child)
			if err != nil {
				return nil, err
			}
			entries = append(entries, TableEntry{Weight: e.Weight, Child: child})
		}
		return DropTable{Entries: entries}, nil
	default:
		return nil, fmt.Errorf("droptable: unknown node type %q", node.Type)
	}
}

// Encode renders d back to the same JSON shape Decode reads, satisfying
// the round-trip contract of spec.md §6.
func Encode(d Droppable) ([]byte, error) {
	node, err := encodeNode(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(node)
}

func encodeNode(d Droppable) (wireNode, error) {
	switch v := d.(type) {
	case Drop:
		return wireNode{Type: "drop", Item: v.Item.String(), MinQty: v.MinQty, MaxQty: v.MaxQty, Rate: v.Rate}, nil
	case DropChance:
		child, err := encodeNode(v.Child)
		if err != nil {
			return wireNode{}, err
		}
		return wireNode{Type: "chance", Rate: v.Rate, Child: &child}, nil
	case DropTable:
		entries := make([]wireEntry, 0, len(v.Entries))
		for _, e := range v.Entries {
			child, err := encodeNode(e.Child)
			if err != nil {
				return wireNode{}, err
			}
			entries = append(entries, wireEntry{Weight: e.Weight, Child: child})
		}
		return wireNode{Type: "table", Entries: entries}, nil
	default:
		return wireNode{}, fmt.Errorf("droptable: unknown droppable %T", d)
	}
}
