// Package droptable implements the droppable algebra: leaf drops,
// chance-gated wrappers, and weighted tables, any of which may nest
// inside another. See spec.md §3 ("Drop / DropChance / DropTable").
package droptable

import "github.com/kestrelgames/idlecore/internal/ids"

// Droppable is the sealed sum type every node of a drop tree implements.
// Only this package may implement it — callers switch on a type
// assertion (Drop / DropChance / DropTable) to interpret a node.
type Droppable interface {
	droppable()
}

// Drop is a leaf: a quantity range of one item at a fixed roll rate.
type Drop struct {
	Item   ids.Id  `json:"item"`
	MinQty int64   `json:"minQty"`
	MaxQty int64   `json:"maxQty"`
	Rate   float64 `json:"rate"`
}

func (Drop) droppable() {}

// DropChance nests any droppable behind an independent success roll.
type DropChance struct {
	Rate  float64   `json:"rate"`
	Child Droppable `json:"child"`
}

func (DropChance) droppable() {}

// TableEntry is one weighted choice within a DropTable.
type TableEntry struct {
	Weight float64   `json:"weight"`
	Child  Droppable `json:"child"`
}

// DropTable selects exactly one entry, weighted by Weight.
type DropTable struct {
	Entries []TableEntry `json:"entries"`
}

func (DropTable) droppable() {}

// TotalWeight sums every entry's weight.
func (t DropTable) TotalWeight() float64 {
	var total float64
	for _, e := range t.Entries {
		total += e.Weight
	}
	return total
}

// ExpectedItems folds the tree into expected-quantity-per-roll per item,
// multiplying rates through every DropChance and table-selection
// probability along the path, per spec.md §3 ("Expected-items fold
// multiplies rates through the tree").
func ExpectedItems(d Droppable) map[ids.Id]float64 {
	out := make(map[ids.Id]float64)
	accumulate(d, 1.0, out)
	return out
}

func accumulate(d Droppable, probability float64, out map[ids.Id]float64) {
	if probability <= 0 || d == nil {
		return
	}
	switch v := d.(type) {
	case Drop:
		avgQty := float64(v.MinQty+v.MaxQty) / 2
		out[v.Item] += probability * v.Rate * avgQty
	case DropChance:
		accumulate(v.Child, probability*v.Rate, out)
	case DropTable:
		total := v.TotalWeight()
		if total <= 0 {
			return
		}
		for _, e := range v.Entries {
			accumulate(e.Child, probability*(e.Weight/total), out)
		}
	}
}
