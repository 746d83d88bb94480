package solver

import "golang.org/x/exp/constraints"

// heapItem pairs a value with the priority it is ordered by.
type heapItem[T any, P constraints.Ordered] struct {
	value    T
	priority P
}

// minHeap is a generic binary min-heap over container/heap, used as the
// best-first frontier: the lowest-priority node (plan_ticks + h) pops
// first. See spec.md §4.8.
type minHeap[T any, P constraints.Ordered] struct {
	items []heapItem[T, P]
}

func (h *minHeap[T, P]) Len() int { return len(h.items) }

func (h *minHeap[T, P]) Less(i, j int) bool { return h.items[i].priority < h.items[j].priority }

func (h *minHeap[T, P]) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *minHeap[T, P]) Push(x any) { h.items = append(h.items, x.(heapItem[T, P])) }

func (h *minHeap[T, P]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
