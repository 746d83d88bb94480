package solver

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinHeapPopsLowestPriorityFirst(t *testing.T) {
	h := &minHeap[string, float64]{}
	heap.Init(h)

	heap.Push(h, heapItem[string, float64]{value: "c", priority: 3})
	heap.Push(h, heapItem[string, float64]{value: "a", priority: 1})
	heap.Push(h, heapItem[string, float64]{value: "b", priority: 2})

	var order []string
	for h.Len() > 0 {
		order = append(order, heap.Pop(h).(heapItem[string, float64]).value)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}
