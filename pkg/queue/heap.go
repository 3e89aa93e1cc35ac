package queue

import (
	"container/heap"
)

type Item[T comparable] struct {
	Node     T       // the queued node
	Priority float64 // cost plus heuristic at the time of the push
	Index    int     // index of the item in the heap
}

func NewQueueItem[T comparable](node T, priority float64) *Item[T] {
	return &Item[T]{Node: node, Priority: priority, Index: -1}
}

// A Queue implements the heap.Interface and holds Items
type Queue[T comparable] []*Item[T]

func (h Queue[T]) Len() int {
	return len(h)
}

func (h Queue[T]) Less(i, j int) bool {
	// MinHeap implementation
	return h[i].Priority < h[j].Priority
}

func (h Queue[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index, h[j].Index = i, j
}

func (h *Queue[T]) Push(item any) {
	n := len(*h)
	pqItem := item.(*Item[T])
	pqItem.Index = n
	*h = append(*h, pqItem)
}

func (h *Queue[T]) Pop() any {
	old := *h
	n := len(old)
	pqItem := old[n-1]
	old[n-1] = nil
	pqItem.Index = -1 // for safety
	*h = old[0 : n-1]
	return pqItem
}

func (h *Queue[T]) Update(pqItem *Item[T], newPriority float64) {
	pqItem.Priority = newPriority
	heap.Fix(h, pqItem.Index)
}
