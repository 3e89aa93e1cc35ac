package queue

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidPriority = errors.New("invalid priority")

// OpenSet is the frontier of a search. The same node may be pushed several
// times with different priorities; stale entries are left for the caller to
// discard when they are popped.
type OpenSet[T comparable] struct {
	queue Queue[T]
}

func NewOpenSet[T comparable]() *OpenSet[T] {
	s := &OpenSet[T]{queue: make(Queue[T], 0)}
	heap.Init(&s.queue)
	return s
}

// Push inserts node with the given priority. NaN and infinite priorities are
// rejected.
func (s *OpenSet[T]) Push(node T, priority float64) error {
	if math.IsNaN(priority) || math.IsInf(priority, 0) {
		return fmt.Errorf("%w: %v for %v", ErrInvalidPriority, priority, node)
	}
	heap.Push(&s.queue, NewQueueItem(node, priority))
	return nil
}

// Pop removes the entry with the smallest priority. The second return value
// is false if the set is empty.
func (s *OpenSet[T]) Pop() (T, bool) {
	if s.queue.Len() == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&s.queue).(*Item[T]).Node, true
}

// Peek returns the entry with the smallest priority without removing it.
// It panics on an empty set.
func (s *OpenSet[T]) Peek() *Item[T] {
	if s.queue.Len() == 0 {
		panic("peek on empty open set")
	}
	return s.queue[0]
}

func (s *OpenSet[T]) IsNotEmpty() bool { return s.queue.Len() > 0 }
func (s *OpenSet[T]) Len() int         { return s.queue.Len() }

func (s *OpenSet[T]) String() string {
	var sb strings.Builder
	for i, item := range s.queue {
		sb.WriteString(fmt.Sprintf("%v: %v, %v\n", i, item.Node, item.Priority))
	}
	return sb.String()
}
