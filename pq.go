package bestfirst

import (
	"container/heap"
)

// Frontier returns the element with the minimum associated priority.
//
// The same element can be pushed several times, with equal or different
// priorities; each push is a separate entry. Top, MinPriority and Pop panic
// on an empty frontier.
type Frontier[E any, C Cost] interface {
	Len() int
	Empty() bool
	Clear()
	Push(element E, priority C)
	Top() E
	MinPriority() C
	Pop() E
}

type frontierItem[E any, C Cost] struct {
	Element  E
	Priority C
	Sequence uint64
}

type frontierItems[E any, C Cost] []frontierItem[E, C]

func (items frontierItems[E, C]) Len() int { return len(items) }
func (items frontierItems[E, C]) Less(i, j int) bool {
	if items[i].Priority != items[j].Priority {
		return items[i].Priority < items[j].Priority
	}
	return items[i].Sequence < items[j].Sequence
}
func (items frontierItems[E, C]) Swap(i, j int) { items[i], items[j] = items[j], items[i] }

func (items *frontierItems[E, C]) Push(x any) {
	*items = append(*items, x.(frontierItem[E, C]))
}

func (items *frontierItems[E, C]) Pop() any {
	oldItems := *items
	n := len(oldItems)
	item := oldItems[n-1]
	oldItems[n-1] = frontierItem[E, C]{}
	*items = oldItems[:n-1]
	return item
}

// HeapFrontier is a binary heap frontier suited to continuous costs.
// Entries with equal priority leave in insertion order.
type HeapFrontier[E any, C Cost] struct {
	items    frontierItems[E, C]
	sequence uint64
}

// NewHeapFrontier creates an empty HeapFrontier.
func NewHeapFrontier[E any, C Cost]() *HeapFrontier[E, C] {
	return &HeapFrontier[E, C]{}
}

func (queue *HeapFrontier[E, C]) Len() int    { return queue.items.Len() }
func (queue *HeapFrontier[E, C]) Empty() bool { return queue.items.Len() == 0 }

func (queue *HeapFrontier[E, C]) Clear() {
	clear(queue.items)
	queue.items = queue.items[:0]
	queue.sequence = 0
}

func (queue *HeapFrontier[E, C]) Push(element E, priority C) {
	heap.Push(&queue.items, frontierItem[E, C]{Element: element, Priority: priority, Sequence: queue.sequence})
	queue.sequence++
}

func (queue *HeapFrontier[E, C]) Top() E {
	queue.mustNotBeEmpty()
	return queue.items[0].Element
}

func (queue *HeapFrontier[E, C]) MinPriority() C {
	queue.mustNotBeEmpty()
	return queue.items[0].Priority
}

func (queue *HeapFrontier[E, C]) Pop() E {
	queue.mustNotBeEmpty()
	return heap.Pop(&queue.items).(frontierItem[E, C]).Element
}

func (queue *HeapFrontier[E, C]) mustNotBeEmpty() {
	if queue.items.Len() == 0 {
		panic("bestfirst: empty frontier")
	}
}

type priorityHeap[C Cost] []C

func (h priorityHeap[C]) Len() int           { return len(h) }
func (h priorityHeap[C]) Less(i, j int) bool { return h[i] < h[j] }
func (h priorityHeap[C]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *priorityHeap[C]) Push(x any)        { *h = append(*h, x.(C)) }
func (h *priorityHeap[C]) Pop() any {
	old := *h
	n := len(old)
	priority := old[n-1]
	*h = old[:n-1]
	return priority
}

// BucketFrontier stacks elements of equal priority into buckets so that pop
// only touches the heap of distinct priorities. It is faster than HeapFrontier
// when few distinct priorities occur, e.g. small discrete step counts.
// Entries with equal priority leave in reverse insertion order. Unordered
// priorities (NaN) share one bucket that leaves after every ordered one.
type BucketFrontier[E any, C Cost] struct {
	priorities priorityHeap[C]
	buckets    map[C][]E
	unordered  []E
	// nan is the priority reported for the unordered bucket.
	nan  C
	size int
}

// NewBucketFrontier creates an empty BucketFrontier.
func NewBucketFrontier[E any, C Cost]() *BucketFrontier[E, C] {
	return &BucketFrontier[E, C]{buckets: make(map[C][]E)}
}

func (queue *BucketFrontier[E, C]) Len() int    { return queue.size }
func (queue *BucketFrontier[E, C]) Empty() bool { return queue.size == 0 }

func (queue *BucketFrontier[E, C]) Clear() {
	queue.priorities = queue.priorities[:0]
	clear(queue.buckets)
	clear(queue.unordered)
	queue.unordered = queue.unordered[:0]
	queue.size = 0
}

func (queue *BucketFrontier[E, C]) Push(element E, priority C) {
	queue.size++
	if isUnordered(priority) {
		queue.nan = priority
		queue.unordered = append(queue.unordered, element)
		return
	}
	bucket, exists := queue.buckets[priority]
	if !exists {
		heap.Push(&queue.priorities, priority)
	}
	queue.buckets[priority] = append(bucket, element)
}

func (queue *BucketFrontier[E, C]) Top() E {
	bucket := queue.minBucket()
	return bucket[len(bucket)-1]
}

func (queue *BucketFrontier[E, C]) MinPriority() C {
	if queue.size == 0 {
		panic("bestfirst: empty frontier")
	}
	if len(queue.priorities) == 0 {
		return queue.nan
	}
	return queue.priorities[0]
}

func (queue *BucketFrontier[E, C]) Pop() E {
	bucket := queue.minBucket()
	last := len(bucket) - 1
	element := bucket[last]
	var zero E
	bucket[last] = zero
	queue.size--

	if len(queue.priorities) == 0 {
		queue.unordered = bucket[:last]
		return element
	}
	priority := queue.priorities[0]
	if last == 0 {
		heap.Pop(&queue.priorities)
		delete(queue.buckets, priority)
	} else {
		queue.buckets[priority] = bucket[:last]
	}
	return element
}

func (queue *BucketFrontier[E, C]) minBucket() []E {
	if queue.size == 0 {
		panic("bestfirst: empty frontier")
	}
	if len(queue.priorities) == 0 {
		return queue.unordered
	}
	return queue.buckets[queue.priorities[0]]
}

// isUnordered reports whether priority is NaN, the only value not equal to itself.
func isUnordered[C Cost](priority C) bool {
	return priority != priority
}
