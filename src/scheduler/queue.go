package scheduler

import (
	"container/heap"
	"time"
)

// queueEntry is one armed timer: the instant a job should fire next.
type queueEntry struct {
	jobID  uint
	fireAt time.Time
	seq    uint64
	index  int
}

// fireQueue is a min-heap ordered by fire instant. Ties fall back to arming
// order so firings stay deterministic.
type fireQueue []*queueEntry

func (q fireQueue) Len() int { return len(q) }

func (q fireQueue) Less(i, j int) bool {
	if q[i].fireAt.Equal(q[j].fireAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].fireAt.Before(q[j].fireAt)
}

func (q fireQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *fireQueue) Push(x interface{}) {
	entry := x.(*queueEntry)
	entry.index = len(*q)
	*q = append(*q, entry)
}

func (q *fireQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	entry.index = -1
	*q = old[:n-1]
	return entry
}

func (q *fireQueue) push(entry *queueEntry) {
	heap.Push(q, entry)
}

func (q *fireQueue) pop() *queueEntry {
	return heap.Pop(q).(*queueEntry)
}

func (q *fireQueue) remove(entry *queueEntry) {
	if entry.index >= 0 && entry.index < len(*q) && (*q)[entry.index] == entry {
		heap.Remove(q, entry.index)
	}
}

func (q fireQueue) peek() *queueEntry {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}
