package astar

import "container/heap"

// frontierItem is one open-set entry. Its g and h mirror the grid cell.
type frontierItem struct {
	Pos          Position
	GScore       int
	HScore       int
	Sequence     int
	IndexInQueue int
}

func (item *frontierItem) FCost() int { return item.GScore + item.HScore }

// priorityQueue orders by f, then by h (greedier towards the target), then by
// discovery order so equal candidates are always expanded the same way.
type priorityQueue []*frontierItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	a, b := queue[i], queue[j]
	if a.FCost() != b.FCost() {
		return a.FCost() < b.FCost()
	}
	if a.HScore != b.HScore {
		return a.HScore < b.HScore
	}
	return a.Sequence < b.Sequence
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*frontierItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// frontier is the open set: a heap plus a position index so each position
// is held at most once and can be updated in place.
type frontier struct {
	queue    priorityQueue
	items    map[Position]*frontierItem
	sequence int
}

func newFrontier() *frontier {
	return &frontier{items: make(map[Position]*frontierItem)}
}

func (f *frontier) Len() int { return f.queue.Len() }

func (f *frontier) Get(pos Position) (*frontierItem, bool) {
	item, ok := f.items[pos]
	return item, ok
}

func (f *frontier) Push(pos Position, g, h int) *frontierItem {
	item := &frontierItem{Pos: pos, GScore: g, HScore: h, Sequence: f.sequence}
	f.sequence++
	heap.Push(&f.queue, item)
	f.items[pos] = item
	return item
}

// Update lowers an existing entry's scores and restores heap order.
func (f *frontier) Update(item *frontierItem, g, h int) {
	item.GScore = g
	item.HScore = h
	heap.Fix(&f.queue, item.IndexInQueue)
}

func (f *frontier) PopBest() *frontierItem {
	item := heap.Pop(&f.queue).(*frontierItem)
	delete(f.items, item.Pos)
	return item
}

// Positions lists the open positions in heap order.
func (f *frontier) Positions() []Position {
	out := make([]Position, 0, len(f.queue))
	for _, item := range f.queue {
		out = append(out, item.Pos)
	}
	return out
}
