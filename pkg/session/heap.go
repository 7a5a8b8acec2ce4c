package session

import "container/heap"

// stampHeap is a min-heap over (LastAccess, Token), the order Sweep pops
// candidates in.
type stampHeap []Stamp

func (h stampHeap) Len() int { return len(h) }

func (h stampHeap) Less(i, j int) bool {
	if h[i].LastAccess != h[j].LastAccess {
		return h[i].LastAccess < h[j].LastAccess
	}
	return h[i].Token < h[j].Token
}

func (h stampHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *stampHeap) Push(x any) { *h = append(*h, x.(Stamp)) }

func (h *stampHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	*h = old[:n-1]
	return s
}

// expiredTokens pops stamps older than cutoff off a min-heap built over
// entries. The first fresh entry ends the scan: heap order guarantees the
// rest are at least as fresh, so the cost tracks the number of expired
// entries rather than the table size.
func expiredTokens(entries []Stamp, cutoff int64) []string {
	h := stampHeap(entries)
	heap.Init(&h)

	var expired []string
	for h.Len() > 0 {
		if h[0].LastAccess >= cutoff {
			break
		}
		s := heap.Pop(&h).(Stamp)
		expired = append(expired, s.Token)
	}
	return expired
}
