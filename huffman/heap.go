package huffman

type heapElem struct {
	node Node
	seq  uint64 // creation order, internal nodes only
}

// less is the tree builder's ordering: lighter first; at equal weight internal
// nodes before leaves, leaves by symbol and internal nodes by creation order.
// It is a total order over the elements of one build, so the merge sequence does
// not depend on the order leaves were inserted in.
func less(a, b heapElem) bool {
	wa, wb := a.node.weight(), b.node.weight()
	if wa != wb {
		return wa < wb
	}
	la, aIsLeaf := a.node.(*Leaf)
	lb, bIsLeaf := b.node.(*Leaf)
	switch {
	case aIsLeaf && bIsLeaf:
		return la.Symbol < lb.Symbol
	case aIsLeaf != bIsLeaf:
		return bIsLeaf
	default:
		return a.seq < b.seq
	}
}

// A minHeap is a min-heap of tree nodes ordered by less.
//
// The code is identical to https://pkg.go.dev/container/heap but replaces interfaces with concrete
// types to avoid memory overhead.
type minHeap []heapElem

func (h minHeap) less(i, j int) bool { return less(h[i], h[j]) }
func (h minHeap) swap(i, j int)      { h[i], h[j] = h[j], h[i] }

// heapify establishes the heap invariants.
// The complexity is O(n) where n = len(*h).
func (h *minHeap) heapify() {
	n := len(*h)
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// push the element x onto the heap.
// The complexity is O(log n) where n = len(*h).
func (h *minHeap) push(x heapElem) {
	*h = append(*h, x)
	h.up(len(*h) - 1)
}

// pop removes and returns the minimum element from the heap.
// The complexity is O(log n) where n = len(*h).
func (h *minHeap) pop() heapElem {
	n := len(*h) - 1
	h.swap(0, n)
	h.down(0, n)
	x := (*h)[n]
	*h = (*h)[0:n]
	return x
}

func (h *minHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *minHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
