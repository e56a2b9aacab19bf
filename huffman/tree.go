package huffman

// Node is a vertex of a Huffman tree: either a *Leaf or an *Internal.
type Node interface {
	weight() uint64
}

// Leaf carries a symbol and its frequency.
type Leaf struct {
	Symbol rune
	Weight uint64
}

// Internal joins two subtrees. Weight is the sum of the children's weights.
type Internal struct {
	Weight      uint64
	Left, Right Node
}

func (l *Leaf) weight() uint64     { return l.Weight }
func (n *Internal) weight() uint64 { return n.Weight }

// Tree is a rooted Huffman tree. A Tree with no root is the empty tree built
// from an empty text; it encodes and decodes only the empty stream.
// Trees are immutable once built.
type Tree struct {
	root Node
}

// NewTree wraps root. A nil root yields the empty tree.
// The caller is responsible for root satisfying the weight invariant;
// treeio checks it for persisted trees.
func NewTree(root Node) *Tree {
	return &Tree{root: root}
}

// Root returns the root node, or nil for the empty tree.
func (t *Tree) Root() Node {
	if t == nil {
		return nil
	}
	return t.root
}

// Empty reports whether t has no symbols.
func (t *Tree) Empty() bool {
	return t.Root() == nil
}

// Weight returns the weight of the root, which is the length in symbols of the
// text the tree was built from.
func (t *Tree) Weight() uint64 {
	if t.Empty() {
		return 0
	}
	return t.root.weight()
}

// NbLeaves returns the number of distinct symbols in the tree.
func (t *Tree) NbLeaves() int {
	return len(t.Leaves())
}

// Leaves returns the leaves of the tree from left to right.
func (t *Tree) Leaves() []*Leaf {
	var leaves []*Leaf
	t.walk(func(node Node, depth int) {
		if l, ok := node.(*Leaf); ok {
			leaves = append(leaves, l)
		}
	})
	return leaves
}

// Depth returns the length of the longest root-to-leaf path.
// A single-leaf tree has depth 0.
func (t *Tree) Depth() int {
	deepest := 0
	t.walk(func(node Node, depth int) {
		if depth > deepest {
			deepest = depth
		}
	})
	return deepest
}

// Equal reports whether t and o have the same shape, with the same symbols and
// weights at the same positions.
func (t *Tree) Equal(o *Tree) bool {
	return equalNodes(t.Root(), o.Root())
}

func equalNodes(a, b Node) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *Leaf:
		b, ok := b.(*Leaf)
		return ok && a.Symbol == b.Symbol && a.Weight == b.Weight
	case *Internal:
		b, ok := b.(*Internal)
		return ok && a.Weight == b.Weight && equalNodes(a.Left, b.Left) && equalNodes(a.Right, b.Right)
	default:
		panic("unknown node type")
	}
}

// walk visits every node in depth-first pre-order, left before right.
func (t *Tree) walk(visit func(node Node, depth int)) {
	if t.Empty() {
		return
	}
	stack := []stackElem{{node: t.root}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(e.node, e.depth)
		if n, ok := e.node.(*Internal); ok {
			if n.Right != nil {
				stack = append(stack, stackElem{node: n.Right, depth: e.depth + 1})
			}
			if n.Left != nil {
				stack = append(stack, stackElem{node: n.Left, depth: e.depth + 1})
			}
		}
	}
}

type stackElem struct {
	node  Node
	depth int
	path  []byte
}

// BuildTree builds the Huffman tree of freqs.
// An empty table yields the empty tree; a single entry yields a single-leaf tree.
func BuildTree(freqs FrequencyTable) *Tree {
	leaves := make([]*Leaf, 0, len(freqs))
	for s, c := range freqs {
		leaves = append(leaves, &Leaf{Symbol: s, Weight: c})
	}
	return buildTree(leaves)
}

func buildTree(leaves []*Leaf) *Tree {
	if len(leaves) == 0 {
		return &Tree{}
	}

	nodes := make(minHeap, len(leaves), 2*len(leaves))
	for i, l := range leaves {
		nodes[i] = heapElem{node: l}
	}
	nodes.heapify()

	var seq uint64
	for len(nodes) > 1 {
		a := nodes.pop()
		b := nodes.pop()

		// second-smallest on the left, smallest on the right
		merged := &Internal{Weight: a.node.weight() + b.node.weight(), Left: b.node, Right: a.node}
		nodes.push(heapElem{node: merged, seq: seq})
		seq++
	}

	return &Tree{root: nodes[0].node}
}
