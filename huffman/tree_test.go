package huffman

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeExample(t *testing.T) {
	tree := BuildTree(CountFrequencies("aabbbcc"))

	expected := &Internal{
		Weight: 7,
		Left: &Internal{
			Weight: 4,
			Left:   &Leaf{Symbol: 'c', Weight: 2},
			Right:  &Leaf{Symbol: 'a', Weight: 2},
		},
		Right: &Leaf{Symbol: 'b', Weight: 3},
	}
	if diff := cmp.Diff(Node(expected), tree.Root()); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint64(7), tree.Weight())
	assert.Equal(t, 3, tree.NbLeaves())
	assert.Equal(t, 2, tree.Depth())
	assert.Equal(t, []*Leaf{
		{Symbol: 'c', Weight: 2},
		{Symbol: 'a', Weight: 2},
		{Symbol: 'b', Weight: 3},
	}, tree.Leaves())
}

func TestBuildTreeInternalBeforeLeaf(t *testing.T) {
	tree := BuildTree(FrequencyTable{'a': 1, 'b': 1, 'c': 2})

	// a and b merge first; the resulting internal node ranks below leaf c.
	expected := &Internal{
		Weight: 4,
		Left:   &Leaf{Symbol: 'c', Weight: 2},
		Right: &Internal{
			Weight: 2,
			Left:   &Leaf{Symbol: 'b', Weight: 1},
			Right:  &Leaf{Symbol: 'a', Weight: 1},
		},
	}
	require.True(t, NewTree(expected).Equal(tree), cmp.Diff(Node(expected), tree.Root()))
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(FrequencyTable{})
	assert.True(t, tree.Empty())
	assert.Nil(t, tree.Root())
	assert.Equal(t, uint64(0), tree.Weight())
	assert.Equal(t, 0, tree.NbLeaves())
	assert.True(t, tree.Equal(NewTree(nil)))
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	tree := BuildTree(CountFrequencies("zzzz"))
	require.False(t, tree.Empty())
	assert.Equal(t, &Leaf{Symbol: 'z', Weight: 4}, tree.Root())
	assert.Equal(t, 0, tree.Depth())
}

func TestBuildTreeInsertionOrder(t *testing.T) {
	freqs := CountFrequencies("the quick brown fox jumps over the lazy dog, again and again")
	reference := BuildTree(freqs)

	rng := rand.New(rand.NewSource(0x5a025ca1))
	for i := 0; i < 20; i++ {
		leaves := make([]*Leaf, 0, len(freqs))
		for _, s := range freqs.Symbols() {
			leaves = append(leaves, &Leaf{Symbol: s, Weight: freqs[s]})
		}
		rng.Shuffle(len(leaves), func(i, j int) { leaves[i], leaves[j] = leaves[j], leaves[i] })

		tree := buildTree(leaves)
		require.True(t, reference.Equal(tree), "shuffle #%d built a different tree", i)
		require.Equal(t, BuildCodeTable(reference), BuildCodeTable(tree))
	}
}

func TestWeightInvariant(t *testing.T) {
	text := "abracadabra, alakazam"
	tree := BuildTree(CountFrequencies(text))
	require.Equal(t, uint64(len(text)), tree.Weight())
	checkWeights(t, tree.Root())
}

func TestLess(t *testing.T) {
	leafA := heapElem{node: &Leaf{Symbol: 'a', Weight: 3}}
	leafB := heapElem{node: &Leaf{Symbol: 'b', Weight: 3}}
	light := heapElem{node: &Leaf{Symbol: 'z', Weight: 1}}
	first := heapElem{node: &Internal{Weight: 3}, seq: 0}
	second := heapElem{node: &Internal{Weight: 3}, seq: 1}

	assert.True(t, less(light, leafA), "lighter first")
	assert.True(t, less(light, first), "lighter first, whatever the kind")
	assert.True(t, less(first, leafA), "internal before leaf")
	assert.False(t, less(leafA, first))
	assert.True(t, less(leafA, leafB), "leaves by symbol")
	assert.False(t, less(leafB, leafA))
	assert.True(t, less(first, second), "internal nodes by creation order")
	assert.False(t, less(second, first))
	assert.False(t, less(leafA, leafA))
}

func TestMinHeap(t *testing.T) {
	var h minHeap
	for _, w := range []uint64{5, 3, 9, 1, 4, 1} {
		h.push(heapElem{node: &Internal{Weight: w}, seq: w})
	}
	var got []uint64
	for len(h) > 0 {
		got = append(got, h.pop().node.weight())
	}
	assert.Equal(t, []uint64{1, 1, 3, 4, 5, 9}, got)
}

// checkWeights asserts that every internal node weighs the sum of its children.
func checkWeights(t *testing.T, n Node) {
	t.Helper()
	if in, ok := n.(*Internal); ok {
		require.NotNil(t, in.Left)
		require.NotNil(t, in.Right)
		require.Equal(t, in.Left.weight()+in.Right.weight(), in.Weight)
		checkWeights(t, in.Left)
		checkWeights(t, in.Right)
	}
}
