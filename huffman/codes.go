package huffman

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CodeTable maps each symbol to its codeword, a non-empty string of '0' and '1'.
// No codeword is a prefix of another.
type CodeTable map[rune]string

// BuildCodeTable derives the code table of t: the codeword of a symbol is the
// path from the root to its leaf, '0' for left and '1' for right.
// A single-leaf tree gets the codeword "0"; the empty tree an empty table.
func BuildCodeTable(t *Tree) CodeTable {
	codes := make(CodeTable)
	if t.Empty() {
		return codes
	}
	if l, ok := t.root.(*Leaf); ok {
		codes[l.Symbol] = "0"
		return codes
	}

	stack := []stackElem{{node: t.root}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := e.node.(type) {
		case *Leaf:
			codes[n.Symbol] = string(e.path)
		case *Internal:
			stack = append(stack,
				stackElem{node: n.Right, path: appendBit(e.path, '1')},
				stackElem{node: n.Left, path: appendBit(e.path, '0')},
			)
		}
	}
	return codes
}

// appendBit returns a copy of path extended by bit, so siblings never share
// a backing array.
func appendBit(path []byte, bit byte) []byte {
	res := make([]byte, len(path)+1)
	copy(res, path)
	res[len(path)] = bit
	return res
}

// Symbols returns the symbols of the table in ascending code point order.
func (c CodeTable) Symbols() []rune {
	symbols := maps.Keys(c)
	slices.Sort(symbols)
	return symbols
}

// EncodedLen returns the length of the stream freqs encodes to under c,
// the sum over symbols of count times codeword length.
func (c CodeTable) EncodedLen(freqs FrequencyTable) (uint64, error) {
	var n uint64
	for s, count := range freqs {
		code, ok := c[s]
		if !ok {
			return 0, &LookupError{Symbol: s, Offset: -1}
		}
		n += count * uint64(len(code))
	}
	return n, nil
}
