// Package treeio persists Huffman trees.
//
// A tree is stored as a CBOR map {"v": version, "root": node}, where root is
// null for the empty tree, a leaf is {"w": weight, "s": symbol} and an internal
// node is {"w": weight, "l": node, "r": node}. Unmarshal(Marshal(t)) is
// structurally identical to t. Unmarshal validates the shape and the weights
// before returning, so a tree it returns is safe to decode with.
package treeio

import (
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/consensys/huffcode/huffman"
)

// FormatVersion is stamped in every tree written by this package. Trees with a
// different major version are rejected.
const FormatVersion = "1.0.0"

// maxDepth bounds the nesting accepted when decoding. Huffman trees over
// 64-bit weights are far shallower.
const maxDepth = 512

var (
	formatVersion = semver.MustParse(FormatVersion)

	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		MaxNestedLevels:   maxDepth,
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

type wireTree struct {
	Version string    `cbor:"v"`
	Root    *wireNode `cbor:"root"`
}

type wireNode struct {
	Weight uint64    `cbor:"w"`
	Symbol *int64    `cbor:"s,omitempty"`
	Left   *wireNode `cbor:"l,omitempty"`
	Right  *wireNode `cbor:"r,omitempty"`
}

// Marshal returns the CBOR encoding of t.
func Marshal(t *huffman.Tree) ([]byte, error) {
	wt := wireTree{Version: FormatVersion}
	if !t.Empty() {
		root, err := toWire(t.Root())
		if err != nil {
			return nil, err
		}
		wt.Root = root
	}
	return encMode.Marshal(&wt)
}

func toWire(n huffman.Node) (*wireNode, error) {
	switch n := n.(type) {
	case *huffman.Leaf:
		s := int64(n.Symbol)
		return &wireNode{Weight: n.Weight, Symbol: &s}, nil
	case *huffman.Internal:
		if n.Left == nil || n.Right == nil {
			return nil, errors.New("treeio: internal node with a missing child")
		}
		left, err := toWire(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := toWire(n.Right)
		if err != nil {
			return nil, err
		}
		return &wireNode{Weight: n.Weight, Left: left, Right: right}, nil
	default:
		return nil, fmt.Errorf("treeio: unexpected node %T", n)
	}
}

// Unmarshal decodes a tree written by Marshal.
// Any error is a *DeserializationError.
func Unmarshal(data []byte) (*huffman.Tree, error) {
	var wt wireTree
	if err := decMode.Unmarshal(data, &wt); err != nil {
		return nil, &DeserializationError{Reason: "undecodable tree", Err: err}
	}

	if wt.Version == "" {
		return nil, &DeserializationError{Reason: "missing format version"}
	}
	v, err := semver.Parse(wt.Version)
	if err != nil {
		return nil, &DeserializationError{Reason: "bad format version", Err: err}
	}
	if v.Major != formatVersion.Major {
		return nil, &DeserializationError{Reason: fmt.Sprintf("format version %s is not compatible with %s", v, formatVersion)}
	}

	if wt.Root == nil {
		return huffman.NewTree(nil), nil
	}
	var b builder
	root, err := b.node(wt.Root, nil)
	if err != nil {
		return nil, err
	}
	return huffman.NewTree(root), nil
}

// builder converts wire nodes to tree nodes, checking the invariants of a
// Huffman tree on the way.
type builder struct {
	seen bitset.BitSet // leaf symbols met so far
}

func (b *builder) node(w *wireNode, path []byte) (huffman.Node, error) {
	fail := func(reason string) error {
		return &DeserializationError{Path: string(path), Reason: reason}
	}

	hasChildren := w.Left != nil || w.Right != nil
	if w.Symbol != nil {
		if hasChildren {
			return nil, fail("node has both a symbol and children")
		}
		s := *w.Symbol
		if s < 0 || s > unicode.MaxRune || !utf8.ValidRune(rune(s)) {
			return nil, fail(fmt.Sprintf("invalid symbol %d", s))
		}
		if b.seen.Test(uint(s)) {
			return nil, fail(fmt.Sprintf("duplicate symbol %q", rune(s)))
		}
		b.seen.Set(uint(s))
		if w.Weight == 0 {
			return nil, fail("leaf with weight 0")
		}
		return &huffman.Leaf{Symbol: rune(s), Weight: w.Weight}, nil
	}

	if w.Left == nil || w.Right == nil {
		return nil, fail("internal node needs two children")
	}
	left, err := b.node(w.Left, append(path[:len(path):len(path)], '0'))
	if err != nil {
		return nil, err
	}
	right, err := b.node(w.Right, append(path[:len(path):len(path)], '1'))
	if err != nil {
		return nil, err
	}
	sum := w.Left.Weight + w.Right.Weight
	if sum < w.Left.Weight || sum != w.Weight {
		return nil, fail(fmt.Sprintf("weight %d is not the sum of its children %d + %d", w.Weight, w.Left.Weight, w.Right.Weight))
	}
	return &huffman.Internal{Weight: w.Weight, Left: left, Right: right}, nil
}

// Write writes the encoding of t to w.
func Write(w io.Writer, t *huffman.Tree) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read reads r to EOF and decodes the tree it holds.
func Read(r io.Reader) (*huffman.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Diagnose renders an encoded tree in CBOR diagnostic notation (RFC 8949 section 8).
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
