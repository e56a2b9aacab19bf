package huffman

import (
	"io"
	"strings"
)

// Decode walks t along bits and returns the decoded text.
// An empty stream decodes to the empty text with any tree, including the empty one.
// On error the returned text is empty.
func Decode(bits string, t *Tree) (string, error) {
	d := NewDecoder(t)
	if _, err := d.WriteString(bits); err != nil {
		return "", err
	}
	if err := d.Close(); err != nil {
		return "", err
	}
	return d.Text(), nil
}

// DecodeReader decodes the stream read from r until io.EOF.
func DecodeReader(r io.Reader, t *Tree) (string, error) {
	d := NewDecoder(t)
	if _, err := io.Copy(d, r); err != nil {
		return "", err
	}
	if err := d.Close(); err != nil {
		return "", err
	}
	return d.Text(), nil
}

// A Decoder decodes a stream fed to it in pieces through Write.
//
// It is at the root of the tree initially and after each decoded symbol, and
// inside a codeword otherwise. The stream may only end at the root.
// The first error is sticky: every later call returns it.
type Decoder struct {
	tree *Tree
	cur  Node // nil at the root
	pos  int
	out  strings.Builder
	err  error
}

// NewDecoder returns a Decoder for streams encoded with t.
func NewDecoder(t *Tree) *Decoder {
	return &Decoder{tree: t}
}

// Write consumes the digits in p. It implements io.Writer so a stream can be
// copied into the Decoder.
func (d *Decoder) Write(p []byte) (int, error) {
	for i, c := range p {
		if err := d.step(c); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteString is like Write but takes a string.
func (d *Decoder) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := d.step(s[i]); err != nil {
			return i, err
		}
	}
	return len(s), nil
}

// AtRoot reports whether the stream consumed so far ends on a codeword boundary.
func (d *Decoder) AtRoot() bool {
	return d.cur == nil
}

// Close marks the end of the stream. It fails if the stream stopped inside a codeword.
func (d *Decoder) Close() error {
	if d.err != nil {
		return d.err
	}
	if !d.AtRoot() {
		d.err = &MalformedStreamError{Offset: d.pos, Reason: Truncated}
	}
	return d.err
}

// Text returns the text decoded so far. It is empty once an error occurred.
func (d *Decoder) Text() string {
	if d.err != nil {
		return ""
	}
	return d.out.String()
}

func (d *Decoder) step(c byte) error {
	if d.err != nil {
		return d.err
	}
	if d.tree.Empty() {
		d.err = ErrEmptyTree
		return d.err
	}
	if c != '0' && c != '1' {
		d.err = &MalformedStreamError{Offset: d.pos, Reason: InvalidDigit}
		return d.err
	}

	cur := d.cur
	if cur == nil {
		cur = d.tree.root
	}

	var next Node
	switch n := cur.(type) {
	case *Leaf:
		// single-leaf tree: the symbol's codeword is "0"
		if c == '0' {
			next = n
		}
	case *Internal:
		if c == '0' {
			next = n.Left
		} else {
			next = n.Right
		}
	}
	if next == nil {
		d.err = &MalformedStreamError{Offset: d.pos, Reason: MissingChild}
		return d.err
	}
	d.pos++

	if l, ok := next.(*Leaf); ok {
		d.out.WriteRune(l.Symbol)
		d.cur = nil
	} else {
		d.cur = next
	}
	return nil
}
