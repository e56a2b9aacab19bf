package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidText is returned when encoding a text that is not valid UTF-8.
	ErrInvalidText = errors.New("huffman: text is not valid UTF-8")

	// ErrEmptyTree is returned when decoding a non-empty stream with the empty tree.
	ErrEmptyTree = errors.New("huffman: cannot decode a non-empty stream with an empty tree")

	// ErrMalformedStream matches every *MalformedStreamError under errors.Is.
	ErrMalformedStream = errors.New("huffman: malformed stream")
)

// LookupError reports a symbol with no codeword in the code table.
// It means the table was not built from the text being encoded.
type LookupError struct {
	Symbol rune
	Offset int // byte offset of the symbol in the text, -1 if unknown
}

func (e *LookupError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("huffman: no code for symbol %q", e.Symbol)
	}
	return fmt.Sprintf("huffman: no code for symbol %q at offset %d", e.Symbol, e.Offset)
}

// Reason is the cause of a MalformedStreamError.
type Reason uint8

const (
	// InvalidDigit means the stream holds a character other than '0' and '1'.
	InvalidDigit Reason = iota
	// MissingChild means the stream leads out of the tree.
	MissingChild
	// Truncated means the stream ends in the middle of a codeword.
	Truncated
)

func (r Reason) String() string {
	switch r {
	case InvalidDigit:
		return "invalid digit"
	case MissingChild:
		return "path leaves the tree"
	case Truncated:
		return "stream ends mid-codeword"
	default:
		return fmt.Sprintf("Reason(%d)", uint8(r))
	}
}

// MalformedStreamError reports an encoded stream that does not decode with the
// given tree: it is corrupted, truncated or was produced with another tree.
type MalformedStreamError struct {
	Offset int // position in the stream of the offending digit, or its length when Truncated
	Reason Reason
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf("huffman: malformed stream at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedStreamError) Is(target error) bool {
	return target == ErrMalformedStream
}
