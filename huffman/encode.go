package huffman

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Encode replaces every symbol of text by its codeword in codes.
// It returns an empty stream and an error if text is not valid UTF-8 or holds
// a symbol with no codeword.
func Encode(text string, codes CodeTable) (string, error) {
	n, err := encodedLen(text, codes)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(n)
	for _, r := range text {
		sb.WriteString(codes[r])
	}
	return sb.String(), nil
}

// encodedLen checks that text can be encoded with codes and returns the length
// of the stream.
func encodedLen(text string, codes CodeTable) (int, error) {
	if !utf8.ValidString(text) {
		return 0, ErrInvalidText
	}
	n := 0
	for i, r := range text {
		code, ok := codes[r]
		if !ok {
			return 0, &LookupError{Symbol: r, Offset: i}
		}
		n += len(code)
	}
	return n, nil
}

// An Encoder writes encoded streams to an io.Writer.
type Encoder struct {
	w     *bufio.Writer
	codes CodeTable
}

// NewEncoder returns an Encoder writing to w with codes.
func NewEncoder(w io.Writer, codes CodeTable) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), codes: codes}
}

// Encode writes the encoding of text and returns the number of digits written.
// Every symbol is looked up before the first write, so an encoding error leaves
// the underlying writer untouched.
func (e *Encoder) Encode(text string) (int64, error) {
	n, err := encodedLen(text, e.codes)
	if err != nil {
		return 0, err
	}
	for _, r := range text {
		if _, err := e.w.WriteString(e.codes[r]); err != nil {
			return 0, err
		}
	}
	if err := e.w.Flush(); err != nil {
		return 0, err
	}
	return int64(n), nil
}
