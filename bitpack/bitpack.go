// Package bitpack stores a stream of '0' and '1' digits as packed bits.
//
// Encoded streams are text by default, one byte per bit. Packing is opt-in:
// a packed stream is an 8-byte big-endian bit count followed by the bits,
// most significant first, zero padded to a byte boundary.
package bitpack

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

const headerLen = 8

var (
	ErrInvalidDigit = errors.New("bitpack: digit is neither '0' nor '1'")
	ErrTruncated    = errors.New("bitpack: packed stream is shorter than its bit count")
	ErrTrailingData = errors.New("bitpack: packed stream is longer than its bit count")
)

// PackedLen returns the size in bytes of a packed stream of nbBits bits.
func PackedLen(nbBits int) int {
	return headerLen + (nbBits+7)/8
}

// Pack packs bits. Nothing is returned if bits holds another character than '0' or '1'.
func Pack(bits string) ([]byte, error) {
	if i := strings.IndexFunc(bits, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
		return nil, fmt.Errorf("%w: offset %d", ErrInvalidDigit, i)
	}

	var bb bytes.Buffer
	bb.Grow(PackedLen(len(bits)))
	w := bitio.NewWriter(&bb)

	w.TryWriteBits(uint64(len(bits)), 64)
	for i := 0; i < len(bits); i++ {
		w.TryWriteBool(bits[i] == '1')
	}
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// Unpack reverses Pack.
func Unpack(data []byte) (string, error) {
	if len(data) < headerLen {
		return "", ErrTruncated
	}
	r := bitio.NewReader(bytes.NewReader(data))

	nbBits, err := r.ReadBits(64)
	if err != nil {
		return "", err
	}
	available := uint64(len(data)-headerLen) * 8
	switch {
	case nbBits > available:
		return "", ErrTruncated
	case available-nbBits >= 8:
		return "", ErrTrailingData
	}

	var sb strings.Builder
	sb.Grow(int(nbBits))
	for i := uint64(0); i < nbBits; i++ {
		if r.TryReadBool() {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	if r.TryError != nil {
		return "", r.TryError
	}
	return sb.String(), nil
}
