package huffman

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FrequencyTable maps each symbol of a text to its number of occurrences.
// Counts are always positive.
type FrequencyTable map[rune]uint64

// CountFrequencies returns the occurrence count of every distinct symbol in text.
// Invalid UTF-8 sequences are counted as utf8.RuneError, as ranging over a
// string does; Encode rejects such texts.
func CountFrequencies(text string) FrequencyTable {
	freqs := make(FrequencyTable)
	for _, r := range text {
		freqs[r]++
	}
	return freqs
}

// Symbols returns the symbols of the table in ascending code point order.
func (f FrequencyTable) Symbols() []rune {
	symbols := maps.Keys(f)
	slices.Sort(symbols)
	return symbols
}

// Total returns the sum of all counts, i.e. the number of symbols in the text.
func (f FrequencyTable) Total() uint64 {
	var total uint64
	for _, c := range f {
		total += c
	}
	return total
}
