// Package huffman builds prefix-free codes from symbol frequencies and uses them
// to encode text into a string of '0' and '1' characters and back.
//
// The pipeline is
//
//	CountFrequencies -> BuildTree -> BuildCodeTable -> Encode
//	                       |
//	                       +-------------------------> Decode
//
// Every stage is a pure function of its input. The tree is the only artifact
// shared by both directions; package treeio persists it for decoding in a
// separate session.
//
// Tree construction is deterministic: at equal weight an internal node ranks
// below a leaf, leaves rank by code point and internal nodes by creation order.
// The same text therefore always yields the same tree, the same code table and
// the same encoded stream.
package huffman
