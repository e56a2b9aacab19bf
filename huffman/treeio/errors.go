package treeio

import (
	"errors"
	"fmt"
)

// ErrInvalidTree matches every *DeserializationError under errors.Is.
var ErrInvalidTree = errors.New("treeio: invalid tree")

// DeserializationError reports persisted data that is not a valid Huffman tree.
type DeserializationError struct {
	Path   string // codeword of the offending node, "" for the root or the whole document
	Reason string
	Err    error
}

func (e *DeserializationError) Error() string {
	msg := "treeio: invalid tree"
	if e.Path != "" {
		msg += fmt.Sprintf(" at %q", e.Path)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DeserializationError) Unwrap() error { return e.Err }

func (e *DeserializationError) Is(target error) bool {
	return target == ErrInvalidTree
}
