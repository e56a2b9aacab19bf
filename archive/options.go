package archive

import (
	"github.com/rs/zerolog"
)

// Option configures an Archiver.
type Option func(*Archiver)

// WithOutputDir sets the directory the encoded, decoded and tree files are written to.
func WithOutputDir(dir string) Option {
	return func(a *Archiver) {
		a.outputDir = dir
	}
}

// WithFileNames sets the names of the encoded, decoded and tree files.
// Empty names keep the defaults.
func WithFileNames(encoded, decoded, tree string) Option {
	return func(a *Archiver) {
		if encoded != "" {
			a.encodedName = encoded
		}
		if decoded != "" {
			a.decodedName = decoded
		}
		if tree != "" {
			a.treeName = tree
		}
	}
}

// WithPacked stores encoded streams as packed bits (see package bitpack)
// instead of one '0' or '1' character per bit.
func WithPacked(packed bool) Option {
	return func(a *Archiver) {
		a.packed = packed
	}
}

// WithLogger sets the logger; the default is logger.Logger().
func WithLogger(l zerolog.Logger) Option {
	return func(a *Archiver) {
		a.log = l
	}
}
