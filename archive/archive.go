// Package archive runs Huffman encode and decode sessions on files.
//
// Every output file is first written to a temporary file next to its
// destination and renamed only once all the outputs of the session are
// complete, so a failed session leaves no partial output behind.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/consensys/huffcode/bitpack"
	"github.com/consensys/huffcode/huffman"
	"github.com/consensys/huffcode/huffman/treeio"
	"github.com/consensys/huffcode/logger"
)

// ErrRoundTripMismatch is returned by RoundTrip when the decoded text differs from the input.
var ErrRoundTripMismatch = errors.New("archive: decoded text differs from the input")

// Archiver encodes and decodes files. It holds no per-session state and may
// be used by several goroutines as long as their output files differ.
type Archiver struct {
	outputDir   string
	encodedName string
	decodedName string
	treeName    string
	packed      bool
	log         zerolog.Logger
}

// New returns an Archiver writing encoded.txt, decoded.txt and tree.cbor to
// the working directory, unless told otherwise by opts.
func New(opts ...Option) *Archiver {
	a := &Archiver{
		outputDir:   ".",
		encodedName: "encoded.txt",
		decodedName: "decoded.txt",
		treeName:    "tree.cbor",
		log:         *logger.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EncodedPath, DecodedPath and TreePath return where the Archiver writes its outputs.
func (a *Archiver) EncodedPath() string { return filepath.Join(a.outputDir, a.encodedName) }
func (a *Archiver) DecodedPath() string { return filepath.Join(a.outputDir, a.decodedName) }
func (a *Archiver) TreePath() string    { return filepath.Join(a.outputDir, a.treeName) }

// Report describes a finished session.
type Report struct {
	Symbols     int    // distinct symbols
	Length      uint64 // symbols in the text
	TextBytes   int
	EncodedBits int
	EncodedPath string
	TreePath    string
	DecodedPath string // empty for an encode-only session
	Took        time.Duration
}

// session is the in-memory result of encoding one text.
type session struct {
	text  string
	freqs huffman.FrequencyTable
	tree  *huffman.Tree
	bits  string
}

func encodeText(text string) (*session, error) {
	freqs := huffman.CountFrequencies(text)
	tree := huffman.BuildTree(freqs)
	bits, err := huffman.Encode(text, huffman.BuildCodeTable(tree))
	if err != nil {
		return nil, err
	}
	return &session{text: text, freqs: freqs, tree: tree, bits: bits}, nil
}

// EncodeFile encodes the text file src and writes the tree and the encoded stream.
func (a *Archiver) EncodeFile(ctx context.Context, src string) (Report, error) {
	start := time.Now()
	log := a.log.With().Str("src", src).Logger()

	s, err := a.readAndEncode(src)
	if err != nil {
		return Report{}, err
	}
	if _, err := a.persist(ctx, s); err != nil {
		return Report{}, err
	}

	report := a.report(s, start)
	log.Info().
		Int("symbols", report.Symbols).
		Int("bits", report.EncodedBits).
		Str("path", report.EncodedPath).
		Str("tree", report.TreePath).
		Dur("took", report.Took).
		Msg("file has been encoded")
	return report, nil
}

// DecodeFile decodes the stream in encodedPath with the tree in treePath and
// writes the text to dst. The tree is read and validated before the stream is
// touched.
func (a *Archiver) DecodeFile(ctx context.Context, encodedPath, treePath, dst string) (Report, error) {
	start := time.Now()
	log := a.log.With().Str("src", encodedPath).Logger()

	tree, err := readTree(treePath)
	if err != nil {
		return Report{}, err
	}
	bits, err := a.readStream(encodedPath)
	if err != nil {
		return Report{}, err
	}
	text, err := huffman.Decode(bits, tree)
	if err != nil {
		return Report{}, fmt.Errorf("decode %s: %w", encodedPath, err)
	}
	if err := commitFiles(ctx, map[string][]byte{dst: []byte(text)}); err != nil {
		return Report{}, err
	}

	report := Report{
		Symbols:     tree.NbLeaves(),
		Length:      tree.Weight(),
		TextBytes:   len(text),
		EncodedBits: len(bits),
		EncodedPath: encodedPath,
		TreePath:    treePath,
		DecodedPath: dst,
		Took:        time.Since(start),
	}
	log.Info().
		Int("symbols", report.Symbols).
		Int("bytes", report.TextBytes).
		Str("path", dst).
		Dur("took", report.Took).
		Msg("file has been decoded")
	return report, nil
}

// RoundTrip encodes src, decodes the result with the persisted form of the
// tree and checks the decoded text is the input. It writes the tree, the
// encoded and the decoded files.
func (a *Archiver) RoundTrip(ctx context.Context, src string) (Report, error) {
	start := time.Now()
	log := a.log.With().Str("src", src).Logger()

	s, err := a.readAndEncode(src)
	if err != nil {
		return Report{}, err
	}
	treeData, err := a.persist(ctx, s)
	if err != nil {
		return Report{}, err
	}
	log.Info().Str("path", a.EncodedPath()).Msg("file has been encoded")

	tree, err := treeio.Unmarshal(treeData)
	if err != nil {
		return Report{}, err
	}
	text, err := huffman.Decode(s.bits, tree)
	if err != nil {
		return Report{}, err
	}
	if text != s.text {
		return Report{}, ErrRoundTripMismatch
	}
	if err := commitFiles(ctx, map[string][]byte{a.DecodedPath(): []byte(text)}); err != nil {
		return Report{}, err
	}

	report := a.report(s, start)
	report.DecodedPath = a.DecodedPath()
	log.Info().
		Str("path", report.DecodedPath).
		Dur("took", report.Took).
		Msg("file has been decoded")
	return report, nil
}

func (a *Archiver) readAndEncode(src string) (*session, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		a.log.Warn().Str("src", src).Msg("input is empty, outputs will be empty")
	}
	s, err := encodeText(string(data))
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", src, err)
	}
	a.log.Debug().
		Str("src", src).
		Int("symbols", len(s.freqs)).
		Int("depth", s.tree.Depth()).
		Msg("code built")
	return s, nil
}

// persist writes the tree and the encoded stream of s and returns the
// serialized tree.
func (a *Archiver) persist(ctx context.Context, s *session) ([]byte, error) {
	treeData, err := treeio.Marshal(s.tree)
	if err != nil {
		return nil, err
	}
	stream := []byte(s.bits)
	if a.packed {
		if stream, err = bitpack.Pack(s.bits); err != nil {
			return nil, err
		}
	}
	err = commitFiles(ctx, map[string][]byte{
		a.TreePath():    treeData,
		a.EncodedPath(): stream,
	}, a.TreePath())
	return treeData, err
}

func (a *Archiver) readStream(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !a.packed {
		return string(data), nil
	}
	bits, err := bitpack.Unpack(data)
	if err != nil {
		return "", fmt.Errorf("unpack %s: %w", path, err)
	}
	return bits, nil
}

func readTree(path string) (*huffman.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree, err := treeio.Read(f)
	if err != nil {
		return nil, fmt.Errorf("read tree %s: %w", path, err)
	}
	return tree, nil
}

func (a *Archiver) report(s *session, start time.Time) Report {
	return Report{
		Symbols:     len(s.freqs),
		Length:      s.freqs.Total(),
		TextBytes:   len(s.text),
		EncodedBits: len(s.bits),
		EncodedPath: a.EncodedPath(),
		TreePath:    a.TreePath(),
		Took:        time.Since(start),
	}
}
