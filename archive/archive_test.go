package archive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/huffcode/bitpack"
	"github.com/consensys/huffcode/huffman"
	"github.com/consensys/huffcode/huffman/treeio"
)

func newTestArchiver(t *testing.T, opts ...Option) (*Archiver, string) {
	t.Helper()
	dir := t.TempDir()
	opts = append([]Option{WithOutputDir(dir), WithLogger(zerolog.Nop())}, opts...)
	return New(opts...), dir
}

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEncodeDecodeFile(t *testing.T) {
	a, dir := newTestArchiver(t)
	src := writeSource(t, dir, "aabbbcc")

	report, err := a.EncodeFile(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Symbols)
	assert.Equal(t, uint64(7), report.Length)
	assert.Equal(t, 11, report.EncodedBits)
	assert.Equal(t, "01011110000", readFile(t, a.EncodedPath()))

	f, err := os.Open(a.TreePath())
	require.NoError(t, err)
	defer f.Close()
	tree, err := treeio.Read(f)
	require.NoError(t, err)
	assert.True(t, huffman.BuildTree(huffman.CountFrequencies("aabbbcc")).Equal(tree))

	dst := filepath.Join(dir, "out", "decoded.txt")
	report, err = a.DecodeFile(context.Background(), a.EncodedPath(), a.TreePath(), dst)
	require.NoError(t, err)
	assert.Equal(t, dst, report.DecodedPath)
	assert.Equal(t, "aabbbcc", readFile(t, dst))
}

func TestRoundTrip(t *testing.T) {
	var logs bytes.Buffer
	a, dir := newTestArchiver(t, WithLogger(zerolog.New(&logs)), WithFileNames("enc.txt", "dec.txt", ""))
	src := writeSource(t, dir, "Füße über der Brücke ✓")

	report, err := a.RoundTrip(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "enc.txt"), report.EncodedPath)
	assert.Equal(t, filepath.Join(dir, "dec.txt"), report.DecodedPath)
	assert.Equal(t, filepath.Join(dir, "tree.cbor"), report.TreePath)
	assert.Equal(t, "Füße über der Brücke ✓", readFile(t, report.DecodedPath))

	assert.Contains(t, logs.String(), "file has been encoded")
	assert.Contains(t, logs.String(), "file has been decoded")
}

func TestPacked(t *testing.T) {
	a, dir := newTestArchiver(t, WithPacked(true))
	src := writeSource(t, dir, "aabbbcc")

	_, err := a.EncodeFile(context.Background(), src)
	require.NoError(t, err)

	packed, err := bitpack.Pack("01011110000")
	require.NoError(t, err)
	assert.Equal(t, string(packed), readFile(t, a.EncodedPath()))

	_, err = a.DecodeFile(context.Background(), a.EncodedPath(), a.TreePath(), a.DecodedPath())
	require.NoError(t, err)
	assert.Equal(t, "aabbbcc", readFile(t, a.DecodedPath()))
}

func TestEmptyInput(t *testing.T) {
	a, dir := newTestArchiver(t)
	src := writeSource(t, dir, "")

	report, err := a.RoundTrip(context.Background(), src)
	require.NoError(t, err)
	assert.Zero(t, report.Symbols)
	assert.Equal(t, "", readFile(t, a.EncodedPath()))
	assert.Equal(t, "", readFile(t, a.DecodedPath()))

	tree, err := treeio.Unmarshal([]byte(readFile(t, a.TreePath())))
	require.NoError(t, err)
	assert.True(t, tree.Empty())
}

func TestInvalidText(t *testing.T) {
	a, dir := newTestArchiver(t)
	src := writeSource(t, dir, "ok\xffnot ok")

	_, err := a.EncodeFile(context.Background(), src)
	require.ErrorIs(t, err, huffman.ErrInvalidText)
	assertNoOutputs(t, a, dir)
}

func TestDecodeTruncatedStream(t *testing.T) {
	a, dir := newTestArchiver(t)
	src := writeSource(t, dir, "aabbbcc")
	_, err := a.EncodeFile(context.Background(), src)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(a.EncodedPath(), []byte("0101111000"), 0o600))
	_, err = a.DecodeFile(context.Background(), a.EncodedPath(), a.TreePath(), a.DecodedPath())
	require.ErrorIs(t, err, huffman.ErrMalformedStream)
	assert.NoFileExists(t, a.DecodedPath())
}

func TestDecodeCorruptedTree(t *testing.T) {
	a, dir := newTestArchiver(t)
	src := writeSource(t, dir, "aabbbcc")
	_, err := a.EncodeFile(context.Background(), src)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(a.TreePath(), []byte("garbage"), 0o600))
	_, err = a.DecodeFile(context.Background(), a.EncodedPath(), a.TreePath(), a.DecodedPath())
	require.ErrorIs(t, err, treeio.ErrInvalidTree)
	assert.NoFileExists(t, a.DecodedPath())
}

func TestCanceled(t *testing.T) {
	a, dir := newTestArchiver(t)
	src := writeSource(t, dir, "aabbbcc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.EncodeFile(ctx, src)
	require.ErrorIs(t, err, context.Canceled)
	assertNoOutputs(t, a, dir)
}

func TestMissingSource(t *testing.T) {
	a, dir := newTestArchiver(t)
	_, err := a.EncodeFile(context.Background(), filepath.Join(dir, "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// assertNoOutputs checks that neither outputs nor temporary files were left in dir.
func assertNoOutputs(t *testing.T, a *Archiver, dir string) {
	t.Helper()
	assert.NoFileExists(t, a.EncodedPath())
	assert.NoFileExists(t, a.TreePath())
	assert.NoFileExists(t, a.DecodedPath())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, "file.txt", e.Name())
	}
}
