package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type stagedFile struct {
	tmp, dst string
}

// commitFiles writes every file concurrently to a temporary file, then renames
// them all into place, the files named in first before the others. If any
// write fails no destination is touched.
func commitFiles(ctx context.Context, files map[string][]byte, first ...string) error {
	staged := make([]stagedFile, 0, len(files))
	results := make(chan stagedFile, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	for dst, data := range files {
		dst, data := dst, data
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			tmp, err := stage(dst, data)
			if err != nil {
				return err
			}
			results <- stagedFile{tmp: tmp, dst: dst}
			return nil
		})
	}
	err := g.Wait()
	close(results)
	for s := range results {
		staged = append(staged, s)
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		discard(staged)
		return err
	}

	ordered := make([]stagedFile, 0, len(staged))
	for _, name := range first {
		for _, s := range staged {
			if s.dst == name {
				ordered = append(ordered, s)
			}
		}
	}
	for _, s := range staged {
		if !slices.Contains(first, s.dst) {
			ordered = append(ordered, s)
		}
	}

	for i, s := range ordered {
		if err := os.Rename(s.tmp, s.dst); err != nil {
			discard(ordered[i:])
			return err
		}
	}
	return nil
}

// stage writes data to a temporary file in the directory of dst and returns its name.
func stage(dst string, data []byte) (string, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return "", err
	}
	_, err = f.Write(data)
	if err == nil {
		err = f.Sync()
	}
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err == nil {
		err = os.Chmod(f.Name(), 0o644)
	}
	if err != nil {
		return "", errors.Join(err, os.Remove(f.Name()))
	}
	return f.Name(), nil
}

func discard(staged []stagedFile) {
	for _, s := range staged {
		_ = os.Remove(s.tmp)
	}
}
