// Package output writes generated files so that readers only ever observe a
// complete previous version or a complete new version.
package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	defaultPerm    os.FileMode = 0o644
	defaultBufSize             = 64 * 1024
)

// WriteFileAtomic streams fill's output to a temporary file next to dest and
// renames it over dest once fill, the buffer flush and fsync all succeed.
// On any failure the temporary file is removed and dest is left untouched.
func WriteFileAtomic(ctx context.Context, dest string, fill func(w io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".pgseed-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := tmp.Chmod(defaultPerm); err != nil {
		return fail(fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err))
	}

	bw := bufio.NewWriterSize(tmp, defaultBufSize)
	if err := fill(&ctxWriter{ctx: ctx, w: bw}); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("failed to flush %s: %w", tmpPath, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("failed to sync %s: %w", tmpPath, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", dest, err)
	}

	// Best effort: persist the rename itself.
	_ = syncDir(dir)
	return nil
}

// ctxWriter fails writes once ctx is cancelled.
type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (cw *ctxWriter) Write(p []byte) (int, error) {
	if err := cw.ctx.Err(); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
