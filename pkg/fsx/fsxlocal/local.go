package fsxlocal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hirelens/hirelens/pkg/fsx"
)

// LocalFileSystem stores files under a root directory on local disk. Used by
// the CLI and in tests where S3 is not available.
type LocalFileSystem struct {
	root string
}

func NewLocalFileSystem(root string) fsx.FileSystem {
	return &LocalFileSystem{root: root}
}

func (f *LocalFileSystem) resolve(path string) string {
	return filepath.Join(f.root, filepath.FromSlash(path))
}

func (f *LocalFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(f.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (f *LocalFileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	full := f.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (f *LocalFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stream for %s: %w", path, err)
	}
	return f.WriteFile(ctx, path, data)
}

func (f *LocalFileSystem) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(f.resolve(path)); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (f *LocalFileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(f.resolve(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *LocalFileSystem) Join(parts ...string) string {
	return filepath.ToSlash(filepath.Join(parts...))
}
