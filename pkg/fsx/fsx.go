package fsx

import (
	"context"
	"io"
)

// FileReader reads stored files by path.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileWriter writes files to storage.
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

// FileSystem is the full storage contract used by upload handlers and
// services. Join builds backend-appropriate paths from segments.
type FileSystem interface {
	FileReader
	FileWriter
	DeleteFile(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	Join(parts ...string) string
}
