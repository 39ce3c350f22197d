// Package core holds the small capability interfaces shared across vercheck packages,
// along with their production and in-memory implementations.
package core

import (
	"context"
	"os"
)

// PermOwnerRW is the file mode used for files vercheck creates (owner read/write only).
const PermOwnerRW os.FileMode = 0o600

// FileSystem abstracts the file operations vercheck performs so they can be mocked in tests.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (os.FileInfo, error)
}

// Marshaler serializes a value into bytes.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
