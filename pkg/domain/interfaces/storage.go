package interfaces

import (
	"context"
	"io"
)

// FileStorage persists uploaded files and returns their public URL
type FileStorage interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)

	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, name string) error
}
