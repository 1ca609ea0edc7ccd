package storage

import (
	"context"
	"io"

	"github.com/HSouheill/barrim_admin/models"
)

// FileStore is the binary object store holding uploaded images and
// attachments. Implementations return models.ErrNotFound for unknown ids.
type FileStore interface {
	// Upload stores the content under a new id and returns its metadata
	Upload(ctx context.Context, name string, body io.Reader, contentType string) (models.FileMetadata, error)

	// Delete removes the file
	Delete(ctx context.Context, id string) error

	// PreviewURL returns a URL suitable for an inline image preview
	PreviewURL(ctx context.Context, id string) (string, error)

	// DownloadURL returns a URL that serves the original file
	DownloadURL(ctx context.Context, id string) (string, error)

	// Open streams the original file back with its metadata
	Open(ctx context.Context, id string) (io.ReadCloser, models.FileMetadata, error)
}

// Previewer is implemented by stores that render previews themselves
// rather than handing out direct object URLs
type Previewer interface {
	OpenPreview(ctx context.Context, id string) (io.ReadCloser, string, error)
}
