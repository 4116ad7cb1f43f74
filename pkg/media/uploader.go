package media

import (
	"context"
	"io"
)

// Uploader stores an image with the media host and returns its durable public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
