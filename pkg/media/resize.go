package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedImage is returned for payloads that are not a decodable image.
var ErrUnsupportedImage = errors.New("unsupported image format")

var formats = map[string]struct {
	format imaging.Format
	ext    string
}{
	"jpeg": {imaging.JPEG, ".jpg"},
	"png":  {imaging.PNG, ".png"},
	"gif":  {imaging.GIF, ".gif"},
	"bmp":  {imaging.BMP, ".bmp"},
	"tiff": {imaging.TIFF, ".tiff"},
}

// Resize downscales an image wider than maxWidth, keeping its aspect ratio and format.
// Images within the limit are returned byte for byte. The returned extension matches
// the detected format.
func Resize(r io.Reader, maxWidth int) ([]byte, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}

	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	f, ok := formats[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedImage, name)
	}
	if maxWidth <= 0 || cfg.Width <= maxWidth {
		return data, f.ext, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, f.format, imaging.JPEGQuality(85)); err != nil {
		return nil, "", fmt.Errorf("encoding resized image: %w", err)
	}
	return buf.Bytes(), f.ext, nil
}

// ResizingUploader normalizes images with Resize before handing them to the next Uploader.
type ResizingUploader struct {
	next     Uploader
	maxWidth int
}

func NewResizingUploader(next Uploader, maxWidth int) *ResizingUploader {
	return &ResizingUploader{next: next, maxWidth: maxWidth}
}

func (u *ResizingUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, ext, err := Resize(r, u.maxWidth)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "image"
	}
	return u.next.Upload(ctx, base+ext, bytes.NewReader(data))
}
