package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const downloadTokenKey = "firebaseStorageDownloadTokens"

type objectWriterFunc func(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser

// FirebaseStorageUploader stores images in the project's default Cloud Storage bucket
// and returns token-protected download URLs, as the Firebase client SDKs do.
type FirebaseStorageUploader struct {
	bucket    string
	prefix    string
	newWriter objectWriterFunc
}

func NewFirebaseStorageUploader(bucket *gcs.BucketHandle, bucketName, prefix string) *FirebaseStorageUploader {
	return &FirebaseStorageUploader{
		bucket: bucketName,
		prefix: prefix,
		newWriter: func(ctx context.Context, object, contentType string, metadata map[string]string) io.WriteCloser {
			w := bucket.Object(object).NewWriter(ctx)
			w.ContentType = contentType
			w.Metadata = metadata
			return w
		},
	}
}

func (u *FirebaseStorageUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	object := path.Join(u.prefix, uuid.NewString()+ext)
	token := uuid.NewString()

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w := u.newWriter(ctx, object, contentType, map[string]string{downloadTokenKey: token})
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("writing %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing %s: %w", object, err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, url.PathEscape(object), token), nil
}
