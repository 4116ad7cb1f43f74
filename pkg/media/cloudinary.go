package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/tastytalk/admin-backend/pkg/config"
)

type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader uploads images into a Cloudinary folder
type CloudinaryUploader struct {
	api    cloudinaryAPI
	folder string
}

// NewCloudinaryUploader builds an uploader from CLOUDINARY_URL or the split credentials
func NewCloudinaryUploader(cfg config.MediaConfig) (*CloudinaryUploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("error initializing cloudinary: %w", err)
	}
	return &CloudinaryUploader{api: &cld.Upload, folder: cfg.Folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	resp, err := u.api.Upload(ctx, r, uploader.UploadParams{Folder: u.folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload of %s: %w", filename, err)
	}
	if resp == nil {
		return "", errors.New("cloudinary upload returned no result")
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload of %s: %s", filename, resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload of %s: empty secure url", filename)
	}
	return resp.SecureURL, nil
}
