package gallery

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader sends image bytes to the managed media host and returns the
// public URL of the stored object.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// CloudinaryUploader uploads into a fixed Cloudinary folder.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an uploader from a cloudinary:// URL.
func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary client: %w", err)
	}
	return &CloudinaryUploader{
		client: client,
		folder: folder,
	}, nil
}

// Upload stores the image and returns its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader) (string, error) {
	resp, err := u.client.Upload.Upload(ctx, r, uploader.UploadParams{
		ResourceType: "auto",
		Folder:       u.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}
