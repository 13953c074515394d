// Package photo stores CV photos on Cloudinary and hands back the hosted
// URL that the document keeps.
package photo

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Folder under which all CV photos are stored.
const uploadFolder = "cv-photos"

// Uploader abstracts the photo storage backend.
type Uploader interface {
	// Upload stores the image and returns its hosted HTTPS URL.
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
	// Delete removes a previously uploaded image.
	Delete(ctx context.Context, publicID string) error
}

// CloudinaryUploader implements Uploader on Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from account credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	if cloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud name is required")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   uploadFolder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return result.SecureURL, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: uploadFolder + "/" + publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}
