package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/jobxnepal/backend/internal/models"
)

// Cloudinary folders, one per asset kind.
const (
	FolderProfilePictures = "UserProfilePictures"
	FolderResumes         = "Job_Seekers_Resume"
	FolderCompanyLogos    = "CompanyLogos"
)

// FileStorage is the file-hosting collaborator. Handlers depend on this
// interface so tests can swap in a fake.
type FileStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.StoredFile, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements FileStorage against the Cloudinary upload API.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStorage{client: client}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (models.StoredFile, error) {
	f, err := file.Open()
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	resp, err := s.client.Upload.Upload(ctx, f, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("upload to cloudinary: %w", err)
	}

	return models.StoredFile{
		PublicID: resp.PublicID,
		URL:      resp.SecureURL,
	}, nil
}

func (s *CloudinaryStorage) Destroy(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("destroy cloudinary asset %s: %w", publicID, err)
	}
	return nil
}
