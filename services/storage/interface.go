package storage

import (
	"context"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService defines the interface for file storage operations.
type StorageService interface {
	// UploadFile uploads a local file into destFolder and returns its permanent identifier.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// UploadDocument uploads in-memory document content as a raw asset named name.
	UploadDocument(ctx context.Context, content io.Reader, name, destFolder string) (string, error)
	// UploadEncryptedEvidence encrypts the file with caseKey before uploading.
	UploadEncryptedEvidence(ctx context.Context, localFilePath, destFolder, caseKey string) (string, error)
	// DeleteFile removes the asset identified by publicID.
	DeleteFile(ctx context.Context, publicID string) error
	// GetDownloadURL constructs a public URL for the asset.
	GetDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
	// GetSecureDownloadURL generates a signed, short-lived URL for an authenticated asset.
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}

// StorageServiceImpl implements StorageService backed by Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}
