package document

import (
	documentRepo "advoqat/database/repository/document"
	"advoqat/models"
	"advoqat/services/storage"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnknownTemplate indicates the requested template is not registered.
	ErrUnknownTemplate = errors.New("unknown document template")
	// ErrDocumentLocked indicates the document has not been paid for yet.
	ErrDocumentLocked = errors.New("document is locked until payment completes")
	// ErrNotOwner indicates the document belongs to another user.
	ErrNotOwner = errors.New("document does not belong to this user")
	// ErrPasscodeMismatch indicates an incorrect share passcode.
	ErrPasscodeMismatch = errors.New("incorrect share passcode")
	// ErrNoPasscode indicates the document has no share passcode configured.
	ErrNoPasscode = errors.New("document has no share passcode")
)

// GenerateRequest carries the inputs for rendering a new document.
type GenerateRequest struct {
	UserID     string            `json:"-"`
	TemplateID string            `json:"templateId" binding:"required"`
	Title      string            `json:"title"`
	Fields     map[string]string `json:"fields" binding:"required"`
}

// ExportResult holds the uploaded asset identifier and its download URL.
type ExportResult struct {
	AssetID     string `json:"assetId"`
	DownloadURL string `json:"downloadUrl"`
}

// DocumentService manages template-based legal document generation.
type DocumentService interface {
	ListTemplates() []models.DocumentTemplate
	Generate(ctx context.Context, req GenerateRequest) (*models.GeneratedDocument, error)
	Get(userID, documentID string) (*models.GeneratedDocument, error)
	ListByUser(userID string) ([]models.GeneratedDocument, error)
	Unlock(checkoutID string) (*models.GeneratedDocument, error)
	AttachCheckout(userID, documentID, sessionID string) (*models.GeneratedDocument, error)
	SetSharePasscode(userID, documentID, passcode string) error
	OpenShared(documentID, passcode string) (*models.GeneratedDocument, error)
	Export(ctx context.Context, userID, documentID string, expires time.Duration) (*ExportResult, error)
	Delete(userID, documentID string) error
}

// DefaultDocumentService is the production implementation.
type DefaultDocumentService struct {
	Repo    documentRepo.DocumentRepository
	Storage storage.StorageService
	Logger  *zap.Logger
}
