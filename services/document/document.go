package document

import (
	"context"
	"fmt"
	"strings"
	"time"

	"advoqat/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Generate renders a new document from a registered template. The document is
// created locked; its content stays hidden until payment completes.
func (s *DefaultDocumentService) Generate(ctx context.Context, req GenerateRequest) (*models.GeneratedDocument, error) {
	tmpl, content, err := renderTemplate(req.TemplateID, req.Fields)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = tmpl.meta.Name
	}

	doc := &models.GeneratedDocument{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		TemplateID: req.TemplateID,
		Title:      title,
		Fields:     req.Fields,
		Content:    content,
		Status:     models.DocumentLocked,
		Price:      tmpl.meta.Price,
	}
	if err := s.Repo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to save generated document: %w", err)
	}

	s.Logger.Info("document generated",
		zap.String("documentId", doc.ID),
		zap.String("templateId", doc.TemplateID),
		zap.String("userId", doc.UserID),
	)
	return redacted(doc), nil
}

// Get returns the user's document. Locked documents come back with their
// content stripped.
func (s *DefaultDocumentService) Get(userID, documentID string) (*models.GeneratedDocument, error) {
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, ErrNotOwner
	}
	return redacted(doc), nil
}

// ListByUser returns the user's documents, newest first, with locked content
// stripped.
func (s *DefaultDocumentService) ListByUser(userID string) ([]models.GeneratedDocument, error) {
	docs, err := s.Repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Status != models.DocumentPaid {
			docs[i].Content = ""
		}
	}
	return docs, nil
}

// Unlock marks the document tied to the given checkout session as paid.
// Unlocking an already-paid document is a no-op.
func (s *DefaultDocumentService) Unlock(checkoutID string) (*models.GeneratedDocument, error) {
	doc, err := s.Repo.GetByCheckoutID(checkoutID)
	if err != nil {
		return nil, err
	}
	if doc.Status == models.DocumentPaid {
		return doc, nil
	}
	doc.Status = models.DocumentPaid
	if err := s.Repo.Update(doc); err != nil {
		return nil, fmt.Errorf("failed to unlock document %s: %w", doc.ID, err)
	}
	s.Logger.Info("document unlocked", zap.String("documentId", doc.ID), zap.String("checkoutId", checkoutID))
	return doc, nil
}

// AttachCheckout records the checkout session that will unlock the document
// once payment completes.
func (s *DefaultDocumentService) AttachCheckout(userID, documentID, sessionID string) (*models.GeneratedDocument, error) {
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, ErrNotOwner
	}
	if doc.Status == models.DocumentPaid {
		return nil, fmt.Errorf("document %s is already paid", documentID)
	}
	doc.CheckoutID = sessionID
	if err := s.Repo.Update(doc); err != nil {
		return nil, fmt.Errorf("failed to attach checkout to document %s: %w", documentID, err)
	}
	return redacted(doc), nil
}

// SetSharePasscode protects a paid document with a bcrypt-hashed passcode for
// read-only sharing.
func (s *DefaultDocumentService) SetSharePasscode(userID, documentID, passcode string) error {
	if len(passcode) < 4 {
		return fmt.Errorf("share passcode must be at least 4 characters")
	}
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return ErrNotOwner
	}
	if doc.Status != models.DocumentPaid {
		return ErrDocumentLocked
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash share passcode: %w", err)
	}
	doc.SharePassHash = string(hash)
	doc.SharePassSet = true
	return s.Repo.Update(doc)
}

// OpenShared returns a document protected by a share passcode. Ownership is
// not required; the passcode is the credential.
func (s *DefaultDocumentService) OpenShared(documentID, passcode string) (*models.GeneratedDocument, error) {
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if !doc.SharePassSet || doc.SharePassHash == "" {
		return nil, ErrNoPasscode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(doc.SharePassHash), []byte(passcode)); err != nil {
		return nil, ErrPasscodeMismatch
	}
	return doc, nil
}

// Export uploads a paid document's content to storage and returns a signed
// download URL. Re-exporting reuses the stored asset ID.
func (s *DefaultDocumentService) Export(ctx context.Context, userID, documentID string, expires time.Duration) (*ExportResult, error) {
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != userID {
		return nil, ErrNotOwner
	}
	if doc.Status != models.DocumentPaid {
		return nil, ErrDocumentLocked
	}

	if doc.AssetID == "" {
		name := fmt.Sprintf("%s-%s.txt", doc.TemplateID, doc.ID)
		assetID, err := s.Storage.UploadDocument(ctx, strings.NewReader(doc.Content), name, "documents")
		if err != nil {
			return nil, fmt.Errorf("failed to export document %s: %w", doc.ID, err)
		}
		doc.AssetID = assetID
		if err := s.Repo.Update(doc); err != nil {
			return nil, fmt.Errorf("failed to record exported asset: %w", err)
		}
	}

	url, err := s.Storage.GetSecureDownloadURL(ctx, "raw", doc.AssetID, expires)
	if err != nil {
		return nil, fmt.Errorf("failed to sign download URL: %w", err)
	}
	return &ExportResult{AssetID: doc.AssetID, DownloadURL: url}, nil
}

// Delete removes the user's document and its exported asset, if any.
func (s *DefaultDocumentService) Delete(userID, documentID string) error {
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return ErrNotOwner
	}
	if doc.AssetID != "" {
		if err := s.Storage.DeleteFile(context.Background(), doc.AssetID); err != nil {
			s.Logger.Warn("failed to delete exported asset", zap.String("assetId", doc.AssetID), zap.Error(err))
		}
	}
	return s.Repo.Delete(documentID)
}

// redacted returns a copy with content hidden while the document is locked.
func redacted(doc *models.GeneratedDocument) *models.GeneratedDocument {
	if doc.Status == models.DocumentPaid {
		return doc
	}
	cp := *doc
	cp.Content = ""
	return &cp
}
