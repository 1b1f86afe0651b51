package legalcase

import (
	"context"

	"advoqat/models"
)

// CaseService submits and tracks legal cases handled by the core platform.
type CaseService interface {
	Submit(ctx context.Context, clientID string, sub models.CaseSubmission) (*models.LegalCase, error)
	ListByClient(ctx context.Context, clientID string) ([]models.LegalCase, error)
	Get(ctx context.Context, caseID string) (*models.LegalCase, error)
	UploadEvidence(ctx context.Context, clientID, localFilePath string) (string, error)
}
