package lawyer

import (
	"context"

	"advoqat/models"
)

// LawyerService exposes the freelance-lawyer directory used by the booking
// flow and the discovery page.
type LawyerService interface {
	Search(ctx context.Context, query models.LawyerSearchQuery) ([]models.Lawyer, error)
	GetByID(ctx context.Context, id string) (*models.Lawyer, error)
}
