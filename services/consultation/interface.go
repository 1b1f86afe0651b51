package consultation

import (
	"context"

	"advoqat/models"
)

// ConsultationService reflects consultation state held by the core platform
// API. Status invariants are the backend's; nothing here enforces them.
type ConsultationService interface {
	ListByUser(ctx context.Context, userID string) ([]models.Consultation, error)
	GetConsultation(ctx context.Context, id string) (*models.Consultation, error)
	Reschedule(ctx context.Context, id string, update models.ConsultationUpdate) (*models.Consultation, error)
	Cancel(ctx context.Context, id string) (*models.Consultation, error)
}
