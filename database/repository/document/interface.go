package documentRepo

import "advoqat/models"

// DocumentRepository persists generated legal documents.
type DocumentRepository interface {
	Create(doc *models.GeneratedDocument) error
	GetByID(id string) (*models.GeneratedDocument, error)
	GetByCheckoutID(checkoutID string) (*models.GeneratedDocument, error)
	ListByUser(userID string) ([]models.GeneratedDocument, error)
	Update(doc *models.GeneratedDocument) error
	Delete(id string) error
}
