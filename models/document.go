package models

import "time"

// Generated document payment states. A locked document never exposes its
// rendered content.
const (
	DocumentLocked = "locked"
	DocumentPaid   = "paid"
)

// GeneratedDocument is a legal document rendered from a registered template.
type GeneratedDocument struct {
	ID           string            `bson:"id" json:"id"`
	UserID       string            `bson:"user_id" json:"userId"`
	TemplateID   string            `bson:"template_id" json:"templateId"`
	Title        string            `bson:"title" json:"title"`
	Fields       map[string]string `bson:"fields" json:"fields"`
	Content      string            `bson:"content" json:"content,omitempty"`
	Status       string            `bson:"status" json:"status"` // locked|paid
	Price        float64           `bson:"price" json:"price"`
	CheckoutID   string            `bson:"checkout_id,omitempty" json:"checkoutId,omitempty"`
	AssetID      string            `bson:"asset_id,omitempty" json:"assetId,omitempty"` // cloudinary export
	SharePassSet bool              `bson:"share_pass_set" json:"sharePassSet"`
	SharePassHash string           `bson:"share_pass_hash,omitempty" json:"-"`
	CreatedAt    time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updatedAt"`
}

// DocumentTemplate describes a template available for generation.
type DocumentTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Fields      []string `json:"fields"`
	Price       float64  `json:"price"`
}
