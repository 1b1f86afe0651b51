package models

import "time"

// Lawyer represents a freelance lawyer profile as served by the core platform API.
type Lawyer struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Specialty      string    `bson:"specialty" json:"specialty"`
	Bio            string    `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL       string    `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	Rating         float64   `bson:"rating" json:"rating"`
	ReviewCount    int       `bson:"review_count" json:"reviewCount"`
	YearsOfExpr    int       `bson:"years_of_experience" json:"yearsOfExperience"`
	Verified       bool      `bson:"verified" json:"verified"`
	Available      bool      `bson:"available" json:"available"`
	ConsultMethods []string  `bson:"consult_methods,omitempty" json:"consultMethods,omitempty"`
	CreatedAt      time.Time `bson:"created_at,omitempty" json:"createdAt,omitempty"`
}

// LawyerRef is the snapshot of a lawyer cached inside a booking journey.
// It is not owned; display fields may go stale and are refreshed on booking.
type LawyerRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// LawyerSearchQuery carries the discovery filters supported by the directory.
type LawyerSearchQuery struct {
	Specialty string  `form:"specialty" json:"specialty,omitempty"`
	MinRating float64 `form:"minRating" json:"minRating,omitempty"`
	Query     string  `form:"q" json:"q,omitempty"`
}
