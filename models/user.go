package models

import "time"

// UserProfile mirrors the profile record held by the core platform API.
type UserProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"` // client|lawyer
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Device is a push-capable device registered by a signed-in user.
type Device struct {
	UserID    string    `bson:"user_id" json:"userId"`
	DeviceID  string    `bson:"device_id" json:"deviceId"`
	FCMToken  string    `bson:"fcm_token" json:"fcmToken"`
	Platform  string    `bson:"platform,omitempty" json:"platform,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
