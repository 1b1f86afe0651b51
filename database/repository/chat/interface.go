package chatRepo

import "advoqat/models"

// ChatRepository archives assistant conversation transcripts.
type ChatRepository interface {
	Append(msg *models.ChatMessage) error
	History(userID string, limit int) ([]models.ChatMessage, error)
	ClearHistory(userID string) error
}
