package ai

import (
	"context"

	chatRepo "advoqat/database/repository/chat"
	"advoqat/models"
	"advoqat/services/lawyer"

	"go.uber.org/zap"
)

// ContextStore persists short-lived conversation state between turns.
type ContextStore interface {
	Get(ctx context.Context, userID string) (*models.AIContext, error)
	Set(ctx context.Context, userID string, aiCtx *models.AIContext) error
	Clear(ctx context.Context, userID string) error
}

// AIService is the conversational legal assistant.
type AIService interface {
	ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error)
	History(userID string, limit int) ([]models.ChatMessage, error)
	ClearHistory(userID string) error
}

// LegalAssistant is the production AIService. It routes between free-form
// chat (Gemini), practice-area recommendations, and a guided hand-off into
// the consultation booking flow.
type LegalAssistant struct {
	CtxStore ContextStore
	Gemini   ContentGenerator
	Lawyers  lawyer.LawyerService
	Chats    chatRepo.ChatRepository
	Logger   *zap.Logger
}

func NewLegalAssistant(ctxStore ContextStore, gemini ContentGenerator, lawyers lawyer.LawyerService, chats chatRepo.ChatRepository, logger *zap.Logger) *LegalAssistant {
	return &LegalAssistant{
		CtxStore: ctxStore,
		Gemini:   gemini,
		Lawyers:  lawyers,
		Chats:    chats,
		Logger:   logger,
	}
}
