package ai

import (
	"context"
	"fmt"
	"strings"

	"advoqat/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// practiceAreas maps recognizable keywords to the platform's specialty slugs.
var practiceAreas = map[string]string{
	"family":      "family",
	"divorce":     "family",
	"custody":     "family",
	"criminal":    "criminal",
	"arrest":      "criminal",
	"corporate":   "corporate",
	"business":    "corporate",
	"contract":    "corporate",
	"property":    "property",
	"landlord":    "property",
	"tenant":      "property",
	"eviction":    "property",
	"employment":  "employment",
	"workplace":   "employment",
	"fired":       "employment",
	"immigration": "immigration",
	"visa":        "immigration",
}

const chatPromptPrefix = "You are a legal information assistant for an online legal services platform. " +
	"Provide general legal information, never specific legal advice, and remind the user to consult " +
	"a qualified lawyer for their situation. Keep replies under 120 words.\n\nUser: "

// ProcessUserInput routes one turn of the conversation and archives both
// sides of the exchange.
func (s *LegalAssistant) ProcessUserInput(ctx context.Context, req models.AIRequest) (*models.AIResponse, error) {
	aiCtx, err := s.CtxStore.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	s.archive(req.UserID, "user", req.Text, "")

	var resp *models.AIResponse
	if aiCtx.BookingStep > 0 {
		resp, err = s.handleBookingFlow(ctx, req, aiCtx)
	} else {
		resp, err = s.handleNewTurn(ctx, req, aiCtx)
	}
	if err != nil {
		return nil, err
	}

	s.archive(req.UserID, "assistant", resp.ResponseText, resp.Intent)
	return resp, nil
}

func (s *LegalAssistant) handleNewTurn(ctx context.Context, req models.AIRequest, aiCtx *models.AIContext) (*models.AIResponse, error) {
	intent, specialty := getIntentAndSpecialty(req.Text)
	if specialty == "" {
		specialty = aiCtx.Specialty
	}

	aiCtx.Specialty = specialty
	aiCtx.BookingStep = 0
	aiCtx.LawyerID = ""
	if err := s.CtxStore.Set(ctx, req.UserID, aiCtx); err != nil {
		return nil, fmt.Errorf("save context: %w", err)
	}

	switch intent {
	case "recommend":
		return s.handleRecommend(ctx, specialty)
	case "book":
		aiCtx.BookingStep = 1
		if err := s.CtxStore.Set(ctx, req.UserID, aiCtx); err != nil {
			return nil, fmt.Errorf("save context: %w", err)
		}
		if specialty == "" {
			return &models.AIResponse{
				Intent:       "book",
				ResponseText: "What kind of legal matter do you need help with? For example family, criminal, corporate, property, employment, or immigration law.",
			}, nil
		}
		return s.listLawyersForBooking(ctx, req.UserID, aiCtx)
	default:
		return s.handleChat(ctx, req, specialty)
	}
}

// getIntentAndSpecialty extracts a coarse intent and practice area via
// keyword matching. Gemini handles the nuance inside "chat".
func getIntentAndSpecialty(text string) (string, string) {
	lowerText := strings.ToLower(text)

	var intent string
	switch {
	case strings.Contains(lowerText, "book") || strings.Contains(lowerText, "consult") || strings.Contains(lowerText, "appointment"):
		intent = "book"
	case strings.Contains(lowerText, "recommend") || strings.Contains(lowerText, "suggest") || strings.Contains(lowerText, "find a lawyer"):
		intent = "recommend"
	default:
		intent = "chat"
	}

	for keyword, specialty := range practiceAreas {
		if strings.Contains(lowerText, keyword) {
			return intent, specialty
		}
	}
	return intent, ""
}

func (s *LegalAssistant) handleChat(ctx context.Context, req models.AIRequest, specialty string) (*models.AIResponse, error) {
	reply, err := s.Gemini.GenerateContent(ctx, chatPromptPrefix+req.Text)
	if err != nil {
		s.Logger.Warn("gemini unavailable, using fallback reply", zap.Error(err))
		reply = "I couldn't process that right now. You can ask me about a legal topic, or say \"book a consultation\" to talk to a lawyer."
	}
	return &models.AIResponse{
		Intent:       "chat",
		Specialty:    specialty,
		ResponseText: reply,
	}, nil
}

func (s *LegalAssistant) handleRecommend(ctx context.Context, specialty string) (*models.AIResponse, error) {
	lawyers, err := s.Lawyers.Search(ctx, models.LawyerSearchQuery{Specialty: specialty})
	if err != nil {
		return nil, fmt.Errorf("search lawyers: %w", err)
	}

	var actions []models.AIAction
	for _, l := range lawyers {
		actions = append(actions, models.AIAction{
			Label:       l.Name,
			Type:        "select_lawyer",
			Specialty:   l.Specialty,
			LawyerID:    l.ID,
			Description: fmt.Sprintf("%s, rated %.1f", l.Specialty, l.Rating),
		})
		if len(actions) >= 3 {
			break
		}
	}

	respText := "Here are some lawyers that match what you're looking for."
	if len(actions) == 0 {
		respText = "I couldn't find matching lawyers right now. Try another practice area."
	}
	return &models.AIResponse{
		Intent:       "recommend",
		Specialty:    specialty,
		ResponseText: respText,
		Actions:      actions,
	}, nil
}

// handleBookingFlow walks the two-step hand-off: pick a lawyer, then jump
// into the booking journey with that lawyer preselected.
func (s *LegalAssistant) handleBookingFlow(ctx context.Context, req models.AIRequest, aiCtx *models.AIContext) (*models.AIResponse, error) {
	switch aiCtx.BookingStep {
	case 1:
		_, specialty := getIntentAndSpecialty(req.Text)
		if specialty != "" {
			aiCtx.Specialty = specialty
		}
		if aiCtx.Specialty == "" {
			return &models.AIResponse{
				Intent:       "book",
				ResponseText: "I didn't catch the practice area. Try family, criminal, corporate, property, employment, or immigration.",
			}, nil
		}
		resp, err := s.listLawyersForBooking(ctx, req.UserID, aiCtx)
		if err != nil {
			return nil, err
		}
		return resp, nil

	case 2:
		lawyerID := strings.TrimSpace(req.Text)
		l, err := s.Lawyers.GetByID(ctx, lawyerID)
		if err != nil {
			return &models.AIResponse{
				Intent:       "book",
				Specialty:    aiCtx.Specialty,
				ResponseText: "I couldn't find that lawyer. Pick one of the suggestions above.",
			}, nil
		}

		if err := s.CtxStore.Clear(ctx, req.UserID); err != nil {
			s.Logger.Warn("failed to clear assistant context", zap.String("userId", req.UserID), zap.Error(err))
		}
		return &models.AIResponse{
			Intent:       "book",
			Specialty:    aiCtx.Specialty,
			ResponseText: fmt.Sprintf("Great choice. Let's book a consultation with %s.", l.Name),
			Actions: []models.AIAction{
				{Label: "Start booking", Type: "book", LawyerID: l.ID, Specialty: l.Specialty},
			},
		}, nil

	default:
		// Unknown step, reset.
		if err := s.CtxStore.Clear(ctx, req.UserID); err != nil {
			s.Logger.Warn("failed to clear assistant context", zap.String("userId", req.UserID), zap.Error(err))
		}
		return s.handleChat(ctx, req, aiCtx.Specialty)
	}
}

func (s *LegalAssistant) listLawyersForBooking(ctx context.Context, userID string, aiCtx *models.AIContext) (*models.AIResponse, error) {
	resp, err := s.handleRecommend(ctx, aiCtx.Specialty)
	if err != nil {
		return nil, err
	}
	resp.Intent = "book"
	if len(resp.Actions) > 0 {
		resp.ResponseText = "Here are available lawyers. Which one would you like to consult?"
		aiCtx.BookingStep = 2
	} else {
		aiCtx.BookingStep = 1
	}
	if err := s.CtxStore.Set(ctx, userID, aiCtx); err != nil {
		return nil, fmt.Errorf("save context: %w", err)
	}
	return resp, nil
}

// History returns the newest archived turns for the user.
func (s *LegalAssistant) History(userID string, limit int) ([]models.ChatMessage, error) {
	return s.Chats.History(userID, limit)
}

// ClearHistory wipes the user's archived transcript.
func (s *LegalAssistant) ClearHistory(userID string) error {
	return s.Chats.ClearHistory(userID)
}

func (s *LegalAssistant) archive(userID, role, text, intent string) {
	msg := &models.ChatMessage{
		ID:     uuid.New().String(),
		UserID: userID,
		Role:   role,
		Text:   text,
		Intent: intent,
	}
	if err := s.Chats.Append(msg); err != nil {
		s.Logger.Warn("failed to archive chat message", zap.String("userId", userID), zap.Error(err))
	}
}
