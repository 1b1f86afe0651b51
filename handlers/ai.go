package handlers

import (
	"net/http"
	"strconv"

	"advoqat/middleware"
	"advoqat/models"
	ai "advoqat/services/intelligence"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler exposes the legal assistant chat.
type AIHandler struct {
	Svc    ai.AIService
	Logger *zap.Logger
}

func NewAIHandler(svc ai.AIService, logger *zap.Logger) *AIHandler {
	return &AIHandler{Svc: svc, Logger: logger}
}

// Chat processes one turn of the assistant conversation.
func (h *AIHandler) Chat(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.UserID = middleware.AuthedUserID(c)
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	resp, err := h.Svc.ProcessUserInput(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns the newest archived turns.
func (h *AIHandler) History(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	msgs, err := h.Svc.History(middleware.AuthedUserID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// ClearHistory wipes the user's transcript.
func (h *AIHandler) ClearHistory(c *gin.Context) {
	if err := h.Svc.ClearHistory(middleware.AuthedUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
