package handlers

import (
	"net/http"

	"advoqat/middleware"
	"advoqat/models"
	"advoqat/services/consultation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConsultationHandler exposes the signed-in user's consultations.
type ConsultationHandler struct {
	Svc    consultation.ConsultationService
	Logger *zap.Logger
}

func NewConsultationHandler(svc consultation.ConsultationService, logger *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{Svc: svc, Logger: logger}
}

// List returns the user's consultations.
func (h *ConsultationHandler) List(c *gin.Context) {
	consultations, err := h.Svc.ListByUser(c.Request.Context(), middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, consultations)
}

// Get returns a single consultation.
func (h *ConsultationHandler) Get(c *gin.Context) {
	cons, err := h.Svc.GetConsultation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cons)
}

// Update reschedules or cancels a consultation.
func (h *ConsultationHandler) Update(c *gin.Context) {
	var upd models.ConsultationUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	id := c.Param("id")
	var (
		cons *models.Consultation
		err  error
	)
	switch upd.Action {
	case "reschedule":
		cons, err = h.Svc.Reschedule(c.Request.Context(), id, upd)
	case "cancel":
		cons, err = h.Svc.Cancel(c.Request.Context(), id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be reschedule or cancel"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cons)
}
