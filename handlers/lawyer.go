package handlers

import (
	"net/http"

	"advoqat/models"
	"advoqat/services/lawyer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LawyerHandler exposes the lawyer directory.
type LawyerHandler struct {
	Svc    lawyer.LawyerService
	Logger *zap.Logger
}

func NewLawyerHandler(svc lawyer.LawyerService, logger *zap.Logger) *LawyerHandler {
	return &LawyerHandler{Svc: svc, Logger: logger}
}

// Search lists lawyers matching the query parameters.
func (h *LawyerHandler) Search(c *gin.Context) {
	var query models.LawyerSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	lawyers, err := h.Svc.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lawyers)
}

// Get returns one lawyer's profile.
func (h *LawyerHandler) Get(c *gin.Context) {
	l, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, l)
}
