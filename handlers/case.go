package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"advoqat/middleware"
	"advoqat/models"
	"advoqat/services/legalcase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxEvidenceSize = 10 * 1024 * 1024 // 10MB

// CaseHandler exposes case submission and tracking.
type CaseHandler struct {
	Svc    legalcase.CaseService
	Logger *zap.Logger
}

func NewCaseHandler(svc legalcase.CaseService, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{Svc: svc, Logger: logger}
}

// Submit files a new case.
func (h *CaseHandler) Submit(c *gin.Context) {
	var sub models.CaseSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.Submit(c.Request.Context(), middleware.AuthedUserID(c), sub)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the user's cases.
func (h *CaseHandler) List(c *gin.Context) {
	cases, err := h.Svc.ListByClient(c.Request.Context(), middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cases)
}

// Get returns one case.
func (h *CaseHandler) Get(c *gin.Context) {
	lc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lc)
}

// UploadEvidence accepts a multipart evidence file, encrypts and stores it,
// and returns the asset ID to attach to a submission.
func (h *CaseHandler) UploadEvidence(c *gin.Context) {
	file, err := c.FormFile("evidence")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "evidence file is required", "details": err.Error()})
		return
	}
	if file.Size > maxEvidenceSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("evidence file exceeds %d bytes", maxEvidenceSize)})
		return
	}

	tempPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload", "details": err.Error()})
		return
	}
	defer os.Remove(tempPath)

	assetID, err := h.Svc.UploadEvidence(c.Request.Context(), middleware.AuthedUserID(c), tempPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"assetId": assetID})
}
