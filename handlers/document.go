package handlers

import (
	"errors"
	"net/http"
	"time"

	"advoqat/middleware"
	"advoqat/services/document"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler exposes template-based document generation.
type DocumentHandler struct {
	Svc    document.DocumentService
	Logger *zap.Logger
}

func NewDocumentHandler(svc document.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{Svc: svc, Logger: logger}
}

func documentErrorStatus(err error) int {
	switch {
	case errors.Is(err, document.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, document.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, document.ErrDocumentLocked):
		return http.StatusPaymentRequired
	case errors.Is(err, document.ErrPasscodeMismatch), errors.Is(err, document.ErrNoPasscode):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ListTemplates returns the available document templates.
func (h *DocumentHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, h.Svc.ListTemplates())
}

// Generate renders a new (locked) document.
func (h *DocumentHandler) Generate(c *gin.Context) {
	var req document.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	req.UserID = middleware.AuthedUserID(c)

	doc, err := h.Svc.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, document.ErrUnknownTemplate) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// List returns the user's documents.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.Svc.ListByUser(middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Get returns one document, content included only once paid.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.Svc.Get(middleware.AuthedUserID(c), c.Param("id"))
	if err != nil {
		c.JSON(documentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SetSharePasscode protects a paid document for read-only sharing.
func (h *DocumentHandler) SetSharePasscode(c *gin.Context) {
	var input struct {
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.SetSharePasscode(middleware.AuthedUserID(c), c.Param("id"), input.Passcode); err != nil {
		c.JSON(documentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sharePassSet": true})
}

// OpenShared opens a shared document with its passcode. No authentication;
// the passcode is the credential.
func (h *DocumentHandler) OpenShared(c *gin.Context) {
	var input struct {
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	doc, err := h.Svc.OpenShared(c.Param("id"), input.Passcode)
	if err != nil {
		c.JSON(documentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Export uploads the document and returns a signed download URL.
func (h *DocumentHandler) Export(c *gin.Context) {
	result, err := h.Svc.Export(c.Request.Context(), middleware.AuthedUserID(c), c.Param("id"), 1*time.Hour)
	if err != nil {
		c.JSON(documentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete removes a document.
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(middleware.AuthedUserID(c), c.Param("id")); err != nil {
		c.JSON(documentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
