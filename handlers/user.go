package handlers

import (
	"net/http"

	"advoqat/middleware"
	"advoqat/models"
	"advoqat/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile access and device registration.
type UserHandler struct {
	Svc    user.UserService
	Logger *zap.Logger
}

func NewUserHandler(svc user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// GetProfile returns the signed-in user's profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.Svc.GetProfile(c.Request.Context(), middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile patches the editable profile fields.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var upd user.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	profile, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.AuthedUserID(c), upd)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// RegisterDevice stores or refreshes a push-capable device.
func (h *UserHandler) RegisterDevice(c *gin.Context) {
	var dev models.Device
	if err := c.ShouldBindJSON(&dev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	dev.UserID = middleware.AuthedUserID(c)

	if err := h.Svc.RegisterDevice(dev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true})
}

// UnregisterDevice removes a device.
func (h *UserHandler) UnregisterDevice(c *gin.Context) {
	if err := h.Svc.UnregisterDevice(middleware.AuthedUserID(c), c.Param("deviceId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// GetDevices lists registered devices.
func (h *UserHandler) GetDevices(c *gin.Context) {
	devices, err := h.Svc.GetDevices(middleware.AuthedUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, devices)
}
