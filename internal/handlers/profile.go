package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tawsila/internal/i18n"
	"tawsila/internal/middleware"
	"tawsila/internal/models"
	"tawsila/internal/service"
)

type switchRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h HandlerSet) SwitchRole(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req switchRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.profiles.SwitchRole(c.Request.Context(), user.ID, role)
	if err != nil {
		if errors.Is(err, models.ErrRoleNotHeld) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "role_not_held",
				"message": i18n.T(middleware.Lang(c), "role.switch.denied"),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(updated)})
}

type enrollRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h HandlerSet) EnrollRole(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req enrollRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.profiles.EnrollRole(c.Request.Context(), user.ID, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(updated)})
}

type availabilityRequest struct {
	Availability string `json:"availability" binding:"required"`
}

func (h HandlerSet) SetAvailability(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := models.ParseAvailability(req.Availability)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.profiles.SetAvailability(c.Request.Context(), user.ID, status)
	if err != nil {
		if errors.Is(err, service.ErrNotWorkerRole) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "not_worker_role",
				"message": i18n.T(middleware.Lang(c), "availability.workers.only"),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(updated)})
}
