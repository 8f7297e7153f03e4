package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tawsila/internal/i18n"
	"tawsila/internal/middleware"
	"tawsila/internal/models"
	"tawsila/internal/service"
)

type preferenceResponse struct {
	Language  string    `json:"language"`
	Direction string    `json:"direction"`
	Theme     string    `json:"theme"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPreferenceResponse(pref models.Preference) preferenceResponse {
	return preferenceResponse{
		Language:  pref.Language,
		Direction: string(i18n.Parse(pref.Language).Direction()),
		Theme:     string(pref.Theme),
		UpdatedAt: pref.UpdatedAt,
	}
}

func (h HandlerSet) GetPreferences(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pref, err := h.prefs.Get(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": toPreferenceResponse(pref)})
}

type updatePreferencesRequest struct {
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
}

func (h HandlerSet) UpdatePreferences(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := h.prefs.Update(c.Request.Context(), user.ID, service.PreferenceUpdate{
		Language: req.Language,
		Theme:    req.Theme,
	})
	if err != nil {
		if errors.Is(err, service.ErrLanguageInvalid) || errors.Is(err, service.ErrThemeInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": toPreferenceResponse(pref)})
}
