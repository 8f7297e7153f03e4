package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tawsila/internal/middleware"
	"tawsila/internal/service"
)

func (h HandlerSet) UploadAvatar(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing avatar file"})
		return
	}
	defer file.Close()

	updated, err := h.avatars.Upload(c.Request.Context(), user, file, header)
	if err != nil {
		if errors.Is(err, service.ErrAvatarTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(updated)})
}
