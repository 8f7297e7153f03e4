package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tawsila/internal/i18n"
	"tawsila/internal/middleware"
)

// NightPromo reports the cosmetic night-bonus banner. Public: the banner
// shows before login too.
func (h HandlerSet) NightPromo(c *gin.Context) {
	lang := middleware.Lang(c)

	key := "promo.night.off"
	if h.nightFlag.Active() {
		key = "promo.night.banner"
	}

	c.JSON(http.StatusOK, gin.H{
		"active": h.nightFlag.Active(),
		"banner": i18n.T(lang, key),
	})
}
