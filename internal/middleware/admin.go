package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomoweb/internal/constants"
	"pomoweb/internal/database"
	apierrors "pomoweb/internal/errors"
	"pomoweb/internal/models"
	"pomoweb/internal/utils"
)

// RequireAdmin loads the session user and rejects non-admins. Browser
// requests are sent back to the regular task landing page; API clients get
// a structured 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			if utils.WantsJSON(c) {
				apierrors.Forbidden(c, "Administrator access required")
			} else {
				c.Redirect(http.StatusSeeOther, constants.UserLandingPath)
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
