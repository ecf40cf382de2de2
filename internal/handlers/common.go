package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventhive/eventhive/internal/helpers"
)

// getDB pulls the gorm handle injected by DatabaseMiddleware. Responds 500
// and returns false when the middleware is missing.
func getDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return nil, false
	}
	return db.(*gorm.DB), true
}

// currentUser pulls the authenticated user's id and role set by
// JWTAuthMiddleware.
func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return uuid.Nil, "", false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID type.")
		return uuid.Nil, "", false
	}
	return userUUID, c.GetString("user_role"), true
}
