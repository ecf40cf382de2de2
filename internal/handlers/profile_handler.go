package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive/internal/helpers"
	"github.com/eventhive/eventhive/internal/models"
)

func GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Preload("Role").Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile accepts JSON for plain field edits or multipart when the
// avatar changes.
func UpdateProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}
	gormDB, ok := getDB(c)
	if !ok {
		return
	}

	var user models.User
	if err := gormDB.Where("id = ?", userID).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "User not found.")
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if name := c.PostForm("name"); name != "" {
			user.Name = name
		}
		if phone := c.PostForm("phone_number"); phone != "" {
			user.PhoneNumber = phone
		}

		avatarFile, err := c.FormFile("avatar")
		if err == nil {
			avatarPath, err := helpers.UploadFile(c, avatarFile, "avatars")
			if err != nil {
				helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
				return
			}
			if user.AvatarPath != "" {
				if err := helpers.DeleteFile(user.AvatarPath); err != nil {
					fmt.Printf("Error deleting old avatar: %v\n", err)
				}
			}
			user.AvatarPath = avatarPath
		}
	} else {
		var req struct {
			Name        string `json:"name"`
			PhoneNumber string `json:"phone_number"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
			return
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.PhoneNumber != "" {
			user.PhoneNumber = req.PhoneNumber
		}
	}

	if err := gormDB.Save(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    user,
	})
}
