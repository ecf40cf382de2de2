package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/eventhive/internal/helpers"
)

// UploadImage stores a generic image under the 5MB JPEG/PNG/WebP allowlist.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing file field.")
		return
	}

	path, err := helpers.UploadFile(c, fileHeader, "images")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully.",
		"path":    path,
	})
}

type DeleteUploadRequest struct {
	Path string `json:"path" binding:"required"`
}

func DeleteUpload(c *gin.Context) {
	var req DeleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if err := helpers.DeleteFile(req.Path); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully."})
}
