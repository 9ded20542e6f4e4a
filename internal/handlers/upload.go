package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"blinkeyit_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 5 << 20 // 5 Mo

// POST /api/file/upload (admin)
//
// Reçoit une image multipart et la pousse dans le bucket MinIO ; renvoie
// l'URL publique à stocker dans le produit ou la catégorie.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide an image file", "error": true, "success": false})
		return
	}

	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image exceeds 5MB limit", "error": true, "success": false})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed", "error": true, "success": false})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := services.UploadImage(ctx, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image", "error": true, "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"error":   false,
		"success": true,
		"data":    gin.H{"url": url},
	})
}
