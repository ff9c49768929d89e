package uploadControllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftroots/artisan-api/config"
)

const maxImageSize = 10 << 20 // 10MB

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("file size too large, maximum 10MB allowed")
)

// SaveImage validates and stores an uploaded image under dir with a random
// filename, returning the public /uploads URL.
func SaveImage(c *gin.Context, file *multipart.FileHeader, dir string) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}
	if file.Size > maxImageSize {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.NewString() + ext

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return "/uploads/" + filename, nil
}

// UploadImageHandler accepts a multipart image and returns its public URL.
func UploadImageHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}

		url, err := SaveImage(c, file, cfg.UploadDir)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotImage), errors.Is(err, ErrTooLarge):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"url":      url,
			"filename": filepath.Base(url),
			"size":     file.Size,
			"type":     file.Header.Get("Content-Type"),
		})
	}
}
