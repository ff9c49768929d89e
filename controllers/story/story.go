// Package storyControllers fronts the external AI story-generation backend.
// When the backend is unreachable the gateway degrades to a deterministic
// template so the artisan always gets usable marketing copy.
package storyControllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/craftroots/artisan-api/config"
	"github.com/craftroots/artisan-api/logger"
)

// StoryContent is the generated marketing copy for one product.
type StoryContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
}

var fallbackHashtags = []string{"Handmade", "Artisan", "LocalCraft", "Sustainable", "Traditional", "Unique"}

type Gateway struct {
	backendURL string
	health     *http.Client
	forward    *http.Client
}

func NewGateway(cfg config.StoryConfig) *Gateway {
	return &Gateway{
		backendURL: strings.TrimRight(cfg.BackendURL, "/"),
		health:     &http.Client{Timeout: 2 * time.Second},
		forward:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Healthy probes the backend's health endpoint with a short timeout.
func (g *Gateway) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.backendURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := g.health.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Generate forwards the uploaded media to the backend and maps its response.
// A single timeout-bounded attempt, no retries.
func (g *Gateway) Generate(ctx context.Context, image *multipart.FileHeader, audio *multipart.FileHeader, note string) (*StoryContent, error) {
	body := &strings.Builder{}
	writer := multipart.NewWriter(body)

	if err := copyFilePart(writer, "image", image); err != nil {
		return nil, err
	}
	if audio != nil {
		if err := copyFilePart(writer, "audio", audio); err != nil {
			return nil, err
		}
	}
	if note != "" {
		if err := writer.WriteField("note", note); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.backendURL+"/generate-story", strings.NewReader(body.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.forward.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("story backend: status %d: %s", resp.StatusCode, detail)
	}

	var backend struct {
		Success bool          `json:"success"`
		Data    *StoryContent `json:"data"`
		Error   string        `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&backend); err != nil {
		return nil, err
	}
	if !backend.Success || backend.Data == nil {
		return nil, fmt.Errorf("story backend: %s", backend.Error)
	}
	return backend.Data, nil
}

func copyFilePart(writer *multipart.Writer, field string, header *multipart.FileHeader) error {
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, header.Filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}

// FallbackStory composes deterministic template copy from the image filename
// and the artisan's note.
func FallbackStory(imageFilename, note string) StoryContent {
	title := titleFromFilename(imageFilename)

	description := "This beautiful handcrafted product represents the rich tradition and skill of local artisans. " +
		"Each piece is carefully crafted with attention to detail, bringing together traditional techniques with modern aesthetics. " +
		"Perfect for those who appreciate authentic craftsmanship and unique designs."
	caption := "Discover the beauty of handcrafted artistry. Each piece tells a unique story of tradition, skill, and passion."
	if note != "" {
		description = note
		caption = fmt.Sprintf("%q - A beautiful handcrafted piece that tells a story of tradition and skill. Perfect for your home or as a special gift.", note)
	}

	return StoryContent{
		Title:       title,
		Description: description,
		Caption:     caption,
		Hashtags:    fallbackHashtags,
	}
}

func titleFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Handcrafted Product Story"
	}

	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return "Handcrafted " + strings.Join(words, " ")
}

// GenerateStoryHandler serves POST /story: multipart image (required) plus
// optional audio and note.
func GenerateStoryHandler(gateway *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		audio, _ := c.FormFile("audio")
		note := c.PostForm("note")

		if gateway.Healthy(c.Request.Context()) {
			story, err := gateway.Generate(c.Request.Context(), image, audio, note)
			if err == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "data": story})
				return
			}
			log := logger.Get()
			log.Warn().Err(err).Msg("story: backend call failed, using template mode")
		} else {
			log := logger.Get()
			log.Info().Msg("story: backend not available, using template mode")
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": FallbackStory(image.Filename, note)})
	}
}

// StoryHealthHandler reports backend reachability.
func StoryHealthHandler(gateway *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "unhealthy"
		if gateway.Healthy(c.Request.Context()) {
			status = "healthy"
		}
		c.JSON(http.StatusOK, gin.H{
			"service_status": status,
			"backend_url":    gateway.backendURL,
		})
	}
}
