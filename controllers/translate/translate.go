package translateControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/translation"
)

type translateRequest struct {
	Text           string   `json:"text"`
	Texts          []string `json:"texts"`
	TargetLanguage string   `json:"targetLanguage"`
}

// TranslateHandler serves POST /translate. Upstream failures degrade to the
// source text rather than erroring the request.
func TranslateHandler(client *translation.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req translateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}
		if req.TargetLanguage == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Target language is required"})
			return
		}
		if !translation.Supported(req.TargetLanguage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported target language"})
			return
		}

		if req.Text != "" {
			result, err := client.Translate(c.Request.Context(), req.Text, req.TargetLanguage)
			if err != nil && !errors.Is(err, translation.ErrUnsupportedLanguage) {
				log := logger.Get()
				log.Warn().Err(err).Msg("translate: upstream failed, returning source text")
			}
			c.JSON(http.StatusOK, gin.H{"translation": result})
			return
		}

		if len(req.Texts) > 0 {
			results, err := client.TranslateBatch(c.Request.Context(), req.Texts, req.TargetLanguage)
			if err != nil && !errors.Is(err, translation.ErrUnsupportedLanguage) {
				log := logger.Get()
				log.Warn().Err(err).Msg("translate: upstream batch failed, returning source texts")
			}
			c.JSON(http.StatusOK, gin.H{"translations": results})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "Either text or texts array is required"})
	}
}
