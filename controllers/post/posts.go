package postControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Caption     string   `json:"caption" binding:"required"`
	Hashtags    []string `json:"hashtags"`
	ImageURL    string   `json:"imageUrl"`
}

type postResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	ImageURL    string   `json:"image_url,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// Hashtags live in the DB as a JSON string and round-trip to a list at the
// API edge.
func encodeHashtags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func decodeHashtags(encoded string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}

func toResponse(post models.Post) postResponse {
	return postResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Caption:     post.Caption,
		Hashtags:    decodeHashtags(post.Hashtags),
		ImageURL:    post.ImageURL,
		CreatedAt:   post.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreatePost saves a marketing post for the session artisan.
func CreatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.UserIDKey)

		var req CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		post := models.Post{
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			Caption:     req.Caption,
			Hashtags:    encodeHashtags(req.Hashtags),
			ImageURL:    req.ImageURL,
		}
		if err := db.Create(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": toResponse(post)})
	}
}

// GetPosts lists the session artisan's posts, newest first.
func GetPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.UserIDKey)

		var posts []models.Post
		if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}

		responses := make([]postResponse, 0, len(posts))
		for _, post := range posts {
			responses = append(responses, toResponse(post))
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": responses})
	}
}
