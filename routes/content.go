package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	postControllers "github.com/craftroots/artisan-api/controllers/post"
	schemeControllers "github.com/craftroots/artisan-api/controllers/scheme"
	storyControllers "github.com/craftroots/artisan-api/controllers/story"
	translateControllers "github.com/craftroots/artisan-api/controllers/translate"
	uploadControllers "github.com/craftroots/artisan-api/controllers/upload"
	"github.com/craftroots/artisan-api/middleware"
)

// SetupContentRoutes registers posts, story generation, uploads, translation
// and the schemes directory.
func SetupContentRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	artisan := middleware.RequireArtisan(deps.Config.SessionSecret)

	posts := r.Group("/posts", artisan)
	{
		posts.POST("", postControllers.CreatePost(db))
		posts.GET("", postControllers.GetPosts(db))
	}

	story := r.Group("/story")
	{
		story.POST("", artisan, storyControllers.GenerateStoryHandler(deps.Story))
		story.GET("/health", storyControllers.StoryHealthHandler(deps.Story))
	}

	r.POST("/uploads", artisan, uploadControllers.UploadImageHandler(deps.Config))

	r.POST("/translate", translateControllers.TranslateHandler(deps.Translator))

	r.GET("/schemes", schemeControllers.GetSchemes())
}
