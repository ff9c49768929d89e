package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/config"
	storyControllers "github.com/craftroots/artisan-api/controllers/story"
	"github.com/craftroots/artisan-api/sms"
	"github.com/craftroots/artisan-api/translation"
)

// Deps carries the shared service instances handed to route groups.
type Deps struct {
	Config     *config.Config
	SMS        sms.Sender
	Translator *translation.Client
	Story      *storyControllers.Gateway
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	SetupAuthRoutes(r, db, deps)
	SetupProductRoutes(r, db, deps)
	SetupOrderRoutes(r, db, deps)
	SetupInsightRoutes(r, db, deps)
	SetupContentRoutes(r, db, deps)
}
