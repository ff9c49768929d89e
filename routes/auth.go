package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints. All public.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterArtisan(db, deps.Config))
		authGroup.POST("/register/buyer", auth.RegisterBuyer(db, deps.Config))

		authGroup.POST("/login", auth.LoginArtisan(db, deps.Config))
		authGroup.POST("/login/buyer", auth.LoginBuyer(db, deps.Config))

		authGroup.GET("/check", auth.Check(db, deps.Config))
		authGroup.POST("/logout", auth.Logout(deps.Config))
	}
}
