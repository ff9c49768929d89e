package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/craftroots/artisan-api/config"
	storyControllers "github.com/craftroots/artisan-api/controllers/story"
	"github.com/craftroots/artisan-api/logger"
	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
	"github.com/craftroots/artisan-api/routes"
	"github.com/craftroots/artisan-api/sms"
	"github.com/craftroots/artisan-api/translation"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log := logger.Init(logger.Options{})
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})
	log.Info().Str("env", cfg.Env).Msg("starting artisan marketplace API")

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Post{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	// Gin setup
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	middleware.RegisterValidators()

	// CORS settings; credentials must be allowed for session cookies
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", cfg.UploadDir)

	deps := routes.Deps{
		Config:     cfg,
		SMS:        sms.New(cfg.SMS),
		Translator: translation.NewClient(cfg.Translate),
		Story:      storyControllers.NewGateway(cfg.Story),
	}

	// Setup routes
	routes.SetupRoutes(r, db, deps)

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log := logger.Get()
		log.Fatal().Err(err).Msg("db connection failed")
	}
	return db
}
