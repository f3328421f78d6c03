package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fitnexus_backend/internal/cache"
	"fitnexus_backend/internal/database"
	"fitnexus_backend/internal/email"
	"fitnexus_backend/internal/payments"
	"fitnexus_backend/internal/router"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "fitnexus_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "fitnexus_password")
	dbName := utils.Getenv("DB_NAME", "fitnexus_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	// Initialize Database
	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	utils.SetJWTSecret(jwtSecret)

	stripeSecretKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY environment variable is required")
	}

	deps := router.Dependencies{
		PaymentProvider: payments.NewStripeClient(stripeSecretKey),
		ReturnURL:       utils.Getenv("PAYMENT_RETURN_URL", "http://localhost:5173/dashboard/booked-trainer"),
	}

	// Featured-classes cache is optional; without REDIS_ADDR every read hits the database.
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		ttlMinutes, err := strconv.Atoi(utils.Getenv("FEATURED_CACHE_TTL_MINUTES", "10"))
		if err != nil || ttlMinutes <= 0 {
			ttlMinutes = 10
		}
		deps.FeaturedCache = cache.NewFeaturedClassCache(redisAddr, os.Getenv("REDIS_PASSWORD"), time.Duration(ttlMinutes)*time.Minute)
		utils.LogInfo("Featured-classes cache enabled", map[string]interface{}{"addr": redisAddr})
	}

	// Welcome mail is optional; without SMTP_HOST subscriptions still succeed.
	if smtpHost := os.Getenv("SMTP_HOST"); smtpHost != "" {
		smtpPort, err := strconv.Atoi(utils.Getenv("SMTP_PORT", "587"))
		if err != nil {
			smtpPort = 587
		}
		deps.Mailer = email.NewSMTPProvider(&email.SMTPConfig{
			Host:     smtpHost,
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     utils.Getenv("SMTP_FROM", "no-reply@fitnexus.app"),
			UseTLS:   utils.Getenv("SMTP_USE_TLS", "false") == "true",
		})
		utils.LogInfo("SMTP mailer enabled", map[string]interface{}{"host": smtpHost})
	}

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	// Setup all application routes
	router.Setup(engine, database.GetDB(), deps)

	// Server port configuration
	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
