package router

import (
	"database/sql"

	"fitnexus_backend/internal/email"
	"fitnexus_backend/internal/handlers"
	"fitnexus_backend/internal/middleware"
	"fitnexus_backend/internal/payments"
	"fitnexus_backend/internal/repositories"
	"fitnexus_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Dependencies carries the external adapters wired at startup.
type Dependencies struct {
	PaymentProvider payments.Provider
	FeaturedCache   services.FeaturedCache // may be nil
	Mailer          email.Provider         // may be nil
	ReturnURL       string
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, deps Dependencies) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	trainerRepo := repositories.NewTrainerRepository(db)
	classRepo := repositories.NewClassRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	forumRepo := repositories.NewForumRepository(db)
	newsletterRepo := repositories.NewNewsletterRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// Initialize Services
	userService := services.NewUserService(userRepo, db)
	trainerService := services.NewTrainerService(trainerRepo, userRepo, db)
	classService := services.NewClassService(classRepo, db)
	bookingService := services.NewBookingService(bookingRepo, deps.PaymentProvider, deps.FeaturedCache, deps.ReturnURL, db)
	reviewService := services.NewReviewService(reviewRepo, db)
	forumService := services.NewForumService(forumRepo, db)
	newsletterService := services.NewNewsletterService(newsletterRepo, deps.Mailer, db)
	statsService := services.NewStatsService(statsRepo, userRepo, newsletterRepo)

	// Initialize Handlers
	userHandler := handlers.NewUserHandler(userService)
	trainerHandler := handlers.NewTrainerHandler(trainerService, userService)
	classHandler := handlers.NewClassHandler(classService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	communityHandler := handlers.NewCommunityHandler(reviewService, forumService, newsletterService)
	statsHandler := handlers.NewStatsHandler(statsService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicRoutes(apiV1, userHandler, trainerHandler, classHandler, bookingHandler, communityHandler, statsHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupMemberRoutes(authenticated, userHandler, trainerHandler, bookingHandler, communityHandler)

		adminOnly := authenticated.Group("")
		adminOnly.Use(middleware.AdminMiddleware(userRepo))
		{
			SetupAdminRoutes(adminOnly, trainerHandler, classHandler, communityHandler, statsHandler)
		}
	}
}
