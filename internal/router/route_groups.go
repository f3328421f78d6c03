package router

import (
	"net/http"

	"fitnexus_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes registers the routes that need no token.
func SetupPublicRoutes(
	apiGroup *gin.RouterGroup,
	userHandler *handlers.UserHandler,
	trainerHandler *handlers.TrainerHandler,
	classHandler *handlers.ClassHandler,
	bookingHandler *handlers.BookingHandler,
	communityHandler *handlers.CommunityHandler,
	statsHandler *handlers.StatsHandler,
) {
	apiGroup.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup.POST("/users", userHandler.CreateUser)
	apiGroup.GET("/role/:email", userHandler.GetRole)
	apiGroup.GET("/user/:email", userHandler.GetUser)

	apiGroup.GET("/trainers", trainerHandler.GetTrainers)
	apiGroup.GET("/trainers/:id", trainerHandler.GetTrainerByID)
	apiGroup.GET("/trainers-by-class/:category", trainerHandler.GetTrainersByClass)
	apiGroup.POST("/applied-trainers", trainerHandler.SubmitApplication)
	apiGroup.GET("/applied-trainers", trainerHandler.GetAppliedTrainers)

	apiGroup.GET("/classes", classHandler.GetClasses)
	apiGroup.GET("/packages", classHandler.GetPackages)

	apiGroup.POST("/create-payment-intent", bookingHandler.CreatePaymentIntent)
	apiGroup.GET("/most-booked-classes", bookingHandler.GetMostBookedClasses)

	apiGroup.POST("/reviews", communityHandler.CreateReview)
	apiGroup.GET("/reviews", communityHandler.GetReviews)
	apiGroup.POST("/forum", communityHandler.CreateForumPost)
	apiGroup.GET("/forums", communityHandler.GetForumPosts)
	apiGroup.GET("/recent-forums", communityHandler.GetRecentForumPosts)

	apiGroup.GET("/revenue-history", statsHandler.GetRevenueHistory)
}

// SetupMemberRoutes registers the routes for any authenticated caller.
func SetupMemberRoutes(
	authenticatedGroup *gin.RouterGroup,
	userHandler *handlers.UserHandler,
	trainerHandler *handlers.TrainerHandler,
	bookingHandler *handlers.BookingHandler,
	communityHandler *handlers.CommunityHandler,
) {
	authenticatedGroup.GET("/profile/:email", userHandler.GetProfile)
	authenticatedGroup.PATCH("/profile/:email", userHandler.UpdateProfile)

	authenticatedGroup.GET("/bookings", bookingHandler.GetBookings)

	authenticatedGroup.GET("/my-slots", trainerHandler.GetMySlots)
	authenticatedGroup.DELETE("/my-slots/:id", trainerHandler.DeleteSlot)
	authenticatedGroup.GET("/activity-log/:email", trainerHandler.GetActivityLog)
	authenticatedGroup.DELETE("/applied-trainers/:id", trainerHandler.DeleteApplication)

	authenticatedGroup.POST("/subscribe", communityHandler.Subscribe)
}

// SetupAdminRoutes registers the admin-only routes.
func SetupAdminRoutes(
	adminGroup *gin.RouterGroup,
	trainerHandler *handlers.TrainerHandler,
	classHandler *handlers.ClassHandler,
	communityHandler *handlers.CommunityHandler,
	statsHandler *handlers.StatsHandler,
) {
	adminGroup.PATCH("/applied-trainers/approve/:id", trainerHandler.ApproveApplication)
	adminGroup.PATCH("/applied-trainers/reject/:id", trainerHandler.RejectApplication)
	adminGroup.PATCH("/applied-trainers/remove/:id", trainerHandler.RemoveTrainer)

	adminGroup.POST("/classes", classHandler.CreateClass)

	adminGroup.GET("/subscribers", communityHandler.GetSubscribers)

	adminGroup.GET("/admin-stats", statsHandler.GetAdminStats)
	adminGroup.GET("/chart-stats", statsHandler.GetChartStats)
}
