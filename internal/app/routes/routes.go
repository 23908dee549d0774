package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/controllers"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	collegeController *controllers.CollegeController,
	eventController *controllers.EventController,
	forumController *controllers.ForumController,
	resourceController *controllers.ResourceController,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
	authRateLimiter *middleware.RateLimiter,
) {
	api := router.Group("/api")

	// --- Public auth routes, rate limited per client IP ---
	auth := api.Group("/auth")
	auth.Use(authRateLimiter.Handler())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.PUT("/reset-password/:token", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		colleges := authenticated.Group("/colleges")
		{
			colleges.GET("/me", collegeController.GetMyProfile)
			colleges.PUT("/me", collegeController.UpdateMyProfile)
			colleges.GET("/:id", collegeController.GetCollegeByID)
			colleges.GET("", collegeController.GetAllColleges)
		}

		events := authenticated.Group("/events")
		{
			events.POST("", eventController.CreateEvent)
			events.GET("", eventController.GetEvents)
			events.GET("/:id", eventController.GetEventByID)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
		}

		forum := authenticated.Group("/forum")
		{
			forum.POST("", forumController.CreateForumPost)
			forum.GET("", forumController.GetForumPosts)
			forum.GET("/:id", forumController.GetForumPostByID)
			forum.PUT("/:id", forumController.UpdateForumPost)
			forum.DELETE("/:id", forumController.DeleteForumPost)
		}

		resources := authenticated.Group("/resources")
		{
			resources.POST("", resourceController.UploadResource)
			resources.GET("", resourceController.GetResources)
			resources.GET("/download/:id", resourceController.DownloadResourceFile)
			resources.GET("/:id", resourceController.GetResourceByID)
			resources.PUT("/:id", resourceController.UpdateResource)
			resources.DELETE("/:id", resourceController.DeleteResource)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
			notifications.PUT("/:id/read", notificationController.MarkNotificationAsRead)
			notifications.PUT("/mark-all-read", notificationController.MarkAllNotificationsAsRead)
		}
	}
}
