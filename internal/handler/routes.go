package handler

import (
	"feedapp/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every API route onto the router. The server binary
// and the handler tests share this table.
func RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", RegisterUser)
			authRoutes.POST("/login", LoginUser)
		}

		// Profile routes (protected)
		profileRoutes := apiV1.Group("/profile")
		profileRoutes.Use(auth.AuthMiddleware())
		{
			profileRoutes.GET("/me", GetMyProfile)
			profileRoutes.PUT("/me", UpdateMyProfile)
		}

		// Friendship routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", GetFriendsOverview)
			friendRoutes.POST("/requests", SendFriendRequests)
			friendRoutes.POST("/accept", AcceptFriendRequests)
		}

		// Post routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", CreatePost)
			postRoutes.GET("/:id/comments", GetPostComments)
			postRoutes.POST("/:id/comments", AddComment)
			postRoutes.POST("/:id/like", LikePost)
		}

		// Feed routes (protected)
		feedRoutes := apiV1.Group("/feed")
		feedRoutes.Use(auth.AuthMiddleware())
		{
			feedRoutes.GET("/me", GetMyFeed)
			feedRoutes.GET("/friends", GetFriendsFeed)
			feedRoutes.POST("/friends", LikeFromFriendsFeed)
			feedRoutes.GET("/events", StreamFeedEvents)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.GET("/users", ListUsers)
		}
	}
}
