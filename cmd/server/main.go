package main

import (
	"log"
	"net/http"
	"os"

	"feedapp/backend/internal/config"
	"feedapp/backend/internal/database"
	"feedapp/backend/internal/handler"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Feedapp API
// @version         1.0
// @description     This is the API for the Feedapp social-feed service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Landing page
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "feedapp",
			"version": "1.0",
		})
	})

	// Uploaded post images
	router.Static("/uploads", config.AppConfig.UploadDir)

	// API v1 routes
	handler.RegisterRoutes(router)

	log.Println("Server is running on :8080")
	log.Fatal(router.Run(":8080"))
}
