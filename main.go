package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/taskdeck-simple/api/v1"
	"github.com/taskdeck-simple/config"
	"github.com/taskdeck-simple/database"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Connect to the database and migrate the schema
	database.Initialize()

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Register API routes
	v1.RegisterRoutes(router.Group("/api/v1"))

	// Start server
	port := config.Port()
	log.Printf("🚀 TaskDeck API starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
