package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/vitrinacl/storefront-api/internal/router"
	"github.com/vitrinacl/storefront-api/pkg/ai"
	"github.com/vitrinacl/storefront-api/pkg/global"
	"github.com/vitrinacl/storefront-api/pkg/logger"
	"github.com/vitrinacl/storefront-api/pkg/mongo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logger.Init()
	defer logger.Sync()

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	mongo.SeedDefaultFAQs()

	ai.InitializeAIService()

	router.InitEngine()
	router.InitPaymentGateway()
	router.InitializeRoutes()

	port := global.GetEnvOrDefault("PORT", "8001")
	logger.L.Infof("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
