/*
Copyright © 2025 geeta-ai
*/
package cmd

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/geeta-ai/geeta-be/config"
	"github.com/geeta-ai/geeta-be/database"
	"github.com/geeta-ai/geeta-be/handler"
	"github.com/geeta-ai/geeta-be/middleware"
	"github.com/geeta-ai/geeta-be/repository"
	"github.com/geeta-ai/geeta-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the question answering server",
	Long:  `Starts a server that handles document uploads and AI question answering`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.Connect(cfg.MongoDBURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		mongoDb := mongoClient.Database(database.DatabaseName)

		//init repo
		userRepo := repository.NewUserRepo(mongoDb.Collection("users"))
		sessionRepo := repository.NewSessionRepo(mongoDb.Collection("sessions"))

		//init service
		completer, err := newCompleter(cfg)
		if err != nil {
			log.Fatalf("Failed to create AI service: %v", err)
		}
		engine := service.NewAnswerEngine(completer, cfg.QueryChunkSize)
		extractService := service.NewExtractService()
		fileService := service.NewFileService(extractService)
		sessionService := service.NewSessionService(sessionRepo, cfg.LargeFileThreshold)
		userService := service.NewUserService(userRepo)
		websocketService := service.NewWebSocketService(engine, sessionService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		loginHandler := handler.NewLoginHandler(userService)
		documentHandler := handler.NewDocumentHandler(fileService, sessionService, cfg.UploadDir)
		askHandler := handler.NewAskHandler(engine, sessionService, websocketService)
		historyHandler := handler.NewHistoryHandler(sessionService)

		// Setup Gin router
		router := gin.Default()

		// Apply global middleware
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		apiV1.POST("/register", loginHandler.HandleRegister)
		apiV1.POST("/login", loginHandler.HandleLogin)

		// Protected user routes
		userRoutes := apiV1.Group("/")
		userRoutes.Use(middleware.AuthMiddleware())
		{
			userRoutes.POST("/documents/upload", documentHandler.HandleUpload)
			userRoutes.POST("/documents/zip", documentHandler.HandleUploadZip)
			userRoutes.GET("/documents", documentHandler.HandleList)
			userRoutes.POST("/documents/toggle", documentHandler.HandleToggle)
			userRoutes.DELETE("/documents", documentHandler.HandleRemove)
			userRoutes.POST("/documents/enable-all", documentHandler.HandleEnableAll)
			userRoutes.POST("/documents/disable-all", documentHandler.HandleDisableAll)
			userRoutes.POST("/documents/clear", documentHandler.HandleClear)
			userRoutes.POST("/ask", askHandler.HandleAsk)
			userRoutes.GET("/ws", askHandler.HandleAskWebSocket)
			userRoutes.GET("/history", historyHandler.HandleGetHistory)
			userRoutes.DELETE("/history", historyHandler.HandleClearHistory)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

// newCompleter builds the AI client named by the ai_provider setting.
func newCompleter(cfg *config.Config) (service.Completer, error) {
	switch cfg.AIProvider {
	case "gemini":
		keys := strings.Split(cfg.GeminiAPIKeys, ",")
		return service.NewGeminiService(keys, cfg.Model)
	default:
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model), nil
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
