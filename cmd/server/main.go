package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"alibi-backend/internal/checkout"
	"alibi-backend/internal/config"
	"alibi-backend/internal/database"
	"alibi-backend/internal/handlers"
	"alibi-backend/internal/middleware"
	"alibi-backend/internal/services"
	"alibi-backend/internal/storage"
	"alibi-backend/internal/ws"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbClient, err := database.NewClient(dbURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(dbURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	storageClient, err := storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	checkoutClient := checkout.NewClient(cfg.CheckoutAPIBaseURL, cfg.CheckoutAPIKey)

	hub := ws.NewHub()
	go hub.Run()

	billingService := services.NewBillingService(checkoutClient, dbClient, hub)

	authHandler := handlers.NewAuthHandler(cfg, dbClient)
	requestsHandler := handlers.NewRequestsHandler(dbClient)
	adminRequestsHandler := handlers.NewAdminRequestsHandler(dbClient, hub)
	adminUsersHandler := handlers.NewAdminUsersHandler(dbClient)
	galleryHandler := handlers.NewGalleryHandler(dbClient, storageClient)
	paymentsHandler := handlers.NewPaymentsHandler(checkoutClient, dbClient, billingService)
	webhookHandler := handlers.NewWebhookHandler(cfg, billingService)
	chatHandler := handlers.NewChatHandler(dbClient, hub)
	wsHandler := handlers.NewWebSocketHandler(cfg, dbClient, hub)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Page guard runs before any page rendering; API routes pass through
	// and authenticate themselves.
	router.Use(middleware.PageGuard(cfg))

	router.GET("/health", handlers.HealthHandler)
	router.GET("/ws", wsHandler.Serve)

	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/otp/verify", authHandler.VerifyOTP)
	auth.POST("/logout", authHandler.Logout)

	// Storefront browsing is public.
	api.GET("/gallery", galleryHandler.ListPhotos)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))

	authed.GET("/auth/me", authHandler.Me)

	authed.POST("/requests", requestsHandler.CreateRequest)
	authed.GET("/requests", requestsHandler.ListRequests)
	authed.GET("/requests/:request_id", requestsHandler.GetRequest)

	authed.GET("/chat", chatHandler.GetChat)
	authed.POST("/chat/messages", chatHandler.SendMessage)

	authed.POST("/payments/subscribe", paymentsHandler.Subscribe)
	authed.POST("/payments/confirm", paymentsHandler.Confirm)
	authed.POST("/payments/cancel", paymentsHandler.Cancel)
	authed.GET("/payments/subscription", paymentsHandler.SubscriptionStatus)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	admin.GET("/requests", adminRequestsHandler.ListRequests)
	admin.GET("/requests/:request_id", adminRequestsHandler.GetRequest)
	admin.PUT("/requests/:request_id/status", adminRequestsHandler.UpdateStatus)
	admin.PUT("/requests/:request_id/notes", adminRequestsHandler.UpdateNotes)

	admin.GET("/users", adminUsersHandler.ListUsers)

	admin.GET("/chats", chatHandler.ListChats)
	admin.GET("/chats/:chat_id", chatHandler.GetChatByID)
	admin.POST("/chats/:chat_id/messages", chatHandler.SendAdminMessage)
	admin.PUT("/chats/:chat_id/status", chatHandler.UpdateChatStatus)

	gallery := authed.Group("/gallery/admin")
	gallery.Use(middleware.RequireAdmin())
	gallery.POST("", galleryHandler.UploadPhoto)
	gallery.GET("/:photo_id/download", galleryHandler.DownloadPhoto)
	gallery.DELETE("/:photo_id", galleryHandler.DeletePhoto)

	// Webhook (no JWT, uses the shared provider token)
	router.POST("/api/v1/webhooks/checkout", webhookHandler.HandleWebhook)

	// Pages: serve the built frontend, falling back to its index for
	// client-side routes.
	if cfg.FrontendDir != "" {
		router.NoRoute(frontendHandler(cfg.FrontendDir))
	}

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func frontendHandler(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
