package main

import (
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"time"

	"balancegame/cache"
	"balancegame/db"
	"balancegame/handlers"
	"balancegame/middleware"
	"balancegame/monitoring"
	"balancegame/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	utils.InitLogger()
	db.InitDB()
	monitoring.InitMetrics()

	if err := cache.InitRedis(); err != nil {
		utils.Log.Warn("Redis unavailable, caching and rate limiting disabled: ", err)
	}

	// Set to release mode in production
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	authLimit := middleware.RateLimit("auth", 10, time.Minute)
	r.POST("/api/user/signup", authLimit, handlers.Signup)
	r.POST("/api/user/login", authLimit, handlers.Login)
	r.POST("/api/user/logout", handlers.Logout)
	r.POST("/api/user/refresh", handlers.RefreshToken)
	r.GET("/api/game", handlers.GetGames)
	r.GET("/api/game/:id", handlers.GetGameByID)

	protected := r.Group("/api").Use(middleware.AuthMiddleware())
	{
		protected.POST("/game", handlers.CreateGame)
		protected.POST("/game/:id/comment", handlers.AddComment)
		protected.GET("/game/:id/comment", handlers.GetComments)
		protected.PUT("/game/:id/comment/:commentId", handlers.UpdateComment)
		protected.DELETE("/game/:id/comment/:commentId", handlers.DeleteComment)
		protected.POST("/game/:id/choice/:choiceId/like", handlers.ToggleChoiceLike)
		protected.POST("/game/:id/comment/:commentId/like", handlers.ToggleCommentLike)
		protected.GET("/admin/stats", handlers.GetDashboardStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Check if HTTPS should be enabled
	useHTTPS := os.Getenv("USE_HTTPS") == "true"
	certFile := os.Getenv("TLS_CERT_FILE")
	keyFile := os.Getenv("TLS_KEY_FILE")

	if useHTTPS && certFile != "" && keyFile != "" {
		utils.Log.Info("Starting server with HTTPS on port ", port)

		tlsConfig := &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		}

		server := &http.Server{
			Addr:      ":" + port,
			Handler:   r,
			TLSConfig: tlsConfig,
		}

		if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
			log.Fatal("Failed to start HTTPS server:", err)
		}
	} else {
		utils.Log.Info("Starting server with HTTP on port ", port)

		if err := r.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}
}
