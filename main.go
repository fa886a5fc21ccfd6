package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/seo-page-analyzer/backend/analyzer"
	"github.com/seo-page-analyzer/backend/logging"
	"github.com/seo-page-analyzer/backend/metrics"
	"github.com/seo-page-analyzer/backend/middleware"
)

var (
	pageAnalyzer *analyzer.Analyzer
	rateLimiter  *middleware.RateLimiter
	requestStats *logging.Statistics
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	loadEnv()
	setupGinMode()

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	var err error
	pageAnalyzer, err = analyzer.New(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize analyzer:", err)
	}
	defer pageAnalyzer.Shutdown()

	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5
	requestStats = logging.Initialize()

	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.VisitorTracking(requestStats))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		api.POST("/analyze", analyzeURL)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, requestStats.GetStatistics())
		})

		api.GET("/cache", func(c *gin.Context) {
			c.JSON(http.StatusOK, pageAnalyzer.GetCacheStats())
		})
	}

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func analyzeURL(c *gin.Context) {
	log.Printf("Analyze request received from: %s\n", c.ClientIP())
	var request struct {
		URL     string `json:"url" binding:"required,url"`
		Keyword string `json:"keyword"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid URL provided",
		})
		return
	}

	start := time.Now()
	result, err := pageAnalyzer.Analyze(request.URL, request.Keyword)
	durationMs := float64(time.Since(start).Milliseconds())
	if err != nil {
		requestStats.TrackAnalysis(request.URL, durationMs, 0, true)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze URL: " + err.Error(),
		})
		return
	}

	requestStats.TrackAnalysis(request.URL, durationMs, result.Score, false)

	// Periodically persist visitor statistics
	if requestStats.RequestsServed()%100 == 0 {
		go requestStats.Save()
	}

	c.JSON(http.StatusOK, result)
}
