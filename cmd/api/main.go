package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resumehire/interview-engine/internal/config"
	"resumehire/interview-engine/internal/handlers"
	"resumehire/interview-engine/internal/repositories"
	"resumehire/interview-engine/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize session registry
	sessionRepo := repositories.NewSessionRepository()
	log.Println("✅ Session registry initialized")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize assessment services
	insightService := services.NewInsightService(geminiService)
	evaluatorService := services.NewEvaluatorService(geminiService, cfg.Interview.Rubric)
	interviewService := services.NewInterviewService(geminiService, evaluatorService, cfg.Interview.QuestionCount)
	log.Println("✅ Assessment services initialized")

	// Initialize Handlers
	sessionHandler := handlers.NewSessionHandler(
		sessionRepo,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	insightHandler := handlers.NewInsightHandler(sessionRepo, insightService)
	interviewHandler := handlers.NewInterviewHandler(
		sessionRepo,
		interviewService,
		cfg.Interview.QuestionCount,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Assessment Engine API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"sessions": sessionRepo.Count(),
			"time":     time.Now(),
		})
	})

	// Session lifecycle
	api.Post("/sessions", sessionHandler.HandleCreateSession)
	api.Get("/sessions/:id", sessionHandler.HandleGetSession)
	api.Delete("/sessions/:id", sessionHandler.HandleDeleteSession)

	// Candidate insights
	api.Post("/sessions/:id/profile", insightHandler.HandleProfile)
	api.Get("/sessions/:id/insights", insightHandler.HandleListInsights)
	api.Post("/sessions/:id/insights", insightHandler.HandleGenerateInsight)
	api.Delete("/sessions/:id/insights", insightHandler.HandleDeleteInsight)
	api.Post("/sessions/:id/insights/clear", insightHandler.HandleClearInsights)
	api.Post("/sessions/:id/ats-analysis", insightHandler.HandleATSAnalysis)

	// Mock interview
	api.Post("/sessions/:id/interview/questions", interviewHandler.HandleGenerateQuestions)
	api.Get("/sessions/:id/interview/questions", interviewHandler.HandleGetQuestions)
	api.Put("/sessions/:id/interview/questions/:qid/answer", interviewHandler.HandleRecordAnswer)
	api.Put("/sessions/:id/interview/questions/:qid/audio", interviewHandler.HandleRecordAudio)
	api.Post("/sessions/:id/interview/questions/:qid/evaluate", interviewHandler.HandleEvaluate)
	api.Get("/sessions/:id/interview/metrics", interviewHandler.HandleMetrics)
	api.Post("/sessions/:id/interview/reset", interviewHandler.HandleReset)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Assessment Engine API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"POST /api/v1/sessions/:id/profile",
				"GET  /api/v1/sessions/:id/insights",
				"POST /api/v1/sessions/:id/interview/questions",
				"GET  /api/v1/sessions/:id/interview/metrics",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
