package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	authMiddleware "github.com/israkkayum/lms-server-side/internal/auth/middleware"
	authService "github.com/israkkayum/lms-server-side/internal/auth/service"
	"github.com/israkkayum/lms-server-side/internal/config"
	"github.com/israkkayum/lms-server-side/internal/handlers"
	"github.com/israkkayum/lms-server-side/internal/logger"
	"github.com/israkkayum/lms-server-side/internal/middlewares"
	"github.com/israkkayum/lms-server-side/internal/repositories"
	"github.com/israkkayum/lms-server-side/internal/services"
	"github.com/israkkayum/lms-server-side/internal/storage"

	_ "github.com/israkkayum/lms-server-side/docs"
)

const maxRequestSize = 50 * 1024 * 1024 // 50MB for file uploads

// @title LMS API
// @version 1.0
// @description API for courses, lesson content, progress tracking, submissions, and grades

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description JWT access token as "Bearer <token>"
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LMS Server")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator (for auth middleware)
	tokenGenerator := authService.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize storage for assignment submission files
	fileStorage := storage.NewLocalStorage(cfg.StorageBase)

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	sectionRepo := repositories.NewSectionRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	contentRepo := repositories.NewContentRepository(db)
	progressRepo := repositories.NewProgressRepository(db)
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	quizSubRepo := repositories.NewQuizSubmissionRepository(db)
	assignmentSubRepo := repositories.NewAssignmentSubmissionRepository(db)
	siteRepo := repositories.NewSiteRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	forumRepo := repositories.NewForumRepository(db)

	// Initialize services
	progressService := services.NewProgressService(progressRepo, enrollmentRepo, courseRepo, lessonRepo, contentRepo)
	courseService := services.NewCourseService(courseRepo, sectionRepo, lessonRepo, contentRepo)
	contentService := services.NewContentService(contentRepo, lessonRepo, progressService)
	quizService := services.NewQuizService(quizSubRepo, contentRepo, lessonRepo, progressService)
	assignmentService := services.NewAssignmentService(
		assignmentSubRepo, contentRepo, lessonRepo, courseRepo,
		fileStorage, progressService, storage.GenerateStoredName,
	)
	gradeService := services.NewGradeService(courseRepo, contentRepo, enrollmentRepo, quizSubRepo, assignmentSubRepo)
	siteService := services.NewSiteService(siteRepo)
	blogService := services.NewBlogService(blogRepo)
	forumService := services.NewForumService(forumRepo)

	// Initialize middleware
	authMw := authMiddleware.AuthMiddleware(tokenGenerator)
	instructorMw := authMiddleware.RoleMiddleware(tokenGenerator, authService.RoleInstructor)
	apiKeyMw := authMiddleware.APIKeyMiddleware(cfg.APIKey)

	// Initialize handlers
	courseHandler := handlers.NewCourseHandler(courseService, logger.Logger)
	contentHandler := handlers.NewContentHandler(contentService, logger.Logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger.Logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger.Logger)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, logger.Logger)
	gradeHandler := handlers.NewGradeHandler(gradeService, logger.Logger)
	siteHandler := handlers.NewSiteHandler(siteService, logger.Logger)
	blogHandler := handlers.NewBlogHandler(blogService, logger.Logger)
	forumHandler := handlers.NewForumHandler(forumService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		courseHandler.RegisterRoutes(r, authMw, instructorMw)
		contentHandler.RegisterRoutes(r, authMw, instructorMw)
		progressHandler.RegisterRoutes(r, authMw, apiKeyMw)
		quizHandler.RegisterRoutes(r, authMw)
		assignmentHandler.RegisterRoutes(r, authMw, instructorMw)
		gradeHandler.RegisterRoutes(r, authMw)
		siteHandler.RegisterRoutes(r, authMw, instructorMw)
		blogHandler.RegisterRoutes(r, authMw)
		forumHandler.RegisterRoutes(r, authMw)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second, // Longer timeout for file uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "lms_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
