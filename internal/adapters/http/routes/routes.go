package routes

import (
	"time"

	"libraryhub/internal/adapters/http/handlers"
	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, mailService *services.MailService) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	authorRepo := repositories.NewAuthorRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	issueRepo := repositories.NewIssueRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo)
	authorService := services.NewAuthorService(authorRepo)
	bookService := services.NewBookService(bookRepo)
	loanService := services.NewLoanService(issueRepo, bookRepo, userRepo, mailService)
	ratingService := services.NewRatingService(ratingRepo, bookRepo)
	commentService := services.NewCommentService(commentRepo, bookRepo)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	authorHandler := handlers.NewAuthorHandler(authorService)
	bookHandler := handlers.NewBookHandler(bookService)
	issueHandler := handlers.NewIssueHandler(loanService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	commentHandler := handlers.NewCommentHandler(commentService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, with a stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Catalog routes: reads are public, writes need the catalog grant
	authorRoutes := apiV1.Group("/authors")
	setupAuthorRoutes(authorRoutes, authorHandler, cfg)

	bookRoutes := apiV1.Group("/books")
	setupBookRoutes(bookRoutes, bookHandler, ratingHandler, commentHandler, cfg)

	// Rating and comment deletion addresses the item directly
	apiV1.Delete("/ratings/:id", middleware.AuthMiddleware(cfg), ratingHandler.Delete)
	apiV1.Delete("/comments/:id", middleware.AuthMiddleware(cfg), commentHandler.Delete)

	// Rental routes (authenticated)
	issueRoutes := apiV1.Group("/issues")
	issueRoutes.Use(middleware.AuthMiddleware(cfg))
	setupIssueRoutes(issueRoutes, issueHandler)

	// User management routes (staff only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.StaffOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Stats routes (staff only)
	statsRoutes := apiV1.Group("/stats")
	statsRoutes.Use(middleware.AuthMiddleware(cfg))
	statsRoutes.Use(middleware.StaffOnly())
	statsRoutes.Get("/overview", statsHandler.Overview)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/visitor", middleware.AuthRateLimiter(), handler.VisitorLogin)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupAuthorRoutes configures author catalog routes
func setupAuthorRoutes(router fiber.Router, handler *handlers.AuthorHandler, cfg *config.Config) {
	// Public reads with a short public cache
	router.Get("/", middleware.CacheControl(1*time.Minute), handler.List)
	router.Get("/:id", middleware.CacheControl(1*time.Minute), handler.GetByID)

	// Writes require the catalog grant
	router.Post("/", middleware.AuthMiddleware(cfg), middleware.CatalogWrite(), handler.Create)
	router.Put("/:id", middleware.AuthMiddleware(cfg), middleware.CatalogWrite(), handler.Update)
	router.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.CatalogWrite(), handler.Delete)
}

// setupBookRoutes configures book catalog routes including the nested
// rating and comment collections.
func setupBookRoutes(
	router fiber.Router,
	bookHandler *handlers.BookHandler,
	ratingHandler *handlers.RatingHandler,
	commentHandler *handlers.CommentHandler,
	cfg *config.Config,
) {
	// Public reads
	router.Get("/", middleware.CacheControl(1*time.Minute), bookHandler.List)
	router.Get("/search", bookHandler.Search)
	router.Get("/:id", middleware.CacheControl(1*time.Minute), bookHandler.GetByID)

	// Writes require the catalog grant
	router.Post("/", middleware.AuthMiddleware(cfg), middleware.CatalogWrite(), bookHandler.Create)
	router.Put("/:id", middleware.AuthMiddleware(cfg), middleware.CatalogWrite(), bookHandler.Update)
	router.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.CatalogWrite(), bookHandler.Delete)

	// Ratings: public reads, authenticated writes
	router.Get("/:id/ratings", ratingHandler.ListByBook)
	router.Post("/:id/ratings", middleware.AuthMiddleware(cfg), ratingHandler.Create)

	// Comments: public reads, authenticated writes
	router.Get("/:id/comments", commentHandler.ListByBook)
	router.Post("/:id/comments", middleware.AuthMiddleware(cfg), commentHandler.Create)
}

// setupIssueRoutes configures rental routes (authenticated)
func setupIssueRoutes(router fiber.Router, handler *handlers.IssueHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/my", middleware.NoCacheHeaders(), handler.ListActive)
	router.Get("/:id", handler.GetByID)
	router.Put("/:id/return", handler.Return)
}

// setupUserRoutes configures user management routes (staff only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.GetByID)
}
