package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amazinbookstore/bookstore-platform/internal/api/handlers"
	"github.com/amazinbookstore/bookstore-platform/internal/api/middleware"
	"github.com/amazinbookstore/bookstore-platform/internal/cache"
	"github.com/amazinbookstore/bookstore-platform/internal/config"
	"github.com/amazinbookstore/bookstore-platform/internal/health"
	"github.com/amazinbookstore/bookstore-platform/internal/metrics"
	repository "github.com/amazinbookstore/bookstore-platform/internal/repositories"
	service "github.com/amazinbookstore/bookstore-platform/internal/services"
	"github.com/amazinbookstore/bookstore-platform/pkg/sendGrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	popularCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	jwtKey := []byte(cfg.Security.JWTKey)
	emailClient := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	bookService := service.NewBookService(repos.Book)
	bookHandler := handlers.NewBookHandler(bookService)
	cartService := service.NewCartService(repos.Cart, repos.Book)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(repos, repos.User, repos.Book, repos.Cart, repos.Order)
	orderService := service.NewOrderService(repos.Order)
	notificationService := service.NewNotificationService(repos.Notification, emailClient)
	orderHandler := handlers.NewOrderHandler(orderService, checkoutService, userService, notificationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	recommendationService := service.NewRecommendationService(repos.User, repos.Book, popularCache, cfg.Cache.PopularTTL)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("POST /api/v1/books", authMiddleware.Authenticate(authMiddleware.RequireOwner(bookHandler.CreateBook())))
	routerMux.HandleFunc("GET /api/v1/books/{id}", bookHandler.GetBook())
	routerMux.HandleFunc("PUT /api/v1/books/{id}", authMiddleware.Authenticate(authMiddleware.RequireOwner(bookHandler.UpdateBook())))
	routerMux.HandleFunc("DELETE /api/v1/books/{id}", authMiddleware.Authenticate(authMiddleware.RequireOwner(bookHandler.DeleteBook())))
	routerMux.HandleFunc("GET /api/v1/books", bookHandler.SearchBooks())
	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{bookId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/carts", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/orders/checkout", authMiddleware.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(authMiddleware.RequireOwner(orderHandler.UpdateStatus())))
	routerMux.HandleFunc("GET /api/v1/recommendations", authMiddleware.Authenticate(recommendationHandler.GetRecommendations()))
	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}
}
