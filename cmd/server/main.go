package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/minjoonc/portfolio-backend/internal/config"
	"github.com/minjoonc/portfolio-backend/internal/database"
	"github.com/minjoonc/portfolio-backend/internal/handlers"
	"github.com/minjoonc/portfolio-backend/internal/middleware"
	"github.com/minjoonc/portfolio-backend/internal/repository"
	"github.com/minjoonc/portfolio-backend/internal/routes"
	"github.com/minjoonc/portfolio-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration (fatal when MONGODB_URI or MONGODB_DB is missing)
	cfg := config.Load()

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	client, db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}

	// Connect to Redis when configured; rate limiting falls back to an
	// in-memory limiter otherwise.
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		rc, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("⚠️  WARNING: failed to connect to Redis: %v", err)
			log.Println("   Rate limiting will run in-memory")
		} else {
			redisClient = rc
		}
	} else {
		log.Println("REDIS_URI not set; rate limiting will run in-memory")
	}

	// Repository and chat hub
	repo := repository.NewFeedbackRepo(db)
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB feedback indexes: %v", err)
	} else {
		log.Println("✅ MongoDB feedback indexes ensured")
	}

	hub := services.NewChatHub()

	feedbackHandler := handlers.NewFeedbackHandler(repo, cfg.ExposeClientID)
	healthHandler := handlers.NewHealthHandler(client, hub, cfg.Environment)
	chatHandler := handlers.NewChatHandler(repo, hub, cfg.WSAllowedOrigins)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Stack traces in responses only outside production
	r.Use(middleware.Recoverer(!cfg.IsProduction()))

	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
		log.Println("✅ Production security headers enabled")
	}

	if redisClient != nil {
		r.Use(middleware.RedisRateLimit(redisClient))
		log.Println("✅ Redis rate limiting enabled")
	} else {
		r.Use(middleware.NewMemoryRateLimiter(5, 20).Middleware)
	}

	// Setup routes
	routes.SetupRoutes(r, feedbackHandler, healthHandler, chatHandler)

	log.Println("📋 Registered routes:")
	log.Println("  GET    /api/feedback?slug=")
	log.Println("  POST   /api/feedback")
	log.Println("  DELETE /api/feedback/{id}")
	log.Println("  GET    /api/health")
	log.Println("  GET    /ws/chat")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Release connections on SIGINT/SIGTERM after the server drains
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Portfolio backend running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  WARNING: server shutdown: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}
	if err := database.Disconnect(client); err != nil {
		log.Printf("⚠️  WARNING: MongoDB disconnect: %v", err)
	}
	log.Println("Bye 👋")
}
