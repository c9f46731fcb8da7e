package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"ms-marketplace/internal/catalog"
	catalog_api "ms-marketplace/internal/catalog/api"
	catalog_db "ms-marketplace/internal/catalog/db"
	"ms-marketplace/internal/config"
	"ms-marketplace/internal/database/migrations"
	"ms-marketplace/internal/kafka"
	"ms-marketplace/internal/logger"
	"ms-marketplace/internal/matching"
	matching_api "ms-marketplace/internal/matching/api"
	"ms-marketplace/internal/order"
	order_api "ms-marketplace/internal/order/api"
	order_db "ms-marketplace/internal/order/db"
	"ms-marketplace/internal/order/pickup"
	"ms-marketplace/internal/reputation"
	reputation_api "ms-marketplace/internal/reputation/api"
	reputation_db "ms-marketplace/internal/reputation/db"
	users_api "ms-marketplace/internal/users/api"
	users_db "ms-marketplace/internal/users/db"
	"ms-marketplace/internal/verification"
	verification_api "ms-marketplace/internal/verification/api"
	verification_db "ms-marketplace/internal/verification/db"
)

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	maxRetries := 5
	var err error
	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		err = sqldb.Ping()
		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}
	log.Info("DATABASE", "✅ PostgreSQL connection successful")

	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Marketplace Service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectPostgres(cfg.Database, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg.Redis, log)
	defer redisClient.Close()

	migrationRunner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := migrationRunner.RunMigrations(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migration failed: %v", err))
	}
	defer migrationRunner.Close()
	log.Info("DATABASE", "Schema migrations applied")

	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics)
	defer kafkaProducer.Close()
	log.Info("KAFKA", "Kafka producer initialized successfully")

	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, cfg.Kafka.Topics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured successfully")
		}
	}

	orderStore := &order_db.DB{Bun: bunDB}
	reputationStore := &reputation_db.DB{Bun: bunDB}
	verificationStore := &verification_db.DB{Bun: bunDB}
	userStore := &users_db.DB{Bun: bunDB}
	productStore := &catalog_db.DB{Bun: bunDB}

	reputationService := reputation.NewReputationService(reputationStore, userStore, kafkaProducer)
	orderService := order.NewOrderService(orderStore, reputationService, kafkaProducer)
	verificationService := verification.NewVerificationService(verificationStore, reputationStore, reputationService)
	matchingService := matching.NewMatchingService(userStore, reputationStore)

	verifiedCache := catalog.NewCache(redisClient, cfg.Catalog.SellerVerifiedTTL)
	annotator := catalog.NewAnnotator(verificationService, productStore, verifiedCache)

	pickupSecret := os.Getenv("PICKUP_QR_SECRET")
	if pickupSecret == "" {
		log.Warn("CONFIG", "PICKUP_QR_SECRET not set, using default development secret")
		pickupSecret = "dev-pickup-secret"
	}
	pickupGen := pickup.NewGenerator(pickupSecret)

	orderHandler := order_api.NewHandler(orderService, pickupGen, log)
	reputationHandler := reputation_api.NewHandler(reputationService, log)
	verificationHandler := verification_api.NewHandler(verificationService, log)
	matchingHandler := matching_api.NewHandler(matchingService, cfg.Matching.DefaultRadiusKm, log)
	catalogHandler := catalog_api.NewHandler(annotator, productStore, log)
	userHandler := users_api.NewHandler(userStore, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/direct", orderHandler.CreateDirectOrder)
			r.Get("/{orderId}", orderHandler.GetOrder)
			r.Put("/{orderId}/status", orderHandler.UpdateOrderStatus)
			r.Post("/{orderId}/complete", orderHandler.CompleteOrder)
			r.Get("/{orderId}/pickup-code", orderHandler.PickupCode)
		})
		log.Info("ROUTER", "Order routes registered under /api/v1/orders")

		r.Post("/ratings", reputationHandler.AddRating)

		r.Post("/users", userHandler.CreateUser)
		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Get("/orders", orderHandler.GetUserOrders)
			r.Get("/reputation", reputationHandler.GetUserReputation)
			r.Post("/verify", reputationHandler.VerifyUser)
			r.Get("/verification", verificationHandler.GetStatus)
			r.Get("/verification/requests", verificationHandler.GetUserRequests)
		})
		log.Info("ROUTER", "User routes registered under /api/v1/users")

		r.Route("/verification/requests", func(r chi.Router) {
			r.Post("/", verificationHandler.SubmitRequest)
			r.Get("/{requestId}", verificationHandler.GetRequest)
			r.Post("/{requestId}/approve", verificationHandler.ApproveRequest)
			r.Post("/{requestId}/reject", verificationHandler.RejectRequest)
		})
		log.Info("ROUTER", "Verification routes registered under /api/v1/verification")

		r.Route("/farmers", func(r chi.Router) {
			r.Get("/nearby", matchingHandler.NearbyFarmers)
			r.Get("/top-rated", matchingHandler.TopRatedFarmers)
		})
		log.Info("ROUTER", "Farmer discovery routes registered under /api/v1/farmers")

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/annotate", catalogHandler.AnnotateProducts)
			r.Post("/products", catalogHandler.CreateProduct)
			r.Get("/products/{productId}", catalogHandler.GetProduct)
			r.Post("/sellers/{sellerId}/refresh", catalogHandler.RefreshSeller)
		})
		log.Info("ROUTER", "Catalog routes registered under /api/v1/catalog")
	})

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	if cfg.Kafka.Enabled {
		verifiedConsumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.UserVerified, "catalog-refresher")
		defer verifiedConsumer.Close()

		go verifiedConsumer.StartUserVerified(consumerCtx, func(userID string) {
			if err := annotator.RefreshSeller(userID); err != nil {
				log.Error("CATALOG", fmt.Sprintf("Failed to refresh products for verified seller %s: %v", userID, err))
				return
			}
			log.LogCatalog("REFRESH", fmt.Sprintf("seller %s re-annotated after verification event", userID))
		})
		log.Info("KAFKA", "User-verified consumer started for catalog refresh")
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Marketplace Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Marketplace Service shutdown complete")
	}
}
