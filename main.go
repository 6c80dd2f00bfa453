package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"etalase/internal/cache"
	"etalase/internal/config"
	"etalase/internal/handlers"
	"etalase/internal/inertia"
	"etalase/internal/models"
	"etalase/internal/repositories"
	"etalase/internal/services"
	logx "etalase/pkg/logger"
	"etalase/pkg/rabbitmq"
)

// assetVersion is handed to the SPA so it can detect stale assets.
const assetVersion = "1"

func main() {
	cfg := config.Load()
	logx.Init(cfg.AppEnv)

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		logx.Fatal().Err(err).Msg("failed to migrate database")
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
	}

	// --- Redis cache (optional) ---
	productCache := cache.NewProductCache(openRedis(cfg), cfg.CacheTTL)

	// --- Repositories, services, handlers ---
	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, productCache, mqClient)

	sessionStore := session.New(session.Config{
		Expiration:     cfg.SessionExpiration,
		CookieHTTPOnly: true,
	})
	renderer := inertia.NewRenderer("Etalase", assetVersion)
	productHandler := handlers.NewProductHandler(productService, sessionStore, renderer)

	app := newApp(productHandler)

	// --- Product event consumer ---
	// Listens for the events the write path publishes. Real consumers
	// would sync search indexes or notify downstream systems; this one
	// just records what happened.
	if mqClient != nil {
		messageHandler := func(msg amqp.Delivery) error {
			logx.Info().Uint64("delivery_tag", msg.DeliveryTag).Str("body", string(msg.Body)).Msg("received product event")
			return nil
		}
		if consumerErr := mqClient.ConsumeProductEvents(messageHandler); consumerErr != nil {
			logx.Error().Err(consumerErr).Msg("failed to start RabbitMQ consumer")
		}
	}

	// --- Start HTTP server with graceful shutdown ---
	logx.Info().Str("port", cfg.AppPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			logx.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	logx.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		logx.Error().Err(err).Msg("error during Fiber shutdown")
	}
	logx.Info().Msg("server gracefully stopped")
}

// newApp assembles the Fiber app: middleware, the product routes and
// the health endpoint.
func newApp(productHandler *handlers.ProductHandler) *fiber.App {
	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New()) // Request logger

	productHandler.RegisterRoutes(app)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products", fiber.StatusFound)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// openDatabase opens the configured relational store.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}
}

// openRedis connects the optional cache backend. Returns nil when
// Redis is not configured or unreachable; the cache degrades to a
// pass-through in that case.
func openRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logx.Warn().Err(err).Msg("invalid REDIS_URL, running without cache")
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logx.Warn().Err(err).Msg("Redis is unreachable, running without cache")
		return nil
	}
	return client
}
