package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"

	"catalog/internal/blob"
	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

// NewApp wires the catalog backend: store, blob directory, message
// broker, repositories, services, and routes. The returned RabbitMQ
// client is nil when the broker is unreachable; the API runs without it.
func NewApp(cfg *config.Config) (*fiber.App, *rabbitmq.Client, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	gateway := database.NewGateway(db)

	store, err := blob.NewFileStore(cfg.BlobDir)
	if err != nil {
		return nil, nil, err
	}

	// The broker is a best-effort event sink, not a dependency the API
	// cannot start without.
	var mqClient *rabbitmq.Client
	if client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}); err != nil {
		log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
	} else {
		mqClient = client
	}

	// Repositories
	productRepo := repositories.NewSQLProductRepository(gateway)
	userRepo := repositories.NewSQLUserRepository(gateway)
	sessionRepo := repositories.NewSQLSessionRepository(gateway)

	// Services
	var events services.EventPublisher
	if mqClient != nil {
		events = mqClient
	}
	productService := services.NewProductService(productRepo, events)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)

	// Handlers
	productHandler := handlers.NewProductHandler(productService, store, middleware.OptionalSession(authService), cfg.MaxUploadSize)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService)
	imageHandler := handlers.NewImageHandler(store)

	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))

	// Blob serving lives outside the /api prefix.
	imageHandler.RegisterRoutes(app)

	api := app.Group("/api")
	api.Get("/health", handlers.HandleHealth)

	// Auth routes share the /users prefix and must come first.
	authHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api)

	// Unmatched prefixes, inside /api and out.
	api.Use(handlers.APINotFound)
	app.Use(handlers.APINotFound)

	if cfg.SeedSampleData {
		seedProducts(productService)
	}

	return app, mqClient, nil
}

// seedProducts populates the catalog with sample data for local
// development.
func seedProducts(service *services.ProductService) {
	products := []models.Product{
		{Name: "Tropical Paradise", Description: "A beautiful tropical product with vibrant colors", Category: "tropical", Tags: models.Tags{"colorful", "vibrant", "popular"}},
		{Name: "Freshwater Classic", Description: "A classic freshwater product perfect for beginners", Category: "freshwater", Tags: models.Tags{"beginner", "classic", "easy"}},
		{Name: "Saltwater Specialist", Description: "An advanced saltwater product for experienced users", Category: "saltwater", Tags: models.Tags{"advanced", "specialist", "marine"}},
		{Name: "Exotic Rare", Description: "A rare and exotic product with unique characteristics", Category: "exotic", Tags: models.Tags{"rare", "unique", "special"}},
	}

	for i := range products {
		created, err := service.CreateProduct(&products[i])
		if err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
			continue
		}
		log.Printf("Seeded product: %s (ID: %d)", created.Name, created.ID)
	}
}

func main() {
	cfg := config.Load()

	app, mqClient, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	if mqClient != nil {
		defer mqClient.Close()

		log.Println("Starting RabbitMQ consumer for catalog events...")
		if err := mqClient.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
			log.Printf("Received catalog event %s (tag %d): %s", msg.Type, msg.DeliveryTag, msg.Body)
			return nil
		}); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	}

	log.Printf("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
