package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"gudang/internal/config"
	"gudang/internal/handlers"
	"gudang/internal/models"
	"gudang/internal/repositories"
	"gudang/internal/services"
	"gudang/pkg/database"
	"gudang/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	log := config.NewLogger(cfg)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory %s: %v", cfg.UploadDir, err)
	}

	// --- Database ---
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Vendor{}, &models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Stock event publishing (optional) ---
	// Without a broker URL the services simply skip publishing.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warnf("RabbitMQ unavailable, stock events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(db)
	vendorRepo := repositories.NewGORMVendorRepository(db)

	// --- Services ---
	productService := services.NewProductService(productRepo, vendorRepo, mqClient, log)
	vendorService := services.NewVendorService(vendorRepo, productRepo, log)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService, cfg, log)
	vendorHandler := handlers.NewVendorHandler(vendorService, log)

	// --- Fiber App ---
	app := fiber.New()

	app.Use(fiberlogger.New()) // Request logger
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// Uploaded product images are served back as static files.
	app.Static("/uploads", cfg.UploadDir)

	productHandler.RegisterRoutes(app)
	vendorHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Stock alert consumer ---
	// Log-only consumer so depleted stock shows up in the operational log
	// even when nobody is watching the dashboard.
	if mqClient != nil {
		err := mqClient.ConsumeStockEvents(func(msg amqp.Delivery) error {
			var event rabbitmq.StockEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.WithError(err).Warn("discarding malformed stock event")
				return nil
			}
			if event.Type == rabbitmq.EventStockLow || event.Type == rabbitmq.EventStockOut {
				log.WithFields(logrus.Fields{
					"product_id": event.ProductID,
					"qty":        event.Qty,
				}).Warnf("stock alert: %s is %s", event.Name, event.Status)
			}
			return nil
		})
		if err != nil {
			log.Warnf("Failed to start stock event consumer: %v", err)
		}
	}

	// --- Start HTTP Server ---
	log.Infof("Starting server on %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}
