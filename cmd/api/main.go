package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-sales-ws/internal/handler"
	"go-sales-ws/internal/middleware"
	"go-sales-ws/internal/model"
	"go-sales-ws/internal/repository"
	"go-sales-ws/internal/service"
	"go-sales-ws/internal/ws"
	"go-sales-ws/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(&model.User{}, &model.Customer{}, &model.Category{}, &model.Product{}, &model.Sale{}, &model.SaleItem{})

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	resolver := service.NewCatalogResolver(customerRepo, productRepo)
	saleBuilder := service.NewSaleBuilder(resolver)

	authService := service.NewAuthService(userRepo, wsHub)
	catalogService := service.NewCatalogService(customerRepo, productRepo, categoryRepo)
	saleService := service.NewSaleService(saleBuilder, saleRepo, wsHub)
	analyticsService := service.NewAnalyticsService(saleRepo)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	saleHandler := handler.NewSaleHandler(saleService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sales Analytics API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication; sales are scoped to the
	// authenticated owner
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog Routes
	protected.Get("/customers", catalogHandler.GetCustomers)
	protected.Post("/customers", catalogHandler.CreateCustomer)
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Get("/categories", catalogHandler.GetCategories)
	protected.Post("/categories", catalogHandler.CreateCategory)

	// Sale Routes
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Post("/sales/import", saleHandler.ImportSales)

	// Analytics Routes
	protected.Get("/analytics/overview", analyticsHandler.GetOverview)
	protected.Get("/analytics/sales-by-month", analyticsHandler.GetSalesByMonth)
	protected.Get("/analytics/sales-by-region", analyticsHandler.GetSalesByRegion)
	protected.Get("/analytics/sales-by-category", analyticsHandler.GetSalesByCategory)
	protected.Get("/analytics/sales-by-gender", analyticsHandler.GetSalesByGender)
	protected.Get("/analytics/top-products", analyticsHandler.GetTopProducts)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
