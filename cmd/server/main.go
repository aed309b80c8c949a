package main

import (
	"errors"
	"log"
	"strings"

	"envanter-backend/internal/apperr"
	"envanter-backend/internal/auth"
	"envanter-backend/internal/config"
	"envanter-backend/internal/dashboard"
	"envanter-backend/internal/database"
	"envanter-backend/internal/models"
	"envanter-backend/internal/movement"
	"envanter-backend/internal/orders"
	"envanter-backend/internal/stock"
	"envanter-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// taksonomi türü -> HTTP durum kodu
func statusForKind(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindInsufficientStock, apperr.KindInvalidTransition,
		apperr.KindNotModifiable, apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")

	stockSvc := stock.NewService(db)
	orderSvc := orders.NewService(db)
	movementSvc := movement.NewService(db)
	dashboardSvc := dashboard.NewService(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var ae *apperr.Error
			if errors.As(err, &ae) {
				return c.Status(statusForKind(ae.Kind)).JSON(fiber.Map{
					"error": ae.Message,
					"kind":  ae.Kind,
				})
			}
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Beklenmeyen hata:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(db, cfg))
	api.Post("/auth/login", auth.LoginHandler(db, cfg))
	api.Post("/users/register", users.RegisterHandler(db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))
	protected.Put("/account", users.UpdateAccountHandler(db))

	// Siparişler
	protected.Get("/orders", orders.ListOrdersHandler(orderSvc))
	protected.Post("/orders", orders.CreateOrderHandler(orderSvc))
	protected.Get("/orders/statuses", orders.ListStatusesHandler())
	protected.Get("/orders/:id", orders.GetOrderHandler(orderSvc))
	protected.Put("/orders/:id/status", orders.UpdateStatusHandler(orderSvc))
	protected.Patch("/orders/:id/lines", orders.ModifyLinesHandler(orderSvc))

	// Stok ve kategoriler (listeleme herkese açık)
	protected.Get("/stocks", stock.ListStocksHandler(stockSvc))
	protected.Get("/categories", stock.ListCategoriesHandler(db))

	// Dashboard
	protected.Get("/dashboard", dashboard.SummaryHandler(dashboardSvc))

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/stocks", stock.CreateStockHandler(stockSvc))
	adminRoutes.Put("/stocks/:id/quantity", stock.AdjustStockHandler(stockSvc))
	adminRoutes.Delete("/stocks/:id", stock.DeleteStockHandler(stockSvc))
	adminRoutes.Post("/stocks/import", stock.ImportStocksHandler(stockSvc))
	adminRoutes.Post("/categories", stock.CreateCategoryHandler(db))
	adminRoutes.Get("/users", users.ListUsersHandler(db))
	adminRoutes.Patch("/users/:id/promote", users.PromoteHandler(db))
	adminRoutes.Get("/movements", movement.ListMovementsHandler(movementSvc))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
