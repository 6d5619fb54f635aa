package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/loyalty"
	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/application/promotion"
	"github.com/jhoicas/retail-ops-api/internal/application/receiving"
	"github.com/jhoicas/retail-ops-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	OrderUC     *order.UseCase
	LedgerUC    *inventory.LedgerUseCase
	ReceivingUC *receiving.UseCase
	PromotionUC *promotion.UseCase
	LoyaltyUC   *loyalty.UseCase

	InventoryRepo repository.InventoryRepository
	MovementRepo  repository.StockMovementRepository
	SerialRepo    repository.SerialRepository
	LoyaltyRepo   repository.LoyaltyRepository

	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/quote", orderHandler.Quote)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Post("/:id/complete", orderHandler.Complete)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Inventory (protegido; ajustes solo admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReceivingUC, deps.InventoryRepo, deps.MovementRepo, deps.SerialRepo)
	invGroup.Get("/stock/:variantId", inventoryHandler.GetStock)
	invGroup.Get("/movements/:variantId", inventoryHandler.ListMovements)
	invGroup.Post("/adjustments", RequireRole("admin"), inventoryHandler.Adjust)
	invGroup.Post("/receivings", RequireRole("admin"), inventoryHandler.Receive)

	// Promotions (protegido; administración solo admin)
	promos := protected.Group("/promotions")
	promotionHandler := NewPromotionHandler(deps.PromotionUC)
	promos.Get("/", promotionHandler.List)
	promos.Get("/:id", promotionHandler.GetByID)
	promos.Post("/", RequireRole("admin"), promotionHandler.Create)
	promos.Post("/refresh", RequireRole("admin"), promotionHandler.RefreshStatuses)
	promos.Delete("/:id", RequireRole("admin"), promotionHandler.Deactivate)

	// Loyalty (protegido; ajustes y reset solo admin)
	loyaltyGroup := protected.Group("/loyalty")
	loyaltyHandler := NewLoyaltyHandler(deps.LoyaltyUC, deps.LoyaltyRepo)
	loyaltyGroup.Get("/:customerId/balance", loyaltyHandler.GetBalance)
	loyaltyGroup.Get("/:customerId/transactions", loyaltyHandler.ListTransactions)
	loyaltyGroup.Post("/:customerId/adjustments", RequireRole("admin"), loyaltyHandler.Adjust)
	loyaltyGroup.Post("/:customerId/reset", RequireRole("admin"), loyaltyHandler.Reset)
}
