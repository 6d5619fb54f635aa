package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/retail-ops-api/internal/application/auth"
	"github.com/jhoicas/retail-ops-api/internal/application/inventory"
	"github.com/jhoicas/retail-ops-api/internal/application/loyalty"
	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/application/promotion"
	"github.com/jhoicas/retail-ops-api/internal/application/receiving"
	"github.com/jhoicas/retail-ops-api/internal/application/serial"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/notify"
	"github.com/jhoicas/retail-ops-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-ops-api/internal/interfaces/http"
	"github.com/jhoicas/retail-ops-api/pkg/config"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios de lectura (pool); las mutaciones pasan por los tx runners.
	userRepo := postgres.NewUserRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	tierRepo := postgres.NewTierRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	serialRepo := postgres.NewSerialRepository(pool)
	loyaltyRepo := postgres.NewLoyaltyRepository(pool)
	promoRepo := postgres.NewPromotionRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	ledgerUC := inventory.NewLedgerUseCase(postgres.NewInventoryTxRunner(pool))
	allocatorUC := serial.NewAllocatorUseCase()
	promotionUC := promotion.NewUseCase(promoRepo, customerRepo, tierRepo)
	loyaltyUC := loyalty.NewUseCase(postgres.NewLoyaltyTxRunner(pool), settingRepo, tierRepo, loyaltyRepo)
	receivingUC := receiving.NewUseCase(postgres.NewReceivingTxRunner(pool), ledgerUC)

	auditSink := notify.NewAuditSink(auditRepo, log)
	notifier := notify.NewLogNotifier(log)

	orderUC := order.NewUseCase(
		postgres.NewOrderTxRunner(pool),
		variantRepo, productRepo, customerRepo,
		ledgerUC, allocatorUC, promotionUC, loyaltyUC,
		auditSink, notifier,
	)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		OrderUC:       orderUC,
		LedgerUC:      ledgerUC,
		ReceivingUC:   receivingUC,
		PromotionUC:   promotionUC,
		LoyaltyUC:     loyaltyUC,
		InventoryRepo: inventoryRepo,
		MovementRepo:  movementRepo,
		SerialRepo:    serialRepo,
		LoyaltyRepo:   loyaltyRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
