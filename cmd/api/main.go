package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Acopio-api/internal/application/auth"
	"github.com/jhoicas/Acopio-api/internal/application/usecase"
	"github.com/jhoicas/Acopio-api/internal/infrastructure/notify"
	"github.com/jhoicas/Acopio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Acopio-api/internal/interfaces/http"
	"github.com/jhoicas/Acopio-api/pkg/config"
	"github.com/jhoicas/Acopio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria de referencia")
	}
	clock := usecase.FixedZoneClock{Loc: loc}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	typeRepo := postgres.NewCommodityTypeRepository(pool)
	traderRepo := postgres.NewTraderRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	summaryRepo := postgres.NewDailySummaryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var notifier usecase.SummaryNotifier = notify.NopNotifier{}
	if cfg.Notify.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar bot de Telegram")
		}
		notifier = tg
		log.Info().Int64("chat_id", cfg.Notify.TelegramChatID).Msg("avisos de cierre por Telegram activos")
	}

	typeUC := usecase.NewCommodityTypeUseCase(typeRepo, purchaseRepo, clock)
	traderUC := usecase.NewTraderUseCase(traderRepo, purchaseRepo, clock)
	purchaseUC := usecase.NewPurchaseUseCase(txRunner, purchaseRepo, traderRepo, typeRepo, clock, cfg.Settlement.DayStartHour)
	summaryUC := usecase.NewSummaryUseCase(
		summaryRepo, purchaseRepo, typeRepo, userRepo,
		clock, notifier,
		cfg.Settlement.DayStartHour,
		time.Duration(cfg.Settlement.GraceDays)*24*time.Hour,
		log,
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Acopio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CommodityTypeUC: typeUC,
		TraderUC:        traderUC,
		PurchaseUC:      purchaseUC,
		SummaryUC:       summaryUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
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
