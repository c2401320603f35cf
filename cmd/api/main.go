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

	"github.com/tejidosandina/rollos-api/internal/application/auth"
	"github.com/tejidosandina/rollos-api/internal/application/usecase"
	"github.com/tejidosandina/rollos-api/internal/infrastructure/postgres"
	httpRouter "github.com/tejidosandina/rollos-api/internal/interfaces/http"
	"github.com/tejidosandina/rollos-api/pkg/config"
	"github.com/tejidosandina/rollos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	rollRepo := postgres.NewRollRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rollUC := usecase.NewRollUseCase(rollRepo, catalogRepo, txRunner)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo, rollRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	authUC := auth.NewAuthUseCase(userRepo, auditRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Poda de retención del audit log al arrancar (0 = conservar todo).
	if pruned, err := auditUC.PruneOlderThan(cfg.Audit.RetentionDays); err != nil {
		log.Error().Err(err).Msg("poda de audit log")
	} else if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("audit log podado por retención")
	}

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
		Title:    "Rollos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RollUC:    rollUC,
		CatalogUC: catalogUC,
		UserUC:    userUC,
		AuditUC:   auditUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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
