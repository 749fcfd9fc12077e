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

	"github.com/jhoicas/checklist-api/internal/application/auth"
	"github.com/jhoicas/checklist-api/internal/application/usecase"
	"github.com/jhoicas/checklist-api/internal/domain/access"
	"github.com/jhoicas/checklist-api/internal/domain/linestop"
	"github.com/jhoicas/checklist-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/checklist-api/internal/interfaces/http"
	"github.com/jhoicas/checklist-api/pkg/config"
	"github.com/jhoicas/checklist-api/pkg/logger"
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

	loc, err := cfg.Factory.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de la planta")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Int("applied", applied).Msg("migraciones aplicadas")

	table, err := access.LoadTable(cfg.Factory.AccessTablePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Factory.AccessTablePath).Msg("tabla de acceso")
	}
	registry := access.NewRegistry(table, nil)

	eventRepo := postgres.NewEventRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)

	// Sin permisos guardados se arranca con la lista por defecto de la tabla.
	permissionUC := usecase.NewPermissionUseCase(permissionRepo, registry, log)
	if err := permissionUC.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("permisos no cargados, se usan los valores por defecto")
	}

	engine := linestop.NewEngine(registry)
	complianceUC := usecase.NewComplianceUseCase(eventRepo, registry, loc, cfg.Factory.Lines, log)
	eventUC := usecase.NewEventUseCase(eventRepo, registry, log)
	lineStopUC := usecase.NewLineStopUseCase(eventRepo, engine, log)
	userUC := usecase.NewUserUseCase(userRepo)
	authUC := auth.NewAuthUseCase(userRepo, registry, auth.JWTConfig{
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
		Title:    "Checklist API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ComplianceUC: complianceUC,
		EventUC:      eventUC,
		LineStopUC:   lineStopUC,
		PermissionUC: permissionUC,
		UserUC:       userUC,
		Permissions:  registry,
		JWTSecret:    cfg.JWT.Secret,
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
