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

	_ "github.com/jhoicas/catalogo-api/docs"
	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/export"
	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/ecoscore"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/feed"
	infrapdf "github.com/jhoicas/catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title        Catálogo API
// @version      1.0
// @description  Catálogo Category → Product → Article con activación en cascada.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.Close()

	// Ecoscore: Open Food Facts + cache Redis opcional
	lookup := ecoscore.NewClient(cfg.Ecoscore.BaseURL, cfg.Ecoscore.Timeout)
	var gradeCache ports.GradeCache
	if cfg.Redis.URL != "" {
		rdb, err := ecoscore.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, ecoscore sin cache")
		} else {
			defer rdb.Close()
			gradeCache = ecoscore.NewRedisCache(rdb)
		}
	}

	categoryUC := usecase.NewCategoryUseCase(repos.Categories, repos.Products)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Articles, lookup, gradeCache, usecase.EcoscoreConfig{
		ProductCode: cfg.Ecoscore.ProductCode,
		Timeout:     cfg.Ecoscore.Timeout,
		CacheTTL:    cfg.Ecoscore.CacheTTL,
	}, log)
	articleUC := usecase.NewArticleUseCase(repos.Articles, repos.Products)
	cascadeUC := cascade.NewUseCase(repos.Tx, log)
	exportUC := export.NewUseCase(
		repos.Categories, repos.Products, repos.Articles,
		infrapdf.NewMarotoSheetRenderer(cfg.App.Name, ""),
		feed.NewEtreeRenderer("EUR"),
		cfg.App.Name,
	)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: las acciones protegidas responderán 401")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Catálogo API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		ArticleUC:  articleUC,
		CascadeUC:  cascadeUC,
		ExportUC:   exportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Paging:     httpRouter.Paging{Default: cfg.Page.DefaultSize, Max: cfg.Page.MaxSize},
		Logger:     log,
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
