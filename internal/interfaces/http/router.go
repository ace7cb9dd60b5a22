package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/cascade"
	"github.com/jhoicas/catalogo-api/internal/application/export"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ArticleUC  *usecase.ArticleUseCase
	CascadeUC  *cascade.UseCase
	ExportUC   *export.UseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Paging     Paging
	Logger     *logger.Logger
}

const readOnlyAllow = "GET, HEAD, OPTIONS"

// Router registra las rutas de la API. Lecturas públicas; escrituras con JWT y rol admin o staff.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Middleware de escritura: JWT + RBAC
	writers := []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleStaff)}
	protect := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, writers...), h)
	}
	readOnly := func(path string) {
		deny := methodNotAllowed(readOnlyAllow)
		for _, m := range []string{fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete} {
			api.Add(m, path, deny)
		}
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/token", authHandler.Token)
	api.Post("/token/refresh", authHandler.Refresh)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.CascadeUC, deps.Paging, log)
	exportHandler := NewExportHandler(deps.ExportUC, log)
	api.Get("/category", categoryHandler.List)
	api.Get("/category/:id/sheet.pdf", exportHandler.CategorySheet)
	api.Get("/category/:id", categoryHandler.GetByID)
	api.Post("/category/:id/disable", protect(categoryHandler.Disable)...)
	api.Post("/category/:id/enable", protect(categoryHandler.Enable)...)
	readOnly("/category")
	readOnly("/category/:id")

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.CascadeUC, deps.Paging, log)
	api.Get("/product", productHandler.List)
	api.Get("/product/:id/ecoscore", productHandler.Ecoscore)
	api.Get("/product/:id", productHandler.GetByID)
	api.Post("/product/:id/disable", protect(productHandler.Disable)...)
	readOnly("/product")
	readOnly("/product/:id")

	// Articles
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.Paging, log)
	api.Get("/article", articleHandler.List)
	api.Get("/article/:id", articleHandler.GetByID)
	api.Post("/article", protect(articleHandler.Create)...)
	api.Put("/article/:id", protect(articleHandler.Update)...)
	api.Patch("/article/:id", protect(articleHandler.Update)...)
	api.Delete("/article/:id", protect(articleHandler.Delete)...)

	// Feed
	api.Get("/feed.xml", exportHandler.Feed)
}
